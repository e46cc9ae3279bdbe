package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/uicctools/cardfs"
)

// MockTransport implements cardfs.Transport for testing across packages
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) SelectFile(fid string) (cardfs.SW, error) {
	args := m.Called(fid)
	return args.Get(0).(cardfs.SW), args.Error(1)
}

func (m *MockTransport) SelectApplication(aid string) (cardfs.SW, error) {
	args := m.Called(aid)
	return args.Get(0).(cardfs.SW), args.Error(1)
}

func (m *MockTransport) ReadBinary(fid string, length, offset int) ([]byte, cardfs.SW, error) {
	args := m.Called(fid, length, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(cardfs.SW), args.Error(2)
	}
	return args.Get(0).([]byte), args.Get(1).(cardfs.SW), args.Error(2)
}

func (m *MockTransport) UpdateBinary(fid string, data []byte, offset int) ([]byte, cardfs.SW, error) {
	args := m.Called(fid, data, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(cardfs.SW), args.Error(2)
	}
	return args.Get(0).([]byte), args.Get(1).(cardfs.SW), args.Error(2)
}

func (m *MockTransport) ReadRecord(fid string, rec int) ([]byte, cardfs.SW, error) {
	args := m.Called(fid, rec)
	if args.Get(0) == nil {
		return nil, args.Get(1).(cardfs.SW), args.Error(2)
	}
	return args.Get(0).([]byte), args.Get(1).(cardfs.SW), args.Error(2)
}

func (m *MockTransport) UpdateRecord(fid string, rec int, data []byte) ([]byte, cardfs.SW, error) {
	args := m.Called(fid, rec, data)
	if args.Get(0) == nil {
		return nil, args.Get(1).(cardfs.SW), args.Error(2)
	}
	return args.Get(0).([]byte), args.Get(1).(cardfs.SW), args.Error(2)
}

var _ cardfs.Transport = (*MockTransport)(nil)
