// Package session tracks the runtime selection state of one card: which
// file is currently selected, mirrored against the card's own internal
// state, and gates read/write operations by the selected file's variant.
package session

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/uicctools/cardfs"
	"github.com/uicctools/cardfs/filesystem"
	"github.com/uicctools/cardfs/internal/util"
)

// Binder receives the command hand-off on every successful selection change:
// the old file's operations are unbound before the new file's are bound.
// Shell front-ends use it to swap per-file command sets.
type Binder interface {
	Bind(f filesystem.File)
	Unbind(f filesystem.File)
}

// Session holds the runtime state of one logical card session. The current
// file pointer is the sole mutable field and is only ever changed by
// [Session.Select]; a card has exactly one selection context, so a Session
// must not be shared between goroutines without external locking around the
// whole select-then-operate sequence.
type Session struct {
	id      string
	mf      *filesystem.MF
	card    cardfs.Transport
	binder  Binder // may be nil
	current filesystem.File
	log     zerolog.Logger
}

// New creates a session over the given tree and transport with the MF
// selected. binder may be nil when no command front-end is attached.
func New(mf *filesystem.MF, card cardfs.Transport, binder Binder) *Session {
	id := uuid.NewString()
	return &Session{
		id:      id,
		mf:      mf,
		card:    card,
		binder:  binder,
		current: mf,
		log:     util.GetLogger("session").With().Str("session", id).Logger(),
	}
}

// ID returns the session's unique identifier, also present on its log events.
func (s *Session) ID() string { return s.id }

// Current returns the currently selected file.
func (s *Session) Current() filesystem.File { return s.current }

// CurrentDir returns the directory context of the selection: the current
// file itself if it is a directory, otherwise its parent.
func (s *Session) CurrentDir() filesystem.Dir {
	if d, ok := s.current.(filesystem.Dir); ok {
		return d
	}
	return s.current.Parent()
}

// Path returns the fully qualified path of the current file.
func (s *Session) Path(preferName bool) []string {
	return filesystem.Path(s.current, preferName)
}

// Select resolves an identifier against the names reachable from the
// current file and forwards the selection to the card: by AID for an
// application, by fid for everything else. On success the current file is
// updated and the binder hand-off fires. An unknown identifier fails with
// [filesystem.ErrUnknownSelectable] and leaves the selection unchanged.
func (s *Session) Select(id string) (cardfs.SW, error) {
	sels := filesystem.Reachable(s.current)
	f, ok := sels[id]
	if !ok {
		return 0, fmt.Errorf("select %q: %w", id, filesystem.ErrUnknownSelectable)
	}

	var sw cardfs.SW
	var err error
	if adf, isApp := f.(*filesystem.ADF); isApp {
		sw, err = s.card.SelectApplication(adf.AID())
	} else {
		sw, err = s.card.SelectFile(f.FID())
	}
	if err != nil {
		return sw, fmt.Errorf("select %q: %w", id, err)
	}

	if s.binder != nil {
		s.binder.Unbind(s.current)
	}
	s.current = f
	if s.binder != nil {
		s.binder.Bind(f)
	}
	s.log.Debug().Str("selected", id).Str("path", filesystem.PathString(f, true)).
		Stringer("sw", sw).Msg("Selection changed")
	return sw, nil
}

// binaryFile returns the current file as a BinaryFile or fails with
// [filesystem.ErrWrongFileType].
func (s *Session) binaryFile(op string) (filesystem.BinaryFile, error) {
	bf, ok := s.current.(filesystem.BinaryFile)
	if !ok {
		return nil, fmt.Errorf("%s on %s: %w", op, filesystem.PathString(s.current, true), filesystem.ErrWrongFileType)
	}
	return bf, nil
}

// recordFile returns the current file as a RecordFile or fails with
// [filesystem.ErrWrongFileType].
func (s *Session) recordFile(op string) (filesystem.RecordFile, error) {
	rf, ok := s.current.(filesystem.RecordFile)
	if !ok {
		return nil, fmt.Errorf("%s on %s: %w", op, filesystem.PathString(s.current, true), filesystem.ErrWrongFileType)
	}
	return rf, nil
}

// ReadBinary reads length bytes (0 = whole body) at offset from the current
// transparent EF.
func (s *Session) ReadBinary(length, offset int) ([]byte, cardfs.SW, error) {
	bf, err := s.binaryFile("read_binary")
	if err != nil {
		return nil, 0, err
	}
	return s.card.ReadBinary(bf.FID(), length, offset)
}

// ReadBinaryDecoded reads the whole body of the current transparent EF and
// runs it through the file's codec.
func (s *Session) ReadBinaryDecoded() (any, cardfs.SW, error) {
	bf, err := s.binaryFile("read_binary_decoded")
	if err != nil {
		return nil, 0, err
	}
	raw, sw, err := s.card.ReadBinary(bf.FID(), 0, 0)
	if err != nil {
		return nil, sw, err
	}
	v, err := filesystem.DecodeBinary(bf.Codec(), raw)
	if err != nil {
		return nil, sw, fmt.Errorf("decode %s: %w", bf.FID(), err)
	}
	return v, sw, nil
}

// UpdateBinary writes data at offset to the current transparent EF.
func (s *Session) UpdateBinary(data []byte, offset int) ([]byte, cardfs.SW, error) {
	bf, err := s.binaryFile("update_binary")
	if err != nil {
		return nil, 0, err
	}
	return s.card.UpdateBinary(bf.FID(), data, offset)
}

// UpdateBinaryDecoded encodes the abstract value with the current file's
// codec and writes the result at offset 0.
func (s *Session) UpdateBinaryDecoded(v any) ([]byte, cardfs.SW, error) {
	bf, err := s.binaryFile("update_binary_decoded")
	if err != nil {
		return nil, 0, err
	}
	raw, err := filesystem.EncodeBinary(bf.Codec(), v)
	if err != nil {
		return nil, 0, fmt.Errorf("encode %s: %w", bf.FID(), err)
	}
	return s.card.UpdateBinary(bf.FID(), raw, 0)
}

// ReadRecord reads one record (numbered from 1) of the current
// record-oriented EF.
func (s *Session) ReadRecord(rec int) ([]byte, cardfs.SW, error) {
	rf, err := s.recordFile("read_record")
	if err != nil {
		return nil, 0, err
	}
	return s.card.ReadRecord(rf.FID(), rec)
}

// ReadRecordDecoded reads one record and runs it through the file's
// per-record codec.
func (s *Session) ReadRecordDecoded(rec int) (any, cardfs.SW, error) {
	rf, err := s.recordFile("read_record_decoded")
	if err != nil {
		return nil, 0, err
	}
	raw, sw, err := s.card.ReadRecord(rf.FID(), rec)
	if err != nil {
		return nil, sw, err
	}
	v, err := filesystem.DecodeBinary(rf.RecordCodec(), raw)
	if err != nil {
		return nil, sw, fmt.Errorf("decode %s record %d: %w", rf.FID(), rec, err)
	}
	return v, sw, nil
}

// UpdateRecord overwrites one record (numbered from 1) of the current
// record-oriented EF.
func (s *Session) UpdateRecord(rec int, data []byte) ([]byte, cardfs.SW, error) {
	rf, err := s.recordFile("update_record")
	if err != nil {
		return nil, 0, err
	}
	return s.card.UpdateRecord(rf.FID(), rec, data)
}

// UpdateRecordDecoded encodes the abstract value with the per-record codec
// and overwrites the given record.
func (s *Session) UpdateRecordDecoded(rec int, v any) ([]byte, cardfs.SW, error) {
	rf, err := s.recordFile("update_record_decoded")
	if err != nil {
		return nil, 0, err
	}
	raw, err := filesystem.EncodeBinary(rf.RecordCodec(), v)
	if err != nil {
		return nil, 0, fmt.Errorf("encode %s record %d: %w", rf.FID(), rec, err)
	}
	return s.card.UpdateRecord(rf.FID(), rec, raw)
}

// Operations returns the named operations a shell binds for a file variant:
// binary ops for transparent files, record ops for record-oriented files,
// nothing for directories.
func Operations(f filesystem.File) []string {
	switch f.(type) {
	case filesystem.BinaryFile:
		return []string{
			"read_binary", "read_binary_decoded",
			"update_binary", "update_binary_decoded",
		}
	case filesystem.RecordFile:
		return []string{
			"read_record", "read_record_decoded",
			"update_record", "update_record_decoded",
		}
	}
	return nil
}
