// Package simcard provides an in-memory card with ISO7816-style status
// words. It stands in for a physical reader so sessions and the shell can
// run end to end without hardware: file bodies and records live in process
// and selection always succeeds (navigation validity is the tree's job).
package simcard

import (
	"encoding/hex"
	"fmt"

	"github.com/puzpuzpuz/xsync/v4"
	"github.com/rs/zerolog"

	"github.com/uicctools/cardfs"
	"github.com/uicctools/cardfs/internal/util"
)

// Card is an in-memory cardfs.Transport. Content maps are concurrency-safe
// so a card can be inspected (e.g. by tests) while a session drives it, but
// the one-selection-per-card rule of real hardware still applies to users.
type Card struct {
	binaries *xsync.Map[string, []byte]
	records  *xsync.Map[string, [][]byte]
	log      zerolog.Logger
}

// New creates an empty card.
func New() *Card {
	return &Card{
		binaries: xsync.NewMap[string, []byte](),
		records:  xsync.NewMap[string, [][]byte](),
		log:      util.GetLogger("simcard"),
	}
}

// SeedBinary installs the body of a transparent file.
func (c *Card) SeedBinary(fid string, data []byte) {
	c.binaries.Store(fid, append([]byte(nil), data...))
}

// SeedRecords installs the records of a record-oriented file.
func (c *Card) SeedRecords(fid string, recs [][]byte) {
	cp := make([][]byte, len(recs))
	for i, r := range recs {
		cp[i] = append([]byte(nil), r...)
	}
	c.records.Store(fid, cp)
}

// SeedDefinitions walks a definition tree and installs any contents/records
// hex payloads it carries.
func (c *Card) SeedDefinitions(defs []cardfs.FileDefinition) error {
	for i := range defs {
		def := &defs[i]
		if def.Contents != "" {
			data, err := hex.DecodeString(def.Contents)
			if err != nil {
				return fmt.Errorf("seed %s: contents: %w", def.FID, err)
			}
			c.SeedBinary(def.FID, data)
		}
		if len(def.Records) > 0 {
			recs := make([][]byte, len(def.Records))
			for j, r := range def.Records {
				data, err := hex.DecodeString(r)
				if err != nil {
					return fmt.Errorf("seed %s: record %d: %w", def.FID, j+1, err)
				}
				recs[j] = data
			}
			c.records.Store(def.FID, recs)
		}
		if err := c.SeedDefinitions(def.Files); err != nil {
			return err
		}
	}
	return nil
}

// SelectFile acknowledges any fid; a simulated card has no view of the tree
// and trusts the session's navigation checks.
func (c *Card) SelectFile(fid string) (cardfs.SW, error) {
	c.log.Trace().Str("fid", fid).Msg("SELECT")
	return cardfs.SWSuccess, nil
}

// SelectApplication acknowledges any aid.
func (c *Card) SelectApplication(aid string) (cardfs.SW, error) {
	c.log.Trace().Str("aid", aid).Msg("SELECT ADF")
	return cardfs.SWSuccess, nil
}

// ReadBinary returns length bytes (0 = remainder) of the file body starting
// at offset.
func (c *Card) ReadBinary(fid string, length, offset int) ([]byte, cardfs.SW, error) {
	body, ok := c.binaries.Load(fid)
	if !ok {
		return nil, cardfs.SWFileNotFound, nil
	}
	if offset < 0 || offset > len(body) {
		return nil, cardfs.SWWrongOffset, nil
	}
	if length == 0 {
		length = len(body) - offset
	}
	if offset+length > len(body) {
		return nil, cardfs.SWWrongLength, nil
	}
	out := append([]byte(nil), body[offset:offset+length]...)
	c.log.Trace().Str("fid", fid).Int("offset", offset).Int("length", length).Msg("READ BINARY")
	return out, cardfs.SWSuccess, nil
}

// UpdateBinary overwrites the file body at offset, extending it when the
// write runs past the current end.
func (c *Card) UpdateBinary(fid string, data []byte, offset int) ([]byte, cardfs.SW, error) {
	body, ok := c.binaries.Load(fid)
	if !ok {
		return nil, cardfs.SWFileNotFound, nil
	}
	if offset < 0 || offset > len(body) {
		return nil, cardfs.SWWrongOffset, nil
	}
	updated := append([]byte(nil), body...)
	if offset+len(data) > len(updated) {
		updated = append(updated, make([]byte, offset+len(data)-len(updated))...)
	}
	copy(updated[offset:], data)
	c.binaries.Store(fid, updated)
	c.log.Trace().Str("fid", fid).Int("offset", offset).Int("length", len(data)).Msg("UPDATE BINARY")
	return nil, cardfs.SWSuccess, nil
}

// ReadRecord returns one record, numbered from 1.
func (c *Card) ReadRecord(fid string, rec int) ([]byte, cardfs.SW, error) {
	recs, ok := c.records.Load(fid)
	if !ok {
		return nil, cardfs.SWFileNotFound, nil
	}
	if rec < 1 || rec > len(recs) {
		return nil, cardfs.SWRecordNotFound, nil
	}
	out := append([]byte(nil), recs[rec-1]...)
	c.log.Trace().Str("fid", fid).Int("rec", rec).Msg("READ RECORD")
	return out, cardfs.SWSuccess, nil
}

// UpdateRecord overwrites one record, numbered from 1. The replacement must
// match the stored record's length, as on a real card.
func (c *Card) UpdateRecord(fid string, rec int, data []byte) ([]byte, cardfs.SW, error) {
	recs, ok := c.records.Load(fid)
	if !ok {
		return nil, cardfs.SWFileNotFound, nil
	}
	if rec < 1 || rec > len(recs) {
		return nil, cardfs.SWRecordNotFound, nil
	}
	if len(data) != len(recs[rec-1]) {
		return nil, cardfs.SWWrongLength, nil
	}
	cp := make([][]byte, len(recs))
	copy(cp, recs)
	cp[rec-1] = append([]byte(nil), data...)
	c.records.Store(fid, cp)
	c.log.Trace().Str("fid", fid).Int("rec", rec).Msg("UPDATE RECORD")
	return nil, cardfs.SWSuccess, nil
}

var _ cardfs.Transport = (*Card)(nil)
