package cardfs

import "fmt"

// SW is an ISO7816-4 status word as returned in the trailer of every card
// response. It is passed through to callers unchanged; this layer never
// interprets non-success values.
type SW uint16

// Common status words. Cards return many more; only the ones this module
// itself produces (via the simcard transport) are named here.
const (
	SWSuccess        SW = 0x9000 // normal completion
	SWFileNotFound   SW = 0x6a82 // file or application not found
	SWRecordNotFound SW = 0x6a83 // record not found
	SWWrongOffset    SW = 0x6b00 // offset outside the file body
	SWWrongLength    SW = 0x6700 // wrong length
)

// OK reports whether the status word indicates normal completion.
func (sw SW) OK() bool { return sw == SWSuccess }

func (sw SW) String() string { return fmt.Sprintf("%04x", uint16(sw)) }

// Transport is the narrow interface to the command layer that actually talks
// to a card. File and application identifiers are lower-case hex strings in
// the same canonical form the filesystem tree uses.
//
// Implementations return the card's status word alongside any response data;
// a non-success status word with a nil error is a valid result and is the
// caller's to interpret. Errors are reserved for transport-level failures
// (reader gone, short response, ...).
type Transport interface {
	// SelectFile selects an MF, DF or EF by file identifier.
	SelectFile(fid string) (SW, error)

	// SelectApplication selects an ADF by application identifier.
	SelectApplication(aid string) (SW, error)

	// ReadBinary reads length bytes from a transparent EF starting at
	// offset. A length of 0 requests the remainder of the file.
	ReadBinary(fid string, length, offset int) ([]byte, SW, error)

	// UpdateBinary writes data to a transparent EF starting at offset and
	// returns any response data.
	UpdateBinary(fid string, data []byte, offset int) ([]byte, SW, error)

	// ReadRecord reads one record (numbered from 1) of a record-oriented EF.
	ReadRecord(fid string, rec int) ([]byte, SW, error)

	// UpdateRecord overwrites one record (numbered from 1) of a
	// record-oriented EF and returns any response data.
	UpdateRecord(fid string, rec int, data []byte) ([]byte, SW, error)
}
