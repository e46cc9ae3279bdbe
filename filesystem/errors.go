package filesystem

import "errors"

// Construction errors, surfaced while assembling a tree.
var (
	ErrMissingFID    = errors.New("fid is mandatory")
	ErrReservedName  = errors.New("reserved name")
	ErrReservedFID   = errors.New("reserved fid")
	ErrDuplicateFID  = errors.New("duplicate fid")
	ErrDuplicateSFID = errors.New("duplicate sfid")
	ErrDuplicateName = errors.New("duplicate name")
	ErrDuplicateAID  = errors.New("duplicate aid")
)

// Navigation, gating and codec errors, surfaced by sessions and the codec
// dispatch.
var (
	ErrUnknownSelectable   = errors.New("unknown selectable")
	ErrWrongFileType       = errors.New("wrong file type")
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
)
