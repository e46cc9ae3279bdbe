package filesystem

import "fmt"

// SizeRange is a declared valid byte-length range. Max of 0 means
// unbounded. The range is descriptive; this layer does not enforce it
// against card responses.
type SizeRange struct {
	Min int
	Max int
}

// Fixed returns a range admitting exactly n bytes.
func Fixed(n int) SizeRange { return SizeRange{Min: n, Max: n} }

// BinaryFile is implemented by EF variants whose body is addressed as a flat
// byte string: TransparentEF and TransRecEF.
type BinaryFile interface {
	File

	// Size returns the declared valid byte-length range of the body.
	Size() SizeRange

	// Codec returns the whole-body codec.
	Codec() Codec
}

// RecordFile is implemented by EF variants addressed one record at a time:
// LinearFixedEF and CyclicEF.
type RecordFile interface {
	File

	// RecordLength returns the declared valid record-length range.
	RecordLength() SizeRange

	// RecordCodec returns the per-record codec.
	RecordCodec() Codec
}

// TransparentEF is an elementary file holding a flat byte string.
type TransparentEF struct {
	node
	size  SizeRange
	codec Codec
}

// NewTransparentEF creates a detached transparent EF with the given declared
// size range and codec (zero Codec for raw-only files).
func NewTransparentEF(info Info, size SizeRange, codec Codec) (*TransparentEF, error) {
	if info.FID == "" {
		return nil, fmt.Errorf("transparent EF %q: %w", info.Name, ErrMissingFID)
	}
	return &TransparentEF{node: newNode(info), size: size, codec: codec}, nil
}

func (ef *TransparentEF) Size() SizeRange { return ef.size }
func (ef *TransparentEF) Codec() Codec    { return ef.codec }

// LinearFixedEF is an elementary file holding fixed-length records numbered
// from 1.
type LinearFixedEF struct {
	node
	recLen SizeRange
	codec  Codec
}

// NewLinearFixedEF creates a detached linear fixed EF with the given
// declared record-length range and per-record codec.
func NewLinearFixedEF(info Info, recLen SizeRange, codec Codec) (*LinearFixedEF, error) {
	if info.FID == "" {
		return nil, fmt.Errorf("linear fixed EF %q: %w", info.Name, ErrMissingFID)
	}
	return &LinearFixedEF{node: newNode(info), recLen: recLen, codec: codec}, nil
}

func (ef *LinearFixedEF) RecordLength() SizeRange { return ef.recLen }
func (ef *LinearFixedEF) RecordCodec() Codec      { return ef.codec }

// CyclicEF is a record-oriented EF with wrap-around write semantics. The
// wrap-around happens on the card; at this layer it behaves exactly like a
// LinearFixedEF.
type CyclicEF struct {
	LinearFixedEF
}

// NewCyclicEF creates a detached cyclic EF.
func NewCyclicEF(info Info, recLen SizeRange, codec Codec) (*CyclicEF, error) {
	ef, err := NewLinearFixedEF(info, recLen, codec)
	if err != nil {
		return nil, fmt.Errorf("cyclic EF %q: %w", info.Name, err)
	}
	return &CyclicEF{LinearFixedEF: *ef}, nil
}

// TransRecEF is a transparent EF whose body is a back-to-back packing of
// fixed-length records. Some card specifications declare such files as
// transparent even though their content is clearly record-structured; this
// type lets concrete files supply only a per-record codec while split and
// merge of the packing is handled here.
type TransRecEF struct {
	node
	size   SizeRange
	recLen int
	codec  Codec
}

// NewTransRecEF creates a detached transparent-record EF. recLen is the
// fixed per-record byte count and codec operates on a single record.
func NewTransRecEF(info Info, size SizeRange, recLen int, codec Codec) (*TransRecEF, error) {
	if info.FID == "" {
		return nil, fmt.Errorf("transparent record EF %q: %w", info.Name, ErrMissingFID)
	}
	if recLen <= 0 {
		return nil, fmt.Errorf("transparent record EF %s: record length %d", info.FID, recLen)
	}
	return &TransRecEF{node: newNode(info), size: size, recLen: recLen, codec: codec}, nil
}

func (ef *TransRecEF) Size() SizeRange { return ef.size }

// FixedRecordLength returns the per-record byte count of the packing.
func (ef *TransRecEF) FixedRecordLength() int { return ef.recLen }

// RecordCodec returns the per-record codec.
func (ef *TransRecEF) RecordCodec() Codec { return ef.codec }

// Codec returns the whole-body codec derived from the record codec by
// composition: decode splits the body into record-sized chunks and decodes
// each, encode encodes each value and concatenates.
func (ef *TransRecEF) Codec() Codec {
	return Codec{
		DecodeBin: ef.decodeBody,
		EncodeBin: ef.encodeBody,
	}
}

// decodeBody yields the decoded records in storage order as a fully
// materialized []any. A trailing partial chunk is handed to the record
// decoder as-is.
func (ef *TransRecEF) decodeBody(raw []byte) (any, error) {
	vals := make([]any, 0, (len(raw)+ef.recLen-1)/ef.recLen)
	for off := 0; off < len(raw); off += ef.recLen {
		end := off + ef.recLen
		if end > len(raw) {
			end = len(raw)
		}
		v, err := DecodeBinary(ef.codec, raw[off:end])
		if err != nil {
			return nil, fmt.Errorf("%s: record %d: %w", ef.fid, off/ef.recLen+1, err)
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// encodeBody expects a []any of record values. The result is the bare
// concatenation of the encoded records; it is not padded to the declared
// file size, so callers writing a short sequence overwrite only the head of
// the body.
func (ef *TransRecEF) encodeBody(v any) ([]byte, error) {
	vals, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: want []any of records, got %T: %w", ef.fid, v, ErrUnsupportedEncoding)
	}
	var out []byte
	for i, rv := range vals {
		b, err := EncodeBinary(ef.codec, rv)
		if err != nil {
			return nil, fmt.Errorf("%s: record %d: %w", ef.fid, i+1, err)
		}
		out = append(out, b...)
	}
	return out, nil
}

var (
	_ BinaryFile = (*TransparentEF)(nil)
	_ BinaryFile = (*TransRecEF)(nil)
	_ RecordFile = (*LinearFixedEF)(nil)
	_ RecordFile = (*CyclicEF)(nil)
)
