package filesystem

import (
	"encoding/hex"
	"fmt"
)

// Codec declares the conversion capabilities of a file type between raw
// on-card data and its abstract value. Card specifications define some file
// bodies in binary terms (bit fields, packed integers) and others in
// hex-string terms (BCD digits), so a file supplies whichever direction is
// natural and the dispatch functions below derive the other through hex
// conversion. A nil field means the capability is absent.
type Codec struct {
	DecodeBin func(raw []byte) (any, error)
	DecodeHex func(raw string) (any, error)
	EncodeBin func(v any) ([]byte, error)
	EncodeHex func(v any) (string, error)
}

// RawValue carries undecoded file content through the decode path when a
// codec declares no decoder at all.
type RawValue struct {
	Raw []byte `json:"raw"`
}

func (v RawValue) String() string { return hex.EncodeToString(v.Raw) }

// DecodeBinary decodes raw bytes with the binary decoder, falling back to
// the hex decoder and finally to a [RawValue] wrapper. Decoding therefore
// never fails for lack of a codec, only on malformed content.
func DecodeBinary(c Codec, raw []byte) (any, error) {
	switch {
	case c.DecodeBin != nil:
		return c.DecodeBin(raw)
	case c.DecodeHex != nil:
		return c.DecodeHex(hex.EncodeToString(raw))
	}
	return RawValue{Raw: raw}, nil
}

// DecodeHexString is the hex-first counterpart of [DecodeBinary].
func DecodeHexString(c Codec, rawHex string) (any, error) {
	if c.DecodeHex != nil {
		return c.DecodeHex(rawHex)
	}
	raw, err := hex.DecodeString(rawHex)
	if err != nil {
		return nil, fmt.Errorf("decode hex %q: %w", rawHex, err)
	}
	if c.DecodeBin != nil {
		return c.DecodeBin(raw)
	}
	return RawValue{Raw: raw}, nil
}

// EncodeBinary encodes an abstract value with the binary encoder, falling
// back to the hex encoder. A codec declaring neither capability fails with
// [ErrUnsupportedEncoding]: unlike decoding there is no raw form to fall
// back to.
func EncodeBinary(c Codec, v any) ([]byte, error) {
	switch {
	case c.EncodeBin != nil:
		return c.EncodeBin(v)
	case c.EncodeHex != nil:
		h, err := c.EncodeHex(v)
		if err != nil {
			return nil, err
		}
		raw, err := hex.DecodeString(h)
		if err != nil {
			return nil, fmt.Errorf("encoder produced invalid hex %q: %w", h, err)
		}
		return raw, nil
	}
	return nil, ErrUnsupportedEncoding
}

// EncodeHexString is the hex-first counterpart of [EncodeBinary].
func EncodeHexString(c Codec, v any) (string, error) {
	switch {
	case c.EncodeHex != nil:
		return c.EncodeHex(v)
	case c.EncodeBin != nil:
		raw, err := c.EncodeBin(v)
		if err != nil {
			return "", err
		}
		return hex.EncodeToString(raw), nil
	}
	return "", ErrUnsupportedEncoding
}
