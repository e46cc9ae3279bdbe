// Package sim carries the SIM/USIM file catalogs from ETSI TS 51.011 and
// 3GPP TS 31.102, along with the codecs for their file bodies. The catalogs
// double as the built-in tree for the shell and as the reference users of
// the filesystem codec contract.
package sim

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/uicctools/cardfs/filesystem"
)

// swapNibbles exchanges the two hex digits of every byte, the telecom BCD
// convention used throughout the SIM specs.
func swapNibbles(s string) string {
	b := []byte(s)
	for i := 0; i+1 < len(b); i += 2 {
		b[i], b[i+1] = b[i+1], b[i]
	}
	return string(b)
}

// rpad right-pads s with the filler digit 'f' to length n.
func rpad(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat("f", n-len(s))
}

// asInt coerces numeric abstract values. JSON decoding hands the shell
// float64s, programmatic callers use ints.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint16:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

func field(m map[string]any, key string) (any, error) {
	v, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("missing field %q: %w", key, filesystem.ErrUnsupportedEncoding)
	}
	return v, nil
}

func stringField(v any, key string) (map[string]any, string, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, "", fmt.Errorf("want map value, got %T: %w", v, filesystem.ErrUnsupportedEncoding)
	}
	fv, err := field(m, key)
	if err != nil {
		return nil, "", err
	}
	s, ok := fv.(string)
	if !ok {
		return nil, "", fmt.Errorf("field %q: want string, got %T: %w", key, fv, filesystem.ErrUnsupportedEncoding)
	}
	return m, s, nil
}

// decodeIMSI reads the EF.IMSI body: a length byte followed by the odd/even
// indicator nibble and up to 15 swapped-nibble BCD digits (TS 51.011 10.3.2).
func decodeIMSI(rawHex string) (any, error) {
	if len(rawHex) < 4 {
		return nil, fmt.Errorf("imsi body %q too short", rawHex)
	}
	encLen, err := strconv.ParseUint(rawHex[0:2], 16, 8)
	if err != nil {
		return nil, fmt.Errorf("imsi length byte: %w", err)
	}
	digits := int(encLen)*2 - 1 // encoded length includes the odd/even nibble
	swapped := strings.TrimRight(swapNibbles(rawHex[2:]), "f")
	if len(swapped) < 1 {
		return nil, fmt.Errorf("imsi body %q empty", rawHex)
	}
	ind, err := strconv.ParseUint(swapped[0:1], 16, 8)
	if err != nil {
		return nil, fmt.Errorf("imsi indicator nibble: %w", err)
	}
	if ind&8 == 0 { // even digit count: only half of the last byte is used
		digits--
	}
	if digits != len(swapped)-1 {
		return nil, fmt.Errorf("imsi length byte %d does not match %d digits", encLen, len(swapped)-1)
	}
	return map[string]any{"imsi": swapped[1:]}, nil
}

// encodeIMSI is the inverse of decodeIMSI.
func encodeIMSI(v any) (string, error) {
	_, imsi, err := stringField(v, "imsi")
	if err != nil {
		return "", err
	}
	if len(imsi) == 0 || len(imsi) > 15 {
		return "", fmt.Errorf("imsi %q: want 1..15 digits", imsi)
	}
	encLen := (len(imsi) + 2) / 2 // digits plus indicator nibble, rounded up
	ind := byte('1')
	if len(imsi)&1 == 1 {
		ind = '9' // bit 3 of the indicator nibble marks an odd digit count
	}
	return fmt.Sprintf("%02x", encLen) + swapNibbles(rpad(string(ind)+imsi, 16)), nil
}

// decodeSPN reads EF.SPN: a display-condition byte followed by the provider
// name padded with 0xff (TS 51.011 10.3.11).
func decodeSPN(raw []byte) (any, error) {
	if len(raw) < 2 {
		return nil, fmt.Errorf("spn body too short: %d bytes", len(raw))
	}
	name := raw[1:]
	if i := bytes.IndexByte(name, 0xff); i >= 0 {
		name = name[:i]
	}
	return map[string]any{
		"spn":               string(name),
		"hplmn_display":     raw[0]&0x01 != 0,
		"oplmn_display_off": raw[0]&0x02 != 0,
	}, nil
}

func encodeSPN(v any) ([]byte, error) {
	m, spn, err := stringField(v, "spn")
	if err != nil {
		return nil, err
	}
	if len(spn) > 16 {
		return nil, fmt.Errorf("spn %q longer than 16 bytes", spn)
	}
	var cond byte
	if b, ok := m["hplmn_display"].(bool); ok && b {
		cond |= 0x01
	}
	if b, ok := m["oplmn_display_off"].(bool); ok && b {
		cond |= 0x02
	}
	out := make([]byte, 17)
	out[0] = cond
	copy(out[1:], spn)
	for i := 1 + len(spn); i < len(out); i++ {
		out[i] = 0xff
	}
	return out, nil
}

// decodeACC reads EF.ACC, a big-endian 16-bit access control class bitmap.
func decodeACC(raw []byte) (any, error) {
	if len(raw) != 2 {
		return nil, fmt.Errorf("acc body: want 2 bytes, got %d", len(raw))
	}
	return map[string]any{"acc": int(binary.BigEndian.Uint16(raw))}, nil
}

func encodeACC(v any) ([]byte, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("want map value, got %T: %w", v, filesystem.ErrUnsupportedEncoding)
	}
	fv, err := field(m, "acc")
	if err != nil {
		return nil, err
	}
	acc, ok := asInt(fv)
	if !ok || acc < 0 || acc > 0xffff {
		return nil, fmt.Errorf("acc value %v out of range", fv)
	}
	out := make([]byte, 2)
	binary.BigEndian.PutUint16(out, uint16(acc))
	return out, nil
}

// Operation modes of EF.AD byte 1 (TS 51.011 10.3.18).
var adOpModes = map[int]string{
	0x00: "normal operation",
	0x80: "type approval operations",
	0x01: "normal operation + specific facilities",
	0x81: "type approval + specific facilities",
	0x02: "maintenance (off line)",
	0x04: "cell test operation",
}

// decodeAD reads EF.AD: operation mode, two reserved bytes and, when
// present, the MNC length byte.
func decodeAD(raw []byte) (any, error) {
	if len(raw) < 3 {
		return nil, fmt.Errorf("ad body too short: %d bytes", len(raw))
	}
	out := map[string]any{
		"opmode":      int(raw[0]),
		"opmode_desc": adOpModes[int(raw[0])],
	}
	if len(raw) >= 4 {
		out["mnc_length"] = int(raw[3] & 0x0f)
	}
	return out, nil
}

// Service is one entry of a decoded service table.
type Service struct {
	Number      int    `json:"number"`
	Description string `json:"description,omitempty"`
	Allocated   bool   `json:"allocated"`
	Activated   bool   `json:"activated"`
}

// ServiceTableCodec decodes a 2-bits-per-service table (EF.SST layout,
// TS 51.011 10.3.7) against the given service-number descriptions.
func ServiceTableCodec(table map[int]string) filesystem.Codec {
	return filesystem.Codec{
		DecodeBin: func(raw []byte) (any, error) {
			services := make([]any, 0, len(raw)*4)
			for i := 0; i < len(raw)*4; i++ {
				bits := (raw[i/4] >> ((i % 4) * 2)) & 3
				services = append(services, Service{
					Number:      i + 1,
					Description: table[i+1],
					Allocated:   bits&1 != 0,
					Activated:   bits&2 != 0,
				})
			}
			return services, nil
		},
	}
}

// decodeADNRecord reads one EF.ADN record: an optional alpha identifier
// followed by the fixed 14-byte dialing number block (TS 51.011 10.5.1).
func decodeADNRecord(raw []byte) (any, error) {
	if len(raw) < 14 {
		return nil, fmt.Errorf("adn record too short: %d bytes", len(raw))
	}
	alpha := raw[:len(raw)-14]
	if i := bytes.IndexByte(alpha, 0xff); i >= 0 {
		alpha = alpha[:i]
	}
	tail := raw[len(raw)-14:]
	number := strings.TrimRight(swapNibbles(fmt.Sprintf("%x", tail[2:12])), "f")
	return map[string]any{
		"alpha_id":       string(alpha),
		"len_of_bcd":     int(tail[0]),
		"ton_npi":        int(tail[1]),
		"dialing_nr":     number,
		"cap_conf_id":    int(tail[12]),
		"ext1_record_id": int(tail[13]),
	}, nil
}

// decodeMSISDNRecord reads the dialing number block of an EF.MSISDN record,
// skipping the optional alpha identifier.
func decodeMSISDNRecord(rawHex string) (any, error) {
	if len(rawHex) < 28 {
		return nil, fmt.Errorf("msisdn record too short: %d hex chars", len(rawHex))
	}
	lhv := rawHex[len(rawHex)-28:]
	bcdLen64, err := strconv.ParseUint(lhv[0:2], 16, 8)
	if err != nil {
		return nil, fmt.Errorf("msisdn length byte: %w", err)
	}
	tonNPI64, err := strconv.ParseUint(lhv[2:4], 16, 8)
	if err != nil {
		return nil, fmt.Errorf("msisdn ton/npi byte: %w", err)
	}
	bcdLen, tonNPI := int(bcdLen64), int(tonNPI64)
	if bcdLen == 0xff {
		return map[string]any{"msisdn": ""}, nil
	}
	if bcdLen < 1 || bcdLen > 11 {
		return nil, fmt.Errorf("msisdn bcd length %d out of range", bcdLen)
	}
	digitsHex := lhv[4 : 4+(bcdLen-1)*2]
	number := strings.TrimRight(swapNibbles(digitsHex), "f")
	if tonNPI&0x70 == 0x10 {
		number = "+" + number
	}
	return map[string]any{"msisdn": number, "ton_npi": tonNPI}, nil
}

// encodeMSISDNRecord produces the 14-byte dialing number block without an
// alpha identifier. A leading "+" selects the international number type.
func encodeMSISDNRecord(v any) (string, error) {
	m, msisdn, err := stringField(v, "msisdn")
	if err != nil {
		return "", err
	}
	tonNPI := 0x81
	if strings.HasPrefix(msisdn, "+") {
		msisdn = msisdn[1:]
		tonNPI = 0x91
	}
	if n, ok := asInt(m["ton_npi"]); ok {
		tonNPI = n
	}
	if len(msisdn) > 20 {
		return "", fmt.Errorf("msisdn %q longer than 20 digits", msisdn)
	}
	bcd := swapNibbles(rpad(msisdn, 20))
	bcdLen := (len(msisdn)+1)/2 + 1 // number bytes plus the type byte
	return fmt.Sprintf("%02x%02x%s%02x%02x", bcdLen, tonNPI, bcd, 0xff, 0xff), nil
}
