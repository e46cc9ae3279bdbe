package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwapNibbles(t *testing.T) {
	assert.Equal(t, "1032", swapNibbles("0123"))
	assert.Equal(t, "", swapNibbles(""))
	assert.Equal(t, "10f2", swapNibbles("012f"))
}

func TestRpad(t *testing.T) {
	assert.Equal(t, "12ff", rpad("12", 4))
	assert.Equal(t, "1234", rpad("1234", 4))
	assert.Equal(t, "12345", rpad("12345", 4))
}

func TestDecodeIMSI(t *testing.T) {
	tests := []struct {
		name    string
		rawHex  string
		want    string
		wantErr bool
	}{
		// The canonical test IMSI, 15 digits (odd count).
		{"odd digit count", "080910101032547698", "001010123456789", false},
		{"even digit count", "0801101010325476f8", "00101012345678", false},
		{"too short", "08", "", true},
		{"length byte mismatch", "0809101010", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, err := decodeIMSI(tc.rawHex)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, map[string]any{"imsi": tc.want}, v)
		})
	}
}

func TestEncodeIMSI(t *testing.T) {
	tests := []struct {
		name    string
		imsi    string
		want    string
		wantErr bool
	}{
		{"odd digit count", "001010123456789", "080910101032547698", false},
		{"even digit count", "00101012345678", "0801101010325476f8", false},
		{"empty", "", "", true},
		{"too long", "1234567890123456", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, err := encodeIMSI(map[string]any{"imsi": tc.imsi})
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, h)
		})
	}

	t.Run("missing field", func(t *testing.T) {
		_, err := encodeIMSI(map[string]any{"iccid": "123"})
		assert.Error(t, err)
	})
	t.Run("non-map value", func(t *testing.T) {
		_, err := encodeIMSI("001010123456789")
		assert.Error(t, err)
	})
}

func TestIMSI_RoundTrip(t *testing.T) {
	for _, imsi := range []string{"001010123456789", "00101012345678", "1", "12"} {
		h, err := encodeIMSI(map[string]any{"imsi": imsi})
		require.NoError(t, err, imsi)
		v, err := decodeIMSI(h)
		require.NoError(t, err, imsi)
		assert.Equal(t, map[string]any{"imsi": imsi}, v)
	}
}

func TestSPNCodec(t *testing.T) {
	raw, err := encodeSPN(map[string]any{"spn": "cardfs", "hplmn_display": true})
	require.NoError(t, err)
	require.Len(t, raw, 17)
	assert.Equal(t, byte(0x01), raw[0])
	assert.Equal(t, "cardfs", string(raw[1:7]))
	assert.Equal(t, byte(0xff), raw[7], "name is ff-padded")

	v, err := decodeSPN(raw)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"spn":               "cardfs",
		"hplmn_display":     true,
		"oplmn_display_off": false,
	}, v)

	t.Run("name too long", func(t *testing.T) {
		_, err := encodeSPN(map[string]any{"spn": "a far too long provider name"})
		assert.Error(t, err)
	})
	t.Run("body too short", func(t *testing.T) {
		_, err := decodeSPN([]byte{0x00})
		assert.Error(t, err)
	})
}

func TestACCCodec(t *testing.T) {
	v, err := decodeACC([]byte{0x01, 0x80})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"acc": 0x0180}, v)

	raw, err := encodeACC(map[string]any{"acc": 0x0180})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x80}, raw)

	t.Run("json numbers decode as float64", func(t *testing.T) {
		raw, err := encodeACC(map[string]any{"acc": float64(1)})
		require.NoError(t, err)
		assert.Equal(t, []byte{0x00, 0x01}, raw)
	})
	t.Run("out of range", func(t *testing.T) {
		_, err := encodeACC(map[string]any{"acc": 0x10000})
		assert.Error(t, err)
	})
	t.Run("wrong body size", func(t *testing.T) {
		_, err := decodeACC([]byte{0x01})
		assert.Error(t, err)
	})
}

func TestDecodeAD(t *testing.T) {
	t.Run("with mnc length", func(t *testing.T) {
		v, err := decodeAD([]byte{0x00, 0x00, 0x00, 0x02})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"opmode":      0,
			"opmode_desc": "normal operation",
			"mnc_length":  2,
		}, v)
	})
	t.Run("without mnc length", func(t *testing.T) {
		v, err := decodeAD([]byte{0x80, 0x00, 0x00})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"opmode":      0x80,
			"opmode_desc": "type approval operations",
		}, v)
	})
	t.Run("too short", func(t *testing.T) {
		_, err := decodeAD([]byte{0x00})
		assert.Error(t, err)
	})
}

func TestServiceTableCodec(t *testing.T) {
	table := map[int]string{1: "CHV1 disable function", 5: "AoC"}
	codec := ServiceTableCodec(table)

	v, err := codec.DecodeBin([]byte{0xff, 0x03})
	require.NoError(t, err)
	services, ok := v.([]any)
	require.True(t, ok)
	require.Len(t, services, 8, "two bytes carry four services each")

	first := services[0].(Service)
	assert.Equal(t, Service{Number: 1, Description: "CHV1 disable function", Allocated: true, Activated: true}, first)

	// Services 1-4 live in byte 0, service 5 is the low two bits of byte 1.
	fifth := services[4].(Service)
	assert.Equal(t, Service{Number: 5, Description: "AoC", Allocated: true, Activated: true}, fifth)

	sixth := services[5].(Service)
	assert.False(t, sixth.Allocated)
	assert.False(t, sixth.Activated)
}

func TestServiceTableCodec_AllocatedNotActivated(t *testing.T) {
	codec := ServiceTableCodec(nil)
	v, err := codec.DecodeBin([]byte{0x01})
	require.NoError(t, err)
	services := v.([]any)
	require.Len(t, services, 4)
	first := services[0].(Service)
	assert.True(t, first.Allocated)
	assert.False(t, first.Activated)
}

func TestDecodeADNRecord(t *testing.T) {
	// "Office" alpha identifier plus the 14-byte dialing number block.
	record := append([]byte("Office"), []byte{
		0x05, 0x81, // length, ton/npi
		0x21, 0x43, 0x65, 0xf7, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, // 1234567 in swapped BCD
		0xff, 0xff, // capability, ext1
	}...)

	v, err := decodeADNRecord(record)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"alpha_id":       "Office",
		"len_of_bcd":     5,
		"ton_npi":        0x81,
		"dialing_nr":     "1234567",
		"cap_conf_id":    0xff,
		"ext1_record_id": 0xff,
	}, v)

	t.Run("too short", func(t *testing.T) {
		_, err := decodeADNRecord([]byte{0xff})
		assert.Error(t, err)
	})
}

func TestMSISDNRecord_RoundTrip(t *testing.T) {
	h, err := encodeMSISDNRecord(map[string]any{"msisdn": "+15551234567"})
	require.NoError(t, err)
	assert.Equal(t, "07915155214365f7ffffffffffff", h)

	v, err := decodeMSISDNRecord(h)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"msisdn": "+15551234567", "ton_npi": 0x91}, v)
}

func TestEncodeMSISDNRecord(t *testing.T) {
	t.Run("national number", func(t *testing.T) {
		h, err := encodeMSISDNRecord(map[string]any{"msisdn": "5551234"})
		require.NoError(t, err)
		assert.Equal(t, "0581", h[:4], "default ton/npi is unknown/isdn")
	})
	t.Run("explicit ton/npi wins", func(t *testing.T) {
		h, err := encodeMSISDNRecord(map[string]any{"msisdn": "5551234", "ton_npi": 0xa1})
		require.NoError(t, err)
		assert.Equal(t, "05a1", h[:4])
	})
	t.Run("too long", func(t *testing.T) {
		_, err := encodeMSISDNRecord(map[string]any{"msisdn": "123456789012345678901"})
		assert.Error(t, err)
	})
}

func TestDecodeMSISDNRecord(t *testing.T) {
	t.Run("empty record", func(t *testing.T) {
		v, err := decodeMSISDNRecord("ffffffffffffffffffffffffffff")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"msisdn": ""}, v)
	})
	t.Run("too short", func(t *testing.T) {
		_, err := decodeMSISDNRecord("ffff")
		assert.Error(t, err)
	})
	t.Run("bad bcd length", func(t *testing.T) {
		_, err := decodeMSISDNRecord("0c915155214365f7ffffffffffff")
		assert.Error(t, err)
	})
}
