package sim

import (
	"fmt"

	"github.com/uicctools/cardfs/filesystem"
	"github.com/uicctools/cardfs/transport/simcard"
)

// SeedDemo installs plausible provisioning data on a simulated card so the
// shell has something to read out of the box. Bodies are produced through
// the catalog codecs where one exists.
//
// The simulated card keys bodies by fid alone, so files sharing a fid
// across directories (EF.IMSI in DF.GSM and ADF.USIM) share content.
func SeedDemo(card *simcard.Card) error {
	seedHex := func(fid string, c filesystem.Codec, v any) error {
		raw, err := filesystem.EncodeBinary(c, v)
		if err != nil {
			return fmt.Errorf("seed %s: %w", fid, err)
		}
		card.SeedBinary(fid, raw)
		return nil
	}

	if err := seedHex("6f07", imsiCodec, map[string]any{"imsi": "001010123456789"}); err != nil {
		return err
	}
	if err := seedHex("6f46", spnCodec, map[string]any{"spn": "cardfs", "hplmn_display": true}); err != nil {
		return err
	}
	if err := seedHex("6f78", accCodec, map[string]any{"acc": 0x0001}); err != nil {
		return err
	}

	// EF.AD: normal operation, 2-digit MNC. No encoder; raw bytes.
	card.SeedBinary("6fad", []byte{0x00, 0x00, 0x00, 0x02})
	// EF.SST: services 1..8 allocated and activated.
	card.SeedBinary("6f37", []byte{0xff, 0xff})
	// EF.UST: same head services for the USIM.
	card.SeedBinary("6f38", []byte{0xff, 0xff})
	// EF.LP / EF.LI: English.
	card.SeedBinary("6f05", []byte{0x01})
	// EF.PLMNsel: three PLMN slots, last one empty.
	card.SeedBinary("6f30", []byte{0x00, 0xf1, 0x10, 0x00, 0xf1, 0x10, 0xff, 0xff, 0xff})

	// EF.ECC: two emergency call code records (BCD, f-padded).
	card.SeedRecords("6fb7", [][]byte{
		{0x11, 0xf2, 0xff},
		{0x11, 0xf9, 0xff},
	})

	msisdn, err := filesystem.EncodeBinary(msisdnCodec, map[string]any{"msisdn": "+15551234567"})
	if err != nil {
		return fmt.Errorf("seed msisdn: %w", err)
	}
	card.SeedRecords("6f40", [][]byte{msisdn})
	card.SeedRecords("6f4f", [][]byte{msisdn})
	return nil
}
