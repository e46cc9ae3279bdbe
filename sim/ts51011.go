package sim

import (
	"github.com/uicctools/cardfs/definitions"
	"github.com/uicctools/cardfs/filesystem"
)

// SIMServiceTable maps EF.SST service numbers to their descriptions
// (TS 51.011 table 10.3.7, the commonly provisioned subset).
var SIMServiceTable = map[int]string{
	1:  "CHV1 disable function",
	2:  "Abbreviated Dialling Numbers (ADN)",
	3:  "Fixed Dialling Numbers (FDN)",
	4:  "Short Message Storage (SMS)",
	5:  "Advice of Charge (AoC)",
	6:  "Capability Configuration Parameters (CCP)",
	7:  "PLMN selector",
	8:  "RFU",
	9:  "MSISDN",
	10: "Extension1",
	11: "Extension2",
	12: "SMS Parameters",
	13: "Last Number Dialled (LND)",
	14: "Cell Broadcast Message Identifier",
	15: "Group Identifier Level 1",
	16: "Group Identifier Level 2",
	17: "Service Provider Name",
	18: "Service Dialling Numbers (SDN)",
	19: "Extension3",
	20: "RFU",
	21: "VGCS Group Identifier List",
	22: "VBS Group Identifier List",
	23: "enhanced Multi-Level Precedence and Pre-emption Service",
	24: "Automatic Answer for eMLPP",
	25: "Data download via SMS-CB",
	26: "Data download via SMS-PP",
	27: "Menu selection",
	28: "Call control",
	38: "GPRS",
	51: "GSM Access in USIM",
	56: "Network Parameters",
}

// fileList collects constructed nodes, keeping the first construction error
// so catalog builders stay declarative.
type fileList struct {
	files []filesystem.File
	err   error
}

func (l *fileList) add(f filesystem.File, err error) {
	if err != nil {
		if l.err == nil {
			l.err = err
		}
		return
	}
	l.files = append(l.files, f)
}

// Codecs used by the TS 51.011 files, also exposed to definition files via
// [RegisterCodecs].
var (
	imsiCodec   = filesystem.Codec{DecodeHex: decodeIMSI, EncodeHex: encodeIMSI}
	spnCodec    = filesystem.Codec{DecodeBin: decodeSPN, EncodeBin: encodeSPN}
	accCodec    = filesystem.Codec{DecodeBin: decodeACC, EncodeBin: encodeACC}
	adCodec     = filesystem.Codec{DecodeBin: decodeAD}
	adnCodec    = filesystem.Codec{DecodeBin: decodeADNRecord}
	msisdnCodec = filesystem.Codec{DecodeHex: decodeMSISDNRecord, EncodeHex: encodeMSISDNRecord}
)

// RegisterCodecs publishes the catalog codecs under the names definition
// files reference. Call once during app init.
func RegisterCodecs() {
	definitions.RegisterCodec("imsi", imsiCodec)
	definitions.RegisterCodec("spn", spnCodec)
	definitions.RegisterCodec("acc", accCodec)
	definitions.RegisterCodec("ad", adCodec)
	definitions.RegisterCodec("adn", adnCodec)
	definitions.RegisterCodec("msisdn", msisdnCodec)
	definitions.RegisterCodec("sim-service-table", ServiceTableCodec(SIMServiceTable))
	definitions.RegisterCodec("usim-service-table", ServiceTableCodec(USIMServiceTable))
}

// NewDFTelecom builds DF.TELECOM (TS 51.011 section 10.5).
func NewDFTelecom() (*filesystem.DF, error) {
	df, err := filesystem.NewDF(filesystem.Info{FID: "7f10", Name: "DF.TELECOM"})
	if err != nil {
		return nil, err
	}
	var l fileList
	l.add(filesystem.NewLinearFixedEF(filesystem.Info{FID: "6f3a", Name: "EF.ADN", Description: "Abbreviated Dialing Numbers"},
		filesystem.SizeRange{Min: 14, Max: 30}, adnCodec))
	l.add(filesystem.NewLinearFixedEF(filesystem.Info{FID: "6f4f", Name: "EF.MSISDN", Description: "MSISDN"},
		filesystem.SizeRange{Min: 15}, msisdnCodec))
	l.add(filesystem.NewLinearFixedEF(filesystem.Info{FID: "6f42", Name: "EF.SMSP", Description: "Short message service parameters"},
		filesystem.SizeRange{Min: 28}, filesystem.Codec{}))
	if l.err != nil {
		return nil, l.err
	}
	if err := df.Add(l.files...); err != nil {
		return nil, err
	}
	return df, nil
}

// NewDFGSM builds DF.GSM (TS 51.011 section 10.3).
func NewDFGSM() (*filesystem.DF, error) {
	df, err := filesystem.NewDF(filesystem.Info{FID: "7f20", Name: "DF.GSM", Description: "GSM Network related files"})
	if err != nil {
		return nil, err
	}
	var l fileList
	l.add(filesystem.NewTransRecEF(filesystem.Info{FID: "6f05", Name: "EF.LP", Description: "Language preference"},
		filesystem.SizeRange{Min: 1}, 1, filesystem.Codec{}))
	l.add(filesystem.NewTransparentEF(filesystem.Info{FID: "6f07", Name: "EF.IMSI", Description: "IMSI"},
		filesystem.Fixed(9), imsiCodec))
	l.add(filesystem.NewTransparentEF(filesystem.Info{FID: "5f20", Name: "EF.Kc", Description: "Ciphering key Kc"},
		filesystem.SizeRange{Min: 9, Max: 9}, filesystem.Codec{}))
	l.add(filesystem.NewTransRecEF(filesystem.Info{FID: "6f30", Name: "EF.PLMNsel", Description: "PLMN selector"},
		filesystem.SizeRange{Min: 24}, 3, filesystem.Codec{}))
	l.add(filesystem.NewTransparentEF(filesystem.Info{FID: "6f31", Name: "EF.HPPLMN", Description: "Higher Priority PLMN search period"},
		filesystem.Fixed(1), filesystem.Codec{}))
	l.add(filesystem.NewTransparentEF(filesystem.Info{FID: "6f37", Name: "EF.SST", Description: "SIM service table"},
		filesystem.SizeRange{Min: 2, Max: 16}, ServiceTableCodec(SIMServiceTable)))
	l.add(filesystem.NewCyclicEF(filesystem.Info{FID: "6f39", Name: "EF.ACM", Description: "Accumulated call meter"},
		filesystem.Fixed(3), filesystem.Codec{}))
	l.add(filesystem.NewTransparentEF(filesystem.Info{FID: "6f3e", Name: "EF.GID1", Description: "Group Identifier Level 1"},
		filesystem.SizeRange{Min: 1}, filesystem.Codec{}))
	l.add(filesystem.NewTransparentEF(filesystem.Info{FID: "6f3f", Name: "EF.GID2", Description: "Group Identifier Level 2"},
		filesystem.SizeRange{Min: 1}, filesystem.Codec{}))
	l.add(filesystem.NewTransparentEF(filesystem.Info{FID: "6f46", Name: "EF.SPN", Description: "Service Provider Name"},
		filesystem.Fixed(17), spnCodec))
	l.add(filesystem.NewTransparentEF(filesystem.Info{FID: "6f41", Name: "EF.PUCT", Description: "Price per unit and currency table"},
		filesystem.Fixed(5), filesystem.Codec{}))
	l.add(filesystem.NewTransRecEF(filesystem.Info{FID: "6f45", Name: "EF.CBMI", Description: "Cell Broadcast message identifier selection"},
		filesystem.SizeRange{Min: 2}, 2, filesystem.Codec{}))
	l.add(filesystem.NewTransparentEF(filesystem.Info{FID: "6f7f", Name: "EF.BCCH", Description: "Broadcast control channels"},
		filesystem.Fixed(16), filesystem.Codec{}))
	l.add(filesystem.NewTransparentEF(filesystem.Info{FID: "6f78", Name: "EF.ACC", Description: "Access Control Class"},
		filesystem.Fixed(2), accCodec))
	l.add(filesystem.NewTransRecEF(filesystem.Info{FID: "6f7b", Name: "EF.FPLMN", Description: "Forbidden PLMNs"},
		filesystem.Fixed(12), 3, filesystem.Codec{}))
	l.add(filesystem.NewTransparentEF(filesystem.Info{FID: "6f7e", Name: "EF.LOCI", Description: "Location information"},
		filesystem.Fixed(11), filesystem.Codec{}))
	l.add(filesystem.NewTransparentEF(filesystem.Info{FID: "6fa3", Name: "EF.Phase", Description: "Phase identification"},
		filesystem.Fixed(1), filesystem.Codec{}))
	l.add(filesystem.NewTransRecEF(filesystem.Info{FID: "6f48", Name: "EF.CBMID", Description: "Cell Broadcast Message Identifier for Data Download"},
		filesystem.SizeRange{Min: 2}, 2, filesystem.Codec{}))
	l.add(filesystem.NewLinearFixedEF(filesystem.Info{FID: "6fb7", Name: "EF.ECC", Description: "Emergency Call Codes"},
		filesystem.SizeRange{Min: 4, Max: 20}, filesystem.Codec{}))
	l.add(filesystem.NewTransRecEF(filesystem.Info{FID: "6f50", Name: "EF.CBMIR", Description: "Cell Broadcast message identifier range selection"},
		filesystem.SizeRange{Min: 4}, 4, filesystem.Codec{}))
	l.add(filesystem.NewTransparentEF(filesystem.Info{FID: "6fad", Name: "EF.AD", Description: "Administrative Data"},
		filesystem.SizeRange{Min: 3, Max: 4}, adCodec))
	l.add(filesystem.NewTransRecEF(filesystem.Info{FID: "6f60", Name: "EF.PLMNwAcT", Description: "User controlled PLMN Selector with Access Technology"},
		filesystem.SizeRange{Min: 40}, 5, filesystem.Codec{}))
	l.add(filesystem.NewTransRecEF(filesystem.Info{FID: "6f61", Name: "EF.OPLMNwAcT", Description: "Operator controlled PLMN Selector with Access Technology"},
		filesystem.SizeRange{Min: 40}, 5, filesystem.Codec{}))
	l.add(filesystem.NewTransRecEF(filesystem.Info{FID: "6f62", Name: "EF.HPLMNwAcT", Description: "HPLMN Selector with Access Technology"},
		filesystem.SizeRange{Min: 40}, 5, filesystem.Codec{}))
	if l.err != nil {
		return nil, l.err
	}
	if err := df.Add(l.files...); err != nil {
		return nil, err
	}
	return df, nil
}

// NewCard assembles the full built-in tree: an MF holding DF.GSM,
// DF.TELECOM and ADF.USIM.
func NewCard() (*filesystem.MF, error) {
	mf := filesystem.NewMF()
	gsm, err := NewDFGSM()
	if err != nil {
		return nil, err
	}
	telecom, err := NewDFTelecom()
	if err != nil {
		return nil, err
	}
	if err := mf.Add(gsm, telecom); err != nil {
		return nil, err
	}
	usim, err := NewADFUSIM()
	if err != nil {
		return nil, err
	}
	if err := mf.AddApplication(usim); err != nil {
		return nil, err
	}
	return mf, nil
}
