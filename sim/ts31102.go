package sim

import "github.com/uicctools/cardfs/filesystem"

// AIDUSIM is the application identifier of the USIM application
// (ETSI TS 101 220 registered value).
const AIDUSIM = "a0000000871002"

// USIMServiceTable maps EF.UST service numbers to their descriptions
// (TS 31.102 table 4.2.8, the commonly provisioned subset).
var USIMServiceTable = map[int]string{
	1:  "Local Phone Book",
	2:  "Fixed Dialling Numbers (FDN)",
	3:  "Extension 2",
	4:  "Service Dialling Numbers (SDN)",
	5:  "Extension 3",
	6:  "Barred Dialling Numbers (BDN)",
	7:  "Extension 4",
	8:  "Outgoing Call Information (OCI and OCT)",
	9:  "Incoming Call Information (ICI and ICT)",
	10: "Short Message Storage (SMS)",
	11: "Short Message Status Reports (SMSR)",
	12: "Short Message Service Parameters (SMSP)",
	13: "Advice of Charge (AoC)",
	14: "Capability Configuration Parameters 2 (CCP2)",
	15: "Cell Broadcast Message Identifier",
	16: "Cell Broadcast Message Identifier Ranges",
	17: "Group Identifier Level 1",
	18: "Group Identifier Level 2",
	19: "Service Provider Name",
	20: "User controlled PLMN selector with Access Technology",
	21: "MSISDN",
	27: "GSM Access",
	33: "Packed Switched Domain",
	34: "Data download via SMS-PP",
	35: "Data download via SMS-CB",
	38: "GSM security context",
	85: "EPS Mobility Management Information",
	87: "Non-Access Stratum configuration by USIM",
}

// NewADFUSIM builds ADF.USIM (TS 31.102 section 4.2). The application has no
// fid of its own and is addressed by AID.
func NewADFUSIM() (*filesystem.ADF, error) {
	adf, err := filesystem.NewADF(AIDUSIM, filesystem.Info{Name: "ADF.USIM", Description: "USIM Application"})
	if err != nil {
		return nil, err
	}
	var l fileList
	l.add(filesystem.NewTransRecEF(filesystem.Info{FID: "6f05", SFID: 0x02, Name: "EF.LI", Description: "Language Indication"},
		filesystem.SizeRange{Min: 2}, 2, filesystem.Codec{}))
	l.add(filesystem.NewTransparentEF(filesystem.Info{FID: "6f07", SFID: 0x07, Name: "EF.IMSI", Description: "IMSI"},
		filesystem.Fixed(9), imsiCodec))
	l.add(filesystem.NewTransparentEF(filesystem.Info{FID: "6f08", SFID: 0x08, Name: "EF.Keys", Description: "Ciphering and Integrity Keys"},
		filesystem.Fixed(33), filesystem.Codec{}))
	l.add(filesystem.NewTransparentEF(filesystem.Info{FID: "6f09", SFID: 0x09, Name: "EF.KeysPS", Description: "Ciphering and Integrity Keys for PS domain"},
		filesystem.Fixed(33), filesystem.Codec{}))
	l.add(filesystem.NewTransparentEF(filesystem.Info{FID: "6f38", SFID: 0x04, Name: "EF.UST", Description: "USIM Service Table"},
		filesystem.SizeRange{Min: 1, Max: 16}, ServiceTableCodec(USIMServiceTable)))
	l.add(filesystem.NewTransRecEF(filesystem.Info{FID: "6f60", SFID: 0x0a, Name: "EF.PLMNwAcT", Description: "User controlled PLMN Selector with Access Technology"},
		filesystem.SizeRange{Min: 40}, 5, filesystem.Codec{}))
	l.add(filesystem.NewTransparentEF(filesystem.Info{FID: "6f31", SFID: 0x12, Name: "EF.HPPLMN", Description: "Higher Priority PLMN search period"},
		filesystem.Fixed(1), filesystem.Codec{}))
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
	l.add(filesystem.NewTransparentEF(filesystem.Info{FID: "6f78", SFID: 0x06, Name: "EF.ACC", Description: "Access Control Class"},
		filesystem.Fixed(2), accCodec))
	l.add(filesystem.NewTransRecEF(filesystem.Info{FID: "6f7b", SFID: 0x0d, Name: "EF.FPLMN", Description: "Forbidden PLMNs"},
		filesystem.SizeRange{Min: 12}, 3, filesystem.Codec{}))
	l.add(filesystem.NewTransparentEF(filesystem.Info{FID: "6f7e", SFID: 0x0b, Name: "EF.LOCI", Description: "Location information"},
		filesystem.Fixed(11), filesystem.Codec{}))
	l.add(filesystem.NewTransparentEF(filesystem.Info{FID: "6fad", SFID: 0x03, Name: "EF.AD", Description: "Administrative Data"},
		filesystem.SizeRange{Min: 3, Max: 4}, adCodec))
	l.add(filesystem.NewTransRecEF(filesystem.Info{FID: "6f48", SFID: 0x0e, Name: "EF.CBMID", Description: "Cell Broadcast Message Identifier for Data Download"},
		filesystem.SizeRange{Min: 2}, 2, filesystem.Codec{}))
	l.add(filesystem.NewLinearFixedEF(filesystem.Info{FID: "6fb7", SFID: 0x01, Name: "EF.ECC", Description: "Emergency Call Codes"},
		filesystem.SizeRange{Min: 4, Max: 20}, filesystem.Codec{}))
	l.add(filesystem.NewTransRecEF(filesystem.Info{FID: "6f50", Name: "EF.CBMIR", Description: "Cell Broadcast message identifier range selection"},
		filesystem.SizeRange{Min: 4}, 4, filesystem.Codec{}))
	l.add(filesystem.NewLinearFixedEF(filesystem.Info{FID: "6f40", Name: "EF.MSISDN", Description: "MSISDN"},
		filesystem.SizeRange{Min: 15}, msisdnCodec))
	if l.err != nil {
		return nil, l.err
	}
	if err := adf.Add(l.files...); err != nil {
		return nil, err
	}
	return adf, nil
}
