package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uicctools/cardfs/definitions"
	"github.com/uicctools/cardfs/filesystem"
)

func TestNewCard(t *testing.T) {
	mf, err := NewCard()
	require.NoError(t, err)

	gsm, ok := mf.ChildByName("DF.GSM")
	require.True(t, ok)
	assert.Equal(t, "7f20", gsm.FID())

	telecom, ok := mf.ChildByName("DF.TELECOM")
	require.True(t, ok)
	assert.Equal(t, "7f10", telecom.FID())

	usim, ok := mf.Application(AIDUSIM)
	require.True(t, ok)
	assert.Equal(t, "ADF.USIM", usim.Name())
	assert.Empty(t, usim.FID(), "ADF.USIM is addressed by AID only")
}

func TestNewDFGSM_FileVariants(t *testing.T) {
	gsm, err := NewDFGSM()
	require.NoError(t, err)

	imsi, ok := gsm.Child("6f07")
	require.True(t, ok)
	bf, ok := imsi.(filesystem.BinaryFile)
	require.True(t, ok)
	assert.Equal(t, filesystem.Fixed(9), bf.Size())
	assert.NotNil(t, bf.Codec().DecodeHex, "EF.IMSI decodes from hex")

	acm, ok := gsm.Child("6f39")
	require.True(t, ok)
	_, ok = acm.(*filesystem.CyclicEF)
	assert.True(t, ok, "EF.ACM is cyclic")

	plmnsel, ok := gsm.Child("6f30")
	require.True(t, ok)
	tr, ok := plmnsel.(*filesystem.TransRecEF)
	require.True(t, ok, "EF.PLMNsel packs records into a transparent body")
	assert.Equal(t, 3, tr.FixedRecordLength())
	_, isRecord := plmnsel.(filesystem.RecordFile)
	assert.False(t, isRecord, "transparent record files are read as binary")

	ecc, ok := gsm.Child("6fb7")
	require.True(t, ok)
	_, ok = ecc.(filesystem.RecordFile)
	assert.True(t, ok, "EF.ECC is record-oriented")
}

func TestNewDFGSM_IMSIRoundTripThroughTree(t *testing.T) {
	gsm, err := NewDFGSM()
	require.NoError(t, err)
	imsi, ok := gsm.Child("6f07")
	require.True(t, ok)
	codec := imsi.(filesystem.BinaryFile).Codec()

	raw, err := filesystem.EncodeBinary(codec, map[string]any{"imsi": "001010123456789"})
	require.NoError(t, err)
	require.Len(t, raw, 9)

	v, err := filesystem.DecodeBinary(codec, raw)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"imsi": "001010123456789"}, v)
}

func TestRegisterCodecs(t *testing.T) {
	RegisterCodecs()

	for _, name := range []string{
		"imsi", "spn", "acc", "ad", "adn", "msisdn",
		"sim-service-table", "usim-service-table",
	} {
		_, ok := definitions.LookupCodec(name)
		assert.True(t, ok, "codec %q must be registered", name)
	}
}

func TestNewADFUSIM(t *testing.T) {
	usim, err := NewADFUSIM()
	require.NoError(t, err)
	assert.Equal(t, AIDUSIM, usim.AID())

	imsi, ok := usim.Child("6f07")
	require.True(t, ok)
	assert.Equal(t, 0x07, imsi.SFID())

	ust, ok := usim.ChildByName("EF.UST")
	require.True(t, ok)
	assert.Equal(t, "6f38", ust.FID())
	assert.Equal(t, 0x04, ust.SFID())

	bySFID, ok := usim.ChildBySFID(0x07)
	require.True(t, ok)
	assert.Equal(t, "6f07", bySFID.FID())
}
