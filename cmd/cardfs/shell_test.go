package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uicctools/cardfs/sim"
	"github.com/uicctools/cardfs/transport/simcard"
)

// runShell feeds a script through a fresh shell over the seeded demo card
// and returns everything it printed.
func runShell(t *testing.T, script string) string {
	t.Helper()
	sim.RegisterCodecs()
	card := simcard.New()
	mf, err := sim.NewCard()
	require.NoError(t, err)
	require.NoError(t, sim.SeedDemo(card))

	var out bytes.Buffer
	sh := newShell(&out, mf, card, true)
	require.NoError(t, sh.run(strings.NewReader(script)))
	return out.String()
}

func TestShell_PromptTracksSelection(t *testing.T) {
	out := runShell(t, "select DF.GSM\nselect EF.IMSI\n")
	assert.Contains(t, out, "cardfs MF> ")
	assert.Contains(t, out, "cardfs MF/DF.GSM> ")
	assert.Contains(t, out, "cardfs MF/DF.GSM/EF.IMSI> ")
}

func TestShell_ReadBinaryDecoded(t *testing.T) {
	out := runShell(t, "select DF.GSM\nselect EF.IMSI\nread_binary_decoded\n")
	assert.Contains(t, out, `"imsi": "001010123456789"`)
}

func TestShell_UpdateBinaryDecodedRoundTrip(t *testing.T) {
	script := strings.Join([]string{
		"select DF.GSM",
		"select EF.IMSI",
		`update_binary_decoded {"imsi": "262011234567890"}`,
		"read_binary_decoded",
	}, "\n") + "\n"
	out := runShell(t, script)
	assert.Contains(t, out, `"imsi": "262011234567890"`)
}

func TestShell_OperationsFollowFileVariant(t *testing.T) {
	t.Run("record op on transparent file is not bound", func(t *testing.T) {
		out := runShell(t, "select DF.GSM\nselect EF.IMSI\nread_record 1\n")
		assert.Contains(t, out, `unknown command "read_record"`)
	})

	t.Run("binary op on record file is not bound", func(t *testing.T) {
		out := runShell(t, "select DF.GSM\nselect EF.ECC\nread_binary\n")
		assert.Contains(t, out, `unknown command "read_binary"`)
	})

	t.Run("record op works on record file", func(t *testing.T) {
		out := runShell(t, "select DF.GSM\nselect EF.ECC\nread_record 1\n")
		assert.NotContains(t, out, "unknown command")
		assert.NotContains(t, out, "error:")
	})
}

func TestShell_SelectUnknown(t *testing.T) {
	out := runShell(t, "select EF.NOPE\npwd\n")
	assert.Contains(t, out, "unknown selectable")
	assert.Contains(t, out, "> MF\n", "selection must stay on the MF")
}

func TestShell_LsListsReachables(t *testing.T) {
	out := runShell(t, "ls\n")
	assert.Contains(t, out, "DF.GSM")
	assert.Contains(t, out, "DF.TELECOM")
	assert.Contains(t, out, "ADF.USIM")
	assert.Contains(t, out, "a0000000871002")
}

func TestShell_SelectApplication(t *testing.T) {
	out := runShell(t, "select ADF.USIM\nselect EF.IMSI\nread_binary_decoded\n")
	assert.Contains(t, out, "cardfs MF/ADF.USIM> ")
	assert.Contains(t, out, `"imsi"`)
}

func TestShell_UpdateRecord(t *testing.T) {
	script := strings.Join([]string{
		"select DF.GSM",
		"select EF.ECC",
		"update_record 1 19f2ff",
		"read_record 1",
	}, "\n") + "\n"
	out := runShell(t, script)
	assert.Contains(t, out, "19f2ff")
}

func TestShell_Help(t *testing.T) {
	out := runShell(t, "select DF.GSM\nselect EF.IMSI\nhelp\n")
	assert.Contains(t, out, "read_binary")
	assert.Contains(t, out, "update_binary_decoded")
	assert.NotContains(t, out, "read_record")
}
