package definitions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uicctools/cardfs"
	"github.com/uicctools/cardfs/filesystem"
)

const yamlDefs = `
- type: df
  fid: "7f4a"
  name: DF.CUSTOM
  files:
    - type: ef-transparent
      fid: "6f01"
      name: EF.FLAG
      size: {min: 1, max: 1}
      contents: "01"
    - type: ef-linfixed
      fid: "6f02"
      name: EF.LOG
      record_length: {min: 4}
- type: ef-transrec
  fid: "2f10"
  name: EF.TAGS
  record_size: 2
- type: adf
  aid: "a000000063"
  name: ADF.CUSTOM
  files:
    - type: ef-transparent
      fid: "6f01"
      name: EF.ID
`

const jsonDefs = `[
  {"type": "df", "fid": "7f4a", "name": "DF.CUSTOM"}
]`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		defs, err := Load(writeTempFile(t, "tree.yaml", yamlDefs))
		require.NoError(t, err)
		require.Len(t, defs, 3)
		assert.Equal(t, cardfs.DFType, defs[0].Type)
		assert.Equal(t, "7f4a", defs[0].FID)
		require.Len(t, defs[0].Files, 2)
		assert.Equal(t, "01", defs[0].Files[0].Contents)
		assert.Equal(t, 2, defs[1].RecordSize)
		assert.Equal(t, "a000000063", defs[2].AID)
	})

	t.Run("json", func(t *testing.T) {
		defs, err := Load(writeTempFile(t, "tree.json", jsonDefs))
		require.NoError(t, err)
		require.Len(t, defs, 1)
		assert.Equal(t, "DF.CUSTOM", defs[0].Name)
	})

	t.Run("unknown extension", func(t *testing.T) {
		_, err := Load(writeTempFile(t, "tree.toml", "x = 1"))
		assert.ErrorContains(t, err, "unknown definitions file extension")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load("does-not-exist.yaml")
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeTempFile(t, "tree.yaml", ":\n  - ]["))
		assert.ErrorContains(t, err, "failed to unmarshal")
	})
}

func TestBuild(t *testing.T) {
	defs, err := Load(writeTempFile(t, "tree.yaml", yamlDefs))
	require.NoError(t, err)

	mf := filesystem.NewMF()
	require.NoError(t, Build(mf, defs, false))

	custom, ok := mf.ChildByName("DF.CUSTOM")
	require.True(t, ok)
	dir, ok := custom.(filesystem.Dir)
	require.True(t, ok)

	flag, ok := dir.Child("6f01")
	require.True(t, ok)
	bf, ok := flag.(filesystem.BinaryFile)
	require.True(t, ok)
	assert.Equal(t, filesystem.Fixed(1), bf.Size())

	logEF, ok := dir.Child("6f02")
	require.True(t, ok)
	_, ok = logEF.(filesystem.RecordFile)
	assert.True(t, ok)

	tags, ok := mf.Child("2f10")
	require.True(t, ok)
	tr, ok := tags.(*filesystem.TransRecEF)
	require.True(t, ok)
	assert.Equal(t, 2, tr.FixedRecordLength())

	// The ADF lands in the application registry even though it is defined
	// at the top level of the file.
	adf, ok := mf.Application("a000000063")
	require.True(t, ok)
	assert.Equal(t, "ADF.CUSTOM", adf.Name())
	id, ok := adf.Child("6f01")
	require.True(t, ok)
	assert.Equal(t, "EF.ID", id.Name())
}

func TestBuild_DuplicateHandling(t *testing.T) {
	defs := []cardfs.FileDefinition{
		{Type: cardfs.DFType, FID: "7f4a", Name: "DF.CUSTOM"},
		{Type: cardfs.DFType, FID: "7f4a", Name: "DF.OTHER"},
	}

	t.Run("fails by default", func(t *testing.T) {
		mf := filesystem.NewMF()
		assert.ErrorIs(t, Build(mf, defs, false), filesystem.ErrDuplicateFID)
	})

	t.Run("skips with ignoreExisting", func(t *testing.T) {
		mf := filesystem.NewMF()
		require.NoError(t, Build(mf, defs, true))
		kept, ok := mf.Child("7f4a")
		require.True(t, ok)
		assert.Equal(t, "DF.CUSTOM", kept.Name(), "first definition wins")
	})
}

func TestBuild_Errors(t *testing.T) {
	t.Run("unknown type", func(t *testing.T) {
		mf := filesystem.NewMF()
		err := Build(mf, []cardfs.FileDefinition{{Type: "ef-mystery", FID: "6f01"}}, false)
		assert.ErrorContains(t, err, "unknown type")
	})

	t.Run("unregistered codec", func(t *testing.T) {
		mf := filesystem.NewMF()
		err := Build(mf, []cardfs.FileDefinition{
			{Type: cardfs.TransparentType, FID: "6f01", Codec: "no-such-codec"},
		}, false)
		assert.ErrorContains(t, err, "no codec registered")
	})

	t.Run("ef cannot contain files", func(t *testing.T) {
		mf := filesystem.NewMF()
		err := Build(mf, []cardfs.FileDefinition{
			{Type: cardfs.TransparentType, FID: "6f01", Files: []cardfs.FileDefinition{
				{Type: cardfs.TransparentType, FID: "6f02"},
			}},
		}, false)
		assert.ErrorContains(t, err, "cannot contain files")
	})
}

func TestCodecRegistry(t *testing.T) {
	_, ok := LookupCodec("registry-test-missing")
	assert.False(t, ok)

	c := filesystem.Codec{DecodeBin: func(raw []byte) (any, error) { return len(raw), nil }}
	RegisterCodec("registry-test", c)

	got, ok := LookupCodec("registry-test")
	require.True(t, ok)
	v, err := got.DecodeBin([]byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}
