package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tocerrors "github.com/Aman-CERP/tocgen/internal/errors"
)

func TestCheckCmd_UpToDate(t *testing.T) {
	// Given: a freshly generated table of contents
	dir := writeDocs(t, fruitDocs())
	_, _, err := runRoot(t, "--dir", dir)
	require.NoError(t, err)

	// When: checking with --verbose
	stdout, _, err := runRoot(t, "check", "--dir", dir, "-v")

	// Then: the check passes
	require.NoError(t, err)
	assert.Contains(t, stdout, "up to date")
}

func TestCheckCmd_Stale(t *testing.T) {
	// Given: a generated table of contents and a document added afterwards
	dir := writeDocs(t, fruitDocs())
	_, _, err := runRoot(t, "--dir", dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cherry.md"), []byte("title: Cherry\nslug: cherry\n"), 0o644))

	// When: checking
	_, stderr, err := runRoot(t, "check", "--dir", dir)

	// Then: the check fails as stale and the file is left alone
	require.Error(t, err)
	assert.True(t, tocerrors.HasCode(err, tocerrors.ErrCodeIndexStale))
	assert.Contains(t, stderr, "out of date")

	data, err := os.ReadFile(filepath.Join(dir, "table_of_contents.json"))
	require.NoError(t, err)
	assert.Equal(t, fruitTOC, string(data))
}

func TestCheckCmd_Missing(t *testing.T) {
	// Given: docs without a generated table of contents
	dir := writeDocs(t, fruitDocs())

	// When: checking
	_, stderr, err := runRoot(t, "check", "--dir", dir)

	// Then: the check fails and does not create the file
	require.Error(t, err)
	assert.True(t, tocerrors.HasCode(err, tocerrors.ErrCodeIndexStale))
	assert.Contains(t, stderr, "does not exist")
	assert.NoFileExists(t, filepath.Join(dir, "table_of_contents.json"))
}
