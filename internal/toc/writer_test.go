package toc

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tocerrors "github.com/Aman-CERP/tocgen/internal/errors"
	"github.com/Aman-CERP/tocgen/internal/metadata"
)

func TestEncode(t *testing.T) {
	records := []metadata.Record{{Title: "A & <B>", Slug: "/a"}}

	tests := []struct {
		name    string
		records []metadata.Record
		indent  int
		want    string
	}{
		{
			name:    "nil records",
			records: nil,
			indent:  4,
			want:    "[]",
		},
		{
			name:    "four spaces, html left alone",
			records: records,
			indent:  4,
			want:    "[\n    {\n        \"title\": \"A & <B>\",\n        \"slug\": \"/a\"\n    }\n]",
		},
		{
			name:    "zero indent keeps newlines",
			records: records,
			indent:  0,
			want:    "[\n{\n\"title\": \"A & <B>\",\n\"slug\": \"/a\"\n}\n]",
		},
		{
			name:    "compact",
			records: records,
			indent:  -1,
			want:    `[{"title":"A & <B>","slug":"/a"}]`,
		},
		{
			name:    "unicode written as is",
			records: []metadata.Record{{Title: "Überblick", Slug: "ü"}},
			indent:  -1,
			want:    `[{"title":"Überblick","slug":"ü"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.records, tt.indent)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestWrite_ReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toc.json")
	require.NoError(t, os.WriteFile(path, []byte("old content that is longer"), 0o644))

	err := Write(context.Background(), path, []byte("[]"), false)

	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestWrite_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "toc.json")

	err := Write(context.Background(), path, []byte("[]"), false)

	require.Error(t, err)
	assert.Equal(t, tocerrors.ErrCodeFileNotFound, tocerrors.GetCode(err))
	assert.NoFileExists(t, path)
}

func TestWrite_LockedWriteReleasesLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toc.json")

	require.NoError(t, Write(context.Background(), path, []byte("[]"), true))

	// The lock file sits beside the output and is free again afterwards
	assert.FileExists(t, LockPath(path))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	l := NewOutputLock(path)
	require.NoError(t, l.Lock(ctx))
	require.NoError(t, l.Unlock())
}

func TestWrite_UnusableLockStillWrites(t *testing.T) {
	// Given: the lock file location is occupied by a directory
	path := filepath.Join(t.TempDir(), "toc.json")
	require.NoError(t, os.Mkdir(LockPath(path), 0o755))

	// When: writing with locking enabled
	err := Write(context.Background(), path, []byte("[]"), true)

	// Then: the write goes ahead without the lock
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestWrite_CanceledWhileLockHeld(t *testing.T) {
	// Given: another writer holds the lock
	path := filepath.Join(t.TempDir(), "toc.json")
	holder := NewOutputLock(path)
	require.NoError(t, holder.Lock(context.Background()))
	defer func() { _ = holder.Unlock() }()

	// When: the wait for the lock times out
	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	err := Write(ctx, path, []byte("[]"), true)

	// Then: nothing is written
	require.Error(t, err)
	assert.True(t, tocerrors.HasCode(err, tocerrors.ErrCodeLockFailed))
	assert.NoFileExists(t, path)
}

func TestWrite_KeepsExistingMode(t *testing.T) {
	// Given: an existing output with restrictive permissions
	path := filepath.Join(t.TempDir(), "toc.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))
	require.NoError(t, os.Chmod(path, 0o600))

	// When: replacing it
	require.NoError(t, Write(context.Background(), path, []byte("[]"), false))

	// Then: the mode is unchanged
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWrite_NewFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toc.json")

	require.NoError(t, Write(context.Background(), path, []byte("[]"), false))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestWrite_ThroughSymlink(t *testing.T) {
	// Given: the output path is a symlink to a file elsewhere
	dir := t.TempDir()
	published := filepath.Join(t.TempDir(), "published.json")
	require.NoError(t, os.WriteFile(published, []byte("old"), 0o644))
	link := filepath.Join(dir, "toc.json")
	require.NoError(t, os.Symlink(published, link))

	// When: writing through the link
	require.NoError(t, Write(context.Background(), link, []byte("[]"), true))

	// Then: the link survives and its target holds the new content
	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)
	data, err := os.ReadFile(published)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestWrite_DanglingSymlinkCreatesTarget(t *testing.T) {
	// Given: a relative symlink whose target does not exist yet
	dir := t.TempDir()
	link := filepath.Join(dir, "toc.json")
	require.NoError(t, os.Symlink("published.json", link))

	// When: writing
	require.NoError(t, Write(context.Background(), link, []byte("[]"), false))

	// Then: the target is created and the link kept
	data, err := os.ReadFile(filepath.Join(dir, "published.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)
}
