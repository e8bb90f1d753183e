package scanner

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	tocerrors "github.com/Aman-CERP/tocgen/internal/errors"
)

// IsCandidate reports whether a directory entry should be indexed.
// Directories are never candidates, whatever their name.
func IsCandidate(name string, isDir bool, opts Options) bool {
	if isDir {
		return false
	}
	opts = opts.withDefaults()
	if !strings.HasSuffix(name, opts.Extension) {
		return false
	}
	return !slices.Contains(opts.Exclude, name)
}

// Candidates lists the candidate file names in dir, without recursing.
// Names are returned relative to dir in the order the directory listing
// yields them; callers impose their own ordering.
func Candidates(dir string, opts Options) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	opts = opts.withDefaults()

	info, err := os.Stat(dir)
	if err != nil {
		return nil, tocerrors.IOError(tocerrors.ErrCodeReadFailed, "failed to stat docs directory", err).
			WithDetail("dir", dir)
	}
	if !info.IsDir() {
		return nil, tocerrors.New(tocerrors.ErrCodeInvalidPath, "docs path is not a directory: "+dir, nil).
			WithDetail("dir", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, tocerrors.IOError(tocerrors.ErrCodeReadFailed, "failed to list docs directory", err).
			WithDetail("dir", dir)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !IsCandidate(name, isDir(dir, entry), opts) {
			slog.Debug("skipping entry", slog.String("name", name))
			continue
		}
		names = append(names, name)
	}

	slog.Debug("scanned docs directory",
		slog.String("dir", dir),
		slog.Int("entries", len(entries)),
		slog.Int("candidates", len(names)))

	return names, nil
}

// isDir resolves symlinks so a link to a directory is treated as one.
func isDir(dir string, entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.IsDir()
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	if err != nil {
		// Dangling link: let the extractor report the open failure.
		return false
	}
	return info.IsDir()
}
