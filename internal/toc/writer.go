package toc

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio"

	tocerrors "github.com/Aman-CERP/tocgen/internal/errors"
	"github.com/Aman-CERP/tocgen/internal/metadata"
)

// outputPerm is the mode of a newly written table of contents.
const outputPerm = 0o644

// Encode serializes records as a JSON array with indent spaces per level.
// Non-ASCII text and HTML characters are written as-is and there is no
// trailing newline. A negative indent produces compact output.
func Encode(records []metadata.Record, indent int) ([]byte, error) {
	if records == nil {
		records = []metadata.Record{}
	}

	var compact bytes.Buffer
	enc := json.NewEncoder(&compact)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return nil, tocerrors.New(tocerrors.ErrCodeEncodeFailed, "failed to encode table of contents", err)
	}
	raw := bytes.TrimRight(compact.Bytes(), "\n")

	if indent < 0 {
		return raw, nil
	}

	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", strings.Repeat(" ", indent)); err != nil {
		return nil, tocerrors.New(tocerrors.ErrCodeEncodeFailed, "failed to indent table of contents", err)
	}
	return out.Bytes(), nil
}

// Write replaces the file at path with data atomically: readers see either
// the previous content or the new one, never a partial file.
//
// A symlinked path is written through to its target, and an existing file
// keeps its permission bits. With lock set, concurrent writers of the same
// file are serialized; a lock that cannot be created only costs that
// guarantee and is logged, while a canceled wait aborts the write.
func Write(ctx context.Context, path string, data []byte, lock bool) error {
	target, perm := writeTarget(path)

	if lock {
		l := NewOutputLock(target)
		if err := l.Lock(ctx); err != nil {
			if ctx.Err() != nil {
				return err
			}
			slog.Warn("writing without output lock", tocerrors.LogAttrs(err)...)
		} else {
			defer func() { _ = l.Unlock() }()
		}
	}

	if err := renameio.WriteFile(target, data, perm); err != nil {
		return tocerrors.IOError(tocerrors.ErrCodeWriteFailed, "failed to write "+path, err).
			WithDetail("path", path).
			WithSuggestion("Check that the output directory exists and is writable")
	}
	return nil
}

// writeTarget resolves symlinks in path and returns the file to replace and
// the mode to give it.
func writeTarget(path string) (string, os.FileMode) {
	target := path
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		target = resolved
	} else if link, err := os.Readlink(path); err == nil {
		// Dangling link: create the file it points to
		if !filepath.IsAbs(link) {
			link = filepath.Join(filepath.Dir(path), link)
		}
		target = link
	}

	perm := os.FileMode(outputPerm)
	if info, err := os.Stat(target); err == nil {
		perm = info.Mode().Perm()
	}
	return target, perm
}
