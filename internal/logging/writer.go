package logging

import (
	"fmt"
	"os"
	"path/filepath"
)

// OpenRotated opens path for appending, first rotating it when it is larger
// than maxSizeMB:
//
//	tocgen.log -> tocgen.log.1 -> tocgen.log.2 -> ... (oldest dropped)
//
// Rotation happens once per process; a single run never grows a log file by
// much, so there is no need to check on every write.
func OpenRotated(path string, maxSizeMB, maxFiles int) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	if info, err := os.Stat(path); err == nil && info.Size() > int64(maxSizeMB)*1024*1024 {
		if err := rotate(path, maxFiles); err != nil {
			// Keep appending to the oversized file rather than losing logs
			_, _ = fmt.Fprintf(os.Stderr, "log rotation failed: %v\n", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// rotate shifts path.N to path.N+1, dropping anything at or beyond maxFiles,
// then moves path to path.1.
func rotate(path string, maxFiles int) error {
	if maxFiles < 1 {
		return os.Remove(path)
	}

	_ = os.Remove(fmt.Sprintf("%s.%d", path, maxFiles))
	for n := maxFiles - 1; n >= 1; n-- {
		from := fmt.Sprintf("%s.%d", path, n)
		if _, err := os.Stat(from); err != nil {
			continue
		}
		if err := os.Rename(from, fmt.Sprintf("%s.%d", path, n+1)); err != nil {
			return fmt.Errorf("failed to shift %s: %w", from, err)
		}
	}

	if err := os.Rename(path, path+".1"); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}
	return nil
}
