package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSized(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.WriteFile(path, []byte(strings.Repeat("x", size)), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestOpenRotated_SmallFileAppends(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "small.log")
	if err := os.WriteFile(logPath, []byte("first\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := OpenRotated(logPath, 1, 3)
	if err != nil {
		t.Fatalf("OpenRotated failed: %v", err)
	}
	_, _ = f.WriteString("second\n")
	_ = f.Close()

	content, _ := os.ReadFile(logPath)
	if string(content) != "first\nsecond\n" {
		t.Errorf("expected appended content, got %q", content)
	}
	if _, err := os.Stat(logPath + ".1"); !os.IsNotExist(err) {
		t.Error("small file should not be rotated")
	}
}

func TestOpenRotated_Rotation(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "rotate.log")
	writeSized(t, logPath, 2048)

	// 0 MB limit: any existing content triggers rotation
	f, err := OpenRotated(logPath, 0, 3)
	if err != nil {
		t.Fatalf("OpenRotated failed: %v", err)
	}
	_ = f.Close()

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("main log file should exist: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("new log file should be empty, got %d bytes", info.Size())
	}
	if _, err := os.Stat(logPath + ".1"); err != nil {
		t.Error("rotated file .1 should exist")
	}
}

func TestOpenRotated_MaxFilesLimit(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "maxfiles.log")

	for i := 0; i < 5; i++ {
		writeSized(t, logPath, 1024)
		f, err := OpenRotated(logPath, 0, 2)
		if err != nil {
			t.Fatalf("OpenRotated failed: %v", err)
		}
		_ = f.Close()
	}

	for _, suffix := range []string{".1", ".2"} {
		if _, err := os.Stat(logPath + suffix); err != nil {
			t.Errorf("rotated file %s should exist", suffix)
		}
	}
	if _, err := os.Stat(logPath + ".3"); !os.IsNotExist(err) {
		t.Error("rotated file .3 should not exist (beyond maxFiles)")
	}
}

func TestOpenRotated_CreatesDirectory(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "a", "b", "nested.log")

	f, err := OpenRotated(logPath, 1, 1)
	if err != nil {
		t.Fatalf("OpenRotated failed: %v", err)
	}
	_ = f.Close()

	if _, err := os.Stat(logPath); err != nil {
		t.Errorf("log file should exist: %v", err)
	}
}
