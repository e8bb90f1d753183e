package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// runRoot executes the root command with args and returns its stdout and
// stderr.
func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	root := NewRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := executeRoot(context.Background(), root)
	return stdout.String(), stderr.String(), err
}

// writeDocs creates name -> content files in a fresh temp dir.
func writeDocs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func fruitDocs() map[string]string {
	return map[string]string{
		"banana.md": "title: Banana\nslug: banana\n\nYellow.\n",
		"apple.md":  "title: Apple\nslug: apple\n",
		"index.md":  "title: Index\nslug: index\n",
		"notes.txt": "title: Notes\nslug: notes\n",
	}
}

const fruitTOC = `[
    {
        "title": "Apple",
        "slug": "apple"
    },
    {
        "title": "Banana",
        "slug": "banana"
    }
]`
