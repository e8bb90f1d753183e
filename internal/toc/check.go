package toc

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"

	tocerrors "github.com/Aman-CERP/tocgen/internal/errors"
)

// Check builds the table of contents in memory and compares it with the
// output file on disk. It never writes.
func Check(ctx context.Context, opts Options) (*CheckResult, error) {
	opts = opts.withDefaults()

	result, err := Build(ctx, opts)
	if err != nil {
		return nil, err
	}

	want, err := Encode(result.Records, opts.Indent)
	if err != nil {
		return nil, err
	}

	check := &CheckResult{Result: result}

	got, err := os.ReadFile(result.Output)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return check, nil
	case err != nil:
		return nil, tocerrors.IOError(tocerrors.ErrCodeReadFailed, "failed to read "+result.Output, err)
	}

	check.Exists = true
	check.UpToDate = bytes.Equal(got, want)
	return check, nil
}

// StaleError describes an out-of-date or missing table of contents.
func (c *CheckResult) StaleError() error {
	if c.UpToDate {
		return nil
	}
	msg := "table of contents is out of date: " + c.Output
	if !c.Exists {
		msg = "table of contents does not exist: " + c.Output
	}
	return tocerrors.New(tocerrors.ErrCodeIndexStale, msg, nil).
		WithDetail("path", c.Output).
		WithSuggestion("Run tocgen in the docs directory to regenerate it")
}
