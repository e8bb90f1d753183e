package toc

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Aman-CERP/tocgen/internal/config"
	tocerrors "github.com/Aman-CERP/tocgen/internal/errors"
	"github.com/Aman-CERP/tocgen/internal/metadata"
	"github.com/Aman-CERP/tocgen/internal/scanner"
)

// Build scans the docs directory and returns the sorted table of contents.
// Nothing is written.
func Build(ctx context.Context, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	names, err := scanner.Candidates(opts.Dir, opts.Scan)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Records:    make([]metadata.Record, 0, len(names)),
		Candidates: len(names),
		Output:     opts.outputPath(),
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, tocerrors.New(tocerrors.ErrCodeCanceled, "build canceled", err)
		}

		record, err := metadata.Extract(filepath.Join(opts.Dir, name))
		if err != nil {
			if opts.OnMalformed == config.MalformedSkip && tocerrors.HasCode(err, tocerrors.ErrCodeMalformedMetadata) {
				slog.Warn("skipping document with malformed header", tocerrors.LogAttrs(err)...)
				result.Malformed = append(result.Malformed, name)
				continue
			}
			return nil, err
		}

		if record == nil {
			slog.Debug("skipping document without metadata", slog.String("file", name))
			result.Skipped = append(result.Skipped, name)
			continue
		}

		result.Records = append(result.Records, *record)
	}

	SortRecords(result.Records)

	slog.Info("table of contents built",
		slog.String("dir", opts.Dir),
		slog.Int("candidates", result.Candidates),
		slog.Int("records", len(result.Records)),
		slog.Int("skipped", len(result.Skipped)),
		slog.Int("malformed", len(result.Malformed)))

	return result, nil
}

// SortRecords orders records by title using byte-wise string comparison.
// Records with equal titles keep their relative order.
func SortRecords(records []metadata.Record) {
	slices.SortStableFunc(records, func(a, b metadata.Record) int {
		return strings.Compare(a.Title, b.Title)
	})
}

// Run builds the table of contents and writes it to the output file.
// On any error the output file is left untouched.
func Run(ctx context.Context, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	result, err := Build(ctx, opts)
	if err != nil {
		return nil, err
	}

	data, err := Encode(result.Records, opts.Indent)
	if err != nil {
		return nil, err
	}

	if err := Write(ctx, result.Output, data, opts.Lock); err != nil {
		return nil, err
	}

	slog.Info("table of contents written",
		slog.String("path", result.Output),
		slog.Int("bytes", len(data)))

	return result, nil
}

// resolve joins a relative path onto dir.
func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
