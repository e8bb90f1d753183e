// Package toc builds and writes the table of contents of a docs directory.
//
// A run lists the candidate documents, extracts each one's title and slug,
// sorts the records by title and writes them as an indented JSON array.
// The run either completes or fails before anything is written.
package toc

import (
	"github.com/Aman-CERP/tocgen/internal/config"
	"github.com/Aman-CERP/tocgen/internal/metadata"
	"github.com/Aman-CERP/tocgen/internal/scanner"
)

// Options configures a run.
type Options struct {
	// Dir is the docs directory (default: working directory).
	Dir string

	// Output is the table of contents path. Relative paths are resolved
	// against Dir (default: table_of_contents.json).
	Output string

	// Scan selects the candidate files.
	Scan scanner.Options

	// OnMalformed decides whether a malformed header aborts the run
	// (default: fail).
	OnMalformed config.MalformedPolicy

	// Indent is the number of spaces per JSON level. Zero puts every value
	// on its own line without indentation; negative values produce compact
	// output. The zero Options value therefore differs from DefaultOptions.
	Indent int

	// Lock serializes concurrent writers of the same output file.
	Lock bool
}

// DefaultOptions returns the options of a plain invocation in the working
// directory.
func DefaultOptions() Options {
	return OptionsFromConfig(config.NewConfig(), ".")
}

// OptionsFromConfig maps a loaded configuration onto run options for dir.
func OptionsFromConfig(cfg *config.Config, dir string) Options {
	return Options{
		Dir:         dir,
		Output:      cfg.Output.Path,
		Scan:        cfg.ScanOptions(),
		OnMalformed: cfg.Metadata.OnMalformed,
		Indent:      cfg.Output.Indent,
		Lock:        cfg.Output.Lock,
	}
}

// withDefaults fills unset fields.
func (o Options) withDefaults() Options {
	if o.Dir == "" {
		o.Dir = "."
	}
	if o.Output == "" {
		o.Output = config.DefaultOutputName
	}
	if o.OnMalformed == "" {
		o.OnMalformed = config.MalformedFail
	}
	return o
}

// outputPath resolves Output against Dir.
func (o Options) outputPath() string {
	return resolve(o.Dir, o.Output)
}

// Result describes a completed build.
type Result struct {
	// Records is the table of contents, sorted by title. Never nil.
	Records []metadata.Record

	// Candidates is the number of files that passed the scanner filter.
	Candidates int

	// Skipped lists candidates without both a title and a slug.
	Skipped []string

	// Malformed lists candidates skipped for a malformed header.
	// Only populated with the skip policy.
	Malformed []string

	// Output is the resolved output path.
	Output string
}

// CheckResult describes a comparison of the generated table of contents
// with the file on disk.
type CheckResult struct {
	*Result

	// UpToDate is true when the file on disk matches byte for byte.
	UpToDate bool

	// Exists is false when there is no output file yet.
	Exists bool
}
