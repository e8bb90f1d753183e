// Package scanner enumerates the candidate documents of a docs directory.
// Only the top level of the directory is listed; subdirectories are never
// entered.
package scanner

const (
	// DefaultExtension is the suffix a document name must end with.
	DefaultExtension = ".md"

	// DefaultIndexName is the landing page that embeds the generated table
	// of contents, so it is never listed in it.
	DefaultIndexName = "index.md"
)

// Options configures which directory entries are candidates.
type Options struct {
	// Extension is the required name suffix (default ".md").
	Extension string

	// Exclude lists exact file names that are never candidates
	// (default ["index.md"]).
	Exclude []string
}

// DefaultOptions returns the options matching the documented contract.
func DefaultOptions() Options {
	return Options{
		Extension: DefaultExtension,
		Exclude:   []string{DefaultIndexName},
	}
}

// withDefaults fills unset fields.
func (o Options) withDefaults() Options {
	if o.Extension == "" {
		o.Extension = DefaultExtension
	}
	if o.Exclude == nil {
		o.Exclude = []string{DefaultIndexName}
	}
	return o
}
