package metadata

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	tocerrors "github.com/Aman-CERP/tocgen/internal/errors"
)

const (
	// TitlePrefix marks the line holding the document title.
	TitlePrefix = "title:"
	// SlugPrefix marks the line holding the document slug.
	SlugPrefix = "slug:"
	// Separator splits a header line into key and value.
	Separator = ": "
)

// Record is the metadata pair extracted from one document.
// Field order is the JSON key order of the table of contents.
type Record struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// state tracks which header fields have been found so far.
type state int

const (
	stateNeedBoth state = iota
	stateHaveTitle
	stateHaveSlug
	stateDone
)

func (s state) String() string {
	switch s {
	case stateNeedBoth:
		return "need_both"
	case stateHaveTitle:
		return "have_title"
	case stateHaveSlug:
		return "have_slug"
	case stateDone:
		return "done"
	default:
		return "unknown"
	}
}

// extractor is the per-document state machine.
type extractor struct {
	state state
	title string
	slug  string
}

// next advances the state for the field that was just set.
func (e *extractor) next() {
	switch {
	case e.title != "" && e.slug != "":
		e.state = stateDone
	case e.title != "":
		e.state = stateHaveTitle
	case e.slug != "":
		e.state = stateHaveSlug
	default:
		e.state = stateNeedBoth
	}
}

// feed consumes one line. It returns an error for a header line without the
// separator.
func (e *extractor) feed(line string) error {
	var field *string
	switch {
	case strings.HasPrefix(line, TitlePrefix):
		field = &e.title
	case strings.HasPrefix(line, SlugPrefix):
		field = &e.slug
	default:
		return nil
	}

	value, ok := SplitField(line)
	if !ok {
		return errMissingSeparator
	}
	// An empty value clears the field again.
	*field = value
	e.next()
	return nil
}

var errMissingSeparator = errors.New("missing \": \" separator")

// SplitField splits a header line once on ": " and returns the trimmed value.
// ok is false when the line has no separator.
func SplitField(line string) (value string, ok bool) {
	_, value, ok = strings.Cut(line, Separator)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(value), true
}

// Parse reads r line by line until both title and slug are known.
// It returns nil and no error when either field is missing.
// name identifies the document in errors.
func Parse(name string, r io.Reader) (*Record, error) {
	br := bufio.NewReader(r)
	e := &extractor{}

	for lineNo := 1; e.state != stateDone; lineNo++ {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, tocerrors.IOError(tocerrors.ErrCodeReadFailed, "failed to read "+name, err).
				WithDetail("file", name)
		}
		if line == "" && err != nil {
			break
		}

		line = strings.TrimRight(line, "\r\n")
		if ferr := e.feed(line); ferr != nil {
			return nil, tocerrors.New(tocerrors.ErrCodeMalformedMetadata,
				"header line in "+name+" has no \": \" separator", ferr).
				WithDetail("file", name).
				WithDetail("line", strconv.Itoa(lineNo)).
				WithSuggestion("Write header fields as 'title: <value>' and 'slug: <value>'")
		}

		if err != nil {
			break
		}
	}

	if e.state != stateDone {
		slog.Debug("document has incomplete metadata",
			slog.String("file", name),
			slog.String("state", e.state.String()))
		return nil, nil
	}

	return &Record{Title: e.title, Slug: e.slug}, nil
}

// Extract opens the file at path and parses its metadata.
func Extract(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, tocerrors.IOError(tocerrors.ErrCodeReadFailed, "failed to open "+path, err).
			WithDetail("file", path)
	}
	defer func() { _ = f.Close() }()

	return Parse(path, f)
}
