package clippings

import (
	"regexp"
	"strings"
)

// Prefixes written by a French-localized Kindle.
const (
	DefaultBookmarkPrefix  = "- Votre signet"
	DefaultHighlightPrefix = "- Votre surlignement"
	DefaultNotePrefix      = "- Votre note"
)

// Markers holds the localized prefixes of the metadata lines that carry no
// note content. It is immutable once built and safe for concurrent use.
type Markers struct {
	bookmark  string
	highlight string
	note      string

	useless *regexp.Regexp
}

// NewMarkers builds a Markers from the three prefixes. The prefixes are
// matched literally at the start of a line, so an empty prefix matches
// every line.
func NewMarkers(bookmark, highlight, note string) *Markers {
	m := &Markers{
		bookmark:  bookmark,
		highlight: highlight,
		note:      note,
	}

	alternatives := make([]string, 0, 3)
	for _, prefix := range []string{highlight, bookmark, note} {
		alternatives = append(alternatives, regexp.QuoteMeta(prefix))
	}
	m.useless = regexp.MustCompile(`^(?:` + strings.Join(alternatives, "|") + `)`)

	return m
}

// DefaultMarkers returns the French-locale markers.
func DefaultMarkers() *Markers {
	return NewMarkers(DefaultBookmarkPrefix, DefaultHighlightPrefix, DefaultNotePrefix)
}

func (m *Markers) Bookmark() string  { return m.bookmark }
func (m *Markers) Highlight() string { return m.highlight }
func (m *Markers) Note() string      { return m.note }

// IsUseless reports whether a raw line carries no note content: it is the
// empty string or begins with one of the marker prefixes. Marker lines are
// followed by location and date metadata, hence the prefix match.
func (m *Markers) IsUseless(line string) bool {
	if line == "" {
		return true
	}
	return m.useless.MatchString(line)
}
