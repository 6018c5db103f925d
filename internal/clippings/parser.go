package clippings

import (
	"io"
	"os"
	"unicode/utf8"

	"github.com/mrlokans/clippings/internal/entities"
)

// ParseResult holds the notes found in a clippings file.
type ParseResult struct {
	Notes entities.NoteCollection
	// Blocks is the number of non-empty entries in the file.
	Blocks int
	// Skipped counts entries that produced no note (no title, or nothing
	// but marker lines).
	Skipped int
}

// Parser parses Kindle My Clippings.txt content. It holds no mutable state
// and can be reused for any number of files.
type Parser struct {
	markers *Markers
}

// NewParser creates a parser classifying lines with markers. A nil markers
// falls back to DefaultMarkers.
func NewParser(markers *Markers) *Parser {
	if markers == nil {
		markers = DefaultMarkers()
	}
	return &Parser{markers: markers}
}

// ParseFile reads and parses the clippings file at path. Any failure to
// open or read it is returned as an *IOError and no notes are returned.
func (p *Parser) ParseFile(path string) (*ParseResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	defer file.Close()

	result, err := p.Parse(file)
	if err != nil {
		if ioErr, ok := err.(*IOError); ok {
			ioErr.Path = path
		}
		return nil, err
	}
	return result, nil
}

// Parse reads the whole of r and returns its notes in order of appearance.
func (p *Parser) Parse(r io.Reader) (*ParseResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &IOError{Err: err}
	}
	if !utf8.Valid(data) {
		return nil, &IOError{Err: ErrInvalidEncoding}
	}

	blocks := Segment(string(data))
	result := &ParseResult{
		Notes:  make(entities.NoteCollection, 0, len(blocks)),
		Blocks: len(blocks),
	}

	for _, block := range blocks {
		note, ok := BuildNote(block, p.markers)
		if !ok {
			result.Skipped++
			continue
		}
		result.Notes = append(result.Notes, note)
	}

	return result, nil
}

// ParseFile parses the clippings file at path with the given markers.
func ParseFile(path string, markers *Markers) (entities.NoteCollection, error) {
	result, err := NewParser(markers).ParseFile(path)
	if err != nil {
		return nil, err
	}
	return result.Notes, nil
}
