package clippings

import (
	"strings"

	"github.com/mrlokans/clippings/internal/entities"
)

const byteOrderMark = "\uFEFF"

// BuildNote turns a block into a note. It reports false when the block has
// no title or when nothing is left of the body once marker and empty lines
// are removed. Such blocks are dropped by the parser without an error.
func BuildNote(block RawBlock, markers *Markers) (entities.Note, bool) {
	if len(block) == 0 {
		return entities.Note{}, false
	}

	title := cleanTitle(block[0])
	if title == "" {
		return entities.Note{}, false
	}

	var body strings.Builder
	for _, line := range block[1:] {
		if markers.IsUseless(line) {
			continue
		}
		if body.Len() > 0 {
			body.WriteByte('\n')
		}
		body.WriteString(line)
	}

	if body.Len() == 0 {
		return entities.Note{}, false
	}

	return entities.Note{
		Title: title,
		Body:  body.String(),
	}, true
}

// The device prepends a byte order mark to the first entry of the file.
func cleanTitle(line string) string {
	title := strings.TrimSpace(line)
	title = strings.TrimPrefix(title, byteOrderMark)
	return strings.TrimSpace(title)
}
