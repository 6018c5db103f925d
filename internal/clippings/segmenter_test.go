package clippings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []RawBlock
	}{
		{
			name:    "empty content",
			content: "",
			want:    nil,
		},
		{
			name:    "no separator",
			content: "Title\n- Votre note\n\nText\n",
			want:    []RawBlock{{"Title", "- Votre note", "", "Text"}},
		},
		{
			name:    "two blocks with trailing separator",
			content: "A\na text\n==========\nB\nb text\n==========\n",
			want:    []RawBlock{{"A", "a text"}, {"B", "b text"}},
		},
		{
			name:    "crlf line endings",
			content: "A\r\na text\r\n==========\r\nB\r\nb text\r\n==========\r\n",
			want:    []RawBlock{{"A", "a text"}, {"B", "b text"}},
		},
		{
			name:    "adjacent separators are skipped",
			content: "==========\n==========\nA\na text\n==========\n==========\n",
			want:    []RawBlock{{"A", "a text"}},
		},
		{
			name:    "trailing whitespace after separator",
			content: "A\na text\n========== \t\nB\nb text",
			want:    []RawBlock{{"A", "a text"}, {"B", "b text"}},
		},
		{
			name:    "blank lines inside a block are kept",
			content: "A\n\n\na text\n\n==========\n",
			want:    []RawBlock{{"A", "", "", "a text", ""}},
		},
		{
			name:    "longer run of equals is content",
			content: "A\n===========\n",
			want:    []RawBlock{{"A", "==========="}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Segment(tt.content))
		})
	}
}

func TestSegment_BlockWithManyLinesIsNotSplit(t *testing.T) {
	content := "Title\nline 1\nline 2\nline 3\nline 4\nline 5\n==========\n"

	blocks := Segment(content)

	assert.Len(t, blocks, 1)
	assert.Len(t, blocks[0], 6)
}
