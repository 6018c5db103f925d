package clippings

import "strings"

const entrySeparator = "=========="

// RawBlock is the list of raw lines found between two separators.
type RawBlock []string

// Segment splits the content of a clippings file into blocks. Both "\n" and
// "\r\n" line endings are accepted. Regions holding no line at all (two
// adjacent separators) are not returned.
func Segment(content string) []RawBlock {
	var blocks []RawBlock
	var current RawBlock

	for _, line := range splitLines(content) {
		if isSeparator(line) {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}

	// Last entry when the file doesn't end with a separator
	if len(current) > 0 {
		blocks = append(blocks, current)
	}

	return blocks
}

// splitLines behaves like bufio.ScanLines: the final newline doesn't yield
// an extra empty line and a trailing "\r" is dropped from every line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func isSeparator(line string) bool {
	return strings.TrimRight(line, " \t\r") == entrySeparator
}
