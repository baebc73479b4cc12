package doctitle

import (
	"bufio"
	"io"
	"strings"
)

// TextExtractor takes the first non-blank line of a plain text file,
// minus any Markdown-style heading markers someone left in a .txt.
type TextExtractor struct{}

func (e *TextExtractor) Title(r io.Reader, filename string) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		return strings.TrimSpace(strings.TrimLeft(line, "#")), nil
	}
	return "", scanner.Err()
}
