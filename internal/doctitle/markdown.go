package doctitle

import (
	"bytes"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownExtractor takes the first heading of a Markdown document as its
// title, at any level. MDX files go through the same path; their imports
// and JSX blocks parse as ordinary paragraphs and are skipped.
type MarkdownExtractor struct{}

func (e *MarkdownExtractor) Title(r io.Reader, filename string) (string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	src = stripFrontmatter(src)

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			return string(h.Text(src)), nil
		}
	}
	return "", nil
}

// stripFrontmatter removes a leading YAML frontmatter block so its closing
// fence is not read as a setext heading underline.
func stripFrontmatter(src []byte) []byte {
	const fence = "---"
	line, rest, ok := bytes.Cut(src, []byte("\n"))
	if !ok || string(bytes.TrimRight(line, "\r")) != fence {
		return src
	}
	for {
		line, rest, ok = bytes.Cut(rest, []byte("\n"))
		if string(bytes.TrimRight(line, "\r")) == fence {
			return rest
		}
		if !ok {
			// Unterminated block reads as content.
			return src
		}
	}
}
