package loader

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// frontmatter holds the fields the loader reads from a Markdown file's
// leading YAML block. Everything else in the block is ignored.
type frontmatter struct {
	Title           string `yaml:"title"`
	Slug            string `yaml:"slug"`
	SidebarPosition int    `yaml:"sidebar_position"`
	Draft           bool   `yaml:"draft"`
}

var frontmatterExts = map[string]bool{".md": true, ".markdown": true, ".mdx": true}

// readFrontmatter parses the frontmatter of a Markdown-family file.
// Other formats get a zero value. A block that is present but not valid
// YAML is a load error.
func (l *Loader) readFrontmatter(p string) (frontmatter, error) {
	var fm frontmatter
	if !frontmatterExts[strings.ToLower(path.Ext(p))] {
		return fm, nil
	}

	src, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return fm, fmt.Errorf("read %s: %w", p, err)
	}
	block, ok := frontmatterBlock(src)
	if !ok {
		return fm, nil
	}
	if err := yaml.Unmarshal(block, &fm); err != nil {
		return fm, fmt.Errorf("%s: frontmatter: %w", p, err)
	}
	return fm, nil
}

// frontmatterBlock returns the bytes between the opening and closing ---
// fences, if the file starts with a terminated block.
func frontmatterBlock(src []byte) ([]byte, bool) {
	const fence = "---"
	line, rest, ok := bytes.Cut(src, []byte("\n"))
	if !ok || string(bytes.TrimRight(line, "\r")) != fence {
		return nil, false
	}
	var block bytes.Buffer
	for {
		line, rest, ok = bytes.Cut(rest, []byte("\n"))
		if string(bytes.TrimRight(line, "\r")) == fence {
			return block.Bytes(), true
		}
		if !ok {
			return nil, false
		}
		block.Write(line)
		block.WriteByte('\n')
	}
}
