// Package doctitle extracts display titles from documentation source
// files. Each supported format has its own Extractor; the loader asks
// ForFile for the right one and falls back to a humanized filename stem
// when extraction yields nothing.
package doctitle

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/dgallion1/docnav/internal/navtree"
)

// Extractor pulls a display title out of raw document bytes.
type Extractor interface {
	Title(r io.Reader, filename string) (string, error)
}

// SupportedExtensions lists file extensions the loader treats as documents.
var SupportedExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".mdx":      true,
	".html":     true,
	".htm":      true,
	".txt":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate extractor for a filename.
func ForFile(filename string) (Extractor, error) {
	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".md", ".markdown", ".mdx":
		return &MarkdownExtractor{}, nil
	case ".html", ".htm":
		return &HTMLExtractor{}, nil
	case ".txt":
		return &TextExtractor{}, nil
	case ".pdf":
		return &PDFExtractor{}, nil
	case ".docx":
		return &DOCXExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(path.Ext(filename))
	return SupportedExtensions[ext]
}

// Stem returns the filename without directory or extension.
func Stem(filename string) string {
	base := path.Base(filename)
	return strings.TrimSuffix(base, path.Ext(base))
}

// FromFile extracts the best title for p inside fsys. It never fails:
// unreadable or titleless files get a humanized filename stem instead.
func FromFile(fsys fs.FS, p string) string {
	fallback := navtree.Humanize(Stem(p))

	ex, err := ForFile(p)
	if err != nil {
		return fallback
	}
	f, err := fsys.Open(p)
	if err != nil {
		return fallback
	}
	defer f.Close()

	title, err := ex.Title(f, path.Base(p))
	if err != nil {
		return fallback
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return fallback
	}
	return title
}
