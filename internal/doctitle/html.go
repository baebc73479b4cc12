package doctitle

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// HTMLExtractor prefers the <title> tag, then the first heading tag in
// document order.
type HTMLExtractor struct{}

func (e *HTMLExtractor) Title(r io.Reader, filename string) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	if title := findTitle(doc); title != "" {
		return title, nil
	}
	if h := findHeading(doc); h != nil {
		return textContent(h), nil
	}
	return "", nil
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findHeading(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && headingLevel(n.Data) > 0 {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if h := findHeading(c); h != nil {
			return h
		}
	}
	return nil
}
