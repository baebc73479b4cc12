// Package paginate flattens a resolved navigation tree into the linear
// reading sequence: one PageRef per document, in sidebar order, with
// breadcrumb trails and prev/next links for the rendering layer.
package paginate

import (
	"github.com/dgallion1/docnav/internal/navtree"
)

// PageRef locates one document in the reading sequence.
type PageRef struct {
	Path       string   `json:"path"`
	Title      string   `json:"title"`
	Breadcrumb []string `json:"breadcrumb,omitempty"`
	Prev       string   `json:"prev,omitempty"`
	Next       string   `json:"next,omitempty"`
}

// Pages walks tree depth-first in its current sibling order and returns
// the document sequence. Categories contribute breadcrumb segments but no
// pages of their own.
func Pages(tree *navtree.Node) []PageRef {
	if tree == nil {
		return nil
	}
	var pages []PageRef
	for _, child := range tree.Children {
		walkNode(child, nil, &pages)
	}
	link(pages)
	return pages
}

func walkNode(node *navtree.Node, breadcrumb []string, pages *[]PageRef) {
	var bc []string
	bc = append(bc, breadcrumb...)
	if node.Title != "" {
		bc = append(bc, node.Title)
	}

	if node.Kind == navtree.KindDocument {
		*pages = append(*pages, PageRef{
			Path:       node.PathString(),
			Title:      node.Title,
			Breadcrumb: copyBreadcrumb(bc),
		})
	}

	for _, child := range node.Children {
		walkNode(child, bc, pages)
	}
}

// link fills Prev/Next on adjacent pages.
func link(pages []PageRef) {
	for i := range pages {
		if i > 0 {
			pages[i].Prev = pages[i-1].Path
		}
		if i < len(pages)-1 {
			pages[i].Next = pages[i+1].Path
		}
	}
}

func copyBreadcrumb(bc []string) []string {
	if len(bc) == 0 {
		return nil
	}
	out := make([]string, len(bc))
	copy(out, bc)
	return out
}
