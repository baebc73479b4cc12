package navtree

import (
	"fmt"
	"strings"
)

// Separator joins path segments into the logical path strings used for
// order-config lookups (e.g. "javascript/beginners-guide").
const Separator = "/"

// RootPath is the reserved path string addressing the tree root.
const RootPath = "."

// Kind distinguishes categories (directories) from documents (content files).
type Kind string

const (
	KindCategory Kind = "category"
	KindDocument Kind = "document"
)

// Node is one category or document in the navigation tree.
type Node struct {
	Path       []string `json:"-"`                    // Segments from the root; empty for the root itself.
	Key        string   `json:"key"`                  // Last path segment; the ordering identifier at the parent level.
	Kind       Kind     `json:"kind"`                 // Category or document.
	Title      string   `json:"title"`                // Display title resolved by the loader.
	Position   int      `json:"position,omitempty"`   // Declared sidebar position (0 = undeclared).
	SourcePath string   `json:"source_path,omitempty"` // File or directory relative to the docs root.
	Children   []*Node  `json:"children,omitempty"`   // Sibling order is meaningful; empty for documents.
}

// PathString returns the joined logical path, or RootPath for the root node.
func (n *Node) PathString() string {
	if len(n.Path) == 0 {
		return RootPath
	}
	return strings.Join(n.Path, Separator)
}

// IsRoot reports whether this node is the tree root.
func (n *Node) IsRoot() bool {
	return len(n.Path) == 0
}

// Child returns the direct child with the given key, or nil.
func (n *Node) Child(key string) *Node {
	for _, c := range n.Children {
		if c.Key == key {
			return c
		}
	}
	return nil
}

// ChildKeys returns the keys of the direct children in their current order.
func (n *Node) ChildKeys() []string {
	keys := make([]string, len(n.Children))
	for i, c := range n.Children {
		keys[i] = c.Key
	}
	return keys
}

// Walk visits n and every descendant in depth-first, sibling order.
// Returning an error from fn stops the walk and propagates the error.
func (n *Node) Walk(fn func(*Node) error) error {
	if err := fn(n); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := c.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy of the subtree rooted at n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		Key:        n.Key,
		Kind:       n.Kind,
		Title:      n.Title,
		Position:   n.Position,
		SourcePath: n.SourcePath,
	}
	if n.Path != nil {
		out.Path = make([]string, len(n.Path))
		copy(out.Path, n.Path)
	}
	if n.Children != nil {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// CountNodes returns the number of nodes in the subtree, including n.
func (n *Node) CountNodes() int {
	count := 0
	n.Walk(func(*Node) error {
		count++
		return nil
	})
	return count
}

// Validate checks the structural invariants the loader is required to uphold:
// unique sibling keys, each key equal to its last path segment, child paths
// extending the parent path by exactly one segment, and documents having no
// children. The first violation is returned with the offending path.
func (n *Node) Validate() error {
	if !n.IsRoot() && n.Key != n.Path[len(n.Path)-1] {
		return fmt.Errorf("navtree: node %q: key %q does not match last path segment", n.PathString(), n.Key)
	}
	if n.Kind == KindDocument && len(n.Children) > 0 {
		return fmt.Errorf("navtree: document %q has %d children", n.PathString(), len(n.Children))
	}
	seen := make(map[string]bool, len(n.Children))
	for _, c := range n.Children {
		if c == nil {
			return fmt.Errorf("navtree: node %q has a nil child", n.PathString())
		}
		if c.Key == "" {
			return fmt.Errorf("navtree: node %q has a child with an empty key", n.PathString())
		}
		if seen[c.Key] {
			return fmt.Errorf("navtree: duplicate sibling key %q under %q", c.Key, n.PathString())
		}
		seen[c.Key] = true
		if len(c.Path) != len(n.Path)+1 {
			return fmt.Errorf("navtree: child %q of %q has path depth %d, expected %d", c.Key, n.PathString(), len(c.Path), len(n.Path)+1)
		}
		for i := range n.Path {
			if c.Path[i] != n.Path[i] {
				return fmt.Errorf("navtree: child %q of %q does not extend its parent path", c.Key, n.PathString())
			}
		}
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ChildPath builds the path slice for a child of n with the given key.
func (n *Node) ChildPath(key string) []string {
	path := make([]string, 0, len(n.Path)+1)
	path = append(path, n.Path...)
	return append(path, key)
}
