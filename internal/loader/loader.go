// Package loader scans a documentation root and produces the raw
// navigation tree: directories become categories, supported files become
// documents. Sibling order out of the loader is the default order the
// resolver falls back to: declared sidebar positions ascending, then
// everything else lexicographically by key. The loader guarantees unique
// sibling keys; a collision is a load error, not a resolver concern.
package loader

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/dgallion1/docnav/internal/doctitle"
	"github.com/dgallion1/docnav/internal/navtree"
)

// DefaultRootTitle names the tree root when no category metadata
// overrides it.
const DefaultRootTitle = "Documentation"

// Loader walks one documentation filesystem.
type Loader struct {
	fsys fs.FS
	log  *slog.Logger
}

// Option adjusts a Loader.
type Option func(*Loader)

// WithLogger routes the loader's diagnostics through log.
func WithLogger(log *slog.Logger) Option {
	return func(l *Loader) { l.log = log }
}

// New returns a Loader over fsys.
func New(fsys fs.FS, opts ...Option) *Loader {
	l := &Loader{fsys: fsys, log: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Dir loads the documentation tree rooted at a directory on the host
// filesystem.
func Dir(ctx context.Context, dir string, opts ...Option) (*navtree.Node, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("docs root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("docs root %s: not a directory", dir)
	}
	return New(os.DirFS(dir), opts...).Load(ctx)
}

// Load walks the filesystem and returns the raw tree. The context is
// checked between directory reads so a large corpus can be abandoned
// mid-walk.
func (l *Loader) Load(ctx context.Context) (*navtree.Node, error) {
	root := &navtree.Node{Kind: navtree.KindCategory, Title: DefaultRootTitle}
	if err := l.loadDir(ctx, root, "."); err != nil {
		return nil, err
	}
	return root, nil
}

func (l *Loader) loadDir(ctx context.Context, parent *navtree.Node, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := l.applyCategoryMeta(dir, parent); err != nil {
		return err
	}

	entries, err := fs.ReadDir(l.fsys, dir)
	if err != nil {
		return fmt.Errorf("read dir %s: %w", dir, err)
	}

	type sibling struct {
		node     *navtree.Node
		declared bool
	}
	var kids []sibling

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}
		sub := path.Join(dir, name)

		if entry.IsDir() {
			key := navtree.Slugify(name)
			if key == "" {
				return fmt.Errorf("load %s: directory name %q yields an empty key", dir, name)
			}
			node := &navtree.Node{
				Path:       parent.ChildPath(key),
				Key:        key,
				Kind:       navtree.KindCategory,
				Title:      navtree.Humanize(name),
				SourcePath: sub,
			}
			if err := l.loadDir(ctx, node, sub); err != nil {
				return err
			}
			kids = append(kids, sibling{node: node, declared: node.Position != 0})
			continue
		}

		if !doctitle.IsSupportedExtension(name) {
			continue
		}
		node, err := l.loadDocument(parent, sub)
		if err != nil {
			return err
		}
		if node == nil {
			continue
		}
		kids = append(kids, sibling{node: node, declared: node.Position != 0})
	}

	sort.SliceStable(kids, func(i, j int) bool {
		a, b := kids[i], kids[j]
		if a.declared != b.declared {
			return a.declared
		}
		if a.declared && a.node.Position != b.node.Position {
			return a.node.Position < b.node.Position
		}
		return a.node.Key < b.node.Key
	})

	seen := make(map[string]string, len(kids))
	for _, kid := range kids {
		if prev, dup := seen[kid.node.Key]; dup {
			return fmt.Errorf("load %s: duplicate key %q (%s and %s)", dir, kid.node.Key, prev, kid.node.SourcePath)
		}
		seen[kid.node.Key] = kid.node.SourcePath
		parent.Children = append(parent.Children, kid.node)
	}
	return nil
}

// loadDocument builds a document node, or returns nil for drafts.
func (l *Loader) loadDocument(parent *navtree.Node, p string) (*navtree.Node, error) {
	fm, err := l.readFrontmatter(p)
	if err != nil {
		return nil, err
	}
	if fm.Draft {
		l.log.Debug("skipping draft", "path", p)
		return nil, nil
	}

	stem := doctitle.Stem(p)
	raw := stem
	if fm.Slug != "" {
		raw = fm.Slug
	}
	key := navtree.Slugify(raw)
	if key == "" {
		return nil, fmt.Errorf("load %s: %q yields an empty key", p, raw)
	}

	title := strings.TrimSpace(fm.Title)
	if title == "" {
		title = doctitle.FromFile(l.fsys, p)
	}

	return &navtree.Node{
		Path:       parent.ChildPath(key),
		Key:        key,
		Kind:       navtree.KindDocument,
		Title:      title,
		Position:   fm.SidebarPosition,
		SourcePath: p,
	}, nil
}
