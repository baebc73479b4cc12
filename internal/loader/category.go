package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/dgallion1/docnav/internal/navtree"
)

// categoryMeta is the _category_ metadata file a directory may carry to
// override its display label and declare a sidebar position.
type categoryMeta struct {
	Label    string `yaml:"label"`
	Position int    `yaml:"position"`
}

var categoryFileNames = []string{"_category_.yaml", "_category_.yml", "_category_.json"}

// applyCategoryMeta overrides node's title and position from the first
// _category_ file found in dir, if any.
func (l *Loader) applyCategoryMeta(dir string, node *navtree.Node) error {
	for _, name := range categoryFileNames {
		p := path.Join(dir, name)
		data, err := fs.ReadFile(l.fsys, p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}

		var meta categoryMeta
		if err := yaml.Unmarshal(data, &meta); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		if meta.Label != "" {
			node.Title = meta.Label
		}
		if meta.Position != 0 {
			node.Position = meta.Position
		}
		return nil
	}
	return nil
}
