package build

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docnav/internal/navtree"
)

// Root pairs a navigation root key with the docs directory it is built
// from. The key names the root in API paths and manifest file names.
type Root struct {
	Key string `json:"key"`
	Dir string `json:"dir"`
}

// ParseRoots reads a comma-separated roots spec. Each element is either
// "name=dir" or a bare directory whose slugified base name becomes the
// key, so "docs" and "guides=content/guides" are both valid elements.
func ParseRoots(spec string) ([]Root, error) {
	var roots []Root
	seen := make(map[string]bool)
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var key, dir string
		if name, rest, ok := strings.Cut(part, "="); ok {
			key = navtree.Slugify(name)
			dir = strings.TrimSpace(rest)
		} else {
			dir = part
			key = navtree.Slugify(filepath.Base(filepath.Clean(part)))
		}
		if key == "" || dir == "" {
			return nil, fmt.Errorf("roots: malformed entry %q", part)
		}
		if seen[key] {
			return nil, fmt.Errorf("roots: duplicate key %q", key)
		}
		seen[key] = true
		roots = append(roots, Root{Key: key, Dir: dir})
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("roots: empty spec")
	}
	return roots, nil
}
