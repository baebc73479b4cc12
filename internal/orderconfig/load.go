package orderconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFileNames are the sidebar file names probed, in order, when no
// explicit config path is given. YAML is a superset of JSON, so a single
// decoder covers both.
var DefaultFileNames = []string{"sidebar.yaml", "sidebar.yml", "sidebar.json"}

// fileSchema is the wrapped on-disk form:
//
//	policy: strict
//	order:
//	  ".": [javascript, java]
//	  javascript: [01-introduction, 02-variables]
type fileSchema struct {
	Policy string              `yaml:"policy" json:"policy"`
	Order  map[string][]string `yaml:"order" json:"order"`
}

// Load reads and parses a sidebar config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sidebar config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes sidebar config bytes. Both the wrapped form (an order
// mapping plus an optional policy) and a bare path-to-keys mapping are
// accepted; the bare form always uses the default policy.
func Parse(data []byte) (*Config, error) {
	var wrapped fileSchema
	if err := yaml.Unmarshal(data, &wrapped); err == nil && (wrapped.Order != nil || wrapped.Policy != "") {
		policy, perr := ParsePolicy(wrapped.Policy)
		if perr != nil {
			return nil, perr
		}
		return New(wrapped.Order, policy)
	}

	var bare map[string][]string
	if err := yaml.Unmarshal(data, &bare); err != nil {
		return nil, fmt.Errorf("parse sidebar config: %w", err)
	}
	return New(bare, PolicyWarn)
}

// Find probes dir for a sidebar config under the default file names and
// returns the first that exists, or "" when the directory carries none.
func Find(dir string) string {
	for _, name := range DefaultFileNames {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}
