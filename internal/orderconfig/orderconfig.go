// Package orderconfig holds the path-keyed sidebar ordering configuration:
// for a logical category path, the explicit order its children should appear
// in. Paths not present in the config fall back to the loader's default
// order; that absence is a first-class case, not an error.
package orderconfig

import (
	"fmt"
	"strings"

	"github.com/dgallion1/docnav/internal/navtree"
)

// Policy controls how the resolver treats configured keys that match no
// actual child.
type Policy string

const (
	// PolicyWarn reports unknown keys as warnings and ignores them.
	PolicyWarn Policy = "warn"
	// PolicyStrict fails resolution when any configured key is unknown.
	PolicyStrict Policy = "strict"
	// PolicySilent ignores unknown keys without reporting them.
	PolicySilent Policy = "silent"
)

// ParsePolicy converts a config/flag string into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyWarn, "":
		return PolicyWarn, nil
	case PolicyStrict:
		return PolicyStrict, nil
	case PolicySilent:
		return PolicySilent, nil
	default:
		return "", fmt.Errorf("sidebar config: unknown policy %q (must be warn, strict, or silent)", s)
	}
}

// Config maps logical category paths to explicit child key orders.
// The root level is addressed by navtree.RootPath (".").
type Config struct {
	entries map[string][]string
	policy  Policy
}

// New builds a Config from a raw mapping, normalizing path keys and
// validating every entry. A nil or empty mapping is a valid, empty config.
func New(entries map[string][]string, policy Policy) (*Config, error) {
	if policy == "" {
		policy = PolicyWarn
	}
	cfg := &Config{
		entries: make(map[string][]string, len(entries)),
		policy:  policy,
	}
	for rawPath, keys := range entries {
		path, err := normalizePath(rawPath)
		if err != nil {
			return nil, err
		}
		if _, dup := cfg.entries[path]; dup {
			return nil, fmt.Errorf("sidebar config: duplicate entry for path %q", path)
		}
		seen := make(map[string]bool, len(keys))
		order := make([]string, 0, len(keys))
		for _, key := range keys {
			key = strings.TrimSpace(key)
			if key == "" {
				return nil, fmt.Errorf("sidebar config: path %q: empty key in order list", path)
			}
			if strings.Contains(key, navtree.Separator) {
				return nil, fmt.Errorf("sidebar config: path %q: key %q must not contain %q (one segment per list entry)", path, key, navtree.Separator)
			}
			if seen[key] {
				return nil, fmt.Errorf("sidebar config: path %q: key %q listed twice", path, key)
			}
			seen[key] = true
			order = append(order, key)
		}
		cfg.entries[path] = order
	}
	return cfg, nil
}

// Empty returns a config with no entries and the default policy. Resolving
// against it leaves every level in loader order.
func Empty() *Config {
	cfg, _ := New(nil, PolicyWarn)
	return cfg
}

// Entry returns the explicit key order configured for path, and whether an
// entry exists. The returned slice must not be modified.
func (c *Config) Entry(path string) ([]string, bool) {
	keys, ok := c.entries[path]
	return keys, ok
}

// Policy returns the unknown-key policy for this config.
func (c *Config) Policy() Policy {
	return c.policy
}

// WithPolicy returns a copy of c that resolves under policy. The entry
// mapping is shared; configs are read-only after construction.
func (c *Config) WithPolicy(policy Policy) *Config {
	return &Config{entries: c.entries, policy: policy}
}

// Len returns the number of configured paths.
func (c *Config) Len() int {
	return len(c.entries)
}

// Paths returns every configured path (unordered).
func (c *Config) Paths() []string {
	paths := make([]string, 0, len(c.entries))
	for p := range c.entries {
		paths = append(paths, p)
	}
	return paths
}

// normalizePath canonicalizes a config path key: the empty string and "."
// both address the root; other paths must be clean separator-joined
// segments with no leading, trailing, or doubled separators.
func normalizePath(raw string) (string, error) {
	p := strings.TrimSpace(raw)
	if p == "" || p == navtree.RootPath {
		return navtree.RootPath, nil
	}
	if strings.HasPrefix(p, navtree.Separator) || strings.HasSuffix(p, navtree.Separator) {
		return "", fmt.Errorf("sidebar config: path %q must not start or end with %q", raw, navtree.Separator)
	}
	for _, seg := range strings.Split(p, navtree.Separator) {
		if seg == "" {
			return "", fmt.Errorf("sidebar config: path %q contains an empty segment", raw)
		}
	}
	return p, nil
}
