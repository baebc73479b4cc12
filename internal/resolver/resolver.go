// Package resolver computes the final sibling order for every level of a
// documentation tree. At each category it merges the explicit order from
// the sidebar config with the children the loader actually discovered:
// configured keys first, in configured order, then every unmentioned child
// in its original relative position. Nothing is ever dropped or invented;
// only sibling order changes.
package resolver

import (
	"fmt"

	"github.com/dgallion1/docnav/internal/navtree"
	"github.com/dgallion1/docnav/internal/orderconfig"
)

// Resolve returns a reordered copy of tree along with the findings
// collected during the pass. The input tree is never modified. A nil
// config resolves everything to loader order.
//
// Mismatches between config and tree are recoverable and handled per the
// config's policy; the only fatal conditions are a structurally invalid
// tree or, under the strict policy, a configured key that matches no
// child.
func Resolve(tree *navtree.Node, cfg *orderconfig.Config) (*navtree.Node, *Report, error) {
	if tree == nil {
		return nil, nil, fmt.Errorf("resolve: nil tree")
	}
	if cfg == nil {
		cfg = orderconfig.Empty()
	}
	if err := tree.Validate(); err != nil {
		return nil, nil, fmt.Errorf("resolve: %w", err)
	}

	out := tree.Clone()
	pass := &resolution{cfg: cfg, report: &Report{}}
	if err := pass.reorder(out); err != nil {
		return nil, nil, err
	}
	return out, pass.report, nil
}

// resolution carries the config and accumulated findings through one
// recursive pass.
type resolution struct {
	cfg    *orderconfig.Config
	report *Report
}

func (r *resolution) reorder(node *navtree.Node) error {
	if node.Kind == navtree.KindCategory {
		if keys, ok := r.cfg.Entry(node.PathString()); ok {
			ordered, err := r.apply(node, keys)
			if err != nil {
				return err
			}
			node.Children = ordered
		}
	}
	for _, child := range node.Children {
		if err := r.reorder(child); err != nil {
			return err
		}
	}
	return nil
}

// apply merges the configured key order with node's actual children.
// Configured keys come first, in listed order; keys matching no child are
// dropped per policy. Children the config never mentions keep their
// relative loader order and trail the explicit block.
func (r *resolution) apply(node *navtree.Node, keys []string) ([]*navtree.Node, error) {
	byKey := make(map[string]*navtree.Node, len(node.Children))
	for _, child := range node.Children {
		byKey[child.Key] = child
	}

	placed := make(map[string]bool, len(keys))
	ordered := make([]*navtree.Node, 0, len(node.Children))
	for _, key := range keys {
		child, found := byKey[key]
		if !found {
			switch r.cfg.Policy() {
			case orderconfig.PolicyStrict:
				return nil, fmt.Errorf("resolve %s: configured key %q matches no child", node.PathString(), key)
			case orderconfig.PolicySilent:
			default:
				r.report.Warnings = append(r.report.Warnings, Finding{Path: node.PathString(), Key: key})
			}
			continue
		}
		placed[key] = true
		ordered = append(ordered, child)
	}

	for _, child := range node.Children {
		if placed[child.Key] {
			continue
		}
		r.report.Notices = append(r.report.Notices, Finding{Path: node.PathString(), Key: child.Key})
		ordered = append(ordered, child)
	}
	return ordered, nil
}
