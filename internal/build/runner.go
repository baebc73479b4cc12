package build

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/docnav/internal/loader"
	"github.com/dgallion1/docnav/internal/navtree"
	"github.com/dgallion1/docnav/internal/orderconfig"
	"github.com/dgallion1/docnav/internal/paginate"
	"github.com/dgallion1/docnav/internal/resolver"
)

// Runner builds one root end to end: load the raw tree, resolve sibling
// order against the sidebar config, derive the reading sequence.
type Runner struct {
	sidebarFile string
	policy      orderconfig.Policy
	log         *slog.Logger
}

// NewRunner returns a Runner. sidebarFile, when non-empty, overrides the
// per-root config probe; policy, when non-empty, overrides the policy
// declared in the config file.
func NewRunner(sidebarFile string, policy orderconfig.Policy, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{sidebarFile: sidebarFile, policy: policy, log: log}
}

// Result is the outcome of building one root.
type Result struct {
	Root       string             `json:"root"`
	BuiltAt    time.Time          `json:"built_at"`
	DurationMs int64              `json:"duration_ms"`
	Documents  int                `json:"documents"`
	Categories int                `json:"categories"`
	Tree       *navtree.Node      `json:"tree"`
	Pages      []paginate.PageRef `json:"pages"`
	Report     *resolver.Report   `json:"report"`
}

// Build loads root.Dir, resolves it, and returns the result. Resolution
// findings are logged here, once per build, and kept on the Result for
// callers that surface them elsewhere.
func (r *Runner) Build(ctx context.Context, root Root) (*Result, error) {
	start := time.Now()
	log := r.log.With("root", root.Key)

	tree, err := loader.Dir(ctx, root.Dir, loader.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", root.Key, err)
	}

	cfg, err := r.sidebarConfig(root.Dir)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", root.Key, err)
	}

	resolved, report, err := resolver.Resolve(tree, cfg)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", root.Key, err)
	}
	report.Log(log)

	res := &Result{
		Root:       root.Key,
		BuiltAt:    time.Now().UTC(),
		DurationMs: time.Since(start).Milliseconds(),
		Tree:       resolved,
		Pages:      paginate.Pages(resolved),
		Report:     report,
	}
	resolved.Walk(func(n *navtree.Node) error {
		switch n.Kind {
		case navtree.KindDocument:
			res.Documents++
		case navtree.KindCategory:
			if !n.IsRoot() {
				res.Categories++
			}
		}
		return nil
	})

	log.Info("build complete",
		"documents", res.Documents,
		"categories", res.Categories,
		"warnings", len(report.Warnings),
		"notices", len(report.Notices),
		"duration_ms", res.DurationMs)
	return res, nil
}

// sidebarConfig locates and loads the sidebar config for one root: an
// explicit file if the Runner has one, otherwise the default names
// probed inside the root. No file means an empty config.
func (r *Runner) sidebarConfig(dir string) (*orderconfig.Config, error) {
	path := r.sidebarFile
	if path == "" {
		path = orderconfig.Find(dir)
	}

	cfg := orderconfig.Empty()
	if path != "" {
		loaded, err := orderconfig.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if r.policy != "" {
		cfg = cfg.WithPolicy(r.policy)
	}
	return cfg, nil
}
