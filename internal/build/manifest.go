package build

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dgallion1/docnav/internal/navtree"
	"github.com/dgallion1/docnav/internal/paginate"
)

// Manifest is the navigation artifact handed to rendering layers: the
// resolved tree plus the flattened reading sequence for one root.
type Manifest struct {
	Root        string             `json:"root"`
	GeneratedAt time.Time          `json:"generated_at"`
	Tree        *navtree.Node      `json:"tree"`
	Pages       []paginate.PageRef `json:"pages"`
	Summary     Summary            `json:"summary"`
}

// Summary condenses a build for consumers that only need counts.
type Summary struct {
	Documents  int   `json:"documents"`
	Categories int   `json:"categories"`
	Warnings   int   `json:"warnings"`
	Notices    int   `json:"notices"`
	DurationMs int64 `json:"duration_ms"`
}

// ManifestFor converts a build result into its manifest.
func ManifestFor(res *Result) *Manifest {
	return &Manifest{
		Root:        res.Root,
		GeneratedAt: res.BuiltAt,
		Tree:        res.Tree,
		Pages:       res.Pages,
		Summary: Summary{
			Documents:  res.Documents,
			Categories: res.Categories,
			Warnings:   len(res.Report.Warnings),
			Notices:    len(res.Report.Notices),
			DurationMs: res.DurationMs,
		},
	}
}

// WriteManifest writes m to dir/<root>.nav.json through a temp file and
// rename, so a reader never observes a partially written manifest.
func WriteManifest(dir string, m *Manifest) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create out dir: %w", err)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal manifest: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, ".nav-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp manifest: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("write manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("close manifest: %w", err)
	}

	final := filepath.Join(dir, m.Root+".nav.json")
	if err := os.Rename(tmpPath, final); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("rename manifest: %w", err)
	}
	return final, nil
}
