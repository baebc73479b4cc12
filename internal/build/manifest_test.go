package build

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteManifest(t *testing.T) {
	dir := writeDocs(t, map[string]string{
		"sidebar.yaml": "order:\n  .: [b, a, ghost]\n",
		"a.md":         "# A\n",
		"b.md":         "# B\n",
	})
	runner := NewRunner("", "", discardLogger())
	res, err := runner.Build(context.Background(), Root{Key: "docs", Dir: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	outDir := filepath.Join(t.TempDir(), "out")
	path, err := WriteManifest(outDir, ManifestFor(res))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(outDir, "docs.nav.json"); path != want {
		t.Errorf("expected manifest at %q, got %q", want, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal manifest: %v", err)
	}
	if m.Root != "docs" {
		t.Errorf("expected root %q, got %q", "docs", m.Root)
	}
	if len(m.Pages) != 2 {
		t.Errorf("expected 2 pages, got %d", len(m.Pages))
	}
	if m.Summary.Documents != 2 {
		t.Errorf("expected 2 documents in summary, got %d", m.Summary.Documents)
	}
	if m.Summary.Warnings != 1 {
		t.Errorf("expected 1 warning in summary, got %d", m.Summary.Warnings)
	}
	if m.Tree == nil || len(m.Tree.Children) != 2 {
		t.Fatalf("expected tree with 2 children, got %+v", m.Tree)
	}
	if m.Tree.Children[0].Key != "b" {
		t.Errorf("expected configured order preserved, got %q first", m.Tree.Children[0].Key)
	}

	// The temp file must not survive the rename.
	leftovers, err := filepath.Glob(filepath.Join(outDir, ".nav-*.tmp"))
	if err != nil {
		t.Fatal(err)
	}
	if len(leftovers) != 0 {
		t.Errorf("expected no temp files, got %v", leftovers)
	}
}

func TestWriteManifestOverwrites(t *testing.T) {
	outDir := t.TempDir()
	dir := writeDocs(t, map[string]string{"intro.md": "# Intro\n"})
	runner := NewRunner("", "", discardLogger())
	res, err := runner.Build(context.Background(), Root{Key: "docs", Dir: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := WriteManifest(outDir, ManifestFor(res)); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if _, err := WriteManifest(outDir, ManifestFor(res)); err != nil {
		t.Fatalf("second write: %v", err)
	}
}
