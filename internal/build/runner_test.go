package build

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/dgallion1/docnav/internal/orderconfig"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeDocs materializes a docs tree in a temp dir. Keys are
// slash-separated relative paths, values are file contents.
func writeDocs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestRunnerBuild(t *testing.T) {
	dir := writeDocs(t, map[string]string{
		"sidebar.yaml":        "order:\n  .: [javascript, java]\n",
		"strapi/intro.md":     "# Strapi\n",
		"java/setup.md":       "# Setup\n",
		"aem/overview.md":     "# Overview\n",
		"javascript/intro.md": "# Introduction\n",
	})

	runner := NewRunner("", "", discardLogger())
	res, err := runner.Build(context.Background(), Root{Key: "docs", Dir: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Root != "docs" {
		t.Errorf("expected root %q, got %q", "docs", res.Root)
	}
	want := []string{"javascript", "java", "aem", "strapi"}
	if got := res.Tree.ChildKeys(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected root order %v, got %v", want, got)
	}
	if res.Documents != 4 {
		t.Errorf("expected 4 documents, got %d", res.Documents)
	}
	if res.Categories != 4 {
		t.Errorf("expected 4 categories, got %d", res.Categories)
	}
	if len(res.Pages) != 4 {
		t.Errorf("expected 4 pages, got %d", len(res.Pages))
	}
	if len(res.Report.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", res.Report.Warnings)
	}
	if len(res.Report.Notices) != 2 {
		t.Errorf("expected 2 notices, got %v", res.Report.Notices)
	}
	if res.DurationMs < 0 {
		t.Errorf("expected non-negative duration, got %d", res.DurationMs)
	}
}

func TestRunnerBuildWithoutConfig(t *testing.T) {
	dir := writeDocs(t, map[string]string{
		"beta.md":  "# Beta\n",
		"alpha.md": "# Alpha\n",
	})

	runner := NewRunner("", "", discardLogger())
	res, err := runner.Build(context.Background(), Root{Key: "docs", Dir: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := res.Tree.ChildKeys(); !reflect.DeepEqual(got, []string{"alpha", "beta"}) {
		t.Errorf("expected loader order, got %v", got)
	}
	if !res.Report.Clean() {
		t.Errorf("expected clean report, got %s", res.Report.Summary())
	}
}

func TestRunnerBuildStrictConfig(t *testing.T) {
	dir := writeDocs(t, map[string]string{
		"sidebar.yaml": "policy: strict\norder:\n  .: [ghost]\n",
		"intro.md":     "# Intro\n",
	})

	runner := NewRunner("", "", discardLogger())
	_, err := runner.Build(context.Background(), Root{Key: "docs", Dir: dir})
	if err == nil {
		t.Fatal("expected strict policy error")
	}
	if !strings.Contains(err.Error(), "ghost") {
		t.Errorf("expected error to name the unknown key, got %v", err)
	}
}

func TestRunnerPolicyOverride(t *testing.T) {
	dir := writeDocs(t, map[string]string{
		"sidebar.yaml": "policy: strict\norder:\n  .: [ghost]\n",
		"intro.md":     "# Intro\n",
	})

	runner := NewRunner("", orderconfig.PolicySilent, discardLogger())
	res, err := runner.Build(context.Background(), Root{Key: "docs", Dir: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Report.Warnings) != 0 {
		t.Errorf("expected silent policy to suppress warnings, got %v", res.Report.Warnings)
	}
}

func TestRunnerExplicitSidebarFile(t *testing.T) {
	dir := writeDocs(t, map[string]string{
		"b.md": "# B\n",
		"a.md": "# A\n",
	})
	cfgPath := filepath.Join(t.TempDir(), "nav.yaml")
	if err := os.WriteFile(cfgPath, []byte("order:\n  .: [b, a]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	runner := NewRunner(cfgPath, "", discardLogger())
	res, err := runner.Build(context.Background(), Root{Key: "docs", Dir: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := res.Tree.ChildKeys(); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Errorf("expected configured order [b a], got %v", got)
	}
}

func TestRunnerBuildMissingDir(t *testing.T) {
	runner := NewRunner("", "", discardLogger())
	_, err := runner.Build(context.Background(), Root{Key: "docs", Dir: filepath.Join(t.TempDir(), "absent")})
	if err == nil {
		t.Fatal("expected error for missing docs root")
	}
}

func TestAllBuildsEveryRoot(t *testing.T) {
	docs := writeDocs(t, map[string]string{"intro.md": "# Intro\n"})
	guides := writeDocs(t, map[string]string{"setup.md": "# Setup\n"})
	roots := []Root{{Key: "docs", Dir: docs}, {Key: "guides", Dir: guides}}

	runner := NewRunner("", "", discardLogger())
	results, err := All(context.Background(), runner, roots, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, key := range []string{"docs", "guides"} {
		res, ok := results[key]
		if !ok {
			t.Fatalf("expected a result for %q", key)
		}
		if res.Documents != 1 {
			t.Errorf("expected 1 document for %q, got %d", key, res.Documents)
		}
	}
}

func TestAllStopsOnFailure(t *testing.T) {
	docs := writeDocs(t, map[string]string{"intro.md": "# Intro\n"})
	roots := []Root{
		{Key: "docs", Dir: docs},
		{Key: "broken", Dir: filepath.Join(t.TempDir(), "absent")},
	}

	runner := NewRunner("", "", discardLogger())
	if _, err := All(context.Background(), runner, roots, 1); err == nil {
		t.Fatal("expected error from the broken root")
	}
}
