package loader

import (
	"context"
	"io/fs"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/dgallion1/docnav/internal/navtree"
)

func load(t *testing.T, fsys fs.FS) *navtree.Node {
	t.Helper()
	tree, err := New(fsys).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return tree
}

func TestLoadBasicTree(t *testing.T) {
	fsys := fstest.MapFS{
		"index.md":                    {Data: []byte("# Home\n")},
		"javascript/01-introduction.md": {Data: []byte("# Introduction to JavaScript\n")},
		"javascript/02-variables.md":  {Data: []byte("# Variables and Types\n")},
		"java/setup.md":               {Data: []byte("Setting up.\n")},
	}

	tree := load(t, fsys)
	if err := tree.Validate(); err != nil {
		t.Fatalf("loaded tree is invalid: %v", err)
	}
	if tree.Title != DefaultRootTitle {
		t.Errorf("expected root title %q, got %q", DefaultRootTitle, tree.Title)
	}

	// all undeclared: lexicographic by key
	if got := tree.ChildKeys(); !reflect.DeepEqual(got, []string{"index", "java", "javascript"}) {
		t.Fatalf("expected [index java javascript], got %v", got)
	}

	js := tree.Child("javascript")
	if js.Kind != navtree.KindCategory {
		t.Errorf("expected javascript to be a category, got %q", js.Kind)
	}
	if got := js.ChildKeys(); !reflect.DeepEqual(got, []string{"01-introduction", "02-variables"}) {
		t.Errorf("expected chapter keys, got %v", got)
	}

	intro := js.Child("01-introduction")
	if intro.Kind != navtree.KindDocument {
		t.Errorf("expected document, got %q", intro.Kind)
	}
	if intro.Title != "Introduction to JavaScript" {
		t.Errorf("expected extracted title, got %q", intro.Title)
	}
	if intro.SourcePath != "javascript/01-introduction.md" {
		t.Errorf("unexpected source path %q", intro.SourcePath)
	}

	// no heading in setup.md: humanized stem
	if got := tree.Child("java").Child("setup").Title; got != "Setup" {
		t.Errorf("expected fallback title %q, got %q", "Setup", got)
	}
}

func TestLoadPositionOrdering(t *testing.T) {
	fsys := fstest.MapFS{
		"a.md": {Data: []byte("---\nsidebar_position: 2\n---\n# A\n")},
		"b.md": {Data: []byte("---\nsidebar_position: 1\n---\n# B\n")},
		"c.md": {Data: []byte("# C\n")},
		"d.md": {Data: []byte("# D\n")},
	}

	tree := load(t, fsys)
	if got := tree.ChildKeys(); !reflect.DeepEqual(got, []string{"b", "a", "c", "d"}) {
		t.Errorf("expected [b a c d], got %v", got)
	}
	if tree.Child("b").Position != 1 {
		t.Errorf("expected position 1, got %d", tree.Child("b").Position)
	}
}

func TestLoadFrontmatter(t *testing.T) {
	fsys := fstest.MapFS{
		"guide.md": {Data: []byte("---\ntitle: The Real Title\nslug: Custom Slug!\n---\n# Ignored Heading\n")},
		"wip.md":   {Data: []byte("---\ndraft: true\n---\n# Not Ready\n")},
	}

	tree := load(t, fsys)
	if got := tree.ChildKeys(); !reflect.DeepEqual(got, []string{"custom-slug"}) {
		t.Fatalf("expected [custom-slug], got %v", got)
	}
	doc := tree.Child("custom-slug")
	if doc.Title != "The Real Title" {
		t.Errorf("expected frontmatter title, got %q", doc.Title)
	}
}

func TestLoadBadFrontmatterFails(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.md": {Data: []byte("---\ntitle: [unclosed\n---\n")},
	}

	_, err := New(fsys).Load(context.Background())
	if err == nil {
		t.Fatal("expected error, got none")
	}
	if !strings.Contains(err.Error(), "bad.md") {
		t.Errorf("expected error to name the file, got %q", err)
	}
}

func TestLoadCategoryMeta(t *testing.T) {
	fsys := fstest.MapFS{
		"_category_.yaml":        {Data: []byte("label: Tutorials\n")},
		"aem/_category_.yaml":    {Data: []byte("label: AEM Guide\nposition: 1\n")},
		"aem/intro.md":           {Data: []byte("# AEM\n")},
		"strapi/_category_.json": {Data: []byte(`{"label": "Strapi Guide", "position": 2}`)},
		"strapi/intro.md":        {Data: []byte("# Strapi\n")},
		"java/notes.md":          {Data: []byte("# Java\n")},
	}

	tree := load(t, fsys)
	if tree.Title != "Tutorials" {
		t.Errorf("expected root label override, got %q", tree.Title)
	}
	// aem and strapi positioned, java undeclared
	if got := tree.ChildKeys(); !reflect.DeepEqual(got, []string{"aem", "strapi", "java"}) {
		t.Fatalf("expected [aem strapi java], got %v", got)
	}
	if got := tree.Child("aem").Title; got != "AEM Guide" {
		t.Errorf("expected yaml label, got %q", got)
	}
	if got := tree.Child("strapi").Title; got != "Strapi Guide" {
		t.Errorf("expected json label, got %q", got)
	}
	// metadata files are consumed, not listed
	for _, key := range tree.Child("aem").ChildKeys() {
		if strings.Contains(key, "category") {
			t.Errorf("metadata file leaked into children: %q", key)
		}
	}
}

func TestLoadSkipsHiddenAndUnsupported(t *testing.T) {
	fsys := fstest.MapFS{
		"guide.md":    {Data: []byte("# Guide\n")},
		".hidden.md":  {Data: []byte("# Hidden\n")},
		"_notes.md":   {Data: []byte("# Notes\n")},
		"diagram.png": {Data: []byte("png")},
		".git/config": {Data: []byte("[core]\n")},
	}

	tree := load(t, fsys)
	if got := tree.ChildKeys(); !reflect.DeepEqual(got, []string{"guide"}) {
		t.Errorf("expected only [guide], got %v", got)
	}
}

func TestLoadDuplicateKeysFail(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{
			"stem collision across extensions",
			fstest.MapFS{
				"intro.md":   {Data: []byte("# A\n")},
				"intro.html": {Data: []byte("<h1>B</h1>")},
			},
		},
		{
			"slug collision",
			fstest.MapFS{
				"one.md": {Data: []byte("---\nslug: same\n---\n")},
				"two.md": {Data: []byte("---\nslug: same\n---\n")},
			},
		},
		{
			"directory vs file",
			fstest.MapFS{
				"setup.md":       {Data: []byte("# Setup\n")},
				"setup/guide.md": {Data: []byte("# Guide\n")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.fsys).Load(context.Background())
			if err == nil {
				t.Fatal("expected duplicate key error, got none")
			}
			if !strings.Contains(err.Error(), "duplicate key") {
				t.Errorf("expected duplicate key error, got %q", err)
			}
		})
	}
}

func TestLoadEmptyCategoryKept(t *testing.T) {
	fsys := fstest.MapFS{
		"guide.md": {Data: []byte("# Guide\n")},
		"empty":    {Mode: fs.ModeDir},
	}

	tree := load(t, fsys)
	if got := tree.ChildKeys(); !reflect.DeepEqual(got, []string{"empty", "guide"}) {
		t.Fatalf("expected [empty guide], got %v", got)
	}
	empty := tree.Child("empty")
	if empty.Kind != navtree.KindCategory || len(empty.Children) != 0 {
		t.Errorf("expected empty category, got kind=%q children=%d", empty.Kind, len(empty.Children))
	}
}

func TestLoadCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fsys := fstest.MapFS{"guide.md": {Data: []byte("# Guide\n")}}
	if _, err := New(fsys).Load(ctx); err == nil {
		t.Fatal("expected context error, got none")
	}
}

func TestDirErrors(t *testing.T) {
	if _, err := Dir(context.Background(), "/definitely/not/here"); err == nil {
		t.Error("expected error for missing root")
	}
}
