package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"layout", "arrange", "route", "optimize", "tidy", "distribute", "overlaps", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", "laygrid")
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg-cache", "laygrid") {
		t.Errorf("cacheDir() = %q, should honor XDG_CACHE_HOME", dir)
	}
}

func TestNewCacheDisabled(t *testing.T) {
	c, err := newCache(true)
	if err != nil {
		t.Fatalf("newCache(true) error: %v", err)
	}
	if c == nil {
		t.Fatal("newCache(true) returned nil")
	}
}

func TestDiagramNameFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"diagram.json", "diagram"},
		{"/tmp/flow.diagram.json", "flow.diagram"},
		{"noext", "noext"},
	}
	for _, tt := range tests {
		if got := diagramNameFromPath(tt.path); got != tt.want {
			t.Errorf("diagramNameFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestReadEdgeSpecs(t *testing.T) {
	dir := t.TempDir()

	// Bare array form
	arrayFile := filepath.Join(dir, "edges.json")
	if err := os.WriteFile(arrayFile, []byte(`[{"source":"A","target":"B","label":"x"}]`), 0644); err != nil {
		t.Fatal(err)
	}
	edges, err := readEdgeSpecs(arrayFile)
	if err != nil {
		t.Fatalf("readEdgeSpecs array form: %v", err)
	}
	if len(edges) != 1 || edges[0].Source != "A" || edges[0].Label != "x" {
		t.Errorf("unexpected edges: %+v", edges)
	}

	// Object form
	objFile := filepath.Join(dir, "edges_obj.json")
	if err := os.WriteFile(objFile, []byte(`{"edges":[{"source":"A","target":"B"}]}`), 0644); err != nil {
		t.Fatal(err)
	}
	edges, err = readEdgeSpecs(objFile)
	if err != nil {
		t.Fatalf("readEdgeSpecs object form: %v", err)
	}
	if len(edges) != 1 || edges[0].Target != "B" {
		t.Errorf("unexpected edges: %+v", edges)
	}
}

func TestReadEdgeSpecsRejectsEmptyEndpoint(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`[{"source":"","target":"B"}]`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := readEdgeSpecs(bad); err == nil {
		t.Error("edge with empty source should be rejected")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(oldWd) })

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig error: %v", err)
	}
	if cfg.RankSpacing != 100 || cfg.NodeSpacing != 60 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "laygrid.toml")
	content := strings.Join([]string{
		`rank_spacing = 140.0`,
		`node_spacing = 80.0`,
		`compact = false`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig error: %v", err)
	}
	if cfg.RankSpacing != 140 || cfg.NodeSpacing != 80 || cfg.Compact {
		t.Errorf("config not applied: %+v", cfg)
	}
	// Untouched fields keep their defaults.
	if cfg.EdgeMargin != 15 {
		t.Errorf("EdgeMargin = %v, want default 15", cfg.EdgeMargin)
	}
}

func TestLoadConfigBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "laygrid.toml")
	if err := os.WriteFile(path, []byte("rank_spacing = ["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Error("malformed config should fail")
	}
}
