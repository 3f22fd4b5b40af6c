package devserver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vango-dev/querido/internal/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "schema.json"), `{
		"root": "Query",
		"types": {
			"Post": { "fields": { "title": { "type": "String" } } }
		}
	}`)
	writeFile(t, filepath.Join(dir, "app", "posts.js"), "const PostQuery = data`Post { title }`\n")
	writeFile(t, filepath.Join(dir, "querido.json"), `{"sources": ["app"], "schema": "schema.json"}`)

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}

	srv, err := NewServer(Config{Project: cfg})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv
}

func TestServer_RescanProducesArtifact(t *testing.T) {
	srv := newTestServer(t)

	result := srv.rescan()
	if len(result.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", result.Diagnostics)
	}
	if len(result.Artifacts) != 1 {
		t.Fatalf("expected 1 artifact, got %d", len(result.Artifacts))
	}
	if result.Artifacts[0].Path != "PostQuery.go" {
		t.Errorf("Path = %q, want PostQuery.go", result.Artifacts[0].Path)
	}
}

func TestServer_RescanIsMemoizedAcrossUnchangedInput(t *testing.T) {
	srv := newTestServer(t)

	first := srv.rescan()
	if !srv.lastRecalculated {
		t.Fatal("expected the first rescan to recalculate")
	}

	second := srv.rescan()
	if srv.lastRecalculated {
		t.Error("expected the second rescan over unchanged literals to reuse the memoized result")
	}
	if len(second.Artifacts) != len(first.Artifacts) {
		t.Errorf("artifact count changed across an unchanged rescan: %d vs %d", len(first.Artifacts), len(second.Artifacts))
	}
}

func TestServer_RescanDetectsSchemaViolation(t *testing.T) {
	srv := newTestServer(t)
	path := srv.cfg.Project.SourcePaths()[0]
	writeFile(t, filepath.Join(path, "posts.js"), "const PostQuery = data`Post { nonexistent }`\n")

	result := srv.rescan()
	if len(result.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %+v", result.Diagnostics)
	}
	if result.Diagnostics[0].Code != "Q201" {
		t.Errorf("Code = %q, want Q201", result.Diagnostics[0].Code)
	}
	if len(result.Artifacts) != 0 {
		t.Errorf("expected no artifacts when a literal fails validation, got %d", len(result.Artifacts))
	}
}
