package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vango-dev/querido/internal/config"
	"github.com/vango-dev/querido/internal/schema"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestCompileProject(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "schema.json"), `{
		"root": "Query",
		"types": {
			"Post": { "fields": { "title": { "type": "String" } } }
		}
	}`)
	writeTestFile(t, filepath.Join(dir, "app", "a.js"), "const A = data`Post { title }`\n")
	writeTestFile(t, filepath.Join(dir, "app", "b.js"), "const B = data`Post { title }`\n")
	writeTestFile(t, filepath.Join(dir, "querido.json"), `{"sources": ["app"], "schema": "schema.json"}`)

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	s, err := schema.Load(cfg.SchemaPath())
	if err != nil {
		t.Fatalf("schema.Load: %v", err)
	}

	artifacts, diags, err := compileProject(cfg, s)
	if err != nil {
		t.Fatalf("compileProject: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	if len(artifacts) != 2 {
		t.Fatalf("expected 2 artifacts, got %d", len(artifacts))
	}
	if artifacts[0].Path == artifacts[1].Path {
		t.Errorf("expected distinct artifact names for two literals of the same root type, both named %q", artifacts[0].Path)
	}
}

func TestCompileProjectReportsDiagnostics(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "schema.json"), `{
		"root": "Query",
		"types": {
			"Post": { "fields": { "title": { "type": "String" } } }
		}
	}`)
	writeTestFile(t, filepath.Join(dir, "app", "a.js"), "const A = data`Post { missing }`\n")
	writeTestFile(t, filepath.Join(dir, "querido.json"), `{"sources": ["app"], "schema": "schema.json"}`)

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	s, err := schema.Load(cfg.SchemaPath())
	if err != nil {
		t.Fatalf("schema.Load: %v", err)
	}

	artifacts, diags, err := compileProject(cfg, s)
	if err != nil {
		t.Fatalf("compileProject: %v", err)
	}
	if len(artifacts) != 0 {
		t.Errorf("expected no artifacts, got %d", len(artifacts))
	}
	if len(diags) != 1 || diags[0].Code != "Q201" {
		t.Fatalf("expected a single Q201 diagnostic, got %+v", diags)
	}
}
