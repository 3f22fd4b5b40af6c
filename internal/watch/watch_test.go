package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_DetectsModify(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "queries.js")
	if err := os.WriteFile(testFile, []byte("const x = 1"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := New(Config{
		Paths:    []string{tmpDir},
		Debounce: 50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	events := make(chan []Event, 10)
	w.OnEvent(func(batch []Event) {
		events <- batch
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(testFile, []byte("const x = 2"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case batch := <-events:
		found := false
		for _, e := range batch {
			if e.Path == testFile {
				found = true
				if e.Kind != CreateOrModify {
					t.Errorf("Kind = %v, want CreateOrModify", e.Kind)
				}
			}
		}
		if !found {
			t.Errorf("expected a batch containing %q, got %v", testFile, batch)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a change batch")
	}
}

func TestNew_MissingPathErrors(t *testing.T) {
	_, err := New(Config{Paths: []string{filepath.Join(t.TempDir(), "does-not-exist")}})
	if err == nil {
		t.Fatal("expected an error for a nonexistent watch path")
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{CreateOrModify, "CreateOrModify"},
		{Rename, "Rename"},
		{Remove, "Remove"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestWatcher_ShouldIgnore(t *testing.T) {
	tmpDir := t.TempDir()
	nodeModules := filepath.Join(tmpDir, "node_modules")
	if err := os.MkdirAll(nodeModules, 0755); err != nil {
		t.Fatal(err)
	}

	w, err := New(Config{Paths: []string{tmpDir}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	if !w.shouldIgnore(filepath.Join(nodeModules, "pkg.json")) {
		t.Error("expected node_modules paths to be ignored")
	}
	if w.shouldIgnore(filepath.Join(tmpDir, "app", "queries.js")) {
		t.Error("did not expect a normal source path to be ignored")
	}
}
