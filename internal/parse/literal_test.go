package parse

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantN   int
		wantOne string
	}{
		{
			name:    "single literal",
			src:     "const Q = data`\n  Post { title }\n`\n",
			wantN:   1,
			wantOne: "\n  Post { title }\n",
		},
		{
			name:  "no literal",
			src:   "const Q = 1 + 1\n",
			wantN: 0,
		},
		{
			name:  "tag inside a longer identifier is not matched",
			src:   "const databaseQuery = `not a literal`\n",
			wantN: 0,
		},
		{
			name:  "interpolation does not close the literal early",
			src:   "const Q = data`Post { ${1} title }`\n",
			wantN: 1,
		},
		{
			name:  "multiple literals in one file",
			src:   "const A = data`Post { id }`\nconst B = data`User { id }`\n",
			wantN: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.src, DefaultTag)
			if err != nil {
				t.Fatalf("Extract error: %v", err)
			}
			if len(got) != tt.wantN {
				t.Fatalf("len(literals) = %d, want %d (%v)", len(got), tt.wantN, got)
			}
			if tt.wantOne != "" && got[0].Body != tt.wantOne {
				t.Errorf("Body = %q, want %q", got[0].Body, tt.wantOne)
			}
		})
	}
}

func TestExtract_UnterminatedLiteral(t *testing.T) {
	_, err := Extract("const Q = data`Post { title }\n", DefaultTag)
	if err == nil {
		t.Fatal("expected an error for an unterminated literal")
	}
	if !strings.Contains(err.Error(), "Q100") {
		t.Errorf("expected Q100 in error, got %v", err)
	}
}

func TestExtract_LineAndColumn(t *testing.T) {
	src := "const A = 1\nconst Q = data`Post { id }`\n"
	literals, err := Extract(src, DefaultTag)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if len(literals) != 1 {
		t.Fatalf("len(literals) = %d, want 1", len(literals))
	}
	if literals[0].Line != 2 {
		t.Errorf("Line = %d, want 2", literals[0].Line)
	}
	if literals[0].Column != 11 {
		t.Errorf("Column = %d, want 11", literals[0].Column)
	}
}

func TestScanDir(t *testing.T) {
	tmpDir := t.TempDir()

	writeFile(t, tmpDir, "app/posts.js", "export const Q = data`Post { id title }`\n")
	writeFile(t, tmpDir, "app/users.ts", "export const Q = data`User { id name }`\n")
	writeFile(t, tmpDir, "app/styles.css", "body { color: red; }\n")
	writeFile(t, tmpDir, "node_modules/pkg/index.js", "const Q = data`Ignored { id }`\n")

	literals, err := ScanDir(tmpDir, []string{"node_modules"}, Options{})
	if err != nil {
		t.Fatalf("ScanDir error: %v", err)
	}
	if len(literals) != 2 {
		t.Fatalf("len(literals) = %d, want 2: %v", len(literals), literals)
	}
	for _, l := range literals {
		if l.RelativePath == "" {
			t.Error("RelativePath should be set")
		}
		if l.AbsolutePath == "" {
			t.Error("AbsolutePath should be set")
		}
	}
}

func TestScanFile_Unreadable(t *testing.T) {
	_, err := ScanFile(filepath.Join(t.TempDir(), "missing.js"), Options{})
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if !strings.Contains(err.Error(), "Q102") {
		t.Errorf("expected Q102 in error, got %v", err)
	}
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
