package errors

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "query error",
			code:    "Q001",
			wantMsg: "Source not found",
			wantCat: CategoryQuery,
		},
		{
			name:    "schema error",
			code:    "Q200",
			wantMsg: "Unknown type",
			wantCat: CategorySchema,
		},
		{
			name:    "artifact error",
			code:    "Q300",
			wantMsg: "Artifact write failed",
			wantCat: CategoryArtifact,
		},
		{
			name:    "unknown error code",
			code:    "Q999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryQuery, "file %q not found", "test.go")
	if err.Message != `file "test.go" not found` {
		t.Errorf("Message = %q, want %q", err.Message, `file "test.go" not found`)
	}
	if err.Category != CategoryQuery {
		t.Errorf("Category = %q, want %q", err.Category, CategoryQuery)
	}
}

func TestQueridoError_Error(t *testing.T) {
	err := New("Q001")
	got := err.Error()
	want := "Q001: Source not found"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	// Without code
	err2 := &QueridoError{Message: "test error"}
	if err2.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", err2.Error(), "test error")
	}
}

func TestQueridoError_WithLocation(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "queries.js")
	content := `const postId = route.param("id")
const post = data` + "`Post(id: $postId) { title }`" + `
return post.title
`
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	err := New("Q001").WithLocation(tmpFile, 3, 8)

	if err.Location == nil {
		t.Fatal("Location is nil")
	}
	if err.Location.File != tmpFile {
		t.Errorf("Location.File = %q, want %q", err.Location.File, tmpFile)
	}
	if err.Location.Line != 3 {
		t.Errorf("Location.Line = %d, want %d", err.Location.Line, 3)
	}
	if err.Location.Column != 8 {
		t.Errorf("Location.Column = %d, want %d", err.Location.Column, 8)
	}
	if len(err.Context) == 0 {
		t.Error("Context should not be empty")
	}
}

func TestQueridoError_WithSuggestion(t *testing.T) {
	err := New("Q001").WithSuggestion("Set the source before reading it")
	if err.Suggestion != "Set the source before reading it" {
		t.Errorf("Suggestion = %q, want %q", err.Suggestion, "Set the source before reading it")
	}
}

func TestQueridoError_WithExample(t *testing.T) {
	example := "db.Set(query.NewInput(key, value))"
	err := New("Q001").WithExample(example)
	if err.Example != example {
		t.Errorf("Example = %q, want %q", err.Example, example)
	}
}

func TestQueridoError_WithDetail(t *testing.T) {
	err := New("Q001").WithDetail("Custom detail")
	if err.Detail != "Custom detail" {
		t.Errorf("Detail = %q, want %q", err.Detail, "Custom detail")
	}
}

func TestQueridoError_Wrap(t *testing.T) {
	inner := New("Q002")
	outer := New("Q001").Wrap(inner)

	if outer.Wrapped != inner {
		t.Error("Wrapped error mismatch")
	}
	if outer.Unwrap() != inner {
		t.Error("Unwrap() should return wrapped error")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "Q001") != nil {
		t.Error("FromError(nil, ...) should return nil")
	}

	qe := New("Q001")
	if FromError(qe, "Q002") != qe {
		t.Error("FromError should return QueridoError as-is")
	}

	stdErr := &testError{msg: "test error"}
	result := FromError(stdErr, "Q001")
	if result.Wrapped != stdErr {
		t.Error("Standard error should be wrapped")
	}
}

func TestIs(t *testing.T) {
	err := New("Q001")
	if !Is(err, "Q001") {
		t.Error("Is should match the error's own code")
	}
	if Is(err, "Q002") {
		t.Error("Is should not match a different code")
	}

	wrapped := New("Q300").Wrap(New("Q001"))
	if !Is(wrapped, "Q001") {
		t.Error("Is should unwrap to find a nested code")
	}

	if Is(nil, "Q001") {
		t.Error("Is should not match a nil error")
	}
}

type testError struct {
	msg string
}

func (e *testError) Error() string {
	return e.msg
}

func TestLocation_String(t *testing.T) {
	tests := []struct {
		name string
		loc  *Location
		want string
	}{
		{
			name: "nil location",
			loc:  nil,
			want: "",
		},
		{
			name: "with column",
			loc:  &Location{File: "test.go", Line: 10, Column: 5},
			want: "test.go:10:5",
		},
		{
			name: "without column",
			loc:  &Location{File: "test.go", Line: 10, Column: 0},
			want: "test.go:10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.loc.String()
			if got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "queries.js")
	content := "const post = data`Post(id: $id) { title }`\nreturn post.title\n"
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	err := New("Q001").
		WithLocation(tmpFile, 2, 8).
		WithSuggestion("Set the source before reading it").
		WithExample("db.Set(query.NewInput(key, value))")

	formatted := err.Format()

	if !strings.Contains(formatted, "Q001") {
		t.Error("Format should contain error code")
	}
	if !strings.Contains(formatted, "Source not found") {
		t.Error("Format should contain error message")
	}
	if !strings.Contains(formatted, tmpFile) {
		t.Error("Format should contain file path")
	}
	if !strings.Contains(formatted, "Hint:") {
		t.Error("Format should contain hint")
	}
	if !strings.Contains(formatted, "Example:") {
		t.Error("Format should contain example")
	}
	if !strings.Contains(formatted, "Learn more:") {
		t.Error("Format should contain doc URL")
	}
	if !strings.Contains(formatted, "[query]") {
		t.Error("Format should tag the error with its category")
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("Q001").WithLocation("test.go", 10, 5)
	compact := err.FormatCompact()

	want := "test.go:10:5: Q001: Source not found"
	if compact != want {
		t.Errorf("FormatCompact() = %q, want %q", compact, want)
	}
}

func TestGetAllCodes(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 {
		t.Error("GetAllCodes() should return codes")
	}

	found := false
	for _, code := range codes {
		if code == "Q001" {
			found = true
			break
		}
	}
	if !found {
		t.Error("Q001 should be in the codes list")
	}
}

func TestGetTemplate(t *testing.T) {
	template, ok := GetTemplate("Q001")
	if !ok {
		t.Error("Q001 should exist")
	}
	if template.Message != "Source not found" {
		t.Error("Template message mismatch")
	}

	_, ok = GetTemplate("Q999")
	if ok {
		t.Error("Q999 should not exist")
	}
}

func TestRegister(t *testing.T) {
	Register("Q999", ErrorTemplate{
		Category: CategoryQuery,
		Message:  "Custom test error",
		Detail:   "This is a test error",
		DocURL:   "https://test.dev/Q999",
	})

	err := New("Q999")
	if err.Message != "Custom test error" {
		t.Errorf("Message = %q, want %q", err.Message, "Custom test error")
	}

	delete(registry, "Q999")
}

func TestWrapText(t *testing.T) {
	got := wrapText("short text", 100)
	if len(got) != 1 || got[0] != "short text" {
		t.Errorf("wrapText short text: got %v", got)
	}

	got = wrapText("this is a longer text that should be wrapped", 20)
	if len(got) != 3 {
		t.Errorf("wrapText long text: expected 3 lines, got %d: %v", len(got), got)
	}

	got = wrapText("", 10)
	if len(got) != 0 {
		t.Errorf("wrapText empty: expected empty, got %v", got)
	}
}

func TestColorFunctions(t *testing.T) {
	EnableColors()
	if !strings.Contains(red("test"), "\033[31m") {
		t.Error("red should contain ANSI code when colors enabled")
	}

	DisableColors()
	if strings.Contains(red("test"), "\033[") {
		t.Error("red should not contain ANSI code when colors disabled")
	}
	EnableColors()
}
