package artifact

import (
	"strings"
	"testing"

	"github.com/vango-dev/querido/internal/schema"
)

func testSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.Parse([]byte(`{
		"root": "Query",
		"types": {
			"Post": {
				"fields": {
					"title": { "type": "String" },
					"author": { "type": "User" },
					"comments": { "type": "Comment", "list": true }
				}
			},
			"User": {
				"fields": { "name": { "type": "String" } }
			},
			"Comment": {
				"fields": { "body": { "type": "String" } }
			}
		}
	}`))
	if err != nil {
		t.Fatalf("schema.Parse: %v", err)
	}
	return s
}

func TestRender(t *testing.T) {
	s := testSchema(t)
	_, set, err := schema.ParseSelection(`Post {
		title
		author { name }
		comments { body }
	}`)
	if err != nil {
		t.Fatalf("ParseSelection: %v", err)
	}

	a, err := Render(s, Query{
		Name:       "PostQuery",
		SourcePath: "app/posts.js",
		Line:       3,
		RootType:   "Post",
		Selection:  set,
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	content := string(a.Content)
	if a.Path != "PostQuery.go" {
		t.Errorf("Path = %q, want PostQuery.go", a.Path)
	}
	if !strings.Contains(content, "type PostQuery struct {") {
		t.Errorf("missing struct declaration:\n%s", content)
	}
	if !strings.Contains(content, "Title string `json:\"title\"`") {
		t.Errorf("missing Title field:\n%s", content)
	}
	if !strings.Contains(content, "Author struct {") {
		t.Errorf("missing nested Author struct:\n%s", content)
	}
	if !strings.Contains(content, "Comments []struct {") {
		t.Errorf("missing list field:\n%s", content)
	}
	if !strings.Contains(content, "// Source: app/posts.js:3") {
		t.Errorf("missing source banner:\n%s", content)
	}
}

func TestRender_UnknownField(t *testing.T) {
	s := testSchema(t)
	_, err := Render(s, Query{
		Name:      "Bad",
		RootType:  "Post",
		Selection: []schema.Selection{{Field: "nonexistent"}},
	})
	if err == nil {
		t.Fatal("expected an error for an unknown field")
	}
	if !strings.Contains(err.Error(), "Q300") {
		t.Errorf("expected Q300 in error, got %v", err)
	}
}
