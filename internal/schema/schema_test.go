package schema

import "testing"

func testSchema() *Schema {
	s, err := Parse([]byte(`{
		"root": "Query",
		"types": {
			"Query": {
				"fields": {
					"post": { "type": "Post" }
				}
			},
			"Post": {
				"fields": {
					"title": { "type": "String" },
					"author": { "type": "User" },
					"comments": { "type": "Comment", "list": true, "requiredArgs": ["first"] }
				}
			},
			"User": {
				"fields": {
					"name": { "type": "String" }
				}
			},
			"Comment": {
				"fields": {
					"body": { "type": "String" }
				}
			}
		}
	}`))
	if err != nil {
		panic(err)
	}
	return s
}

func TestParse(t *testing.T) {
	s := testSchema()
	if s.Root != "Query" {
		t.Errorf("Root = %q, want Query", s.Root)
	}
	if len(s.Types) != 4 {
		t.Errorf("len(Types) = %d, want 4", len(s.Types))
	}
}

func TestParseSelection(t *testing.T) {
	rootType, set, err := ParseSelection(`Post {
		title
		author { name }
	}`)
	if err != nil {
		t.Fatalf("ParseSelection error: %v", err)
	}
	if rootType != "Post" {
		t.Errorf("rootType = %q, want Post", rootType)
	}
	if len(set) != 2 {
		t.Fatalf("len(set) = %d, want 2", len(set))
	}
	if set[0].Field != "title" || len(set[0].Selection) != 0 {
		t.Errorf("set[0] = %+v", set[0])
	}
	if set[1].Field != "author" || len(set[1].Selection) != 1 {
		t.Errorf("set[1] = %+v", set[1])
	}
}

func TestParseSelection_WithArgs(t *testing.T) {
	_, set, err := ParseSelection(`Post {
		comments(first: "10") { body }
	}`)
	if err != nil {
		t.Fatalf("ParseSelection error: %v", err)
	}
	if set[0].Args["first"] != "10" {
		t.Errorf("Args[first] = %q, want 10", set[0].Args["first"])
	}
}

func TestValidate_Valid(t *testing.T) {
	s := testSchema()
	_, set, err := ParseSelection(`Post {
		title
		author { name }
		comments(first: "5") { body }
	}`)
	if err != nil {
		t.Fatalf("ParseSelection error: %v", err)
	}
	diags := s.Validate("Post", set)
	if len(diags) != 0 {
		t.Errorf("diags = %v, want none", diags)
	}
}

func TestValidate_UnknownField(t *testing.T) {
	s := testSchema()
	_, set, _ := ParseSelection(`Post { nonexistent }`)
	diags := s.Validate("Post", set)
	if len(diags) != 1 || diags[0].Code != "Q201" {
		t.Fatalf("diags = %v, want a single Q201", diags)
	}
}

func TestValidate_ScalarWithSelectionSet(t *testing.T) {
	s := testSchema()
	_, set, _ := ParseSelection(`Post { title { nested } }`)
	diags := s.Validate("Post", set)
	if len(diags) != 1 || diags[0].Code != "Q202" {
		t.Fatalf("diags = %v, want a single Q202", diags)
	}
}

func TestValidate_ObjectFieldWithoutSelectionSet(t *testing.T) {
	s := testSchema()
	_, set, _ := ParseSelection(`Post { author }`)
	diags := s.Validate("Post", set)
	if len(diags) != 1 || diags[0].Code != "Q202" {
		t.Fatalf("diags = %v, want a single Q202", diags)
	}
}

func TestValidate_MissingRequiredArgument(t *testing.T) {
	s := testSchema()
	_, set, _ := ParseSelection(`Post { comments { body } }`)
	diags := s.Validate("Post", set)
	if len(diags) != 1 || diags[0].Code != "Q203" {
		t.Fatalf("diags = %v, want a single Q203", diags)
	}
}

func TestValidate_UnknownRootType(t *testing.T) {
	s := testSchema()
	diags := s.Validate("Nonexistent", nil)
	if len(diags) != 1 || diags[0].Code != "Q200" {
		t.Fatalf("diags = %v, want a single Q200", diags)
	}
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{Code: "Q201", Message: "missing", Field: "title"}
	got := d.String()
	want := `Q201: missing (field "title")`
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
