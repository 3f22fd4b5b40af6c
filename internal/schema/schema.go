package schema

import (
	"encoding/json"
	"os"

	"github.com/vango-dev/querido/internal/errors"
)

// ScalarTypes names the built-in scalar type names recognized without a
// declaration.
var ScalarTypes = map[string]bool{
	"String":  true,
	"Int":     true,
	"Float":   true,
	"Boolean": true,
	"ID":      true,
}

// FieldType describes the declared type of a field.
type FieldType struct {
	// Name is a scalar name or another declared object type's name.
	Name string `json:"type"`

	// List marks the field as a list of Name rather than a single Name.
	List bool `json:"list,omitempty"`

	// RequiredArgs lists argument names that a selection of this field
	// must supply.
	RequiredArgs []string `json:"requiredArgs,omitempty"`
}

// ObjectType is a named, fielded type declared in a schema.
type ObjectType struct {
	Fields map[string]FieldType `json:"fields"`
}

// Schema is the in-memory representation of a schema.json file. Parse only
// decodes the JSON and defaults Root; it does not check that field types
// name declared types.
//
// Invariant: once loaded a Schema is read-only for the lifetime of the
// process that loaded it; a file change is picked up by loading a fresh
// Schema, not by mutating this one, so a Schema value is safe to share
// across memoized query functions.
type Schema struct {
	Types map[string]ObjectType `json:"types"`
	Root  string                `json:"root"`
}

// Load reads and parses a schema.json file.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("Q200").
			WithDetail("could not read schema file " + path + ": " + err.Error())
	}
	return Parse(data)
}

// Parse decodes schema JSON already read into memory.
func Parse(data []byte) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.New("Q200").
			WithDetail("invalid schema JSON: " + err.Error())
	}
	if s.Root == "" {
		s.Root = "Query"
	}
	return &s, nil
}

// ResolveType returns the object type a field resolves to, or ok=false if
// the field's declared type is neither a scalar nor a declared object type.
func (s *Schema) ResolveType(fieldType FieldType) (ObjectType, bool) {
	if ScalarTypes[fieldType.Name] {
		return ObjectType{}, false
	}
	obj, ok := s.Types[fieldType.Name]
	return obj, ok
}
