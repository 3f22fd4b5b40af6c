package artifact

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/vango-dev/querido/internal/errors"
	"github.com/vango-dev/querido/internal/schema"
)

// Artifact is one generated file produced by Render.
type Artifact struct {
	// Path is relative to the project's configured artifact output
	// directory.
	Path string

	// Content is the rendered file content.
	Content []byte
}

// Query names a single validated top-level literal to render.
type Query struct {
	// Name becomes the exported result struct's name and the generated
	// file's base name.
	Name string

	// SourcePath is the host file the literal was extracted from,
	// recorded in the generated banner.
	SourcePath string

	// Line is the literal's source line, recorded in the banner.
	Line int

	// RootType is the schema type the selection resolves against.
	RootType string

	// Selection is the validated selection tree.
	Selection []schema.Selection
}

var scalarGoType = map[string]string{
	"String":  "string",
	"Int":     "int",
	"Float":   "float64",
	"Boolean": "bool",
	"ID":      "string",
}

const fileTemplate = `// Code generated by querido. DO NOT EDIT.
// Source: {{.SourcePath}}:{{.Line}}
// Query: {{.RootType}}

package generated

type {{.Name}} struct {
{{.Body}}}
`

var tmpl = template.Must(template.New("file").Parse(fileTemplate))

// Render produces the Go source for q against s. s must already have
// validated q.Selection (Render does not re-validate); a selection
// referencing an unknown field is a programmer error and returns Q300.
func Render(s *schema.Schema, q Query) (Artifact, error) {
	var body strings.Builder
	if err := writeFields(&body, s, q.RootType, q.Selection, 1); err != nil {
		return Artifact{}, err
	}

	data := struct {
		Query
		Body string
	}{Query: q, Body: body.String()}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return Artifact{}, errors.New("Q300").Wrap(err)
	}

	return Artifact{
		Path:    q.Name + ".go",
		Content: buf.Bytes(),
	}, nil
}

func writeFields(w *strings.Builder, s *schema.Schema, typeName string, set []schema.Selection, depth int) error {
	parent, ok := s.Types[typeName]
	if !ok {
		return errors.New("Q300").WithDetail("unknown type " + typeName + " during rendering")
	}

	indent := strings.Repeat("\t", depth)
	for _, sel := range set {
		field, ok := parent.Fields[sel.Field]
		if !ok {
			return errors.New("Q300").WithDetail("unknown field " + sel.Field + " on " + typeName + " during rendering")
		}

		goName := exportName(sel.Field)
		listPrefix := ""
		if field.List {
			listPrefix = "[]"
		}

		if goType, isScalar := scalarGoType[field.Name]; isScalar {
			w.WriteString(indent + goName + " " + listPrefix + goType + " `json:\"" + sel.Field + "\"`\n")
			continue
		}

		w.WriteString(indent + goName + " " + listPrefix + "struct {\n")
		if err := writeFields(w, s, field.Name, sel.Selection, depth+1); err != nil {
			return err
		}
		w.WriteString(indent + "} `json:\"" + sel.Field + "\"`\n")
	}
	return nil
}

func exportName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
