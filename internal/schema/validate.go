package schema

import "fmt"

// Diagnostic is one validation failure found while resolving a selection
// set against a Schema.
type Diagnostic struct {
	Code    string
	Message string
	Field   string
}

func (d Diagnostic) String() string {
	if d.Field == "" {
		return fmt.Sprintf("%s: %s", d.Code, d.Message)
	}
	return fmt.Sprintf("%s: %s (field %q)", d.Code, d.Message, d.Field)
}

// Validate resolves set against rootType and returns every diagnostic
// found. An empty return means the selection is fully valid.
func (s *Schema) Validate(rootType string, set []Selection) []Diagnostic {
	var diags []Diagnostic
	s.validateSet(rootType, set, &diags)
	return diags
}

func (s *Schema) validateSet(typeName string, set []Selection, diags *[]Diagnostic) {
	parent, ok := s.Types[typeName]
	if !ok {
		*diags = append(*diags, Diagnostic{
			Code:    "Q200",
			Message: "type " + typeName + " is not declared in the schema",
		})
		return
	}

	for _, sel := range set {
		field, ok := parent.Fields[sel.Field]
		if !ok {
			*diags = append(*diags, Diagnostic{
				Code:    "Q201",
				Message: "field does not exist on type " + typeName,
				Field:   sel.Field,
			})
			continue
		}

		for _, required := range field.RequiredArgs {
			if _, present := sel.Args[required]; !present {
				*diags = append(*diags, Diagnostic{
					Code:    "Q203",
					Message: "missing required argument " + required,
					Field:   sel.Field,
				})
			}
		}

		isScalar := ScalarTypes[field.Name]
		hasChildren := len(sel.Selection) > 0

		switch {
		case isScalar && hasChildren:
			*diags = append(*diags, Diagnostic{
				Code:    "Q202",
				Message: "scalar field cannot have a selection set",
				Field:   sel.Field,
			})
		case !isScalar && !hasChildren:
			*diags = append(*diags, Diagnostic{
				Code:    "Q202",
				Message: "non-scalar field must have a selection set",
				Field:   sel.Field,
			})
		case !isScalar && hasChildren:
			if _, declared := s.Types[field.Name]; !declared {
				*diags = append(*diags, Diagnostic{
					Code:    "Q200",
					Message: "field resolves to undeclared type " + field.Name,
					Field:   sel.Field,
				})
				continue
			}
			s.validateSet(field.Name, sel.Selection, diags)
		}
	}
}
