package lsp

import (
	"strings"

	"github.com/vango-dev/querido/internal/errors"
	"github.com/vango-dev/querido/internal/parse"
	"github.com/vango-dev/querido/internal/schema"
)

// computeDiagnostics re-extracts every tagged literal out of text and
// validates each one's selection set against s, returning one Diagnostic
// per problem found. A document with no literals and no syntax errors
// yields an empty, non-nil slice, which clears any diagnostics the editor
// is currently showing for it.
func computeDiagnostics(s *schema.Schema, tag string, text string) []Diagnostic {
	diags := []Diagnostic{}

	literals, err := parse.Extract(text, tag)
	if err != nil {
		diags = append(diags, diagnosticFromErr(err, text))
		return diags
	}

	for _, lit := range literals {
		rootType, set, err := schema.ParseSelection(lit.Body)
		if err != nil {
			diags = append(diags, Diagnostic{
				Range:    literalRange(lit),
				Severity: SeverityError,
				Code:     "Q101",
				Source:   "querido",
				Message:  err.Error(),
			})
			continue
		}

		for _, d := range s.Validate(rootType, set) {
			diags = append(diags, Diagnostic{
				Range:    literalRange(lit),
				Severity: SeverityError,
				Code:     d.Code,
				Source:   "querido",
				Message:  d.String(),
			})
		}
	}

	return diags
}

func literalRange(lit parse.Literal) Range {
	pos := Position{Line: lit.Line - 1, Character: lit.Column - 1}
	return Range{Start: pos, End: pos}
}

func diagnosticFromErr(err error, text string) Diagnostic {
	pos := Position{Line: 0, Character: 0}
	if qe, ok := err.(*errors.QueridoError); ok && qe.Location != nil {
		pos = Position{Line: qe.Location.Line - 1, Character: qe.Location.Column - 1}
	} else {
		pos.Line = strings.Count(text, "\n")
	}
	return Diagnostic{
		Range:    Range{Start: pos, End: pos},
		Severity: SeverityError,
		Code:     "Q100",
		Source:   "querido",
		Message:  err.Error(),
	}
}
