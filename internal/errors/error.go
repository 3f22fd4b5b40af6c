package errors

import (
	"bufio"
	"fmt"
	"os"
)

// Category represents the type of error.
type Category string

const (
	CategoryQuery    Category = "query"
	CategoryParse    Category = "parse"
	CategorySchema   Category = "schema"
	CategoryArtifact Category = "artifact"
	CategoryWatch    Category = "watch"
	CategoryConfig   Category = "config"
	CategoryCLI      Category = "cli"
)

// Location represents a source code location.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// QueridoError is a structured error with source location, suggestions, and
// documentation.
type QueridoError struct {
	// Code is a unique error identifier (e.g., "Q001").
	Code string

	// Category is the error type (query, parse, schema, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the source code location where the error occurred.
	Location *Location

	// Context contains surrounding source code lines.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example is code showing the correct approach.
	Example string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *QueridoError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *QueridoError) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds source location to the error.
func (e *QueridoError) WithLocation(file string, line, column int) *QueridoError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 5)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *QueridoError) WithSuggestion(s string) *QueridoError {
	e.Suggestion = s
	return e
}

// WithExample adds a code example to the error.
func (e *QueridoError) WithExample(ex string) *QueridoError {
	e.Example = ex
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *QueridoError) WithDetail(d string) *QueridoError {
	e.Detail = d
	return e
}

// WithContext adds custom context lines to the error.
func (e *QueridoError) WithContext(lines []string) *QueridoError {
	e.Context = lines
	return e
}

// Wrap wraps another error.
func (e *QueridoError) Wrap(err error) *QueridoError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file.
func readContextLines(filename string, targetLine, contextSize int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// New creates a QueridoError from a registered error code.
func New(code string) *QueridoError {
	template, ok := registry[code]
	if !ok {
		return &QueridoError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &QueridoError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new QueridoError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *QueridoError {
	return &QueridoError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a QueridoError.
func FromError(err error, code string) *QueridoError {
	if err == nil {
		return nil
	}
	if qe, ok := err.(*QueridoError); ok {
		return qe
	}
	return New(code).Wrap(err)
}

// Is reports whether err carries the given code, unwrapping as needed.
// It lets callers write `errors.Is(err, "Q001")` style checks without
// reaching into the error's fields directly.
func Is(err error, code string) bool {
	for err != nil {
		if qe, ok := err.(*QueridoError); ok {
			if qe.Code == code {
				return true
			}
			err = qe.Wrapped
			continue
		}
		break
	}
	return false
}
