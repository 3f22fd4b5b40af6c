// Package errors provides structured, actionable error messages for Querido.
//
// The errors package implements a comprehensive error system that:
//   - Shows exact source locations (file, line, column)
//   - Explains what went wrong in plain language
//   - Suggests how to fix issues with code examples
//   - Links to documentation for deeper understanding
//
// # Error Categories
//
// Errors are organized into categories:
//   - query: engine-raised errors (missing source, missing param, cycle)
//   - parse: tagged-literal extraction errors in host source files
//   - schema: validation errors against the DSL's schema
//   - artifact: generated-file writing errors
//   - watch: file-watcher errors
//   - config: querido.json loading/validation errors
//   - cli: command-line usage errors
//
// # Error Codes
//
// Each error has a unique code (e.g., "Q001") that maps to:
//   - A short message describing the error
//   - A detailed explanation
//   - A documentation URL
//
// # Usage
//
//	err := errors.New("Q001").
//	    WithLocation("app/queries.js", 15, 12).
//	    WithSuggestion("Check that the source was set before this query ran")
//
//	fmt.Println(err.Format())
//	// Output:
//	// [query] Q001: Source not found
//	//
//	//   app/queries.js:15:12
//	//
//	//     13 │ const postId = route.param("id")
//	//     14 │ const post = data`Post(id: $postId) { title }`
//	//   → 15 │ return post.title
//	//        │             ^
//	//     16 │ }
//	//
//	//   A query read a source key that has never been set, or that was removed
//	//   earlier in this run.
//	//
//	//   Hint: Check that the source was set before this query ran
//	//
//	//   Learn more: https://querido.dev/docs/errors/Q001
package errors
