// Package parse extracts tagged data literals from host source files.
//
// A tagged literal is an identifier immediately followed by a backtick
// string, in the style of JavaScript tagged templates:
//
//	const PostQuery = data`
//	  Post {
//	    title
//	    author { name }
//	  }
//	`
//
// ScanDir walks a source tree, reads every file with a recognized extension,
// and returns the raw contents and source location of every literal whose
// tag matches the configured tag name. The extracted text is handed to
// internal/schema unparsed; parse never interprets the DSL itself.
package parse
