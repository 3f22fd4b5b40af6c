// Package artifact renders a validated selection into a generated Go
// source file and writes a batch of generated files to disk atomically,
// recording a manifest of what was written.
//
// One artifact is produced per top-level tagged literal: a banner comment
// naming the literal's source location, followed by a typed result struct
// mirroring the selection tree. Generation and writing are kept outside
// the query engine; internal/devserver's memoized compile step calls Render
// for every valid literal each time it recomputes, and the dev server calls
// Write once per recompile.
package artifact
