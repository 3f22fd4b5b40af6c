// Package devserver wires the watcher, parser, schema validator, query
// engine, and artifact writer into one long-running process: a filesystem
// change triggers a rescan, the rescan feeds the query database, and a
// single top-level memoized function derives the current []artifact.Artifact
// (or the diagnostics blocking it). Connected editors and browsers are
// pushed a reload notification over a websocket once a recompile lands.
//
// Everything that touches the *query.Database runs on one goroutine, fed by
// a command channel; the watcher, HTTP handlers, and websocket hub only ever
// post closures onto it and never call into the engine directly.
package devserver
