// Package lsp implements a reduced language-server front end over stdio:
// initialize, textDocument/didOpen, textDocument/didChange, and
// textDocument/publishDiagnostics. It keeps an in-memory copy of every open
// document's text, re-extracts and re-validates tagged literals on every
// change, and pushes diagnostics back to the editor.
//
// Transport is JSON-RPC 2.0 over stdin/stdout via
// github.com/sourcegraph/jsonrpc2, the same protocol and framing a real
// editor integration speaks; the request/notification set is narrowed to
// what a tagged-literal DSL needs, modeled on which LSP surfaces the
// reference compiler's own language server computes diagnostics from.
package lsp
