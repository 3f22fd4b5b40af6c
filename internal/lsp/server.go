package lsp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/vango-dev/querido/internal/parse"
	"github.com/vango-dev/querido/internal/query"
	"github.com/vango-dev/querido/internal/schema"
)

// Server is the handler behind the stdio JSON-RPC connection. It holds the
// query database so querido/inspectParam can reach into a live
// incremental-computation graph, and the schema used to validate every open
// document's tagged literals.
type Server struct {
	db     *query.Database
	schema *schema.Schema
	tag    string
	docs   *documentStore
	log    *slog.Logger
}

// NewServer builds a Server. tag is the literal tag to scan for (parse.DefaultTag
// if empty).
func NewServer(db *query.Database, s *schema.Schema, tag string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	if tag == "" {
		tag = parse.DefaultTag
	}
	return &Server{db: db, schema: s, tag: tag, docs: newDocumentStore(), log: log}
}

// Serve runs the server over stream until the peer disconnects or ctx is
// canceled, the same run-to-disconnect shape a stdio LSP transport always
// has.
func (s *Server) Serve(ctx context.Context, stream io.ReadWriteCloser) error {
	conn := jsonrpc2.NewConn(ctx, jsonrpc2.NewBufferedStream(stream, jsonrpc2.VSCodeObjectCodec{}), s.handlerFunc())
	select {
	case <-conn.DisconnectNotify():
		return nil
	case <-ctx.Done():
		_ = conn.Close()
		return ctx.Err()
	}
}

func (s *Server) handlerFunc() jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		switch req.Method {
		case "initialize":
			return InitializeResult{Capabilities: ServerCapabilities{TextDocumentSync: 1}}, nil

		case "initialized", "$/cancelRequest":
			return nil, nil

		case "textDocument/didOpen":
			var params DidOpenTextDocumentParams
			if err := json.Unmarshal(*req.Params, &params); err != nil {
				return nil, err
			}
			s.docs.open(params.TextDocument.URI, params.TextDocument.Text)
			s.publish(ctx, conn, params.TextDocument.URI)
			return nil, nil

		case "textDocument/didChange":
			var params DidChangeTextDocumentParams
			if err := json.Unmarshal(*req.Params, &params); err != nil {
				return nil, err
			}
			if len(params.ContentChanges) == 0 {
				return nil, nil
			}
			text := params.ContentChanges[len(params.ContentChanges)-1].Text
			s.docs.update(params.TextDocument.URI, text)
			s.publish(ctx, conn, params.TextDocument.URI)
			return nil, nil

		case "textDocument/didClose":
			var params DidCloseTextDocumentParams
			if err := json.Unmarshal(*req.Params, &params); err != nil {
				return nil, err
			}
			s.docs.close(params.TextDocument.URI)
			return nil, nil

		case "querido/inspectParam":
			var params InspectParamParams
			if err := json.Unmarshal(*req.Params, &params); err != nil {
				return nil, err
			}
			repr, err := query.InspectParam(s.db, query.ParamId(params.ID))
			if err != nil {
				return nil, err
			}
			return InspectParamResult{Repr: repr}, nil

		case "shutdown":
			return nil, nil

		default:
			return nil, fmt.Errorf("unhandled method %q", req.Method)
		}
	})
}

func (s *Server) publish(ctx context.Context, conn *jsonrpc2.Conn, uri string) {
	text, ok := s.docs.text(uri)
	if !ok {
		return
	}
	diags := computeDiagnostics(s.schema, s.tag, text)
	if err := conn.Notify(ctx, "textDocument/publishDiagnostics", PublishDiagnosticsParams{URI: uri, Diagnostics: diags}); err != nil {
		s.log.Error("publish diagnostics", "uri", uri, "error", err)
	}
}
