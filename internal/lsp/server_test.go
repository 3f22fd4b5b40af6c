package lsp

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/vango-dev/querido/internal/query"
)

// newTestClient wraps the client side of a net.Pipe as a jsonrpc2.Conn, routing
// any publishDiagnostics notification it receives onto a channel the test
// can read from.
func newTestClient(t *testing.T, clientSide net.Conn) (*jsonrpc2.Conn, chan PublishDiagnosticsParams) {
	t.Helper()
	notifications := make(chan PublishDiagnosticsParams, 8)
	handler := jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		if req.Method == "textDocument/publishDiagnostics" {
			var params PublishDiagnosticsParams
			if err := json.Unmarshal(*req.Params, &params); err == nil {
				notifications <- params
			}
		}
		return nil, nil
	})
	conn := jsonrpc2.NewConn(context.Background(), jsonrpc2.NewBufferedStream(clientSide, jsonrpc2.VSCodeObjectCodec{}), handler)
	return conn, notifications
}

func TestServer_DidOpenPublishesDiagnostics(t *testing.T) {
	serverSide, clientSide := net.Pipe()
	defer serverSide.Close()
	defer clientSide.Close()

	db := query.NewDatabase()
	srv := NewServer(db, testSchema(t), "data", nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Serve(ctx, serverSide)

	client, notifications := newTestClient(t, clientSide)
	defer client.Close()

	params := DidOpenTextDocumentParams{TextDocument: TextDocumentItem{
		URI:  "file:///app/posts.js",
		Text: "const Q = data`Post { nonexistent }`\n",
	}}
	if err := client.Notify(ctx, "textDocument/didOpen", params); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	select {
	case got := <-notifications:
		if got.URI != params.TextDocument.URI {
			t.Errorf("URI = %q, want %q", got.URI, params.TextDocument.URI)
		}
		if len(got.Diagnostics) != 1 || got.Diagnostics[0].Code != "Q201" {
			t.Errorf("Diagnostics = %+v, want one Q201", got.Diagnostics)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for publishDiagnostics")
	}
}

func TestServer_InspectParam(t *testing.T) {
	serverSide, clientSide := net.Pipe()
	defer serverSide.Close()
	defer clientSide.Close()

	db := query.NewDatabase()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := NewServer(db, testSchema(t), "data", nil)
	go srv.Serve(ctx, serverSide)

	client, _ := newTestClient(t, clientSide)
	defer client.Close()

	var result InspectParamResult
	err := client.Call(ctx, "querido/inspectParam", InspectParamParams{ID: 9999}, &result)
	if err == nil {
		t.Fatal("expected an error for an unknown param id")
	}
}
