package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/querido/internal/config"
	"github.com/vango-dev/querido/internal/lsp"
	"github.com/vango-dev/querido/internal/parse"
	"github.com/vango-dev/querido/internal/query"
	"github.com/vango-dev/querido/internal/schema"
)

func lspCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Run a language server over stdio",
		Long: `Run a JSON-RPC language server over stdin/stdout, publishing
diagnostics for tagged literals as the editor edits them.

Intended to be launched by an editor, not a terminal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLSP()
		},
	}

	return cmd
}

func runLSP() error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	s, err := schema.Load(cfg.SchemaPath())
	if err != nil {
		return err
	}

	var log *slog.Logger
	if cfg.LSP.LogFile != "" {
		f, err := os.OpenFile(cfg.LSP.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		log = slog.New(slog.NewTextHandler(f, nil))
	} else {
		log = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	db := query.NewDatabase()
	srv := lsp.NewServer(db, s, parse.DefaultTag, log)

	return srv.Serve(context.Background(), stdioReadWriteCloser{})
}

// stdioReadWriteCloser adapts os.Stdin/os.Stdout to io.ReadWriteCloser for
// the JSON-RPC transport. Closing it closes stdout only, matching a
// well-behaved editor-launched process: stdin is closed by the parent.
type stdioReadWriteCloser struct{}

func (stdioReadWriteCloser) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdioReadWriteCloser) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdioReadWriteCloser) Close() error                { return os.Stdout.Close() }
