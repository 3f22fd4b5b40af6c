package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/querido/internal/config"
	"github.com/vango-dev/querido/internal/devserver"
)

func watchCmd() *cobra.Command {
	var (
		addr    string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the project and recompile on change",
		Long: `Start the dev server: watch the project's source directories, recompile
on every change, and push a reload notification to connected browsers and
editors over a websocket.

Also exposes an HTTP inspection surface:
  GET /querido/artifacts   the last compile's artifacts
  GET /querido/graph       a summary of the query engine's state
  GET /querido/healthz     liveness check
  GET /querido/reload      websocket reload feed

Examples:
  querido watch
  querido watch --addr=:4824`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(addr, verbose)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Address to listen on (default :4824)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every recompile")

	return cmd
}

func runWatch(addr string, verbose bool) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	printBanner()
	fmt.Println("  watch")
	fmt.Println()

	srv, err := devserver.NewServer(devserver.Config{
		Addr:    addr,
		Project: cfg,
		Verbose: verbose,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\n\n  Shutting down...")
		srv.Stop()
		cancel()
	}()

	return srv.Start(ctx)
}
