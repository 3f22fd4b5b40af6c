package devserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/querido/internal/artifact"
	"github.com/vango-dev/querido/internal/parse"
	"github.com/vango-dev/querido/internal/query"
	"github.com/vango-dev/querido/internal/schema"
	"github.com/vango-dev/querido/internal/watch"
)

// Server orchestrates the watch-parse-validate-render loop and exposes it
// over HTTP. Every method that touches db, contentSources, or literalMeta
// must run inside s.run (the single-writer command goroutine).
type Server struct {
	cfg     Config
	db      *query.Database
	schema  *schema.Schema
	watcher *watch.Watcher
	reload  *reloadHub
	metrics *serverMetrics
	tracer  trace.Tracer
	log     *slog.Logger

	filesSourceID    query.SourceId[[]string]
	contentSources   map[string]query.SourceId[string]
	literalMeta      map[string]parse.Literal
	compileAll       query.MemoFn[CompileResult]
	lastResult       CompileResult
	lastRecalculated bool

	commands chan func()
	httpSrv  *http.Server
}

// NewServer builds a Server from cfg. The returned Server has not started
// watching or serving; call Start.
func NewServer(cfg Config) (*Server, error) {
	s, err := schema.Load(cfg.Project.SchemaPath())
	if err != nil {
		return nil, err
	}

	debounce := cfg.Debounce
	if debounce == 0 {
		debounce, _ = time.ParseDuration(cfg.Project.Watch.Debounce)
	}
	if debounce == 0 {
		debounce = 100 * time.Millisecond
	}

	w, err := watch.New(watch.Config{
		Paths:    cfg.Project.SourcePaths(),
		Ignore:   append(watch.DefaultIgnore, cfg.Project.Watch.Ignore...),
		Debounce: debounce,
	})
	if err != nil {
		return nil, err
	}

	srv := &Server{
		cfg:     cfg,
		db:      query.NewDatabase(),
		schema:  s,
		watcher: w,
		reload:  newReloadHub(),
		metrics: newServerMetrics(prometheus.DefaultRegisterer),
		tracer:  otel.Tracer("querido/devserver"),
		log:     slog.Default(),
	}
	srv.contentSources = make(map[string]query.SourceId[string])
	srv.literalMeta = make(map[string]parse.Literal)
	srv.compileAll = query.FuncOf(srv.compileInner)
	srv.filesSourceID = query.Set(srv.db, query.NewInput(query.HashKeyString("querido:files"), []string(nil)))

	return srv, nil
}

// Start runs an initial compile, begins watching for changes, and serves
// the dev HTTP surface until Stop shuts the HTTP server down.
func (s *Server) Start(ctx context.Context) error {
	s.commands = make(chan func(), 64)
	go s.runLoop(ctx)

	s.run(func() { s.recompile(ctx, "initial") })

	s.watcher.OnEvent(func(batch []watch.Event) {
		s.commands <- func() { s.recompile(ctx, "watch") }
	})
	go s.watcher.Start(ctx)

	s.httpSrv = &http.Server{Addr: s.cfg.addr(), Handler: s.router()}
	s.log.Info("querido dev server listening", "addr", s.cfg.addr())

	err := s.httpSrv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop shuts down the HTTP server, the watcher, and the reload hub.
func (s *Server) Stop() {
	if s.httpSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpSrv.Shutdown(ctx)
	}
	s.watcher.Close()
	s.reload.close()
}

// run posts fn onto the command goroutine and blocks until it has run.
func (s *Server) run(fn func()) {
	done := make(chan struct{})
	s.commands <- func() {
		fn()
		close(done)
	}
	<-done
}

func (s *Server) withResult(fn func(CompileResult)) {
	s.run(func() { fn(s.lastResult) })
}

func (s *Server) runLoop(ctx context.Context) {
	for {
		select {
		case cmd := <-s.commands:
			cmd()
		case <-ctx.Done():
			return
		}
	}
}

// recompile rescans the project's literals, runs the memoized compile
// function, writes the resulting artifacts to the project's output
// directory, records metrics and a trace span, and pushes a reload
// notification to every connected client. Must only be called from the
// command goroutine.
func (s *Server) recompile(ctx context.Context, trigger string) {
	_, span := s.tracer.Start(ctx, "querido.recompile", trace.WithAttributes(
		attribute.String("querido.trigger", trigger),
	))
	defer span.End()

	start := time.Now()
	result := s.rescan()
	duration := time.Since(start)

	s.lastResult = result
	if _, err := artifact.Write(s.cfg.Project.ArtifactOutputPath(), result.Artifacts); err != nil {
		s.log.Error("writing artifacts", "error", err)
	}
	s.metrics.recomputeDuration.Observe(duration.Seconds())
	s.metrics.artifactsGenerated.Set(float64(len(result.Artifacts)))
	s.metrics.diagnosticsActive.Set(float64(len(result.Diagnostics)))

	outcome := "ok"
	if len(result.Diagnostics) > 0 {
		outcome = "diagnostics"
	}
	s.metrics.recompilesTotal.WithLabelValues(outcome).Inc()

	if s.lastRecalculated {
		s.metrics.cacheMissTotal.Inc()
	} else {
		s.metrics.cacheHitTotal.Inc()
	}

	if len(result.Diagnostics) > 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("%d diagnostics", len(result.Diagnostics)))
	} else {
		span.SetStatus(codes.Ok, "")
	}

	if s.cfg.Verbose {
		s.log.Info("recompile", "trigger", trigger, "duration", duration, "artifacts", len(result.Artifacts), "diagnostics", len(result.Diagnostics))
	}

	s.reload.notify(result)
}
