// Package portal serves the course-resource site: the HTML pages, the
// stored PDFs, the Prometheus endpoint, and the WebSocket the page
// runtime drives its navigation through.
package portal

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	clientdist "github.com/lectern-dev/lectern/client/dist"
	"github.com/lectern-dev/lectern/internal/catalog"
	"github.com/lectern-dev/lectern/internal/resources"
	"github.com/lectern-dev/lectern/pkg/auth"
	"github.com/lectern-dev/lectern/pkg/bridge"
	"github.com/lectern-dev/lectern/pkg/middleware"
	"github.com/lectern-dev/lectern/pkg/nav"
)

// Server is the portal HTTP server.
type Server struct {
	config  *Config
	store   resources.Store
	logger  *slog.Logger
	handler http.Handler

	registry   *prometheus.Registry
	navMetrics *middleware.Metrics
	tracing    *middleware.Tracing

	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New creates a portal server over the given resource store.
func New(config *Config, store resources.Store, opts ...Option) *Server {
	s := &Server{
		config:   config.withDefaults(),
		store:    store,
		logger:   slog.Default(),
		registry: prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.navMetrics = middleware.NewMetrics(middleware.WithRegistry(s.registry))
	s.tracing = middleware.NewTracing()
	s.handler = s.routes()
	return s
}

// Handler returns the server's HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Handle("/ws", bridge.NewHandler(s.navSetup,
		bridge.WithConfig(s.config.Bridge),
		bridge.WithLogger(s.logger),
		bridge.WithRouterOptions(
			nav.WithObserver(s.navMetrics),
			nav.WithObserver(s.tracing),
		),
	))

	r.Get("/assets/runtime.js", s.handleRuntime)
	r.Get("/", s.handleIndex)
	r.Get("/sem-1/{code}/", s.handleSubject)
	r.Get("/pdf-viewer/", s.handleViewer)
	r.Get("/files/*", s.handleFile)

	return r
}

// navSetup builds the per-session navigation table. The in-page routes
// mirror the HTTP pages; /files is deliberately absent so PDF links
// always full-navigate.
func (s *Server) navSetup(router *nav.Router, _ *bridge.Session) error {
	session := auth.NewMemorySession()
	router.SetAuthGate(auth.SessionGate(session))
	router.Use(middleware.Logging(s.logger))

	noop := func(context.Context, nav.Params, string) error { return nil }

	if err := router.Register("/", noop); err != nil {
		return err
	}
	if err := router.Register("/sem-1/:code", func(_ context.Context, params nav.Params, _ string) error {
		if !s.subjectExists(params["code"]) {
			return fmt.Errorf("portal: unknown subject %q", params["code"])
		}
		return nil
	}); err != nil {
		return err
	}
	if err := router.Register("/pdf-viewer", noop); err != nil {
		return err
	}
	return router.Register("/account", noop, nav.WithRequiresAuth())
}

func (s *Server) subjectExists(code string) bool {
	if code == "" || strings.ContainsAny(code, "/\\.") {
		return false
	}
	_, err := os.Stat(filepath.Join(s.config.DataDir, code+".json"))
	return err == nil
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "ok")
}

func (s *Server) handleRuntime(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(clientdist.RuntimeJS)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	fragments, err := subjectFragments(s.config.TemplatesDir)
	if err != nil {
		s.logger.Error("index render failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderShell(w, "Lectern", fragments); err != nil {
		s.logger.Error("index render failed", "error", err)
	}
}

func (s *Server) handleSubject(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if !s.subjectExists(code) {
		http.NotFound(w, r)
		return
	}
	fragment, err := os.ReadFile(filepath.Join(s.config.TemplatesDir, code+".html"))
	if err != nil {
		s.logger.Error("subject fragment missing", "code", code, "error", err)
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	title := catalog.DisplayName(code) + " — Lectern"
	if err := renderShell(w, title, []template.HTML{template.HTML(fragment)}); err != nil {
		s.logger.Error("subject render failed", "code", code, "error", err)
	}
}

func (s *Server) handleViewer(w http.ResponseWriter, r *http.Request) {
	file := r.URL.Query().Get("file")
	// Only same-site documents may be framed.
	if file == "" || !strings.HasPrefix(file, "/") || strings.HasPrefix(file, "//") {
		http.Error(w, "bad file parameter", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderViewer(w, file, r.URL.Query().Get("title")); err != nil {
		s.logger.Error("viewer render failed", "error", err)
	}
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	res, err := s.store.Open(r.Context(), key)
	switch {
	case errors.Is(err, resources.ErrNotFound):
		http.NotFound(w, r)
		return
	case errors.Is(err, resources.ErrInvalidKey):
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	case err != nil:
		s.logger.Error("resource open failed", "key", key, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer res.Close()

	w.Header().Set("Content-Type", res.ContentType)
	if res.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(res.Size, 10))
	}
	if _, err := io.Copy(w, res.Body); err != nil {
		s.logger.Warn("resource stream interrupted", "key", key, "error", err)
	}
}

// GenerateTemplates renders the subject fragments from the data files.
func (s *Server) GenerateTemplates() (catalog.Stats, error) {
	g := &catalog.Generator{
		DataDir:      s.config.DataDir,
		TemplatesDir: s.config.TemplatesDir,
		Logger:       s.logger,
	}
	return g.Run()
}

// Run generates the subject fragments, then serves until ctx is
// canceled, shutting down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if _, err := s.GenerateTemplates(); err != nil {
		return err
	}

	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s.handler,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("portal listening", "address", s.config.Address)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("portal: shutdown: %w", err)
	}
	return <-errCh
}
