// Package server serves the kroviz browser front end. Every page is rendered
// on the server from RO representations fetched from the backend.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-kroviz/pkg/client"
	"github.com/goliatone/go-kroviz/pkg/orchestrator"
	"github.com/goliatone/go-kroviz/pkg/page"
	"github.com/goliatone/go-kroviz/pkg/render"
	"github.com/goliatone/go-kroviz/pkg/renderers/vanilla"
)

// Routes served by the front end.
const (
	PathHome   = "/"
	PathFollow = "/follow"
	PathAssets = "/assets"
	PathHealth = "/healthz"

	// FollowPrefix is the link prefix the HTML renderer rewrites RO hrefs to.
	FollowPrefix = PathFollow + "?href="
)

// Backend is the subset of the RO client the server uses.
type Backend interface {
	orchestrator.Backend
	BaseURL() string
}

var _ Backend = (*client.Client)(nil)

// Option customises the server.
type Option func(*Server)

// WithOrchestrator replaces the page pipeline. The default renders HTML with
// links rewritten to the follow endpoint.
func WithOrchestrator(orch *orchestrator.Orchestrator) Option {
	return func(s *Server) {
		s.orch = orch
	}
}

// WithHTMLOptions adds options to the default HTML renderer.
func WithHTMLOptions(options ...vanilla.Option) Option {
	return func(s *Server) {
		s.htmlOptions = append(s.htmlOptions, options...)
	}
}

// WithPipelineOptions adds options to the default orchestrator, such as
// theme manifests or extra decorators.
func WithPipelineOptions(options ...orchestrator.Option) Option {
	return func(s *Server) {
		s.pipelineOptions = append(s.pipelineOptions, options...)
	}
}

// WithRenderer names the renderer used for responses.
func WithRenderer(name string) Option {
	return func(s *Server) {
		s.renderer = name
	}
}

// WithLogger sets the request and error logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTimeouts overrides the read and shutdown timeouts of Run.
func WithTimeouts(read, shutdown time.Duration) Option {
	return func(s *Server) {
		if read > 0 {
			s.readTimeout = read
		}
		if shutdown > 0 {
			s.shutdownTimeout = shutdown
		}
	}
}

// Server renders RO resources for browsers.
type Server struct {
	backend         Backend
	orch            *orchestrator.Orchestrator
	renderer        string
	logger          *zap.Logger
	readTimeout     time.Duration
	shutdownTimeout time.Duration
	router          chi.Router
	htmlOptions     []vanilla.Option
	pipelineOptions []orchestrator.Option
}

// New builds the server and its routes.
func New(backend Backend, options ...Option) (*Server, error) {
	if backend == nil {
		return nil, errors.New("server: backend is required")
	}
	s := &Server{
		backend:         backend,
		logger:          zap.NewNop(),
		readTimeout:     15 * time.Second,
		shutdownTimeout: 10 * time.Second,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.orch == nil {
		orch, err := s.defaultOrchestrator()
		if err != nil {
			return nil, err
		}
		s.orch = orch
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) defaultOrchestrator() (*orchestrator.Orchestrator, error) {
	htmlOptions := append([]vanilla.Option{
		vanilla.WithLinkPrefix(FollowPrefix),
		vanilla.WithStylesheet(PathAssets + "/" + vanilla.StylesheetName),
	}, s.htmlOptions...)
	renderer, err := vanilla.New(htmlOptions...)
	if err != nil {
		return nil, fmt.Errorf("server: html renderer: %w", err)
	}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)
	options := append([]orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(renderer.Name()),
		orchestrator.WithShortcuts(page.Shortcut{Label: "Home", Icon: "fa-home", Href: PathHome}),
		orchestrator.WithLogger(s.logger),
	}, s.pipelineOptions...)
	return orchestrator.New(options...), nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get(PathHome, s.handleHome)
	r.Get(PathFollow, s.handleFollow)
	r.Get(PathHealth, s.handleHealth)
	r.Handle(PathAssets+"/*", http.StripPrefix(PathAssets+"/", http.FileServerFS(vanilla.AssetsFS())))
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: s.readTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("kroviz listening", zap.String("addr", addr), zap.String("backend", s.backend.BaseURL()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
