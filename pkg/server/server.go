package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/splitgrid/pkg/cache"
	"github.com/matzehuels/splitgrid/pkg/observability"
	"github.com/matzehuels/splitgrid/pkg/pipeline"
)

// Defaults for Config.
const (
	DefaultAddr         = "127.0.0.1:8080"
	DefaultTTL          = time.Hour
	DefaultMaxBodyBytes = 1 << 20
)

// Config configures a Server. Zero values fall back to the defaults, so a
// zero TTL means [DefaultTTL]; a negative TTL keeps grids until they are
// deleted.
type Config struct {
	Addr         string
	TTL          time.Duration
	MaxBodyBytes int64
	Logger       *log.Logger
}

// Server serves the grid API.
type Server struct {
	cfg        Config
	store      *Store
	artifacts  *cache.MemoryCache
	logger     *log.Logger
	router     chi.Router
	httpServer *http.Server
}

// New creates a server. Call Run to start listening, or mount Handler in
// another server.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.TTL == 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	s := &Server{
		cfg:       cfg,
		store:     NewStore(cfg.TTL),
		artifacts: cache.NewMemoryCache(),
		logger:    cfg.Logger,
	}
	s.store.onRemove = func(scope string) { s.artifacts.DeletePrefix(scope) }
	s.router = s.routes()
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler { return s.router }

// Store returns the server's live grid store.
func (s *Server) Store() *Store { return s.store }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1/grids", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Post("/drags", s.handleDrag)
			r.Get("/artifacts/{format}", s.handleArtifact)
		})
	})
	return r
}

// observe reports every request to the HTTP hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		observability.HTTP().OnRequest(r.Context(), r.Method, route)
		observability.HTTP().OnResponse(r.Context(), r.Method, route, status, time.Since(start))
	})
}

// runner returns a pipeline runner scoped to one live grid.
func (s *Server) runner(e *entry) *pipeline.Runner {
	return pipeline.NewRunner(s.artifacts, e.keyer, s.logger)
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go s.janitor(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = s.Shutdown(shutdownCtx)
	}()

	s.logger.Info("serving", "addr", ln.Addr().String())
	if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	_ = s.artifacts.Close()
	return s.httpServer.Shutdown(ctx)
}

// janitor evicts idle grids and expired artifacts. Without a grid TTL it
// still sweeps artifacts.
func (s *Server) janitor(ctx context.Context) {
	interval := cache.TTLArtifact / 2
	if s.cfg.TTL > 0 {
		interval = max(min(interval, s.cfg.TTL/2), time.Millisecond)
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.store.Cleanup(); n > 0 {
				s.logger.Debug("evicted idle grids", "count", n)
			}
			if n := s.artifacts.Sweep(); n > 0 {
				s.logger.Debug("swept expired artifacts", "count", n)
			}
		}
	}
}
