package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/connline/pkg/pipeline"
)

// Defaults for Config fields left at zero.
const (
	DefaultMaxBody = 1 << 20
	DefaultTimeout = 30 * time.Second
)

// Config configures a Server.
type Config struct {
	// Runner executes layouts and renders. Nil means an uncached runner.
	Runner *pipeline.Runner

	// Logger receives one line per request. Nil discards.
	Logger *log.Logger

	// MaxBody limits request bodies in bytes.
	MaxBody int64

	// Timeout bounds the handling of one request.
	Timeout time.Duration

	// SceneDir, when set, serves the scene files below it on
	// GET /v1/scenes/{path}.
	SceneDir string
}

// Server is the connline HTTP API.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	maxBody  int64
	timeout  time.Duration
	sceneDir string
	router   chi.Router
}

// New builds a server and its routes.
func New(cfg Config) *Server {
	s := &Server{
		runner:   cfg.Runner,
		logger:   cfg.Logger,
		maxBody:  cfg.MaxBody,
		timeout:  cfg.Timeout,
		sceneDir: cfg.SceneDir,
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, s.logger)
	}
	if s.maxBody <= 0 {
		s.maxBody = DefaultMaxBody
	}
	if s.timeout <= 0 {
		s.timeout = DefaultTimeout
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.NotFound(s.handleNotFound)
	r.MethodNotAllowed(s.handleMethodNotAllowed)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/scene", s.handleScene)
		if s.sceneDir != "" {
			r.Get("/scenes/*", s.handleSceneFile)
		}
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
