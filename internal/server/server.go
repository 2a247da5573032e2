// Package server exposes the conversion pipeline over HTTP.
//
// Routes:
//
//	GET    /healthz
//	GET    /api/v1/samples
//	GET    /api/v1/samples/{slug}
//	POST   /api/v1/egraphs
//	POST   /api/v1/hypergraphs
//	GET    /api/v1/graphs
//	GET    /api/v1/graphs/{id}
//	DELETE /api/v1/graphs/{id}
//	GET    /api/v1/graphs/{id}/render?format=svg&engine=fdp&detailed=true
//
// Errors are returned as {"error":{"code":"...","message":"..."}}.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/eggsposition/eggsposition/pkg/pipeline"
	"github.com/eggsposition/eggsposition/pkg/store"
)

// DefaultMaxUploadBytes limits request bodies when no limit is configured.
const DefaultMaxUploadBytes = 10 << 20

const shutdownTimeout = 10 * time.Second

// Option configures optional Server behavior.
type Option func(*Server)

// WithMaxUploadBytes caps the size of uploaded e-graphs and hypergraphs.
func WithMaxUploadBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxUpload = n
		}
	}
}

// WithRenderDefaults sets the engine and label detail used when a render
// request does not name them.
func WithRenderDefaults(engine string, detailed bool) Option {
	return func(s *Server) {
		s.engine = engine
		s.detailed = detailed
	}
}

// WithStrictMembers makes hypergraph uploads reject hyperedges that name
// unknown nodes unless the request overrides it.
func WithStrictMembers(strict bool) Option {
	return func(s *Server) { s.strictMembers = strict }
}

// Server holds the chi router, the pipeline runner and the document store.
type Server struct {
	router chi.Router
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger

	maxUpload     int64
	engine        string
	detailed      bool
	strictMembers bool
}

// New creates a Server with all routes configured.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:    runner,
		store:     st,
		logger:    logger,
		maxUpload: DefaultMaxUploadBytes,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(accessLog(logger))
	r.Use(httpHooks)
	r.Use(serverHeader)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeErrorCode(w, http.StatusNotFound, "NOT_FOUND", "no route for "+r.Method+" "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeErrorCode(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method+" not allowed on "+r.URL.Path)
	})

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/samples", s.handleListSamples)
		r.Get("/samples/{slug}", s.handleGetSample)

		r.Post("/egraphs", s.handleCreateEGraph)
		r.Post("/hypergraphs", s.handleCreateHypergraph)

		r.Route("/graphs", func(r chi.Router) {
			r.Get("/", s.handleListGraphs)
			r.Get("/{id}", s.handleGetGraph)
			r.Delete("/{id}", s.handleDeleteGraph)
			r.Get("/{id}/render", s.handleRenderGraph)
		})
	})

	s.router = r
	return s
}

// ServeHTTP implements the http.Handler interface, delegating to the chi router.
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
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
