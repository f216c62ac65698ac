// Package status serves a read-only HTTP view of a loaded plugin snapshot.
package status

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/switchboard/pkg/httputil"
	"github.com/platinummonkey/switchboard/pkg/observability"
	"github.com/platinummonkey/switchboard/pkg/plugins"
)

// Health is the body of GET /healthz
type Health struct {
	Status      string    `json:"status"`
	Snapshot    string    `json:"snapshot"`
	Root        string    `json:"root"`
	LoadedAt    time.Time `json:"loaded_at"`
	Commands    int       `json:"commands"`
	Middlewares int       `json:"middlewares"`
}

// Server exposes a plugin snapshot over HTTP
type Server struct {
	regs     *plugins.Registries
	gatherer prometheus.Gatherer
	metrics  *observability.HTTPMetrics
	log      *logrus.Logger
}

// Option configures a Server
type Option func(*Server)

// WithGatherer serves /metrics from gatherer
func WithGatherer(gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = gatherer
	}
}

// WithHTTPMetrics instruments every route
func WithHTTPMetrics(metrics *observability.HTTPMetrics) Option {
	return func(s *Server) {
		s.metrics = metrics
	}
}

// NewServer creates a status server for regs
func NewServer(regs *plugins.Registries, log *logrus.Logger, opts ...Option) *Server {
	if log == nil {
		log = logrus.New()
	}
	s := &Server{regs: regs, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the route table
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	middlewares := []func(http.Handler) http.Handler{
		httputil.RecoveryMiddleware(s.log),
		httputil.RequestIDMiddleware,
		httputil.LoggingMiddleware(s.log),
	}
	if s.metrics != nil {
		middlewares = append(middlewares, observability.HTTPMetricsMiddleware(s.metrics, routeTemplate))
	}
	r.Use(httputil.Chain(middlewares...))

	r.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	r.HandleFunc("/plugins/commands", s.listCommands).Methods(http.MethodGet)
	r.HandleFunc("/plugins/commands/{name}", s.getCommand).Methods(http.MethodGet)
	r.HandleFunc("/plugins/middlewares", s.listMiddlewares).Methods(http.MethodGet)
	r.HandleFunc("/plugins/middlewares/{name}", s.getMiddleware).Methods(http.MethodGet)

	if s.gatherer != nil {
		r.Handle("/metrics", observability.MetricsHandler(s.gatherer)).Methods(http.MethodGet)
	}

	return r
}

// HTTPServer wraps Router in an http.Server listening on addr
func (s *Server) HTTPServer(addr string, readTimeout, writeTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteSuccess(w, Health{
		Status:      "healthy",
		Snapshot:    s.regs.ID.String(),
		Root:        s.regs.Root,
		LoadedAt:    s.regs.LoadedAt,
		Commands:    s.regs.Commands.Len(),
		Middlewares: s.regs.Middlewares.Len(),
	})
}

func (s *Server) listCommands(w http.ResponseWriter, r *http.Request) {
	frames := make([]*plugins.CommandFrame, 0, s.regs.Commands.Len())
	s.regs.Commands.Each(func(_ string, frame *plugins.CommandFrame) {
		frames = append(frames, frame)
	})
	httputil.WriteSuccess(w, frames)
}

func (s *Server) getCommand(w http.ResponseWriter, r *http.Request) {
	name, ok := httputil.ParsePathStringOrError(w, r, "name")
	if !ok {
		return
	}

	frame, exists := s.regs.Commands.Get(name)
	if !exists {
		httputil.WriteNotFoundError(w, "command not found: "+name)
		return
	}
	httputil.WriteSuccess(w, frame)
}

func (s *Server) listMiddlewares(w http.ResponseWriter, r *http.Request) {
	frames := make([]*plugins.MiddlewareFrame, 0, s.regs.Middlewares.Len())
	s.regs.Middlewares.Each(func(_ string, frame *plugins.MiddlewareFrame) {
		frames = append(frames, frame)
	})
	httputil.WriteSuccess(w, frames)
}

func (s *Server) getMiddleware(w http.ResponseWriter, r *http.Request) {
	name, ok := httputil.ParsePathStringOrError(w, r, "name")
	if !ok {
		return
	}

	frame, exists := s.regs.Middlewares.Get(name)
	if !exists {
		httputil.WriteNotFoundError(w, "middleware not found: "+name)
		return
	}
	httputil.WriteSuccess(w, frame)
}

// routeTemplate labels a request with its matched route template
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return "unmatched"
}
