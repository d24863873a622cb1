// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"

	"github.com/dara-lab/dara/internal/adapters/http/docs"
	service "github.com/dara-lab/dara/internal/app"
	"github.com/dara-lab/dara/internal/domain/energy"
	"github.com/dara-lab/dara/internal/domain/happiness"
	"github.com/dara-lab/dara/internal/domain/ipl"
	"github.com/dara-lab/dara/internal/domain/netflix"
	"github.com/dara-lab/dara/internal/domain/olympics"
	"github.com/dara-lab/dara/pkg/logger"
	"github.com/dara-lab/dara/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Olympics() *olympics.Dataset
	IPL() *ipl.Dataset
	Netflix() *netflix.Dataset
	Happiness() *happiness.Dataset
	Energy() *energy.Dataset

	// Observe evaluates one named query and records its latency.
	Observe(ctx context.Context, query string, run func() (result any, empty bool)) any
}

// StatsProvider reports the load state of the datasets.
type StatsProvider interface {
	Started() bool
	GetStats() service.Stats
}

// DefaultMaxTopN caps top_n and limit parameters when NewServer is given no
// positive cap.
const DefaultMaxTopN = 1000

// Server wires HTTP routes for the business API.
type Server struct {
	deps    Dependencies
	stats   StatsProvider
	maxTopN int
	logger  logger.Logger
}

// NewServer creates a new API server. maxTopN caps every top_n and limit
// parameter.
func NewServer(deps Dependencies, stats StatsProvider, maxTopN int) *Server {
	if maxTopN <= 0 {
		maxTopN = DefaultMaxTopN
	}
	return &Server{
		deps:    deps,
		stats:   stats,
		maxTopN: maxTopN,
		logger:  logger.Named("api"),
	}
}

// route binds a GET path to a query whose result is sent under key.
type route struct {
	path  string
	key   string
	query queryFunc
}

// queryFunc validates the request parameters and evaluates one query.
type queryFunc func(r *http.Request) (any, error)

func (s *Server) routes() []route {
	var out []route
	out = append(out, s.olympicsRoutes()...)
	out = append(out, s.iplRoutes()...)
	out = append(out, s.netflixRoutes()...)
	out = append(out, s.happinessRoutes()...)
	out = append(out, s.energyRoutes()...)
	return out
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	for _, rt := range s.routes() {
		mux.HandleFunc("GET "+rt.path, MetricsMiddleware(ETag(s.serve(rt)), rt.path))
	}

	mux.HandleFunc("GET /{$}", MetricsMiddleware(ETag(s.handleRoot), "root"))
	mux.HandleFunc("GET /health", MetricsMiddleware(s.handleHealth, "health"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.handleStats, "stats"))
	mux.HandleFunc("GET /api/docs", MetricsMiddleware(ETag(docs.Handler()), "docs"))
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	// Everything else.
	mux.HandleFunc("/", MetricsMiddleware(handleNotFound, "not_found"))
}

// Handler returns a mux with every route registered behind the recover,
// request-id and CORS middleware.
func (s *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	s.Register(ctx, mux)
	return Recover(s.logger, RequestID(CORS(mux)))
}

func (s *Server) serve(rt route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		res := s.deps.Observe(r.Context(), rt.path, func() (any, bool) {
			v, qerr := rt.query(r)
			err = qerr
			return v, qerr == nil && isEmpty(v)
		})
		if err != nil {
			s.fail(w, r, rt.path, err)
			return
		}
		writeJSON(w, http.StatusOK, envelope(rt.key, res))
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, path string, err error) {
	switch {
	case errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "Missing required parameter", clientMessage(err))
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, notFoundBody)
	default:
		metrics.RecordQueryError(path)
		s.logger.Error(r.Context(), "query failed", logger.String("path", path), logger.Error(err))
		writeJSON(w, http.StatusInternalServerError, internalErrorBody)
	}
}

// envelope wraps a query result under its contract key.
func envelope(key string, v any) map[string]any {
	return map[string]any{key: v}
}

// noResults is returned in place of a search result that matched nothing.
type noResults struct {
	Message string `json:"message"`
	Query   string `json:"query"`
}

// isEmpty reports whether a query produced no rows.
func isEmpty(v any) bool {
	if _, ok := v.(noResults); ok {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Slice && rv.Len() == 0
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

var (
	notFoundBody = errorResponse{
		Error:   "Endpoint not found",
		Message: "Please check /api/docs for available endpoints",
	}
	internalErrorBody = errorResponse{
		Error:   "Internal server error",
		Message: "Something went wrong on the server",
	}
)

func handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, notFoundBody)
}

// writeJSON encodes v before writing the status so an encoding failure still
// yields a well-formed 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		b, _ = json.Marshal(internalErrorBody)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(append(b, '\n'))
}

func writeError(w http.ResponseWriter, status int, title, message string) {
	writeJSON(w, status, errorResponse{Error: title, Message: message})
}
