// Package http serves the map page, the view snapshot and click dispatch,
// plus health, readiness and metrics endpoints.
package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/couchcryptid/seismic-map-service/internal/adapter/scene"
	"github.com/couchcryptid/seismic-map-service/internal/feed"
	"github.com/couchcryptid/seismic-map-service/internal/view"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed web/index.html
var indexHTML []byte

// reloadTimeout bounds a reload triggered over HTTP. It sits under the
// server's WriteTimeout so the result can still be written.
const reloadTimeout = 25 * time.Second

// Loader runs a feed load on demand and reports readiness.
type Loader interface {
	sharedobs.ReadinessChecker
	Load(ctx context.Context) feed.Result
}

// Server exposes the map UI and its API alongside health, readiness, and
// metrics endpoints.
type Server struct {
	httpServer *http.Server
	scene      *scene.Scene
	views      *view.Synchronizer
	loader     Loader
	logger     *slog.Logger
}

// NewServer creates an HTTP server for the given scene. Clicks are
// dispatched to the scene, whose handlers call back into views.
func NewServer(addr string, sc *scene.Scene, views *view.Synchronizer, loader Loader, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      requestID(logger, mux),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		scene:  sc,
		views:  views,
		loader: loader,
		logger: logger,
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/view", s.handleView)
	mux.HandleFunc("GET /api/events", s.handleEvents)
	mux.HandleFunc("POST /api/list/{index}/click", s.handleClick(sc.List.ClickRow))
	mux.HandleFunc("POST /api/markers/{index}/click", s.handleClick(sc.Map.ClickMarker))
	mux.HandleFunc("POST /api/reload", s.handleReload)

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(loader))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func (s *Server) handleView(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshot())
}

// snapshot reads the scene between renders so the map and list agree.
func (s *Server) snapshot() scene.State {
	var st scene.State
	s.views.Inspect(func() { st = s.scene.State() })
	return st
}

func (s *Server) handleEvents(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(newFeatureCollection(s.views.Records())); err != nil {
		s.logger.Warn("write events response failed", "error", err)
	}
}

func (s *Server) handleClick(click func(int) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		i, err := strconv.Atoi(r.PathValue("index"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("index must be an integer"))
			return
		}
		if err := click(i); err != nil {
			if errors.Is(err, scene.ErrNoSuchElement) {
				writeJSON(w, http.StatusNotFound, errorBody(err.Error()))
				return
			}
			writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
			return
		}
		writeJSON(w, http.StatusOK, s.snapshot())
	}
}

type reloadResponse struct {
	feed.Result
	Error string      `json:"error,omitempty"`
	View  scene.State `json:"view"`
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), reloadTimeout)
	defer cancel()

	res := s.loader.Load(ctx)
	body := reloadResponse{Result: res, View: s.snapshot()}
	status := http.StatusOK
	if res.Err != nil {
		body.Error = res.Err.Error()
		status = http.StatusBadGateway
	}
	writeJSON(w, status, body)
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // response already committed
}
