// Package http exposes the planner over a JSON API: CAS resolution,
// design computation and session management.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/mitchellh/mapstructure"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/seplab/spmeplan"
	"github.com/seplab/spmeplan/internal/logging"
	"github.com/seplab/spmeplan/pkg/conditions"
	"github.com/seplab/spmeplan/pkg/domain"
	"github.com/seplab/spmeplan/pkg/observability"
	"github.com/seplab/spmeplan/pkg/session"
)

// SessionHeader names the optional request header tying a compute call to a
// stored compound set.
const SessionHeader = "X-Session-ID"

// Server wires the planner and the optional session manager into HTTP
// handlers.
type Server struct {
	planner  *spmeplan.Planner
	sessions *session.Manager
	logger   *slog.Logger
	metrics  *observability.Metrics
	gatherer prometheus.Gatherer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithSessions enables the /sessions endpoints and the X-Session-ID header.
func WithSessions(m *session.Manager) Option {
	return func(s *Server) { s.sessions = m }
}

// WithMetrics records per-route request durations.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithMetricsEndpoint mounts GET /metrics over the given gatherer.
func WithMetricsEndpoint(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// NewHandler creates the HTTP handler for the planner API.
func NewHandler(planner *spmeplan.Planner, opts ...Option) http.Handler {
	s := &Server{
		planner: planner,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	if s.metrics != nil {
		r.Use(s.observe)
	}

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Post("/query", s.Query)
	r.Post("/compute", s.Compute)

	if s.sessions != nil {
		r.Get("/sessions", s.ListSessions)
		r.Get("/sessions/{id}", s.GetSession)
		r.Delete("/sessions/{id}", s.DeleteSession)
	}
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+SessionHeader)
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// observe records the request duration labelled by route pattern and status.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		s.metrics.RequestDuration.
			WithLabelValues(route, strconv.Itoa(ww.Status())).
			Observe(time.Since(start).Seconds())
	})
}

// QueryRequest is the body of POST /query.
type QueryRequest struct {
	CASNumbers []string `json:"cas_numbers"`
}

// Query handles POST /query: validate each CAS number and resolve its
// candidate compounds.
func (s *Server) Query(w http.ResponseWriter, r *http.Request) {
	var body QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Query: Invalid request body", "err", err)
		return
	}
	if len(body.CASNumbers) == 0 {
		http.Error(w, "cas_numbers must not be empty", http.StatusBadRequest)
		return
	}

	results := s.planner.Query(r.Context(), body.CASNumbers)
	writeJSON(w, s.logger, results)
}

// ComputeRequest is the body of POST /compute. Selection maps each CAS
// number to the chosen PubChem CID. Properties carries the sample flags;
// unknown keys are rejected. When Selection is empty and X-Session-ID names
// a stored session, the design is computed over the stored compound set.
type ComputeRequest struct {
	Selection    map[string]int `json:"selection"`
	Properties   map[string]any `json:"properties"`
	CenterPoints *int           `json:"center_points"`
}

// Compute handles POST /compute.
func (s *Server) Compute(w http.ResponseWriter, r *http.Request) {
	var body ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Compute: Invalid request body", "err", err)
		return
	}

	opts, err := decodeOptions(body.Properties)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid properties: %v", err), http.StatusBadRequest)
		s.logger.Warn("Compute: Invalid properties", "err", err)
		return
	}

	centerPoints := spmeplan.DefaultCenterPoints
	if body.CenterPoints != nil {
		centerPoints = *body.CenterPoints
	}

	sessionID := r.Header.Get(SessionHeader)

	var plan *spmeplan.Plan
	switch {
	case len(body.Selection) > 0:
		plan, err = s.planner.ComputePlan(r.Context(), body.Selection, opts, centerPoints)
	case s.sessions != nil && sessionID != "":
		plan, err = s.computeFromSession(r, sessionID, opts, centerPoints)
	default:
		http.Error(w, "selection must not be empty", http.StatusBadRequest)
		return
	}
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrSessionNotFound):
			status = http.StatusNotFound
		case errors.Is(err, conditions.ErrEmptyCompoundSet),
			errors.Is(err, domain.ErrInvalidCompound):
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, fmt.Sprintf("Compute error: %v", err), status)
		s.logger.Error("Compute failed", "err", err)
		return
	}

	if s.sessions != nil && sessionID != "" && len(body.Selection) > 0 {
		if err := s.sessions.Append(r.Context(), sessionID, plan.Compounds...); err != nil {
			// The design is already computed; a storage failure must not
			// discard the response.
			s.logger.Error("Compute: session save failed", "session_id", sessionID, "err", err)
		}
	}

	writeJSON(w, s.logger, plan)
}

func (s *Server) computeFromSession(r *http.Request, sessionID string, opts conditions.Options, centerPoints int) (*spmeplan.Plan, error) {
	compounds, err := s.sessions.Load(r.Context(), sessionID)
	if err != nil {
		return nil, err
	}
	return s.planner.BuildDesign(compounds, opts, centerPoints)
}

// SessionResponse is the body of GET /sessions/{id}.
type SessionResponse struct {
	SessionID string            `json:"session_id"`
	Compounds []domain.Compound `json:"compounds"`
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	compounds, err := s.sessions.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Session load error: %v", err), http.StatusInternalServerError)
		s.logger.Error("GetSession failed", "session_id", id, "err", err)
		return
	}
	writeJSON(w, s.logger, SessionResponse{SessionID: id, Compounds: compounds})
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.sessions.Delete(r.Context(), id); err != nil {
		http.Error(w, fmt.Sprintf("Session delete error: %v", err), http.StatusInternalServerError)
		s.logger.Error("DeleteSession failed", "session_id", id, "err", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.sessions.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Session list error: %v", err), http.StatusInternalServerError)
		s.logger.Error("ListSessions failed", "err", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, s.logger, map[string][]string{"sessions": ids})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, map[string]string{
		"app":     "spmeplan-http",
		"version": spmeplan.Version,
	})
}

// decodeOptions maps the loosely typed properties object onto the condition
// flags, rejecting unknown keys so typos fail loudly instead of silently
// defaulting.
func decodeOptions(properties map[string]any) (conditions.Options, error) {
	var opts conditions.Options
	if len(properties) == 0 {
		return opts, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &opts,
		ErrorUnused: true,
	})
	if err != nil {
		return opts, err
	}
	if err := dec.Decode(properties); err != nil {
		return opts, err
	}
	return opts, nil
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Response encode failed", "err", err)
	}
}
