// Package httpapi exposes the planner over HTTP with a JSON API described by
// the embedded OpenAPI document.
package httpapi

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/avelar-dev/itinero"
	"github.com/avelar-dev/itinero/internal/logging"
	"github.com/avelar-dev/itinero/pkg/domain"
)

//go:embed openapi.yaml
var openapiSpec []byte

// Planner is the surface of the facade the HTTP layer uses.
type Planner interface {
	Plan(ctx context.Context, req itinero.TripRequest) (*domain.TripState, error)
	Get(ctx context.Context, sessionID string) (*domain.TripState, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, sessionID string) error
	ChooseAlternate(ctx context.Context, sessionID, name string) (*domain.TripState, error)
	Replan(ctx context.Context, sessionID string, directive domain.ReplanDirective) (*domain.TripState, error)
}

// Server routes HTTP requests to the planner.
type Server struct {
	planner Planner
	logger  *slog.Logger
}

// NewHandler builds the HTTP handler. The embedded OpenAPI document is
// validated once here so a malformed spec fails startup, not a request.
func NewHandler(planner Planner, logger *slog.Logger) (http.Handler, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	doc, err := openapi3.NewLoader().LoadFromData(openapiSpec)
	if err != nil {
		return nil, fmt.Errorf("load openapi spec: %w", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("validate openapi spec: %w", err)
	}

	s := &Server{planner: planner, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(openapiSpec)
	})

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.createTrip)
		r.Get("/", s.listTrips)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getTrip)
			r.Delete("/", s.deleteTrip)
			r.Post("/alternate", s.chooseAlternate)
			r.Post("/replan", s.replanTrip)
		})
	})

	return enableCORS(r), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) createTrip(w http.ResponseWriter, r *http.Request) {
	var req itinero.TripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	st, err := s.planner.Plan(r.Context(), req)
	if err != nil && st == nil {
		// Plan returns no state only when the request failed validation.
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	if err != nil {
		if errors.Is(err, domain.ErrNoMatches) {
			// The session is persisted with its failure status and
			// history, but the outcome is a conflict with the requested
			// budget.
			s.writeState(w, http.StatusConflict, st)
			return
		}
		s.writeFailure(w, err)
		return
	}
	s.writeState(w, http.StatusCreated, st)
}

func (s *Server) getTrip(w http.ResponseWriter, r *http.Request) {
	st, err := s.planner.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	s.writeState(w, http.StatusOK, st)
}

func (s *Server) listTrips(w http.ResponseWriter, r *http.Request) {
	ids, err := s.planner.List(r.Context())
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"sessions": ids})
}

func (s *Server) deleteTrip(w http.ResponseWriter, r *http.Request) {
	if err := s.planner.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeFailure(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type alternateRequest struct {
	// Name of the chosen alternate; empty keeps the original destination
	// and accepts the weather risk.
	Name string `json:"name"`
}

func (s *Server) chooseAlternate(w http.ResponseWriter, r *http.Request) {
	var req alternateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	st, err := s.planner.ChooseAlternate(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		if st != nil && errors.Is(err, domain.ErrNoMatches) {
			s.writeState(w, http.StatusConflict, st)
			return
		}
		s.writeFailure(w, err)
		return
	}
	s.writeState(w, http.StatusOK, st)
}

func (s *Server) replanTrip(w http.ResponseWriter, r *http.Request) {
	var directive domain.ReplanDirective
	if err := json.NewDecoder(r.Body).Decode(&directive); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	st, err := s.planner.Replan(r.Context(), chi.URLParam(r, "id"), directive)
	if err != nil {
		if st != nil && errors.Is(err, domain.ErrNoMatches) {
			s.writeState(w, http.StatusConflict, st)
			return
		}
		s.writeFailure(w, err)
		return
	}
	s.writeState(w, http.StatusOK, st)
}

// writeFailure maps domain errors to HTTP statuses.
func (s *Server) writeFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		s.writeError(w, http.StatusNotFound, err)
	case errors.Is(err, domain.ErrInvalidDirective), errors.Is(err, domain.ErrReevaluationLimit):
		s.writeError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, domain.ErrSessionClosed), errors.Is(err, domain.ErrNoMatches):
		s.writeError(w, http.StatusConflict, err)
	default:
		s.logger.Error("request failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeState(w http.ResponseWriter, status int, st *domain.TripState) {
	s.writeJSON(w, status, st)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}
