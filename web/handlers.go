/* handlers.go
 * Contains the HTTP handlers and router for the status endpoints
 */

package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"tournament-assistant/api/registry"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the router for the status endpoints
func NewRouter(cfg Config) http.Handler {
	s := &Server{api: cfg.API}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet},
	}))

	r.Get("/healthz", s.HealthHandler)
	r.Get("/tournaments", s.TournamentsHandler)
	r.Get("/tournaments/current", s.CurrentTournamentHandler)
	if cfg.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// HealthHandler reports that the process is up
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// CurrentTournamentHandler HTTP endpoint returning a summary of a guild's current tournament
// Preconditions: Receives the guild id in the `guild` query parameter
// Postconditions: Writes the summary as JSON, 400 for a bad guild id, 404 when no tournament is running and 503 when
// the tournament's lock could not be taken in time
func (s *Server) CurrentTournamentHandler(w http.ResponseWriter, r *http.Request) {
	guildID, err := strconv.ParseUint(r.URL.Query().Get("guild"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "a numeric guild id is required"})
		return
	}

	summary, err := s.api.Summary(r.Context(), guildID)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, summary)
	case errors.Is(err, registry.ErrNoCurrentTournament):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, registry.ErrUnableToGetAccess):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	default:
		log.Printf("[guild %d] failed to read the current tournament: %v", guildID, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// TournamentsHandler HTTP endpoint listing the running tournament of every guild
// Postconditions: Writes the summaries as a JSON array, or 503 when a tournament's lock could not be taken in time
func (s *Server) TournamentsHandler(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.api.CurrentTournaments(r.Context())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, summaries)
	case errors.Is(err, registry.ErrUnableToGetAccess):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	default:
		log.Printf("failed to list the current tournaments: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Println("failed to write response:", err)
	}
}
