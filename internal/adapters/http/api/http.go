// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/pele/internal/adapters/export"
	service "github.com/okian/pele/internal/app"
	"github.com/okian/pele/internal/domain/types"
)

// Service is the read API the handlers need from the rating service.
type Service interface {
	Ratings(ctx context.Context, q service.RatingsQuery) ([]types.Entry, error)
	Player(ctx context.Context, playerID string) (types.PlayerRatings, error)
	Search(ctx context.Context, q string, limit int) ([]types.Match, error)
	Filters(ctx context.Context) (export.Filters, error)
	GetStats(ctx context.Context) (types.Stats, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	ratingsHandler *RatingsHandler
	playersHandler *PlayersHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(svc Service) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(svc),
		ratingsHandler: NewRatingsHandler(svc),
		playersHandler: NewPlayersHandler(svc),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /filters", MetricsMiddleware(s.statsHandler.HandleFilters, "filters"))
	mux.HandleFunc("GET /ratings", MetricsMiddleware(s.ratingsHandler.HandleGetRatings, "ratings"))
	mux.HandleFunc("GET /players", MetricsMiddleware(s.playersHandler.HandleSearch, "players"))
	mux.HandleFunc("GET /players/{id}", MetricsMiddleware(s.playersHandler.HandleGetPlayer, "player"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeUpstreamError translates a service error into its HTTP form.
func writeUpstreamError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	writeError(w, status, code, err)
}
