package api

import (
	"context"
	"net/http"

	"github.com/okian/pele/internal/adapters/export"
	"github.com/okian/pele/internal/domain/types"
)

// StatsProvider describes the loaded dataset.
type StatsProvider interface {
	GetStats(ctx context.Context) (types.Stats, error)
	Filters(ctx context.Context) (export.Filters, error)
}

// StatsHandler handles stats and filter requests.
type StatsHandler struct {
	statsProvider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsProvider.GetStats(r.Context())
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// HandleFilters handles GET /filters: the seasons and teams a ratings
// query can narrow to.
func (h *StatsHandler) HandleFilters(w http.ResponseWriter, r *http.Request) {
	f, err := h.statsProvider.Filters(r.Context())
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}
