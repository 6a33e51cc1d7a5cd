package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	service "github.com/okian/pele/internal/app"
	"github.com/okian/pele/internal/config"
)

// RatingsHandler handles ratings requests.
type RatingsHandler struct {
	svc Service
}

// NewRatingsHandler creates a new ratings handler.
func NewRatingsHandler(svc Service) *RatingsHandler {
	return &RatingsHandler{svc: svc}
}

// HandleGetRatings handles GET /ratings. Every parameter is optional:
//
//	group_by     comma-separated identity columns, or "none" for row-level
//	standardize  bool
//	weights      profile name
//	season, team filters applied before scoring
//	bucket       position bucket filter applied after scoring
//	limit        maximum entries returned
func (h *RatingsHandler) HandleGetRatings(w http.ResponseWriter, r *http.Request) {
	q, err := parseRatingsQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	entries, err := h.svc.Ratings(r.Context(), q)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func parseRatingsQuery(r *http.Request) (service.RatingsQuery, error) {
	v := r.URL.Query()
	q := service.RatingsQuery{
		Weights: strings.TrimSpace(v.Get("weights")),
		Season:  strings.TrimSpace(v.Get("season")),
		Team:    strings.TrimSpace(v.Get("team")),
		Bucket:  strings.TrimSpace(v.Get("bucket")),
	}
	if v.Has("group_by") {
		q.GroupBy = config.ParseGroupBy(v.Get("group_by"))
	}
	if s := v.Get("standardize"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return q, fmt.Errorf("%w: standardize %q", ErrBadRequest, s)
		}
		q.Standardize = &b
	}
	if s := v.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return q, fmt.Errorf("%w: limit %q", ErrBadRequest, s)
		}
		q.Limit = n
	}
	return q, nil
}
