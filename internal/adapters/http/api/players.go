package api

import (
	"fmt"
	"net/http"
	"strconv"
)

// PlayersHandler handles player lookup and search.
type PlayersHandler struct {
	svc Service
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(svc Service) *PlayersHandler {
	return &PlayersHandler{svc: svc}
}

// HandleSearch handles GET /players?q=NAME&limit=N.
func (h *PlayersHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: limit %q", ErrBadRequest, s))
			return
		}
		limit = n
	}
	hits, err := h.svc.Search(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hits)
}

// HandleGetPlayer handles GET /players/{id}.
func (h *PlayersHandler) HandleGetPlayer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	p, err := h.svc.Player(r.Context(), id)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
