package api

import (
	"encoding/json"
	"net/http"

	"stockeye/internal/scan"
	"stockeye/internal/watchlist"
	"stockeye/pkg/logger"
)

// Handler serves the scan and watchlist endpoints.
type Handler struct {
	orchestrator *scan.Orchestrator
	store        *watchlist.Store
	logger       *logger.Logger
}

// NewHandler creates the API handler.
func NewHandler(orchestrator *scan.Orchestrator, store *watchlist.Store, log *logger.Logger) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		store:        store,
		logger:       log,
	}
}

type scanRequest struct {
	Universe string   `json:"universe,omitempty"`
	Symbols  []string `json:"symbols,omitempty"`
	Type     string   `json:"type,omitempty"`
	Limit    int      `json:"limit,omitempty"`
}

// Scan runs a scan over a named universe or an explicit symbol list.
func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	symbols := req.Symbols
	if req.Universe != "" {
		resolved, ok := scan.Universe(req.Universe)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown universe: "+req.Universe)
			return
		}
		symbols = append(symbols, resolved...)
	}
	if len(symbols) == 0 {
		writeError(w, http.StatusBadRequest, "universe or symbols required")
		return
	}

	scanType, ok := scan.ParseType(req.Type)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown scan type: "+req.Type)
		return
	}

	report, err := h.orchestrator.Scan(r.Context(), scan.Request{
		Symbols: symbols,
		Type:    scanType,
		Limit:   req.Limit,
	})
	if err != nil {
		h.logger.WithError(err).Error("Scan request failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// GetWatchlist returns the persisted watchlist.
func (h *Handler) GetWatchlist(w http.ResponseWriter, r *http.Request) {
	symbols, err := h.store.Load()
	if err != nil {
		h.logger.WithError(err).Error("Watchlist load failed")
		writeError(w, http.StatusInternalServerError, "failed to load watchlist")
		return
	}
	if symbols == nil {
		symbols = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"symbols": symbols})
}

type watchlistRequest struct {
	Add    []string `json:"add,omitempty"`
	Remove []string `json:"remove,omitempty"`
}

// UpdateWatchlist adds and removes symbols.
func (h *Handler) UpdateWatchlist(w http.ResponseWriter, r *http.Request) {
	var req watchlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Add) == 0 && len(req.Remove) == 0 {
		writeError(w, http.StatusBadRequest, "add or remove required")
		return
	}

	added, err := h.store.Add(req.Add...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	removed := 0
	if len(req.Remove) > 0 {
		removed, err = h.store.Remove(req.Remove...)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]int{"added": added, "removed": removed})
}

// AnalyzeWatchlist rates every symbol on the watchlist.
func (h *Handler) AnalyzeWatchlist(w http.ResponseWriter, r *http.Request) {
	report, err := h.orchestrator.AnalyzeWatchlist(r.Context(), h.store, 0)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// GetUniverses lists the predefined universe names.
func (h *Handler) GetUniverses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"universes": scan.UniverseNames()})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
