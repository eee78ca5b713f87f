package handlers

import (
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/ferret/internal/interfaces"
)

const defaultHistoryLimit = 50

// HistoryHandler serves persisted scan results
type HistoryHandler struct {
	scans  interfaces.ScanStorage
	logger arbor.ILogger
}

func NewHistoryHandler(scans interfaces.ScanStorage, logger arbor.ILogger) *HistoryHandler {
	return &HistoryHandler{
		scans:  scans,
		logger: logger,
	}
}

// ListScans handles GET /api/scans
func (h *HistoryHandler) ListScans(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	limit := parseLimit(r, defaultHistoryLimit)
	scans, err := h.scans.ListScans(r.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list scans")
		WriteError(w, http.StatusInternalServerError, "Failed to list scans")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"scans": scans,
		"count": len(scans),
	})
}

// GetScan handles GET /api/scans/{id}
func (h *HistoryHandler) GetScan(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/scans/")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "scan id is required")
		return
	}

	scan, err := h.scans.GetScan(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, scan)
}
