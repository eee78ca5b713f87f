package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/ferret/internal/interfaces"
	"github.com/ternarybob/ferret/internal/models"
	"github.com/ternarybob/ferret/internal/services/aria2"
)

type PushHandler struct {
	dispatcher  *aria2.Dispatcher
	scanStorage interfaces.ScanStorage
	logger      arbor.ILogger
}

func NewPushHandler(dispatcher *aria2.Dispatcher, scanStorage interfaces.ScanStorage, logger arbor.ILogger) *PushHandler {
	return &PushHandler{
		dispatcher:  dispatcher,
		scanStorage: scanStorage,
		logger:      logger,
	}
}

// PushRequest is the body of POST /api/push. Callers either submit link
// records directly or reference a stored scan by id; LinkIDs narrows a scan
// reference to a selection (empty means every link in the scan).
type PushRequest struct {
	Links   []models.LinkRecord `json:"links,omitempty"`
	ScanID  string              `json:"scan_id,omitempty"`
	LinkIDs []string            `json:"link_ids,omitempty"`
}

// Push handles POST /api/push: submits the selected links to aria2.
// Per-link failures come back in the outcome with HTTP 200; an error status
// means the download manager was unreachable entirely.
func (h *PushHandler) Push(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req PushRequest
	if !DecodeBody(w, r, &req) {
		return
	}

	links := req.Links
	if len(links) == 0 && req.ScanID != "" {
		var err error
		links, err = h.linksFromScan(r, req)
		if err != nil {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
	}

	outcome, err := h.dispatcher.Push(r.Context(), links)
	if err != nil {
		h.logger.Warn().Err(err).Int("links", len(links)).Msg("Push failed")
		WriteError(w, http.StatusBadGateway, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, outcome)
}

// linksFromScan resolves a scan reference to its link records, optionally
// narrowed to the requested link ids
func (h *PushHandler) linksFromScan(r *http.Request, req PushRequest) ([]models.LinkRecord, error) {
	result, err := h.scanStorage.GetScan(r.Context(), req.ScanID)
	if err != nil {
		return nil, err
	}

	if len(req.LinkIDs) == 0 {
		return result.Links, nil
	}

	wanted := make(map[string]bool, len(req.LinkIDs))
	for _, id := range req.LinkIDs {
		wanted[id] = true
	}

	selected := make([]models.LinkRecord, 0, len(req.LinkIDs))
	for _, link := range result.Links {
		if wanted[link.ID] {
			selected = append(selected, link)
		}
	}
	return selected, nil
}
