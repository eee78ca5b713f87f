package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/ferret/internal/services/scanner"
)

type ScanHandler struct {
	scanner *scanner.Service
	logger  arbor.ILogger
}

func NewScanHandler(scanService *scanner.Service, logger arbor.ILogger) *ScanHandler {
	return &ScanHandler{
		scanner: scanService,
		logger:  logger,
	}
}

// ScanRequest is the body of POST /api/scan. Exactly one of URL or HTML must
// be set; HTML scans still need a page URL for rule matching and relative
// href resolution.
type ScanRequest struct {
	URL         string   `json:"url"`
	HTML        string   `json:"html,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	AnyKeywords bool     `json:"any_keywords,omitempty"`
	Render      bool     `json:"render,omitempty"`
}

// ScanURL handles POST /api/scan
func (h *ScanHandler) ScanURL(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req ScanRequest
	if !DecodeBody(w, r, &req) {
		return
	}
	if req.URL == "" {
		WriteError(w, http.StatusBadRequest, "url is required")
		return
	}

	opts := scanner.ScanOptions{
		Keywords:    req.Keywords,
		AnyKeywords: req.AnyKeywords,
		Render:      req.Render,
	}

	result, err := h.scanResult(r, req, opts)
	if err != nil {
		h.logger.Warn().Err(err).Str("url", req.URL).Msg("Scan failed")
		WriteError(w, http.StatusBadGateway, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

func (h *ScanHandler) scanResult(r *http.Request, req ScanRequest, opts scanner.ScanOptions) (interface{}, error) {
	if req.HTML != "" {
		return h.scanner.ScanDocument(r.Context(), req.HTML, req.URL, opts)
	}
	return h.scanner.ScanURL(r.Context(), req.URL, opts)
}

// TextScanRequest is the body of POST /api/scan/text
type TextScanRequest struct {
	Text        string   `json:"text"`
	Keywords    []string `json:"keywords,omitempty"`
	AnyKeywords bool     `json:"any_keywords,omitempty"`
}

// ScanText handles POST /api/scan/text: scrapes links out of free-form text
func (h *ScanHandler) ScanText(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req TextScanRequest
	if !DecodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		WriteError(w, http.StatusBadRequest, "text is required")
		return
	}

	links := h.scanner.ScanText(req.Text, scanner.ScanOptions{
		Keywords:    req.Keywords,
		AnyKeywords: req.AnyKeywords,
	})

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"links": links,
		"count": len(links),
	})
}

// parseLimit reads a "limit" query parameter, defaulting when absent
func parseLimit(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}
