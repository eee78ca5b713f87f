package handlers

import (
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/ferret/internal/interfaces"
	"github.com/ternarybob/ferret/internal/models"
	"github.com/ternarybob/ferret/internal/services/rules"
)

// RuleHandler manages custom site rules. Builtins are read-only and exposed
// separately.
type RuleHandler struct {
	storage interfaces.RuleStorage
	logger  arbor.ILogger
}

func NewRuleHandler(storage interfaces.RuleStorage, logger arbor.ILogger) *RuleHandler {
	return &RuleHandler{
		storage: storage,
		logger:  logger,
	}
}

// HandleRules dispatches /api/rules by method
func (h *RuleHandler) HandleRules(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listRules(w, r)
	case http.MethodPost, http.MethodPut:
		h.saveRule(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleRuleByID dispatches /api/rules/{id} by method
func (h *RuleHandler) HandleRuleByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/rules/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusBadRequest, "rule id is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getRule(w, r, id)
	case http.MethodDelete:
		h.deleteRule(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// ListBuiltins handles GET /api/rules/builtin
func (h *RuleHandler) ListBuiltins(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	builtins := rules.BuiltinRules()
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"rules": builtins,
		"count": len(builtins),
	})
}

func (h *RuleHandler) listRules(w http.ResponseWriter, r *http.Request) {
	list, err := h.storage.ListRules(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list rules")
		WriteError(w, http.StatusInternalServerError, "Failed to list rules")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"rules": list,
		"count": len(list),
	})
}

func (h *RuleHandler) saveRule(w http.ResponseWriter, r *http.Request) {
	var rule models.SiteRule
	if !DecodeBody(w, r, &rule) {
		return
	}

	if err := h.storage.SaveRule(r.Context(), &rule); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, rule)
}

func (h *RuleHandler) getRule(w http.ResponseWriter, r *http.Request, id string) {
	rule, err := h.storage.GetRule(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, rule)
}

func (h *RuleHandler) deleteRule(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.storage.DeleteRule(r.Context(), id); err != nil {
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	WriteSuccess(w, "Rule deleted")
}
