package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/ferret/internal/models"
)

type stubRuleStorage struct {
	rules map[string]models.SiteRule
}

func (s *stubRuleStorage) SaveRule(ctx context.Context, rule *models.SiteRule) error {
	if err := rule.Validate(); err != nil {
		return err
	}
	s.rules[rule.ID] = *rule
	return nil
}

func (s *stubRuleStorage) GetRule(ctx context.Context, id string) (*models.SiteRule, error) {
	rule, ok := s.rules[id]
	if !ok {
		return nil, fmt.Errorf("rule %s not found", id)
	}
	return &rule, nil
}

func (s *stubRuleStorage) ListRules(ctx context.Context) ([]models.SiteRule, error) {
	list := make([]models.SiteRule, 0, len(s.rules))
	for _, rule := range s.rules {
		list = append(list, rule)
	}
	return list, nil
}

func (s *stubRuleStorage) DeleteRule(ctx context.Context, id string) error {
	if _, ok := s.rules[id]; !ok {
		return fmt.Errorf("rule %s not found", id)
	}
	delete(s.rules, id)
	return nil
}

func newRuleFixture() (*RuleHandler, *stubRuleStorage) {
	storage := &stubRuleStorage{rules: map[string]models.SiteRule{}}
	return NewRuleHandler(storage, arbor.NewLogger()), storage
}

func TestHandleRules_SaveAndList(t *testing.T) {
	handler, storage := newRuleFixture()

	body := `{"id":"my-site","name":"My Site","enabled":true,"mode":"page","selectors":{"link":"a[href^='magnet:']"}}`
	r := httptest.NewRequest("POST", "/api/rules", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleRules(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, storage.rules, "my-site")

	r = httptest.NewRequest("GET", "/api/rules", nil)
	w = httptest.NewRecorder()
	handler.HandleRules(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Rules []models.SiteRule `json:"rules"`
		Count int               `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "my-site", resp.Rules[0].ID)
}

func TestHandleRules_InvalidRuleRejected(t *testing.T) {
	handler, storage := newRuleFixture()

	r := httptest.NewRequest("POST", "/api/rules", strings.NewReader(`{"name":"no id"}`))
	w := httptest.NewRecorder()
	handler.HandleRules(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, storage.rules)
}

func TestHandleRuleByID_GetAndDelete(t *testing.T) {
	handler, storage := newRuleFixture()
	storage.rules["my-site"] = models.SiteRule{ID: "my-site", Mode: models.RuleModePage}

	r := httptest.NewRequest("GET", "/api/rules/my-site", nil)
	w := httptest.NewRecorder()
	handler.HandleRuleByID(w, r)
	assert.Equal(t, http.StatusOK, w.Code)

	r = httptest.NewRequest("DELETE", "/api/rules/my-site", nil)
	w = httptest.NewRecorder()
	handler.HandleRuleByID(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, storage.rules)

	r = httptest.NewRequest("GET", "/api/rules/my-site", nil)
	w = httptest.NewRecorder()
	handler.HandleRuleByID(w, r)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleRuleByID_RequiresID(t *testing.T) {
	handler, _ := newRuleFixture()

	r := httptest.NewRequest("GET", "/api/rules/", nil)
	w := httptest.NewRecorder()
	handler.HandleRuleByID(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListBuiltins(t *testing.T) {
	handler, _ := newRuleFixture()

	r := httptest.NewRequest("GET", "/api/rules/builtin", nil)
	w := httptest.NewRecorder()
	handler.ListBuiltins(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Greater(t, resp.Count, 0)
}
