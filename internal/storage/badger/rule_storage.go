package badger

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/ferret/internal/interfaces"
	"github.com/ternarybob/ferret/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// RuleStorage implements the RuleStorage interface for Badger
type RuleStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewRuleStorage creates a new RuleStorage instance
func NewRuleStorage(db *BadgerDB, logger arbor.ILogger) interfaces.RuleStorage {
	return &RuleStorage{
		db:     db,
		logger: logger,
	}
}

func (s *RuleStorage) SaveRule(ctx context.Context, rule *models.SiteRule) error {
	if err := rule.Validate(); err != nil {
		return err
	}

	if err := s.db.Store().Upsert(rule.ID, rule); err != nil {
		return fmt.Errorf("failed to save rule: %w", err)
	}

	s.logger.Debug().Str("rule_id", rule.ID).Msg("Rule saved")
	return nil
}

func (s *RuleStorage) GetRule(ctx context.Context, id string) (*models.SiteRule, error) {
	var rule models.SiteRule
	if err := s.db.Store().Get(id, &rule); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("rule not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get rule: %w", err)
	}
	return &rule, nil
}

func (s *RuleStorage) ListRules(ctx context.Context) ([]models.SiteRule, error) {
	var rules []models.SiteRule
	query := badgerhold.Where("ID").Ne("").SortBy("ID")
	if err := s.db.Store().Find(&rules, query); err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}
	return rules, nil
}

func (s *RuleStorage) DeleteRule(ctx context.Context, id string) error {
	if err := s.db.Store().Delete(id, &models.SiteRule{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("rule not found: %s", id)
		}
		return fmt.Errorf("failed to delete rule: %w", err)
	}

	s.logger.Debug().Str("rule_id", id).Msg("Rule deleted")
	return nil
}
