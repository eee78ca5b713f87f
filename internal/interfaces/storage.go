package interfaces

import (
	"context"

	"github.com/ternarybob/ferret/internal/models"
)

// RuleStorage persists custom site rules
type RuleStorage interface {
	SaveRule(ctx context.Context, rule *models.SiteRule) error
	GetRule(ctx context.Context, id string) (*models.SiteRule, error)
	ListRules(ctx context.Context) ([]models.SiteRule, error)
	DeleteRule(ctx context.Context, id string) error
}

// ScanStorage persists scan results
type ScanStorage interface {
	SaveScan(ctx context.Context, scan *models.ScanResult) error
	GetScan(ctx context.Context, id string) (*models.ScanResult, error)
	ListScans(ctx context.Context, limit int) ([]*models.ScanResult, error)
	DeleteScan(ctx context.Context, id string) error
}

// StorageManager provides access to all storage interfaces
type StorageManager interface {
	RuleStorage() RuleStorage
	ScanStorage() ScanStorage
	Close() error
}
