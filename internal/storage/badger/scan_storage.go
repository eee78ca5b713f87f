package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/ferret/internal/interfaces"
	"github.com/ternarybob/ferret/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// ScanStorage implements the ScanStorage interface for Badger
type ScanStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewScanStorage creates a new ScanStorage instance
func NewScanStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ScanStorage {
	return &ScanStorage{
		db:     db,
		logger: logger,
	}
}

func (s *ScanStorage) SaveScan(ctx context.Context, scan *models.ScanResult) error {
	if scan.ID == "" {
		return fmt.Errorf("scan ID is required")
	}
	if scan.CreatedAt.IsZero() {
		scan.CreatedAt = time.Now().UTC()
	}

	if err := s.db.Store().Upsert(scan.ID, scan); err != nil {
		return fmt.Errorf("failed to save scan: %w", err)
	}
	return nil
}

func (s *ScanStorage) GetScan(ctx context.Context, id string) (*models.ScanResult, error) {
	var scan models.ScanResult
	if err := s.db.Store().Get(id, &scan); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("scan not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get scan: %w", err)
	}
	return &scan, nil
}

func (s *ScanStorage) ListScans(ctx context.Context, limit int) ([]*models.ScanResult, error) {
	query := badgerhold.Where("ID").Ne("").SortBy("CreatedAt").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}

	var scans []models.ScanResult
	if err := s.db.Store().Find(&scans, query); err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}

	result := make([]*models.ScanResult, len(scans))
	for i := range scans {
		result[i] = &scans[i]
	}
	return result, nil
}

func (s *ScanStorage) DeleteScan(ctx context.Context, id string) error {
	if err := s.db.Store().Delete(id, &models.ScanResult{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("scan not found: %s", id)
		}
		return fmt.Errorf("failed to delete scan: %w", err)
	}
	return nil
}
