package badger

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/ferret/internal/common"
	"github.com/ternarybob/ferret/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db     *BadgerDB
	rule   interfaces.RuleStorage
	scan   interfaces.ScanStorage
	logger arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:     db,
		rule:   NewRuleStorage(db, logger),
		scan:   NewScanStorage(db, logger),
		logger: logger,
	}

	logger.Info().Msg("Badger storage manager initialized")

	return manager, nil
}

// RuleStorage returns the rule storage interface
func (m *Manager) RuleStorage() interfaces.RuleStorage {
	return m.rule
}

// ScanStorage returns the scan storage interface
func (m *Manager) ScanStorage() interfaces.ScanStorage {
	return m.scan
}

// Close closes the underlying database
func (m *Manager) Close() error {
	return m.db.Close()
}
