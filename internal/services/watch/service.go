package watch

import (
	"context"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/ferret/internal/common"
	"github.com/ternarybob/ferret/internal/models"
	"github.com/ternarybob/ferret/internal/services/aria2"
	"github.com/ternarybob/ferret/internal/services/scanner"
)

// Service re-scans configured pages on a cron schedule and optionally pushes
// newly discovered links to aria2. Link memory is per-process: a restart
// treats every link as new on the first sweep.
type Service struct {
	config     common.WatchConfig
	scanner    *scanner.Service
	dispatcher *aria2.Dispatcher
	cron       *cron.Cron
	logger     arbor.ILogger

	mu   sync.Mutex
	seen map[string]map[string]bool // page URL -> link URL set
}

// NewService creates the watch service. dispatcher may be nil when no push
// target is configured; pages flagged for push then only log their findings.
func NewService(config common.WatchConfig, scanService *scanner.Service, dispatcher *aria2.Dispatcher, logger arbor.ILogger) *Service {
	return &Service{
		config:     config,
		scanner:    scanService,
		dispatcher: dispatcher,
		cron:       cron.New(),
		logger:     logger,
		seen:       make(map[string]map[string]bool),
	}
}

// Start registers the sweep on the configured schedule and runs one sweep
// immediately so watched pages are primed at startup
func (s *Service) Start() error {
	if !s.config.Enabled || len(s.config.Pages) == 0 {
		s.logger.Debug().Msg("Watch service disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.config.Schedule, s.sweep); err != nil {
		return err
	}
	s.cron.Start()

	s.logger.Info().
		Str("schedule", s.config.Schedule).
		Int("pages", len(s.config.Pages)).
		Msg("Watch service started")

	go s.sweep()
	return nil
}

// Stop halts the schedule. An in-flight sweep runs to completion.
func (s *Service) Stop() {
	s.cron.Stop()
	s.logger.Debug().Msg("Watch service stopped")
}

// sweep scans every watched page once
func (s *Service) sweep() {
	ctx := context.Background()

	for _, page := range s.config.Pages {
		fresh := s.scanPage(ctx, page)
		if len(fresh) == 0 {
			continue
		}

		s.logger.Info().
			Str("url", page.URL).
			Int("new_links", len(fresh)).
			Msg("Watched page has new links")

		if page.Push && s.dispatcher != nil {
			outcome, err := s.dispatcher.Push(ctx, fresh)
			if err != nil {
				s.logger.Warn().Err(err).Str("url", page.URL).Msg("Watch push failed")
				continue
			}
			s.logger.Info().
				Str("url", page.URL).
				Int("succeeded", outcome.Succeeded).
				Int("failed", len(outcome.Failed)).
				Msg("Watch push completed")
		}
	}
}

// scanPage scans one page and returns the links not seen on earlier sweeps
func (s *Service) scanPage(ctx context.Context, page common.WatchPage) []models.LinkRecord {
	result, err := s.scanner.ScanURL(ctx, page.URL, scanner.ScanOptions{})
	if err != nil {
		s.logger.Warn().Err(err).Str("url", page.URL).Msg("Watch scan failed")
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	known := s.seen[page.URL]
	if known == nil {
		known = make(map[string]bool)
		s.seen[page.URL] = known
	}

	var fresh []models.LinkRecord
	for _, link := range result.Links {
		if known[link.URL] {
			continue
		}
		known[link.URL] = true
		fresh = append(fresh, link)
	}
	return fresh
}
