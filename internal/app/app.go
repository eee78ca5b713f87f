package app

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/ferret/internal/common"
	"github.com/ternarybob/ferret/internal/handlers"
	"github.com/ternarybob/ferret/internal/httpclient"
	"github.com/ternarybob/ferret/internal/interfaces"
	"github.com/ternarybob/ferret/internal/services/aria2"
	"github.com/ternarybob/ferret/internal/services/rules"
	"github.com/ternarybob/ferret/internal/services/scanner"
	"github.com/ternarybob/ferret/internal/services/watch"
	"github.com/ternarybob/ferret/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Core services
	Resolver     *rules.Resolver
	ScanService  *scanner.Service
	Dispatcher   *aria2.Dispatcher
	WatchService *watch.Service

	// HTTP handlers
	APIHandler     *handlers.APIHandler
	ScanHandler    *handlers.ScanHandler
	PushHandler    *handlers.PushHandler
	RuleHandler    *handlers.RuleHandler
	HistoryHandler *handlers.HistoryHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	storageManager, err := badger.NewManager(logger, &cfg.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	app.StorageManager = storageManager

	httpClient, err := httpclient.NewCookieClient(cfg.Scanner.RequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}
	fetcher := scanner.NewHTTPFetcher(cfg.Scanner, httpClient, logger)

	var renderer interfaces.Fetcher
	if cfg.Scanner.RenderEnabled {
		renderer = scanner.NewRenderer(cfg.Scanner, logger)
	}

	app.Resolver = rules.NewResolver(logger)
	extractor := scanner.NewExtractor(logger)
	app.ScanService = scanner.NewService(
		app.Resolver,
		extractor,
		fetcher,
		renderer,
		storageManager,
		cfg.Rules.Dir,
		logger,
	)

	cfg.Aria2.Normalize()
	client := aria2.NewClient(cfg.Aria2.Endpoint,
		aria2.WithToken(cfg.Aria2.Token),
		aria2.WithDownloadDir(cfg.Aria2.Dir),
	)
	app.Dispatcher = aria2.NewDispatcher(client, logger)

	app.WatchService = watch.NewService(cfg.Watch, app.ScanService, app.Dispatcher, logger)

	app.APIHandler = handlers.NewAPIHandler()
	app.ScanHandler = handlers.NewScanHandler(app.ScanService, logger)
	app.PushHandler = handlers.NewPushHandler(app.Dispatcher, storageManager.ScanStorage(), logger)
	app.RuleHandler = handlers.NewRuleHandler(storageManager.RuleStorage(), logger)
	app.HistoryHandler = handlers.NewHistoryHandler(storageManager.ScanStorage(), logger)

	logger.Info().Msg("Application initialized")

	return app, nil
}

// Start launches background services
func (a *App) Start() error {
	return a.WatchService.Start()
}

// Close shuts down background services and storage
func (a *App) Close() error {
	a.WatchService.Stop()
	return a.StorageManager.Close()
}
