package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - Scanning
	mux.HandleFunc("/api/scan", s.app.ScanHandler.ScanURL)      // POST - scan a page URL or supplied HTML
	mux.HandleFunc("/api/scan/text", s.app.ScanHandler.ScanText) // POST - scrape links from free text

	// API routes - Push
	mux.HandleFunc("/api/push", s.app.PushHandler.Push) // POST - submit links to aria2

	// API routes - Rules
	mux.HandleFunc("/api/rules/builtin", s.app.RuleHandler.ListBuiltins) // GET - builtin rules
	mux.HandleFunc("/api/rules", s.app.RuleHandler.HandleRules)          // GET (list), POST/PUT (save)
	mux.HandleFunc("/api/rules/", s.app.RuleHandler.HandleRuleByID)      // GET/DELETE /{id}

	// API routes - Scan history
	mux.HandleFunc("/api/scans", s.app.HistoryHandler.ListScans) // GET - recent scans
	mux.HandleFunc("/api/scans/", s.app.HistoryHandler.GetScan)  // GET /{id}

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)
	mux.HandleFunc("/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/health", s.app.APIHandler.HealthHandler)

	return mux
}
