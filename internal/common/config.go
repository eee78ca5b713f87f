package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string        `toml:"environment"` // "development" or "production"
	Server      ServerConfig  `toml:"server"`
	Aria2       Aria2Config   `toml:"aria2"`
	Scanner     ScannerConfig `toml:"scanner"`
	Rules       RulesConfig   `toml:"rules"`
	Watch       WatchConfig   `toml:"watch"`
	Storage     StorageConfig `toml:"storage"`
	Logging     LoggingConfig `toml:"logging"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// Aria2Config describes the JSON-RPC endpoint links are pushed to.
type Aria2Config struct {
	Endpoint string `toml:"endpoint"` // aria2 JSON-RPC endpoint URL
	Token    string `toml:"token"`    // RPC secret, sent as leading "token:<value>" parameter
	Dir      string `toml:"dir"`      // download directory passed with each addUri call
}

// ScannerConfig contains page fetching and extraction configuration
type ScannerConfig struct {
	UserAgent      string        `toml:"user_agent"`       // User agent for page fetches
	RequestTimeout time.Duration `toml:"request_timeout"`  // HTTP request timeout
	MaxBodySize    int           `toml:"max_body_size"`    // Maximum response body size in bytes
	FollowRate     float64       `toml:"follow_rate"`      // Per-host requests/second during follow crawls (0 = unlimited)
	RenderEnabled  bool          `toml:"render_enabled"`   // Allow rules to request chromedp rendering
	RenderWaitTime time.Duration `toml:"render_wait_time"` // Time to wait for JavaScript to settle
	RenderHeadless bool          `toml:"render_headless"`  // Run the rendering browser headless
}

// RulesConfig contains configuration for custom rule loading
type RulesConfig struct {
	Dir string `toml:"dir"` // Directory containing rule files (TOML/YAML)
}

// WatchConfig contains the scheduled re-scan configuration
type WatchConfig struct {
	Enabled  bool        `toml:"enabled"`
	Schedule string      `toml:"schedule"` // Cron schedule for re-scans
	Pages    []WatchPage `toml:"pages"`
}

// WatchPage is one watched page
type WatchPage struct {
	URL  string `toml:"url"`
	Push bool   `toml:"push"` // Push newly discovered links to aria2
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// DefaultAria2Endpoint is the conventional local aria2 RPC address.
const DefaultAria2Endpoint = "http://127.0.0.1:6800/jsonrpc"

// NewDefaultConfig returns the configuration defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8085,
			Host: "localhost",
		},
		Aria2: Aria2Config{
			Endpoint: DefaultAria2Endpoint,
		},
		Scanner: ScannerConfig{
			UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			RequestTimeout: 30 * time.Second,
			MaxBodySize:    10 * 1024 * 1024,
			FollowRate:     4,
			RenderEnabled:  false,
			RenderWaitTime: 3 * time.Second,
			RenderHeadless: true,
		},
		Rules: RulesConfig{
			Dir: "./rules",
		},
		Watch: WatchConfig{
			Enabled:  false,
			Schedule: "@every 30m",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path:           "./data/ferret.db",
				ResetOnStartup: false,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
	}
}

// LoadFromFile loads configuration with priority: default -> file -> env
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files, later files overriding
// earlier ones. Priority: CLI flags > environment > last file > ... > defaults.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FERRET_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	if port := os.Getenv("FERRET_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("FERRET_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	if endpoint := os.Getenv("FERRET_ARIA2_ENDPOINT"); endpoint != "" {
		config.Aria2.Endpoint = endpoint
	}
	if token := os.Getenv("FERRET_ARIA2_TOKEN"); token != "" {
		config.Aria2.Token = token
	}
	if dir := os.Getenv("FERRET_ARIA2_DIR"); dir != "" {
		config.Aria2.Dir = dir
	}

	if rulesDir := os.Getenv("FERRET_RULES_DIR"); rulesDir != "" {
		config.Rules.Dir = rulesDir
	}

	if badgerPath := os.Getenv("FERRET_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	if level := os.Getenv("FERRET_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("FERRET_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Normalize fills empty Aria2 fields with defaults and trims whitespace
func (c *Aria2Config) Normalize() {
	c.Endpoint = strings.TrimSpace(c.Endpoint)
	if c.Endpoint == "" {
		c.Endpoint = DefaultAria2Endpoint
	}
	c.Token = strings.TrimSpace(c.Token)
	c.Dir = strings.TrimSpace(c.Dir)
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
