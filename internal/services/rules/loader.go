package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/ferret/internal/models"
	"gopkg.in/yaml.v3"
)

// LoadFromDir reads rule files (one rule per file, .toml or .yaml/.yml) from
// a directory. Files are applied in name order so users can prefix filenames
// to control match priority. Invalid files are logged and skipped rather than
// failing the whole load.
func LoadFromDir(dir string, logger arbor.ILogger) ([]models.SiteRule, error) {
	if dir == "" {
		return nil, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read rules directory %s: %w", dir, err)
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".toml", ".yaml", ".yml":
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	rules := []models.SiteRule{}
	for _, name := range names {
		path := filepath.Join(dir, name)
		rule, err := loadRuleFile(path)
		if err != nil {
			logger.Warn().
				Str("file", path).
				Err(err).
				Msg("Skipping invalid rule file")
			continue
		}
		rules = append(rules, rule)
	}

	if len(rules) > 0 {
		logger.Info().
			Int("count", len(rules)).
			Str("dir", dir).
			Msg("Loaded custom rules")
	}

	return rules, nil
}

func loadRuleFile(path string) (models.SiteRule, error) {
	var rule models.SiteRule

	data, err := os.ReadFile(path)
	if err != nil {
		return rule, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &rule)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &rule)
	default:
		return rule, fmt.Errorf("unsupported rule file extension: %s", path)
	}
	if err != nil {
		return rule, fmt.Errorf("failed to parse rule file: %w", err)
	}

	if err := rule.Validate(); err != nil {
		return rule, err
	}

	return rule, nil
}
