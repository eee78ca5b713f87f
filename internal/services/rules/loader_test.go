package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/ferret/internal/models"
)

func writeRuleFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

const tomlRule = `
id = "my-tracker"
name = "My Tracker"
enabled = true
mode = "row"

[match]
host_suffix = ["tracker.example.org"]

[selectors]
row = "table tbody tr"
link = "a[href^=\"magnet:\"]"
title = "td.name a"
`

const yamlRule = `
id: another-tracker
name: Another Tracker
enabled: true
mode: page
match:
  host_suffix:
    - another.example.org
selectors:
  link: a[href$=".torrent"]
  title: h1
`

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	writeRuleFile(t, dir, "10-mine.toml", tomlRule)
	writeRuleFile(t, dir, "20-other.yaml", yamlRule)

	rules, err := LoadFromDir(dir, arbor.NewLogger())
	require.NoError(t, err)
	require.Len(t, rules, 2)

	// Name order controls priority.
	assert.Equal(t, "my-tracker", rules[0].ID)
	assert.Equal(t, models.RuleModeRow, rules[0].Mode)
	assert.Equal(t, []string{"tracker.example.org"}, rules[0].Match.HostSuffix)
	assert.Equal(t, "table tbody tr", rules[0].Selectors.Row)

	assert.Equal(t, "another-tracker", rules[1].ID)
	assert.Equal(t, models.RuleModePage, rules[1].Mode)
	assert.Equal(t, `a[href$=".torrent"]`, rules[1].Selectors.Link)
}

func TestLoadFromDir_InvalidFileSkipped(t *testing.T) {
	dir := t.TempDir()
	writeRuleFile(t, dir, "bad.toml", `id = "broken"`) // no mode, no selectors
	writeRuleFile(t, dir, "good.yaml", yamlRule)
	writeRuleFile(t, dir, "notes.txt", "not a rule file")

	rules, err := LoadFromDir(dir, arbor.NewLogger())
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "another-tracker", rules[0].ID)
}

func TestLoadFromDir_MissingDir(t *testing.T) {
	rules, err := LoadFromDir(filepath.Join(t.TempDir(), "absent"), arbor.NewLogger())
	assert.NoError(t, err)
	assert.Empty(t, rules)
}

func TestLoadFromDir_EmptyPath(t *testing.T) {
	rules, err := LoadFromDir("", arbor.NewLogger())
	assert.NoError(t, err)
	assert.Empty(t, rules)
}
