package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// The template written by `freview init` must stay in sync with the Config
// struct and the programmatic defaults.
func TestDefaultYAMLMatchesDefaults(t *testing.T) {
	var cfg Config
	require.NoError(t, yaml.Unmarshal([]byte(DefaultYAML), &cfg))

	def := Default()
	assert.Equal(t, def.Output, cfg.Output)
	assert.Equal(t, def.ReportFile, cfg.ReportFile)
	assert.Equal(t, def.ShowSuccess, cfg.ShowSuccess)
	assert.Equal(t, def.Rules.MaxFindingsPerFile, cfg.Rules.MaxFindingsPerFile)
	assert.Equal(t, def.Rules.CheckReprMethods, cfg.Rules.CheckReprMethods)
	assert.Equal(t, def.Rules.CheckStrMethods, cfg.Rules.CheckStrMethods)
	assert.False(t, cfg.Rules.WarningAsError)
	assert.Empty(t, cfg.Rules.Skip)
}

func TestDefaultYAMLLoads(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, ConfigFileName, DefaultYAML)

	cfg, err := Load(path, "", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, `^[A-Z][a-zA-Z0-9]+$`, cfg.Rules.ClassNamePattern)
}

func TestToOptionsPatterns(t *testing.T) {
	cfg := Default()
	cfg.Rules.ClassNamePattern = `^Tbl\w+$`

	opts := cfg.ToOptions()
	assert.True(t, opts.ClassNameRegexp().MatchString("TblUser"))
	assert.False(t, opts.ClassNameRegexp().MatchString("User"))
}
