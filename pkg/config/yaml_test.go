package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdfence/pkg/config"
	"github.com/yaklabco/mdfence/pkg/fsutil"
	"github.com/yaklabco/mdfence/pkg/langid"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, []string{config.DefaultSourceDir}, cfg.Sources)
	assert.Equal(t, config.DefaultOutput, cfg.Output)
	assert.Equal(t, config.StrategyStructural, cfg.Strategy)
	assert.Equal(t, "markdown", cfg.Filetype)
	assert.Equal(t, `\.(livemd|md|mkd|mkdn|markdown)$`, cfg.DetectFilename)
	assert.Equal(t, langid.DefaultAliases(), cfg.LanguageAliases())
	assert.True(t, cfg.Backups.IsEnabled())
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestStrategyIsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		strategy config.Strategy
		want     bool
	}{
		{config.StrategyStructural, true},
		{config.StrategyText, true},
		{"", false},
		{"splice", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.strategy), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.strategy.IsValid())
		})
	}
}

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies slices", func(t *testing.T) {
		t.Parallel()

		original := config.NewConfig()
		original.Exclude = []string{"*.bak"}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original, clone)

		clone.Sources[0] = "other"
		clone.Exclude[0] = "*.tmp"
		clone.Aliases[0].Language = "zsh"
		*clone.Backups.Enabled = false

		assert.Equal(t, config.DefaultSourceDir, original.Sources[0])
		assert.Equal(t, "*.bak", original.Exclude[0])
		assert.Equal(t, "sh", original.Aliases[0].Language)
		assert.True(t, original.Backups.IsEnabled())
	})
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	data := []byte(`
sources:
  - syntax
output: out.yaml
strategy: text
aliases:
  - match: zsh
    language: sh
backups:
  enabled: false
jobs: 2
`)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"syntax"}, cfg.Sources)
	assert.Equal(t, "out.yaml", cfg.Output)
	assert.Equal(t, config.StrategyText, cfg.Strategy)
	assert.Equal(t, []config.AliasConfig{{Match: "zsh", Language: "sh"}}, cfg.Aliases)
	assert.False(t, cfg.Backups.IsEnabled())
	assert.Equal(t, 2, cfg.Jobs)
	assert.Empty(t, cfg.Filetype)

	_, err = config.FromYAML([]byte("sources: [unclosed"))
	require.Error(t, err)
}

func TestToYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Stdout = true

	data, err := cfg.ToYAML()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stdout")

	back, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, cfg.Sources, back.Sources)
	assert.Equal(t, cfg.Aliases, back.Aliases)
	assert.Equal(t, cfg.DetectFilename, back.DetectFilename)
	assert.False(t, back.Stdout)
}

func TestBackupConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}, cfg.BackupConfig())

	cfg.NoBackups = true
	assert.False(t, cfg.BackupConfig().Enabled)

	cfg = config.NewConfig()
	cfg.Backups.Mode = "none"
	assert.False(t, cfg.BackupConfig().Enabled)
}

func TestTemplateParses(t *testing.T) {
	t.Parallel()

	out := config.Template(nil)
	assert.Contains(t, string(out), config.TemplateHeader)

	cfg, err := config.FromYAML(out)
	require.NoError(t, err)

	defaults := config.NewConfig()
	assert.Equal(t, defaults.Sources, cfg.Sources)
	assert.Equal(t, defaults.Output, cfg.Output)
	assert.Equal(t, defaults.Strategy, cfg.Strategy)
	assert.Equal(t, defaults.DetectFilename, cfg.DetectFilename)
	assert.Equal(t, defaults.Aliases, cfg.Aliases)
	assert.Empty(t, cfg.Exclude)
	assert.True(t, cfg.Backups.IsEnabled())
}
