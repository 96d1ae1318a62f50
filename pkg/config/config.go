// Package config defines core configuration types for mdfence.
// These types are pure data structures; loading and merging live in
// internal/configloader.
package config

import (
	"github.com/yaklabco/mdfence/pkg/document"
	"github.com/yaklabco/mdfence/pkg/fsutil"
	"github.com/yaklabco/mdfence/pkg/langid"
)

// Strategy selects how per-language rules are assembled.
type Strategy string

const (
	// StrategyStructural parses, normalizes and re-serializes rule trees.
	StrategyStructural Strategy = "structural"

	// StrategyText splices repaired rule text without re-parsing it.
	StrategyText Strategy = "text"
)

// IsValid returns true if the strategy is known.
func (s Strategy) IsValid() bool {
	switch s {
	case StrategyStructural, StrategyText:
		return true
	default:
		return false
	}
}

// Default paths.
const (
	DefaultSourceDir = "yamlfiles"
	DefaultOutput    = "~/.config/micro/syntax/markdownsyntaxhighlight.yaml"
)

// AliasConfig rewrites language identifiers containing Match to Language.
type AliasConfig struct {
	Match    string `mapstructure:"match" yaml:"match"`
	Language string `mapstructure:"language" yaml:"language"`
}

// BackupsConfig controls backup behavior when overwriting the output file.
type BackupsConfig struct {
	// Enabled is a pointer so a config file can switch backups off.
	Enabled *bool  `mapstructure:"enabled" yaml:"enabled,omitempty"`
	Mode    string `mapstructure:"mode" yaml:"mode"` // "sidecar" or "none"
}

// Config is the root configuration structure for mdfence.
type Config struct {
	// Sources are the files or directories holding per-language syntax files.
	Sources []string `mapstructure:"sources" yaml:"sources"`

	// Output is the path of the generated syntax file.
	Output string `mapstructure:"output" yaml:"output"`

	// Strategy selects the assembly path ("structural" or "text").
	Strategy Strategy `mapstructure:"strategy" yaml:"strategy"`

	// Filetype is the filetype declared by the generated file.
	Filetype string `mapstructure:"filetype" yaml:"filetype"`

	// DetectFilename is the filename regex declared by the generated file.
	DetectFilename string `mapstructure:"detect_filename" yaml:"detect_filename"`

	// Aliases rewrite language identifiers, first match wins.
	Aliases []AliasConfig `mapstructure:"aliases" yaml:"aliases"`

	// Exclude contains glob patterns for source files to skip.
	Exclude []string `mapstructure:"exclude" yaml:"exclude"`

	// Jobs is the number of languages processed in parallel. 0 means NumCPU.
	Jobs int `mapstructure:"jobs" yaml:"jobs,omitempty"`

	// Backups configures backup behavior for the output file.
	Backups BackupsConfig `mapstructure:"backups" yaml:"backups"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	// CLI-level options (not persisted to config files).

	// Stdout writes the result to standard output instead of Output.
	Stdout bool `mapstructure:"-" yaml:"-"`

	// NoBackups disables backup creation.
	NoBackups bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Sources:        []string{DefaultSourceDir},
		Output:         DefaultOutput,
		Strategy:       StrategyStructural,
		Filetype:       document.DefaultFiletype,
		DetectFilename: document.DefaultDetectFilename,
		Aliases:        DefaultAliases(),
		Exclude:        nil,
		Jobs:           0, // 0 means use NumCPU
		Backups: BackupsConfig{
			Enabled: boolPtr(true),
			Mode:    string(fsutil.BackupModeSidecar),
		},
		LogLevel: "info",
	}
}

// DefaultAliases returns the built-in aliases in config form.
func DefaultAliases() []AliasConfig {
	defaults := langid.DefaultAliases()
	out := make([]AliasConfig, 0, len(defaults))
	for _, a := range defaults {
		out = append(out, AliasConfig{Match: a.Match, Language: a.Language})
	}
	return out
}

// LanguageAliases converts the configured aliases for langid.Canonicalize.
func (c *Config) LanguageAliases() []langid.Alias {
	if c == nil {
		return langid.DefaultAliases()
	}
	out := make([]langid.Alias, 0, len(c.Aliases))
	for _, a := range c.Aliases {
		out = append(out, langid.Alias{Match: a.Match, Language: a.Language})
	}
	return out
}

// Header returns the document header described by the configuration.
func (c *Config) Header() document.Header {
	return document.Header{
		Filetype:       c.Filetype,
		DetectFilename: c.DetectFilename,
	}
}

// BackupConfig returns the effective backup settings.
func (c *Config) BackupConfig() fsutil.BackupConfig {
	if c.NoBackups || !c.Backups.IsEnabled() || c.Backups.Mode == string(fsutil.BackupModeNone) {
		return fsutil.BackupConfig{Enabled: false, Mode: fsutil.BackupModeNone}
	}
	return fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupMode(c.Backups.Mode)}
}

// IsEnabled reports whether backups are on. Unset means on.
func (b BackupsConfig) IsEnabled() bool {
	return b.Enabled == nil || *b.Enabled
}

func boolPtr(b bool) *bool {
	return &b
}
