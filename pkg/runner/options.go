// Package runner discovers syntax files, loads their rules sections and
// merges them into one generated syntax file.
package runner

import (
	"github.com/yaklabco/mdfence/pkg/config"
	"github.com/yaklabco/mdfence/pkg/document"
	"github.com/yaklabco/mdfence/pkg/langid"
)

// Options controls a merge run.
type Options struct {
	// Paths are the files or directories holding syntax files.
	// If empty, defaults to config.DefaultSourceDir.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered syntax files. Defaults to DefaultExtensions().
	Extensions []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs bounds the number of languages processed concurrently.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Strategy selects structural or text assembly. Empty means structural.
	Strategy config.Strategy

	// Aliases canonicalize language identifiers. Nil means langid.DefaultAliases().
	Aliases []langid.Alias

	// Header is written at the top of the generated file.
	Header document.Header
}

// OptionsFromConfig builds Options from a resolved configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return Options{
		Paths:        cfg.Sources,
		ExcludeGlobs: cfg.Exclude,
		Jobs:         cfg.Jobs,
		Strategy:     cfg.Strategy,
		Aliases:      cfg.LanguageAliases(),
		Header:       cfg.Header(),
	}
}

// DefaultExtensions returns the extensions of micro syntax files.
func DefaultExtensions() []string {
	return []string{".yaml", ".yml"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{config.DefaultSourceDir}
	}
	return o.Paths
}

func (o Options) effectiveAliases() []langid.Alias {
	if o.Aliases == nil {
		return langid.DefaultAliases()
	}
	return o.Aliases
}
