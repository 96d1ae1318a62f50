package configloader

import "github.com/yaklabco/mdfence/pkg/config"

// merge combines two configurations, with override taking precedence over base.
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointers: override wins when set, so false can be expressed
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Strategy != "" {
		result.Strategy = override.Strategy
	}
	if override.Filetype != "" {
		result.Filetype = override.Filetype
	}
	if override.DetectFilename != "" {
		result.DetectFilename = override.DetectFilename
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// CLI-only switches can only be turned on.
	if override.Stdout {
		result.Stdout = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}

	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	if override.Backups.Enabled != nil {
		enabled := *override.Backups.Enabled
		result.Backups.Enabled = &enabled
	}

	if override.Sources != nil {
		result.Sources = override.Sources
	}
	if override.Exclude != nil {
		result.Exclude = override.Exclude
	}
	if override.Aliases != nil {
		result.Aliases = override.Aliases
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
