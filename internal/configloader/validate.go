package configloader

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/mdfence/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "aliases[0].match").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	"sidecar": true,
	"none":    true,
}

// Validate checks a configuration for errors and warnings. Empty fields are
// accepted so partial file layers can be validated before merging.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Strategy != "" && !cfg.Strategy.IsValid() {
		result.add(ValidationError{
			Field:   "strategy",
			Value:   cfg.Strategy,
			Message: fmt.Sprintf("invalid strategy %q; must be one of: structural, text", cfg.Strategy),
		})
	}

	if cfg.Jobs < 0 {
		result.add(ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.add(ValidationError{
			Field:   "backups.mode",
			Value:   cfg.Backups.Mode,
			Message: fmt.Sprintf("invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode),
		})
	}

	if cfg.LogLevel != "" {
		if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
			result.add(ValidationError{
				Field:   "log_level",
				Value:   cfg.LogLevel,
				Message: fmt.Sprintf("invalid log level %q; must be one of: debug, info, warn, error", cfg.LogLevel),
			})
		}
	}

	if cfg.DetectFilename != "" {
		if _, err := regexp.Compile(cfg.DetectFilename); err != nil {
			result.add(ValidationError{
				Field:   "detect_filename",
				Value:   cfg.DetectFilename,
				Message: fmt.Sprintf("invalid regular expression: %v", err),
			})
		}
	}

	validateAliases(cfg, result)
	validateExcludePatterns(cfg, result)

	return result
}

func (r *ValidationResult) add(e ValidationError) {
	r.Errors = append(r.Errors, e)
}

func validateAliases(cfg *config.Config, result *ValidationResult) {
	seen := make(map[string]int, len(cfg.Aliases))
	for i, alias := range cfg.Aliases {
		field := fmt.Sprintf("aliases[%d]", i)
		switch {
		case strings.TrimSpace(alias.Match) == "":
			result.add(ValidationError{Field: field + ".match", Value: alias.Match, Message: "match must not be empty"})
		case strings.TrimSpace(alias.Language) == "":
			result.add(ValidationError{Field: field + ".language", Value: alias.Language, Message: "language must not be empty"})
		}

		key := strings.ToLower(alias.Match)
		if prev, ok := seen[key]; ok {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   field,
				Value:   alias.Match,
				Message: fmt.Sprintf("duplicate alias %q shadowed by aliases[%d]", alias.Match, prev),
			})
			continue
		}
		seen[key] = i
	}
}

// validateExcludePatterns checks that exclude patterns are valid globs.
func validateExcludePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Exclude {
		// filepath.Match returns an error only for malformed patterns
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.add(ValidationError{
				Field:   fmt.Sprintf("exclude[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	return knownBackupModes[mode]
}
