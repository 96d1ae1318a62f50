// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Configuration fields.
	FieldStrategy = "strategy"
	FieldJobs     = "jobs"

	// Merge fields.
	FieldLanguage = "language"
	FieldFiletype = "filetype"
	FieldSource   = "source"
	FieldLine     = "line"
	FieldBlock    = "block"
	FieldBackup   = "backup"
	FieldWritten  = "written"

	// Statistics fields.
	FieldFilesDiscovered   = "files_discovered"
	FieldFilesSkipped      = "files_skipped"
	FieldLanguagesMerged   = "languages_merged"
	FieldLanguagesFailed   = "languages_failed"
	FieldBlocksParsed      = "blocks_parsed"
	FieldBlocksQuarantined = "blocks_quarantined"

	// Coverage fields.
	FieldFences    = "fences"
	FieldUncovered = "uncovered"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
