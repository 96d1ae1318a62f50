package rules

import (
	"errors"
	"fmt"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrSectionNotFound indicates a source file has no top-level "rules:" line.
	ErrSectionNotFound = errors.New("rules section not found")

	// ErrBlockParse indicates a single rule block could not be parsed.
	ErrBlockParse = errors.New("invalid rule block")

	// ErrNotSequence indicates a block parsed to something other than a list.
	ErrNotSequence = errors.New("block is not a list item")

	// ErrMultipleDocuments indicates a block contains a "---" document separator.
	ErrMultipleDocuments = errors.New("block contains more than one document")

	// ErrDuplicateKey indicates a mapping defines the same key twice.
	ErrDuplicateKey = errors.New("duplicate mapping key")

	// ErrInvariant indicates a normalized tree still breaks the rules invariant.
	ErrInvariant = errors.New("rule tree invariant violated")
)

// BlockParseError describes one quarantined block.
type BlockParseError struct {
	// Language is the canonical language identifier.
	Language string

	// Line is the 1-based line of the block within its rules section.
	Line int

	// Err is the underlying parser error.
	Err error
}

// Error implements the error interface.
func (e *BlockParseError) Error() string {
	return fmt.Sprintf("%s: block at line %d: %v", e.Language, e.Line, e.Err)
}

// Unwrap returns the underlying parser error.
func (e *BlockParseError) Unwrap() error {
	return e.Err
}

// Is reports ErrBlockParse as a match.
func (e *BlockParseError) Is(target error) bool {
	return target == ErrBlockParse
}

// LanguageError is returned when a whole language has to be excluded from
// the merged document.
type LanguageError struct {
	// Language is the canonical language identifier.
	Language string

	// Source is the file the language was read from.
	Source string

	// Err is the cause.
	Err error
}

// Error implements the error interface.
func (e *LanguageError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("language %s (%s): %v", e.Language, e.Source, e.Err)
	}
	return fmt.Sprintf("language %s: %v", e.Language, e.Err)
}

// Unwrap returns the cause.
func (e *LanguageError) Unwrap() error {
	return e.Err
}
