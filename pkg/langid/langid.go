// Package langid maps syntax file names to the language identifiers used in
// Markdown fence info strings. It uses go-enry for display names and for
// guessing the language of untagged code.
package langid

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Markdown is the identifier of the host filetype.
const Markdown = "markdown"

// Text is returned by Detect when no language can be determined.
const Text = "text"

// Alias rewrites any identifier containing Match to Language.
type Alias struct {
	Match    string
	Language string
}

// DefaultAliases returns the built-in identifier rewrites.
func DefaultAliases() []Alias {
	return []Alias{
		{Match: "bash", Language: "sh"},
		{Match: "python3", Language: "python"},
	}
}

// FromFilename derives a raw identifier from a syntax file name such as
// "runtime/syntax/python3.yaml".
func FromFilename(name string) string {
	base := filepath.Base(name)
	for _, ext := range []string{".yaml", ".yml"} {
		if strings.HasSuffix(strings.ToLower(base), ext) {
			return base[:len(base)-len(ext)]
		}
	}
	return base
}

// Canonicalize lowercases id and applies the first alias whose Match is
// contained in it. Several raw identifiers may map to one canonical id.
func Canonicalize(id string, aliases []Alias) string {
	lang := strings.ToLower(strings.TrimSpace(id))
	for _, alias := range aliases {
		match := strings.ToLower(alias.Match)
		if match == "" {
			continue
		}
		if strings.Contains(lang, match) {
			return strings.ToLower(alias.Language)
		}
	}
	return lang
}

// DisplayName returns the human-readable language name for a canonical id,
// e.g. "Go" for "go" or "Shell" for "sh". Unknown ids are returned as-is.
func DisplayName(id string) string {
	if id == "" {
		return id
	}
	if lang, ok := enry.GetLanguageByAlias(id); ok && lang != "" {
		return lang
	}
	if lang, safe := enry.GetLanguageByExtension("file." + id); safe && lang != "" {
		return lang
	}
	return id
}

// Detect guesses the fence tag for a code snippet.
// Returns Text if detection fails or confidence is low.
func Detect(content []byte) string {
	if len(strings.TrimSpace(string(content))) == 0 {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return fenceTag(lang)
	}

	candidates := []string{
		"Go", "Python", "Shell", "JavaScript", "TypeScript",
		"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
		"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
	}
	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return fenceTag(lang)
	}

	return Text
}

// fenceTag converts go-enry language names to fence tags.
func fenceTag(lang string) string {
	if lang == "Shell" {
		return "sh"
	}
	return strings.ToLower(lang)
}
