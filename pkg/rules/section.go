package rules

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

// sectionMarker matches a top-level "rules:" line with no inline value.
var sectionMarker = regexp.MustCompile(`(?m)^rules:[ \t]*(?:#[^\n]*)?(?:\r?\n|\z)`)

// Section is the raw text following the "rules:" line of one source file.
type Section struct {
	// Language is the canonical language identifier.
	Language string

	// Source is the file the section was read from.
	Source string

	// Header is everything before the "rules:" line (filetype, detect, ...).
	Header string

	// Text is everything after the "rules:" line.
	Text string
}

// ExtractSection splits content at its first top-level "rules:" line.
// It returns an error wrapping ErrSectionNotFound when there is none.
func ExtractSection(language, source, content string) (Section, error) {
	loc := sectionMarker.FindStringIndex(content)
	if loc == nil {
		return Section{}, fmt.Errorf("%s: %w", sourceName(language, source), ErrSectionNotFound)
	}

	return Section{
		Language: language,
		Source:   source,
		Header:   content[:loc[0]],
		Text:     content[loc[1]:],
	}, nil
}

// Filetype returns the "filetype:" value declared in the header, or "" when
// the header does not declare one or cannot be parsed.
func (s Section) Filetype() string {
	var header struct {
		Filetype string `yaml:"filetype"`
	}
	if err := yaml.Unmarshal([]byte(s.Header), &header); err != nil {
		return ""
	}
	return header.Filetype
}

func sourceName(language, source string) string {
	if source != "" {
		return source
	}
	return language
}
