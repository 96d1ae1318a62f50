package pretty

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/mdfence/pkg/coverage"
	"github.com/yaklabco/mdfence/pkg/rules"
)

// FormatRemovedBlock formats one quarantined block:
//
//	go:12  removed  mapping values are not allowed in this context
//	    - statement: "a": "b"
func (s *Styles) FormatRemovedBlock(language string, block rules.QuarantinedBlock, showContext bool) string {
	var builder strings.Builder

	cause := block.Err
	var parseErr *rules.BlockParseError
	if errors.As(cause, &parseErr) {
		cause = parseErr.Err
	}

	location := s.Language.Render(language) + s.Location.Render(fmt.Sprintf(":%d", block.Block.Line))
	builder.WriteString(fmt.Sprintf("  %s  %s  %s\n",
		location,
		s.Warning.Render("removed"),
		s.Message.Render(firstLine(cause)),
	))

	if showContext {
		for _, line := range strings.Split(strings.TrimRight(block.Block.Text, "\n"), "\n") {
			builder.WriteString("      " + s.Removed.Render(line) + "\n")
		}
	}

	return builder.String()
}

// FormatFailure formats an excluded language.
func (s *Styles) FormatFailure(outcome rules.Outcome) string {
	return fmt.Sprintf("  %s  %s  %s\n",
		s.Language.Render(outcome.Language),
		s.Error.Render("failed"),
		s.Message.Render(firstLine(outcome.Err)),
	)
}

// FormatCoverage formats a fence coverage report for one Markdown file.
func (s *Styles) FormatCoverage(path string, report *coverage.Report) string {
	var builder strings.Builder

	uncovered := 0
	for _, result := range report.Results {
		if !result.Covered && result.Language != "" {
			uncovered++
		}
	}

	header := s.FilePath.Render(path)
	if uncovered > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d of %d fences not highlighted)", uncovered, len(report.Results)))
	}
	builder.WriteString(header + "\n")

	for _, result := range report.Results {
		location := s.Location.Render(fmt.Sprintf("%s:%d", path, result.Line))
		switch {
		case result.Language == "":
			guess := ""
			if result.Guess != "" {
				guess = s.Dim.Render(" (looks like " + result.Guess + ")")
			}
			builder.WriteString(fmt.Sprintf("  %s  %s  untagged fence%s\n", location, s.Info.Render("info"), guess))
		case result.Covered:
			builder.WriteString(fmt.Sprintf("  %s  %s  %s\n", location, s.Success.Render("ok"), s.Language.Render(result.Language)))
		default:
			builder.WriteString(fmt.Sprintf("  %s  %s  no rule set for %s\n", location, s.Error.Render("missing"), s.Language.Render(result.Language)))
		}
	}

	return builder.String()
}

func firstLine(err error) string {
	if err == nil {
		return ""
	}
	msg, _, _ := strings.Cut(err.Error(), "\n")
	return msg
}
