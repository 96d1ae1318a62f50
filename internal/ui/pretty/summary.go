package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdfence/pkg/runner"
)

const summaryDividerWidth = 40

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "Merged 12 languages from 14 files, 2 blocks removed, 1 language failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	parts := []string{
		s.Success.Render(fmt.Sprintf("Merged %d %s", stats.LanguagesMerged, plural(stats.LanguagesMerged, "language", "languages"))) +
			s.Dim.Render(fmt.Sprintf(" from %d %s", stats.FilesDiscovered, plural(stats.FilesDiscovered, "file", "files"))),
	}

	if stats.BlocksQuarantined > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d %s removed",
			stats.BlocksQuarantined, plural(stats.BlocksQuarantined, "block", "blocks"))))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.LanguagesFailed > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s failed",
			stats.LanguagesFailed, plural(stats.LanguagesFailed, "language", "languages"))))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row := func(label string, value int, style func(...string) string) {
		builder.WriteString(fmt.Sprintf("  %-20s%s\n", label+":", style(strconv.Itoa(value))))
	}

	row("Files discovered", stats.FilesDiscovered, s.SummaryValue.Render)
	if stats.FilesSkipped > 0 {
		row("Files skipped", stats.FilesSkipped, s.Dim.Render)
	}
	row("Languages merged", stats.LanguagesMerged, s.Success.Render)
	if stats.LanguagesFailed > 0 {
		row("Languages failed", stats.LanguagesFailed, s.Failure.Render)
	}

	builder.WriteString("\n")
	row("Blocks parsed", stats.BlocksParsed, s.SummaryValue.Render)
	if stats.BlocksQuarantined > 0 {
		row("Blocks removed", stats.BlocksQuarantined, s.Warning.Render)
	}

	builder.WriteString("\n")

	switch {
	case stats.LanguagesFailed > 0:
		builder.WriteString(s.Failure.Render("Merge completed with excluded languages"))
	case stats.BlocksQuarantined > 0:
		builder.WriteString(s.Warning.Render("Merge completed with removed blocks"))
	default:
		builder.WriteString(s.Success.Render("Merge completed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
