package pretty

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/mdfence/pkg/langid"
	"github.com/yaklabco/mdfence/pkg/rules"
	"github.com/yaklabco/mdfence/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 6 // LANGUAGE, NAME, BLOCKS, REMOVED, STATUS, SOURCE
	minLanguageWidth = 8
	minNameWidth     = 8
	countWidth       = 7
	minStatusWidth   = 6
	minSourceWidth   = 12
	heavySeparator   = "="
	lightSeparator   = "-"
	ellipsis         = "..."
)

// Status values shown in the STATUS column.
const (
	StatusMerged  = "merged"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// TableRow represents a single language in the merge table.
type TableRow struct {
	Language string
	Name     string
	Blocks   int
	Removed  int
	Status   string
	Source   string
}

// TableFormatter formats a merge result as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// Rows converts a runner result into table rows: merged and failed
// languages in merge order, then skipped files.
func Rows(result *runner.Result) []TableRow {
	if result == nil {
		return nil
	}

	rows := make([]TableRow, 0, len(result.Outcomes)+len(result.Skipped))
	for _, outcome := range result.Outcomes {
		rows = append(rows, outcomeRow(outcome))
	}
	for _, skipped := range result.Skipped {
		rows = append(rows, TableRow{
			Language: skipped.Language,
			Name:     langid.DisplayName(skipped.Language),
			Status:   StatusSkipped,
			Source:   skipped.Path,
		})
	}
	return rows
}

func outcomeRow(outcome rules.Outcome) TableRow {
	row := TableRow{
		Language: outcome.Language,
		Name:     langid.DisplayName(outcome.Language),
		Status:   StatusMerged,
		Source:   outcome.Source,
	}
	if outcome.Validation != nil {
		row.Blocks = len(outcome.Validation.Parsed())
		row.Removed = len(outcome.Validation.Quarantined())
	}
	if !outcome.Merged() {
		row.Status = StatusFailed
	}
	return row
}

type columnWidths struct {
	language, name, status, source int
}

// FormatTable formats runner results as a styled table.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	rows := Rows(result)
	if len(rows) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	for i, row := range rows {
		if i > 0 && row.Status == StatusSkipped && rows[i-1].Status != StatusSkipped {
			builder.WriteString(t.formatSeparator(widths, lightSeparator))
			builder.WriteString("\n")
		}
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	return builder.String()
}

func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{
		language: minLanguageWidth,
		name:     minNameWidth,
		status:   minStatusWidth,
		source:   minSourceWidth,
	}

	for _, row := range rows {
		widths.language = max(widths.language, len(row.Language))
		widths.name = max(widths.name, len(row.Name))
		widths.status = max(widths.status, len(row.Status))
		widths.source = max(widths.source, len(displaySource(row.Source)))
	}

	// The source column absorbs any overflow.
	total := widths.language + widths.name + 2*countWidth + widths.status + widths.source + tablePadding*tableColumnCount
	if total > t.termWidth {
		widths.source = max(minSourceWidth, widths.source-(total-t.termWidth))
	}

	return widths
}

func (t *TableFormatter) formatHeader(w columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %*s  %*s  %-*s  %-*s",
		w.language, "LANGUAGE",
		w.name, "NAME",
		countWidth, "BLOCKS",
		countWidth, "REMOVED",
		w.status, "STATUS",
		w.source, "SOURCE",
	)
	return t.styles.TableHeader.Render(strings.TrimRight(header, " "))
}

func (t *TableFormatter) formatSeparator(w columnWidths, char string) string {
	total := w.language + w.name + 2*countWidth + w.status + w.source + tablePadding*tableColumnCount
	return t.styles.TableSeparator.Render(strings.Repeat(char, total))
}

func (t *TableFormatter) formatRow(row TableRow, w columnWidths) string {
	blocks, removed := "-", "-"
	if row.Status != StatusSkipped {
		blocks = strconv.Itoa(row.Blocks)
		removed = strconv.Itoa(row.Removed)
	}

	removedCell := fmt.Sprintf("%*s", countWidth, removed)
	if row.Removed > 0 {
		removedCell = t.styles.Warning.Render(removedCell)
	}

	line := fmt.Sprintf(" %s  %-*s  %*s  %s  %s  %s",
		pad(t.styles.Language, row.Language, w.language),
		w.name, row.Name,
		countWidth, blocks,
		removedCell,
		pad(t.statusStyle(row.Status), row.Status, w.status),
		t.styles.Dim.Render(truncate(displaySource(row.Source), w.source)),
	)
	return strings.TrimRight(line, " ")
}

func (t *TableFormatter) statusStyle(status string) lipgloss.Style {
	switch status {
	case StatusFailed:
		return t.styles.Failure
	case StatusSkipped:
		return t.styles.Dim
	default:
		return t.styles.Success
	}
}

// pad renders s with style and pads it to width outside the styled span,
// so ANSI sequences do not count towards the column width.
func pad(style lipgloss.Style, s string, width int) string {
	if len(s) < width {
		return style.Render(s) + strings.Repeat(" ", width-len(s))
	}
	return style.Render(s)
}

func displaySource(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Base(path)
}

func truncate(s string, width int) string {
	if len(s) <= width || width <= len(ellipsis) {
		return s
	}
	return s[:width-len(ellipsis)] + ellipsis
}
