package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdfence/internal/ui/pretty"
	"github.com/yaklabco/mdfence/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name     string
		stats    runner.Stats
		contains []string
		excludes []string
	}{
		{
			name:     "clean run",
			stats:    runner.Stats{FilesDiscovered: 3, LanguagesMerged: 3},
			contains: []string{"Merged 3 languages from 3 files"},
			excludes: []string{"removed", "failed", "skipped"},
		},
		{
			name:     "singular words",
			stats:    runner.Stats{FilesDiscovered: 1, LanguagesMerged: 1, BlocksQuarantined: 1},
			contains: []string{"Merged 1 language from 1 file", "1 block removed"},
		},
		{
			name:     "failures and skips",
			stats:    runner.Stats{FilesDiscovered: 5, FilesSkipped: 1, LanguagesMerged: 2, LanguagesFailed: 2},
			contains: []string{"1 skipped", "2 languages failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			line := styles.FormatSummaryOneLine(tt.stats)
			for _, want := range tt.contains {
				assert.Contains(t, line, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, line, unwanted)
			}
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	clean := styles.FormatSummary(runner.Stats{FilesDiscovered: 2, LanguagesMerged: 2, BlocksParsed: 9})
	assert.Contains(t, clean, "Summary")
	assert.Contains(t, clean, "Files discovered:")
	assert.Contains(t, clean, "Blocks parsed:")
	assert.Contains(t, clean, "Merge completed")
	assert.NotContains(t, clean, "Blocks removed:")
	assert.NotContains(t, clean, "Languages failed:")

	warn := styles.FormatSummary(runner.Stats{LanguagesMerged: 1, BlocksQuarantined: 2})
	assert.Contains(t, warn, "Blocks removed:")
	assert.Contains(t, warn, "Merge completed with removed blocks")

	failed := styles.FormatSummary(runner.Stats{LanguagesFailed: 1, BlocksQuarantined: 2})
	assert.Contains(t, failed, "Merge completed with excluded languages")
}
