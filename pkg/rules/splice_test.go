package rules_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdfence/pkg/repair"
	"github.com/yaklabco/mdfence/pkg/rules"
)

func TestSpliceText(t *testing.T) {
	t.Parallel()

	got := rules.SpliceText("go", "- type: \"int\"\n", repair.Heuristic{})
	expected := "# ----- Syntaxrules for go ----- #\n" +
		"- comment:\n" +
		"    start: (?i)^```go$\n" +
		"    end: ^```\n" +
		"    rules:\n" +
		"    - type: \"int\"\n"
	assert.Equal(t, expected, got)
}

func TestMergeTextProducesParseableYAML(t *testing.T) {
	t.Parallel()

	inputs := []rules.Input{
		{Language: "markdown", Text: "    - special: \"^#\"\n"},
		{Language: "go", Text: fiveBlocks},
		{Language: "c", Text: "  - type: \"int\"\n  - comment:\n      start: \"/\\\\*\"\n      end: \"\\\\*/\"\n"},
	}

	body, outcomes, err := rules.MergeText(context.Background(), inputs, rules.MergeTextOptions{})
	require.NoError(t, err)
	require.Len(t, outcomes, 3)
	assert.Len(t, outcomes[1].Validation.Quarantined(), 1)

	assert.Less(t, strings.Index(body, "Syntaxrules for go"), strings.Index(body, "Syntaxrules for c"))
	assert.Greater(t, strings.Index(body, "- special"), strings.Index(body, "Syntaxrules for c"))

	var parsed []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(body), &parsed))
	require.Len(t, parsed, 3)
	assert.Equal(t, "^#", parsed[2]["special"])
}

func TestMergeTextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := rules.MergeText(ctx, []rules.Input{{Language: "go"}}, rules.MergeTextOptions{})
	require.ErrorIs(t, err, context.Canceled)
}
