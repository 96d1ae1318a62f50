package rules_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdfence/pkg/rules"
)

func TestSegment(t *testing.T) {
	t.Parallel()

	t.Run("one block per top-level item", func(t *testing.T) {
		t.Parallel()

		text := "- a: \"1\"\n\n# trailing\n- b:\n    rules:\n        - c: \"2\"\n- d: \"3\""
		blocks := rules.Segment(text)
		require.Len(t, blocks, 3)

		assert.Equal(t, "- a: \"1\"\n\n# trailing\n", blocks[0].Text)
		assert.Equal(t, 1, blocks[0].Line)
		assert.Equal(t, "- b:\n    rules:\n        - c: \"2\"\n", blocks[1].Text)
		assert.Equal(t, 4, blocks[1].Line)
		assert.Equal(t, "- d: \"3\"", blocks[2].Text)
		assert.Equal(t, 7, blocks[2].Line)

		for _, b := range blocks {
			assert.False(t, b.Preamble)
		}
	})

	t.Run("preamble is kept", func(t *testing.T) {
		t.Parallel()

		blocks := rules.Segment("\n# head\n    - a: \"1\"\n")
		require.Len(t, blocks, 2)
		assert.True(t, blocks[0].Preamble)
		assert.Equal(t, "\n# head\n", blocks[0].Text)
		assert.Equal(t, 3, blocks[1].Line)
	})

	t.Run("indented top level", func(t *testing.T) {
		t.Parallel()

		blocks := rules.Segment("    - a:\n        - b\n    - c\n")
		require.Len(t, blocks, 2)
		assert.Equal(t, "    - a:\n        - b\n", blocks[0].Text)
	})

	t.Run("dash without space is not an item", func(t *testing.T) {
		t.Parallel()

		blocks := rules.Segment("- a:\n    -b\n---\n-\n")
		require.Len(t, blocks, 2)
		assert.Equal(t, "- a:\n    -b\n---\n", blocks[0].Text)
		assert.Equal(t, "-\n", blocks[1].Text)
	})

	t.Run("no items is a single preamble", func(t *testing.T) {
		t.Parallel()

		blocks := rules.Segment("# only comments\n")
		require.Len(t, blocks, 1)
		assert.True(t, blocks[0].Preamble)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, rules.Segment(""))
	})
}

func TestSegmentCoverage(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"- a: \"1\"\n- b: \"2\"\n",
		"\n\n  - a\n\t\n  # c\n  - b\n",
		"preamble: x\n- a\n  - b\n- c",
		"- a\r\n- b\r\n",
		"# nothing\n\n",
	}

	for _, input := range inputs {
		var sb strings.Builder
		for _, block := range rules.Segment(input) {
			sb.WriteString(block.Text)
		}
		assert.Equal(t, input, sb.String())
	}
}
