package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdfence/pkg/rules"
)

const unnormalized = `- comment:
    start: "a"
    end: "b"
- constant.string:
    start: "\""
    end: "\""
    rules:
        - constant.specialChar: "\\\\."
- include: "c"
- x:
    y:
      z: "1"
    rules:
`

func TestNormalize(t *testing.T) {
	t.Parallel()

	root := parseRoot(t, unnormalized)
	rules.Normalize(root)

	expected := []any{
		map[string]any{"comment": map[string]any{"start": "a", "end": "b", "rules": []any{}}},
		map[string]any{"constant.string": map[string]any{
			"start": `"`,
			"end":   `"`,
			"rules": []any{map[string]any{"constant.specialChar": `\\.`}},
		}},
		map[string]any{"include": "c"},
		map[string]any{"x": map[string]any{
			"y":     map[string]any{"z": "1", "rules": []any{}},
			"rules": []any{},
		}},
	}
	assert.Equal(t, expected, decode(t, root))
}

func TestNormalizeAppendsRulesLast(t *testing.T) {
	t.Parallel()

	root := parseRoot(t, "- comment:\n    start: \"a\"\n    end: \"b\"\n")
	rules.Normalize(root)

	region := root.Content[0].Content[1]
	require.Len(t, region.Content, 6)
	assert.Equal(t, "rules", region.Content[4].Value)
	assert.Equal(t, yaml.SequenceNode, region.Content[5].Kind)
	assert.Equal(t, yaml.FlowStyle, region.Content[5].Style)
	assert.Contains(t, render(t, root), "rules: []")
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		unnormalized,
		"- a: \"b\"\n",
		"a:\n  b:\n    c:\n      d: []\n",
		"[]\n",
		"scalar\n",
	}

	for _, input := range inputs {
		root := parseRoot(t, input)
		rules.Normalize(root)
		once := render(t, root)

		rules.Normalize(root)
		assert.Equal(t, once, render(t, root))
	}
}

func TestNormalizeEstablishesInvariant(t *testing.T) {
	t.Parallel()

	root := parseRoot(t, unnormalized)
	before := rules.Check(root)
	require.NotEmpty(t, before)
	assert.Equal(t, "[0].comment", before[0].Path)

	rules.Normalize(root)
	assert.Empty(t, rules.Check(root))
}

func TestCheckReportsNonListRules(t *testing.T) {
	t.Parallel()

	root := parseRoot(t, "- comment:\n    start: \"a\"\n    rules: \"oops\"\n")
	rules.Normalize(root)

	violations := rules.Check(root)
	require.Len(t, violations, 1)
	assert.Equal(t, "rules is not a list", violations[0].Reason)
	assert.Contains(t, violations[0].String(), "line 3")
}

func TestNormalizeLeavesAliases(t *testing.T) {
	t.Parallel()

	root := parseRoot(t, "- a: &shared\n    k: \"v\"\n- b: *shared\n")
	rules.Normalize(root)

	assert.Empty(t, rules.Check(root))
	assert.Equal(t, yaml.AliasNode, root.Content[1].Content[1].Kind)
}

func TestNormalizeDeepTree(t *testing.T) {
	t.Parallel()

	const depth = 5000

	leaf := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "leaf"}
	node := leaf
	for i := range depth {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "k"}
		if i%2 == 0 {
			node = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: []*yaml.Node{key, node}}
		} else {
			node = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: []*yaml.Node{node}}
		}
	}

	require.NotPanics(t, func() { rules.Normalize(node) })
	assert.Empty(t, rules.Check(node))
}

func TestNormalizeNil(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() { rules.Normalize(nil) })
	assert.Empty(t, rules.Check(nil))
}
