package rules_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// parseRoot parses text and returns the document's root node.
func parseRoot(t *testing.T, text string) *yaml.Node {
	t.Helper()

	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(text), &doc))
	require.Equal(t, yaml.DocumentNode, doc.Kind)
	require.NotEmpty(t, doc.Content)
	return doc.Content[0]
}

// decode converts a node into plain Go values for comparison.
func decode(t *testing.T, node *yaml.Node) any {
	t.Helper()

	var out any
	require.NoError(t, node.Decode(&out))
	return out
}

// render encodes a node to YAML text.
func render(t *testing.T, node *yaml.Node) string {
	t.Helper()

	out, err := yaml.Marshal(node)
	require.NoError(t, err)
	return string(out)
}
