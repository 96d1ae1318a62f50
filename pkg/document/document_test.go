package document_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdfence/pkg/document"
	"github.com/yaklabco/mdfence/pkg/fsutil"
	"github.com/yaklabco/mdfence/pkg/rules"
)

type syntaxFile struct {
	Filetype string `yaml:"filetype"`
	Detect   struct {
		Filename string `yaml:"filename"`
	} `yaml:"detect"`
	Rules []map[string]any `yaml:"rules"`
}

func mergedFixture(t *testing.T) *rules.MergedDocument {
	t.Helper()

	doc, _, err := rules.Merge(context.Background(), []rules.Input{
		{Language: "markdown", Text: "- special: \"^#\"\n"},
		{Language: "go", Text: "- type: \"\\\\bint\\\\b\"\n- comment:\n    start: \"//\"\n    end: \"$\"\n"},
	}, rules.MergeOptions{Jobs: 1})
	require.NoError(t, err)
	return doc
}

func TestEncode(t *testing.T) {
	t.Parallel()

	out, err := document.Encode(mergedFixture(t), document.DefaultHeader())
	require.NoError(t, err)

	text := string(out)
	assert.True(t, strings.HasPrefix(text, "filetype: markdown\n"), text)
	assert.Less(t, strings.Index(text, "detect:"), strings.Index(text, "rules:"))
	assert.Contains(t, text, "# ----- Rule set for language: go")

	var parsed syntaxFile
	require.NoError(t, yaml.Unmarshal(out, &parsed))
	assert.Equal(t, "markdown", parsed.Filetype)
	assert.Equal(t, document.DefaultDetectFilename, parsed.Detect.Filename)
	require.Len(t, parsed.Rules, 2)

	region := parsed.Rules[0]["comment"].(map[string]any)
	assert.Equal(t, "(?i)^```go$", region["start"])
	assert.Equal(t, "^```", region["end"])

	nested := region["rules"].([]any)
	require.Len(t, nested, 2)
	assert.Equal(t, []any{}, nested[1].(map[string]any)["comment"].(map[string]any)["rules"])

	assert.Equal(t, "^#", parsed.Rules[1]["special"])
}

func TestEncodeKeepsQuarantinedBlockWithItsLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		inputs []rules.Input
		// after lists text that must come before the removed block.
		after []string
		// before is text that must come after it, if any.
		before string
		items  int
	}{
		{
			name: "markdown trailing block",
			inputs: []rules.Input{
				{Language: "markdown", Text: "- preproc: \"^#\"\n- bad: : :\n"},
			},
			after: []string{"preproc"},
			items: 1,
		},
		{
			name: "wrapped trailing block before next language",
			inputs: []rules.Input{
				{Language: "go", Text: "- type: \"int\"\n- bad: : :\n"},
				{Language: "sh", Text: "- statement: \"echo\"\n"},
			},
			after:  []string{"Rule set for language: go", "type: int"},
			before: "Rule set for language: sh",
			items:  2,
		},
		{
			name: "wrapped language with every block removed",
			inputs: []rules.Input{
				{Language: "go", Text: "- bad: : :\n"},
				{Language: "sh", Text: "- statement: \"echo\"\n"},
			},
			after:  []string{"Rule set for language: go"},
			before: "Rule set for language: sh",
			items:  2,
		},
		{
			name: "markdown with every block removed",
			inputs: []rules.Input{
				{Language: "markdown", Text: "- bad: : :\n"},
				{Language: "go", Text: "- type: \"int\"\n"},
			},
			after: []string{"Rule set for language: go", "type: int"},
			items: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, outcomes, err := rules.Merge(context.Background(), tt.inputs, rules.MergeOptions{Jobs: 1})
			require.NoError(t, err)

			quarantined := 0
			for _, outcome := range outcomes {
				quarantined += len(outcome.Validation.Quarantined())
			}
			require.Equal(t, 1, quarantined)

			out, err := document.Encode(doc, document.DefaultHeader())
			require.NoError(t, err)
			text := string(out)

			at := strings.Index(text, rules.QuarantineHeader)
			require.GreaterOrEqual(t, at, 0, text)
			assert.Contains(t, text, "# - bad: : :")
			assert.Contains(t, text, rules.QuarantineFooter)

			for _, marker := range tt.after {
				pos := strings.Index(text, marker)
				require.GreaterOrEqual(t, pos, 0, "missing %q in\n%s", marker, text)
				assert.Less(t, pos, at, "%q should precede the removed block\n%s", marker, text)
			}
			if tt.before != "" {
				assert.Greater(t, strings.Index(text, tt.before), at, text)
			}

			var parsed syntaxFile
			require.NoError(t, yaml.Unmarshal(out, &parsed))
			assert.Len(t, parsed.Rules, tt.items)
		})
	}
}

func TestEncodeEmpty(t *testing.T) {
	t.Parallel()

	out, err := document.Encode(nil, document.Header{Filetype: "md"})
	require.NoError(t, err)

	var parsed syntaxFile
	require.NoError(t, yaml.Unmarshal(out, &parsed))
	assert.Equal(t, "md", parsed.Filetype)
	assert.Equal(t, document.DefaultDetectFilename, parsed.Detect.Filename)
	assert.Empty(t, parsed.Rules)
}

func TestEncodeText(t *testing.T) {
	t.Parallel()

	body := rules.SpliceText("go", "- type: \"int\"\n", nil)
	out := document.EncodeText(document.DefaultHeader(), body)

	var parsed syntaxFile
	require.NoError(t, yaml.Unmarshal(out, &parsed))
	assert.Equal(t, "markdown", parsed.Filetype)
	assert.Equal(t, document.DefaultDetectFilename, parsed.Detect.Filename)
	require.Len(t, parsed.Rules, 1)

	assert.Equal(t, "filetype: markdown\ndetect:\n    filename: \\.(livemd|md|mkd|mkdn|markdown)$\nrules:\n",
		string(document.EncodeText(document.Header{}, "")))
}

func TestWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "markdownsyntaxhighlight.yaml")
	opts := document.WriteOptions{Backup: fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}}

	result, err := document.Write(ctx, path, []byte("a: 1\n"), opts)
	require.NoError(t, err)
	assert.True(t, result.Written)
	assert.False(t, result.BackedUp)
	assert.Equal(t, path, result.Path)

	result, err = document.Write(ctx, path, []byte("a: 1\n"), opts)
	require.NoError(t, err)
	assert.False(t, result.Written)

	result, err = document.Write(ctx, path, []byte("a: 2\n"), opts)
	require.NoError(t, err)
	assert.True(t, result.Written)
	assert.True(t, result.BackedUp)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a: 2\n", string(content))

	backup, err := os.ReadFile(fsutil.BackupPath(path, fsutil.BackupModeSidecar))
	require.NoError(t, err)
	assert.Equal(t, "a: 1\n", string(backup))
}

func TestWriteEmptyPath(t *testing.T) {
	t.Parallel()

	_, err := document.Write(context.Background(), "", nil, document.WriteOptions{})
	require.ErrorIs(t, err, document.ErrEmptyPath)
}

func TestExpandHome(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := document.ExpandHome("~/.config/micro/syntax/x.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config/micro/syntax/x.yaml"), got)

	got, err = document.ExpandHome("/abs/x.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/abs/x.yaml", got)

	got, err = document.ExpandHome("~user/x")
	require.NoError(t, err)
	assert.Equal(t, "~user/x", got)
}
