package langid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdfence/pkg/langid"
)

func TestFromFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"yaml extension", "python3.yaml", "python3"},
		{"yml extension", "go.yml", "go"},
		{"nested path", "runtime/syntax/bash.yaml", "bash"},
		{"upper case extension", "C.YAML", "C"},
		{"no extension", "Makefile", "Makefile"},
		{"dots in name", "nginx.conf.yaml", "nginx.conf"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.expected, langid.FromFilename(testCase.input))
		})
	}
}

func TestCanonicalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		aliases  []langid.Alias
		expected string
	}{
		{"bash maps to sh", "bash", langid.DefaultAliases(), "sh"},
		{"python3 maps to python", "python3", langid.DefaultAliases(), "python"},
		{"containing bash", "bashrc", langid.DefaultAliases(), "sh"},
		{"lowercased", "Go", langid.DefaultAliases(), "go"},
		{"untouched", "rust", langid.DefaultAliases(), "rust"},
		{"no aliases", "bash", nil, "bash"},
		{"first alias wins", "zsh", []langid.Alias{{"sh", "shell"}, {"zsh", "z"}}, "shell"},
		{"empty match ignored", "go", []langid.Alias{{"", "x"}}, "go"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.expected, langid.Canonicalize(testCase.input, testCase.aliases))
		})
	}
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Go", langid.DisplayName("go"))
	assert.Equal(t, "Python", langid.DisplayName("python"))
	assert.Equal(t, "", langid.DisplayName(""))
	assert.Equal(t, "not-a-language-xyz", langid.DisplayName("not-a-language-xyz"))
}

func TestDetect(t *testing.T) {
	t.Parallel()

	assert.Equal(t, langid.Text, langid.Detect(nil))
	assert.Equal(t, langid.Text, langid.Detect([]byte("   \n")))
	assert.Equal(t, "sh", langid.Detect([]byte("#!/bin/bash\necho hello\n")))
	assert.Equal(t, "python", langid.Detect([]byte("#!/usr/bin/env python3\nprint('hi')\n")))
}
