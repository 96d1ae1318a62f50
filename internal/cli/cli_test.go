package cli_test

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/yaklabco/mdfence/internal/cli"
	"github.com/yaklabco/mdfence/internal/configloader"
	"github.com/yaklabco/mdfence/pkg/fsutil"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test-version",
		Commit:  "test-commit",
		Date:    "test-date",
	}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}

	if cmd.Use != "mdfence" {
		t.Errorf("expected Use to be 'mdfence', got %q", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"merge", "check", "languages", "restore", "init", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}

		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()

	tests := map[string][]string{
		"merge": {
			"output", "strategy", "jobs", "exclude", "stdout",
			"no-backup", "follow-symlinks", "show-removed", "quiet",
		},
		"check":     {"rules"},
		"languages": {"format"},
		"restore":   {"output"},
		"init":      {"force", "output"},
	}

	cmd := cli.NewRootCommand(testInfo())

	for name, flags := range tests {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Fatalf("%s command not found: %v", name, err)
		}
		for _, flagName := range flags {
			if subCmd.Flags().Lookup(flagName) == nil {
				t.Errorf("expected flag %q to exist on %s command", flagName, name)
			}
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, flagName := range []string{"debug", "config", "color"} {
		if cmd.PersistentFlags().Lookup(flagName) == nil {
			t.Errorf("expected global flag %q to exist", flagName)
		}
	}
}

func TestExitCodeFromError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"merge failures", cli.ErrMergeFailures, cli.ExitMergeFailures},
		{"uncovered", fmt.Errorf("check: %w", cli.ErrUncoveredFences), cli.ExitUncovered},
		{"invalid syntax file", cli.ErrInvalidSyntaxFile, cli.ExitUncovered},
		{"validation", &configloader.ValidationError{Field: "jobs", Message: "must be >= 0"}, cli.ExitConfigError},
		{"config parse", fmt.Errorf("load: %w", configloader.ErrConfigParse), cli.ExitConfigError},
		{"not found", fmt.Errorf("%w: x", fsutil.ErrNotFound), cli.ExitIOError},
		{"fs not exist", fs.ErrNotExist, cli.ExitIOError},
		{"usage", cli.ErrInvalidUsage, cli.ExitInvalidUsage},
		{"other", errors.New("boom"), cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := cli.ExitCodeFromError(tt.err); got != tt.want {
				t.Errorf("ExitCodeFromError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsReported(t *testing.T) {
	t.Parallel()

	if !cli.IsReported(fmt.Errorf("wrapped: %w", cli.ErrMergeFailures)) {
		t.Error("merge failures should count as reported")
	}
	if cli.IsReported(errors.New("boom")) {
		t.Error("plain errors should not count as reported")
	}
}
