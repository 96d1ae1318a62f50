package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdfence/internal/logging"
	"github.com/yaklabco/mdfence/internal/ui/pretty"
	"github.com/yaklabco/mdfence/pkg/config"
	"github.com/yaklabco/mdfence/pkg/document"
	"github.com/yaklabco/mdfence/pkg/runner"
)

type mergeFlags struct {
	output         string
	strategy       string
	jobs           int
	exclude        []string
	stdout         bool
	noBackup       bool
	followSymlinks bool
	showRemoved    bool
	quiet          bool
}

func newMergeCommand() *cobra.Command {
	flags := &mergeFlags{}

	cmd := &cobra.Command{
		Use:   "merge [paths...]",
		Short: "Merge syntax files into the markdown highlighter",
		Long:  mergeLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd, args, flags)
		},
	}

	addMergeFlags(cmd, flags)

	return cmd
}

const mergeLongDescription = `Merge per-language micro syntax files into one markdown syntax file.

By default, reads every .yaml and .yml file in ./yamlfiles and writes
~/.config/micro/syntax/markdownsyntaxhighlight.yaml. The language of each
file is taken from its name, so go.yaml highlights fences tagged "go".
A file named markdown.yaml supplies the host Markdown rules.

Examples:
  mdfence merge                        # Merge ./yamlfiles
  mdfence merge syntax/ extra/lua.yaml # Merge specific sources
  mdfence merge --stdout               # Print the result instead of writing it
  mdfence merge --strategy text        # Splice repaired text, no re-parsing
  mdfence merge --show-removed         # Show blocks that were commented out`

func addMergeFlags(cmd *cobra.Command, flags *mergeFlags) {
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output syntax file (default from config)")
	cmd.Flags().StringVar(&flags.strategy, "strategy", "", "assembly strategy: structural, text")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of languages processed in parallel (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns of source files to skip")
	cmd.Flags().BoolVar(&flags.stdout, "stdout", false, "write the merged file to standard output")
	cmd.Flags().BoolVar(&flags.noBackup, "no-backup", false, "do not back up the previous output file")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow directory symlinks")
	cmd.Flags().BoolVar(&flags.showRemoved, "show-removed", false, "print the content of removed blocks")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "print only the one-line summary")
}

// cliConfig maps explicitly set flags onto a configuration layer.
func (f *mergeFlags) cliConfig(cmd *cobra.Command, args []string) *config.Config {
	cfg := &config.Config{
		Stdout:    f.stdout,
		NoBackups: f.noBackup,
	}

	if len(args) > 0 {
		cfg.Sources = args
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = f.output
	}
	if cmd.Flags().Changed("strategy") {
		cfg.Strategy = config.Strategy(f.strategy)
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs = f.jobs
	}
	if cmd.Flags().Changed("exclude") {
		cfg.Exclude = f.exclude
	}

	return cfg
}

func runMerge(cmd *cobra.Command, args []string, flags *mergeFlags) error {
	sess, err := loadSession(cmd, flags.cliConfig(cmd, args))
	if err != nil {
		return err
	}
	cfg := sess.cfg

	opts := runner.OptionsFromConfig(cfg)
	opts.WorkingDir = sess.workDir
	opts.FollowSymlinks = flags.followSymlinks

	ctx := logging.WithFields(sess.ctx, logging.FieldStrategy, opts.Strategy)
	logger := logging.FromContext(ctx)

	logger.Debug("starting merge",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
	)

	result, err := runner.New(logging.NewSink(logger)).Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	// The report goes to stderr when stdout carries the syntax file.
	reportWriter := cmd.OutOrStdout()
	if cfg.Stdout {
		reportWriter = cmd.ErrOrStderr()
		if _, err := cmd.OutOrStdout().Write(result.Content); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	} else {
		written, err := document.Write(ctx, cfg.Output, result.Content, document.WriteOptions{
			Backup: cfg.BackupConfig(),
		})
		if err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		logger.Info("syntax file updated",
			logging.FieldPath, written.Path,
			logging.FieldWritten, written.Written,
			logging.FieldBackup, written.BackedUp,
		)
	}

	logger.Debug("merge finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldLanguagesMerged, result.Stats.LanguagesMerged,
		logging.FieldBlocksQuarantined, result.Stats.BlocksQuarantined,
	)

	if err := reportMerge(reportWriter, stylesFor(cmd, reportWriter), result, flags); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrMergeFailures
	}
	return nil
}

// reportMerge prints the per-language table, removed blocks, failures and
// the summary.
func reportMerge(w io.Writer, styles *pretty.Styles, result *runner.Result, flags *mergeFlags) error {
	if flags.quiet {
		_, err := io.WriteString(w, styles.FormatSummaryOneLine(result.Stats))
		return err
	}

	table := pretty.NewTableFormatter(styles, pretty.TermWidth(w)).FormatTable(result)
	if _, err := io.WriteString(w, table); err != nil {
		return err
	}

	if result.HasQuarantined() {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		for _, outcome := range result.Outcomes {
			if outcome.Validation == nil {
				continue
			}
			for _, block := range outcome.Validation.Quarantined() {
				if _, err := io.WriteString(w, styles.FormatRemovedBlock(outcome.Language, block, flags.showRemoved)); err != nil {
					return err
				}
			}
		}
	}

	if failures := result.Failures(); len(failures) > 0 {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		for _, outcome := range failures {
			if _, err := io.WriteString(w, styles.FormatFailure(outcome)); err != nil {
				return err
			}
		}
	}

	_, err := io.WriteString(w, styles.FormatSummary(result.Stats))
	return err
}
