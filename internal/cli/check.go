package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdfence/internal/logging"
	"github.com/yaklabco/mdfence/internal/ui/pretty"
	"github.com/yaklabco/mdfence/pkg/coverage"
	"github.com/yaklabco/mdfence/pkg/document"
	"github.com/yaklabco/mdfence/pkg/fsutil"
	"github.com/yaklabco/mdfence/pkg/rules"
)

type checkFlags struct {
	rulesFile string
}

func newCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check <markdown files...>",
		Short: "Report which code fences a merged syntax file highlights",
		Long: `Check a merged syntax file against Markdown documents.

The syntax file is first verified: every region rule must carry a "rules"
list. Then every fenced code block of the given documents is matched
against the merged file's fence patterns. Fences with a language tag but
no matching rule set are reported and make the command fail.

Examples:
  mdfence check README.md docs/guide.md
  mdfence check --rules ./markdown.yaml README.md`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("%w: requires at least one markdown file", ErrInvalidUsage)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.rulesFile, "rules", "", "merged syntax file (default: configured output)")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, flags *checkFlags) error {
	sess, err := loadSession(cmd, nil)
	if err != nil {
		return err
	}

	rulesPath := flags.rulesFile
	if rulesPath == "" {
		rulesPath = sess.cfg.Output
	}
	rulesPath, err = document.ExpandHome(rulesPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	styles := stylesFor(cmd, out)

	root, err := readSyntaxFile(sess, rulesPath)
	if err != nil {
		return err
	}

	if violations := rules.Check(ruleList(root)); len(violations) > 0 {
		if err := writeViolations(out, styles, rulesPath, violations); err != nil {
			return err
		}
		return fmt.Errorf("%s: %w", rulesPath, ErrInvalidSyntaxFile)
	}

	logger := logging.FromContext(sess.ctx)
	patterns := coverage.StartPatterns(root)
	logger.Debug("loaded syntax file", logging.FieldPath, rulesPath, "patterns", len(patterns))

	var uncovered []string
	for _, path := range args {
		content, _, err := fsutil.ReadFile(sess.ctx, path)
		if err != nil {
			return err
		}

		fences := coverage.FenceLanguages(content)
		report, err := coverage.Check(patterns, fences)
		if err != nil {
			return fmt.Errorf("%s: %w: %w", rulesPath, ErrInvalidSyntaxFile, err)
		}

		if _, err := io.WriteString(out, styles.FormatCoverage(path, report)); err != nil {
			return fmt.Errorf("report results: %w", err)
		}

		logger.Debug("checked document",
			logging.FieldPath, path,
			logging.FieldFences, len(fences),
			logging.FieldUncovered, report.Uncovered,
		)
		uncovered = append(uncovered, report.Uncovered...)
	}

	if len(uncovered) > 0 {
		return ErrUncoveredFences
	}
	return nil
}

// readSyntaxFile reads and parses a merged syntax file.
func readSyntaxFile(sess *session, path string) (*yaml.Node, error) {
	content, _, err := fsutil.ReadFile(sess.ctx, path)
	if err != nil {
		return nil, err
	}

	var root yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(content)).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return &root, nil
		}
		return nil, fmt.Errorf("%s: %w: %w", path, ErrInvalidSyntaxFile, err)
	}
	return &root, nil
}

// ruleList returns the top-level rules sequence of a syntax file.
func ruleList(root *yaml.Node) *yaml.Node {
	node := root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == rules.RulesKey {
			return node.Content[i+1]
		}
	}
	return nil
}

func writeViolations(w io.Writer, styles *pretty.Styles, path string, violations []rules.Violation) error {
	if _, err := io.WriteString(w, styles.FilePath.Render(path)+"\n"); err != nil {
		return err
	}
	for _, v := range violations {
		line := fmt.Sprintf("  %s  %s\n", styles.Error.Render("invalid"), styles.Message.Render(v.String()))
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}
