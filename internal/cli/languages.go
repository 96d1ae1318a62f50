package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdfence/internal/ui/pretty"
	"github.com/yaklabco/mdfence/pkg/config"
	"github.com/yaklabco/mdfence/pkg/langid"
	"github.com/yaklabco/mdfence/pkg/rules"
	"github.com/yaklabco/mdfence/pkg/runner"
)

const formatJSON = "json"

type languagesFlags struct {
	format string
}

// languageInfo represents a language in JSON output.
type languageInfo struct {
	Language string `json:"language"`
	Name     string `json:"name"`
	Filetype string `json:"filetype,omitempty"`
	Source   string `json:"source"`
	Skipped  string `json:"skipped,omitempty"`
}

func newLanguagesCommand() *cobra.Command {
	flags := &languagesFlags{}

	cmd := &cobra.Command{
		Use:   "languages [paths...]",
		Short: "List the languages found in the syntax sources",
		Long: `List every syntax file that merge would read, with the canonical fence
language derived from its file name and the display name used in the
generated rule-set comments. Files without a rules section are listed as
skipped.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLanguages(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

func runLanguages(cmd *cobra.Command, args []string, flags *languagesFlags) error {
	if flags.format != "text" && flags.format != formatJSON {
		return fmt.Errorf("%w: unknown format %q", ErrInvalidUsage, flags.format)
	}

	var cliCfg *config.Config
	if len(args) > 0 {
		cliCfg = &config.Config{Sources: args}
	}
	sess, err := loadSession(cmd, cliCfg)
	if err != nil {
		return err
	}

	opts := runner.OptionsFromConfig(sess.cfg)
	opts.WorkingDir = sess.workDir

	files, err := runner.Discover(sess.ctx, opts)
	if err != nil {
		return err
	}
	sections, skipped, err := runner.Load(sess.ctx, files, opts.Aliases)
	if err != nil {
		return err
	}

	infos := languageInfos(sections, skipped)

	if flags.format == formatJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(infos); err != nil {
			return fmt.Errorf("encoding languages: %w", err)
		}
		return nil
	}

	return writeLanguages(cmd.OutOrStdout(), stylesFor(cmd, cmd.OutOrStdout()), infos)
}

func languageInfos(sections []rules.Section, skipped []runner.SkippedFile) []languageInfo {
	infos := make([]languageInfo, 0, len(sections)+len(skipped))
	for _, section := range sections {
		infos = append(infos, languageInfo{
			Language: section.Language,
			Name:     langid.DisplayName(section.Language),
			Filetype: section.Filetype(),
			Source:   section.Source,
		})
	}
	for _, skip := range skipped {
		reason := "unreadable"
		if skip.IsMissingSection() {
			reason = "no rules section"
		}
		infos = append(infos, languageInfo{
			Language: skip.Language,
			Name:     langid.DisplayName(skip.Language),
			Source:   skip.Path,
			Skipped:  reason,
		})
	}
	return infos
}

func writeLanguages(w io.Writer, styles *pretty.Styles, infos []languageInfo) error {
	if len(infos) == 0 {
		_, err := io.WriteString(w, styles.Dim.Render("no syntax files found")+"\n")
		return err
	}

	width := 0
	for _, info := range infos {
		width = max(width, len(info.Language))
	}

	for _, info := range infos {
		name := info.Name
		if info.Skipped != "" {
			name = styles.Dim.Render(fmt.Sprintf("%s (skipped: %s)", name, info.Skipped))
		}
		line := fmt.Sprintf("%s%s  %s  %s\n",
			styles.Language.Render(info.Language),
			strings.Repeat(" ", width-len(info.Language)),
			name,
			styles.FilePath.Render(info.Source),
		)
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}

