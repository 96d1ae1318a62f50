package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdfence/internal/configloader"
	"github.com/yaklabco/mdfence/internal/logging"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new mdfence configuration file",
		Long: `Create a commented .mdfence.yml configuration file in the current
directory with the default sources, output path, header and language
aliases.

Examples:
  mdfence init                       Create .mdfence.yml
  mdfence init --force               Overwrite an existing file
  mdfence init --output custom.yml   Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.ProjectConfigFile, "Output file path")

	return cmd
}

func runInit(flags *initFlags) error {
	logger := logging.Default()

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := configloader.WriteTemplate(absPath, flags.force); err != nil {
		return fmt.Errorf("create configuration: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'mdfence languages' to see which syntax files will be merged")

	return nil
}
