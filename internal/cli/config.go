package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdfence/internal/configloader"
	"github.com/yaklabco/mdfence/internal/logging"
	"github.com/yaklabco/mdfence/internal/ui/pretty"
	"github.com/yaklabco/mdfence/pkg/config"
)

// session is the resolved state shared by commands that read configuration.
type session struct {
	ctx     context.Context
	workDir string
	cfg     *config.Config
}

// loadSession resolves configuration for cmd, layering cliCfg on top, and
// applies the configured log level unless --debug was given.
func loadSession(cmd *cobra.Command, cliCfg *config.Config) (*session, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	cfg := loadResult.Config

	if debug, _ := cmd.Flags().GetBool(flagDebug); !debug && cfg.LogLevel != "" {
		logging.SetLevel(cfg.LogLevel)
	}

	logger := logging.Default()
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	return &session{
		ctx:     logging.WithLogger(ctx, logger),
		workDir: workDir,
		cfg:     cfg,
	}, nil
}

// stylesFor returns output styles honoring the --color flag for writer.
func stylesFor(cmd *cobra.Command, writer io.Writer) *pretty.Styles {
	colorMode, err := cmd.Flags().GetString(flagColor)
	if err != nil {
		colorMode = "auto"
	}
	return pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))
}
