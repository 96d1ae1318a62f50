package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdfence/internal/logging"
	"github.com/yaklabco/mdfence/pkg/config"
	"github.com/yaklabco/mdfence/pkg/document"
	"github.com/yaklabco/mdfence/pkg/fsutil"
)

// ErrNoBackup is returned by restore when the output has no backup.
var ErrNoBackup = errors.New("no backup found")

func newRestoreCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore the previous syntax file from its backup",
		Long: `Replace the generated syntax file with the backup that merge kept of
the previous version. The backup itself is left in place.

Examples:
  mdfence restore
  mdfence restore --output ./markdown.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cliCfg *config.Config
			if cmd.Flags().Changed("output") {
				cliCfg = &config.Config{Output: output}
			}
			return runRestore(cmd, cliCfg)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "syntax file to restore (default from config)")

	return cmd
}

func runRestore(cmd *cobra.Command, cliCfg *config.Config) error {
	sess, err := loadSession(cmd, cliCfg)
	if err != nil {
		return err
	}

	path, err := document.ExpandHome(sess.cfg.Output)
	if err != nil {
		return err
	}

	// A backup may exist even when backups are now disabled.
	restored, err := fsutil.RestoreBackup(sess.ctx, path, fsutil.BackupModeSidecar)
	if err != nil {
		return err
	}
	if !restored {
		return fmt.Errorf("%s: %w", path, ErrNoBackup)
	}

	logging.FromContext(sess.ctx).Info("restored syntax file",
		logging.FieldPath, path,
		logging.FieldBackup, fsutil.BackupPath(path, fsutil.BackupModeSidecar),
	)
	return nil
}
