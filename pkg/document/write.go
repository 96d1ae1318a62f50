package document

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/mdfence/pkg/fsutil"
)

// ErrEmptyPath is returned when no output path is configured.
var ErrEmptyPath = errors.New("empty output path")

// outputDirMode is the mode used when creating the output directory.
const outputDirMode = 0o755

// WriteOptions controls Write.
type WriteOptions struct {
	// Backup controls whether an existing output file is backed up first.
	Backup fsutil.BackupConfig
}

// WriteResult describes what Write did.
type WriteResult struct {
	// Path is the resolved output path.
	Path string

	// Written is false when the file already had identical content.
	Written bool

	// BackedUp is true when a backup of the previous file was created.
	BackedUp bool
}

// Write stores content at path atomically, creating parent directories and
// backing up an existing file when configured. A leading "~" is expanded.
func Write(ctx context.Context, path string, content []byte, opts WriteOptions) (*WriteResult, error) {
	resolved, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(resolved), outputDirMode); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	result := &WriteResult{Path: resolved}

	existing, readErr := os.ReadFile(resolved)
	if readErr == nil && string(existing) == string(content) {
		return result, nil
	}

	if readErr == nil {
		backedUp, err := fsutil.CreateBackup(ctx, resolved, opts.Backup)
		if err != nil {
			return nil, err
		}
		result.BackedUp = backedUp
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, resolved, content, 0)
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", resolved, err)
	}
	result.Written = written

	return result, nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" {
		return "", ErrEmptyPath
	}
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
