package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/mdfence/pkg/fsutil"
)

func TestBackupPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mode fsutil.BackupMode
		want string
	}{
		{name: "sidecar mode", mode: fsutil.BackupModeSidecar, want: "/syntax/md.yaml.mdfence.bak"},
		{name: "none mode returns empty", mode: fsutil.BackupModeNone, want: ""},
		{name: "unknown mode defaults to sidecar", mode: "unknown", want: "/syntax/md.yaml.mdfence.bak"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fsutil.BackupPath("/syntax/md.yaml", tt.mode); got != tt.want {
				t.Errorf("BackupPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	cfg := fsutil.DefaultBackupConfig()

	t.Run("missing original is not an error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.yaml")
		created, err := fsutil.CreateBackup(context.Background(), path, cfg)
		if err != nil {
			t.Fatalf("CreateBackup() error = %v", err)
		}
		if created {
			t.Error("expected no backup for missing file")
		}
	})

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.yaml")
		writeFile(t, path, "v1")

		created, err := fsutil.CreateBackup(context.Background(), path, fsutil.BackupConfig{Mode: fsutil.BackupModeSidecar})
		if err != nil {
			t.Fatalf("CreateBackup() error = %v", err)
		}
		if created || fsutil.BackupExists(path, fsutil.BackupModeSidecar) {
			t.Error("expected no backup when disabled")
		}
	})

	t.Run("backup follows the previous generation", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "out.yaml")
		backupPath := fsutil.BackupPath(path, cfg.Mode)

		writeFile(t, path, "v1")
		mustBackup(t, ctx, path, cfg, true)
		assertContent(t, backupPath, "v1")

		// Same content again is a no-op.
		mustBackup(t, ctx, path, cfg, false)

		writeFile(t, path, "v2")
		mustBackup(t, ctx, path, cfg, true)
		assertContent(t, backupPath, "v2")
	})
}

func TestRestoreBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out.yaml")

	restored, err := fsutil.RestoreBackup(ctx, path, fsutil.BackupModeSidecar)
	if err != nil {
		t.Fatalf("RestoreBackup() error = %v", err)
	}
	if restored {
		t.Error("expected nothing to restore")
	}

	writeFile(t, path, "good")
	mustBackup(t, ctx, path, fsutil.DefaultBackupConfig(), true)
	writeFile(t, path, "bad")

	restored, err = fsutil.RestoreBackup(ctx, path, fsutil.BackupModeSidecar)
	if err != nil {
		t.Fatalf("RestoreBackup() error = %v", err)
	}
	if !restored {
		t.Error("expected restore")
	}
	assertContent(t, path, "good")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

func assertContent(t *testing.T, path, want string) {
	t.Helper()
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s) error = %v", path, err)
	}
	if string(got) != want {
		t.Errorf("%s = %q, want %q", path, got, want)
	}
}

func mustBackup(t *testing.T, ctx context.Context, path string, cfg fsutil.BackupConfig, want bool) {
	t.Helper()
	created, err := fsutil.CreateBackup(ctx, path, cfg)
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}
	if created != want {
		t.Errorf("CreateBackup() = %v, want %v", created, want)
	}
}
