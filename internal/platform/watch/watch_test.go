package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"ghostnote/internal/platform/watch"
)

func TestDirSignalsOnWrite(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	w, err := watch.NewDir(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	changes := w.Run(ctx)

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(filepath.Join(dir, "ghostnote.db"), []byte{byte(i)}, 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatalf("expected change signal")
	}

	cancel()
	for range changes {
	}
}

func TestNewDirRejectsMissingPath(t *testing.T) {
	t.Parallel()
	if _, err := watch.NewDir(filepath.Join(t.TempDir(), "missing"), zap.NewNop()); err == nil {
		t.Fatalf("expected error for missing dir")
	}
}
