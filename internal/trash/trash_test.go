package trash

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"acmm/internal/config"
	"acmm/internal/failure"
	"acmm/internal/logging"
	"acmm/internal/testsupport"
)

func TestDisposeMovesIntoTrash(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "trash")
	target := filepath.Join(base, "content", "cars", "rt_ferrari")
	testsupport.WriteFile(t, filepath.Join(target, "data.acd"), 64)

	bin := New(root, config.RemovalTrash, logging.NewNop())
	if err := bin.Dispose(context.Background(), target); err != nil {
		t.Fatalf("Dispose: %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatalf("expected origin removed, stat err=%v", err)
	}

	entries, err := bin.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Name != "rt_ferrari" || entry.Origin != target {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.SizeBytes != 64 {
		t.Fatalf("expected size 64, got %d", entry.SizeBytes)
	}
	if _, err := os.Stat(filepath.Join(entry.Path(root), "data.acd")); err != nil {
		t.Fatalf("expected payload in trash: %v", err)
	}
}

func TestDisposeDeletePolicy(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "trash")
	target := filepath.Join(base, "weather", "clear")
	testsupport.WriteFile(t, filepath.Join(target, "weather.ini"), 8)

	bin := New(root, config.RemovalDelete, logging.NewNop())
	if err := bin.Dispose(context.Background(), target); err != nil {
		t.Fatalf("Dispose: %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatal("expected target deleted")
	}
	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Fatal("delete policy should not create the trash directory")
	}
}

func TestDisposeMissingPathIsNoop(t *testing.T) {
	bin := New(t.TempDir(), config.RemovalTrash, nil)
	if err := bin.Dispose(context.Background(), filepath.Join(t.TempDir(), "gone")); err != nil {
		t.Fatalf("expected nil for missing path, got %v", err)
	}
}

func TestDisposeHonorsCancellation(t *testing.T) {
	target := filepath.Join(t.TempDir(), "file.ini")
	testsupport.WriteFile(t, target, 4)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bin := New(t.TempDir(), config.RemovalTrash, nil)
	if err := bin.Dispose(ctx, target); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatal("target should be untouched after cancellation")
	}
}

func TestListOrdersNewestFirst(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "trash")
	bin := New(root, config.RemovalTrash, nil)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bin.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	for _, name := range []string{"first", "second"} {
		path := filepath.Join(base, name)
		testsupport.WriteFile(t, path, 1)
		if _, err := bin.Move(context.Background(), path); err != nil {
			t.Fatalf("Move %s: %v", name, err)
		}
	}
	entries, err := bin.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 || entries[0].Name != "second" || entries[1].Name != "first" {
		t.Fatalf("unexpected order: %+v", entries)
	}
}

func TestRestoreAndEmpty(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "trash")
	bin := New(root, config.RemovalTrash, nil)

	keep := filepath.Join(base, "apps", "python", "helper")
	testsupport.WriteFile(t, filepath.Join(keep, "helper.py"), 10)
	drop := filepath.Join(base, "apps", "python", "other")
	testsupport.WriteFile(t, filepath.Join(drop, "other.py"), 10)

	restored, err := bin.Move(context.Background(), keep)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if _, err := bin.Move(context.Background(), drop); err != nil {
		t.Fatalf("Move: %v", err)
	}

	// Restoring onto an occupied origin is refused.
	testsupport.WriteFile(t, filepath.Join(keep, "helper.py"), 1)
	if _, err := bin.Restore(context.Background(), restored.ID); !errors.Is(err, failure.ErrUnsafeTarget) {
		t.Fatalf("expected unsafe target error, got %v", err)
	}
	if err := os.RemoveAll(keep); err != nil {
		t.Fatal(err)
	}
	if _, err := bin.Restore(context.Background(), restored.ID); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if _, err := os.Stat(filepath.Join(keep, "helper.py")); err != nil {
		t.Fatalf("expected restored payload: %v", err)
	}
	if _, err := bin.Restore(context.Background(), "missing"); !errors.Is(err, failure.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	removed, err := bin.Empty(context.Background())
	if err != nil {
		t.Fatalf("Empty: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	entries, _ := bin.List()
	if len(entries) != 0 {
		t.Fatalf("expected empty trash, got %+v", entries)
	}
}
