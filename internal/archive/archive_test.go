package archive

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
)

func writeZip(t *testing.T, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pack.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	zw := zip.NewWriter(f)
	for name, body := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return path
}

func TestExtract(t *testing.T) {
	archive := writeZip(t, map[string]string{
		"rt_ferrari/":               "",
		"rt_ferrari/collider.kn5":   "kn5",
		"rt_ferrari/ui/ui_car.json": `{"name":"Ferrari"}`,
		"extras\\readme.txt":        "hello",
	})
	dest := filepath.Join(t.TempDir(), "out")

	var calls []Progress
	dir, err := Extract(context.Background(), archive, dest, func(p Progress) { calls = append(calls, p) })
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if dir != dest {
		t.Fatalf("expected %s, got %s", dest, dir)
	}
	data, err := os.ReadFile(filepath.Join(dest, "rt_ferrari", "ui", "ui_car.json"))
	if err != nil || string(data) != `{"name":"Ferrari"}` {
		t.Fatalf("unexpected ui_car.json: %q, %v", data, err)
	}
	if _, err := os.Stat(filepath.Join(dest, "extras", "readme.txt")); err != nil {
		t.Fatalf("backslash entry should become a nested path: %v", err)
	}
	if len(calls) != 4 || calls[3].Done != 4 || calls[3].Total != 4 {
		t.Fatalf("unexpected progress calls: %+v", calls)
	}
}

func TestExtractRejectsTraversal(t *testing.T) {
	archive := writeZip(t, map[string]string{"../evil.txt": "x"})
	base := t.TempDir()
	if _, err := Extract(context.Background(), archive, filepath.Join(base, "out"), nil); err == nil {
		t.Fatal("expected traversal entry to be rejected")
	}
	if _, err := os.Stat(filepath.Join(base, "evil.txt")); !os.IsNotExist(err) {
		t.Fatal("traversal entry must not be written")
	}
}

func TestExtractCanceled(t *testing.T) {
	archive := writeZip(t, map[string]string{"a.txt": "a"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Extract(ctx, archive, t.TempDir(), nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}

func TestExtractUnsupported(t *testing.T) {
	if _, err := Extract(context.Background(), "pack.rar", t.TempDir(), nil); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected unsupported format, got %v", err)
	}
	if !Supported("Pack.ZIP") {
		t.Fatal("expected .ZIP to be supported")
	}
}
