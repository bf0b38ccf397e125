package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes size bytes to path, creating parents. The content cycles
// through the bytes of the file's base name so files of equal size still
// differ. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()
	if size <= 0 {
		size = 1
	}
	MkdirAll(t, filepath.Dir(path))

	seed := []byte(filepath.Base(path))
	data := make([]byte, size)
	for i := range data {
		data[i] = seed[i%len(seed)]
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
