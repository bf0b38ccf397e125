package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"acmm/internal/config"
	"acmm/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	result := CheckDirectoryAccess("test", t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckDirectoryAccess("test", f); result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckGameLayout(t *testing.T) {
	root := testsupport.NewGameRoot(t)
	for _, r := range CheckGameLayout(root) {
		if !r.Passed {
			t.Fatalf("%s failed: %s", r.Name, r.Detail)
		}
	}

	if err := os.RemoveAll(filepath.Join(root, "apps", "lua")); err != nil {
		t.Fatal(err)
	}
	var failed []string
	for _, r := range CheckGameLayout(root) {
		if !r.Passed {
			failed = append(failed, r.Name)
		}
	}
	if len(failed) != 1 || !strings.Contains(failed[0], "apps/lua") {
		t.Fatalf("expected only apps/lua to fail, got %v", failed)
	}
}

func TestFreeSpaceChecks(t *testing.T) {
	dir := t.TempDir()
	if _, err := FreeBytes(dir); err != nil {
		t.Skipf("free space unavailable: %v", err)
	}
	if r := CheckFreeSpace("vol", dir, 0); !r.Passed {
		t.Fatalf("expected pass without requirement: %s", r.Detail)
	}
	huge := int64(1) << 62
	if r := CheckFreeSpace("vol", dir, huge); r.Passed {
		t.Fatal("expected failure for an impossible requirement")
	}
	if err := EnsureFreeSpace(dir, huge); err == nil {
		t.Fatal("expected EnsureFreeSpace to fail")
	}
	if err := EnsureFreeSpace(dir, 1); err != nil {
		t.Fatalf("EnsureFreeSpace(1): %v", err)
	}
}

func TestCheckCSPEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/down/" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if r := CheckCSPEndpoint(context.Background(), srv.URL+"/patch/"); !r.Passed {
		t.Fatalf("expected pass, got %s", r.Detail)
	}
	if r := CheckCSPEndpoint(context.Background(), srv.URL+"/down/"); r.Passed {
		t.Fatal("expected failure for bad gateway")
	}
	if r := CheckCSPEndpoint(context.Background(), ""); r.Passed {
		t.Fatal("expected failure for missing url")
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil, ""); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_Healthy(t *testing.T) {
	root := testsupport.NewGameRoot(t)
	cfg := testsupport.NewConfig(t, testsupport.WithGameDir(root))

	results := RunAll(context.Background(), cfg, root)
	// game dir + layout dirs + free space + staging + state + trash
	if len(results) < 6 {
		t.Fatalf("expected at least 6 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Passed {
			t.Errorf("check %q failed: %s", r.Name, r.Detail)
		}
	}
}

func TestRunAll_MissingGameRoot(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithRemoval(config.RemovalDelete))
	results := RunAll(context.Background(), cfg, "")
	if results[0].Passed {
		t.Fatal("expected game directory check to fail")
	}
	for _, r := range results {
		if r.Name == "Trash directory" {
			t.Fatal("trash directory should not be checked with the delete policy")
		}
	}
}

func TestCheckStagingLeftovers(t *testing.T) {
	dir := t.TempDir()
	if r := CheckStagingLeftovers("Staging workspaces", dir); !r.Passed || r.Detail != "none" {
		t.Fatalf("empty staging = %+v", r)
	}
	testsupport.WriteFile(t, filepath.Join(dir, "pack-1a2b3c4d", "content", "weather.ini"), 2048)
	r := CheckStagingLeftovers("Staging workspaces", dir)
	if !r.Passed || !strings.HasPrefix(r.Detail, "1 left over, 2.0 KiB") {
		t.Fatalf("leftover staging = %+v", r)
	}
}
