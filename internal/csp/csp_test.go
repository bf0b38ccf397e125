package csp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"acmm/internal/config"
)

func newServer(t *testing.T, known map[string]bool) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	requests := &atomic.Int64{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if v := r.URL.Query().Get("get"); v != "" {
			_, _ = w.Write([]byte("archive-" + v))
			return
		}
		v := r.URL.Query().Get("info")
		if known[v] {
			_, _ = w.Write([]byte("Custom Shaders Patch " + v))
			return
		}
		_, _ = w.Write([]byte("Error: Unknown version"))
	}))
	t.Cleanup(srv.Close)
	return srv, requests
}

func testCSPConfig(base string) config.CSP {
	return config.CSP{BaseURL: base + "/patch/", StartVersion: "0.1.60", MaxMisses: 2, TimeoutSeconds: 5}
}

func TestVersionsWalksPatchesAndMinors(t *testing.T) {
	srv, _ := newServer(t, map[string]bool{
		"0.1.60": true,
		"0.1.62": true, // one miss in between is tolerated
		"0.2.0":  true,
		"0.2.1":  true,
	})
	prober, err := NewProber(testCSPConfig(srv.URL), srv.Client(), nil)
	if err != nil {
		t.Fatalf("NewProber: %v", err)
	}
	releases, err := prober.Versions(context.Background())
	if err != nil {
		t.Fatalf("Versions: %v", err)
	}
	var got []string
	for _, r := range releases {
		got = append(got, r.Version.String())
	}
	want := "0.1.60,0.1.62,0.2.0,0.2.1"
	if strings.Join(got, ",") != want {
		t.Fatalf("got %v want %s", got, want)
	}
	if !strings.HasSuffix(releases[0].DownloadURL, "/patch/?get=0.1.60") {
		t.Fatalf("unexpected download url %q", releases[0].DownloadURL)
	}

	latest, err := prober.Latest(context.Background())
	if err != nil || latest.Version.String() != "0.2.1" {
		t.Fatalf("Latest = %v, %v", latest.Version, err)
	}
}

func TestVersionsStopsOnCancel(t *testing.T) {
	srv, requests := newServer(t, map[string]bool{"0.1.60": true})
	prober, err := NewProber(testCSPConfig(srv.URL), srv.Client(), nil)
	if err != nil {
		t.Fatalf("NewProber: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := prober.Versions(ctx); err == nil {
		t.Fatal("expected cancellation error")
	}
	if n := requests.Load(); n != 0 {
		t.Fatalf("expected no requests after cancel, got %d", n)
	}
}

func TestKnownTreatsErrorStatusAsUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()
	prober, err := NewProber(testCSPConfig(srv.URL), srv.Client(), nil)
	if err != nil {
		t.Fatalf("NewProber: %v", err)
	}
	known, err := prober.Known(context.Background(), Version{0, 1, 60})
	if err != nil || known {
		t.Fatalf("Known = %v, %v", known, err)
	}
}

func TestDownload(t *testing.T) {
	srv, _ := newServer(t, nil)
	prober, err := NewProber(testCSPConfig(srv.URL), srv.Client(), nil)
	if err != nil {
		t.Fatalf("NewProber: %v", err)
	}
	dest := filepath.Join(t.TempDir(), "csp", "lights.zip")
	var last int64
	err = Download(context.Background(), srv.Client(), prober.DownloadURL(Version{0, 2, 1}), dest, func(done, _ int64) { last = done })
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil || string(data) != "archive-0.2.1" {
		t.Fatalf("unexpected download %q, %v", data, err)
	}
	if last != int64(len(data)) {
		t.Fatalf("expected progress to reach %d, got %d", len(data), last)
	}
}

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("v0.1.79")
	if err != nil || v != (Version{0, 1, 79}) {
		t.Fatalf("ParseVersion = %v, %v", v, err)
	}
	for _, bad := range []string{"", "0.1", "0.x.1", "1.2.3.4", "0.-1.2"} {
		if _, err := ParseVersion(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
	if !(Version{0, 1, 9}).Less(Version{0, 2, 0}) {
		t.Fatal("expected 0.1.9 < 0.2.0")
	}
}

func TestNewProberRejectsBadConfig(t *testing.T) {
	if _, err := NewProber(config.CSP{BaseURL: "://", StartVersion: "0.1.0"}, nil, nil); err == nil {
		t.Fatal("expected invalid url error")
	}
	if _, err := NewProber(config.CSP{BaseURL: "https://example.com/", StartVersion: "x"}, nil, nil); err == nil {
		t.Fatal("expected invalid version error")
	}
}
