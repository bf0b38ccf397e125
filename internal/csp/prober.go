package csp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"acmm/internal/config"
	"acmm/internal/logging"
	"acmm/internal/textutil"
)

const unknownMarker = "unknown version"

// HTTPDoer describes the HTTP client used for probing and downloads.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Release is one published version and where to download it.
type Release struct {
	Version     Version
	DownloadURL string
}

// Prober discovers published versions.
type Prober struct {
	base      *url.URL
	start     Version
	maxMisses int
	client    HTTPDoer
	logger    *slog.Logger
}

// NewProber builds a prober from the [csp] config section. A nil client
// gets an http.Client with the configured timeout.
func NewProber(cfg config.CSP, client HTTPDoer, logger *slog.Logger) (*Prober, error) {
	base, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil || base.Host == "" {
		return nil, fmt.Errorf("csp: invalid base url %q", cfg.BaseURL)
	}
	start, err := ParseVersion(cfg.StartVersion)
	if err != nil {
		return nil, err
	}
	if client == nil {
		client = &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	maxMisses := cfg.MaxMisses
	if maxMisses < 1 {
		maxMisses = 1
	}
	return &Prober{
		base:      base,
		start:     start,
		maxMisses: maxMisses,
		client:    client,
		logger:    logging.NewComponentLogger(logger, "csp"),
	}, nil
}

func (p *Prober) endpoint(key string, v Version) string {
	u := *p.base
	q := u.Query()
	q.Set(key, v.String())
	u.RawQuery = q.Encode()
	return u.String()
}

// DownloadURL returns the archive link for v.
func (p *Prober) DownloadURL(v Version) string {
	return p.endpoint("get", v)
}

// Known reports whether the server recognizes v.
func (p *Prober) Known(ctx context.Context, v Version) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint("info", v), nil)
	if err != nil {
		return false, fmt.Errorf("csp: build info request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("csp: query %s: %w", v, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return false, fmt.Errorf("csp: read info for %s: %w", v, err)
	}
	if resp.StatusCode != http.StatusOK {
		return false, nil
	}
	return !textutil.ContainsFold(string(body), unknownMarker), nil
}

// Versions probes the server and returns every known release in ascending
// order. Cancellation returns the releases found so far with the error.
func (p *Prober) Versions(ctx context.Context) ([]Release, error) {
	var releases []Release
	current := p.start
	for {
		found := false
		misses := 0
		for misses < p.maxMisses {
			if err := ctx.Err(); err != nil {
				return releases, err
			}
			known, err := p.Known(ctx, current)
			if err != nil {
				return releases, err
			}
			if known {
				releases = append(releases, Release{Version: current, DownloadURL: p.DownloadURL(current)})
				found = true
				misses = 0
			} else {
				misses++
			}
			current.Patch++
		}
		p.logger.Debug("probed minor series",
			logging.Int("major", current.Major),
			logging.Int("minor", current.Minor),
			logging.Bool("found", found),
		)
		if !found {
			return releases, nil
		}
		current = Version{Major: current.Major, Minor: current.Minor + 1}
	}
}

// Latest returns the newest known release.
func (p *Prober) Latest(ctx context.Context) (Release, error) {
	releases, err := p.Versions(ctx)
	if err != nil {
		return Release{}, err
	}
	if len(releases) == 0 {
		return Release{}, fmt.Errorf("csp: no versions found from %s", p.start)
	}
	return releases[len(releases)-1], nil
}
