package csp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// ProgressFunc receives cumulative bytes written and the expected total,
// which is -1 when the server does not announce a length.
type ProgressFunc func(done, total int64)

// Download fetches rawURL into dest, writing through a temporary file so a
// failed or canceled download leaves nothing at dest.
func Download(ctx context.Context, client HTTPDoer, rawURL, dest string, progress ProgressFunc) (err error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("csp: build download request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("csp: download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("csp: download returned %d", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("csp: create download dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return fmt.Errorf("csp: create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	writer := io.Writer(tmp)
	if progress != nil {
		writer = &progressWriter{w: tmp, total: resp.ContentLength, report: progress}
	}
	if _, err = io.Copy(writer, resp.Body); err != nil {
		return fmt.Errorf("csp: write download: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("csp: close download: %w", err)
	}
	if err = os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("csp: move download into place: %w", err)
	}
	return nil
}

type progressWriter struct {
	w      io.Writer
	done   int64
	total  int64
	report ProgressFunc
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.done += int64(n)
	p.report(p.done, p.total)
	return n, err
}
