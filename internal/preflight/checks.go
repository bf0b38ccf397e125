package preflight

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"acmm/internal/assets"
	"acmm/internal/staging"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := accessRW(path); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckStagingLeftovers reports workspaces left in the staging directory by
// interrupted runs. Leftovers are informational; only an unreadable
// directory fails.
func CheckStagingLeftovers(name, stagingDir string) Result {
	dirs, err := staging.ListDirectories(stagingDir)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("unable to list %s (%v)", stagingDir, err)}
	}
	if len(dirs) == 0 {
		return Result{Name: name, Passed: true, Detail: "none"}
	}
	var total int64
	oldest := dirs[0].ModTime
	for _, d := range dirs {
		total += d.Size
		if d.ModTime.Before(oldest) {
			oldest = d.ModTime
		}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d left over, %s, oldest %s", len(dirs), humanize.IBytes(uint64(total)), humanize.Time(oldest))}
}

// CheckGameLayout reports one result per required content directory.
func CheckGameLayout(root string) []Result {
	dirs := assets.RequiredDirs()
	results := make([]Result, 0, len(dirs))
	for _, rel := range dirs {
		name := "Directory " + rel
		path := filepath.Join(root, filepath.FromSlash(rel))
		info, err := os.Stat(path)
		switch {
		case err != nil:
			results = append(results, Result{Name: name, Detail: "missing"})
		case !info.IsDir():
			results = append(results, Result{Name: name, Detail: "not a directory"})
		default:
			results = append(results, Result{Name: name, Passed: true, Detail: "present"})
		}
	}
	return results
}

// CheckFreeSpace reports the free space on the volume holding path. When
// need is positive the check fails below that many bytes.
func CheckFreeSpace(name, path string, need int64) Result {
	free, err := FreeBytes(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("unable to read free space (%v)", err)}
	}
	detail := humanize.IBytes(free) + " free"
	if need > 0 && free < uint64(need) {
		return Result{Name: name, Detail: fmt.Sprintf("%s, %s required", detail, humanize.IBytes(uint64(need)))}
	}
	return Result{Name: name, Passed: true, Detail: detail}
}

// EnsureFreeSpace returns an error when the volume holding path has fewer
// than need bytes available. Platforms without free-space reporting pass.
func EnsureFreeSpace(path string, need int64) error {
	if need <= 0 {
		return nil
	}
	free, err := FreeBytes(path)
	if err != nil {
		if err == errUnsupported {
			return nil
		}
		return fmt.Errorf("preflight: free space for %s: %w", path, err)
	}
	if free < uint64(need) {
		return fmt.Errorf("preflight: %s has %s free, %s required", path, humanize.IBytes(free), humanize.IBytes(uint64(need)))
	}
	return nil
}

// CheckCSPEndpoint verifies that the shaders patch endpoint answers.
func CheckCSPEndpoint(ctx context.Context, baseURL string) Result {
	const name = "CSP endpoint"

	base := strings.TrimSpace(baseURL)
	if base == "" {
		return Result{Name: name, Detail: "missing url"}
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("invalid url (%v)", err)}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client := &http.Client{Timeout: 5 * time.Second}
	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("request failed (%v)", err)}
	}
	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("unreachable (%v)", err)}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		return Result{Name: name, Passed: true, Detail: "Reachable"}
	}
	return Result{Name: name, Detail: fmt.Sprintf("unexpected status (%d)", resp.StatusCode)}
}
