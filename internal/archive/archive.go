// Package archive extracts downloaded mod archives into a staging workspace.
package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
)

// ErrUnsupportedFormat marks archives acmm cannot open.
var ErrUnsupportedFormat = errors.New("unsupported archive format")

// Progress reports extraction of one archive entry.
type Progress struct {
	Entry string
	Done  int
	Total int
}

// ProgressFunc receives a Progress after every extracted entry.
type ProgressFunc func(Progress)

// Supported reports whether path names an archive Extract can open.
func Supported(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".zip")
}

// Extract unpacks archivePath into destDir and returns destDir. Entries that
// would land outside destDir are rejected. Cancellation is checked between
// entries; entries already written stay on disk.
func Extract(ctx context.Context, archivePath, destDir string, onProgress ProgressFunc) (dir string, err error) {
	if !Supported(archivePath) {
		return "", fmt.Errorf("archive: %s: %w", filepath.Base(archivePath), ErrUnsupportedFormat)
	}
	absDest, err := filepath.Abs(destDir)
	if err != nil {
		return "", fmt.Errorf("archive: resolve destination: %w", err)
	}
	if err := os.MkdirAll(absDest, 0o755); err != nil {
		return "", fmt.Errorf("archive: create destination: %w", err)
	}

	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", fmt.Errorf("archive: open %s: %w", filepath.Base(archivePath), err)
	}
	defer func() {
		if closeErr := reader.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	total := len(reader.File)
	for i, file := range reader.File {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		name := strings.ReplaceAll(file.Name, "\\", "/")
		target, ok := entryPath(absDest, name)
		if !ok {
			return "", fmt.Errorf("archive: invalid path in archive: %s", file.Name)
		}

		mode := file.Mode()
		switch {
		case mode.IsDir() || strings.HasSuffix(name, "/"):
			if err := os.MkdirAll(target, 0o755); err != nil {
				return "", fmt.Errorf("archive: create directory: %w", err)
			}
		case mode&os.ModeSymlink != 0:
			// Links inside mod archives are never needed and could point
			// outside the workspace.
		default:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return "", fmt.Errorf("archive: create parent directory: %w", err)
			}
			if err := extractFile(file, target); err != nil {
				return "", fmt.Errorf("archive: extract %s: %w", file.Name, err)
			}
		}
		if onProgress != nil {
			onProgress(Progress{Entry: name, Done: i + 1, Total: total})
		}
	}
	return absDest, nil
}

func entryPath(dest, name string) (string, bool) {
	if name == "" || filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return "", false
	}
	target := filepath.Join(dest, filepath.FromSlash(name))
	rel, err := filepath.Rel(dest, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return target, true
}

func extractFile(file *zip.File, destPath string) (err error) {
	rc, err := file.Open()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	perm := file.Mode().Perm()
	if perm == 0 {
		perm = 0o644
	}
	destFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm|0o200)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := destFile.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	_, err = io.Copy(destFile, rc)
	return err
}
