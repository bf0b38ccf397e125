package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"acmm/internal/archive"
	"acmm/internal/config"
	"acmm/internal/logging"
	"acmm/internal/staging"
)

// unpacker turns command arguments into directories the finder can scan,
// extracting archives into staging workspaces that are removed afterwards.
type unpacker struct {
	stagingDir string
	progress   io.Writer
	logger     *slog.Logger
	workspaces []*staging.Workspace
}

func newUnpacker(cfg *config.Config, progress io.Writer, logger *slog.Logger) *unpacker {
	return &unpacker{stagingDir: cfg.Paths.StagingDir, progress: progress, logger: logger}
}

// resolve returns a directory for arg: arg itself, or an extraction of it.
func (u *unpacker) resolve(ctx context.Context, arg string) (string, error) {
	path, err := config.ExpandPath(arg)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("inspect %q: %w", arg, err)
	}
	if info.IsDir() {
		return path, nil
	}
	if !archive.Supported(path) {
		return "", fmt.Errorf("%s: %w", filepath.Base(path), archive.ErrUnsupportedFormat)
	}

	ws, err := staging.NewWorkspace(u.stagingDir, filepath.Base(path))
	if err != nil {
		return "", err
	}
	u.workspaces = append(u.workspaces, ws)
	dest, err := ws.Dir("content")
	if err != nil {
		return "", err
	}

	var bar *progress
	_, err = archive.Extract(ctx, path, dest, func(p archive.Progress) {
		if bar == nil {
			bar = newProgress(u.progress, int64(p.Total), "Extracting "+filepath.Base(path))
		}
		bar.set(int64(p.Done))
	})
	bar.finish()
	if err != nil {
		return "", err
	}
	u.logger.Debug("archive extracted",
		logging.String(logging.FieldPath, path),
		logging.String("workspace", ws.Path),
	)
	return dest, nil
}

func (u *unpacker) cleanup() {
	for _, ws := range u.workspaces {
		if err := ws.Remove(); err != nil {
			logging.WarnWithContext(u.logger, "failed to remove staging workspace", "staging_cleanup_failed",
				logging.String(logging.FieldPath, ws.Path),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "remove the directory manually"),
				logging.String(logging.FieldImpact, "disk space stays in use until the next stale cleanup"),
			)
		}
	}
	u.workspaces = nil
}
