package manager

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"acmm/internal/assets"
	"acmm/internal/failure"
	"acmm/internal/fileutil"
	"acmm/internal/logging"
)

// Remove disposes of an installed asset through the removal policy under
// the mutation lock. The target must resolve below the game root and its
// name must match the asset id; anything else is refused with
// failure.ErrUnsafeTarget.
func (m *Manager) Remove(ctx context.Context, asset *assets.Asset) error {
	unlock, err := m.acquire()
	if err != nil {
		return err
	}
	defer unlock()
	return m.remove(ctx, asset)
}

// remove expects the caller to hold the mutation lock.
func (m *Manager) remove(ctx context.Context, asset *assets.Asset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	targets, err := m.removalTargets(asset)
	if err != nil {
		if errors.Is(err, failure.ErrUnsafeTarget) {
			logging.WarnWithContext(m.logger, "removal refused", "removal_refused",
				logging.String(logging.FieldAssetKind, asset.Kind().String()),
				logging.String(logging.FieldAssetID, asset.ID()),
				logging.String(logging.FieldPath, asset.Path()),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "only content inside the game directory can be removed"),
				logging.String(logging.FieldImpact, "nothing was deleted"),
			)
		}
		return err
	}
	for _, target := range targets {
		if err := m.bin.Dispose(ctx, target); err != nil {
			return fmt.Errorf("remove %s: %w", target, err)
		}
	}
	m.logger.Info("asset removed",
		logging.String(logging.FieldAssetKind, asset.Kind().String()),
		logging.String(logging.FieldAssetID, asset.ID()),
		logging.String(logging.FieldPath, asset.Path()),
		logging.String("policy", m.bin.Policy()),
	)
	return nil
}

// UninstallCSP removes dwrite.dll and extension/ from the game root under
// the mutation lock.
func (m *Manager) UninstallCSP(ctx context.Context) error {
	unlock, err := m.acquire()
	if err != nil {
		return err
	}
	defer unlock()

	csp, err := m.FetchCSP()
	if err != nil {
		return err
	}
	return m.remove(ctx, csp)
}

func (m *Manager) removalTargets(asset *assets.Asset) ([]string, error) {
	if asset.Kind() == assets.KindCSP {
		if filepath.Clean(asset.Path()) != m.root {
			return nil, unsafeTarget(asset.Path(), "shaders patch is not installed in this game directory")
		}
		parts := asset.CSPParts()
		for _, part := range parts {
			if !fileutil.Within(m.root, part) {
				return nil, unsafeTarget(part, "resolves outside the game directory")
			}
		}
		return parts, nil
	}

	target, err := m.checkTarget(asset.Path(), asset.ID(), asset.Kind())
	if err != nil {
		return nil, err
	}
	targets := []string{target}
	if asset.Kind() == assets.KindTrackLayout {
		if ui := asset.UIDir(); ui != "" {
			uiTarget, err := m.checkTarget(ui, asset.ID(), asset.Kind())
			if err != nil {
				return nil, err
			}
			targets = append(targets, uiTarget)
		}
	}
	return targets, nil
}

// checkTarget resolves path and verifies it lies below the game root and is
// named after id.
func (m *Manager) checkTarget(path, id string, kind assets.Kind) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", failure.Wrap(failure.ErrNotFound, "manager", "remove", path+" no longer exists", err)
		}
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	if !fileutil.Within(m.root, resolved) {
		return "", unsafeTarget(resolved, "resolves outside the game directory")
	}
	name := filepath.Base(resolved)
	if kind == assets.KindPPFilter {
		if ext := filepath.Ext(name); strings.EqualFold(ext, ".ini") {
			name = strings.TrimSuffix(name, ext)
		}
	}
	if name != id || id == "" {
		return "", unsafeTarget(resolved, fmt.Sprintf("does not match asset id %q", id))
	}
	return resolved, nil
}

func unsafeTarget(path, reason string) error {
	return failure.Wrap(failure.ErrUnsafeTarget, "manager", "remove", path+" "+reason, nil)
}
