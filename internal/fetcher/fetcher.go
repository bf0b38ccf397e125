// Package fetcher enumerates content already installed in a game root.
// Unlike the finder it only looks at the immediate children of each kind's
// canonical directory.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"acmm/internal/assets"
	"acmm/internal/failure"
	"acmm/internal/fileutil"
	"acmm/internal/logging"
)

// Fetcher lists installed assets below one game root.
type Fetcher struct {
	root     string
	registry *assets.Registry
	logger   *slog.Logger
}

// New returns a Fetcher for root. A nil registry uses the built-in
// allowlists.
func New(root string, registry *assets.Registry, logger *slog.Logger) *Fetcher {
	if registry == nil {
		registry = assets.DefaultRegistry()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Fetcher{
		root:     filepath.Clean(root),
		registry: registry,
		logger:   logging.NewComponentLogger(logger, "fetcher"),
	}
}

// Root returns the game root.
func (f *Fetcher) Root() string { return f.root }

// Dirs returns the absolute directories enumerated for kind.
func (f *Fetcher) Dirs(kind assets.Kind) ([]string, error) {
	desc := kind.Descriptor()
	switch {
	case kind == assets.KindApp:
		return []string{
			filepath.Join(f.root, filepath.FromSlash(assets.AppsPythonDir)),
			filepath.Join(f.root, filepath.FromSlash(assets.AppsLuaDir)),
		}, nil
	case desc.Canonical == "" || desc.Canonical == assets.RootDir:
		return nil, failure.Wrap(failure.ErrUnimplemented, "fetcher", "fetch", fmt.Sprintf("%s has no content directory", kind), nil)
	default:
		return []string{filepath.Join(f.root, filepath.FromSlash(desc.Canonical))}, nil
	}
}

// Fetch validates every immediate child of the kind's canonical directory
// and returns the ones that match, in name order. Invalid entries are
// skipped.
func (f *Fetcher) Fetch(ctx context.Context, kind assets.Kind) ([]*assets.Asset, error) {
	dirs, err := f.Dirs(kind)
	if err != nil {
		return nil, err
	}
	var out []*assets.Asset
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, failure.Wrap(failure.ErrInvalidRoot, "fetcher", "fetch", dir+" is missing", err)
			}
			return nil, fmt.Errorf("list %s: %w", dir, err)
		}
		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return out, err
			}
			path := filepath.Join(dir, entry.Name())
			asset, err := f.registry.New(kind, path)
			if err != nil {
				f.logger.Debug("skipping entry",
					logging.String(logging.FieldAssetKind, kind.String()),
					logging.String(logging.FieldPath, path),
					logging.Error(err),
				)
				continue
			}
			out = append(out, asset)
		}
	}
	return out, nil
}

// SearchByID fetches kind and keeps assets whose id contains term, ignoring
// case. An empty term matches everything.
func (f *Fetcher) SearchByID(ctx context.Context, kind assets.Kind, term string) ([]*assets.Asset, error) {
	all, err := f.Fetch(ctx, kind)
	if err != nil {
		return nil, err
	}
	return FilterByID(all, term), nil
}

// FilterByID keeps assets whose id contains term, ignoring case.
func FilterByID(list []*assets.Asset, term string) []*assets.Asset {
	needle := fileutil.Fold(strings.TrimSpace(term))
	if needle == "" {
		return list
	}
	var out []*assets.Asset
	for _, a := range list {
		if strings.Contains(fileutil.Fold(a.ID()), needle) {
			out = append(out, a)
		}
	}
	return out
}

// FetchCSP returns the shaders patch installed at the game root, or an
// error marked failure.ErrNotFound when it is absent.
func (f *Fetcher) FetchCSP() (*assets.Asset, error) {
	asset, err := f.registry.New(assets.KindCSP, f.root)
	if err != nil {
		if errors.Is(err, failure.ErrInvalidAsset) {
			return nil, failure.Wrap(failure.ErrNotFound, "fetcher", "fetch csp", "shaders patch is not installed", nil)
		}
		return nil, err
	}
	return asset, nil
}
