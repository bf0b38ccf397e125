package installer

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"acmm/internal/assets"
	"acmm/internal/config"
	"acmm/internal/failure"
	"acmm/internal/fileutil"
	"acmm/internal/logging"
)

// Method selects how an existing destination is treated.
type Method string

const (
	Update Method = config.MethodUpdate
	Clean  Method = config.MethodClean
)

// ParseMethod accepts "update" or "clean" in any case.
func ParseMethod(value string) (Method, error) {
	switch Method(strings.ToLower(strings.TrimSpace(value))) {
	case Update:
		return Update, nil
	case Clean:
		return Clean, nil
	default:
		return "", fmt.Errorf("unknown install method %q", value)
	}
}

// Disposer removes an existing destination before a clean install.
type Disposer interface {
	Dispose(ctx context.Context, path string) error
}

// ProgressFunc is called with the source-relative path of every copied
// file.
type ProgressFunc func(rel string)

// Installer installs into one game root.
type Installer struct {
	root     string
	disposer Disposer
	logger   *slog.Logger
}

// New returns an Installer for root. disposer may be nil, in which case
// clean installs refuse to replace existing content.
func New(root string, disposer Disposer, logger *slog.Logger) *Installer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Installer{
		root:     filepath.Clean(root),
		disposer: disposer,
		logger:   logging.NewComponentLogger(logger, "installer"),
	}
}

// transfer is one source to destination copy.
type transfer struct {
	src string
	dst string
}

// Destination returns the path the asset occupies once installed.
func (i *Installer) Destination(asset *assets.Asset) (string, error) {
	plan, err := i.plan(asset)
	if err != nil {
		return "", err
	}
	if asset.Kind() == assets.KindCSP {
		return i.root, nil
	}
	return plan[0].dst, nil
}

func (i *Installer) plan(asset *assets.Asset) ([]transfer, error) {
	kind := asset.Kind()
	canonical := kind.Descriptor().Canonical
	switch {
	case canonical == "":
		return nil, failure.Wrap(failure.ErrUnimplemented, "installer", "install", fmt.Sprintf("%s has no install rule", kind), nil)
	case kind == assets.KindCSP:
		parts := asset.CSPParts()
		plan := make([]transfer, 0, len(parts))
		for _, part := range parts {
			// The game loads these by exact name.
			name := strings.ToLower(filepath.Base(part))
			plan = append(plan, transfer{src: part, dst: filepath.Join(i.root, name)})
		}
		return plan, nil
	case kind == assets.KindApp:
		dir, ok := assets.AppDir(asset.Language())
		if !ok {
			return nil, failure.Wrap(failure.ErrInvalidAsset, "installer", "install", asset.Path()+" is not a python or lua app", nil)
		}
		canonical = dir
	}
	dst := filepath.Join(i.root, filepath.FromSlash(canonical), filepath.Base(asset.Path()))
	return []transfer{{src: asset.Path(), dst: dst}}, nil
}

// Install copies asset into the game root and returns it revalidated at
// its new location. A cancelled context leaves already copied files in
// place and returns the context error.
func (i *Installer) Install(ctx context.Context, asset *assets.Asset, method Method, onFile ProgressFunc) (*assets.Asset, error) {
	if method != Update && method != Clean {
		return nil, fmt.Errorf("unknown install method %q", method)
	}
	plan, err := i.plan(asset)
	if err != nil {
		return nil, err
	}
	for _, t := range plan {
		if err := i.apply(ctx, t, method, onFile); err != nil {
			return nil, err
		}
	}

	dest := plan[0].dst
	if asset.Kind() == assets.KindCSP {
		dest = i.root
	}
	installed, err := asset.Moved(dest)
	if err != nil {
		return nil, fmt.Errorf("verify installed %s: %w", asset.ID(), err)
	}
	i.logger.Info("asset installed",
		logging.String(logging.FieldAssetKind, asset.Kind().String()),
		logging.String(logging.FieldAssetID, installed.ID()),
		logging.String(logging.FieldPath, dest),
		logging.String("method", string(method)),
	)
	return installed, nil
}

func (i *Installer) apply(ctx context.Context, t transfer, method Method, onFile ProgressFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	src := filepath.Clean(t.src)
	dst := filepath.Clean(t.dst)
	if src == dst {
		i.logger.Debug("source already in place", logging.String(logging.FieldPath, dst))
		return nil
	}
	if fileutil.HasPathPrefix(dst, src) || fileutil.HasPathPrefix(src, dst) {
		return failure.Wrap(failure.ErrUnsafeTarget, "installer", "install", fmt.Sprintf("%s and %s overlap", src, dst), nil)
	}

	if method == Clean && fileutil.Exists(dst) {
		if i.disposer == nil {
			return failure.Wrap(failure.ErrConfiguration, "installer", "install", "clean install needs a removal policy", nil)
		}
		if err := i.disposer.Dispose(ctx, dst); err != nil {
			return fmt.Errorf("clear %s: %w", dst, err)
		}
	}

	if err := fileutil.CopyTree(ctx, src, dst, onFile); err != nil {
		return fmt.Errorf("copy %s: %w", filepath.Base(src), err)
	}
	return nil
}
