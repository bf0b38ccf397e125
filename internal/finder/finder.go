package finder

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"acmm/internal/assets"
	"acmm/internal/config"
	"acmm/internal/failure"
	"acmm/internal/fileutil"
	"acmm/internal/logging"
)

// Options configures a Finder.
type Options struct {
	// PPFilterMode is config.PPFilterPermissive (default) or
	// config.PPFilterConservative.
	PPFilterMode string
	Registry     *assets.Registry
	Logger       *slog.Logger
}

// Finder runs the discovery heuristics.
type Finder struct {
	opts   Options
	logger *slog.Logger
}

// New returns a Finder with defaults filled in.
func New(opts Options) *Finder {
	if opts.PPFilterMode == "" {
		opts.PPFilterMode = config.PPFilterPermissive
	}
	if opts.Registry == nil {
		opts.Registry = assets.DefaultRegistry()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Finder{opts: opts, logger: logging.NewComponentLogger(logger, "finder")}
}

// CandidateGroup is the raw heuristic output for one kind.
type CandidateGroup struct {
	Kind  assets.Kind
	Paths []string
}

// Group holds the validated assets found for one kind.
type Group struct {
	Kind   assets.Kind
	Assets []*assets.Asset
}

// Skipped records a candidate that failed validation.
type Skipped struct {
	Kind assets.Kind
	Path string
	Err  error
}

// KindError records a heuristic that failed; other kinds still ran.
type KindError struct {
	Kind assets.Kind
	Err  error
}

func (e KindError) Error() string {
	return fmt.Sprintf("find %s: %v", e.Kind, e.Err)
}

func (e KindError) Unwrap() error { return e.Err }

// Result is the outcome of Find. Groups follow Order and omit kinds with
// nothing found.
type Result struct {
	Groups  []Group
	Skipped []Skipped
	Errors  []KindError
}

// Assets flattens the groups in kind order.
func (r Result) Assets() []*assets.Asset {
	var out []*assets.Asset
	for _, g := range r.Groups {
		out = append(out, g.Assets...)
	}
	return out
}

// Count returns the number of assets found.
func (r Result) Count() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Assets)
	}
	return n
}

// Candidates returns the heuristic matches per kind before validation. Each
// accepted candidate claims its subtree against later candidates.
func (f *Finder) Candidates(ctx context.Context, root string) ([]CandidateGroup, error) {
	var groups []CandidateGroup
	err := f.run(ctx, root, func(kind assets.Kind, paths []string, claimed *claims) {
		group := CandidateGroup{Kind: kind}
		for _, p := range paths {
			if claimed.covers(p) {
				continue
			}
			claimed.add(p)
			group.Paths = append(group.Paths, p)
		}
		if len(group.Paths) > 0 {
			groups = append(groups, group)
		}
	}, nil)
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// Find discovers and validates assets below root. Nothing found is not an
// error; the returned error is either cancellation or an unreadable root.
func (f *Finder) Find(ctx context.Context, root string) (Result, error) {
	var result Result
	err := f.run(ctx, root, func(kind assets.Kind, paths []string, claimed *claims) {
		group := Group{Kind: kind}
		for _, p := range paths {
			if claimed.covers(p) {
				continue
			}
			asset, err := f.opts.Registry.New(kind, p)
			if err != nil {
				result.Skipped = append(result.Skipped, Skipped{Kind: kind, Path: p, Err: err})
				f.logger.Debug("candidate failed validation",
					logging.String(logging.FieldAssetKind, kind.String()),
					logging.String(logging.FieldPath, p),
					logging.Error(err),
				)
				continue
			}
			claimed.add(p)
			group.Assets = append(group.Assets, asset)
		}
		if len(group.Assets) > 0 {
			result.Groups = append(result.Groups, group)
		}
	}, func(kerr KindError) {
		result.Errors = append(result.Errors, kerr)
	})
	if err != nil {
		return Result{}, err
	}
	return result, nil
}

func (f *Finder) run(ctx context.Context, root string, accept func(assets.Kind, []string, *claims), onErr func(KindError)) error {
	root = filepath.Clean(root)
	if !fileutil.IsDir(root) {
		return failure.Wrap(failure.ErrNotFound, "finder", "find", root+" is not a directory", nil)
	}
	t, err := walkTree(ctx, root, f.logger)
	if err != nil {
		return err
	}
	claimed := &claims{}
	for _, kind := range Order() {
		if err := ctx.Err(); err != nil {
			return err
		}
		paths, err := heuristics[kind](f, t)
		if err != nil {
			kerr := KindError{Kind: kind, Err: err}
			logging.WarnWithContext(f.logger, "content scan failed for one kind", "finder_kind_failed",
				logging.String(logging.FieldAssetKind, kind.String()),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check permissions of the extracted files"),
				logging.String(logging.FieldImpact, "assets of this kind were not detected"),
			)
			if onErr != nil {
				onErr(kerr)
			}
			continue
		}
		accept(kind, paths, claimed)
	}
	return nil
}

// claims tracks accepted roots.
type claims struct {
	roots []string
}

func (c *claims) add(path string) {
	c.roots = append(c.roots, path)
}

// covers reports whether path equals or lies below an accepted root.
func (c *claims) covers(path string) bool {
	for _, root := range c.roots {
		if fileutil.HasPathPrefix(path, root) {
			return true
		}
	}
	return false
}
