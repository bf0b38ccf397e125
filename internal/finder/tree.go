package finder

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"

	"acmm/internal/logging"
)

// tree is a depth-first listing of every file and directory below a root,
// in lexical order.
type tree struct {
	root  string
	files []string
	dirs  []string
}

func walkTree(ctx context.Context, root string, logger *slog.Logger) (*tree, error) {
	t := &tree{root: root}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return err
			}
			logger.Debug("skipping unreadable path",
				logging.String(logging.FieldPath, path),
				logging.Error(err),
			)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}
		switch {
		case d.IsDir():
			t.dirs = append(t.dirs, path)
		case d.Type().IsRegular():
			t.files = append(t.files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// parents returns the distinct parent directories of paths, keeping first
// occurrence order.
func parents(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		dir := filepath.Dir(p)
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		out = append(out, dir)
	}
	return out
}

func dedupe(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// intersect keeps the entries of a that also appear in b.
func intersect(a, b []string) []string {
	set := make(map[string]struct{}, len(b))
	for _, p := range b {
		set[p] = struct{}{}
	}
	var out []string
	for _, p := range a {
		if _, ok := set[p]; ok {
			out = append(out, p)
		}
	}
	return out
}
