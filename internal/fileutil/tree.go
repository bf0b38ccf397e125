package fileutil

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// CopyTree overlays src onto dst. Files present in src replace their
// counterparts in dst; entries that exist only in dst are left untouched.
// When src and dst disagree on type (file vs directory) the dst entry is
// removed first. The context is checked before every file so a cancelled
// copy leaves the files completed so far in place.
func CopyTree(ctx context.Context, src, dst string, onFile func(rel string)) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !srcInfo.IsDir() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := clearMismatch(dst, false); err != nil {
			return err
		}
		if err := CopyFileMode(src, dst, srcInfo.Mode().Perm()); err != nil {
			return err
		}
		if onFile != nil {
			onFile(filepath.Base(src))
		}
		return nil
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		switch {
		case d.IsDir():
			if err := clearMismatch(target, true); err != nil {
				return err
			}
			info, err := d.Info()
			if err != nil {
				return err
			}
			return os.MkdirAll(target, info.Mode().Perm()|0o700)
		case d.Type()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			if Exists(target) {
				if err := os.RemoveAll(target); err != nil {
					return err
				}
			}
			return os.Symlink(link, target)
		case d.Type().IsRegular():
			if err := clearMismatch(target, false); err != nil {
				return err
			}
			info, err := d.Info()
			if err != nil {
				return err
			}
			if err := CopyFileMode(path, target, info.Mode().Perm()); err != nil {
				return fmt.Errorf("copy %s: %w", rel, err)
			}
			if onFile != nil {
				onFile(rel)
			}
			return nil
		default:
			// Devices, sockets and pipes have no place in game content.
			return nil
		}
	})
}

// clearMismatch removes target when it exists with the opposite type.
func clearMismatch(target string, wantDir bool) error {
	info, err := os.Lstat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.IsDir() == wantDir && info.Mode()&fs.ModeSymlink == 0 {
		return nil
	}
	return os.RemoveAll(target)
}

// Size returns the byte sum of every regular file under path. A regular file
// path returns its own size.
func Size(path string) (int64, error) {
	var size int64
	err := filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		size += info.Size()
		return nil
	})
	return size, err
}

// CountFiles returns the number of regular files under path.
func CountFiles(path string) (int, error) {
	count := 0
	err := filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			count++
		}
		return nil
	})
	return count, err
}
