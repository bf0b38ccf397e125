package finder

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"acmm/internal/assets"
	"acmm/internal/config"
	"acmm/internal/fileutil"
)

var ppfilterMarkers = [][]byte{[]byte("[DOF]"), []byte("[COLOR]")}

// heuristic returns candidate roots for one kind.
type heuristic func(f *Finder, t *tree) ([]string, error)

var heuristics = map[assets.Kind]heuristic{
	assets.KindCSP:      findCSP,
	assets.KindCar:      findCars,
	assets.KindTrack:    findTracks,
	assets.KindPPFilter: findPPFilters,
	assets.KindWeather:  findWeather,
	assets.KindApp:      findApps,
}

// Order is the fixed kind evaluation order.
func Order() []assets.Kind {
	return []assets.Kind{
		assets.KindCSP,
		assets.KindCar,
		assets.KindTrack,
		assets.KindPPFilter,
		assets.KindWeather,
		assets.KindApp,
	}
}

func filesNamed(t *tree, name string) []string {
	var out []string
	for _, f := range t.files {
		if fileutil.EqualFold(filepath.Base(f), name) {
			out = append(out, f)
		}
	}
	return out
}

func filesWithExt(t *tree, ext string) []string {
	var out []string
	for _, f := range t.files {
		if strings.EqualFold(filepath.Ext(f), ext) {
			out = append(out, f)
		}
	}
	return out
}

// findCSP returns the first directory holding both dwrite.dll and an
// extension directory.
func findCSP(_ *Finder, t *tree) ([]string, error) {
	for _, dir := range t.dirs {
		if !fileutil.EqualFold(filepath.Base(dir), "extension") {
			continue
		}
		parent := filepath.Dir(dir)
		if _, entry, ok := fileutil.Lookup(parent, "dwrite.dll"); ok && !entry.IsDir() {
			return []string{parent}, nil
		}
	}
	return nil, nil
}

// findCars returns the directories containing collider.kn5.
func findCars(_ *Finder, t *tree) ([]string, error) {
	return parents(filesNamed(t, "collider.kn5")), nil
}

// findTracks intersects the directories holding .kn5 files with those
// holding map.png. When nothing matches, map.png directories are lifted one
// level to catch layouts nested below the track root.
func findTracks(_ *Finder, t *tree) ([]string, error) {
	kn5Dirs := parents(filesWithExt(t, ".kn5"))
	mapDirs := parents(filesNamed(t, "map.png"))
	roots := intersect(kn5Dirs, mapDirs)
	if len(roots) == 0 {
		roots = intersect(kn5Dirs, parents(mapDirs))
	}
	return roots, nil
}

// findPPFilters returns .ini files carrying a filter section marker. In
// permissive mode, when every match shares one directory, the whole
// directory is returned since filter packs often ship many presets side by
// side.
func findPPFilters(f *Finder, t *tree) ([]string, error) {
	var matches []string
	for _, path := range filesWithExt(t, ".ini") {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
				continue
			}
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		for _, marker := range ppfilterMarkers {
			if bytes.Contains(data, marker) {
				matches = append(matches, path)
				break
			}
		}
	}
	dirs := parents(matches)
	if len(dirs) != 1 || f.opts.PPFilterMode == config.PPFilterConservative {
		return matches, nil
	}
	entries, err := os.ReadDir(dirs[0])
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dirs[0], err)
	}
	all := make([]string, 0, len(entries))
	for _, entry := range entries {
		all = append(all, filepath.Join(dirs[0], entry.Name()))
	}
	return all, nil
}

// findWeather returns the directories holding weather.ini, but only when
// they all sit in one common container.
func findWeather(_ *Finder, t *tree) ([]string, error) {
	dirs := parents(filesNamed(t, "weather.ini"))
	if len(parents(dirs)) != 1 {
		return nil, nil
	}
	return dirs, nil
}

// findApps returns directories holding <dir>.py or <dir>.lua. Python apps
// come first.
func findApps(_ *Finder, t *tree) ([]string, error) {
	var roots []string
	for _, ext := range []string{".py", ".lua"} {
		for _, file := range filesWithExt(t, ext) {
			stem := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
			parent := filepath.Dir(file)
			if fileutil.EqualFold(stem, filepath.Base(parent)) {
				roots = append(roots, parent)
			}
		}
	}
	return dedupe(roots), nil
}
