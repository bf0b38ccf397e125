package assets

import (
	"os"
	"path/filepath"

	"acmm/internal/fileutil"
)

// Skins enumerates the valid skins of a car. Invalid skin directories are
// skipped. The result is never cached.
func (a *Asset) Skins() []*Asset {
	if a.kind != KindCar {
		return nil
	}
	skinsDir, _, ok := fileutil.Lookup(a.path, "skins")
	if !ok {
		return nil
	}
	entries, err := os.ReadDir(skinsDir)
	if err != nil {
		return nil
	}
	var skins []*Asset
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		skin, err := a.registry.newAsset(KindCarSkin, filepath.Join(skinsDir, entry.Name()), a)
		if err != nil {
			continue
		}
		skins = append(skins, skin)
	}
	return skins
}

// Layouts enumerates the valid layouts of a track. A layout missing either
// its data half or its ui half is excluded.
func (a *Asset) Layouts() []*Asset {
	if a.kind != KindTrack {
		return nil
	}
	var layouts []*Asset
	for _, dir := range layoutDirs(a.path) {
		layout, err := a.registry.newAsset(KindTrackLayout, dir, a)
		if err != nil {
			continue
		}
		layouts = append(layouts, layout)
	}
	return layouts
}

// UIDir returns <track>/ui/<layout> for a layout, or "" for other kinds.
func (a *Asset) UIDir() string {
	if a.kind != KindTrackLayout {
		return ""
	}
	dir, ok := fileutil.Resolve(filepath.Dir(a.path), "ui/"+filepath.Base(a.path))
	if !ok {
		return ""
	}
	return dir
}
