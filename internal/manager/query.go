package manager

import (
	"context"
	"path/filepath"

	"acmm/internal/assets"
	"acmm/internal/country"
	"acmm/internal/fileutil"
	"acmm/internal/finder"
)

// FetchAssets lists installed assets of the given kinds in kind order. No
// kinds means every content kind.
func (m *Manager) FetchAssets(ctx context.Context, kinds ...assets.Kind) ([]*assets.Asset, error) {
	if len(kinds) == 0 {
		kinds = assets.ContentKinds()
	}
	var out []*assets.Asset
	for _, kind := range kinds {
		list, err := m.fetcher.Fetch(ctx, kind)
		if err != nil {
			return nil, err
		}
		out = append(out, list...)
	}
	return out, nil
}

// FetchCSP returns the installed shaders patch.
func (m *Manager) FetchCSP() (*assets.Asset, error) {
	return m.fetcher.FetchCSP()
}

// SearchByID returns installed assets whose id contains term, ignoring
// case. No kinds means every content kind.
func (m *Manager) SearchByID(ctx context.Context, term string, kinds ...assets.Kind) ([]*assets.Asset, error) {
	if len(kinds) == 0 {
		kinds = assets.ContentKinds()
	}
	var out []*assets.Asset
	for _, kind := range kinds {
		list, err := m.fetcher.SearchByID(ctx, kind, term)
		if err != nil {
			return nil, err
		}
		out = append(out, list...)
	}
	return out, nil
}

// Find runs discovery on an unpacked directory.
func (m *Manager) Find(ctx context.Context, path string) (finder.Result, error) {
	return m.finder.Find(ctx, path)
}

// FindAssets runs discovery and flattens the result in kind order.
func (m *Manager) FindAssets(ctx context.Context, path string) ([]*assets.Asset, error) {
	result, err := m.finder.Find(ctx, path)
	if err != nil {
		return nil, err
	}
	return result.Assets(), nil
}

// Flag returns the nation flag image for the asset's country, when the
// ui info names one the game ships a flag for.
func (m *Manager) Flag(asset *assets.Asset) (string, bool) {
	info, err := asset.UIInfo()
	if err != nil {
		return "", false
	}
	name, _ := info["country"].(string)
	code, ok := country.ISO3(name)
	if !ok {
		return "", false
	}
	path := filepath.Join(m.root, "content", "gui", "NationFlags", code+".png")
	if !fileutil.IsFile(path) {
		return "", false
	}
	return path, true
}
