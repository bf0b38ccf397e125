package assets

import (
	"os"
	"path/filepath"

	"acmm/internal/fileutil"
	"acmm/internal/validate"
)

// Origin classifies where content came from.
type Origin int

const (
	OriginMod Origin = iota
	OriginKunos
	OriginDLC
)

func (o Origin) String() string {
	switch o {
	case OriginKunos:
		return "kunos"
	case OriginDLC:
		return "dlc"
	default:
		return "mod"
	}
}

// MarshalText renders the origin name for JSON output.
func (o Origin) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Origin computes the classification from the allowlists and the presence
// of a DLC metadata file. It is recomputed on every call.
func (a *Asset) Origin() Origin {
	official := a.registry.official
	switch a.kind {
	case KindCar, KindWeather, KindPPFilter:
		if !official.Contains(a.kind, a.ID()) {
			return OriginMod
		}
		if a.file(RoleDLCUI) != "" {
			return OriginDLC
		}
		return OriginKunos
	case KindTrack:
		if !official.Contains(a.kind, a.ID()) {
			return OriginMod
		}
		if a.trackDLCFile() != "" {
			return OriginDLC
		}
		return OriginKunos
	case KindApp:
		if a.lang == validate.LangPython && official.Contains(a.kind, a.ID()) {
			return OriginKunos
		}
		return OriginMod
	case KindCarSkin, KindTrackLayout:
		if a.parent != nil {
			return a.parent.Origin()
		}
		return OriginMod
	case KindCSP:
		return OriginMod
	default:
		return OriginMod
	}
}

// trackDLCFile looks for the DLC ui file in the first layout's ui directory.
// Tracks without layouts fall back to the track's own ui directory.
func (a *Asset) trackDLCFile() string {
	dirs := layoutDirs(a.path)
	if len(dirs) == 0 {
		return a.file(RoleDLCUI)
	}
	return resolveTemplate(dirs[0], descriptors[KindTrackLayout].Files[RoleDLCUI])
}

// layoutDirs lists track subdirectories carrying the data half of a layout
// (map.png and data/), in name order.
func layoutDirs(track string) []string {
	entries, err := os.ReadDir(track)
	if err != nil {
		return nil
	}
	var out []string
	for _, entry := range entries {
		if !entry.IsDir() || isReservedTrackDir(entry.Name()) {
			continue
		}
		dir := filepath.Join(track, entry.Name())
		if validate.Matches(dir, validate.File("map.png"), validate.Dir("data")) {
			out = append(out, dir)
		}
	}
	return out
}

var reservedTrackDirs = []string{"ai", "data", "skins", "ui"}

func isReservedTrackDir(name string) bool {
	for _, reserved := range reservedTrackDirs {
		if fileutil.EqualFold(name, reserved) {
			return true
		}
	}
	return false
}
