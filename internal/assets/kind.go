package assets

import (
	"fmt"
	"strings"

	"acmm/internal/validate"
)

// Kind enumerates the content categories the engine recognizes.
type Kind int

const (
	KindCar Kind = iota + 1
	KindTrack
	KindTrackLayout
	KindCarSkin
	KindPPFilter
	KindWeather
	KindApp
	KindCSP
)

// Role names a kind-specific file relative to the asset root.
type Role string

const (
	RoleUI         Role = "ui-file"
	RoleDLCUI      Role = "dlc-ui-file"
	RolePreview    Role = "preview-file"
	RoleDLCPreview Role = "dlc-preview-file"
	RoleOutline    Role = "outline-file"
	RoleBadge      Role = "badge-file"
	RoleLogo       Role = "logo-file"
	RoleMap        Role = "map-file"
	RoleIcon       Role = "icon-file"
	RoleLivery     Role = "livery-file"
	RoleCredits    Role = "credits-file"
)

// RootDir marks a kind whose canonical location is the game root itself.
const RootDir = "."

// Descriptor is the static description of one kind. File templates are
// slash separated, relative to the asset path, and may reference the asset
// directory name as {id}.
type Descriptor struct {
	Kind     Kind
	Name     string
	Category string
	// Canonical is the install directory relative to the game root. Empty
	// for sub-assets, which are never installed on their own.
	Canonical string
	Validate  func(path string) bool
	Files     map[Role]string
	// LangFiles overrides Files per app language.
	LangFiles map[validate.AppLanguage]map[Role]string
}

var descriptors = map[Kind]Descriptor{
	KindCar: {
		Kind:      KindCar,
		Name:      "car",
		Category:  "cars",
		Canonical: "content/cars",
		Validate:  validate.IsCar,
		Files: map[Role]string{
			RoleUI:         "ui/ui_car.json",
			RoleDLCUI:      "ui/dlc_ui_car.json",
			RolePreview:    "ui/preview.jpg",
			RoleDLCPreview: "ui/dlc_preview.jpg",
			RoleBadge:      "ui/badge.png",
			RoleLogo:       "logo.png",
		},
	},
	KindTrack: {
		Kind:      KindTrack,
		Name:      "track",
		Category:  "tracks",
		Canonical: "content/tracks",
		Validate:  validate.IsTrack,
		Files: map[Role]string{
			RoleUI:      "ui/ui_track.json",
			RoleDLCUI:   "ui/dlc_ui_track.json",
			RolePreview: "ui/preview.png",
			RoleOutline: "ui/outline.png",
			RoleMap:     "map.png",
		},
	},
	KindTrackLayout: {
		Kind:     KindTrackLayout,
		Name:     "layout",
		Category: "layouts",
		Validate: validate.IsTrackLayout,
		Files: map[Role]string{
			RoleUI:      "../ui/{id}/ui_track.json",
			RoleDLCUI:   "../ui/{id}/dlc_ui_track.json",
			RolePreview: "../ui/{id}/preview.png",
			RoleOutline: "../ui/{id}/outline.png",
			RoleMap:     "map.png",
		},
	},
	KindCarSkin: {
		Kind:     KindCarSkin,
		Name:     "skin",
		Category: "skins",
		Validate: validate.IsCarSkin,
		Files: map[Role]string{
			RoleUI:      "ui_skin.json",
			RolePreview: "preview.jpg",
			RoleLivery:  "livery.png",
		},
	},
	KindPPFilter: {
		Kind:      KindPPFilter,
		Name:      "ppfilter",
		Category:  "ppfilters",
		Canonical: "system/cfg/ppfilters",
		Validate:  validate.IsPPFilter,
		Files: map[Role]string{
			RoleUI: ".",
		},
	},
	KindWeather: {
		Kind:      KindWeather,
		Name:      "weather",
		Category:  "weather",
		Canonical: "content/weather",
		Validate:  validate.IsWeather,
		Files: map[Role]string{
			RoleUI:      "weather.ini",
			RolePreview: "preview.jpg",
		},
	},
	KindApp: {
		Kind:      KindApp,
		Name:      "app",
		Category:  "apps",
		Canonical: "apps",
		Validate:  validate.IsApp,
		LangFiles: map[validate.AppLanguage]map[Role]string{
			validate.LangPython: {
				RoleUI:      "ui/ui_app.json",
				RolePreview: "ui/preview.png",
			},
			validate.LangLua: {
				RoleUI:   "manifest.ini",
				RoleIcon: "icon.png",
			},
		},
	},
	KindCSP: {
		Kind:      KindCSP,
		Name:      "csp",
		Category:  "extensions",
		Canonical: RootDir,
		Validate:  validate.IsCSP,
		Files: map[Role]string{
			RoleUI:      "extension/config/data_manifest.ini",
			RoleCredits: "extension/config/data_credits.txt",
		},
	},
}

// Descriptor returns the static descriptor for k.
func (k Kind) Descriptor() Descriptor {
	return descriptors[k]
}

func (k Kind) String() string {
	if d, ok := descriptors[k]; ok {
		return d.Name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Installable reports whether assets of this kind have a canonical install
// location.
func (k Kind) Installable() bool {
	return descriptors[k].Canonical != ""
}

// MarshalText renders the kind name for JSON and TOML output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Kinds lists every kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindCar, KindTrack, KindTrackLayout, KindCarSkin, KindPPFilter, KindWeather, KindApp, KindCSP}
}

// ContentKinds lists the kinds enumerated from their canonical directory
// when no kind is requested. CSP is fetched separately since it lives at
// the game root.
func ContentKinds() []Kind {
	return []Kind{KindCar, KindTrack, KindPPFilter, KindWeather, KindApp}
}

// ParseKind accepts a kind name or its category ("car", "cars").
func ParseKind(value string) (Kind, error) {
	needle := strings.ToLower(strings.TrimSpace(value))
	for _, k := range Kinds() {
		d := descriptors[k]
		if needle == d.Name || needle == d.Category {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown asset kind %q", value)
}

// App language subdirectories under the apps canonical directory.
const (
	AppsPythonDir = "apps/python"
	AppsLuaDir    = "apps/lua"
)

// RequiredDirs lists the directories, relative to the game root, that a
// usable game installation must contain.
func RequiredDirs() []string {
	var dirs []string
	for _, k := range Kinds() {
		canonical := descriptors[k].Canonical
		if canonical == "" || canonical == RootDir {
			continue
		}
		if k == KindApp {
			dirs = append(dirs, AppsPythonDir, AppsLuaDir)
			continue
		}
		dirs = append(dirs, canonical)
	}
	return dirs
}

// AppDir returns the canonical directory for an app of the given language.
func AppDir(lang validate.AppLanguage) (string, bool) {
	switch lang {
	case validate.LangPython:
		return AppsPythonDir, true
	case validate.LangLua:
		return AppsLuaDir, true
	default:
		return "", false
	}
}
