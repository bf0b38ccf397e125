package validate

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"acmm/internal/fileutil"
)

// AppLanguage identifies how an in-game app is implemented.
type AppLanguage int

const (
	LangNone AppLanguage = iota
	LangPython
	LangLua
)

func (l AppLanguage) String() string {
	switch l {
	case LangPython:
		return "python"
	case LangLua:
		return "lua"
	default:
		return "none"
	}
}

var carEntries = []Entry{
	File("collider.kn5"),
	File("driver_base_pos.knh"),
	File("tyre_0_shadow.png"),
	File("tyre_1_shadow.png"),
	File("tyre_2_shadow.png"),
	File("tyre_3_shadow.png"),
	Dir("ui"),
	Dir("sfx"),
}

// IsCar requires the car model files, shadows, ui and sfx directories and
// either a packed data.acd or an unpacked data directory.
func IsCar(path string) bool {
	if !Matches(path, File("data.acd")) && !Matches(path, Dir("data")) {
		return false
	}
	return Matches(path, carEntries...)
}

// IsTrack requires <basename>.kn5 and a ui directory. Layouts are checked
// separately with IsTrackLayout.
func IsTrack(path string) bool {
	name := filepath.Base(path)
	return Matches(path, File(name+".kn5"), Dir("ui"))
}

// IsTrackLayout checks both halves of a layout: map.png and data/ inside the
// layout directory, and ui_track.json, preview.png and outline.png under
// <track>/ui/<layout>.
func IsTrackLayout(path string) bool {
	if !Matches(path, File("map.png"), Dir("data")) {
		return false
	}
	name := filepath.Base(path)
	return Matches(filepath.Dir(path),
		Dir("ui", Dir(name, File("ui_track.json"), File("preview.png"), File("outline.png"))),
	)
}

// IsCarSkin requires preview.jpg and livery.png directly inside the skin.
func IsCarSkin(path string) bool {
	return Matches(path, File("preview.jpg"), File("livery.png"))
}

// IsPPFilter requires an .ini file whose text carries both the [ABOUT]
// section marker and the YEBIS post-processing marker.
func IsPPFilter(path string) bool {
	if !strings.EqualFold(filepath.Ext(path), ".ini") || !fileutil.IsFile(path) {
		return false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return bytes.Contains(data, []byte("[ABOUT]")) && bytes.Contains(data, []byte("YEBIS"))
}

// IsWeather requires a weather.ini file.
func IsWeather(path string) bool {
	return Matches(path, File("weather.ini"))
}

// DetectApp returns the language of the app rooted at path, or LangNone.
// Python wins when both signatures are present.
func DetectApp(path string) AppLanguage {
	name := filepath.Base(path)
	switch {
	case Matches(path, File(name+".py")):
		return LangPython
	case Matches(path, File(name+".lua"), File("manifest.ini"), File("icon.png")):
		return LangLua
	default:
		return LangNone
	}
}

// IsApp reports whether path is a Python or Lua app.
func IsApp(path string) bool {
	return DetectApp(path) != LangNone
}

// IsCSP requires dwrite.dll next to an extension directory.
func IsCSP(path string) bool {
	return Matches(path, File("dwrite.dll"), Dir("extension"))
}
