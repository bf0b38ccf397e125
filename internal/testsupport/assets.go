package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// CanonicalDirs lists the per-kind directories every game root carries.
var CanonicalDirs = []string{
	"content/cars",
	"content/tracks",
	"system/cfg/ppfilters",
	"content/weather",
	"apps/python",
	"apps/lua",
}

// NewGameRoot creates a temp directory laid out like a game installation.
func NewGameRoot(t testing.TB) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "assettocorsa")
	for _, dir := range CanonicalDirs {
		MkdirAll(t, filepath.Join(root, filepath.FromSlash(dir)))
	}
	MkdirAll(t, filepath.Join(root, "content", "gui", "NationFlags"))
	return root
}

// MkdirAll creates path and its parents.
func MkdirAll(t testing.TB, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}

// WriteText writes content to path, creating parents.
func WriteText(t testing.TB, path, content string) {
	t.Helper()
	MkdirAll(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// MakeCar writes a structurally valid car named id under parent and returns
// its root. uiJSON is written to ui/ui_car.json when non-empty.
func MakeCar(t testing.TB, parent, id, uiJSON string) string {
	t.Helper()
	root := filepath.Join(parent, id)
	for _, name := range []string{
		"collider.kn5", "driver_base_pos.knh",
		"tyre_0_shadow.png", "tyre_1_shadow.png", "tyre_2_shadow.png", "tyre_3_shadow.png",
		"data.acd",
	} {
		WriteFile(t, filepath.Join(root, name), 16)
	}
	MkdirAll(t, filepath.Join(root, "sfx"))
	MkdirAll(t, filepath.Join(root, "ui"))
	if uiJSON != "" {
		WriteText(t, filepath.Join(root, "ui", "ui_car.json"), uiJSON)
	}
	return root
}

// MakeSkin writes a valid skin under <car>/skins/<id>.
func MakeSkin(t testing.TB, car, id string) string {
	t.Helper()
	root := filepath.Join(car, "skins", id)
	WriteFile(t, filepath.Join(root, "preview.jpg"), 8)
	WriteFile(t, filepath.Join(root, "livery.png"), 8)
	return root
}

// MakeTrack writes a valid single-layout track under parent.
func MakeTrack(t testing.TB, parent, id, uiJSON string) string {
	t.Helper()
	root := filepath.Join(parent, id)
	WriteFile(t, filepath.Join(root, id+".kn5"), 32)
	WriteFile(t, filepath.Join(root, "map.png"), 8)
	MkdirAll(t, filepath.Join(root, "data"))
	MkdirAll(t, filepath.Join(root, "ui"))
	if uiJSON != "" {
		WriteText(t, filepath.Join(root, "ui", "ui_track.json"), uiJSON)
	}
	return root
}

// MakeLayout writes a complete layout <track>/<id> with its ui half under
// <track>/ui/<id>.
func MakeLayout(t testing.TB, track, id, uiJSON string) string {
	t.Helper()
	root := filepath.Join(track, id)
	WriteFile(t, filepath.Join(root, "map.png"), 8)
	MkdirAll(t, filepath.Join(root, "data"))
	uiDir := filepath.Join(track, "ui", id)
	if uiJSON == "" {
		uiJSON = `{"name": "` + id + `"}`
	}
	WriteText(t, filepath.Join(uiDir, "ui_track.json"), uiJSON)
	WriteFile(t, filepath.Join(uiDir, "preview.png"), 8)
	WriteFile(t, filepath.Join(uiDir, "outline.png"), 8)
	return root
}

// MakePPFilter writes a post-processing filter file <dir>/<id>.ini.
func MakePPFilter(t testing.TB, dir, id string) string {
	t.Helper()
	path := filepath.Join(dir, id+".ini")
	WriteText(t, path, "[ABOUT]\nAUTHOR=Someone\nVERSION=1.0\n\n[YEBIS]\nENABLED=1\n\n[COLOR]\nSATURATION=1.0\n")
	return path
}

// MakeWeather writes a weather preset with the given weather.ini body.
func MakeWeather(t testing.TB, parent, id, ini string) string {
	t.Helper()
	root := filepath.Join(parent, id)
	if ini == "" {
		ini = "[LAUNCHER]\nNAME=" + id + "\n"
	}
	WriteText(t, filepath.Join(root, "weather.ini"), ini)
	return root
}

// MakePythonApp writes <parent>/<id>/<id>.py.
func MakePythonApp(t testing.TB, parent, id string) string {
	t.Helper()
	root := filepath.Join(parent, id)
	WriteText(t, filepath.Join(root, id+".py"), "import ac\n")
	return root
}

// MakeLuaApp writes a Lua app with its manifest and icon.
func MakeLuaApp(t testing.TB, parent, id, manifest string) string {
	t.Helper()
	root := filepath.Join(parent, id)
	WriteText(t, filepath.Join(root, id+".lua"), "function script.update(dt) end\n")
	if manifest == "" {
		manifest = "[ABOUT]\nNAME = " + id + "\n"
	}
	WriteText(t, filepath.Join(root, "manifest.ini"), manifest)
	WriteFile(t, filepath.Join(root, "icon.png"), 8)
	return root
}

// MakeCSP writes dwrite.dll and an extension directory with a manifest
// declaring version under dir.
func MakeCSP(t testing.TB, dir, version string) string {
	t.Helper()
	WriteFile(t, filepath.Join(dir, "dwrite.dll"), 64)
	manifest := "[ℹ]\nDESCRIPTION = Shaders patch\nURL = https://example.invalid/plan\n\n[VERSION]\nSHADERS_PATCH = " + version + "\nSHADERS_PATCH_BUILD = 2651\n"
	WriteText(t, filepath.Join(dir, "extension", "config", "data_manifest.ini"), manifest)
	WriteText(t, filepath.Join(dir, "extension", "config", "data_credits.txt"), "[b]Thanks[/b] everyone")
	return dir
}
