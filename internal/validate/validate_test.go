package validate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"acmm/internal/testsupport"
	"acmm/internal/validate"
)

func TestMatchesNestedEntries(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteText(t, filepath.Join(dir, "UI", "Track", "UI_Track.json"), "{}")

	if !validate.Matches(dir, validate.Dir("ui", validate.Dir("track", validate.File("ui_track.json")))) {
		t.Fatal("expected nested case-insensitive match")
	}
	if validate.Matches(dir, validate.File("ui")) {
		t.Fatal("a directory must not satisfy a file entry")
	}
	if validate.Matches(filepath.Join(dir, "missing")) {
		t.Fatal("missing root must not match")
	}
}

func TestIsCar(t *testing.T) {
	root := testsupport.MakeCar(t, t.TempDir(), "rt_ferrari", "")
	if !validate.IsCar(root) {
		t.Fatal("expected valid car")
	}
}

func TestIsCarAcceptsDataDirectory(t *testing.T) {
	root := testsupport.MakeCar(t, t.TempDir(), "car", "")
	if err := os.Remove(filepath.Join(root, "data.acd")); err != nil {
		t.Fatal(err)
	}
	if validate.IsCar(root) {
		t.Fatal("car without data.acd or data/ must be invalid")
	}
	testsupport.MkdirAll(t, filepath.Join(root, "data"))
	if !validate.IsCar(root) {
		t.Fatal("data directory should satisfy the data requirement")
	}
}

func TestIsCarIgnoresCase(t *testing.T) {
	root := testsupport.MakeCar(t, t.TempDir(), "car", "")
	renames := map[string]string{
		"collider.kn5":        "COLLIDER.KN5",
		"driver_base_pos.knh": "Driver_Base_Pos.KNH",
		"tyre_2_shadow.png":   "Tyre_2_Shadow.PNG",
		"data.acd":            "DATA.ACD",
		"ui":                  "UI",
		"sfx":                 "Sfx",
	}
	for from, to := range renames {
		if err := os.Rename(filepath.Join(root, from), filepath.Join(root, to)); err != nil {
			t.Fatal(err)
		}
	}
	if !validate.IsCar(root) {
		t.Fatal("expected case permutations to validate")
	}
}

func TestIsCarMissingAnyRequiredEntry(t *testing.T) {
	required := []string{
		"collider.kn5", "driver_base_pos.knh",
		"tyre_0_shadow.png", "tyre_1_shadow.png", "tyre_2_shadow.png", "tyre_3_shadow.png",
		"ui", "sfx",
	}
	for _, name := range required {
		t.Run(name, func(t *testing.T) {
			root := testsupport.MakeCar(t, t.TempDir(), "car", "")
			if err := os.RemoveAll(filepath.Join(root, name)); err != nil {
				t.Fatal(err)
			}
			if validate.IsCar(root) {
				t.Fatalf("car without %s must be invalid", name)
			}
		})
	}
}

func TestIsTrack(t *testing.T) {
	root := testsupport.MakeTrack(t, t.TempDir(), "ks_monza", "")
	if !validate.IsTrack(root) {
		t.Fatal("expected valid track")
	}
	if err := os.Rename(filepath.Join(root, "ks_monza.kn5"), filepath.Join(root, "other.kn5")); err != nil {
		t.Fatal(err)
	}
	if validate.IsTrack(root) {
		t.Fatal("track kn5 must be named after the directory")
	}
}

func TestIsTrackLayoutNeedsBothHalves(t *testing.T) {
	track := testsupport.MakeTrack(t, t.TempDir(), "big", "")
	layout := testsupport.MakeLayout(t, track, "gp", "")
	if !validate.IsTrackLayout(layout) {
		t.Fatal("expected valid layout")
	}
	if err := os.Remove(filepath.Join(track, "ui", "gp", "outline.png")); err != nil {
		t.Fatal(err)
	}
	if validate.IsTrackLayout(layout) {
		t.Fatal("layout without ui outline must be invalid")
	}
}

func TestIsCarSkin(t *testing.T) {
	car := testsupport.MakeCar(t, t.TempDir(), "car", "")
	skin := testsupport.MakeSkin(t, car, "red")
	if !validate.IsCarSkin(skin) {
		t.Fatal("expected valid skin")
	}
	if validate.IsCarSkin(filepath.Join(car, "skins")) {
		t.Fatal("skins directory is not a skin")
	}
}

func TestIsPPFilter(t *testing.T) {
	dir := t.TempDir()
	good := testsupport.MakePPFilter(t, dir, "Natural Plus")
	if !validate.IsPPFilter(good) {
		t.Fatal("expected valid filter")
	}
	noMarker := filepath.Join(dir, "plain.ini")
	testsupport.WriteText(t, noMarker, "[ABOUT]\n[DOF]\n")
	if validate.IsPPFilter(noMarker) {
		t.Fatal("filter without YEBIS marker must be invalid")
	}
	wrongExt := filepath.Join(dir, "filter.txt")
	testsupport.WriteText(t, wrongExt, "[ABOUT]\nYEBIS")
	if validate.IsPPFilter(wrongExt) {
		t.Fatal("non-ini file must be invalid")
	}
	upper := filepath.Join(dir, "LOUD.INI")
	testsupport.WriteText(t, upper, "[ABOUT]\n[YEBIS]\n")
	if !validate.IsPPFilter(upper) {
		t.Fatal("extension check should ignore case")
	}
}

func TestIsWeather(t *testing.T) {
	root := testsupport.MakeWeather(t, t.TempDir(), "sol_clear", "")
	if !validate.IsWeather(root) {
		t.Fatal("expected valid weather")
	}
}

func TestDetectApp(t *testing.T) {
	dir := t.TempDir()
	py := testsupport.MakePythonApp(t, dir, "helicorsa")
	lua := testsupport.MakeLuaApp(t, dir, "chaser", "")
	if got := validate.DetectApp(py); got != validate.LangPython {
		t.Fatalf("DetectApp(py) = %s", got)
	}
	if got := validate.DetectApp(lua); got != validate.LangLua {
		t.Fatalf("DetectApp(lua) = %s", got)
	}
	if err := os.Remove(filepath.Join(lua, "icon.png")); err != nil {
		t.Fatal(err)
	}
	if validate.IsApp(lua) {
		t.Fatal("lua app without icon must be invalid")
	}
	if !strings.EqualFold(validate.LangLua.String(), "lua") {
		t.Fatal("unexpected language label")
	}
}

func TestIsCSP(t *testing.T) {
	dir := testsupport.MakeCSP(t, t.TempDir(), "0.2.3")
	if !validate.IsCSP(dir) {
		t.Fatal("expected valid CSP root")
	}
	if err := os.Remove(filepath.Join(dir, "dwrite.dll")); err != nil {
		t.Fatal(err)
	}
	if validate.IsCSP(dir) {
		t.Fatal("CSP without dwrite.dll must be invalid")
	}
}
