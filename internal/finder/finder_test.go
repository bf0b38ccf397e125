package finder

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"testing"

	"acmm/internal/assets"
	"acmm/internal/config"
	"acmm/internal/failure"
	"acmm/internal/testsupport"
)

func groupPaths(groups []CandidateGroup, kind assets.Kind) []string {
	for _, g := range groups {
		if g.Kind == kind {
			return g.Paths
		}
	}
	return nil
}

func assetPaths(result Result, kind assets.Kind) []string {
	var out []string
	for _, g := range result.Groups {
		if g.Kind != kind {
			continue
		}
		for _, a := range g.Assets {
			out = append(out, a.Path())
		}
	}
	return out
}

func TestFindSingleCar(t *testing.T) {
	mods := filepath.Join(t.TempDir(), "mods")
	car := testsupport.MakeCar(t, mods, "rt_ferrari", `{"name": "Ferrari"}`)

	result, err := New(Options{}).Find(context.Background(), mods)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(result.Groups) != 1 || result.Groups[0].Kind != assets.KindCar {
		t.Fatalf("unexpected groups: %+v", result.Groups)
	}
	found := result.Assets()
	if len(found) != 1 || found[0].Path() != car {
		t.Fatalf("expected car at %s, got %+v", car, found)
	}
	if got := found[0].ID(); got != "rt_ferrari" {
		t.Fatalf("id = %q", got)
	}
	if got := found[0].Origin(); got != assets.OriginMod {
		t.Fatalf("origin = %v, want mod", got)
	}
}

func TestCandidatesBroadenFilterToSiblings(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "pack", "filters")
	testsupport.WriteText(t, filepath.Join(dir, "custom.ini"), "[ABOUT]\n[DOF]\nintensity=1\n")
	for i := range 9 {
		testsupport.WriteText(t, filepath.Join(dir, fmt.Sprintf("preset_%d.ini", i)), "[GENERAL]\nvalue=1\n")
	}
	root := filepath.Dir(dir)

	groups, err := New(Options{}).Candidates(context.Background(), root)
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if got := groupPaths(groups, assets.KindPPFilter); len(got) != 10 {
		t.Fatalf("expected 10 filter candidates, got %d: %v", len(got), got)
	}

	conservative := New(Options{PPFilterMode: config.PPFilterConservative})
	groups, err = conservative.Candidates(context.Background(), root)
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	got := groupPaths(groups, assets.KindPPFilter)
	if len(got) != 1 || filepath.Base(got[0]) != "custom.ini" {
		t.Fatalf("conservative mode should keep only marker files, got %v", got)
	}
}

func TestFindSkipsFiltersFailingValidation(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "filters")
	good := testsupport.MakePPFilter(t, dir, "natural")
	testsupport.WriteText(t, filepath.Join(dir, "readme.ini"), "[NOTES]\nline=1\n")

	result, err := New(Options{}).Find(context.Background(), root)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got := assetPaths(result, assets.KindPPFilter); !slices.Equal(got, []string{good}) {
		t.Fatalf("filters = %v, want [%s]", got, good)
	}
	if len(result.Skipped) != 1 || filepath.Base(result.Skipped[0].Path) != "readme.ini" {
		t.Fatalf("expected readme.ini skipped, got %+v", result.Skipped)
	}
	if !errors.Is(result.Skipped[0].Err, failure.ErrInvalidAsset) {
		t.Fatalf("skip reason should be an invalid asset, got %v", result.Skipped[0].Err)
	}
}

func TestFindTrackWithNestedLayouts(t *testing.T) {
	root := t.TempDir()
	track := filepath.Join(root, "release", "spa")
	testsupport.WriteFile(t, filepath.Join(track, "spa.kn5"), 32)
	testsupport.MkdirAll(t, filepath.Join(track, "ui"))
	testsupport.MakeLayout(t, track, "gp", "")
	testsupport.MakeLayout(t, track, "short", "")

	result, err := New(Options{}).Find(context.Background(), root)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got := assetPaths(result, assets.KindTrack); !slices.Equal(got, []string{track}) {
		t.Fatalf("tracks = %v, want [%s]", got, track)
	}
}

func TestFindSingleLayoutTrack(t *testing.T) {
	root := t.TempDir()
	track := testsupport.MakeTrack(t, root, "drift", "")

	result, err := New(Options{}).Find(context.Background(), root)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got := assetPaths(result, assets.KindTrack); !slices.Equal(got, []string{track}) {
		t.Fatalf("tracks = %v, want [%s]", got, track)
	}
}

func TestFindWeatherRequiresCommonContainer(t *testing.T) {
	root := t.TempDir()
	clearDir := testsupport.MakeWeather(t, filepath.Join(root, "weather"), "clear", "")
	rain := testsupport.MakeWeather(t, filepath.Join(root, "weather"), "rain", "")

	result, err := New(Options{}).Find(context.Background(), root)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got := assetPaths(result, assets.KindWeather); !slices.Equal(got, []string{clearDir, rain}) {
		t.Fatalf("weather = %v", got)
	}

	scattered := t.TempDir()
	testsupport.MakeWeather(t, filepath.Join(scattered, "a"), "clear", "")
	testsupport.MakeWeather(t, filepath.Join(scattered, "b"), "rain", "")
	result, err = New(Options{}).Find(context.Background(), scattered)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got := assetPaths(result, assets.KindWeather); len(got) != 0 {
		t.Fatalf("scattered presets should be ignored, got %v", got)
	}
}

func TestFindAppsPythonBeforeLua(t *testing.T) {
	root := t.TempDir()
	lua := testsupport.MakeLuaApp(t, filepath.Join(root, "apps", "lua"), "alpha", "")
	py := testsupport.MakePythonApp(t, filepath.Join(root, "apps", "python"), "zeta")
	testsupport.WriteText(t, filepath.Join(root, "apps", "python", "helpers", "util.py"), "x = 1\n")

	result, err := New(Options{}).Find(context.Background(), root)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got := assetPaths(result, assets.KindApp); !slices.Equal(got, []string{py, lua}) {
		t.Fatalf("apps = %v, want [%s %s]", got, py, lua)
	}
}

func TestFindCSPClaimsItsTree(t *testing.T) {
	root := t.TempDir()
	csp := testsupport.MakeCSP(t, filepath.Join(root, "patch"), "0.2.3")
	testsupport.MakeLuaApp(t, filepath.Join(csp, "extension", "lua", "apps"), "tools", "")

	result, err := New(Options{}).Find(context.Background(), root)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got := assetPaths(result, assets.KindCSP); !slices.Equal(got, []string{csp}) {
		t.Fatalf("csp = %v", got)
	}
	if got := assetPaths(result, assets.KindApp); len(got) != 0 {
		t.Fatalf("apps inside the patch should be claimed, got %v", got)
	}
}

func TestFindDiscardsCandidatesInsideAcceptedRoots(t *testing.T) {
	root := t.TempDir()
	track := testsupport.MakeTrack(t, root, "spa", "")
	testsupport.MakeWeather(t, filepath.Join(track, "extension", "weather"), "fog", "")
	testsupport.WriteText(t, filepath.Join(track, "spa.py"), "import ac\n")

	groups, err := New(Options{}).Candidates(context.Background(), root)
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if len(groups) != 1 || groups[0].Kind != assets.KindTrack {
		t.Fatalf("expected only the track, got %+v", groups)
	}
	if !slices.Equal(groups[0].Paths, []string{track}) {
		t.Fatalf("track paths = %v", groups[0].Paths)
	}
}

func TestFindSeparatesSiblingsWithSharedPrefix(t *testing.T) {
	root := t.TempDir()
	a := testsupport.MakeCar(t, root, "car", "")
	b := testsupport.MakeCar(t, root, "car_extra", "")

	result, err := New(Options{}).Find(context.Background(), root)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got := assetPaths(result, assets.KindCar); !slices.Equal(got, []string{a, b}) {
		t.Fatalf("cars = %v", got)
	}
}

func TestFindIsRepeatable(t *testing.T) {
	root := t.TempDir()
	testsupport.MakeCar(t, root, "b_car", "")
	testsupport.MakeCar(t, root, "a_car", "")
	testsupport.MakeTrack(t, root, "ring", "")
	testsupport.MakeWeather(t, filepath.Join(root, "weather"), "dusk", "")

	f := New(Options{})
	first, err := f.Candidates(context.Background(), root)
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	second, err := f.Candidates(context.Background(), root)
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("group counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Kind != second[i].Kind || !slices.Equal(first[i].Paths, second[i].Paths) {
			t.Fatalf("group %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
	wantKinds := []assets.Kind{assets.KindCar, assets.KindTrack, assets.KindWeather}
	for i, g := range first {
		if g.Kind != wantKinds[i] {
			t.Fatalf("group %d kind = %v, want %v", i, g.Kind, wantKinds[i])
		}
	}
	if cars := groupPaths(first, assets.KindCar); filepath.Base(cars[0]) != "a_car" {
		t.Fatalf("cars should be in lexical order, got %v", cars)
	}
}

func TestFindEmptyTree(t *testing.T) {
	result, err := New(Options{}).Find(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if result.Count() != 0 || len(result.Groups) != 0 {
		t.Fatalf("expected nothing, got %+v", result)
	}
}

func TestFindMissingRoot(t *testing.T) {
	_, err := New(Options{}).Find(context.Background(), filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, failure.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFindHonorsCancellation(t *testing.T) {
	root := t.TempDir()
	testsupport.MakeCar(t, root, "car", "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New(Options{}).Find(ctx, root); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
