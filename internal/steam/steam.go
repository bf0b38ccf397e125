package steam

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/andygrunwald/vdf"

	"acmm/internal/failure"
	"acmm/internal/fileutil"
)

// AppID is the Steam application id of the game.
const AppID = 244210

const defaultInstallDir = "assettocorsa"

// CandidateRoots returns the Steam roots probed when none is configured, in
// order of preference.
func CandidateRoots() []string {
	var roots []string
	if home, err := os.UserHomeDir(); err == nil {
		roots = append(roots,
			filepath.Join(home, ".local", "share", "Steam"),
			filepath.Join(home, ".var", "app", "com.valvesoftware.Steam", "data", "Steam"),
			filepath.Join(home, ".steam", "steam"),
		)
	}
	roots = append(roots,
		filepath.FromSlash("C:/Program Files (x86)/Steam"),
		filepath.FromSlash("C:/Program Files/Steam"),
	)
	return roots
}

// FindRoot returns configured when set, else the first candidate root that
// exists.
func FindRoot(configured string) (string, error) {
	if configured != "" {
		if !fileutil.IsDir(configured) {
			return "", failure.Wrap(failure.ErrConfiguration, "steam", "find root", fmt.Sprintf("steam_dir %s is not a directory", configured), nil)
		}
		return configured, nil
	}
	for _, root := range CandidateRoots() {
		if fileutil.IsDir(root) {
			return root, nil
		}
	}
	return "", failure.Wrap(failure.ErrNotFound, "steam", "find root", "no Steam installation found; set paths.steam_dir or paths.game_dir", nil)
}

// FindGameDir resolves the game installation under the Steam root.
func FindGameDir(steamRoot string) (string, error) {
	libraries, err := Libraries(steamRoot)
	if err != nil {
		return "", err
	}
	appKey := strconv.Itoa(AppID)
	for _, lib := range libraries {
		if _, ok := lib.Apps[appKey]; !ok {
			continue
		}
		steamApps := filepath.Join(lib.Path, "steamapps")
		installDir := defaultInstallDir
		if manifest, err := ReadAppManifest(steamApps, AppID); err == nil && manifest.InstallDir != "" {
			installDir = manifest.InstallDir
		}
		return filepath.Join(steamApps, "common", installDir), nil
	}
	// Older layouts without an apps table: look for the install directly.
	for _, lib := range libraries {
		candidate := filepath.Join(lib.Path, "steamapps", "common", defaultInstallDir)
		if fileutil.IsDir(candidate) {
			return candidate, nil
		}
	}
	return "", failure.Wrap(failure.ErrNotFound, "steam", "find game", fmt.Sprintf("app %d not found in Steam libraries under %s", AppID, steamRoot), nil)
}

// Library is one entry of libraryfolders.vdf.
type Library struct {
	Path string
	Apps map[string]struct{}
}

// Libraries parses the library list of a Steam root. The root itself is
// always included as a library when the file lists none.
func Libraries(steamRoot string) ([]Library, error) {
	var data map[string]any
	var lastErr error
	for _, rel := range []string{"config/libraryfolders.vdf", "steamapps/libraryfolders.vdf"} {
		parsed, err := parseVDF(filepath.Join(steamRoot, filepath.FromSlash(rel)))
		if err != nil {
			lastErr = err
			continue
		}
		data = parsed
		break
	}
	if data == nil {
		if errors.Is(lastErr, os.ErrNotExist) {
			return []Library{{Path: steamRoot}}, nil
		}
		return nil, fmt.Errorf("steam: read libraryfolders: %w", lastErr)
	}

	folders, _ := data["libraryfolders"].(map[string]any)
	libraries := make([]Library, 0, len(folders))
	// Numeric keys keep the Steam ordering stable.
	for i := 0; i < len(folders)+1; i++ {
		raw, ok := folders[strconv.Itoa(i)]
		if !ok {
			continue
		}
		if lib, ok := parseLibrary(raw); ok {
			libraries = append(libraries, lib)
		}
	}
	if len(libraries) == 0 {
		libraries = append(libraries, Library{Path: steamRoot})
	}
	return libraries, nil
}

func parseLibrary(raw any) (Library, bool) {
	switch v := raw.(type) {
	case string:
		// Legacy format: "1" "/path/to/library"
		return Library{Path: v}, true
	case map[string]any:
		path, ok := v["path"].(string)
		if !ok || path == "" {
			return Library{}, false
		}
		lib := Library{Path: path, Apps: map[string]struct{}{}}
		if apps, ok := v["apps"].(map[string]any); ok {
			for id := range apps {
				lib.Apps[id] = struct{}{}
			}
		}
		return lib, true
	default:
		return Library{}, false
	}
}

// AppManifest holds the fields of appmanifest_<id>.acf acmm needs.
type AppManifest struct {
	AppID      int
	Name       string
	InstallDir string
}

// ReadAppManifest parses steamapps/appmanifest_<appID>.acf.
func ReadAppManifest(steamAppsDir string, appID int) (AppManifest, error) {
	data, err := parseVDF(filepath.Join(steamAppsDir, fmt.Sprintf("appmanifest_%d.acf", appID)))
	if err != nil {
		return AppManifest{}, fmt.Errorf("steam: read app manifest: %w", err)
	}
	state, ok := data["AppState"].(map[string]any)
	if !ok {
		return AppManifest{}, fmt.Errorf("steam: app manifest %d has no AppState", appID)
	}
	name, _ := state["name"].(string)
	installDir, _ := state["installdir"].(string)
	return AppManifest{AppID: appID, Name: name, InstallDir: installDir}, nil
}

func parseVDF(path string) (map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	parsed, err := vdf.NewParser(f).Parse()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return parsed, nil
}
