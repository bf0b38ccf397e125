package steam

import (
	"errors"
	"path/filepath"
	"testing"

	"acmm/internal/failure"
	"acmm/internal/testsupport"
)

func writeLibraryFolders(t *testing.T, root string, body string) {
	t.Helper()
	testsupport.WriteText(t, filepath.Join(root, "config", "libraryfolders.vdf"), body)
}

func TestFindGameDirFromManifest(t *testing.T) {
	root := t.TempDir()
	library := filepath.Join(t.TempDir(), "games")
	writeLibraryFolders(t, root, `"libraryfolders"
{
	"0"
	{
		"path"		"`+root+`"
		"apps"
		{
			"228980"		"0"
		}
	}
	"1"
	{
		"path"		"`+library+`"
		"apps"
		{
			"244210"		"1234"
		}
	}
}
`)
	testsupport.WriteText(t, filepath.Join(library, "steamapps", "appmanifest_244210.acf"), `"AppState"
{
	"appid"		"244210"
	"name"		"Assetto Corsa"
	"installdir"		"assettocorsa_custom"
}
`)

	dir, err := FindGameDir(root)
	if err != nil {
		t.Fatalf("FindGameDir: %v", err)
	}
	want := filepath.Join(library, "steamapps", "common", "assettocorsa_custom")
	if dir != want {
		t.Fatalf("got %q want %q", dir, want)
	}
}

func TestFindGameDirWithoutManifestUsesDefaultInstallDir(t *testing.T) {
	root := t.TempDir()
	writeLibraryFolders(t, root, `"libraryfolders"
{
	"0"
	{
		"path"		"`+root+`"
		"apps"
		{
			"244210"		"1"
		}
	}
}
`)
	dir, err := FindGameDir(root)
	if err != nil {
		t.Fatalf("FindGameDir: %v", err)
	}
	if dir != filepath.Join(root, "steamapps", "common", "assettocorsa") {
		t.Fatalf("unexpected dir %q", dir)
	}
}

func TestFindGameDirNotInstalled(t *testing.T) {
	root := t.TempDir()
	writeLibraryFolders(t, root, `"libraryfolders"
{
	"0"
	{
		"path"		"`+root+`"
		"apps"
		{
		}
	}
}
`)
	if _, err := FindGameDir(root); !errors.Is(err, failure.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLibrariesWithoutFileFallsBackToRoot(t *testing.T) {
	root := t.TempDir()
	libs, err := Libraries(root)
	if err != nil {
		t.Fatalf("Libraries: %v", err)
	}
	if len(libs) != 1 || libs[0].Path != root {
		t.Fatalf("unexpected libraries: %+v", libs)
	}
	testsupport.MkdirAll(t, filepath.Join(root, "steamapps", "common", "assettocorsa"))
	dir, err := FindGameDir(root)
	if err != nil {
		t.Fatalf("FindGameDir: %v", err)
	}
	if filepath.Base(dir) != "assettocorsa" {
		t.Fatalf("unexpected dir %q", dir)
	}
}

func TestFindRoot(t *testing.T) {
	dir := t.TempDir()
	got, err := FindRoot(dir)
	if err != nil || got != dir {
		t.Fatalf("FindRoot(%q) = %q, %v", dir, got, err)
	}
	if _, err := FindRoot(filepath.Join(dir, "missing")); !errors.Is(err, failure.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
