package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"acmm/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("ACMM_GAME_DIR", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantStaging := filepath.Join(tempHome, ".cache", "acmm", "staging")
	if cfg.Paths.StagingDir != wantStaging {
		t.Fatalf("unexpected staging dir: got %q want %q", cfg.Paths.StagingDir, wantStaging)
	}
	wantTrash := filepath.Join(tempHome, ".local", "share", "acmm", "trash")
	if cfg.Paths.TrashDir != wantTrash {
		t.Fatalf("unexpected trash dir: got %q want %q", cfg.Paths.TrashDir, wantTrash)
	}
	if cfg.Paths.GameDir != "" {
		t.Fatalf("expected empty game dir, got %q", cfg.Paths.GameDir)
	}
	if cfg.Install.Method != config.MethodUpdate {
		t.Fatalf("unexpected install method: %q", cfg.Install.Method)
	}
	if cfg.Install.Removal != config.RemovalTrash {
		t.Fatalf("unexpected removal policy: %q", cfg.Install.Removal)
	}
	if cfg.Finder.PPFilterMode != config.PPFilterPermissive {
		t.Fatalf("unexpected ppfilter mode: %q", cfg.Finder.PPFilterMode)
	}
	if cfg.CSP.BaseURL != config.Default().CSP.BaseURL {
		t.Fatalf("unexpected csp base url: %q", cfg.CSP.BaseURL)
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "console" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.LockPath() != filepath.Join(tempHome, ".local", "state", "acmm", "acmm.lock") {
		t.Fatalf("unexpected lock path: %q", cfg.LockPath())
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	configPath := filepath.Join(t.TempDir(), "config.toml")
	content := `
[paths]
game_dir = "~/games/assettocorsa"

[install]
method = "CLEAN"
removal = "delete"

[official]
cars = [" my_car ", ""]

[csp]
start_version = "v0.2.0"

[logging]
format = "json"
level = "DEBUG"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected custom config to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.Paths.GameDir != filepath.Join(tempHome, "games", "assettocorsa") {
		t.Fatalf("unexpected game dir: %q", cfg.Paths.GameDir)
	}
	if cfg.Install.Method != config.MethodClean {
		t.Fatalf("expected method normalized to clean, got %q", cfg.Install.Method)
	}
	if cfg.Install.Removal != config.RemovalDelete {
		t.Fatalf("unexpected removal: %q", cfg.Install.Removal)
	}
	if len(cfg.Official.Cars) != 1 || cfg.Official.Cars[0] != "my_car" {
		t.Fatalf("unexpected official cars: %#v", cfg.Official.Cars)
	}
	if got := cfg.Official.ByCategory()["cars"]; len(got) != 1 {
		t.Fatalf("unexpected ByCategory cars: %#v", got)
	}
	if cfg.CSP.StartVersion != "0.2.0" {
		t.Fatalf("expected start version without prefix, got %q", cfg.CSP.StartVersion)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging: %+v", cfg.Logging)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[paths]\nlibrary_dir = \"x\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected unknown field to be rejected")
	}
}

func TestGameDirEnvFallback(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	gameDir := filepath.Join(tempHome, "ac")
	t.Setenv("ACMM_GAME_DIR", gameDir)
	t.Chdir(t.TempDir())

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.GameDir != gameDir {
		t.Fatalf("expected game dir from env, got %q", cfg.Paths.GameDir)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "ppfilter_mode") {
		t.Fatalf("sample config missing finder section: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if !strings.Contains(cfg.Paths.StagingDir, "acmm") {
		t.Fatalf("expected staging dir to contain acmm, got %q", cfg.Paths.StagingDir)
	}
	if cfg.CSP.MaxMisses != 5 {
		t.Fatalf("unexpected sample max misses: %d", cfg.CSP.MaxMisses)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"method", func(c *config.Config) { c.Install.Method = "merge" }},
		{"removal", func(c *config.Config) { c.Install.Removal = "shred" }},
		{"free bytes", func(c *config.Config) { c.Install.MinFreeBytes = -1 }},
		{"ppfilter mode", func(c *config.Config) { c.Finder.PPFilterMode = "greedy" }},
		{"base url", func(c *config.Config) { c.CSP.BaseURL = "ftp://example.com" }},
		{"start version", func(c *config.Config) { c.CSP.StartVersion = "0.1" }},
		{"max misses", func(c *config.Config) { c.CSP.MaxMisses = 0 }},
		{"timeout", func(c *config.Config) { c.CSP.TimeoutSeconds = 0 }},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }},
		{"log level", func(c *config.Config) { c.Logging.Level = "trace" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StagingDir = filepath.Join(base, "staging")
	cfg.Paths.TrashDir = filepath.Join(base, "trash")
	cfg.Paths.StateDir = filepath.Join(base, "state")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.StagingDir, cfg.Paths.TrashDir, cfg.Paths.StateDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q: %v", dir, err)
		}
	}
}
