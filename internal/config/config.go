package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the game, Steam and working directory configuration.
type Paths struct {
	GameDir    string `toml:"game_dir"`
	SteamDir   string `toml:"steam_dir"`
	StagingDir string `toml:"staging_dir"`
	TrashDir   string `toml:"trash_dir"`
	StateDir   string `toml:"state_dir"`
}

// Install contains install and removal policy.
type Install struct {
	Method             string `toml:"method"`
	Removal            string `toml:"removal"`
	MinFreeBytes       int64  `toml:"min_free_bytes"`
	StagingMaxAgeHours int    `toml:"staging_max_age_hours"`
}

// Finder contains discovery heuristics settings.
type Finder struct {
	PPFilterMode string `toml:"ppfilter_mode"`
}

// Official lists extra content ids to treat as shipped by the game, on top
// of the built-in allowlists.
type Official struct {
	Cars      []string `toml:"cars"`
	Tracks    []string `toml:"tracks"`
	Apps      []string `toml:"apps"`
	PPFilters []string `toml:"ppfilters"`
	Weather   []string `toml:"weather"`
}

// ByCategory returns the ids keyed by asset category.
func (o Official) ByCategory() map[string][]string {
	return map[string][]string{
		"cars":      o.Cars,
		"tracks":    o.Tracks,
		"apps":      o.Apps,
		"ppfilters": o.PPFilters,
		"weather":   o.Weather,
	}
}

// CSP contains shaders patch version discovery settings.
type CSP struct {
	BaseURL        string `toml:"base_url"`
	StartVersion   string `toml:"start_version"`
	MaxMisses      int    `toml:"max_misses"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for acmm.
//
// Configuration sections:
//   - Paths: game root, Steam root and working directories
//   - Install: install method, removal policy and disk space guard
//   - Finder: discovery heuristics
//   - Official: extra official content ids
//   - CSP: shaders patch version probing
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Install  Install  `toml:"install"`
	Finder   Finder   `toml:"finder"`
	Official Official `toml:"official"`
	CSP      CSP      `toml:"csp"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("acmm.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the working directories acmm writes to.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StagingDir, c.Paths.StateDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if c.Install.Removal == RemovalTrash {
		if err := os.MkdirAll(c.Paths.TrashDir, 0o755); err != nil {
			return fmt.Errorf("create trash directory %q: %w", c.Paths.TrashDir, err)
		}
	}
	return nil
}

// LockPath returns the file used to serialize mutating commands.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "acmm.lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
