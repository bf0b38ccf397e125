package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeInstall()
	c.normalizeFinder()
	c.normalizeOfficial()
	c.normalizeCSP()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.GameDir) == "" {
		if value, ok := os.LookupEnv("ACMM_GAME_DIR"); ok {
			c.Paths.GameDir = value
		}
	}
	if strings.TrimSpace(c.Paths.SteamDir) == "" {
		if value, ok := os.LookupEnv("ACMM_STEAM_DIR"); ok {
			c.Paths.SteamDir = value
		}
	}
	if strings.TrimSpace(c.Paths.StagingDir) == "" {
		c.Paths.StagingDir = defaultStagingDir
	}
	if strings.TrimSpace(c.Paths.TrashDir) == "" {
		c.Paths.TrashDir = defaultTrashDir
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}

	fields := []struct {
		name  string
		value *string
	}{
		{"paths.game_dir", &c.Paths.GameDir},
		{"paths.steam_dir", &c.Paths.SteamDir},
		{"paths.staging_dir", &c.Paths.StagingDir},
		{"paths.trash_dir", &c.Paths.TrashDir},
		{"paths.state_dir", &c.Paths.StateDir},
	}
	for _, field := range fields {
		expanded, err := expandPath(strings.TrimSpace(*field.value))
		if err != nil {
			return fmt.Errorf("%s: %w", field.name, err)
		}
		*field.value = expanded
	}
	return nil
}

func (c *Config) normalizeInstall() {
	c.Install.Method = strings.ToLower(strings.TrimSpace(c.Install.Method))
	if c.Install.Method == "" {
		c.Install.Method = MethodUpdate
	}
	c.Install.Removal = strings.ToLower(strings.TrimSpace(c.Install.Removal))
	if c.Install.Removal == "" {
		c.Install.Removal = RemovalTrash
	}
	if c.Install.StagingMaxAgeHours == 0 {
		c.Install.StagingMaxAgeHours = defaultStagingMaxAgeHours
	}
}

func (c *Config) normalizeFinder() {
	c.Finder.PPFilterMode = strings.ToLower(strings.TrimSpace(c.Finder.PPFilterMode))
	if c.Finder.PPFilterMode == "" {
		c.Finder.PPFilterMode = PPFilterPermissive
	}
}

func (c *Config) normalizeOfficial() {
	for _, list := range []*[]string{&c.Official.Cars, &c.Official.Tracks, &c.Official.Apps, &c.Official.PPFilters, &c.Official.Weather} {
		cleaned := (*list)[:0]
		for _, id := range *list {
			if id = strings.TrimSpace(id); id != "" {
				cleaned = append(cleaned, id)
			}
		}
		*list = cleaned
	}
}

func (c *Config) normalizeCSP() {
	c.CSP.BaseURL = strings.TrimSpace(c.CSP.BaseURL)
	if c.CSP.BaseURL == "" {
		c.CSP.BaseURL = defaultCSPBaseURL
	}
	c.CSP.StartVersion = strings.TrimPrefix(strings.TrimSpace(c.CSP.StartVersion), "v")
	if c.CSP.StartVersion == "" {
		c.CSP.StartVersion = defaultCSPStartVersion
	}
	if c.CSP.MaxMisses == 0 {
		c.CSP.MaxMisses = defaultCSPMaxMisses
	}
	if c.CSP.TimeoutSeconds == 0 {
		c.CSP.TimeoutSeconds = defaultCSPTimeoutSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
