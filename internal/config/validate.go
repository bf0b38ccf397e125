package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateInstall(); err != nil {
		return err
	}
	if err := c.validateFinder(); err != nil {
		return err
	}
	if err := c.validateCSP(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateInstall() error {
	switch c.Install.Method {
	case MethodUpdate, MethodClean:
	default:
		return fmt.Errorf("install.method must be %q or %q, got %q", MethodUpdate, MethodClean, c.Install.Method)
	}
	switch c.Install.Removal {
	case RemovalTrash, RemovalDelete:
	default:
		return fmt.Errorf("install.removal must be %q or %q, got %q", RemovalTrash, RemovalDelete, c.Install.Removal)
	}
	if c.Install.MinFreeBytes < 0 {
		return errors.New("install.min_free_bytes must be zero or positive")
	}
	if c.Install.StagingMaxAgeHours < 0 {
		return errors.New("install.staging_max_age_hours must be positive")
	}
	return nil
}

func (c *Config) validateFinder() error {
	switch c.Finder.PPFilterMode {
	case PPFilterPermissive, PPFilterConservative:
		return nil
	default:
		return fmt.Errorf("finder.ppfilter_mode must be %q or %q, got %q", PPFilterPermissive, PPFilterConservative, c.Finder.PPFilterMode)
	}
}

func (c *Config) validateCSP() error {
	parsed, err := url.Parse(c.CSP.BaseURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("csp.base_url must be an http(s) URL, got %q", c.CSP.BaseURL)
	}
	if err := validateVersion(c.CSP.StartVersion); err != nil {
		return fmt.Errorf("csp.start_version: %w", err)
	}
	if c.CSP.MaxMisses < 1 {
		return errors.New("csp.max_misses must be at least 1")
	}
	if c.CSP.TimeoutSeconds < 1 {
		return errors.New("csp.timeout_seconds must be positive")
	}
	return nil
}

func validateVersion(value string) error {
	parts := strings.Split(value, ".")
	if len(parts) != 3 {
		return fmt.Errorf("expected major.minor.patch, got %q", value)
	}
	for _, part := range parts {
		if n, err := strconv.Atoi(part); err != nil || n < 0 {
			return fmt.Errorf("invalid version component %q", part)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}
