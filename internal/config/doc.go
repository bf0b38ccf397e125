// Package config loads, normalizes, and validates acmm configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// ACMM_GAME_DIR. The Config value is loaded once per invocation and passed
// explicitly to the components that need it.
package config
