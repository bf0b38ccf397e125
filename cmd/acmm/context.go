package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"acmm/internal/config"
	"acmm/internal/logging"
	"acmm/internal/manager"
	"acmm/internal/steam"
)

type commandContext struct {
	configFlag  *string
	gameDirFlag *string
	verbose     *bool
	jsonOutput  *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag, gameDirFlag *string, verbose, jsonOutput *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		gameDirFlag: gameDirFlag,
		verbose:     verbose,
		jsonOutput:  jsonOutput,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		if c.verbose != nil && *c.verbose {
			cfg.Logging.Level = "debug"
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) JSONMode() bool {
	return c.jsonOutput != nil && *c.jsonOutput
}

// log returns the process logger, falling back to a no-op logger when
// configuration or the log file is unavailable.
func (c *commandContext) log() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// gameDir resolves the game root: flag, then config, then Steam libraries.
func (c *commandContext) gameDir() (string, error) {
	if c.gameDirFlag != nil {
		if dir := strings.TrimSpace(*c.gameDirFlag); dir != "" {
			return config.ExpandPath(dir)
		}
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	if cfg.Paths.GameDir != "" {
		return cfg.Paths.GameDir, nil
	}
	steamRoot, err := steam.FindRoot(cfg.Paths.SteamDir)
	if err != nil {
		return "", err
	}
	return steam.FindGameDir(steamRoot)
}

func (c *commandContext) manager() (*manager.Manager, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	root, err := c.gameDir()
	if err != nil {
		return nil, err
	}
	return manager.New(cfg, root, c.log())
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
