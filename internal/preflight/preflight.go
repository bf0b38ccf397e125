package preflight

import (
	"context"
	"strings"

	"acmm/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes the local checks for cfg against gameRoot. Network checks
// are left to the caller.
func RunAll(_ context.Context, cfg *config.Config, gameRoot string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	if strings.TrimSpace(gameRoot) == "" {
		results = append(results, Result{Name: "Game directory", Detail: "not configured and not found in Steam libraries"})
	} else {
		results = append(results, CheckDirectoryAccess("Game directory", gameRoot))
		results = append(results, CheckGameLayout(gameRoot)...)
		results = append(results, CheckFreeSpace("Game volume", gameRoot, cfg.Install.MinFreeBytes))
	}

	results = append(results, CheckDirectoryAccess("Staging directory", cfg.Paths.StagingDir))
	results = append(results, CheckStagingLeftovers("Staging workspaces", cfg.Paths.StagingDir))
	results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir))
	if cfg.Install.Removal == config.RemovalTrash {
		results = append(results, CheckDirectoryAccess("Trash directory", cfg.Paths.TrashDir))
	}

	return results
}
