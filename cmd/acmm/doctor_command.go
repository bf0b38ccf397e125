package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"acmm/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var network bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the game directory and acmm's own directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			root, rootErr := ctx.gameDir()

			results := preflight.RunAll(cmd.Context(), cfg, root)
			if rootErr != nil {
				results[0].Detail = rootErr.Error()
			}
			if network {
				results = append(results, preflight.CheckCSPEndpoint(cmd.Context(), cfg.CSP.BaseURL))
			}

			if ctx.JSONMode() {
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				for _, line := range renderSectionHeader("acmm doctor", colorize) {
					fmt.Fprintln(out, line)
				}
				for _, r := range results {
					kind := statusOK
					if !r.Passed {
						kind = statusError
					}
					fmt.Fprintln(out, renderStatusLine(r.Name, kind, r.Detail, colorize))
				}
			}

			failed := 0
			for _, r := range results {
				if !r.Passed {
					failed++
				}
			}
			if failed > 0 {
				return errors.New(pluralChecks(failed) + " failed")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&network, "network", false, "Also check the shaders patch download endpoint")
	return cmd
}

func pluralChecks(n int) string {
	if n == 1 {
		return "1 check"
	}
	return fmt.Sprintf("%d checks", n)
}
