package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"acmm/internal/assets"
	"acmm/internal/fileutil"
	"acmm/internal/installer"
	"acmm/internal/logging"
	"acmm/internal/manager"
	"acmm/internal/staging"
)

// errInterrupted is returned after a partial batch so main exits with the
// interrupt status.
var errInterrupted = fmt.Errorf("batch interrupted: %w", context.Canceled)

func newInstallCommand(ctx *commandContext) *cobra.Command {
	var clean bool
	var update bool
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "install PATH...",
		Short: "Install content from archives or directories",
		Long: `Install content from .zip archives or unpacked directories.

Each source is scanned for cars, tracks, filters, weather presets, apps and
the shaders patch regardless of how the files are nested. Found content is
listed and, after confirmation, copied into the game directory.

The install method comes from the configuration unless --clean or --update
is given. Clean replaces an existing install entirely, update overlays the
new files and keeps anything else already present.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if clean && update {
				return errors.New("--clean and --update are mutually exclusive")
			}
			method, err := installer.ParseMethod(cfg.Install.Method)
			if err != nil {
				return err
			}
			switch {
			case clean:
				method = installer.Clean
			case update:
				method = installer.Update
			}

			m, err := ctx.manager()
			if err != nil {
				return err
			}
			runCtx := cmd.Context()
			logger := ctx.log()

			maxAge := time.Duration(cfg.Install.StagingMaxAgeHours) * time.Hour
			if maxAge > 0 {
				staging.CleanStale(runCtx, cfg.Paths.StagingDir, maxAge, logger)
			}

			src := newUnpacker(cfg, cmd.ErrOrStderr(), logger)
			defer src.cleanup()

			var found []*assets.Asset
			seen := map[string]struct{}{}
			for _, arg := range args {
				dir, err := src.resolve(runCtx, arg)
				if err != nil {
					if errors.Is(err, context.Canceled) {
						return errInterrupted
					}
					return err
				}
				result, err := m.Find(runCtx, dir)
				if err != nil {
					if errors.Is(err, context.Canceled) {
						return errInterrupted
					}
					return err
				}
				for _, a := range result.Assets() {
					if _, ok := seen[a.Path()]; ok {
						continue
					}
					seen[a.Path()] = struct{}{}
					found = append(found, a)
				}
				logger.Debug("source scanned",
					logging.String(logging.FieldPath, arg),
					logging.Int("found", result.Count()),
					logging.Int("skipped", len(result.Skipped)),
				)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			if len(found) == 0 {
				if ctx.JSONMode() {
					return writeJSON(cmd, newReportView(manager.BatchReport{}))
				}
				fmt.Fprintln(out, "No installable content found")
				return nil
			}
			if !ctx.JSONMode() {
				fmt.Fprint(out, assetTable(found, true, colorize))
				fmt.Fprintln(out, renderStatusLine("Method", statusInfo, string(method), colorize))
			}
			if !assumeYes {
				ok, err := confirm(cmd, fmt.Sprintf("Install %d item(s) into %s?", len(found), m.Root()))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, "Nothing installed")
					return nil
				}
			}

			var total int64
			for _, a := range found {
				n, err := fileutil.CountFiles(a.Path())
				if err == nil {
					total += int64(n)
				}
			}
			bar := newProgress(cmd.ErrOrStderr(), total, "Installing")
			obs := &manager.Observer{
				ItemStarted: func(_, _ int, a *assets.Asset) { bar.describe("Installing " + a.ID()) },
				FileCopied:  func(string) { bar.add(1) },
			}
			report, err := m.InstallAll(runCtx, found, method, obs)
			bar.finish()
			if err != nil {
				return err
			}
			return finishBatch(cmd, ctx, "Installed", report, colorize)
		},
	}

	cmd.Flags().BoolVar(&clean, "clean", false, "Replace existing installs instead of overlaying them")
	cmd.Flags().BoolVar(&update, "update", false, "Overlay onto existing installs")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

// finishBatch prints the report and maps an interrupted batch onto
// errInterrupted.
func finishBatch(cmd *cobra.Command, ctx *commandContext, verb string, report manager.BatchReport, colorize bool) error {
	if ctx.JSONMode() {
		if err := writeJSON(cmd, newReportView(report)); err != nil {
			return err
		}
	} else {
		printReport(cmd.OutOrStdout(), verb, report, colorize)
	}
	if report.Canceled {
		return errInterrupted
	}
	if report.Failed() > 0 {
		return fmt.Errorf("%d item(s) failed", report.Failed())
	}
	return nil
}
