package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"acmm/internal/assets"
	"acmm/internal/csp"
	"acmm/internal/failure"
	"acmm/internal/installer"
	"acmm/internal/staging"
)

func newCSPCommand(ctx *commandContext) *cobra.Command {
	cspCmd := &cobra.Command{
		Use:   "csp",
		Short: "Manage the Custom Shaders Patch",
	}

	cspCmd.AddCommand(newCSPInfoCommand(ctx))
	cspCmd.AddCommand(newCSPVersionsCommand(ctx))
	cspCmd.AddCommand(newCSPInstallCommand(ctx))
	cspCmd.AddCommand(newCSPUninstallCommand(ctx))

	return cspCmd
}

type cspInfoView struct {
	Installed   bool   `json:"installed"`
	Version     string `json:"version,omitempty"`
	Build       string `json:"build,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	SizeBytes   int64  `json:"size_bytes,omitempty"`
}

func newCSPInfoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the installed shaders patch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := ctx.manager()
			if err != nil {
				return err
			}
			view := cspInfoView{}
			patch, err := m.FetchCSP()
			switch {
			case errors.Is(err, failure.ErrNotFound):
			case err != nil:
				return err
			default:
				view.Installed = true
				view.Version = patch.CSPVersion()
				view.Build = patch.CSPBuild()
				view.SizeBytes, _ = patch.Size()
				if info, err := patch.UIInfo(); err == nil {
					view.Description, _ = info["description"].(string)
					view.URL, _ = info["url"].(string)
				}
			}

			if ctx.JSONMode() {
				return writeJSON(cmd, view)
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			if !view.Installed {
				fmt.Fprintln(out, renderStatusLine("Shaders patch", statusWarn, "not installed", colorize))
				return nil
			}
			fmt.Fprintln(out, renderStatusLine("Shaders patch", statusOK, "v"+view.Version, colorize))
			if view.Build != "" {
				fmt.Fprintln(out, renderStatusLine("Build", statusInfo, view.Build, colorize))
			}
			fmt.Fprintln(out, renderStatusLine("Size", statusInfo, humanize.IBytes(uint64(view.SizeBytes)), colorize))
			if view.Description != "" {
				fmt.Fprintln(out, renderStatusLine("Description", statusInfo, view.Description, colorize))
			}
			if view.URL != "" {
				fmt.Fprintln(out, renderStatusLine("URL", statusInfo, view.URL, colorize))
			}
			return nil
		},
	}
}

func newCSPVersionsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "List published shaders patch versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			prober, err := csp.NewProber(cfg.CSP, nil, ctx.log())
			if err != nil {
				return err
			}
			releases, err := prober.Versions(cmd.Context())
			if err != nil {
				return err
			}

			if ctx.JSONMode() {
				type releaseView struct {
					Version     string `json:"version"`
					DownloadURL string `json:"download_url"`
				}
				views := make([]releaseView, 0, len(releases))
				for _, r := range releases {
					views = append(views, releaseView{Version: r.Version.String(), DownloadURL: r.DownloadURL})
				}
				return writeJSON(cmd, views)
			}
			out := cmd.OutOrStdout()
			if len(releases) == 0 {
				fmt.Fprintf(out, "No versions found from %s\n", cfg.CSP.StartVersion)
				return nil
			}
			rows := make([][]string, 0, len(releases))
			for _, r := range releases {
				rows = append(rows, []string{r.Version.String(), r.DownloadURL})
			}
			fmt.Fprint(out, renderTable([]string{"Version", "Download"}, rows, nil, nil))
			return nil
		},
	}
}

func newCSPInstallCommand(ctx *commandContext) *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "install [VERSION]",
		Short: "Download and install a shaders patch version (latest by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			m, err := ctx.manager()
			if err != nil {
				return err
			}
			runCtx := cmd.Context()
			prober, err := csp.NewProber(cfg.CSP, nil, ctx.log())
			if err != nil {
				return err
			}

			var release csp.Release
			if len(args) == 1 {
				v, err := csp.ParseVersion(strings.TrimPrefix(strings.TrimSpace(args[0]), "v"))
				if err != nil {
					return err
				}
				known, err := prober.Known(runCtx, v)
				if err != nil {
					return err
				}
				if !known {
					return fmt.Errorf("shaders patch %s is not published", v)
				}
				release = csp.Release{Version: v, DownloadURL: prober.DownloadURL(v)}
			} else {
				release, err = prober.Latest(runCtx)
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			if current, err := m.FetchCSP(); err == nil {
				fmt.Fprintln(out, renderStatusLine("Installed", statusInfo, "v"+current.CSPVersion(), colorize))
			}
			fmt.Fprintln(out, renderStatusLine("Selected", statusInfo, "v"+release.Version.String(), colorize))
			if !assumeYes {
				ok, err := confirm(cmd, fmt.Sprintf("Install shaders patch %s into %s?", release.Version, m.Root()))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, "Nothing installed")
					return nil
				}
			}

			ws, err := staging.NewWorkspace(cfg.Paths.StagingDir, "csp-"+release.Version.String())
			if err != nil {
				return err
			}
			defer ws.Remove()

			archivePath := filepath.Join(ws.Path, "csp-"+release.Version.String()+".zip")
			bar := newByteProgress(cmd.ErrOrStderr(), -1, "Downloading "+release.Version.String())
			err = csp.Download(runCtx, nil, release.DownloadURL, archivePath, func(done, _ int64) { bar.set(done) })
			bar.finish()
			if err != nil {
				return err
			}

			src := newUnpacker(cfg, cmd.ErrOrStderr(), ctx.log())
			defer src.cleanup()
			dir, err := src.resolve(runCtx, archivePath)
			if err != nil {
				return err
			}
			result, err := m.Find(runCtx, dir)
			if err != nil {
				return err
			}
			var patch *assets.Asset
			for _, a := range result.Assets() {
				if a.Kind() == assets.KindCSP {
					patch = a
					break
				}
			}
			if patch == nil {
				return fmt.Errorf("download of %s does not contain a shaders patch", release.Version)
			}

			report, err := m.InstallAll(runCtx, []*assets.Asset{patch}, installer.Update, nil)
			if err != nil {
				return err
			}
			return finishBatch(cmd, ctx, "Installed", report, colorize)
		},
	}
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func newCSPUninstallCommand(ctx *commandContext) *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove dwrite.dll and extension/ from the game directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := ctx.manager()
			if err != nil {
				return err
			}
			patch, err := m.FetchCSP()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !assumeYes {
				ok, err := confirm(cmd, fmt.Sprintf("Uninstall shaders patch v%s?", patch.CSPVersion()))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, "Nothing removed")
					return nil
				}
			}
			if err := m.UninstallCSP(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(out, "Removed shaders patch v%s\n", patch.CSPVersion())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
