package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"acmm/internal/assets"
	"acmm/internal/finder"
)

func newFindCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "find PATH",
		Short: "Show the content a directory or archive would install",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			m, err := ctx.manager()
			if err != nil {
				return err
			}
			src := newUnpacker(cfg, cmd.ErrOrStderr(), ctx.log())
			defer src.cleanup()

			dir, err := src.resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			result, err := m.Find(cmd.Context(), dir)
			if err != nil {
				return err
			}

			if ctx.JSONMode() {
				return writeJSON(cmd, newFindView(result))
			}
			renderFindResult(cmd.OutOrStdout(), result, shouldColorize(cmd.OutOrStdout()))
			return nil
		},
	}
}

type findView struct {
	Assets  []assetView   `json:"assets"`
	Skipped []skippedView `json:"skipped"`
	Errors  []string      `json:"errors,omitempty"`
}

type skippedView struct {
	Kind   assets.Kind `json:"kind"`
	Path   string      `json:"path"`
	Reason string      `json:"reason"`
}

func newFindView(result finder.Result) findView {
	view := findView{Assets: []assetView{}, Skipped: []skippedView{}}
	for _, a := range result.Assets() {
		view.Assets = append(view.Assets, newAssetView(a, true))
	}
	for _, s := range result.Skipped {
		view.Skipped = append(view.Skipped, skippedView{Kind: s.Kind, Path: s.Path, Reason: s.Err.Error()})
	}
	for _, e := range result.Errors {
		view.Errors = append(view.Errors, e.Error())
	}
	return view
}

func renderFindResult(out io.Writer, result finder.Result, colorize bool) {
	if result.Count() == 0 {
		fmt.Fprintln(out, "No installable content found")
	} else {
		fmt.Fprint(out, assetTable(result.Assets(), true, colorize))
	}
	for _, s := range result.Skipped {
		fmt.Fprintln(out, renderStatusLine("Skipped "+s.Kind.String(), statusWarn, s.Path, colorize))
	}
	for _, e := range result.Errors {
		fmt.Fprintln(out, renderStatusLine("Scan error", statusError, e.Error(), colorize))
	}
}
