package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"acmm/internal/assets"
	"acmm/internal/manager"
)

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	var kinds kindFlags
	var origins originFlags
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "remove TERM...",
		Short: "Remove installed content matching the given ids",
		Long: `Remove installed content whose id contains any of the given terms.

Removal follows install.removal in the configuration: "trash" keeps a copy
that "acmm trash" can restore, "delete" removes files permanently. Targets
that resolve outside the game directory are always refused.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := ctx.manager()
			if err != nil {
				return err
			}
			var list []*assets.Asset
			seen := map[string]struct{}{}
			for _, term := range args {
				found, err := m.SearchByID(cmd.Context(), term, kinds.kinds()...)
				if err != nil {
					return err
				}
				for _, a := range found {
					if _, ok := seen[a.Path()]; ok {
						continue
					}
					seen[a.Path()] = struct{}{}
					list = append(list, a)
				}
			}
			list = origins.filter(list)

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			if len(list) == 0 {
				if ctx.JSONMode() {
					return writeJSON(cmd, newReportView(manager.BatchReport{}))
				}
				fmt.Fprintln(out, "Nothing matches")
				return nil
			}
			if !ctx.JSONMode() {
				fmt.Fprint(out, assetTable(list, false, colorize))
			}
			if !assumeYes {
				ok, err := confirm(cmd, fmt.Sprintf("Remove %d item(s) (%s)?", len(list), m.Trash().Policy()))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, "Nothing removed")
					return nil
				}
			}

			report, err := m.RemoveAll(cmd.Context(), list, nil)
			if err != nil {
				return err
			}
			return finishBatch(cmd, ctx, "Removed", report, colorize)
		},
	}
	kinds.register(cmd)
	origins.register(cmd)
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
