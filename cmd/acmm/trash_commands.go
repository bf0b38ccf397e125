package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"acmm/internal/trash"
)

func newTrashCommand(ctx *commandContext) *cobra.Command {
	trashCmd := &cobra.Command{
		Use:   "trash",
		Short: "Inspect content removed with the trash policy",
	}

	trashCmd.AddCommand(newTrashListCommand(ctx))
	trashCmd.AddCommand(newTrashRestoreCommand(ctx))
	trashCmd.AddCommand(newTrashEmptyCommand(ctx))

	return trashCmd
}

func (c *commandContext) trashBin() (*trash.Bin, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return trash.NewFromConfig(cfg, c.log()), nil
}

func newTrashListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List trashed content",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bin, err := ctx.trashBin()
			if err != nil {
				return err
			}
			entries, err := bin.List()
			if err != nil {
				return err
			}
			if ctx.JSONMode() {
				if entries == nil {
					entries = []trash.Entry{}
				}
				return writeJSON(cmd, entries)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Trash is empty")
				return nil
			}
			var total int64
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				total += e.SizeBytes
				rows = append(rows, []string{
					shortID(e.ID),
					e.Name,
					e.Origin,
					humanize.Time(e.TrashedAt),
					humanize.IBytes(uint64(e.SizeBytes)),
				})
			}
			fmt.Fprint(out, renderTable(
				[]string{"ID", "Name", "Origin", "Trashed", "Size"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight},
				[]string{"", fmt.Sprintf("%d entries", len(entries)), "", "", humanize.IBytes(uint64(total))},
			))
			return nil
		},
	}
}

func newTrashRestoreCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "restore ID",
		Short: "Move a trashed entry back to where it was removed from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bin, err := ctx.trashBin()
			if err != nil {
				return err
			}
			id, err := resolveTrashID(bin, args[0])
			if err != nil {
				return err
			}
			entry, err := bin.Restore(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %s to %s\n", entry.Name, entry.Origin)
			return nil
		},
	}
}

func newTrashEmptyCommand(ctx *commandContext) *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "empty",
		Short: "Permanently delete trashed content",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bin, err := ctx.trashBin()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !assumeYes {
				ok, err := confirm(cmd, "Permanently delete everything in "+bin.Root()+"?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, "Nothing deleted")
					return nil
				}
			}
			removed, err := bin.Empty(cmd.Context())
			fmt.Fprintf(out, "Deleted %d trash entries\n", removed)
			return err
		},
	}
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveTrashID expands a unique id prefix to the full entry id.
func resolveTrashID(bin *trash.Bin, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("trash id is required")
	}
	entries, err := bin.List()
	if err != nil {
		return "", err
	}
	var match string
	for _, e := range entries {
		if !strings.HasPrefix(e.ID, prefix) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("trash id %q is ambiguous", prefix)
		}
		match = e.ID
	}
	if match == "" {
		return "", fmt.Errorf("no trash entry matches %q", prefix)
	}
	return match, nil
}
