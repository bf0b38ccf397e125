package main

import (
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"acmm/internal/assets"
	"acmm/internal/fileutil"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var kinds kindFlags
	var origins originFlags
	var withSize bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List installed content",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := ctx.manager()
			if err != nil {
				return err
			}
			list, err := m.FetchAssets(cmd.Context(), kinds.kinds()...)
			if err != nil {
				return err
			}
			list = origins.filter(list)

			if ctx.JSONMode() {
				views := make([]assetView, 0, len(list))
				for _, a := range list {
					views = append(views, newAssetView(a, withSize))
				}
				return writeJSON(cmd, views)
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No content found")
			} else {
				fmt.Fprint(out, assetTable(list, withSize, shouldColorize(out)))
			}
			if len(kinds.kinds()) == 0 {
				if csp, err := m.FetchCSP(); err == nil {
					fmt.Fprintf(out, "Shaders patch: %s\n", csp.ID())
				}
			}
			return nil
		},
	}
	kinds.register(cmd)
	origins.register(cmd)
	cmd.Flags().BoolVar(&withSize, "size", false, "Include disk usage")
	return cmd
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var kinds kindFlags
	var origins originFlags

	cmd := &cobra.Command{
		Use:   "search TERM...",
		Short: "Find installed content by id",
		Args:  cobra.MinimumNArgs(1),
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

			if ctx.JSONMode() {
				views := make([]assetView, 0, len(list))
				for _, a := range list {
					views = append(views, newAssetView(a, false))
				}
				return writeJSON(cmd, views)
			}
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintf(out, "Nothing matches %s\n", strings.Join(args, ", "))
				return nil
			}
			fmt.Fprint(out, assetTable(list, false, shouldColorize(out)))
			return nil
		},
	}
	kinds.register(cmd)
	origins.register(cmd)
	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var kinds kindFlags

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show details of installed content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := ctx.manager()
			if err != nil {
				return err
			}
			found, err := m.SearchByID(cmd.Context(), args[0], kinds.kinds()...)
			if err != nil {
				return err
			}
			var matches []*assets.Asset
			for _, a := range found {
				if fileutil.EqualFold(a.ID(), args[0]) {
					matches = append(matches, a)
				}
			}
			if len(matches) == 0 {
				return fmt.Errorf("no installed content with id %q", args[0])
			}

			details := make([]assetDetails, 0, len(matches))
			for _, a := range matches {
				d := describeAsset(a)
				if flag, ok := m.Flag(a); ok {
					d.Flag = flag
				}
				details = append(details, d)
			}
			if ctx.JSONMode() {
				return writeJSON(cmd, details)
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for i, d := range details {
				if i > 0 {
					fmt.Fprintln(out)
				}
				renderDetails(out, d, colorize)
			}
			return nil
		},
	}
	kinds.register(cmd)
	return cmd
}

type assetDetails struct {
	assetView
	Info    map[string]any    `json:"info"`
	Media   map[string]string `json:"media,omitempty"`
	Flag    string            `json:"flag,omitempty"`
	Skins   []string          `json:"skins,omitempty"`
	Layouts []string          `json:"layouts,omitempty"`
	InfoErr string            `json:"info_error,omitempty"`
}

func describeAsset(a *assets.Asset) assetDetails {
	d := assetDetails{assetView: newAssetView(a, true), Media: map[string]string{}}
	info, err := a.UIInfo()
	if err != nil {
		d.InfoErr = err.Error()
	}
	d.Info = info
	for label, path := range map[string]string{
		"preview": a.Preview(),
		"outline": a.Outline(),
		"badge":   a.Badge(),
		"logo":    a.Logo(),
		"map":     a.Map(),
		"icon":    a.Icon(),
	} {
		if path != "" {
			d.Media[label] = path
		}
	}
	for _, skin := range a.Skins() {
		d.Skins = append(d.Skins, skin.ID())
	}
	for _, layout := range a.Layouts() {
		d.Layouts = append(d.Layouts, layout.ID())
	}
	return d
}

func renderDetails(out io.Writer, d assetDetails, colorize bool) {
	for _, line := range renderSectionHeader(fmt.Sprintf("%s %s", d.Kind, d.ID), colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintf(out, "%-12s %s\n", "Name:", d.Name)
	fmt.Fprintf(out, "%-12s %s\n", "Origin:", originLabel(d.Origin, colorize))
	fmt.Fprintf(out, "%-12s %s\n", "Path:", d.Path)
	fmt.Fprintf(out, "%-12s %s\n", "Size:", humanize.IBytes(uint64(d.SizeBytes)))
	if d.Language != "" {
		fmt.Fprintf(out, "%-12s %s\n", "Language:", d.Language)
	}
	if d.Flag != "" {
		fmt.Fprintf(out, "%-12s %s\n", "Flag:", d.Flag)
	}
	if len(d.Skins) > 0 {
		fmt.Fprintf(out, "%-12s %s\n", "Skins:", strings.Join(d.Skins, ", "))
	}
	if len(d.Layouts) > 0 {
		fmt.Fprintf(out, "%-12s %s\n", "Layouts:", strings.Join(d.Layouts, ", "))
	}
	if d.InfoErr != "" {
		fmt.Fprintln(out, renderStatusLine("Metadata", statusWarn, d.InfoErr, colorize))
	}

	keys := make([]string, 0, len(d.Info))
	for key := range d.Info {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		value := fmt.Sprint(d.Info[key])
		if list, ok := d.Info[key].([]any); ok {
			parts := make([]string, 0, len(list))
			for _, item := range list {
				parts = append(parts, fmt.Sprint(item))
			}
			value = strings.Join(parts, ", ")
		}
		if strings.TrimSpace(value) == "" || key == "name" {
			continue
		}
		fmt.Fprintf(out, "%-12s %s\n", key+":", value)
	}

	media := make([]string, 0, len(d.Media))
	for label := range d.Media {
		media = append(media, label)
	}
	slices.Sort(media)
	for _, label := range media {
		fmt.Fprintf(out, "%-12s %s\n", label+":", d.Media[label])
	}
}
