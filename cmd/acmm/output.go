package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"acmm/internal/assets"
	"acmm/internal/manager"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type assetView struct {
	ID        string        `json:"id"`
	Kind      assets.Kind   `json:"kind"`
	Name      string        `json:"name"`
	Origin    assets.Origin `json:"origin"`
	Path      string        `json:"path"`
	Language  string        `json:"language,omitempty"`
	SizeBytes int64         `json:"size_bytes,omitempty"`
}

func newAssetView(a *assets.Asset, withSize bool) assetView {
	view := assetView{
		ID:       a.ID(),
		Kind:     a.Kind(),
		Name:     a.Name(),
		Origin:   a.Origin(),
		Path:     a.Path(),
	}
	if a.Kind() == assets.KindApp {
		view.Language = a.Language().String()
	}
	if withSize {
		view.SizeBytes, _ = a.Size()
	}
	return view
}

func originLabel(o assets.Origin, colorize bool) string {
	label := o.String()
	if !colorize {
		return label
	}
	switch o {
	case assets.OriginKunos:
		return paint(color.FgGreen, label)
	case assets.OriginDLC:
		return paint(color.FgCyan, label)
	default:
		return paint(color.FgYellow, label)
	}
}

// assetTable renders one row per asset. Size is computed only on request
// since it walks every file.
func assetTable(list []*assets.Asset, withSize, colorize bool) string {
	headers := []string{"Kind", "ID", "Name", "Origin"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft}
	if withSize {
		headers = append(headers, "Size")
		aligns = append(aligns, alignRight)
	}
	rows := make([][]string, 0, len(list))
	var total int64
	for _, a := range list {
		row := []string{a.Kind().String(), a.ID(), a.Name(), originLabel(a.Origin(), colorize)}
		if withSize {
			size, err := a.Size()
			if err != nil {
				row = append(row, "?")
			} else {
				total += size
				row = append(row, humanize.IBytes(uint64(size)))
			}
		}
		rows = append(rows, row)
	}
	footer := []string{"", fmt.Sprintf("%d assets", len(list)), "", ""}
	if withSize {
		footer = append(footer, humanize.IBytes(uint64(total)))
	}
	return renderTable(headers, rows, aligns, footer)
}

// confirm asks a yes/no question on the command's stdin. A closed or empty
// input counts as no.
func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func printReport(out io.Writer, verb string, report manager.BatchReport, colorize bool) {
	for _, item := range report.Items {
		if item.Err == nil {
			continue
		}
		fmt.Fprintln(out, renderStatusLine(item.Asset.ID(), statusError, item.Err.Error(), colorize))
	}
	fmt.Fprintf(out, "%s: %d succeeded, %d skipped, %d failed", verb, report.Succeeded(), report.Skipped(), report.Failed())
	if report.Canceled {
		fmt.Fprint(out, " (interrupted)")
	}
	fmt.Fprintln(out)
}

type reportView struct {
	Succeeded int          `json:"succeeded"`
	Skipped   int          `json:"skipped"`
	Failed    int          `json:"failed"`
	Canceled  bool         `json:"canceled"`
	Items     []itemReport `json:"items"`
}

type itemReport struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Outcome string `json:"outcome"`
	Path    string `json:"path,omitempty"`
	Error   string `json:"error,omitempty"`
}

func newReportView(report manager.BatchReport) reportView {
	view := reportView{
		Succeeded: report.Succeeded(),
		Skipped:   report.Skipped(),
		Failed:    report.Failed(),
		Canceled:  report.Canceled,
		Items:     make([]itemReport, 0, len(report.Items)),
	}
	for _, item := range report.Items {
		entry := itemReport{ID: item.Asset.ID(), Kind: item.Asset.Kind().String(), Outcome: string(item.Outcome)}
		if item.Installed != nil {
			entry.Path = item.Installed.Path()
		}
		if item.Err != nil {
			entry.Error = item.Err.Error()
		}
		view.Items = append(view.Items, entry)
	}
	return view
}
