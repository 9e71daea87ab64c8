package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/krishiseeds/catalog-service/internal/filter"
	"github.com/krishiseeds/catalog-service/internal/types"
)

// Styles for terminal output
var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	featureStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	cyanStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// maxWarnings is how many warnings the table output lists before summarizing
const maxWarnings = 10

func isTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// resolveFormat picks json when stdout is not a terminal and no format was given
func resolveFormat(format string, w io.Writer) (string, error) {
	switch strings.ToLower(format) {
	case "":
		if isTTY(w) {
			return "table", nil
		}
		return "json", nil
	case "table", "json":
		return strings.ToLower(format), nil
	default:
		return "", fmt.Errorf("invalid output format: %s (use 'table' or 'json')", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// printProducts renders products as an aligned table
func printProducts(w io.Writer, products []types.Product) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tSEASONS\tDIFFICULTY\tAVAILABLE")
	for _, p := range products {
		name := p.Name
		if p.Featured {
			name += " " + featureStyle.Render("*")
		}
		seasons := make([]string, len(p.Seasonality))
		for i, s := range p.Seasonality {
			seasons[i] = string(s)
		}
		available := "yes"
		if !p.Availability {
			available = dimStyle.Render("no")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			dimStyle.Render(p.ID), name, p.Category, strings.Join(seasons, ", "), p.DifficultyLevel, available)
	}
	tw.Flush()
}

func printWarnings(w io.Writer, warnings []types.ParseWarning) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", warningStyle.Render(fmt.Sprintf("%d warning(s)", len(warnings))))
	for i, warn := range warnings {
		if i >= maxWarnings {
			fmt.Fprintf(w, "... and %d more\n", len(warnings)-maxWarnings)
			break
		}
		row := "-"
		if warn.RowNumber != nil {
			row = fmt.Sprintf("%d", *warn.RowNumber)
		}
		fmt.Fprintf(w, "  row %s: %s\n", row, warn.Message)
	}
}

func printStats(w io.Writer, stats filter.Stats) {
	fmt.Fprintf(w, "\n%s\n", cyanStyle.Render(fmt.Sprintf("Showing %d of %d products", stats.FilteredCount, stats.TotalProducts)))
}
