package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"renumber/internal/renumber"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7B61FF"))

	arrowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5A9"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#73F59F")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

// printSummary lists the changed names per sequence, then a one-line total,
// then the directory holding the results on its own line for scripts.
func printSummary(w io.Writer, res *renumber.Result) {
	current := ""
	unchanged := 0
	for _, r := range res.Renames {
		if r.Sequence != current {
			current = r.Sequence
			fmt.Fprintln(w, headerStyle.Render(current))
		}
		if r.Unchanged {
			unchanged++
			continue
		}
		fmt.Fprintf(w, "  %s %s %s\n", filepath.Base(r.SourcePath), arrowStyle.Render("->"), filepath.Base(r.DestinationPath))
	}

	if len(res.Renames) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No numbered files found."))
	}

	if res.DryRun {
		fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("Dry run: %d files (%d unchanged) would be written to", len(res.Renames), unchanged)))
	} else {
		// Bytes only ever sums io.Copy counts, so it is never negative
		copied := humanize.Bytes(uint64(res.Bytes))
		fmt.Fprintln(w, successStyle.Render(fmt.Sprintf("Renumbered %d files (%d unchanged, %s) into", len(res.Renames), unchanged, copied)))
	}
	fmt.Fprintln(w, res.Dir)
}
