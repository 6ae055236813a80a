package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/dmitrijs2005/luggify/internal/client/models"
	"github.com/dmitrijs2005/luggify/internal/client/session"
)

func stateOf(c models.Checklist) models.SyncState {
	if c.NeedsSync {
		return models.SyncStateDirty
	}
	return models.SyncStateClean
}

// listLines renders one line per checklist, numbered for 'open #n'.
func listLines(items []models.Checklist) []string {
	out := make([]string, 0, len(items))
	for i, c := range items {
		visible := c.VisibleItems()
		packed := 0
		for _, it := range visible {
			if c.IsChecked(it) {
				packed++
			}
		}
		out = append(out, fmt.Sprintf("%2d. %-12s %s %s..%s  %d/%d packed [%s]",
			i+1, c.Slug, c.City, c.StartDate, c.EndDate, packed, len(visible), stateOf(c)))
	}
	return out
}

func printList(w io.Writer, items []models.Checklist) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No checklists yet. Use 'generate' to create one.")
		return
	}
	for _, l := range listLines(items) {
		fmt.Fprintln(w, l)
	}
}

func printSnapshot(w io.Writer, snap session.Snapshot) {
	c := snap.Checklist
	fmt.Fprintf(w, "%s %s..%s  slug %s [%s]\n", c.City, c.StartDate, c.EndDate, c.Slug, snap.State)
	if c.AvgTemp != nil {
		fmt.Fprintf(w, "Avg temp %.1f°C", *c.AvgTemp)
		if len(c.Conditions) > 0 {
			fmt.Fprintf(w, ", %s", strings.Join(c.Conditions, ", "))
		}
		fmt.Fprintln(w)
	}

	for i, it := range snap.Visible {
		mark := " "
		if snap.Checked(it) {
			mark = "x"
		}
		suffix := ""
		if slices.Contains(c.AddedItems, it) {
			suffix = " (added)"
		}
		fmt.Fprintf(w, "%3d [%s] %s%s\n", i+1, mark, it, suffix)
	}
	if len(c.RemovedItems) > 0 {
		fmt.Fprintf(w, "Removed: %s\n", strings.Join(c.RemovedItems, ", "))
	}
	printForecast(w, c.DailyForecast)
}

func printForecast(w io.Writer, f models.Forecast) {
	switch {
	case f.IsUnknown():
		fmt.Fprintln(w, "Forecast: not loaded (use 'weather')")
	case f.IsAbsent():
		fmt.Fprintln(w, "Forecast: none")
	default:
		fmt.Fprintln(w, "Forecast:")
		for _, d := range f.Days() {
			fmt.Fprintf(w, "  %s  %.0f..%.0f°C  %s\n", d.Date, d.TempMin, d.TempMax, d.Condition)
		}
	}
}
