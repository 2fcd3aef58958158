package dashboard

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/zhouzirui/launchboard/backend/internal/dashboard/chart"
)

// Render writes the status chart followed by the launch table.
// kind selects a registered chart renderer and the table style.
func Render(w io.Writer, snap Snapshot, kind string) error {
	if err := chart.Render(kind, w, snap.Histogram.Bar(ChartTitle)); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"ID", "Mission", "Rocket", "Date", "Status"})
	for _, l := range snap.Rows {
		t.AppendRow(table.Row{l.ID, l.MissionName, l.RocketName, l.LaunchDate, l.Status})
	}
	t.SetCaption("filter: %s, showing %d of %d launches", snap.Filter, len(snap.Rows), snap.Histogram.Total)

	var out string
	if kind == chart.KindMarkdown {
		out = t.RenderMarkdown()
	} else {
		t.SetStyle(table.StyleLight)
		out = t.Render()
	}
	_, err := fmt.Fprintln(w, out)
	return err
}
