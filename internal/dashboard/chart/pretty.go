package chart

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// barWidth is the length of the longest bar in cells.
const barWidth = 40

func barTable(bar Bar) table.Writer {
	w := table.NewWriter()
	w.AppendHeader(table.Row{"Status", "Count", ""})

	peak := 0
	for _, v := range bar.Values {
		peak = max(peak, v)
	}
	for i, label := range bar.Labels {
		w.AppendRow(table.Row{label, bar.Values[i], strings.Repeat("█", scale(bar.Values[i], peak))})
	}
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	return w
}

func scale(v, peak int) int {
	if v <= 0 || peak <= 0 {
		return 0
	}
	return max(1, v*barWidth/peak)
}

func renderASCII(w io.Writer, bar Bar) error {
	t := barTable(bar)
	t.SetStyle(table.StyleLight)
	if bar.Title != "" {
		t.SetTitle(bar.Title)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func renderMarkdown(w io.Writer, bar Bar) error {
	if bar.Title != "" {
		if _, err := fmt.Fprintf(w, "### %s\n\n", bar.Title); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, barTable(bar).RenderMarkdown())
	return err
}
