package dashboard

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/zhouzirui/launchboard/backend/internal/dashboard/chart"
	"github.com/zhouzirui/launchboard/backend/internal/model/launch"
)

// ChartTitle is the heading of the status chart.
const ChartTitle = "Launches by status"

// palette follows the order of the tracked statuses.
var palette = []string{"#36A2EB", "#FF6384", "#FFCE56", "#4BC0C0", "#9966FF", "#FF9F40"}

// Bucket is one histogram bar.
type Bucket struct {
	Status launch.Status
	Count  int
}

// Histogram counts launches per tracked status. Untracked statuses are
// counted in Total but in no bucket.
type Histogram struct {
	Buckets []Bucket
	Total   int
}

// Counts returns the bucket counts in chart order.
func (h Histogram) Counts() []int {
	out := make([]int, len(h.Buckets))
	for i, b := range h.Buckets {
		out[i] = b.Count
	}
	return out
}

// Charted is the number of launches that landed in a bucket.
func (h Histogram) Charted() int {
	n := 0
	for _, b := range h.Buckets {
		n += b.Count
	}
	return n
}

// Bar converts the histogram into chart data.
func (h Histogram) Bar(title string) chart.Bar {
	caser := cases.Title(language.English)
	bar := chart.Bar{
		Title:  title,
		Labels: make([]string, len(h.Buckets)),
		Values: h.Counts(),
		Colors: make([]string, len(h.Buckets)),
	}
	for i, b := range h.Buckets {
		bar.Labels[i] = caser.String(string(b.Status))
		bar.Colors[i] = palette[i%len(palette)]
	}
	return bar
}

func countStatuses(items []launch.Launch, statuses []launch.Status) Histogram {
	counts := make(map[launch.Status]int, len(statuses))
	for _, item := range items {
		counts[item.Status]++
	}

	h := Histogram{Buckets: make([]Bucket, len(statuses)), Total: len(items)}
	for i, s := range statuses {
		h.Buckets[i] = Bucket{Status: s, Count: counts[s]}
	}
	return h
}
