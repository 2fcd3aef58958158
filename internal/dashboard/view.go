// Package dashboard holds the client-side state of the launch dashboard:
// the fetched list, the status filter and the status histogram.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/zhouzirui/launchboard/backend/internal/model/launch"
)

// FilterAll selects every launch.
const FilterAll Filter = "all"

// ErrUnknownFilter is returned for filters outside all + tracked statuses.
var ErrUnknownFilter = errors.New("unknown status filter")

// Filter is the user-selected status filter.
type Filter string

// Source fetches the full launch list.
type Source interface {
	Launches(ctx context.Context) ([]launch.Launch, error)
}

// View owns the in-memory launch list. All derived data is computed from it
// without further network calls.
type View struct {
	mu       sync.RWMutex
	statuses []launch.Status
	launches []launch.Launch
	filter   Filter
}

// NewView creates an empty view charting the given statuses.
func NewView(statuses []launch.Status) *View {
	if len(statuses) == 0 {
		statuses = launch.DefaultStatuses()
	}
	return &View{
		statuses: append([]launch.Status(nil), statuses...),
		launches: []launch.Launch{},
		filter:   FilterAll,
	}
}

// Load fetches once from src and replaces the list on success.
// On failure the error is logged and the current list is kept.
// A result that arrives after ctx is done is discarded.
func (v *View) Load(ctx context.Context, src Source) error {
	items, err := src.Launches(ctx)
	if err != nil {
		log.Printf("[dashboard] error fetching launches: %v", err)
		return err
	}
	if err := ctx.Err(); err != nil {
		log.Printf("[dashboard] view closed before launches arrived, dropping %d records", len(items))
		return err
	}

	v.mu.Lock()
	v.launches = append(make([]launch.Launch, 0, len(items)), items...)
	v.mu.Unlock()
	return nil
}

// Statuses returns the tracked statuses in chart order.
func (v *View) Statuses() []launch.Status {
	return append([]launch.Status(nil), v.statuses...)
}

// ParseFilter validates raw against all and the tracked statuses.
func (v *View) ParseFilter(raw string) (Filter, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" || raw == string(FilterAll) {
		return FilterAll, nil
	}
	for _, s := range v.statuses {
		if string(s) == raw {
			return Filter(raw), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFilter, raw)
}

// SetFilter changes the selected filter.
func (v *View) SetFilter(f Filter) error {
	parsed, err := v.ParseFilter(string(f))
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.filter = parsed
	v.mu.Unlock()
	return nil
}

// Filter returns the selected filter.
func (v *View) Filter() Filter {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.filter
}

// Launches returns the full fetched list.
func (v *View) Launches() []launch.Launch {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]launch.Launch(nil), v.launches...)
}

// Filtered returns the launches matching the selected filter, in fetch order.
func (v *View) Filtered() []launch.Launch {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return applyFilter(v.launches, v.filter)
}

// Histogram counts the whole list, never the filtered view.
func (v *View) Histogram() Histogram {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return countStatuses(v.launches, v.statuses)
}

// Snapshot is a consistent copy of everything the renderer needs.
type Snapshot struct {
	Filter    Filter
	Rows      []launch.Launch
	Histogram Histogram
}

// Snapshot captures rows and histogram under one lock.
func (v *View) Snapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return Snapshot{
		Filter:    v.filter,
		Rows:      applyFilter(v.launches, v.filter),
		Histogram: countStatuses(v.launches, v.statuses),
	}
}

func applyFilter(items []launch.Launch, f Filter) []launch.Launch {
	out := make([]launch.Launch, 0, len(items))
	for _, item := range items {
		if f == FilterAll || string(item.Status) == string(f) {
			out = append(out, item)
		}
	}
	return out
}
