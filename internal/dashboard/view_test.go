package dashboard

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zhouzirui/launchboard/backend/internal/dashboard/chart"
	"github.com/zhouzirui/launchboard/backend/internal/model/launch"
)

// stubSource counts fetches and returns fixed results.
type stubSource struct {
	items []launch.Launch
	err   error
	calls atomic.Int32
}

func (s *stubSource) Launches(context.Context) ([]launch.Launch, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

// cancelingSource cancels the caller's context before returning data.
type cancelingSource struct {
	cancel context.CancelFunc
	items  []launch.Launch
}

func (s *cancelingSource) Launches(context.Context) ([]launch.Launch, error) {
	s.cancel()
	return s.items, nil
}

func mixed() []launch.Launch {
	return []launch.Launch{
		{ID: "1", MissionName: "FalconSat", Status: launch.StatusSuccess},
		{ID: "2", MissionName: "DemoSat", Status: launch.StatusSuccess},
		{ID: "3", MissionName: "Trailblazer", Status: launch.StatusFailed},
		{ID: "4", MissionName: "Crew-9", Status: launch.StatusUpcoming},
		{ID: "5", MissionName: "Amos-6", Status: "canceled"},
	}
}

func loaded(t *testing.T, items []launch.Launch) *View {
	t.Helper()
	v := NewView(nil)
	if err := v.Load(context.Background(), &stubSource{items: items}); err != nil {
		t.Fatalf("Load err: %v", err)
	}
	return v
}

func TestLoadFetchesOnce(t *testing.T) {
	src := &stubSource{items: mixed()}
	v := NewView(nil)
	if err := v.Load(context.Background(), src); err != nil {
		t.Fatalf("Load err: %v", err)
	}
	for _, f := range []Filter{"failed", "upcoming", FilterAll} {
		if err := v.SetFilter(f); err != nil {
			t.Fatalf("SetFilter err: %v", err)
		}
		_ = v.Snapshot()
	}
	if n := src.calls.Load(); n != 1 {
		t.Fatalf("expected one fetch, got %d", n)
	}
}

func TestFilterAllRestoresOriginalList(t *testing.T) {
	v := loaded(t, mixed())
	original := v.Filtered()

	for _, f := range []Filter{"failed", "upcoming", "success", FilterAll} {
		if err := v.SetFilter(f); err != nil {
			t.Fatalf("SetFilter(%s) err: %v", f, err)
		}
	}
	if diff := cmp.Diff(original, v.Filtered()); diff != "" {
		t.Fatalf("all filter changed list (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(mixed(), v.Launches()); diff != "" {
		t.Fatalf("filtering mutated the fetched list (-want +got):\n%s", diff)
	}
}

func TestHistogramIgnoresFilter(t *testing.T) {
	v := loaded(t, mixed())
	want := v.Histogram()

	for _, f := range []Filter{"failed", "upcoming", "success", FilterAll} {
		if err := v.SetFilter(f); err != nil {
			t.Fatalf("SetFilter(%s) err: %v", f, err)
		}
		if diff := cmp.Diff(want, v.Histogram()); diff != "" {
			t.Fatalf("histogram changed under filter %s (-want +got):\n%s", f, diff)
		}
	}
}

func TestHistogramSumBoundedByTotal(t *testing.T) {
	cases := map[string][]launch.Launch{
		"all recognised": mixed()[:4],
		"with unknown":   mixed(),
		"empty":          nil,
		"only unknown":   {{ID: "x", Status: "scrubbed"}, {ID: "y", Status: ""}},
	}
	for name, items := range cases {
		t.Run(name, func(t *testing.T) {
			h := loaded(t, items).Histogram()

			allRecognised := true
			for _, item := range items {
				switch item.Status {
				case launch.StatusSuccess, launch.StatusFailed, launch.StatusUpcoming:
				default:
					allRecognised = false
				}
			}

			if h.Charted() > h.Total {
				t.Fatalf("charted %d exceeds total %d", h.Charted(), h.Total)
			}
			if (h.Charted() == h.Total) != allRecognised {
				t.Fatalf("charted=%d total=%d allRecognised=%v", h.Charted(), h.Total, allRecognised)
			}
		})
	}
}

func TestEmptyStoreScenario(t *testing.T) {
	v := loaded(t, []launch.Launch{})
	snap := v.Snapshot()

	if diff := cmp.Diff([]int{0, 0, 0}, snap.Histogram.Counts()); diff != "" {
		t.Fatalf("counts mismatch (-want +got):\n%s", diff)
	}
	if len(snap.Rows) != 0 {
		t.Fatalf("expected empty table, got %d rows", len(snap.Rows))
	}
}

func TestMixedDataScenario(t *testing.T) {
	v := loaded(t, mixed())

	if diff := cmp.Diff([]int{2, 1, 1}, v.Histogram().Counts()); diff != "" {
		t.Fatalf("counts mismatch (-want +got):\n%s", diff)
	}
	if err := v.SetFilter("failed"); err != nil {
		t.Fatalf("SetFilter err: %v", err)
	}
	rows := v.Filtered()
	if len(rows) != 1 || rows[0].ID != "3" {
		t.Fatalf("expected exactly launch 3, got %+v", rows)
	}
	if n := len(v.Launches()); n != 5 {
		t.Fatalf("expected 5 launches in unfiltered list, got %d", n)
	}
}

func TestStoreFailureScenario(t *testing.T) {
	fetchErr := errors.New("fetch launches: status 500: failed to fetch launches")
	v := NewView(nil)

	if err := v.Load(context.Background(), &stubSource{err: fetchErr}); !errors.Is(err, fetchErr) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if n := len(v.Launches()); n != 0 {
		t.Fatalf("expected empty list, got %d", n)
	}
	if diff := cmp.Diff([]int{0, 0, 0}, v.Histogram().Counts()); diff != "" {
		t.Fatalf("counts mismatch (-want +got):\n%s", diff)
	}
}

func TestFailedReloadKeepsPriorState(t *testing.T) {
	v := loaded(t, mixed())
	before := v.Snapshot()

	if err := v.Load(context.Background(), &stubSource{err: errors.New("offline")}); err == nil {
		t.Fatal("expected error")
	}
	if diff := cmp.Diff(before, v.Snapshot()); diff != "" {
		t.Fatalf("failed reload changed state (-want +got):\n%s", diff)
	}
}

func TestLoadAfterCancelDoesNotWrite(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	v := NewView(nil)

	err := v.Load(ctx, &cancelingSource{cancel: cancel, items: mixed()})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if n := len(v.Launches()); n != 0 {
		t.Fatalf("cancelled load wrote %d launches", n)
	}
}

func TestParseFilter(t *testing.T) {
	v := NewView([]launch.Status{"success", "failed"})

	for raw, want := range map[string]Filter{"": FilterAll, "ALL": FilterAll, " Failed ": "failed"} {
		got, err := v.ParseFilter(raw)
		if err != nil {
			t.Fatalf("ParseFilter(%q) err: %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseFilter(%q) = %q, want %q", raw, got, want)
		}
	}
	if _, err := v.ParseFilter("upcoming"); !errors.Is(err, ErrUnknownFilter) {
		t.Fatalf("expected ErrUnknownFilter for untracked status, got %v", err)
	}
	if err := v.SetFilter("canceled"); !errors.Is(err, ErrUnknownFilter) {
		t.Fatalf("expected ErrUnknownFilter, got %v", err)
	}
	if v.Filter() != FilterAll {
		t.Fatalf("rejected filter must not change selection, got %q", v.Filter())
	}
}

func TestConfiguredStatusesDriveBuckets(t *testing.T) {
	v := NewView([]launch.Status{"success", "failed", "upcoming", "canceled"})
	if err := v.Load(context.Background(), &stubSource{items: mixed()}); err != nil {
		t.Fatalf("Load err: %v", err)
	}
	h := v.Histogram()
	if diff := cmp.Diff([]int{2, 1, 1, 1}, h.Counts()); diff != "" {
		t.Fatalf("counts mismatch (-want +got):\n%s", diff)
	}
	if h.Charted() != h.Total {
		t.Fatalf("every status is tracked, charted=%d total=%d", h.Charted(), h.Total)
	}
}

func TestHistogramBar(t *testing.T) {
	bar := loaded(t, mixed()).Histogram().Bar(ChartTitle)

	want := chart.Bar{
		Title:  ChartTitle,
		Labels: []string{"Success", "Failed", "Upcoming"},
		Values: []int{2, 1, 1},
		Colors: []string{"#36A2EB", "#FF6384", "#FFCE56"},
	}
	if diff := cmp.Diff(want, bar); diff != "" {
		t.Fatalf("bar mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderSnapshot(t *testing.T) {
	chart.RegisterDefaults()
	v := loaded(t, mixed())
	if err := v.SetFilter("failed"); err != nil {
		t.Fatalf("SetFilter err: %v", err)
	}

	var buf bytes.Buffer
	if err := Render(&buf, v.Snapshot(), chart.KindASCII); err != nil {
		t.Fatalf("Render err: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Trailblazer") {
		t.Fatalf("expected filtered row in output:\n%s", out)
	}
	if strings.Contains(out, "FalconSat") {
		t.Fatalf("unexpected unfiltered row in output:\n%s", out)
	}
	if !strings.Contains(out, "showing 1 of 5 launches") {
		t.Fatalf("expected caption in output:\n%s", out)
	}
}

func TestRenderUnknownKind(t *testing.T) {
	if err := Render(&bytes.Buffer{}, NewView(nil).Snapshot(), "svg"); !errors.Is(err, chart.ErrRendererNotRegistered) {
		t.Fatalf("expected ErrRendererNotRegistered, got %v", err)
	}
}
