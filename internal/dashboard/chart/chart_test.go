package chart

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestRenderUnregisteredKind(t *testing.T) {
	err := Render("svg", io.Discard, Bar{})
	if !errors.Is(err, ErrRendererNotRegistered) {
		t.Fatalf("expected ErrRendererNotRegistered, got %v", err)
	}
}

func TestRegisterDefaultsIsIdempotent(t *testing.T) {
	RegisterDefaults()
	if !Registered(KindASCII) || !Registered(KindMarkdown) {
		t.Fatal("expected default renderers after RegisterDefaults")
	}

	var called bool
	Register("idempotent-check", RendererFunc(func(io.Writer, Bar) error {
		called = true
		return nil
	}))
	RegisterDefaults()

	if err := Render("idempotent-check", io.Discard, Bar{}); err != nil {
		t.Fatalf("Render err: %v", err)
	}
	if !called {
		t.Fatal("second RegisterDefaults call must not reset the registry")
	}
}

func TestRenderRejectsMismatchedData(t *testing.T) {
	RegisterDefaults()
	err := Render(KindASCII, io.Discard, Bar{Labels: []string{"Success"}, Values: []int{1, 2}})
	if err == nil {
		t.Fatal("expected error for mismatched labels and values")
	}
}

func TestRenderASCII(t *testing.T) {
	RegisterDefaults()

	var buf bytes.Buffer
	bar := Bar{Title: "Launches by status", Labels: []string{"Success", "Failed", "Upcoming"}, Values: []int{4, 2, 0}}
	if err := Render(KindASCII, &buf, bar); err != nil {
		t.Fatalf("Render err: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Launches by status", "Success", "Failed", "Upcoming"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if got := strings.Count(out, "█"); got != barWidth+barWidth/2 {
		t.Fatalf("expected %d bar cells, got %d:\n%s", barWidth+barWidth/2, got, out)
	}
}

func TestRenderMarkdown(t *testing.T) {
	RegisterDefaults()

	var buf bytes.Buffer
	if err := Render(KindMarkdown, &buf, Bar{Title: "Launches", Labels: []string{"Success"}, Values: []int{1}}); err != nil {
		t.Fatalf("Render err: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "### Launches") {
		t.Fatalf("expected markdown heading, got:\n%s", out)
	}
	if !strings.Contains(out, "| Success |") {
		t.Fatalf("expected markdown row, got:\n%s", out)
	}
}

func TestScale(t *testing.T) {
	cases := []struct{ v, peak, want int }{
		{0, 10, 0},
		{10, 10, barWidth},
		{1, 1000, 1},
		{5, 0, 0},
	}
	for _, c := range cases {
		if got := scale(c.v, c.peak); got != c.want {
			t.Fatalf("scale(%d, %d) = %d, want %d", c.v, c.peak, got, c.want)
		}
	}
}
