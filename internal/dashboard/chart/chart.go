// Package chart renders bar charts through renderers registered at startup.
package chart

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

// Built-in renderer kinds.
const (
	KindASCII    = "ascii"
	KindMarkdown = "markdown"
)

// ErrRendererNotRegistered is returned when rendering with an unknown kind.
var ErrRendererNotRegistered = errors.New("chart renderer not registered")

// Bar is a single-dataset bar chart.
type Bar struct {
	Title  string
	Labels []string
	Values []int
	Colors []string
}

// Renderer draws a bar chart to w.
type Renderer interface {
	Render(w io.Writer, bar Bar) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(w io.Writer, bar Bar) error

// Render calls f.
func (f RendererFunc) Render(w io.Writer, bar Bar) error {
	return f(w, bar)
}

var (
	mu           sync.RWMutex
	renderers    = make(map[string]Renderer)
	defaultsOnce sync.Once
)

// Register installs r under kind, replacing any previous renderer.
func Register(kind string, r Renderer) {
	if r == nil {
		panic("chart: Register renderer is nil")
	}
	mu.Lock()
	renderers[kind] = r
	mu.Unlock()
}

// RegisterDefaults installs the ascii and markdown renderers. Only the first
// call has any effect; call it once during startup before rendering.
func RegisterDefaults() {
	defaultsOnce.Do(func() {
		Register(KindASCII, RendererFunc(renderASCII))
		Register(KindMarkdown, RendererFunc(renderMarkdown))
	})
}

// Registered reports whether kind has a renderer.
func Registered(kind string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := renderers[kind]
	return ok
}

// Render draws bar with the renderer registered for kind.
func Render(kind string, w io.Writer, bar Bar) error {
	mu.RLock()
	r, ok := renderers[kind]
	mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrRendererNotRegistered, kind)
	}
	if len(bar.Labels) != len(bar.Values) {
		return fmt.Errorf("chart: %d labels for %d values", len(bar.Labels), len(bar.Values))
	}
	return r.Render(w, bar)
}
