// Package static serves the prebuilt dashboard bundle with an index.html fallback.
package static

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"path"
	"strings"
)

// EntryDocument is returned for every path without a matching asset.
const EntryDocument = "index.html"

// SettingsPlaceholder is the element in the entry document that receives
// the dashboard settings as JSON.
const SettingsPlaceholder = `<script id="dashboard-settings" type="application/json">null</script>`

// Option configures a Handler.
type Option func(*options)

type options struct {
	settings any
}

// WithSettings embeds v as JSON in the entry document.
func WithSettings(v any) Option {
	return func(o *options) {
		o.settings = v
	}
}

// Handler serves files from an fs.FS and falls back to the entry document.
type Handler struct {
	files      fs.FS
	fileServer http.Handler
	index      []byte
}

// New reads the entry document once; a bundle without it is rejected.
func New(files fs.FS, opts ...Option) (*Handler, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	index, err := fs.ReadFile(files, EntryDocument)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", EntryDocument, err)
	}
	if o.settings != nil {
		if index, err = embedSettings(index, o.settings); err != nil {
			return nil, err
		}
	}
	return &Handler{
		files:      files,
		fileServer: http.FileServer(http.FS(files)),
		index:      index,
	}, nil
}

// embedSettings replaces the placeholder element with v encoded as JSON.
// json.Marshal escapes '<' so the payload cannot close the script tag.
func embedSettings(index []byte, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding dashboard settings: %w", err)
	}
	placeholder := []byte(SettingsPlaceholder)
	if !bytes.Contains(index, placeholder) {
		log.Printf("[static] %s has no settings placeholder, serving it unchanged", EntryDocument)
		return index, nil
	}
	tag := `<script id="dashboard-settings" type="application/json">` + string(data) + `</script>`
	return bytes.Replace(index, placeholder, []byte(tag), 1), nil
}

// ServeHTTP serves an existing file or the entry document.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name == "" || name == EntryDocument {
		h.serveIndex(w, r)
		return
	}

	info, err := fs.Stat(h.files, name)
	if err != nil || info.IsDir() {
		h.serveIndex(w, r)
		return
	}
	h.fileServer.ServeHTTP(w, r)
}

func (h *Handler) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(h.index); err != nil {
		log.Printf("[static] failed to write %s: %v", EntryDocument, err)
	}
}
