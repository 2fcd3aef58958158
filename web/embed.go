// Package web embeds the prebuilt dashboard bundle.
package web

import (
	"embed"
	"io/fs"
)

//go:embed dist
var dist embed.FS

// Assets returns the bundle rooted at its entry document.
func Assets() (fs.FS, error) {
	return fs.Sub(dist, "dist")
}
