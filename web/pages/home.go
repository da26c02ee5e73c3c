// Package pages renders full HTML documents and the fragments HTMX swaps
// into them.
package pages

import (
	"net/url"
	"strings"

	twmerge "github.com/Oudwins/tailwind-merge-go"

	"github.com/cristianadrielbraun/payqr/internal/render"
)

// HomeData is what the editor needs from the current session.
type HomeData struct {
	SessionID    string
	Snapshot     render.Snapshot
	ActivePreset string
	Placeholder  string
	Visible      bool
	// Version changes on every render so the preview image is refetched.
	Version string
}

const presetClass = "rounded-md border px-3 py-1 text-sm"

func presetButtonClass(active bool) string {
	if active {
		return twmerge.Merge(presetClass, "border-orange-500 bg-orange-500 text-black")
	}
	return presetClass
}

func sessionPath(id, suffix string) string {
	return "/api/sessions/" + url.PathEscape(id) + suffix
}

func presetPath(id, name string) string {
	return sessionPath(id, "/presets/"+url.PathEscape(strings.ToLower(name)))
}

func previewSrc(d HomeData) string {
	return sessionPath(d.SessionID, "/qr?format=png&v="+url.QueryEscape(d.Version))
}
