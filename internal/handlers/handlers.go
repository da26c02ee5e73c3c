package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/payqr/internal/session"
	"github.com/cristianadrielbraun/payqr/web/pages"
)

// Handler holds the dependencies shared by the HTTP handlers.
type Handler struct {
	sessions     *session.Store
	maxLogoBytes int64
	now          func() time.Time
}

// New returns a Handler backed by the given session store. Logo uploads
// larger than maxLogoBytes are rejected.
func New(sessions *session.Store, maxLogoBytes int64) *Handler {
	return &Handler{sessions: sessions, maxLogoBytes: maxLogoBytes, now: time.Now}
}

// HomePage starts a fresh session and renders the editor for it.
func (h *Handler) HomePage(c *gin.Context) {
	s := h.sessions.Create()
	h.renderHTML(c, pages.HomePage(h.homeData(s.View())))
}

func (h *Handler) homeData(v session.View) pages.HomeData {
	return pages.HomeData{
		SessionID:    v.ID,
		Snapshot:     v.Snapshot,
		ActivePreset: v.ActivePreset,
		Placeholder:  v.Placeholder,
		Visible:      v.Visible,
		Version:      strconv.FormatInt(h.now().UnixNano(), 36),
	}
}

func (h *Handler) renderHTML(c *gin.Context, component templ.Component) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Header("Cache-Control", "no-store")
	c.Status(http.StatusOK)
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		_ = c.Error(err)
	}
}

// isHTMX reports whether the request was issued by HTMX and expects a
// fragment instead of JSON.
func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// SitemapXML serves a minimal sitemap for the site.
func (h *Handler) SitemapXML(c *gin.Context) {
	c.Header("Content-Type", "application/xml; charset=utf-8")
	scheme := "https"
	host := c.Request.Host
	if xf := c.Request.Header.Get("X-Forwarded-Proto"); xf != "" {
		scheme = xf
	} else if c.Request.TLS == nil && (host == "localhost:8080" || host == "127.0.0.1:8080") {
		scheme = "http"
	}
	base := scheme + "://" + host
	xml := "" +
		"<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
		"<urlset xmlns=\"http://www.sitemaps.org/schemas/sitemap/0.9\">\n" +
		"  <url>\n" +
		"    <loc>" + base + "/" + "</loc>\n" +
		"    <changefreq>monthly</changefreq>\n" +
		"    <priority>1.0</priority>\n" +
		"  </url>\n" +
		"</urlset>\n"
	c.String(http.StatusOK, xml)
}
