package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/cristianadrielbraun/payqr/internal/qrengine"
	"github.com/cristianadrielbraun/payqr/internal/session"
	"github.com/cristianadrielbraun/payqr/web/pages"
)

// session resolves the :id parameter, attaching ErrNotFound when it is
// unknown.
func (h *Handler) session(c *gin.Context) (*session.Session, bool) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		_ = c.Error(fmt.Errorf("%w: %s", err, c.Param("id")))
		return nil, false
	}
	return s, true
}

func (h *Handler) CreateSession(c *gin.Context) {
	s := h.sessions.Create()
	c.JSON(http.StatusCreated, s.View())
}

func (h *Handler) GetSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.View())
}

func (h *Handler) DeleteSession(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// qrChanged is the HTMX event the preview listens for.
const qrChanged = "qr-changed"

// UpdateInput records a partial edit sent as JSON or as the editor's form
// body. The code is re-rendered after the debounce period, so the response
// is 202 and fires qrChanged for the preview.
func (h *Handler) UpdateInput(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var in session.Input
	if err := c.ShouldBind(&in); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}
	if err := s.Apply(in); err != nil {
		_ = c.Error(err)
		return
	}
	c.Header("HX-Trigger", qrChanged)
	c.JSON(http.StatusAccepted, gin.H{"id": s.ID, "pending": true})
}

// UploadLogo accepts a PNG, JPEG or SVG file in the "logo" form field and
// stores it as a data URI. A rejected file clears the current logo.
func (h *Handler) UploadLogo(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxLogoBytes)
	fh, err := c.FormFile("logo")
	if err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}
	f, err := fh.Open()
	if err != nil {
		_ = c.Error(err)
		return
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		_ = c.Error(err)
		return
	}

	uri, err := qrengine.EncodeDataURI(raw)
	if err != nil {
		log.Warn().Err(err).Str("session", s.ID).Str("file", fh.Filename).Msg("Rejected logo upload")
		s.SetLogo("")
		_ = c.Error(err)
		return
	}
	s.SetLogo(uri)
	c.Header("HX-Trigger", qrChanged)
	c.JSON(http.StatusOK, s.View())
}

func (h *Handler) ApplyPreset(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if _, err := s.ApplyPreset(c.Param("name")); err != nil {
		_ = c.Error(fmt.Errorf("%w: %q", err, c.Param("name")))
		return
	}
	h.respondView(c, s)
}

func (h *Handler) Randomize(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.Randomize()
	h.respondView(c, s)
}

// respondView answers HTMX with the re-rendered editor and everyone else
// with the JSON view.
func (h *Handler) respondView(c *gin.Context, s *session.Session) {
	v := s.View()
	if isHTMX(c) {
		h.renderHTML(c, pages.Editor(h.homeData(v)))
		return
	}
	c.JSON(http.StatusOK, v)
}

// SessionPreview renders the preview fragment swapped in on qrChanged.
func (h *Handler) SessionPreview(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	h.renderHTML(c, pages.Preview(h.homeData(s.View())))
}

type disposableRequest struct {
	Enabled bool `json:"enabled"`
	Timeout int  `json:"timeoutSeconds" binding:"gte=0,lte=86400"`
}

// SetDisposable turns the disposable timer on or off. A zero timeout uses
// the configured default.
func (h *Handler) SetDisposable(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req disposableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}
	c.JSON(http.StatusOK, s.SetDisposable(req.Enabled, req.Timeout))
}

// SessionQR exports the settled code. It answers 410 once the disposable
// timer has expired.
func (h *Handler) SessionQR(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	format, err := qrengine.ParseFormat(c.Query("format"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	data, err := s.Export(format)
	if err != nil {
		_ = c.Error(err)
		return
	}
	writeExport(c, format, data, c.Query("download") == "true")
}

// SessionBundle returns a zip with the code as PNG, SVG and PDF.
func (h *Handler) SessionBundle(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	data, err := s.Bundle(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Header("Content-Disposition", `attachment; filename="qr-code.zip"`)
	c.Data(http.StatusOK, "application/zip", data)
}

func (h *Handler) SessionSnippet(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	snippet, err := s.Snippet()
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"snippet": snippet})
}
