package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/payqr/internal/currency"
	"github.com/cristianadrielbraun/payqr/internal/payuri"
	"github.com/cristianadrielbraun/payqr/internal/qrengine"
	"github.com/cristianadrielbraun/payqr/internal/render"
	"github.com/cristianadrielbraun/payqr/internal/style"
)

type currencyResponse struct {
	ID              string `json:"id"`
	Label           string `json:"label"`
	Ticker          string `json:"ticker"`
	Placeholder     string `json:"placeholder"`
	Scheme          string `json:"scheme,omitempty"`
	SupportsMessage bool   `json:"supportsMessage"`
	SupportsLabel   bool   `json:"supportsLabel"`
}

func toCurrencyResponse(d currency.Definition) currencyResponse {
	return currencyResponse{
		ID:              d.ID,
		Label:           d.Label,
		Ticker:          d.Ticker(),
		Placeholder:     d.Placeholder,
		Scheme:          d.Scheme,
		SupportsMessage: d.SupportsMessage,
		SupportsLabel:   d.LabelParam != "",
	}
}

// Currencies lists the registry in display order.
func (h *Handler) Currencies(c *gin.Context) {
	defs := currency.All()
	out := make([]currencyResponse, 0, len(defs))
	for _, d := range defs {
		out = append(out, toCurrencyResponse(d))
	}
	c.JSON(http.StatusOK, out)
}

type classifyRequest struct {
	Text string `json:"text"`
}

type classifyResponse struct {
	currency.Classification
	Label string `json:"label"`
}

// Classify detects the currency of free text.
func (h *Handler) Classify(c *gin.Context) {
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}
	cls := currency.Classify(req.Text)
	def, _ := currency.Lookup(cls.CurrencyID)
	c.JSON(http.StatusOK, classifyResponse{Classification: cls, Label: def.Label})
}

type verifyRequest struct {
	Text     string `json:"text"`
	Currency string `json:"currency" binding:"required"`
}

type verifyResponse struct {
	Valid   bool   `json:"valid"`
	Warning string `json:"warning,omitempty"`
}

func warning(def currency.Definition) string {
	return fmt.Sprintf("This does not look like a valid %s address. Double-check it before sharing.", def.Label)
}

// Verify re-tests text against one currency. A mismatch is reported as a
// warning, not an error.
func (h *Handler) Verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}
	def, err := currency.Lookup(req.Currency)
	if err != nil {
		_ = c.Error(err)
		return
	}
	resp := verifyResponse{Valid: currency.ValidateAgainst(strings.TrimSpace(req.Text), def.ID)}
	if !resp.Valid {
		resp.Warning = warning(def)
	}
	c.JSON(http.StatusOK, resp)
}

type uriRequest struct {
	Currency string `json:"currency"`
	Content  string `json:"content"`
	payuri.Params
}

// BuildURI returns the payment URI for the given content. An empty
// currency is detected from the content.
func (h *Handler) BuildURI(c *gin.Context) {
	var req uriRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}
	cls := currency.Classify(req.Content)
	id := req.Currency
	if id == "" {
		id = cls.CurrencyID
	}
	def, err := currency.Lookup(id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"uri":      payuri.Build(def, cls.Text, req.Params),
		"currency": def.ID,
	})
}

// Presets lists the built-in style presets.
func (h *Handler) Presets(c *gin.Context) {
	c.JSON(http.StatusOK, style.Presets())
}

// Snippet returns the embed snippet for a snapshot. Style fields missing
// from the body keep their defaults.
func (h *Handler) Snippet(c *gin.Context) {
	snap := render.Snapshot{Style: style.Default()}
	if err := c.ShouldBindJSON(&snap); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}
	snap.Style.SizePx = qrengine.ClampSize(snap.Style.SizePx)

	snippet, err := render.Snippet(render.Resolve(snap).Options())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"snippet": snippet})
}

type confirmRequest struct {
	Generated string `json:"generated" binding:"required"`
	Retyped   string `json:"retyped"`
}

// Confirm compares a re-typed address with the one being encoded.
func (h *Handler) Confirm(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"match":   currency.ConfirmMatch(req.Generated, req.Retyped),
		"preview": currency.Preview(strings.TrimSpace(req.Generated)),
	})
}
