package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/payqr/internal/invoice"
	"github.com/cristianadrielbraun/payqr/internal/payuri"
	"github.com/cristianadrielbraun/payqr/internal/qrengine"
	"github.com/cristianadrielbraun/payqr/internal/render"
	"github.com/cristianadrielbraun/payqr/internal/style"
)

type invoiceRequest struct {
	invoice.Invoice
	// Text is the address or content to encode.
	Text    string        `json:"text"`
	Label   string        `json:"label"`
	Message string        `json:"message"`
	Style   *style.Config `json:"style"`
}

// InvoicePDF renders a printable invoice with the payment code for its
// total.
func (h *Handler) InvoicePDF(c *gin.Context) {
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}
	if err := req.Invoice.Validate(); err != nil {
		_ = c.Error(err)
		return
	}

	cfg := style.Default()
	if req.Style != nil {
		cfg = *req.Style
	}
	rr := render.Resolve(render.Snapshot{
		Text:       req.Text,
		CurrencyID: req.CurrencyID,
		Params:     payuri.Params{Amount: req.Amount, Label: req.Label, Message: req.Message},
		Invoice:    true,
		Style:      cfg,
	})
	inv := req.Invoice
	inv.CurrencyID = rr.CurrencyID

	qr, err := qrengine.Export(rr.Options(), qrengine.PNG)
	if err != nil {
		_ = c.Error(fmt.Errorf("render invoice code: %w", err))
		return
	}
	pdf, err := invoice.RenderPDF(inv, qr, h.now())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", inv.Filename()))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
