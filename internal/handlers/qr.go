package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/payqr/internal/payuri"
	"github.com/cristianadrielbraun/payqr/internal/qrengine"
	"github.com/cristianadrielbraun/payqr/internal/render"
	"github.com/cristianadrielbraun/payqr/internal/session"
	"github.com/cristianadrielbraun/payqr/internal/style"
)

func optionalQuery(c *gin.Context, key string) *string {
	if v, ok := c.GetQuery(key); ok {
		return &v
	}
	return nil
}

func optionalBool(c *gin.Context, key string) *bool {
	if v, ok := c.GetQuery(key); ok {
		b := v == "true" || v == "1" || v == "on"
		return &b
	}
	return nil
}

// styleFromQuery starts from the named preset, or the default style, and
// applies the individual style parameters on top.
func styleFromQuery(c *gin.Context) (style.Config, error) {
	r := style.NewResolver(nil)
	if name := c.Query("preset"); name != "" {
		p, ok := style.FindPreset(name)
		if !ok {
			return style.Config{}, fmt.Errorf("%w: %q", session.ErrPresetUnknown, name)
		}
		r.ApplyPreset(p)
	}

	in := session.Input{
		DotColor:        optionalQuery(c, "dotColor"),
		UseGradient:     optionalBool(c, "useGradient"),
		GradientColor:   optionalQuery(c, "gradientColor"),
		GradientType:    optionalQuery(c, "gradientType"),
		BackgroundColor: optionalQuery(c, "backgroundColor"),
		DotShape:        optionalQuery(c, "dotShape"),
		CornerShape:     optionalQuery(c, "cornerShape"),
	}
	if raw, ok := c.GetQuery("size"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return style.Config{}, fmt.Errorf("%w: size %q", session.ErrInvalidInput, raw)
		}
		n = qrengine.ClampSize(n)
		in.SizePx = &n
	}
	if err := in.Validate(); err != nil {
		return style.Config{}, err
	}
	in.ApplyStyle(r)
	return r.Config(), nil
}

// QRCodeHandler renders a code in one shot from query parameters. An unset
// currency is detected from the content.
func (h *Handler) QRCodeHandler(c *gin.Context) {
	format, err := qrengine.ParseFormat(c.Query("format"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	cfg, err := styleFromQuery(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	currencyID := c.Query("currency")
	if err := (session.Input{CurrencyID: &currencyID}).Validate(); err != nil {
		_ = c.Error(err)
		return
	}

	req := render.Resolve(render.Snapshot{
		Text:       c.Query("content"),
		CurrencyID: currencyID,
		Params: payuri.Params{
			Amount:  c.Query("amount"),
			Label:   c.Query("label"),
			Message: c.Query("message"),
		},
		Invoice: c.Query("invoice") == "true",
		Style:   cfg,
	})

	data, err := qrengine.Export(req.Options(), format)
	if err != nil {
		_ = c.Error(err)
		return
	}
	writeExport(c, format, data, c.Query("download") == "true")
}

// writeExport sends an encoded code. The payload carries a payment address,
// so responses are never cached.
func writeExport(c *gin.Context, f qrengine.Format, data []byte, download bool) {
	c.Header("Cache-Control", "no-store")
	if download {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Filename()))
	}
	c.Data(http.StatusOK, f.ContentType(), data)
}
