package handlers

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/payqr/internal/currency"
	"github.com/cristianadrielbraun/payqr/web/components"
)

// GenericToast returns a Toast component rendered as HTML for HTMX swaps.
func (h *Handler) GenericToast(c *gin.Context) {
	h.renderHTML(c, components.Toast(components.ToastProps{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Variant:     components.ParseVariant(c.PostForm("variant")),
		Duration:    2000,
		Dismissible: c.PostForm("dismissible") == "on",
	}))
}

// VerifyToast checks the text field against the selected currency and
// answers with a warning toast when the format does not match. It never
// changes any state.
func (h *Handler) VerifyToast(c *gin.Context) {
	text := strings.TrimSpace(c.PostForm("text"))
	id := c.PostForm("currency")
	def, err := currency.Lookup(id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	props := components.ToastProps{
		Title:       "Format verified",
		Description: fmt.Sprintf("This looks like a valid %s address.", def.Label),
		Variant:     components.VariantSuccess,
		Duration:    2000,
	}
	if def.IsCustom() {
		props.Description = "Custom content is encoded as entered."
		props.Variant = components.VariantInfo
	} else if !currency.ValidateAgainst(text, id) {
		props.Title = "Check the address"
		props.Description = warning(def)
		props.Variant = components.VariantWarning
		props.Duration = 5000
		props.Dismissible = true
	}
	h.renderHTML(c, components.Toast(props))
}
