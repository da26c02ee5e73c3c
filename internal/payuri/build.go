// Package payuri assembles wallet payment URIs such as
// "bitcoin:<address>?amount=0.5&label=Bob".
package payuri

import (
	"net/url"
	"strings"

	"github.com/cristianadrielbraun/payqr/internal/currency"
)

// Fallback is encoded when there is no content yet, so the QR payload is
// never empty.
const Fallback = "https://slowbeardigger.dev"

// Params are the optional query values. Empty values are omitted.
type Params struct {
	Amount  string `json:"amount,omitempty"`
	Label   string `json:"label,omitempty"`
	Message string `json:"message,omitempty"`
}

// Build returns the payload to encode for content paid in def. Custom
// content is returned verbatim. Parameters are appended in the fixed order
// amount, label, message and only when the currency supports them.
func Build(def currency.Definition, content string, p Params) string {
	if content == "" {
		return Fallback
	}
	if def.IsCustom() {
		return content
	}

	var b strings.Builder
	b.WriteString(def.Scheme)
	b.WriteByte(':')
	b.WriteString(content)

	sep := byte('?')
	add := func(key, value string) {
		b.WriteByte(sep)
		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(value))
		sep = '&'
	}
	if p.Amount != "" {
		add("amount", p.Amount)
	}
	if def.LabelParam != "" && p.Label != "" {
		add(def.LabelParam, p.Label)
	}
	if def.SupportsMessage && def.MessageParam != "" && p.Message != "" {
		add(def.MessageParam, p.Message)
	}
	return b.String()
}

// BuildFor looks up id and builds the URI. Unknown ids are treated as
// custom content.
func BuildFor(id, content string, p Params) string {
	def, err := currency.Lookup(id)
	if err != nil {
		def = currency.Custom()
	}
	return Build(def, content, p)
}
