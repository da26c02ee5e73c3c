// Package render turns one input snapshot into the immutable request handed
// to the QR rendering engine.
package render

import (
	"github.com/cristianadrielbraun/payqr/internal/currency"
	"github.com/cristianadrielbraun/payqr/internal/payuri"
	"github.com/cristianadrielbraun/payqr/internal/style"
)

// Snapshot is everything the user has entered at one point in time.
type Snapshot struct {
	// Text is the raw content field.
	Text string `json:"text"`
	// CurrencyID forces a currency. Empty means detect it from Text.
	CurrencyID string        `json:"currency,omitempty"`
	Params     payuri.Params `json:"params"`
	Invoice    bool          `json:"invoice"`
	Style      style.Config  `json:"style"`
}

// Request is the settled result of a Snapshot.
type Request struct {
	Data        string       `json:"data"`
	Style       style.Config `json:"style"`
	SizePx      int          `json:"sizePx"`
	CurrencyID  string       `json:"currency"`
	Content     string       `json:"content"`
	Detected    bool         `json:"detected"`
	ValidFormat bool         `json:"validFormat"`
	Invoice     bool         `json:"invoice"`
}

// Resolve runs classification and URI building on s. It is pure: the same
// snapshot always yields the same request.
func Resolve(s Snapshot) Request {
	cls := currency.Classify(s.Text)

	id := s.CurrencyID
	if id == "" {
		id = cls.CurrencyID
	}
	def, err := currency.Lookup(id)
	if err != nil {
		def = currency.Custom()
	}

	size := s.Style.SizePx
	if s.Invoice {
		size = style.InvoiceSize
	}

	return Request{
		Data:        payuri.Build(def, cls.Text, s.Params),
		Style:       s.Style,
		SizePx:      size,
		CurrencyID:  def.ID,
		Content:     cls.Text,
		Detected:    cls.Matched && cls.CurrencyID == def.ID,
		ValidFormat: currency.Content{Text: cls.Text, CurrencyID: def.ID}.ValidFormat(),
		Invoice:     s.Invoice,
	}
}

// HasContent reports whether the user has typed anything; without content
// the request encodes payuri.Fallback.
func (r Request) HasContent() bool { return r.Content != "" }
