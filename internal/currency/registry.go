// Package currency holds the table of supported payment currencies and the
// structural address classifier built on top of it.
package currency

import (
	"errors"
	"regexp"
	"strings"
)

// CustomID is the generic currency: arbitrary text or URLs, no scheme.
const CustomID = "custom"

// ErrNotFound is returned by Lookup for ids that are not in the registry.
var ErrNotFound = errors.New("currency not found")

// Definition describes one supported currency. Definitions are created once
// in the package table and never mutated.
type Definition struct {
	ID          string
	Label       string
	Placeholder string
	// Scheme is the payment URI scheme; empty for the custom currency.
	Scheme string
	// Pattern is a structural validator only. Nil matches any text.
	Pattern *regexp.Regexp
	// SupportsMessage reports whether MessageParam may be emitted.
	SupportsMessage bool
	MessageParam    string
	// LabelParam is the query key for the recipient label, empty when the
	// currency has no label parameter.
	LabelParam string
}

// IsCustom reports whether d is the generic text/URL entry.
func (d Definition) IsCustom() bool { return d.Scheme == "" }

// Ticker returns the short code shown on invoices, e.g. "XMR" for
// "Monero (XMR)". The custom currency has no ticker and yields "UNITS".
func (d Definition) Ticker() string {
	if d.IsCustom() {
		return "UNITS"
	}
	open := strings.LastIndex(d.Label, "(")
	end := strings.LastIndex(d.Label, ")")
	if open < 0 || end <= open+1 {
		return strings.ToUpper(d.ID)
	}
	return d.Label[open+1 : end]
}

// Order matters: classification is first-match-wins over this slice and the
// address alphabets overlap (bitcoin legacy and firo transparent addresses
// are also valid solana base58 strings).
var definitions = []Definition{
	{
		ID:          CustomID,
		Label:       "Custom / URL",
		Placeholder: "https://myshop.com or plain text",
	},
	{
		ID:              "monero",
		Label:           "Monero (XMR)",
		Placeholder:     "Enter Monero address",
		Scheme:          "monero",
		Pattern:         regexp.MustCompile(`^[48][1-9A-HJ-NP-Za-km-z]{94}$`),
		SupportsMessage: true,
		MessageParam:    "tx_description",
		LabelParam:      "recipient_name",
	},
	{
		ID:              "bitcoin",
		Label:           "Bitcoin (BTC)",
		Placeholder:     "Enter Bitcoin address",
		Scheme:          "bitcoin",
		Pattern:         regexp.MustCompile(`^(bc1p|bc1q|[13])[a-zA-HJ-NP-Z0-9]{25,90}$`),
		SupportsMessage: true,
		MessageParam:    "message",
		LabelParam:      "label",
	},
	{
		ID:          "ethereum",
		Label:       "Ethereum (ETH)",
		Placeholder: "Enter Ethereum address",
		Scheme:      "ethereum",
		Pattern:     regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`),
	},
	{
		ID:           "solana",
		Label:        "Solana (SOL)",
		Placeholder:  "Enter Solana address",
		Scheme:       "solana",
		Pattern:      regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`),
		MessageParam: "label",
	},
	{
		ID:              "zcash",
		Label:           "Zcash (ZEC)",
		Placeholder:     "Enter Zcash address",
		Scheme:          "zcash",
		Pattern:         regexp.MustCompile(`^t[13][a-zA-Z0-9]{33}$|^z[a-zA-Z0-9]{94}$|^zs[a-zA-Z0-9]{76}$`),
		SupportsMessage: true,
		MessageParam:    "memo",
	},
	{
		ID:              "firo",
		Label:           "Firo (FIRO)",
		Placeholder:     "Enter Firo address",
		Scheme:          "firo",
		Pattern:         regexp.MustCompile(`^a[1-9A-HJ-NP-Za-km-z]{33}$|^sm1[0-9a-z]{100,}$`),
		SupportsMessage: true,
		MessageParam:    "message",
	},
}

// All returns the registry in priority order. The returned slice is a copy.
func All() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Lookup returns the definition registered under id.
func Lookup(id string) (Definition, error) {
	for _, d := range definitions {
		if d.ID == id {
			return d, nil
		}
	}
	return Definition{}, ErrNotFound
}

// Custom returns the generic entry. It always exists.
func Custom() Definition {
	d, _ := Lookup(CustomID)
	return d
}
