package currency

import "strings"

// Classification is the result of matching free text against the registry.
type Classification struct {
	CurrencyID string `json:"currency"`
	// Text is the trimmed input.
	Text    string `json:"text"`
	Matched bool   `json:"matched"`
}

// Classify trims text and returns the first currency, in registry order,
// whose pattern accepts it. Text that matches nothing is still accepted as
// custom content.
func Classify(text string) Classification {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Classification{CurrencyID: CustomID}
	}
	for _, d := range definitions {
		if d.Pattern == nil {
			continue
		}
		if d.Pattern.MatchString(trimmed) {
			return Classification{CurrencyID: d.ID, Text: trimmed, Matched: true}
		}
	}
	return Classification{CurrencyID: CustomID, Text: trimmed}
}

// ValidateAgainst re-tests text against a single currency. The custom
// currency and pattern-less entries accept everything; unknown ids accept
// nothing.
func ValidateAgainst(text, id string) bool {
	d, err := Lookup(id)
	if err != nil {
		return false
	}
	if d.Pattern == nil {
		return true
	}
	return d.Pattern.MatchString(text)
}

// Content is the text currently entered by the user together with the
// currency it is being encoded for.
type Content struct {
	Text       string
	CurrencyID string
}

// ValidFormat is recomputed on every call so it can never drift from Text.
func (c Content) ValidFormat() bool {
	return ValidateAgainst(c.Text, c.CurrencyID)
}

// ConfirmMatch reports whether a re-typed address equals the generated one,
// ignoring surrounding whitespace.
func ConfirmMatch(generated, retyped string) bool {
	return strings.TrimSpace(generated) == strings.TrimSpace(retyped)
}

// Preview shortens long addresses to their first and last ten characters so
// they can be compared at a glance.
func Preview(addr string) string {
	if len(addr) < 20 {
		return addr
	}
	return addr[:10] + "..." + addr[len(addr)-10:]
}
