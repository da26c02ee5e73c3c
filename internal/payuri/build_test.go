package payuri

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/payqr/internal/currency"
)

func lookup(t *testing.T, id string) currency.Definition {
	t.Helper()
	d, err := currency.Lookup(id)
	require.NoError(t, err)
	return d
}

func TestBuild(t *testing.T) {
	btc := lookup(t, "bitcoin")
	eth := lookup(t, "ethereum")
	xmr := lookup(t, "monero")
	sol := lookup(t, "solana")
	zec := lookup(t, "zcash")

	tests := []struct {
		name    string
		def     currency.Definition
		content string
		params  Params
		want    string
	}{
		{"empty content falls back", btc, "", Params{Amount: "1"}, Fallback},
		{"custom is unchanged", currency.Custom(), "https://example.com", Params{Amount: "5", Label: "x", Message: "y"}, "https://example.com"},
		{"bitcoin amount and label", btc, "1ABC", Params{Amount: "0.5", Label: "Bob"}, "bitcoin:1ABC?amount=0.5&label=Bob"},
		{"bitcoin fixed order", btc, "1ABC", Params{Message: "hi", Label: "Bob", Amount: "2"}, "bitcoin:1ABC?amount=2&label=Bob&message=hi"},
		{"ethereum drops message", eth, "0xabc", Params{Message: "hi"}, "ethereum:0xabc"},
		{"ethereum keeps amount", eth, "0xabc", Params{Amount: "1.25", Label: "ignored"}, "ethereum:0xabc?amount=1.25"},
		{"monero params", xmr, "4abc", Params{Label: "Alice", Message: "coffee"}, "monero:4abc?recipient_name=Alice&tx_description=coffee"},
		{"solana has no label or message", sol, "So1", Params{Label: "a", Message: "b"}, "solana:So1"},
		{"zcash memo", zec, "zs1", Params{Message: "thanks"}, "zcash:zs1?memo=thanks"},
		{"no params no question mark", btc, "1ABC", Params{}, "bitcoin:1ABC"},
		{"reserved characters are escaped", btc, "1ABC", Params{Label: "Bob & Co", Message: "a=b?c"}, "bitcoin:1ABC?label=Bob+%26+Co&message=a%3Db%3Fc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Build(tt.def, tt.content, tt.params))
		})
	}
}

func TestBuild_Deterministic(t *testing.T) {
	btc := lookup(t, "bitcoin")
	p := Params{Amount: "0.1", Label: "L", Message: "M"}
	assert.Equal(t, Build(btc, "1X", p), Build(btc, "1X", p))
}

func TestBuildFor(t *testing.T) {
	assert.Equal(t, "bitcoin:1ABC?amount=3", BuildFor("bitcoin", "1ABC", Params{Amount: "3"}))
	assert.Equal(t, "plain text", BuildFor("unknown", "plain text", Params{Amount: "3"}))
}
