package invoice

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		inv     Invoice
		wantErr string
	}{
		{name: "empty is fine", inv: Invoice{}},
		{name: "decimal amount", inv: Invoice{Amount: "0.125"}},
		{name: "integer amount", inv: Invoice{Amount: "12"}},
		{name: "negative amount", inv: Invoice{Amount: "-1"}, wantErr: "decimalamount"},
		{name: "text amount", inv: Invoice{Amount: "lots"}, wantErr: "decimalamount"},
		{name: "item without label", inv: Invoice{Items: []Item{{Value: "3"}}}, wantErr: "Label"},
		{name: "long notes", inv: Invoice{Notes: strings.Repeat("x", 501)}, wantErr: "Notes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.inv.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWithDefaults(t *testing.T) {
	inv := Invoice{}.WithDefaults(fixedNow)
	assert.Equal(t, DefaultBusinessName, inv.BusinessName)
	assert.Equal(t, DefaultNumber, inv.Number)
	assert.Equal(t, "2026-03-14", inv.Date)

	inv = Invoice{BusinessName: "Slow Bear", Number: "42", Date: "yesterday"}.WithDefaults(fixedNow)
	assert.Equal(t, "Slow Bear", inv.BusinessName)
	assert.Equal(t, "42", inv.Number)
	assert.Equal(t, "yesterday", inv.Date)
}

func TestTicker(t *testing.T) {
	assert.Equal(t, "XMR", Invoice{CurrencyID: "monero"}.Ticker())
	assert.Equal(t, "BTC", Invoice{CurrencyID: "bitcoin"}.Ticker())
	assert.Equal(t, "UNITS", Invoice{CurrencyID: "custom"}.Ticker())
	assert.Equal(t, "UNITS", Invoice{CurrencyID: "nope"}.Ticker())
}

func TestTotal(t *testing.T) {
	_, ok := Invoice{}.Total()
	assert.False(t, ok)

	total, ok := Invoice{Amount: " 1.500 "}.Total()
	assert.True(t, ok)
	assert.Equal(t, "1.5", total)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Invoice-Draft.pdf", Invoice{}.Filename())
	assert.Equal(t, "Invoice-0042.pdf", Invoice{Number: "0042"}.Filename())
}

func TestRenderPDF(t *testing.T) {
	var qr bytes.Buffer
	require.NoError(t, png.Encode(&qr, image.NewGray(image.Rect(0, 0, 50, 50))))

	inv := Invoice{
		BusinessName: "Café Sören",
		Items:        []Item{{Label: "Coffee", Value: "2"}, {Label: "Cake", Value: "1"}},
		Notes:        "Thanks!",
		Amount:       "0.05",
		CurrencyID:   "monero",
	}
	b, err := RenderPDF(inv, qr.Bytes(), fixedNow)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF-")))

	b, err = RenderPDF(Invoice{}, nil, fixedNow)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF-")))
}
