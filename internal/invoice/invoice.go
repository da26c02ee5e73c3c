// Package invoice lays out a printable invoice around a payment QR code.
package invoice

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/cristianadrielbraun/payqr/internal/currency"
)

const (
	DefaultBusinessName = "BUSINESS NAME"
	DefaultNumber       = "0001"
	dateLayout          = "2006-01-02"
)

// ErrInvalid wraps every validation failure of an Invoice.
var ErrInvalid = errors.New("invalid invoice")

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("decimalamount", validateDecimalAmount)
}

// validateDecimalAmount accepts non-negative decimal strings.
func validateDecimalAmount(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
	return err == nil && !d.IsNegative()
}

// Item is one free-form line on the invoice.
type Item struct {
	Label string `json:"label" validate:"required,max=80"`
	Value string `json:"value" validate:"max=80"`
}

type Invoice struct {
	BusinessName string `json:"businessName" validate:"max=120"`
	Number       string `json:"number" validate:"max=40"`
	Date         string `json:"date" validate:"max=40"`
	Items        []Item `json:"items" validate:"max=50,dive"`
	Notes        string `json:"notes" validate:"max=500"`
	Amount       string `json:"amount" validate:"omitempty,decimalamount"`
	// CurrencyID selects the ticker printed next to the total.
	CurrencyID string `json:"currency"`
}

// Validate checks field lengths and the amount format.
func (inv Invoice) Validate() error {
	if err := validate.Struct(&inv); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, ", "))
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// WithDefaults fills the blank header fields the way a printed draft shows
// them.
func (inv Invoice) WithDefaults(now time.Time) Invoice {
	if strings.TrimSpace(inv.BusinessName) == "" {
		inv.BusinessName = DefaultBusinessName
	}
	if strings.TrimSpace(inv.Number) == "" {
		inv.Number = DefaultNumber
	}
	if strings.TrimSpace(inv.Date) == "" {
		inv.Date = now.Format(dateLayout)
	}
	return inv
}

// Ticker is the unit printed after the total, e.g. "XMR". Custom and
// unknown currencies print "UNITS".
func (inv Invoice) Ticker() string {
	def, err := currency.Lookup(inv.CurrencyID)
	if err != nil {
		return currency.Custom().Ticker()
	}
	return def.Ticker()
}

// Total returns the normalized amount and whether one was given.
func (inv Invoice) Total() (string, bool) {
	s := strings.TrimSpace(inv.Amount)
	if s == "" {
		return "", false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s, true
	}
	return d.String(), true
}

// Filename is the download name, "Invoice-<number>.pdf" or
// "Invoice-Draft.pdf" without a number.
func (inv Invoice) Filename() string {
	n := strings.TrimSpace(inv.Number)
	if n == "" {
		n = "Draft"
	}
	return "Invoice-" + n + ".pdf"
}
