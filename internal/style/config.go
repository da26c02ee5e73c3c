// Package style resolves the visual configuration of a payment QR code from
// manual edits, named presets and randomization.
package style

import (
	"fmt"
	"strings"
)

// DotShape is the shape of the data modules.
type DotShape string

const (
	DotSquare        DotShape = "square"
	DotDots          DotShape = "dots"
	DotRounded       DotShape = "rounded"
	DotExtraRounded  DotShape = "extra-rounded"
	DotClassy        DotShape = "classy"
	DotClassyRounded DotShape = "classy-rounded"
)

// DotShapes lists every dot shape in the order the form shows them.
var DotShapes = []DotShape{DotSquare, DotDots, DotRounded, DotExtraRounded, DotClassy, DotClassyRounded}

// CornerShape is the shape of the three finder squares.
type CornerShape string

const (
	CornerSquare       CornerShape = "square"
	CornerDot          CornerShape = "dot"
	CornerExtraRounded CornerShape = "extra-rounded"
)

var CornerShapes = []CornerShape{CornerSquare, CornerDot, CornerExtraRounded}

type GradientType string

const (
	GradientLinear GradientType = "linear"
	GradientRadial GradientType = "radial"
)

const (
	// MoneroOrange is the default dot color.
	MoneroOrange = "#F7B731"

	DefaultSize = 300
	// InvoiceSize is the fixed render size used on invoices.
	InvoiceSize = 200
	MinSize     = 100
	MaxSize     = 2000
)

// Config is the complete visual configuration of one QR code.
// GradientColor is kept while UseGradient is false so that toggling the
// gradient back on restores it.
type Config struct {
	DotColor        string       `json:"dotColor"`
	UseGradient     bool         `json:"useGradient"`
	GradientColor   string       `json:"gradientColor"`
	GradientType    GradientType `json:"gradientType"`
	BackgroundColor string       `json:"backgroundColor"`
	DotShape        DotShape     `json:"dotShape"`
	CornerShape     CornerShape  `json:"cornerShape"`
	LogoDataURI     string       `json:"logoDataUri,omitempty"`
	SizePx          int          `json:"sizePx"`
}

// Default returns the configuration a new form starts with.
func Default() Config {
	return Config{
		DotColor:        MoneroOrange,
		UseGradient:     false,
		GradientColor:   "#000000",
		GradientType:    GradientLinear,
		BackgroundColor: "#FFFFFF",
		DotShape:        DotSquare,
		CornerShape:     CornerSquare,
		SizePx:          DefaultSize,
	}
}

func ParseDotShape(s string) (DotShape, error) {
	for _, d := range DotShapes {
		if string(d) == strings.ToLower(s) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown dot shape %q", s)
}

func ParseCornerShape(s string) (CornerShape, error) {
	for _, c := range CornerShapes {
		if string(c) == strings.ToLower(s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown corner shape %q", s)
}

func ParseGradientType(s string) (GradientType, error) {
	switch GradientType(strings.ToLower(s)) {
	case GradientLinear:
		return GradientLinear, nil
	case GradientRadial:
		return GradientRadial, nil
	}
	return "", fmt.Errorf("unknown gradient type %q", s)
}

// IsHexColor reports whether s is a "#RRGGBB" color.
func IsHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// sameColor compares hex colors case-insensitively.
func sameColor(a, b string) bool { return strings.EqualFold(a, b) }
