package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cristianadrielbraun/payqr/internal/style"
)

// Transparent is the background color used for invoice renders.
const Transparent = "transparent"

// Options is the configuration object understood by the rendering engine.
// Field names follow the engine's JSON shape.
type Options struct {
	Width                int               `json:"width"`
	Height               int               `json:"height"`
	Data                 string            `json:"data"`
	Image                string            `json:"image,omitempty"`
	DotsOptions          DotsOptions       `json:"dotsOptions"`
	CornersSquareOptions CornerOptions     `json:"cornersSquareOptions"`
	CornersDotOptions    CornerOptions     `json:"cornersDotOptions"`
	BackgroundOptions    BackgroundOptions `json:"backgroundOptions"`
	ImageOptions         ImageOptions      `json:"imageOptions"`
}

// DotsOptions carries either Color or Gradient, never both.
type DotsOptions struct {
	Type     string    `json:"type"`
	Color    string    `json:"color,omitempty"`
	Gradient *Gradient `json:"gradient,omitempty"`
}

type Gradient struct {
	Type       string      `json:"type"`
	ColorStops []ColorStop `json:"colorStops"`
}

type ColorStop struct {
	Offset float64 `json:"offset"`
	Color  string  `json:"color"`
}

type CornerOptions struct {
	Type  string `json:"type"`
	Color string `json:"color"`
}

type BackgroundOptions struct {
	Color string `json:"color"`
}

type ImageOptions struct {
	CrossOrigin        string  `json:"crossOrigin"`
	Margin             int     `json:"margin"`
	ImageSize          float64 `json:"imageSize"`
	HideBackgroundDots bool    `json:"hideBackgroundDots"`
}

// Options maps the request onto the engine configuration.
func (r Request) Options() Options {
	s := r.Style

	dots := DotsOptions{Type: string(s.DotShape)}
	if s.UseGradient {
		dots.Gradient = &Gradient{
			Type: string(s.GradientType),
			ColorStops: []ColorStop{
				{Offset: 0, Color: s.DotColor},
				{Offset: 1, Color: s.GradientColor},
			},
		}
	} else {
		dots.Color = s.DotColor
	}

	bg := s.BackgroundColor
	if r.Invoice {
		bg = Transparent
	}

	return Options{
		Width:                r.SizePx,
		Height:               r.SizePx,
		Data:                 r.Data,
		Image:                s.LogoDataURI,
		DotsOptions:          dots,
		CornersSquareOptions: CornerOptions{Type: string(s.CornerShape), Color: s.DotColor},
		CornersDotOptions:    CornerOptions{Type: string(style.CornerDot), Color: s.DotColor},
		BackgroundOptions:    BackgroundOptions{Color: bg},
		ImageOptions: ImageOptions{
			CrossOrigin:        "anonymous",
			Margin:             5,
			ImageSize:          0.4,
			HideBackgroundDots: true,
		},
	}
}

// Snippet renders opts as the JavaScript a user can paste to reproduce the
// code. Embedded logos are replaced by a placeholder to keep it readable.
func Snippet(opts Options) (string, error) {
	if opts.Image != "" {
		opts.Image = "BASE64_IMAGE"
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(opts); err != nil {
		return "", fmt.Errorf("encode options: %w", err)
	}
	return fmt.Sprintf("const options = %s;\nnew QRCodeStyling(options).append(document.getElementById(\"qr\"));",
		strings.TrimRight(buf.String(), "\n")), nil
}
