// Package qrengine draws styled QR codes from render.Options and exports them
// as PNG, JPEG, SVG or PDF.
package qrengine

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/yeqown/go-qrcode/v2"

	"github.com/cristianadrielbraun/payqr/internal/render"
	"github.com/cristianadrielbraun/payqr/internal/style"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrNotConfigured     = errors.New("engine has no options")
)

// Format is an export file type.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpg"
	SVG  Format = "svg"
	PDF  Format = "pdf"
)

// ParseFormat accepts png, jpg, jpeg, svg and pdf. An empty string means PNG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "svg":
		return SVG, nil
	case "pdf":
		return PDF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

func (f Format) ContentType() string {
	switch f {
	case JPEG:
		return "image/jpeg"
	case SVG:
		return "image/svg+xml"
	case PDF:
		return "application/pdf"
	}
	return "image/png"
}

// Filename is the download name used for exports, e.g. "qr-code.svg".
func (f Format) Filename() string { return "qr-code." + string(f) }

// Engine holds the last applied options. It is not safe for concurrent use.
type Engine struct {
	opts  render.Options
	ready bool
	logo  image.Image
}

func New() *Engine { return &Engine{} }

// Update replaces the options. A logo that cannot be decoded is dropped
// and the code is drawn without it.
func (e *Engine) Update(opts render.Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", opts.Width, opts.Height)
	}
	if opts.Width > style.MaxSize || opts.Height > style.MaxSize {
		return fmt.Errorf("size %dx%d exceeds %d", opts.Width, opts.Height, style.MaxSize)
	}
	if opts.Data == "" {
		return errors.New("empty payload")
	}

	e.logo = nil
	if opts.Image != "" {
		logo, err := DecodeDataURI(opts.Image)
		if err != nil {
			log.Warn().Err(err).Msg("Logo could not be decoded, rendering without it")
		} else {
			e.logo = logo
		}
	}
	e.opts = opts
	e.ready = true
	return nil
}

// Options returns the applied options.
func (e *Engine) Options() (render.Options, bool) { return e.opts, e.ready }

// HasLogo reports whether the current options carry a usable logo.
func (e *Engine) HasLogo() bool { return e.logo != nil }

// Render draws the current code as PNG into w.
func (e *Engine) Render(w io.Writer) error {
	b, err := e.Export(PNG)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// Export encodes the current code in the given format.
func (e *Engine) Export(f Format) ([]byte, error) {
	if !e.ready {
		return nil, ErrNotConfigured
	}
	switch f {
	case PNG, JPEG:
		img, err := e.raster()
		if err != nil {
			return nil, err
		}
		return encodeRaster(img, f, e.opts.BackgroundOptions.Color)
	case SVG:
		return e.vector()
	case PDF:
		img, err := e.raster()
		if err != nil {
			return nil, err
		}
		png, err := encodeRaster(img, PNG, e.opts.BackgroundOptions.Color)
		if err != nil {
			return nil, err
		}
		return pdfPage(png)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

// Export is a one-shot helper for stateless callers.
func Export(opts render.Options, f Format) ([]byte, error) {
	e := New()
	if err := e.Update(opts); err != nil {
		return nil, err
	}
	return e.Export(f)
}

// errorCorrection is raised to the highest level when part of the code is
// covered by a logo.
func (e *Engine) errorCorrection() qrcode.EncodeOption {
	if e.logo != nil || (e.opts.Image != "" && e.opts.ImageOptions.HideBackgroundDots) {
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest)
	}
	return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart)
}

func (e *Engine) newQR() (*qrcode.QRCode, error) {
	qrc, err := qrcode.NewWith(e.opts.Data, e.errorCorrection())
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return qrc, nil
}

type nopCloser struct{ *bytes.Buffer }

func (nopCloser) Close() error { return nil }
