package qrengine

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// svgLogoSize is the side, in pixels, SVG logos are rasterized at before
// being scaled into the code.
const svgLogoSize = 512

var ErrUnsupportedLogo = errors.New("logo must be a PNG, JPEG or SVG image")

var logoTypes = []string{"image/png", "image/jpeg", "image/svg+xml"}

// SniffLogo returns the MIME type of an uploaded logo, or ErrUnsupportedLogo.
func SniffLogo(raw []byte) (string, error) {
	m := mimetype.Detect(raw)
	for _, t := range logoTypes {
		if m.Is(t) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: got %s", ErrUnsupportedLogo, m.String())
}

// EncodeDataURI validates raw as a logo and wraps it in a base64 data URI.
func EncodeDataURI(raw []byte) (string, error) {
	mime, err := SniffLogo(raw)
	if err != nil {
		return "", err
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}

// parseDataURI returns the payload of a "data:" URI, base64 or percent
// encoded.
func parseDataURI(uri string) ([]byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, errors.New("not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, errors.New("malformed data URI")
	}
	if strings.HasSuffix(meta, ";base64") {
		raw, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("decode base64 payload: %w", err)
		}
		return raw, nil
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("unescape payload: %w", err)
	}
	return []byte(s), nil
}

// DecodeDataURI decodes a logo data URI into an image. The declared media
// type is ignored; the payload is sniffed.
func DecodeDataURI(uri string) (image.Image, error) {
	raw, err := parseDataURI(uri)
	if err != nil {
		return nil, err
	}
	mime, err := SniffLogo(raw)
	if err != nil {
		return nil, err
	}
	if mime == "image/svg+xml" {
		return rasterizeSVG(raw, svgLogoSize)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode %s logo: %w", mime, err)
	}
	return img, nil
}

func rasterizeSVG(raw []byte, size int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse svg logo: %w", err)
	}
	w, h := size, size
	if vw, vh := icon.ViewBox.W, icon.ViewBox.H; vw > 0 && vh > 0 {
		if vw > vh {
			h = int(float64(size) * vh / vw)
		} else {
			w = int(float64(size) * vw / vh)
		}
	}
	icon.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	icon.Draw(rasterx.NewDasher(w, h, rasterx.NewScannerGV(w, h, img, img.Bounds())), 1)
	return img, nil
}
