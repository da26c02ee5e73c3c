package qrengine

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/yeqown/go-qrcode/writer/standard"
	xdraw "golang.org/x/image/draw"

	"github.com/cristianadrielbraun/payqr/internal/render"
	"github.com/cristianadrielbraun/payqr/internal/style"
)

// quietZone is the margin around the code, in modules.
const quietZone = 2

var (
	white = color.RGBA{255, 255, 255, 255}
	black = color.RGBA{0, 0, 0, 255}
)

// raster draws the code with the standard writer and scales the result to
// exactly Width x Height.
func (e *Engine) raster() (*image.RGBA, error) {
	qrc, err := e.newQR()
	if err != nil {
		return nil, err
	}
	o := e.opts

	dim := qrc.Dimension()
	module := o.Width / (dim + 2*quietZone)
	if module < 1 {
		module = 1
	}
	if module > 255 {
		module = 255
	}

	bg := parseColor(o.BackgroundOptions.Color, white)
	opts := []standard.ImageOption{
		standard.WithQRWidth(uint8(module)),
		standard.WithBorderWidth(quietZone * module),
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
		standard.WithCustomShape(newModuleShape(o.DotsOptions.Type, o.CornersSquareOptions.Type)),
	}
	if bg.A == 0 {
		opts = append(opts, standard.WithBgTransparent())
	} else {
		opts = append(opts, standard.WithBgColor(bg))
	}

	fg := parseColor(o.DotsOptions.Color, black)
	solid := true
	if g := o.DotsOptions.Gradient; g != nil && len(g.ColorStops) > 0 {
		opts = append(opts, standard.WithFgGradient(gradient(g)))
		solid = false
	} else {
		opts = append(opts, standard.WithFgColor(fg))
	}

	if e.logo != nil {
		// the writer rejects logos wider than a fifth of the code
		side := dim * module / 5
		if side > 2 {
			opts = append(opts, standard.WithLogoImage(fitLogo(e.logo, side-2, o.ImageOptions.Margin)))
		}
	}

	var buf bytes.Buffer
	w := standard.NewWithWriter(nopCloser{&buf}, opts...)
	if err := qrc.Save(w); err != nil {
		return nil, fmt.Errorf("draw code: %w", err)
	}

	src, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode drawn code: %w", err)
	}

	out := image.NewRGBA(image.Rect(0, 0, o.Width, o.Height))
	xdraw.NearestNeighbor.Scale(out, out.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	if bg.A == 0 && e.logo == nil {
		clearFringe(out, fg, solid)
	}
	return out, nil
}

// gradient maps the stops onto a 45 degree ramp. The standard writer only
// draws linear gradients, so radial ones are approximated the same way.
func gradient(g *render.Gradient) *standard.LinearGradient {
	stops := make([]standard.ColorStop, 0, len(g.ColorStops))
	for _, s := range g.ColorStops {
		stops = append(stops, standard.ColorStop{T: s.Offset, Color: parseColor(s.Color, black)})
	}
	return standard.NewGradient(45, stops...)
}

// fitLogo scales the logo into a side x side square, keeping its aspect
// ratio, inset by margin pixels on a transparent canvas.
func fitLogo(src image.Image, side, margin int) image.Image {
	inner := side - 2*margin
	if inner < side/2 {
		inner = side
		margin = 0
	}
	b := src.Bounds()
	w, h := inner, inner
	if b.Dx() > b.Dy() {
		h = inner * b.Dy() / b.Dx()
	} else if b.Dy() > b.Dx() {
		w = inner * b.Dx() / b.Dy()
	}
	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	x0 := (side - w) / 2
	y0 := (side - h) / 2
	xdraw.CatmullRom.Scale(dst, image.Rect(x0, y0, x0+w, y0+h), src, b, xdraw.Over, nil)
	return dst
}

// clearFringe drops the half transparent pixels antialiasing leaves around
// modules on a transparent background. With a solid foreground, light pixels
// that are not the foreground color go too.
func clearFringe(img *image.RGBA, fg color.RGBA, solid bool) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if c.A == 0 || c == fg {
				continue
			}
			light := c.R > 200 && c.G > 200 && c.B > 200
			if c.A < 255 || (solid && light) {
				img.SetRGBA(x, y, color.RGBA{})
			}
		}
	}
}

// encodeRaster writes PNG as is. JPEG has no alpha, so the image is first
// composited onto the opaque background (white when transparent).
func encodeRaster(img *image.RGBA, f Format, background string) ([]byte, error) {
	var buf bytes.Buffer
	switch f {
	case JPEG:
		bg := parseColor(background, white)
		if bg.A == 0 {
			bg = white
		}
		bounds := img.Bounds()
		out := image.NewRGBA(bounds)
		xdraw.Draw(out, bounds, &image.Uniform{C: bg}, image.Point{}, xdraw.Src)
		xdraw.Draw(out, bounds, img, bounds.Min, xdraw.Over)
		if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: 92}); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	default:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	}
	return buf.Bytes(), nil
}

// ClampSize keeps a requested pixel size inside the supported range. Zero
// or less selects the default.
func ClampSize(n int) int {
	switch {
	case n <= 0:
		return style.DefaultSize
	case n < style.MinSize:
		return style.MinSize
	case n > style.MaxSize:
		return style.MaxSize
	}
	return n
}
