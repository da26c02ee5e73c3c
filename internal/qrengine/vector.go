package qrengine

import (
	"fmt"
	"html"
	"strings"

	"github.com/yeqown/go-qrcode/v2"

	"github.com/cristianadrielbraun/payqr/internal/style"
)

// matrixWriter is a qrcode.Writer that keeps the module matrix instead of
// drawing it.
type matrixWriter struct {
	grid [][]bool
}

func (m *matrixWriter) Write(mat qrcode.Matrix) error {
	m.grid = make([][]bool, mat.Height())
	for y := range m.grid {
		m.grid[y] = make([]bool, mat.Width())
	}
	mat.Iterate(qrcode.IterDirection_COLUMN, func(x, y int, v qrcode.QRValue) {
		if y < len(m.grid) && x < len(m.grid[y]) {
			m.grid[y][x] = v.IsSet()
		}
	})
	return nil
}

func (m *matrixWriter) Close() error { return nil }

func (e *Engine) matrix() ([][]bool, error) {
	qrc, err := e.newQR()
	if err != nil {
		return nil, err
	}
	var mw matrixWriter
	if err := qrc.Save(&mw); err != nil {
		return nil, fmt.Errorf("read matrix: %w", err)
	}
	if len(mw.grid) == 0 {
		return nil, fmt.Errorf("empty matrix")
	}
	return mw.grid, nil
}

// inFinder reports whether module (x, y) belongs to one of the three 7x7
// finder patterns.
func inFinder(x, y, dim int) bool {
	return (x < 7 && y < 7) || (x >= dim-7 && y < 7) || (x < 7 && y >= dim-7)
}

// vector writes a true vector SVG from the module matrix.
func (e *Engine) vector() ([]byte, error) {
	grid, err := e.matrix()
	if err != nil {
		return nil, err
	}
	o := e.opts
	dim := len(grid)
	size := float64(o.Width)
	m := size / float64(dim+2*quietZone)
	off := float64(quietZone) * m

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %d %d" width="%d" height="%d">`,
		o.Width, o.Height, o.Width, o.Height)

	fill := svgColor(parseColor(o.DotsOptions.Color, black))
	if g := o.DotsOptions.Gradient; g != nil && len(g.ColorStops) > 0 {
		b.WriteString(`<defs>`)
		if g.Type == string(style.GradientRadial) {
			fmt.Fprintf(&b, `<radialGradient id="dots" gradientUnits="userSpaceOnUse" cx="%s" cy="%s" r="%s">`, num(size/2), num(size/2), num(size/2))
		} else {
			fmt.Fprintf(&b, `<linearGradient id="dots" gradientUnits="userSpaceOnUse" x1="0" y1="0" x2="%s" y2="%s">`, num(size), num(size))
		}
		for _, s := range g.ColorStops {
			fmt.Fprintf(&b, `<stop offset="%s" stop-color="%s"/>`, num(s.Offset), svgColor(parseColor(s.Color, black)))
		}
		if g.Type == string(style.GradientRadial) {
			b.WriteString(`</radialGradient>`)
		} else {
			b.WriteString(`</linearGradient>`)
		}
		b.WriteString(`</defs>`)
		fill = "url(#dots)"
	}

	if bg := parseColor(o.BackgroundOptions.Color, white); bg.A > 0 {
		fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="%s"/>`, o.Width, o.Height, svgColor(bg))
	}

	// modules hidden behind the logo, in module coordinates
	var hideMin, hideMax float64 = -1, -1
	var logoPx, logoSide float64
	if o.Image != "" {
		side := float64(dim) * o.ImageOptions.ImageSize
		hideMin = (float64(dim) - side) / 2
		hideMax = hideMin + side
		logoSide = side*m - 2*float64(o.ImageOptions.Margin)
		logoPx = off + hideMin*m + float64(o.ImageOptions.Margin)
	}

	fmt.Fprintf(&b, `<g fill="%s">`, fill)
	shape := style.DotShape(o.DotsOptions.Type)
	for y, row := range grid {
		for x, set := range row {
			if !set || inFinder(x, y, dim) {
				continue
			}
			if o.ImageOptions.HideBackgroundDots && hideMin >= 0 {
				cx, cy := float64(x)+0.5, float64(y)+0.5
				if cx > hideMin && cx < hideMax && cy > hideMin && cy < hideMax {
					continue
				}
			}
			writeModule(&b, shape, off+float64(x)*m, off+float64(y)*m, m)
		}
	}
	b.WriteString(`</g>`)

	corner := style.CornerShape(o.CornersSquareOptions.Type)
	for _, p := range [][2]int{{0, 0}, {dim - 7, 0}, {0, dim - 7}} {
		writeFinder(&b, corner, off+float64(p[0])*m, off+float64(p[1])*m, m, fill)
	}

	if o.Image != "" && logoSide > 0 {
		fmt.Fprintf(&b, `<image x="%s" y="%s" width="%s" height="%s" preserveAspectRatio="xMidYMid meet" href="%s" xlink:href="%s"/>`,
			num(logoPx), num(logoPx), num(logoSide), num(logoSide), html.EscapeString(o.Image), html.EscapeString(o.Image))
	}

	b.WriteString(`</svg>`)
	return []byte(b.String()), nil
}

func writeModule(b *strings.Builder, shape style.DotShape, x, y, m float64) {
	switch shape {
	case style.DotDots:
		fmt.Fprintf(b, `<circle cx="%s" cy="%s" r="%s"/>`, num(x+m/2), num(y+m/2), num(m/2))
	case style.DotRounded:
		fmt.Fprintf(b, `<rect x="%s" y="%s" width="%s" height="%s" rx="%s"/>`, num(x), num(y), num(m), num(m), num(m*0.25))
	case style.DotExtraRounded:
		fmt.Fprintf(b, `<rect x="%s" y="%s" width="%s" height="%s" rx="%s"/>`, num(x), num(y), num(m), num(m), num(m*0.4))
	case style.DotClassy:
		writeLeaf(b, x, y, m, m*0.35)
	case style.DotClassyRounded:
		writeLeaf(b, x, y, m, m*0.5)
	default:
		fmt.Fprintf(b, `<rect x="%s" y="%s" width="%s" height="%s"/>`, num(x), num(y), num(m), num(m))
	}
}

// writeLeaf draws a square with the top-left and bottom-right corners
// rounded by r.
func writeLeaf(b *strings.Builder, x, y, m, r float64) {
	fmt.Fprintf(b, `<path d="M%s %sH%sV%sA%s %s 0 0 1 %s %sH%sV%sA%s %s 0 0 1 %s %sZ"/>`,
		num(x+r), num(y), num(x+m), num(y+m-r),
		num(r), num(r), num(x+m-r), num(y+m),
		num(x), num(y+r),
		num(r), num(r), num(x+r), num(y))
}

// writeFinder draws the 7x7 ring as a stroke and the 3x3 center as a dot.
func writeFinder(b *strings.Builder, corner style.CornerShape, x, y, m float64, fill string) {
	switch corner {
	case style.CornerDot:
		fmt.Fprintf(b, `<circle cx="%s" cy="%s" r="%s" fill="none" stroke="%s" stroke-width="%s"/>`,
			num(x+3.5*m), num(y+3.5*m), num(3*m), fill, num(m))
	default:
		rx := 0.0
		if corner == style.CornerExtraRounded {
			rx = 1.5 * m
		}
		fmt.Fprintf(b, `<rect x="%s" y="%s" width="%s" height="%s" rx="%s" fill="none" stroke="%s" stroke-width="%s"/>`,
			num(x+m/2), num(y+m/2), num(6*m), num(6*m), num(rx), fill, num(m))
	}
	fmt.Fprintf(b, `<circle cx="%s" cy="%s" r="%s" fill="%s"/>`, num(x+3.5*m), num(y+3.5*m), num(1.5*m), fill)
}

// num formats coordinates with at most two decimals.
func num(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
