package qrengine

import (
	"github.com/yeqown/go-qrcode/writer/standard"
	"github.com/yeqown/go-qrcode/writer/standard/shapes"

	"github.com/cristianadrielbraun/payqr/internal/style"
)

type drawFunc func(ctx *standard.DrawContext)

// moduleShape implements standard.IShape with separate drawers for data
// modules and finder patterns.
type moduleShape struct {
	module drawFunc
	finder drawFunc
}

func (s *moduleShape) Draw(ctx *standard.DrawContext)       { s.module(ctx) }
func (s *moduleShape) DrawFinder(ctx *standard.DrawContext) { s.finder(ctx) }

// newModuleShape maps dot and corner shape names onto the writer's block
// drawers. Unknown names draw squares.
func newModuleShape(dot, corner string) *moduleShape {
	return &moduleShape{module: dotDrawer(style.DotShape(dot)), finder: cornerDrawer(style.CornerShape(corner))}
}

func dotDrawer(d style.DotShape) drawFunc {
	switch d {
	case style.DotDots:
		return drawCircle
	case style.DotRounded:
		return shapes.LiquidBlock()
	case style.DotExtraRounded:
		return shapes.ChainBlock()
	case style.DotClassy:
		return shapes.HStripeBlock(0.85)
	case style.DotClassyRounded:
		return shapes.VStripeBlock(0.85)
	}
	return drawSquare
}

func cornerDrawer(c style.CornerShape) drawFunc {
	switch c {
	case style.CornerDot:
		return drawCircle
	case style.CornerExtraRounded:
		return shapes.LiquidBlock()
	}
	return drawSquare
}

func drawSquare(ctx *standard.DrawContext) {
	x, y := ctx.UpperLeft()
	w, h := ctx.Edge()
	ctx.DrawRectangle(x, y, float64(w), float64(h))
	ctx.SetColor(ctx.Color())
	ctx.Fill()
}

func drawCircle(ctx *standard.DrawContext) {
	x, y := ctx.UpperLeft()
	w, h := ctx.Edge()
	r := float64(w) / 2
	ctx.DrawCircle(x+r, y+float64(h)/2, r)
	ctx.SetColor(ctx.Color())
	ctx.Fill()
}
