package qrengine

import (
	"image/color"
	"strconv"
	"strings"
)

// parseColor reads "#RRGGBB", "RRGGBB" or "transparent". Anything else
// yields def.
func parseColor(s string, def color.RGBA) color.RGBA {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if strings.EqualFold(s, "transparent") {
		return color.RGBA{}
	}

	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return def
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return def
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// svgColor renders c for a fill attribute.
func svgColor(c color.RGBA) string {
	if c.A == 0 {
		return "none"
	}
	return "rgb(" + strconv.Itoa(int(c.R)) + "," + strconv.Itoa(int(c.G)) + "," + strconv.Itoa(int(c.B)) + ")"
}
