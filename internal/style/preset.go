package style

import "strings"

// PresetOptions are the style fields a preset sets. Logo and size are never
// part of a preset.
type PresetOptions struct {
	DotColor        string       `json:"dotColor"`
	UseGradient     bool         `json:"useGradient"`
	GradientColor   string       `json:"gradientColor"`
	GradientType    GradientType `json:"gradientType"`
	BackgroundColor string       `json:"backgroundColor"`
	DotShape        DotShape     `json:"dotShape"`
	CornerShape     CornerShape  `json:"cornerShape"`
}

// Preset is a named style bundle. When RandomColors is set, the dot and
// gradient colors are drawn from it instead of using the fixed ones.
type Preset struct {
	Name         string        `json:"name"`
	Options      PresetOptions `json:"options"`
	RandomColors []string      `json:"randomColors,omitempty"`
}

var presets = []Preset{
	{
		Name: "Monero",
		Options: PresetOptions{
			DotColor: MoneroOrange, GradientColor: "#000000", GradientType: GradientLinear,
			BackgroundColor: "#FFFFFF", DotShape: DotSquare, CornerShape: CornerSquare,
		},
	},
	{
		Name: "Cypherpunk",
		Options: PresetOptions{
			DotColor: "#33FF00", GradientColor: "#000000", GradientType: GradientLinear,
			BackgroundColor: "#000000", DotShape: DotDots, CornerShape: CornerDot,
		},
		RandomColors: []string{"#33FF00", "#00FF00", "#00DD00", "#22FF22", "#11BB11"},
	},
	{
		Name: "Cyberpunk",
		Options: PresetOptions{
			DotColor: "#FF00FF", UseGradient: true, GradientColor: "#00FFFF", GradientType: GradientLinear,
			BackgroundColor: "#1A1A2E", DotShape: DotClassyRounded, CornerShape: CornerExtraRounded,
		},
		RandomColors: []string{"#FF00FF", "#00FFFF", "#7B00E0", "#FF4E00", "#00FF7F"},
	},
	{
		Name: "Synthwave",
		Options: PresetOptions{
			DotColor: "#F7B731", UseGradient: true, GradientColor: "#9C27B0", GradientType: GradientLinear,
			BackgroundColor: "#0D0221", DotShape: DotRounded, CornerShape: CornerSquare,
		},
		RandomColors: []string{"#F7B731", "#9C27B0", "#FF0054", "#00F2FF", "#F9F871"},
	},
}

// Presets returns the built-in presets in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// FindPreset looks a preset up by name, ignoring case.
func FindPreset(name string) (Preset, bool) {
	for _, p := range presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

// Matches reports whether c could have been produced by applying p. For
// pooled presets any pool color is accepted for the dot and gradient colors.
func (p Preset) Matches(c Config) bool {
	o := p.Options
	if c.UseGradient != o.UseGradient ||
		c.GradientType != o.GradientType ||
		!sameColor(c.BackgroundColor, o.BackgroundColor) ||
		c.DotShape != o.DotShape ||
		c.CornerShape != o.CornerShape {
		return false
	}
	if len(p.RandomColors) == 0 {
		return sameColor(c.DotColor, o.DotColor) && sameColor(c.GradientColor, o.GradientColor)
	}
	return inPool(p.RandomColors, c.DotColor) && inPool(p.RandomColors, c.GradientColor)
}

func inPool(pool []string, color string) bool {
	for _, c := range pool {
		if sameColor(c, color) {
			return true
		}
	}
	return false
}
