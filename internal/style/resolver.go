package style

import (
	"fmt"
	"math/rand/v2"
)

// Rand is the source of randomness used by presets and Randomize.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// NewRand returns a deterministic source for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Resolver owns the current Config. Every operation replaces the whole
// config and returns the new value.
type Resolver struct {
	cfg Config
	rnd Rand
}

// NewResolver starts from Default. A nil rnd uses the process-wide source.
func NewResolver(rnd Rand) *Resolver {
	if rnd == nil {
		rnd = globalRand{}
	}
	return &Resolver{cfg: Default(), rnd: rnd}
}

// Config returns the current configuration.
func (r *Resolver) Config() Config { return r.cfg }

// Replace swaps in c wholesale.
func (r *Resolver) Replace(c Config) Config {
	r.cfg = c
	return r.cfg
}

// ApplyPreset copies every preset option into the config. Logo and size are
// kept.
func (r *Resolver) ApplyPreset(p Preset) Config {
	next := r.cfg
	o := p.Options
	next.DotColor = o.DotColor
	next.UseGradient = o.UseGradient
	next.GradientColor = o.GradientColor
	next.GradientType = o.GradientType
	next.BackgroundColor = o.BackgroundColor
	next.DotShape = o.DotShape
	next.CornerShape = o.CornerShape
	if n := len(p.RandomColors); n > 0 {
		// drawn independently, the two may coincide
		next.DotColor = p.RandomColors[r.rnd.IntN(n)]
		next.GradientColor = p.RandomColors[r.rnd.IntN(n)]
	}
	r.cfg = next
	return r.cfg
}

// Randomize draws new shapes, colors and gradient toggle. Gradient type,
// logo and size are left as they are.
func (r *Resolver) Randomize() Config {
	next := r.cfg
	next.DotShape = DotShapes[r.rnd.IntN(len(DotShapes))]
	next.CornerShape = CornerShapes[r.rnd.IntN(len(CornerShapes))]
	next.DotColor = r.randomColor()
	next.GradientColor = r.randomColor()
	next.BackgroundColor = r.randomColor()
	next.UseGradient = r.rnd.IntN(2) == 1
	r.cfg = next
	return r.cfg
}

func (r *Resolver) randomColor() string {
	return fmt.Sprintf("#%06x", r.rnd.IntN(1<<24))
}

// ActivePreset returns the name of the first preset the current config still
// matches. It is derived on every call, so manual edits that move the config
// away from a preset clear it automatically.
func (r *Resolver) ActivePreset() (string, bool) {
	for _, p := range presets {
		if p.Matches(r.cfg) {
			return p.Name, true
		}
	}
	return "", false
}

func (r *Resolver) set(f func(*Config)) Config {
	next := r.cfg
	f(&next)
	r.cfg = next
	return r.cfg
}

func (r *Resolver) SetDotColor(c string) Config {
	return r.set(func(cfg *Config) { cfg.DotColor = c })
}

func (r *Resolver) SetUseGradient(on bool) Config {
	return r.set(func(cfg *Config) { cfg.UseGradient = on })
}

func (r *Resolver) SetGradientColor(c string) Config {
	return r.set(func(cfg *Config) { cfg.GradientColor = c })
}

func (r *Resolver) SetGradientType(t GradientType) Config {
	return r.set(func(cfg *Config) { cfg.GradientType = t })
}

func (r *Resolver) SetBackgroundColor(c string) Config {
	return r.set(func(cfg *Config) { cfg.BackgroundColor = c })
}

func (r *Resolver) SetDotShape(s DotShape) Config {
	return r.set(func(cfg *Config) { cfg.DotShape = s })
}

func (r *Resolver) SetCornerShape(s CornerShape) Config {
	return r.set(func(cfg *Config) { cfg.CornerShape = s })
}

// SetLogo stores a data URI; an empty string removes the logo.
func (r *Resolver) SetLogo(dataURI string) Config {
	return r.set(func(cfg *Config) { cfg.LogoDataURI = dataURI })
}

func (r *Resolver) SetSize(px int) Config {
	return r.set(func(cfg *Config) { cfg.SizePx = px })
}
