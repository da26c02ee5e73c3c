package style

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted returns the queued values in order, modulo n.
type scripted struct {
	vals []int
	i    int
}

func (s *scripted) IntN(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, MoneroOrange, c.DotColor)
	assert.Equal(t, DotSquare, c.DotShape)
	assert.Equal(t, CornerSquare, c.CornerShape)
	assert.Equal(t, GradientLinear, c.GradientType)
	assert.Equal(t, DefaultSize, c.SizePx)
	assert.False(t, c.UseGradient)
}

func TestApplyPreset(t *testing.T) {
	t.Run("fixed preset copies options and is idempotent", func(t *testing.T) {
		r := NewResolver(NewRand(1))
		r.SetLogo("data:image/png;base64,AAAA")
		r.SetSize(512)

		p, ok := FindPreset("monero")
		require.True(t, ok)

		first := r.ApplyPreset(p)
		second := r.ApplyPreset(p)
		assert.Equal(t, first, second)
		assert.Equal(t, MoneroOrange, first.DotColor)
		assert.Equal(t, "#FFFFFF", first.BackgroundColor)
		// logo and size survive presets
		assert.Equal(t, "data:image/png;base64,AAAA", first.LogoDataURI)
		assert.Equal(t, 512, first.SizePx)
	})

	t.Run("pooled preset draws both colors from the pool", func(t *testing.T) {
		p, ok := FindPreset("Cyberpunk")
		require.True(t, ok)
		r := NewResolver(&scripted{vals: []int{2, 4}})

		c := r.ApplyPreset(p)
		assert.Equal(t, "#7B00E0", c.DotColor)
		assert.Equal(t, "#00FF7F", c.GradientColor)
		assert.True(t, c.UseGradient)
		assert.Equal(t, DotClassyRounded, c.DotShape)
		assert.Equal(t, CornerExtraRounded, c.CornerShape)
	})

	t.Run("pool colors may coincide", func(t *testing.T) {
		p, _ := FindPreset("Cypherpunk")
		r := NewResolver(&scripted{vals: []int{1}})
		c := r.ApplyPreset(p)
		assert.Equal(t, c.DotColor, c.GradientColor)
	})

	t.Run("seeded sources are reproducible", func(t *testing.T) {
		p, _ := FindPreset("Synthwave")
		a := NewResolver(NewRand(42)).ApplyPreset(p)
		b := NewResolver(NewRand(42)).ApplyPreset(p)
		assert.Equal(t, a, b)
		assert.Contains(t, p.RandomColors, a.DotColor)
		assert.Contains(t, p.RandomColors, a.GradientColor)
	})
}

func TestRandomize(t *testing.T) {
	t.Run("exact output from scripted source", func(t *testing.T) {
		r := NewResolver(&scripted{vals: []int{4, 1, 0xff0000, 0x00ff00, 0x0000ff, 1}})
		r.SetGradientType(GradientRadial)
		r.SetSize(640)

		c := r.Randomize()
		assert.Equal(t, DotClassy, c.DotShape)
		assert.Equal(t, CornerDot, c.CornerShape)
		assert.Equal(t, "#ff0000", c.DotColor)
		assert.Equal(t, "#00ff00", c.GradientColor)
		assert.Equal(t, "#0000ff", c.BackgroundColor)
		assert.True(t, c.UseGradient)
		assert.Equal(t, GradientRadial, c.GradientType)
		assert.Equal(t, 640, c.SizePx)
	})

	t.Run("shapes always belong to their sets", func(t *testing.T) {
		r := NewResolver(NewRand(7))
		for i := 0; i < 200; i++ {
			c := r.Randomize()
			assert.True(t, slices.Contains(DotShapes, c.DotShape))
			assert.True(t, slices.Contains(CornerShapes, c.CornerShape))
			assert.True(t, IsHexColor(c.DotColor), c.DotColor)
			assert.True(t, IsHexColor(c.BackgroundColor), c.BackgroundColor)
		}
	})
}

func TestSetters(t *testing.T) {
	r := NewResolver(nil)
	before := r.Config()

	after := r.SetDotColor("#123456")
	assert.Equal(t, "#123456", after.DotColor)
	after.DotColor = before.DotColor
	assert.Equal(t, before, after, "only the dot color changes")

	r.SetGradientColor("#abcdef")
	r.SetUseGradient(true)
	r.SetUseGradient(false)
	r.SetUseGradient(true)
	assert.Equal(t, "#abcdef", r.Config().GradientColor, "gradient color survives toggling")
}

func TestActivePreset(t *testing.T) {
	r := NewResolver(NewRand(3))

	p, _ := FindPreset("Synthwave")
	r.ApplyPreset(p)
	name, ok := r.ActivePreset()
	require.True(t, ok)
	assert.Equal(t, "Synthwave", name)

	r.SetDotShape(DotDots)
	_, ok = r.ActivePreset()
	assert.False(t, ok, "manual edit clears the active preset")

	r.SetDotShape(DotRounded)
	name, ok = r.ActivePreset()
	assert.True(t, ok)
	assert.Equal(t, "Synthwave", name)

	r.SetDotColor("#010101")
	_, ok = r.ActivePreset()
	assert.False(t, ok, "colors outside the pool do not match")
}

func TestParse(t *testing.T) {
	d, err := ParseDotShape("Classy-Rounded")
	require.NoError(t, err)
	assert.Equal(t, DotClassyRounded, d)
	_, err = ParseDotShape("hexagon")
	assert.Error(t, err)

	c, err := ParseCornerShape("dot")
	require.NoError(t, err)
	assert.Equal(t, CornerDot, c)

	g, err := ParseGradientType("RADIAL")
	require.NoError(t, err)
	assert.Equal(t, GradientRadial, g)

	assert.True(t, IsHexColor("#A0b1C2"))
	assert.False(t, IsHexColor("A0B1C2"))
	assert.False(t, IsHexColor("#12345g"))
}
