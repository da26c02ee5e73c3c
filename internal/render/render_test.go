package render

import (
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/payqr/internal/payuri"
	"github.com/cristianadrielbraun/payqr/internal/style"
)

const btcAddr = "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"

func TestResolve(t *testing.T) {
	t.Run("empty content encodes fallback", func(t *testing.T) {
		req := Resolve(Snapshot{Style: style.Default()})
		assert.Equal(t, payuri.Fallback, req.Data)
		assert.False(t, req.HasContent())
		assert.Equal(t, style.DefaultSize, req.SizePx)
	})

	t.Run("detects currency and builds uri", func(t *testing.T) {
		req := Resolve(Snapshot{
			Text:   "  " + btcAddr + "\n",
			Params: payuri.Params{Amount: "0.5", Label: "Bob"},
			Style:  style.Default(),
		})
		assert.Equal(t, "bitcoin", req.CurrencyID)
		assert.True(t, req.Detected)
		assert.True(t, req.ValidFormat)
		assert.Equal(t, "bitcoin:"+btcAddr+"?amount=0.5&label=Bob", req.Data)
	})

	t.Run("forced currency wins over detection", func(t *testing.T) {
		req := Resolve(Snapshot{Text: btcAddr, CurrencyID: "ethereum", Style: style.Default()})
		assert.Equal(t, "ethereum", req.CurrencyID)
		assert.False(t, req.Detected)
		assert.False(t, req.ValidFormat)
		assert.Equal(t, "ethereum:"+btcAddr, req.Data)
	})

	t.Run("unknown forced currency falls back to custom", func(t *testing.T) {
		req := Resolve(Snapshot{Text: "hello", CurrencyID: "dogecoin", Style: style.Default()})
		assert.Equal(t, "custom", req.CurrencyID)
		assert.Equal(t, "hello", req.Data)
	})

	t.Run("invoice mode fixes size", func(t *testing.T) {
		cfg := style.Default()
		cfg.SizePx = 800
		req := Resolve(Snapshot{Text: "hi", Invoice: true, Style: cfg})
		assert.Equal(t, style.InvoiceSize, req.SizePx)
		assert.Equal(t, Transparent, req.Options().BackgroundOptions.Color)
	})

	t.Run("pure", func(t *testing.T) {
		s := Snapshot{Text: btcAddr, Params: payuri.Params{Message: "x y"}, Style: style.Default()}
		assert.Equal(t, Resolve(s), Resolve(s))
	})
}

func TestOptions(t *testing.T) {
	cfg := style.Default()
	req := Request{Data: "abc", Style: cfg, SizePx: 300}

	opts := req.Options()
	assert.Equal(t, 300, opts.Width)
	assert.Equal(t, 300, opts.Height)
	assert.Equal(t, "abc", opts.Data)
	assert.Equal(t, "square", opts.DotsOptions.Type)
	assert.Equal(t, style.MoneroOrange, opts.DotsOptions.Color)
	assert.Nil(t, opts.DotsOptions.Gradient)
	assert.Equal(t, "dot", opts.CornersDotOptions.Type)
	assert.Equal(t, "#FFFFFF", opts.BackgroundOptions.Color)
	assert.Equal(t, ImageOptions{CrossOrigin: "anonymous", Margin: 5, ImageSize: 0.4, HideBackgroundDots: true}, opts.ImageOptions)

	cfg.UseGradient = true
	cfg.GradientColor = "#123456"
	cfg.GradientType = style.GradientRadial
	opts = Request{Data: "abc", Style: cfg, SizePx: 300}.Options()
	require.NotNil(t, opts.DotsOptions.Gradient)
	assert.Empty(t, opts.DotsOptions.Color)
	assert.Equal(t, "radial", opts.DotsOptions.Gradient.Type)
	assert.Equal(t, []ColorStop{{0, style.MoneroOrange}, {1, "#123456"}}, opts.DotsOptions.Gradient.ColorStops)
}

func TestSnippet(t *testing.T) {
	cfg := style.Default()
	cfg.LogoDataURI = "data:image/png;base64,AAAA"
	opts := Request{Data: "monero:abc?amount=1&tx_description=a%26b", Style: cfg, SizePx: 300}.Options()

	out, err := Snippet(opts)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "const options = {\n"))
	assert.True(t, strings.HasSuffix(out, "};\nnew QRCodeStyling(options).append(document.getElementById(\"qr\"));"))
	assert.Contains(t, out, `"image": "BASE64_IMAGE"`)
	assert.NotContains(t, out, "AAAA")
	assert.Contains(t, out, `"data": "monero:abc?amount=1&tx_description=a%26b"`)

	// caller's options are untouched
	assert.Equal(t, "data:image/png;base64,AAAA", opts.Image)
}

func TestDebouncer(t *testing.T) {
	t.Run("coalesces bursts", func(t *testing.T) {
		var calls atomic.Int32
		d := NewDebouncer(20*time.Millisecond, func() { calls.Add(1) })
		for i := 0; i < 10; i++ {
			d.Trigger()
		}
		assert.True(t, d.Pending())
		assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, int32(1), calls.Load())
		assert.False(t, d.Pending())
	})

	t.Run("flush settles immediately", func(t *testing.T) {
		var calls atomic.Int32
		d := NewDebouncer(time.Hour, func() { calls.Add(1) })
		assert.False(t, d.Flush())
		d.Trigger()
		assert.True(t, d.Flush())
		assert.Equal(t, int32(1), calls.Load())
		assert.False(t, d.Flush())
	})

	t.Run("stop drops pending", func(t *testing.T) {
		var calls atomic.Int32
		d := NewDebouncer(5*time.Millisecond, func() { calls.Add(1) })
		d.Trigger()
		d.Stop()
		time.Sleep(30 * time.Millisecond)
		assert.Equal(t, int32(0), calls.Load())
	})

	t.Run("zero wait runs inline", func(t *testing.T) {
		calls := 0
		d := NewDebouncer(0, func() { calls++ })
		d.Trigger()
		assert.Equal(t, 1, calls)
	})

	t.Run("concurrent triggers", func(t *testing.T) {
		var calls atomic.Int32
		d := NewDebouncer(10*time.Millisecond, func() { calls.Add(1) })
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				d.Trigger()
			}()
		}
		wg.Wait()
		d.Flush()
		time.Sleep(30 * time.Millisecond)
		assert.Equal(t, int32(1), calls.Load())
	})
}
