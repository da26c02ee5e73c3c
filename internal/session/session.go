// Package session keeps the per-user editing state: the raw input, the
// style resolver, the debounced render request and the disposable timer.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cristianadrielbraun/payqr/internal/currency"
	"github.com/cristianadrielbraun/payqr/internal/disposable"
	"github.com/cristianadrielbraun/payqr/internal/payuri"
	"github.com/cristianadrielbraun/payqr/internal/qrengine"
	"github.com/cristianadrielbraun/payqr/internal/render"
	"github.com/cristianadrielbraun/payqr/internal/style"
)

var (
	ErrNotFound      = errors.New("session not found")
	ErrExpired       = errors.New("disposable code expired")
	ErrPresetUnknown = errors.New("unknown preset")
)

// Options configure new sessions.
type Options struct {
	Debounce          time.Duration
	DisposableTimeout int
	// TickInterval is the disposable countdown step; one second when zero.
	TickInterval time.Duration
	// Rand seeds preset and randomize draws. Nil uses the process source.
	Rand style.Rand
}

// Session is safe for concurrent use.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	text     string
	currency string
	params   payuri.Params
	invoice  bool
	resolver *style.Resolver
	settled  render.Request
	ready    bool
	engine   *qrengine.Engine
	engErr   error

	defaultTimeout int
	countdown      *disposable.Countdown
	debounce       *render.Debouncer
}

func newSession(id string, opts Options) *Session {
	s := &Session{
		ID:             id,
		CreatedAt:      time.Now(),
		resolver:       style.NewResolver(opts.Rand),
		engine:         qrengine.New(),
		defaultTimeout: opts.DisposableTimeout,
	}
	s.countdown = disposable.NewCountdown(opts.TickInterval, func() {
		log.Info().Str("session", id).Msg("Disposable code expired")
	})
	s.debounce = render.NewDebouncer(opts.Debounce, s.settle)
	s.settle()
	return s
}

// snapshotLocked requires s.mu.
func (s *Session) snapshotLocked() render.Snapshot {
	return render.Snapshot{
		Text:       s.text,
		CurrencyID: s.currency,
		Params:     s.params,
		Invoice:    s.invoice,
		Style:      s.resolver.Config(),
	}
}

// settle recomputes the render request from the latest input and pushes it
// to the engine when it changed. A change rearms the disposable timer.
func (s *Session) settle() {
	s.mu.Lock()
	req := render.Resolve(s.snapshotLocked())
	changed := !s.ready || req != s.settled
	if changed {
		s.settled = req
		s.ready = true
		s.engErr = s.engine.Update(req.Options())
		if s.engErr != nil {
			log.Warn().Err(s.engErr).Str("session", s.ID).Msg("Render engine rejected options")
		}
	}
	s.mu.Unlock()

	if changed {
		s.countdown.Rearm()
	}
}

// Apply validates and records a partial edit. The render request follows
// after the debounce period, or at the next read.
func (s *Session) Apply(in Input) error {
	if err := in.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	if in.Text != nil {
		s.text = *in.Text
	}
	if in.CurrencyID != nil {
		s.currency = *in.CurrencyID
	}
	if in.Amount != nil {
		s.params.Amount = *in.Amount
	}
	if in.Label != nil {
		s.params.Label = *in.Label
	}
	if in.Message != nil {
		s.params.Message = *in.Message
	}
	if in.Invoice != nil {
		s.invoice = *in.Invoice
	}
	in.ApplyStyle(s.resolver)
	s.mu.Unlock()

	s.debounce.Trigger()
	return nil
}

// ApplyPreset applies the named preset immediately.
func (s *Session) ApplyPreset(name string) (style.Config, error) {
	p, ok := style.FindPreset(name)
	if !ok {
		return style.Config{}, ErrPresetUnknown
	}
	s.mu.Lock()
	cfg := s.resolver.ApplyPreset(p)
	s.mu.Unlock()
	s.debounce.Trigger()
	return cfg, nil
}

func (s *Session) Randomize() style.Config {
	s.mu.Lock()
	cfg := s.resolver.Randomize()
	s.mu.Unlock()
	s.debounce.Trigger()
	return cfg
}

// SetLogo stores an already validated logo data URI.
func (s *Session) SetLogo(dataURI string) {
	s.mu.Lock()
	s.resolver.SetLogo(dataURI)
	s.mu.Unlock()
	s.debounce.Trigger()
}

// SetDisposable turns the disposable timer on or off. A non-positive
// timeout uses the session default.
func (s *Session) SetDisposable(enabled bool, timeout int) disposable.Status {
	if !enabled {
		s.countdown.Disable()
		return s.countdown.Status()
	}
	if timeout <= 0 {
		timeout = s.defaultTimeout
	}
	s.debounce.Flush()
	s.countdown.Enable(timeout)
	return s.countdown.Status()
}

// View is the state returned to clients.
type View struct {
	ID           string            `json:"id"`
	Request      render.Request    `json:"request"`
	Snapshot     render.Snapshot   `json:"snapshot"`
	ActivePreset string            `json:"activePreset,omitempty"`
	Placeholder  string            `json:"placeholder"`
	Disposable   disposable.Status `json:"disposable"`
	Visible      bool              `json:"visible"`
	RenderError  string            `json:"renderError,omitempty"`
}

// View settles pending edits and returns the current state.
func (s *Session) View() View {
	s.debounce.Flush()

	s.mu.Lock()
	v := View{
		ID:       s.ID,
		Request:  s.settled,
		Snapshot: s.snapshotLocked(),
	}
	v.ActivePreset, _ = s.resolver.ActivePreset()
	if s.engErr != nil {
		v.RenderError = s.engErr.Error()
	}
	if def, err := currency.Lookup(s.settled.CurrencyID); err == nil {
		v.Placeholder = def.Placeholder
	}
	s.mu.Unlock()

	v.Disposable = s.countdown.Status()
	v.Visible = v.Disposable.State != disposable.Expired
	return v
}

// Request settles pending edits and returns the render request.
func (s *Session) Request() render.Request {
	s.debounce.Flush()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settled
}

// Export renders the settled code. It fails with ErrExpired once the
// disposable timer has run out.
func (s *Session) Export(f qrengine.Format) ([]byte, error) {
	s.debounce.Flush()
	if !s.countdown.Visible() {
		return nil, ErrExpired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engErr != nil {
		return nil, s.engErr
	}
	return s.engine.Export(f)
}

// Snippet returns the code snippet for the settled options.
func (s *Session) Snippet() (string, error) {
	return render.Snippet(s.Request().Options())
}

// Close stops background timers.
func (s *Session) Close() {
	s.debounce.Stop()
	s.countdown.Close()
}
