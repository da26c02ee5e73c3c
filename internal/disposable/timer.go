// Package disposable implements the countdown that hides a generated QR code
// after a configured number of seconds.
package disposable

// DefaultTimeout is used when a timer is enabled without a positive timeout.
const DefaultTimeout = 60

// State of a Timer.
type State int

const (
	Idle State = iota
	Armed
	Expired
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case Expired:
		return "expired"
	}
	return "unknown"
}

// Timer is a tick-driven state machine: Idle -> Armed -> Expired, and back to
// Armed whenever the displayed content changes while enabled. It does no
// timekeeping of its own; callers feed it one Tick per second.
type Timer struct {
	timeout   int
	remaining int
	state     State
	onExpire  func()
}

// NewTimer returns an idle timer. onExpire, if non-nil, is called exactly
// once per Armed -> Expired transition.
func NewTimer(onExpire func()) *Timer {
	return &Timer{timeout: DefaultTimeout, onExpire: onExpire}
}

// Enable arms the timer with the given timeout in seconds.
func (t *Timer) Enable(timeout int) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	t.timeout = timeout
	t.arm()
}

// Disable returns to Idle from any state.
func (t *Timer) Disable() {
	t.state = Idle
	t.remaining = 0
}

// Rearm restarts the countdown after a content change. It is a no-op while
// disabled.
func (t *Timer) Rearm() {
	if t.state == Idle {
		return
	}
	t.arm()
}

func (t *Timer) arm() {
	t.state = Armed
	t.remaining = t.timeout
}

// Tick advances the countdown by one second and reports whether this tick
// expired it.
func (t *Timer) Tick() bool {
	if t.state != Armed {
		return false
	}
	t.remaining--
	if t.remaining > 0 {
		return false
	}
	t.remaining = 0
	t.state = Expired
	if t.onExpire != nil {
		t.onExpire()
	}
	return true
}

func (t *Timer) State() State   { return t.state }
func (t *Timer) Remaining() int { return t.remaining }
func (t *Timer) Timeout() int   { return t.timeout }

// Enabled reports whether the feature is on, expired or not.
func (t *Timer) Enabled() bool { return t.state != Idle }

// Visible is false only once the countdown has run out.
func (t *Timer) Visible() bool { return t.state != Expired }
