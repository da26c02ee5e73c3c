package disposable

import (
	"sync"
	"time"
)

// Countdown drives a Timer from a real ticker. Each arm or disable stops the
// previous ticker, so at most one ticker goroutine is live at a time.
type Countdown struct {
	mu       sync.Mutex
	timer    *Timer
	interval time.Duration
	onExpire func()
	stop     chan struct{}
	gen      uint64
}

// NewCountdown returns an idle countdown ticking every interval (one second
// when interval is zero). onExpire runs on the ticker goroutine after the
// internal lock is released.
func NewCountdown(interval time.Duration, onExpire func()) *Countdown {
	if interval <= 0 {
		interval = time.Second
	}
	return &Countdown{timer: NewTimer(nil), interval: interval, onExpire: onExpire}
}

func (c *Countdown) Enable(timeout int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timer.Enable(timeout)
	c.restartLocked()
}

// Rearm resets the countdown if enabled.
func (c *Countdown) Rearm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.timer.Enabled() {
		return
	}
	c.timer.Rearm()
	c.restartLocked()
}

func (c *Countdown) Disable() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timer.Disable()
	c.stopLocked()
}

// Close stops the ticker without changing the timer state.
func (c *Countdown) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// Status is a point-in-time copy of the timer.
type Status struct {
	State     State  `json:"-"`
	StateName string `json:"state"`
	Timeout   int    `json:"timeoutSeconds"`
	Remaining int    `json:"remainingSeconds"`
}

func (c *Countdown) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		State:     c.timer.State(),
		StateName: c.timer.State().String(),
		Timeout:   c.timer.Timeout(),
		Remaining: c.timer.Remaining(),
	}
}

// Visible reports whether the output may currently be shown.
func (c *Countdown) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer.Visible()
}

func (c *Countdown) stopLocked() {
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
	c.gen++
}

// restartLocked requires c.mu.
func (c *Countdown) restartLocked() {
	c.stopLocked()
	stop := make(chan struct{})
	c.stop = stop
	go c.run(stop, c.gen)
}

func (c *Countdown) run(stop chan struct{}, gen uint64) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		c.mu.Lock()
		if c.gen != gen {
			// superseded between the tick and the lock
			c.mu.Unlock()
			return
		}
		expired := c.timer.Tick()
		if expired {
			c.stop = nil
			c.gen++
		}
		c.mu.Unlock()

		if expired {
			if c.onExpire != nil {
				c.onExpire()
			}
			return
		}
	}
}
