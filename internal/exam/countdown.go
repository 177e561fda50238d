package exam

import (
	"context"
	"sync"
	"time"
)

// CountdownState enumerates countdown controller states.
type CountdownState string

const (
	CountdownIdle    CountdownState = "IDLE"
	CountdownRunning CountdownState = "RUNNING"
	CountdownExpired CountdownState = "EXPIRED"
)

// Countdown drives the one-tick-per-second exam timer. There is no
// pause/resume: the only transitions are Idle→Running (Start),
// Running→Expired (Tick reaching zero, which fires onExpire exactly
// once) and Running→Idle (Halt, on submission or screen teardown so a
// late tick cannot re-trigger submission logic).
type Countdown struct {
	mu        sync.Mutex
	remaining int
	state     CountdownState
	onExpire  func()
}

// NewCountdown creates an idle countdown seeded with the exam duration.
// onExpire may be nil.
func NewCountdown(seconds int, onExpire func()) *Countdown {
	if seconds < 0 {
		seconds = 0
	}
	return &Countdown{
		remaining: seconds,
		state:     CountdownIdle,
		onExpire:  onExpire,
	}
}

// Start moves the countdown to Running. No-op unless Idle.
func (c *Countdown) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == CountdownIdle && c.remaining > 0 {
		c.state = CountdownRunning
	}
}

// Halt freezes the countdown. The remaining value keeps its last state
// and Tick becomes a no-op. No-op once Expired.
func (c *Countdown) Halt() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == CountdownRunning {
		c.state = CountdownIdle
	}
}

// Remaining returns the seconds left; never negative.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// State returns the current controller state.
func (c *Countdown) State() CountdownState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Tick decrements the counter by one second. Reaching zero transitions
// Running→Expired and invokes onExpire synchronously, exactly once.
// onExpire runs without the countdown lock held so it may call Halt or
// Remaining freely.
func (c *Countdown) Tick() {
	c.mu.Lock()
	if c.state != CountdownRunning {
		c.mu.Unlock()
		return
	}
	if c.remaining > 0 {
		c.remaining--
	}
	expired := c.remaining == 0
	if expired {
		c.state = CountdownExpired
	}
	fire := c.onExpire
	c.mu.Unlock()

	if expired && fire != nil {
		fire()
	}
}

// Run ticks once per wall-clock second until the countdown leaves the
// Running state or ctx is canceled. Cancel the context on screen
// teardown; that is the cancellation token the timer's lifetime is
// tied to.
func (c *Countdown) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.Halt()
			return
		case <-ticker.C:
			c.Tick()
			if c.State() != CountdownRunning {
				return
			}
		}
	}
}
