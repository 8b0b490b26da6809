// ABOUTME: Countdown timer for timed quiz attempts
// ABOUTME: Guarantees the zero-crossing fires the submit exactly once

package quiz

import (
	"fmt"
	"time"
)

// Countdown tracks remaining attempt time across one-second ticks. A zero
// limit means the attempt is untimed: the countdown never fires.
type Countdown struct {
	remaining time.Duration
	timed     bool
	fired     bool
	stopped   bool
}

// NewCountdown starts a countdown with the given time limit.
func NewCountdown(limit time.Duration) *Countdown {
	return &Countdown{remaining: limit, timed: limit > 0}
}

// Timed reports whether the attempt has a time limit at all.
func (c *Countdown) Timed() bool {
	return c.timed
}

// Tick advances the countdown by one second. It reports true exactly once,
// on the tick where the remaining time reaches zero. Further ticks after
// that, or after Stop, report false. Untimed countdowns never fire.
func (c *Countdown) Tick() bool {
	if !c.timed || c.stopped || c.fired {
		return false
	}
	c.remaining -= time.Second
	if c.remaining <= 0 {
		c.remaining = 0
		c.fired = true
		return true
	}
	return false
}

// Stop cancels the countdown, e.g. on manual submit or leaving the screen.
func (c *Countdown) Stop() {
	c.stopped = true
}

// Remaining returns the time left on the clock.
func (c *Countdown) Remaining() time.Duration {
	return c.remaining
}

// Low reports whether the clock is under five minutes.
func (c *Countdown) Low() bool {
	return c.timed && c.remaining < 5*time.Minute
}

// Clock renders the remaining time as MM:SS.
func (c *Countdown) Clock() string {
	total := int(c.remaining / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
