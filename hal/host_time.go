//go:build !tinygo

package hal

import (
	"sync"
	"time"
)

// hostClock is a simulated wall clock advanced by the runner's update step.
//
// Each step adds the real time elapsed since the previous step, multiplied by
// speed, so the face can be watched ticking through minutes quickly.
type hostClock struct {
	mu        sync.Mutex
	virtual   time.Time
	last      time.Time
	speed     time.Duration
	style     ClockStyle
	locale12h bool
	realNow   func() time.Time
}

func newHostClock(start time.Time, speed int, style ClockStyle, locale12h bool) *hostClock {
	if speed < 1 {
		speed = 1
	}
	c := &hostClock{
		speed:     time.Duration(speed),
		style:     style,
		locale12h: locale12h,
		realNow:   time.Now,
	}
	c.virtual = start
	if c.virtual.IsZero() {
		c.virtual = c.realNow()
	}
	return c
}

func (c *hostClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.virtual
}

func (c *hostClock) Is24Hour() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.style {
	case ClockStyle12h:
		return false
	case ClockStyle24h:
		return true
	default:
		return !c.locale12h
	}
}

func (c *hostClock) setStyle(style ClockStyle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.style = style
}

func (c *hostClock) step() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.realNow()
	if c.last.IsZero() {
		c.last = now
		return
	}
	elapsed := now.Sub(c.last)
	c.last = now
	if elapsed <= 0 {
		return
	}
	c.virtual = c.virtual.Add(elapsed * c.speed)
}
