package hal

import (
	"errors"
	"sync"
	"time"
)

// VibePattern is a list of alternating on/off durations, starting with "on".
type VibePattern []time.Duration

// VibeDoublePulse is the disconnect alert.
var VibeDoublePulse = VibePattern{100 * time.Millisecond, 100 * time.Millisecond, 100 * time.Millisecond}

var ErrEmptyPattern = errors.New("vibes: empty pattern")

// Total returns the time the pattern takes to play.
func (p VibePattern) Total() time.Duration {
	var d time.Duration
	for _, seg := range p {
		d += seg
	}
	return d
}

// pinVibes plays patterns on a motor output pin.
//
// Each pattern runs on its own goroutine. A newer Enqueue or a Cancel bumps
// the generation and the older player stops at its next segment boundary.
type pinVibes struct {
	mu    sync.Mutex
	pin   OutputPin
	gen   uint64
	sleep func(time.Duration)
}

func newPinVibes(pin OutputPin) *pinVibes {
	return &pinVibes{pin: pin, sleep: time.Sleep}
}

func (v *pinVibes) Enqueue(p VibePattern) error {
	if len(p) == 0 {
		return ErrEmptyPattern
	}
	if v.pin == nil {
		return ErrNotImplemented
	}

	v.mu.Lock()
	v.gen++
	gen := v.gen
	v.mu.Unlock()

	pattern := append(VibePattern(nil), p...)
	go v.play(gen, pattern)
	return nil
}

func (v *pinVibes) Cancel() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen++
	if v.pin != nil {
		_ = v.pin.Write(false)
	}
}

func (v *pinVibes) play(gen uint64, p VibePattern) {
	for i, d := range p {
		if !v.write(gen, i%2 == 0) {
			return
		}
		v.sleep(d)
	}
	v.write(gen, false)
}

// write drives the pin only while gen is still the current pattern.
func (v *pinVibes) write(gen uint64, level bool) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.gen != gen {
		return false
	}
	_ = v.pin.Write(level)
	return true
}
