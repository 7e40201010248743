package hal

import (
	"errors"
	"sync"
)

// OutputPin is a digital output line. Read reports the last level written.
type OutputPin interface {
	Name() string
	Read() (level bool, err error)
	Write(level bool) error
}

// ledPin drives an LED-style load, remembering its level since LED has no
// readback.
type ledPin struct {
	mu    sync.Mutex
	led   LED
	name  string
	level bool
}

func newLEDPin(name string, led LED) OutputPin {
	if led == nil {
		return nil
	}
	return &ledPin{led: led, name: name}
}

func (p *ledPin) Name() string { return p.name }

func (p *ledPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level, nil
}

func (p *ledPin) Write(level bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
	if level {
		p.led.High()
		return nil
	}
	p.led.Low()
	return nil
}

// activeLowPin is for loads switched on by pulling the line low.
type activeLowPin struct {
	OutputPin
}

func (p activeLowPin) Read() (bool, error) {
	level, err := p.OutputPin.Read()
	return !level, err
}

func (p activeLowPin) Write(level bool) error { return p.OutputPin.Write(!level) }

// fanoutPin mirrors writes onto several outputs. Reads come from the first one.
type fanoutPin struct {
	name string
	pins []OutputPin
}

// newFanoutPin skips nil pins and returns nil when none are left.
func newFanoutPin(name string, pins ...OutputPin) OutputPin {
	live := make([]OutputPin, 0, len(pins))
	for _, p := range pins {
		if p != nil {
			live = append(live, p)
		}
	}
	switch len(live) {
	case 0:
		return nil
	case 1:
		return live[0]
	}
	return &fanoutPin{name: name, pins: live}
}

func (p *fanoutPin) Name() string        { return p.name }
func (p *fanoutPin) Read() (bool, error) { return p.pins[0].Read() }

func (p *fanoutPin) Write(level bool) error {
	var errs []error
	for _, pin := range p.pins {
		if err := pin.Write(level); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
