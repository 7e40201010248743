package app

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"tickface/event"
	"tickface/hal"
	"tickface/ui"
)

var (
	ErrNoDisplay = errors.New("app: no display")
	ErrClosed    = errors.New("app: loop closed")
)

// Loop owns the event sources of one face and drives it.
//
// Step must be called from a single goroutine. Battery and connection events
// are forwarded from the HAL channels into a mailbox and dispatched during
// Step, together with clock ticks.
type Loop struct {
	h    hal.HAL
	disp hal.Display
	win  *ui.Window
	face Face
	log  hal.Logger

	mb   event.Mailbox
	done chan struct{}
	wg   sync.WaitGroup

	tickUnits    TimeUnits
	onTick       TickHandler
	onBattery    BatteryHandler
	onConnection ConnectionHandler

	lastTick time.Time
	lastConn bool
	closed   bool
}

// New builds the window, starts the event forwarders and activates f.
func New(h hal.HAL, f Face) (*Loop, error) {
	disp := h.Display()
	if disp == nil {
		return nil, ErrNoDisplay
	}
	w, ht := disp.Size()
	if w <= 0 || ht <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrNoDisplay, w, ht)
	}

	l := &Loop{
		h:    h,
		disp: disp,
		win:  ui.NewWindow(w, ht),
		face: f,
		log:  h.Logger(),
		done: make(chan struct{}),
	}

	if b := h.Battery(); b != nil {
		if ch := b.Events(); ch != nil {
			l.wg.Add(1)
			go l.forwardBattery(ch)
		}
	}
	if c := h.Connection(); c != nil {
		l.lastConn = c.Peek()
		if ch := c.Events(); ch != nil {
			l.wg.Add(1)
			go l.forwardConnection(ch)
		}
	}
	l.lastTick = h.Clock().Now()

	f.Activate(l.win, l)
	l.logf("app: face active at %s", l.lastTick.Format("2006-01-02 15:04"))
	return l, nil
}

// Window returns the face's window.
func (l *Loop) Window() *ui.Window { return l.win }

// Step dispatches pending events and clock ticks, then renders and presents
// whatever was damaged.
func (l *Loop) Step() error {
	if l.closed {
		return ErrClosed
	}

	for {
		ev, ok := l.mb.TryRecv()
		if !ok {
			break
		}
		l.dispatch(ev)
	}

	now := l.h.Clock().Now()
	if changed := ChangedUnits(l.lastTick, now); changed != 0 {
		l.lastTick = now
		if l.onTick != nil && changed&l.tickUnits != 0 {
			l.onTick(now, changed)
		}
	}

	drawn, err := l.win.Render(l.disp)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if drawn {
		if err := l.disp.Display(); err != nil {
			return fmt.Errorf("present: %w", err)
		}
	}
	return nil
}

func (l *Loop) dispatch(ev event.Event) {
	switch ev.Kind {
	case event.KindBattery:
		if l.onBattery != nil {
			l.onBattery(ev.Battery)
		}
	case event.KindConnection:
		if ev.Connected == l.lastConn {
			return
		}
		l.lastConn = ev.Connected
		if l.onConnection != nil {
			l.onConnection(ev.Connected)
		}
	}
}

// Close deactivates the face and stops the forwarders. Calling it again is a no-op.
func (l *Loop) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	l.face.Deactivate()
	l.onTick = nil
	l.onBattery = nil
	l.onConnection = nil
	close(l.done)
	l.wg.Wait()
	l.logf("app: face closed")
	return nil
}

func (l *Loop) forwardBattery(ch <-chan hal.BatteryState) {
	defer l.wg.Done()
	for {
		select {
		case <-l.done:
			return
		case st, ok := <-ch:
			if !ok {
				return
			}
			if !l.post(event.Battery(st)) {
				return
			}
		}
	}
}

func (l *Loop) forwardConnection(ch <-chan bool) {
	defer l.wg.Done()
	for {
		select {
		case <-l.done:
			return
		case connected, ok := <-ch:
			if !ok {
				return
			}
			if !l.post(event.Connection(connected)) {
				return
			}
		}
	}
}

// post waits for mailbox space. It gives up when the loop closes.
func (l *Loop) post(ev event.Event) bool {
	for !l.mb.TrySend(ev) {
		select {
		case <-l.done:
			return false
		default:
			runtime.Gosched()
		}
	}
	return true
}

func (l *Loop) logf(format string, args ...any) {
	if l.log == nil {
		return
	}
	l.log.WriteLineString(fmt.Sprintf(format, args...))
}

func (l *Loop) SubscribeTick(units TimeUnits, fn TickHandler) {
	l.tickUnits = units
	l.onTick = fn
}

func (l *Loop) SubscribeBattery(fn BatteryHandler)       { l.onBattery = fn }
func (l *Loop) SubscribeConnection(fn ConnectionHandler) { l.onConnection = fn }

func (l *Loop) Now() time.Time { return l.h.Clock().Now() }
func (l *Loop) Is24Hour() bool { return l.h.Clock().Is24Hour() }

func (l *Loop) PeekBattery() hal.BatteryState {
	if b := l.h.Battery(); b != nil {
		return b.Peek()
	}
	return hal.BatteryState{}
}

func (l *Loop) PeekConnection() bool {
	if c := l.h.Connection(); c != nil {
		return c.Peek()
	}
	return false
}

func (l *Loop) Vibes() hal.Vibes   { return l.h.Vibes() }
func (l *Loop) Logger() hal.Logger { return l.h.Logger() }
