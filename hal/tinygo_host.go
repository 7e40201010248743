//go:build tinygo && !baremetal

package hal

import (
	"time"
)

type tinyGoHostHAL struct {
	logger  *tinyGoHostLogger
	fb      *MemoryFramebuffer
	disp    *FramebufferDisplay
	battery *tinyGoHostBattery
	conn    *tinyGoHostConnection
	vibes   *pinVibes
	flash   Flash
}

// New returns a TinyGo-on-host HAL implementation.
//
// This is used by `tinygo run` targets like linux/wasm where there is no MCU
// pin mapping. The battery drains one percent per simulated minute and the
// phone link never changes.
func New() HAL {
	l := &tinyGoHostLogger{}
	fb := NewMemoryFramebuffer(240, 240)
	b := &tinyGoHostBattery{state: BatteryState{ChargePercent: 100}, ch: make(chan BatteryState, 4)}
	go b.drain(time.Minute)
	return &tinyGoHostHAL{
		logger:  l,
		fb:      fb,
		disp:    NewFramebufferDisplay(fb),
		battery: b,
		conn:    &tinyGoHostConnection{},
		vibes:   newPinVibes(newLEDPin("MOTOR", &tinyGoHostLED{logger: l, name: "vibe"})),
		flash:   stubFlash{},
	}
}

func (h *tinyGoHostHAL) Logger() Logger         { return h.logger }
func (h *tinyGoHostHAL) Display() Display       { return h.disp }
func (h *tinyGoHostHAL) Clock() Clock           { return tinyGoHostClock{} }
func (h *tinyGoHostHAL) Battery() Battery       { return h.battery }
func (h *tinyGoHostHAL) Connection() Connection { return h.conn }
func (h *tinyGoHostHAL) Vibes() Vibes           { return h.vibes }
func (h *tinyGoHostHAL) Flash() Flash           { return h.flash }

type tinyGoHostLogger struct{}

func (l *tinyGoHostLogger) WriteLineString(s string) { println(s) }
func (l *tinyGoHostLogger) WriteLineBytes(b []byte)  { println(string(b)) }

type tinyGoHostLED struct {
	logger *tinyGoHostLogger
	name   string
}

func (l *tinyGoHostLED) High() { l.logger.WriteLineString(l.name + ": on") }
func (l *tinyGoHostLED) Low()  { l.logger.WriteLineString(l.name + ": off") }

type tinyGoHostClock struct{}

func (tinyGoHostClock) Now() time.Time { return time.Now() }
func (tinyGoHostClock) Is24Hour() bool { return true }

type tinyGoHostBattery struct {
	state BatteryState
	ch    chan BatteryState
}

func (b *tinyGoHostBattery) Peek() BatteryState          { return b.state }
func (b *tinyGoHostBattery) Events() <-chan BatteryState { return b.ch }

func (b *tinyGoHostBattery) drain(every time.Duration) {
	for b.state.ChargePercent > 0 {
		time.Sleep(every)
		b.state.ChargePercent--
		select {
		case b.ch <- b.state:
		default:
		}
	}
}

type tinyGoHostConnection struct{}

func (*tinyGoHostConnection) Peek() bool          { return true }
func (*tinyGoHostConnection) Events() <-chan bool { return nil }
