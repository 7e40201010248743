package hal

import (
	"errors"
	"image/color"
	"time"

	"tinygo.org/x/drivers"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a bare on/off line, as TinyGo's machine.Pin offers it.
type LED interface {
	High()
	Low()
}

var (
	ErrNotImplemented          = errors.New("not implemented")
	ErrFlashWriteRequiresErase = errors.New("flash write requires erase")
)

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a pixel buffer whose contents reach the panel on Present.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Display is the drawing surface of the watch.
//
// Display() pushes the pending pixels to the panel.
type Display interface {
	drivers.Displayer
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

// Clock provides wall-clock time and the user's clock style.
type Clock interface {
	Now() time.Time
	Is24Hour() bool
}

// BatteryState is a single battery reading.
type BatteryState struct {
	ChargePercent uint8
	Charging      bool
	Plugged       bool
}

// Battery reports the charge state.
//
// Events delivers a new state whenever the reading changes.
type Battery interface {
	Peek() BatteryState
	Events() <-chan BatteryState
}

// Connection reports whether the companion phone is connected.
type Connection interface {
	Peek() bool
	Events() <-chan bool
}

// Vibes drives the vibration motor.
type Vibes interface {
	Enqueue(p VibePattern) error
	Cancel()
}

// Flash is NOR-style storage: reads anywhere, writes only clear bits, and
// Erase works on whole EraseBlockBytes blocks.
type Flash interface {
	SizeBytes() uint32
	EraseBlockBytes() uint32
	ReadAt(p []byte, off uint32) (int, error)
	WriteAt(p []byte, off uint32) (int, error)
	Erase(off, size uint32) error
}

// HAL provides the only contact point between the face and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Clock() Clock
	Battery() Battery
	Connection() Connection
	Vibes() Vibes
	Flash() Flash
}
