//go:build tinygo && baremetal

package hal

import (
	"machine"
	"time"
)

type serialLogger struct {
	out machine.Serialer
}

func (l *serialLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.out.WriteByte(s[i])
	}
	l.out.WriteByte('\r')
	l.out.WriteByte('\n')
}

func (l *serialLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.out.WriteByte(b[i])
	}
	l.out.WriteByte('\r')
	l.out.WriteByte('\n')
}

type pinLED struct {
	pin machine.Pin
}

func newPinLED(pin machine.Pin) *pinLED {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &pinLED{pin: pin}
}

func (l *pinLED) High() { l.pin.High() }
func (l *pinLED) Low()  { l.pin.Low() }

// deviceClock is the MCU's monotonic clock. Without a time sync it counts
// from the firmware epoch.
type deviceClock struct {
	style ClockStyle
}

func (c deviceClock) Now() time.Time { return time.Now() }

func (c deviceClock) Is24Hour() bool { return c.style != ClockStyle12h }

// loadDeviceSettings reads the settings record and falls back to defaults.
func loadDeviceSettings(f Flash, log Logger) Settings {
	s, err := LoadSettings(f)
	if err != nil && err != ErrNoSettings {
		log.WriteLineString("settings: " + err.Error())
	}
	return s
}
