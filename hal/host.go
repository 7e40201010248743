//go:build !tinygo

package hal

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

const (
	hostScreenWidth  = 240
	hostScreenHeight = 240
)

// HostConfig configures the desktop HAL.
type HostConfig struct {
	// Start is the initial simulated wall-clock time. Zero means now.
	Start time.Time
	// Speed multiplies the simulated clock rate. Values below 1 mean 1.
	Speed int
	// Battery forces a simulated charge level. Negative means read the host battery.
	Battery int
	// Disconnected starts the simulated phone link disconnected.
	Disconnected bool
	// BLE reports connections from BLE centrals instead of the simulated link.
	BLE bool
	// Clock overrides and persists the clock style when ClockSet is true.
	Clock    ClockStyle
	ClockSet bool
	// FlashPath is the settings flash file. Empty means FlashPath().
	FlashPath string

	buzzer bool
}

type hostHAL struct {
	logger  *hostLogger
	motor   *hostLED
	fb      *MemoryFramebuffer
	disp    *FramebufferDisplay
	clock   *hostClock
	battery *hostBattery
	conn    *hostConnection
	vibes   *pinVibes
	flash   *FileFlash

	settings Settings
	stop     chan struct{}
	stopOnce sync.Once
}

// bleStarter is replaced in tests to force the simulated-link fallback.
var bleStarter = startBLE

// New returns a host HAL implementation with default settings.
func New() HAL {
	return newHost(HostConfig{Battery: -1})
}

func newHost(cfg HostConfig) *hostHAL {
	logger := &hostLogger{w: os.Stdout}

	path := cfg.FlashPath
	if path == "" {
		path = FlashPath()
	}
	var flash Flash
	ff, err := OpenFileFlash(path)
	if err != nil {
		logger.WriteLineString("settings: " + err.Error())
	} else {
		flash = ff
	}

	settings, err := LoadSettings(flash)
	if err != nil && !errors.Is(err, ErrNoSettings) {
		logger.WriteLineString("settings: " + err.Error())
	}
	if cfg.ClockSet {
		settings.Clock = cfg.Clock
		if err := SaveSettings(flash, settings); err != nil {
			logger.WriteLineString("settings: " + err.Error())
		}
	}

	motor := &hostLED{logger: logger, name: "vibe"}
	var buzzer OutputPin
	if cfg.buzzer {
		buzzer = newHostBuzzer()
	}

	h := &hostHAL{
		logger:   logger,
		motor:    motor,
		fb:       NewMemoryFramebuffer(hostScreenWidth, hostScreenHeight),
		clock:    newHostClock(cfg.Start, cfg.Speed, settings.Clock, LocaleUses12h(hostLocale())),
		conn:     newHostConnection(!cfg.Disconnected),
		vibes:    newPinVibes(newFanoutPin("VIBE", newLEDPin("MOTOR", motor), buzzer)),
		flash:    ff,
		settings: settings,
		stop:     make(chan struct{}),
	}
	h.disp = NewFramebufferDisplay(h.fb)

	h.battery = newHostBattery(BatteryState{ChargePercent: 100})
	if cfg.Battery >= 0 {
		h.battery.override(BatteryState{ChargePercent: uint8(clampInt(cfg.Battery, 0, 100))})
	} else if dir, ok := findSysfsBattery(sysfsPowerSupply); ok {
		h.battery.sysfs = dir
		if st, err := readSysfsBattery(dir); err == nil {
			h.battery.set(st)
		} else {
			logger.WriteLineString("battery: " + err.Error())
		}
		go h.battery.poll(h.stop, 30*time.Second, logger)
	}

	if cfg.BLE {
		h.conn.reset(false)
		if err := bleStarter(h.conn, logger); err != nil {
			logger.WriteLineString("ble: " + err.Error() + ", using simulated link")
			h.conn.reset(!cfg.Disconnected)
		}
	}

	logger.WriteLineString(fmt.Sprintf("settings: clock=%s 24h=%v", settings.Clock, h.clock.Is24Hour()))
	return h
}

func (h *hostHAL) Logger() Logger         { return h.logger }
func (h *hostHAL) Display() Display       { return h.disp }
func (h *hostHAL) Clock() Clock           { return h.clock }
func (h *hostHAL) Battery() Battery       { return h.battery }
func (h *hostHAL) Connection() Connection { return h.conn }
func (h *hostHAL) Vibes() Vibes           { return h.vibes }
func (h *hostHAL) Flash() Flash {
	if h.flash == nil {
		return nil
	}
	return h.flash
}

// toggleClockStyle flips between 12h and 24h and persists the choice.
func (h *hostHAL) toggleClockStyle() {
	style := ClockStyle24h
	if h.clock.Is24Hour() {
		style = ClockStyle12h
	}
	h.clock.setStyle(style)
	h.settings.Clock = style
	if err := SaveSettings(h.Flash(), h.settings); err != nil {
		h.logger.WriteLineString("settings: " + err.Error())
		return
	}
	h.logger.WriteLineString("settings: clock=" + style.String())
}

func (h *hostHAL) close() {
	h.stopOnce.Do(func() {
		close(h.stop)
		h.vibes.Cancel()
		if h.flash != nil {
			_ = h.flash.Close()
		}
	})
}

func hostLocale() string {
	for _, key := range []string{"LC_ALL", "LC_TIME", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostLED struct {
	mu     sync.Mutex
	on     bool
	name   string
	logger *hostLogger
}

func (l *hostLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = true
	l.logger.WriteLineString(l.name + ": on")
}

func (l *hostLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = false
	l.logger.WriteLineString(l.name + ": off")
}
