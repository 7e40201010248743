//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

const sysfsPowerSupply = "/sys/class/power_supply"

// hostBattery reports the laptop battery when there is one, and a simulated
// value otherwise. Once the window controls touch it, it stays simulated.
// Repeated identical readings are not reported.
type hostBattery struct {
	mu        sync.Mutex
	state     BatteryState
	ch        chan BatteryState
	sysfs     string
	simulated bool
}

func newHostBattery(initial BatteryState) *hostBattery {
	return &hostBattery{state: initial, ch: make(chan BatteryState, 16)}
}

func (b *hostBattery) Peek() BatteryState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *hostBattery) Events() <-chan BatteryState { return b.ch }

func (b *hostBattery) set(st BatteryState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.setLocked(st)
}

func (b *hostBattery) setLocked(st BatteryState) {
	if st.ChargePercent > 100 {
		st.ChargePercent = 100
	}
	if st == b.state {
		return
	}
	b.state = st
	// A full queue loses its oldest reading, never the newest.
	for {
		select {
		case b.ch <- st:
			return
		default:
		}
		select {
		case <-b.ch:
		default:
		}
	}
}

func (b *hostBattery) override(st BatteryState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.simulated = true
	b.setLocked(st)
}

func (b *hostBattery) adjust(delta int) BatteryState {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.simulated = true
	st := b.state
	st.ChargePercent = uint8(clampInt(int(st.ChargePercent)+delta, 0, 100))
	b.setLocked(st)
	return b.state
}

func (b *hostBattery) toggleCharging() BatteryState {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.simulated = true
	st := b.state
	st.Charging = !st.Charging
	st.Plugged = st.Charging
	b.setLocked(st)
	return b.state
}

func (b *hostBattery) poll(stop <-chan struct{}, every time.Duration, log Logger) {
	t := time.NewTicker(every)
	defer t.Stop()

	var lastErr string
	for {
		select {
		case <-stop:
			return
		case <-t.C:
		}

		b.mu.Lock()
		dir, simulated := b.sysfs, b.simulated
		b.mu.Unlock()
		if simulated || dir == "" {
			continue
		}

		st, err := readSysfsBattery(dir)
		if err != nil {
			if msg := err.Error(); msg != lastErr && log != nil {
				log.WriteLineString("battery: " + msg)
				lastErr = msg
			}
			continue
		}
		lastErr = ""

		b.mu.Lock()
		if !b.simulated {
			b.setLocked(st)
		}
		b.mu.Unlock()
	}
}

// findSysfsBattery returns the first power supply of type "Battery" under root.
func findSysfsBattery(root string) (string, bool) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		dir := filepath.Join(root, e.Name())
		typ, err := os.ReadFile(filepath.Join(dir, "type"))
		if err != nil {
			continue
		}
		if strings.TrimSpace(string(typ)) == "Battery" {
			return dir, true
		}
	}
	return "", false
}

func readSysfsBattery(dir string) (BatteryState, error) {
	raw, err := os.ReadFile(filepath.Join(dir, "capacity"))
	if err != nil {
		return BatteryState{}, fmt.Errorf("read capacity: %w", err)
	}
	pct, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return BatteryState{}, fmt.Errorf("parse capacity %q: %w", strings.TrimSpace(string(raw)), err)
	}

	st := BatteryState{ChargePercent: uint8(clampInt(pct, 0, 100))}
	if status, err := os.ReadFile(filepath.Join(dir, "status")); err == nil {
		switch strings.TrimSpace(string(status)) {
		case "Charging":
			st.Charging = true
			st.Plugged = true
		case "Full", "Not charging":
			st.Plugged = true
		}
	}
	return st, nil
}
