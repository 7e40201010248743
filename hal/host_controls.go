//go:build !tinygo && cgo

package hal

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const batteryStep = 5

// pollControls maps window keys onto the simulated watch hardware.
//
//	Up/Down  battery +/- 5 %
//	C        toggle charging
//	B        toggle phone link
//	T        toggle and persist 12h/24h
func (h *hostHAL) pollControls() {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		h.logBattery(h.battery.adjust(batteryStep))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		h.logBattery(h.battery.adjust(-batteryStep))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		h.logBattery(h.battery.toggleCharging())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		h.logger.WriteLineString(fmt.Sprintf("link: connected=%v", h.conn.toggle()))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		h.toggleClockStyle()
	}
}

func (h *hostHAL) logBattery(st BatteryState) {
	h.logger.WriteLineString(fmt.Sprintf("battery: %d%% charging=%v", st.ChargePercent, st.Charging))
}
