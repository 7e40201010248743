//go:build tinygo && baremetal && pinetime

package hal

import (
	"machine"
	"sync"
	"time"

	"tinygo.org/x/drivers/st7789"
)

// PineTime wiring.
const (
	pinLCDRS        = machine.P0_18
	pinLCDCS        = machine.P0_25
	pinLCDReset     = machine.P0_26
	pinBacklightMid = machine.P0_22
	pinBacklightHi  = machine.P0_23
	pinBatteryADC   = machine.P0_31
	pinChargeInd    = machine.P0_12
	pinPowerPresent = machine.P0_19
	pinMotor        = machine.P0_16
)

type pineTimeHAL struct {
	logger  *serialLogger
	disp    *st7789.Device
	clock   deviceClock
	battery *adcBattery
	conn    *bleConnection
	vibes   *pinVibes
	flash   Flash
}

// New returns the PineTime HAL.
//
// The display is an ST7789 on SPI0, the battery is sampled through a 1:2
// divider on AIN7 and the vibration motor is switched by pulling P0.16 low.
func New() HAL {
	logger := &serialLogger{out: machine.Serial}

	disp := newPineTimeDisplay()

	flash := machineFlash{}
	settings := loadDeviceSettings(flash, logger)

	motor := activeLowPin{newLEDPin("MOTOR", newPinLED(pinMotor))}
	_ = motor.Write(false)

	h := &pineTimeHAL{
		logger:  logger,
		disp:    disp,
		clock:   deviceClock{style: settings.Clock},
		battery: newADCBattery(),
		conn:    newBLEConnection(logger),
		vibes:   newPinVibes(motor),
		flash:   flash,
	}
	go h.battery.poll(10 * time.Second)
	return h
}

func (h *pineTimeHAL) Logger() Logger         { return h.logger }
func (h *pineTimeHAL) Display() Display       { return h.disp }
func (h *pineTimeHAL) Clock() Clock           { return h.clock }
func (h *pineTimeHAL) Battery() Battery       { return h.battery }
func (h *pineTimeHAL) Connection() Connection { return h.conn }
func (h *pineTimeHAL) Vibes() Vibes           { return h.vibes }
func (h *pineTimeHAL) Flash() Flash           { return h.flash }

func newPineTimeDisplay() *st7789.Device {
	machine.SPI0.Configure(machine.SPIConfig{
		Frequency: 8_000_000,
		SCK:       machine.SPI0_SCK_PIN,
		SDO:       machine.SPI0_SDO_PIN,
		SDI:       machine.SPI0_SDI_PIN,
		Mode:      3,
	})

	d := st7789.New(machine.SPI0, pinLCDReset, pinLCDRS, pinLCDCS, pinBacklightHi)
	d.Configure(st7789.Config{
		Width:    240,
		Height:   240,
		Rotation: st7789.NO_ROTATION,
	})

	// The backlight transistors are active low.
	for _, p := range []machine.Pin{pinBacklightMid, pinBacklightHi} {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.Low()
	}
	return &d
}

const (
	batteryEmptyMillivolts = 3500
	batteryFullMillivolts  = 4200
)

// adcBattery samples the battery voltage and maps it linearly onto 0..100 %.
type adcBattery struct {
	mu       sync.Mutex
	adc      machine.ADC
	charging machine.Pin
	power    machine.Pin
	state    BatteryState
	ch       chan BatteryState
}

func newADCBattery() *adcBattery {
	machine.InitADC()
	b := &adcBattery{
		adc:      machine.ADC{Pin: pinBatteryADC},
		charging: pinChargeInd,
		power:    pinPowerPresent,
		ch:       make(chan BatteryState, 4),
	}
	b.adc.Configure(machine.ADCConfig{})
	b.charging.Configure(machine.PinConfig{Mode: machine.PinInput})
	b.power.Configure(machine.PinConfig{Mode: machine.PinInput})
	b.state = b.sample()
	return b
}

func (b *adcBattery) Peek() BatteryState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *adcBattery) Events() <-chan BatteryState { return b.ch }

func (b *adcBattery) sample() BatteryState {
	mv := int(b.adc.Get()) * 3300 * 2 / 65535
	pct := (mv - batteryEmptyMillivolts) * 100 / (batteryFullMillivolts - batteryEmptyMillivolts)
	return BatteryState{
		ChargePercent: uint8(clampInt(pct, 0, 100)),
		Charging:      !b.charging.Get(),
		Plugged:       !b.power.Get(),
	}
}

func (b *adcBattery) poll(every time.Duration) {
	for {
		time.Sleep(every)
		st := b.sample()
		b.mu.Lock()
		changed := st != b.state
		b.state = st
		b.mu.Unlock()
		if !changed {
			continue
		}
		select {
		case b.ch <- st:
		default:
		}
	}
}
