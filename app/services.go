package app

import (
	"time"

	"tickface/hal"
	"tickface/ui"
)

// TickHandler receives the current time and the units that changed.
type TickHandler func(now time.Time, changed TimeUnits)

// BatteryHandler receives a new battery reading.
type BatteryHandler func(st hal.BatteryState)

// ConnectionHandler receives the phone link state.
type ConnectionHandler func(connected bool)

// Services is what a face may use while it is active. All handlers run on
// the loop goroutine.
type Services interface {
	// SubscribeTick replaces the tick handler. It fires when any of units changed.
	SubscribeTick(units TimeUnits, fn TickHandler)
	SubscribeBattery(fn BatteryHandler)
	SubscribeConnection(fn ConnectionHandler)

	Now() time.Time
	Is24Hour() bool
	PeekBattery() hal.BatteryState
	PeekConnection() bool

	Vibes() hal.Vibes
	Logger() hal.Logger
}

// Face is a watch face driven by the loop.
type Face interface {
	// Activate builds the face's layers under w's root and subscribes to
	// the events it needs.
	Activate(w *ui.Window, s Services)
	// Deactivate releases every layer created by Activate.
	Deactivate()
}
