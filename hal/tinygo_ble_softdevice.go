//go:build tinygo && baremetal && pinetime && softdevice

package hal

import (
	"tinygo.org/x/bluetooth"
)

// bleConnection tracks whether a central is connected over the SoftDevice.
type bleConnection struct {
	connected bool
	ch        chan bool
}

func newBLEConnection(log Logger) *bleConnection {
	c := &bleConnection{ch: make(chan bool, 4)}

	adapter := bluetooth.DefaultAdapter
	adapter.SetConnectHandler(func(_ bluetooth.Device, connected bool) {
		c.connected = connected
		select {
		case c.ch <- connected:
		default:
		}
	})
	if err := adapter.Enable(); err != nil {
		log.WriteLineString("ble: enable: " + err.Error())
		return c
	}
	adv := adapter.DefaultAdvertisement()
	if err := adv.Configure(bluetooth.AdvertisementOptions{LocalName: "tickface"}); err != nil {
		log.WriteLineString("ble: configure: " + err.Error())
		return c
	}
	if err := adv.Start(); err != nil {
		log.WriteLineString("ble: advertise: " + err.Error())
	}
	return c
}

func (c *bleConnection) Peek() bool          { return c.connected }
func (c *bleConnection) Events() <-chan bool { return c.ch }
