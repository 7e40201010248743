//go:build !tinygo && linux

package hal

import (
	"fmt"

	"tinygo.org/x/bluetooth"
)

// startBLE advertises the watch over BlueZ and reports central connections
// as the phone link.
func startBLE(conn *hostConnection, log Logger) error {
	adapter := bluetooth.DefaultAdapter
	adapter.SetConnectHandler(func(_ bluetooth.Device, connected bool) {
		conn.set(connected)
		if log != nil {
			log.WriteLineString(fmt.Sprintf("ble: connected=%v", connected))
		}
	})

	if err := adapter.Enable(); err != nil {
		return fmt.Errorf("enable adapter: %w", err)
	}

	adv := adapter.DefaultAdvertisement()
	if err := adv.Configure(bluetooth.AdvertisementOptions{LocalName: "tickface"}); err != nil {
		return fmt.Errorf("configure advertisement: %w", err)
	}
	if err := adv.Start(); err != nil {
		return fmt.Errorf("start advertisement: %w", err)
	}
	if log != nil {
		log.WriteLineString("ble: advertising as tickface")
	}
	return nil
}
