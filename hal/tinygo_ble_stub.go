//go:build tinygo && baremetal && pinetime && !softdevice

package hal

// bleConnection without a radio stack: never connected, never changes.
type bleConnection struct{}

func newBLEConnection(log Logger) *bleConnection {
	log.WriteLineString("ble: built without softdevice, link stays down")
	return &bleConnection{}
}

func (*bleConnection) Peek() bool          { return false }
func (*bleConnection) Events() <-chan bool { return nil }
