//go:build !tinygo

package hal

import "sync"

// hostConnection is the phone link as seen by the desktop host. Every set is
// reported, duplicates included; coalescing is the consumer's job.
type hostConnection struct {
	mu        sync.Mutex
	connected bool
	ch        chan bool
}

func newHostConnection(connected bool) *hostConnection {
	return &hostConnection{connected: connected, ch: make(chan bool, 16)}
}

func (c *hostConnection) Peek() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

func (c *hostConnection) Events() <-chan bool { return c.ch }

func (c *hostConnection) set(connected bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = connected
	select {
	case c.ch <- connected:
	default:
	}
}

// reset sets the state without reporting it and drops anything queued.
// Used while the HAL is still being assembled, before anyone listens.
func (c *hostConnection) reset(connected bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = connected
	for {
		select {
		case <-c.ch:
		default:
			return
		}
	}
}

func (c *hostConnection) toggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = !c.connected
	select {
	case c.ch <- c.connected:
	default:
	}
	return c.connected
}
