// Package event carries hardware notifications from the service goroutines
// to the face's single dispatch loop.
package event

import (
	"runtime"
	"sync/atomic"

	"tickface/hal"
)

// Kind identifies the payload carried by an Event.
type Kind uint8

const (
	KindBattery Kind = iota + 1
	KindConnection
)

func (k Kind) String() string {
	switch k {
	case KindBattery:
		return "battery"
	case KindConnection:
		return "connection"
	default:
		return "INVALID"
	}
}

// Event is a fixed-size notification envelope.
type Event struct {
	Kind      Kind
	Battery   hal.BatteryState
	Connected bool
}

// Battery returns a battery notification.
func Battery(st hal.BatteryState) Event { return Event{Kind: KindBattery, Battery: st} }

// Connection returns a phone link notification.
func Connection(connected bool) Event { return Event{Kind: KindConnection, Connected: connected} }

const mailboxSlots = 16

type slot struct {
	// seq is 2*cycle while the slot is free for that cycle and 2*cycle+1
	// once it holds that cycle's event.
	seq atomic.Uint64
	ev  Event
}

// Mailbox is a fixed-size multi-producer, single-consumer queue.
// It is designed for bare-metal use: no allocations, busy-wait with Gosched().
// The zero value is an empty mailbox.
type Mailbox struct {
	_     [0]func() // prevent accidental copying.
	head  atomic.Uint64
	tail  atomic.Uint64
	slots [mailboxSlots]slot
}

// TrySend attempts to enqueue an event, returning false if the mailbox is full.
func (mb *Mailbox) TrySend(ev Event) bool {
	for {
		pos := mb.head.Load()
		s := &mb.slots[pos%mailboxSlots]
		free := 2 * (pos / mailboxSlots)

		seq := s.seq.Load()
		switch {
		case seq == free:
			if !mb.head.CompareAndSwap(pos, pos+1) {
				continue
			}
			s.ev = ev
			s.seq.Store(free + 1)
			return true
		case seq < free:
			// Still holding the previous lap's event.
			return false
		}
		// Another producer claimed pos; reload head.
	}
}

// Send enqueues an event, blocking until it succeeds.
func (mb *Mailbox) Send(ev Event) {
	for !mb.TrySend(ev) {
		runtime.Gosched()
	}
}

// TryRecv attempts to dequeue one event, returning false if empty.
// Only one goroutine may receive.
func (mb *Mailbox) TryRecv() (Event, bool) {
	pos := mb.tail.Load()
	s := &mb.slots[pos%mailboxSlots]
	cycle := pos / mailboxSlots
	if s.seq.Load() != 2*cycle+1 {
		return Event{}, false
	}

	ev := s.ev
	s.ev = Event{}
	s.seq.Store(2 * (cycle + 1))
	mb.tail.Store(pos + 1)
	return ev, true
}

// Recv blocks until one event is available.
func (mb *Mailbox) Recv() Event {
	for {
		ev, ok := mb.TryRecv()
		if ok {
			return ev
		}
		runtime.Gosched()
	}
}
