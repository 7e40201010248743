//go:build tinygo && bootdebug

package app

import (
	"image/color"
	"sync"
	"sync/atomic"
	"time"

	"tickface/hal"

	"tinygo.org/x/tinyfont"
)

// Boot diagnostics for bring-up on a new board: the last step reached is
// banner-printed on the panel and repeated on the serial log so a hang
// still shows where it happened.
var (
	lastBootStep  atomic.Pointer[string]
	bootHeartbeat sync.Once
)

func bootStep(h hal.HAL, msg string) {
	lastBootStep.Store(&msg)
	if h == nil {
		return
	}
	if l := h.Logger(); l != nil {
		bootHeartbeat.Do(func() { go repeatBootStep(l, 250*time.Millisecond) })
	}

	d := h.Display()
	if d == nil {
		return
	}
	w, _ := d.Size()
	white := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	_ = d.FillRectangle(0, 0, w, 32, color.RGBA{A: 0xFF})
	tinyfont.WriteLine(d, fatalFont, 0, 12, "tickface boot", white)
	tinyfont.WriteLine(d, fatalFont, 0, 28, msg, white)
	_ = d.Display()
}

func repeatBootStep(l hal.Logger, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for range t.C {
		if step := lastBootStep.Load(); step != nil {
			l.WriteLineString("bootdiag: " + *step)
		}
	}
}
