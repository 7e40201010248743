//go:build !tinygo && cgo

package hal

import (
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const (
	buzzerSampleRate = 44100
	buzzerToneHz     = 170
	buzzerAmplitude  = 6000
)

// hostBuzzer stands in for the vibration motor on desktop: a low square-wave
// tone that plays while the pin is high.
type hostBuzzer struct {
	mu     sync.Mutex
	ctx    *audio.Context
	player *audio.Player
	level  bool
	failed bool
}

func newHostBuzzer() OutputPin {
	return &hostBuzzer{}
}

func (b *hostBuzzer) Name() string { return "BUZZER" }

func (b *hostBuzzer) Read() (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.level, nil
}

func (b *hostBuzzer) Write(level bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.level = level
	if err := b.ensurePlayerLocked(); err != nil {
		return err
	}
	if level {
		b.player.Play()
	} else {
		b.player.Pause()
	}
	return nil
}

func (b *hostBuzzer) ensurePlayerLocked() error {
	if b.player != nil {
		return nil
	}
	if b.failed {
		return ErrNotImplemented
	}
	if b.ctx == nil {
		b.ctx = audio.NewContext(buzzerSampleRate)
	}
	p, err := b.ctx.NewPlayer(&squareWave{period: buzzerSampleRate / buzzerToneHz})
	if err != nil {
		b.failed = true
		return err
	}
	p.SetBufferSize(20 * time.Millisecond)
	p.SetVolume(0.5)
	b.player = p
	return nil
}

// squareWave is an endless 16-bit little-endian stereo square wave.
type squareWave struct {
	period int
	pos    int
}

func (w *squareWave) Read(p []byte) (int, error) {
	n := len(p) &^ 3
	for i := 0; i < n; i += 4 {
		var s int16 = buzzerAmplitude
		if w.pos >= w.period/2 {
			s = -buzzerAmplitude
		}
		w.pos++
		if w.pos >= w.period {
			w.pos = 0
		}
		p[i+0] = byte(s)
		p[i+1] = byte(s >> 8)
		p[i+2] = byte(s)
		p[i+3] = byte(s >> 8)
	}
	return n, nil
}
