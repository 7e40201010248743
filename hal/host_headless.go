//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64
	// Snapshot, when set, receives the final framebuffer as a PNG.
	Snapshot string
}

// RunHeadless runs the face without opening a window.
func RunHeadless(ctx context.Context, cfg HostConfig, hcfg HeadlessConfig, newApp func(HAL) (App, error)) (err error) {
	if hcfg.Hz <= 0 {
		hcfg.Hz = 30
	}
	d := time.Second / time.Duration(hcfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", hcfg.Hz)
	}

	h := newHost(cfg)
	defer h.close()

	a, err := newApp(h)
	if err != nil {
		return fmt.Errorf("start face: %w", err)
	}
	defer func() {
		if cerr := a.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if hcfg.Snapshot != "" {
			if serr := writePNG(hcfg.Snapshot, h.fb); serr != nil && err == nil {
				err = serr
			}
		}
	}()

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			h.clock.step()
			if err := a.Step(); err != nil {
				return err
			}
			tick++
			if hcfg.Ticks > 0 && tick >= hcfg.Ticks {
				return nil
			}
		}
	}
}
