//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"tickface/app"
	"tickface/face"
	"tickface/hal"
	"tickface/internal/buildinfo"
)

func main() {
	var (
		hcfg         hal.HeadlessConfig
		cfg          hal.HostConfig
		startAt      string
		clockStyle   string
		printVersion bool
	)
	flag.BoolVar(&hcfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&hcfg.Hz, "hz", 30, "Tick rate in headless mode.")
	flag.Uint64Var(&hcfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&hcfg.Snapshot, "snapshot", "", "Write the final screen as PNG when a headless run ends.")
	flag.IntVar(&cfg.Speed, "speed", 1, "Simulated clock speed multiplier.")
	flag.StringVar(&startAt, "time", "", "Start the simulated clock at HH:MM today.")
	flag.IntVar(&cfg.Battery, "battery", -1, "Force the battery level in percent (-1 = read the host battery).")
	flag.BoolVar(&cfg.Disconnected, "disconnected", false, "Start with the phone disconnected.")
	flag.BoolVar(&cfg.BLE, "ble", false, "Report BLE central connections as the phone link (Linux).")
	flag.StringVar(&clockStyle, "clock", "", "Clock style auto|12|24; persisted to the settings flash.")
	flag.BoolVar(&printVersion, "version", false, "Print the version and exit.")
	flag.Parse()

	if printVersion {
		fmt.Println(buildinfo.String())
		return
	}

	if startAt != "" {
		start, err := parseStart(startAt, time.Now())
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(2)
		}
		cfg.Start = start
	}
	if clockStyle != "" {
		style, err := hal.ParseClockStyle(clockStyle)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(2)
		}
		cfg.Clock, cfg.ClockSet = style, true
	}

	newApp := func(h hal.HAL) (hal.App, error) {
		return app.New(h, face.New())
	}

	if hcfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, cfg, hcfg, newApp); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(cfg, newApp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// parseStart returns today's date (from now) at the HH:MM given in s.
func parseStart(s string, now time.Time) (time.Time, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid -time %q: want HH:MM", s)
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, now.Location()), nil
}
