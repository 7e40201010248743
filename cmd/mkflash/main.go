//go:build !tinygo

// Command mkflash writes a fresh settings flash image for the desktop
// build. Point TICKFACE_FLASH_PATH at the result to use it.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"tickface/hal"
)

func main() {
	var outPath string
	var clock string
	var flashSize uint
	var eraseSize uint
	flag.StringVar(&outPath, "o", hal.DefaultFlashPath, "Output flash image path.")
	flag.StringVar(&clock, "clock", "auto", "Clock style: auto, 12 or 24.")
	flag.UintVar(&flashSize, "size", hal.DefaultFlashSizeBytes, "Flash image size (bytes).")
	flag.UintVar(&eraseSize, "erase", hal.DefaultFlashBlock, "Erase block size (bytes).")
	flag.Parse()

	if outPath == "" {
		fmt.Fprintln(os.Stderr, "error: -o is required")
		os.Exit(2)
	}
	style, err := hal.ParseClockStyle(clock)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	if err := run(outPath, uint32(flashSize), uint32(eraseSize), hal.Settings{Clock: style}); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (clock=%s)\n", outPath, style)
}

func run(outPath string, flashSize uint32, eraseSize uint32, s hal.Settings) error {
	ff, err := hal.CreateFileFlash(outPath, flashSize, eraseSize)
	if err != nil {
		return err
	}
	if err := hal.SaveSettings(ff, s); err != nil {
		_ = ff.Close()
		return err
	}

	// Read it back the way the watch will.
	got, err := hal.LoadSettings(ff)
	if err != nil {
		_ = ff.Close()
		return fmt.Errorf("verify %q: %w", outPath, err)
	}
	if got != s {
		_ = ff.Close()
		return errors.New("verify: settings mismatch")
	}
	return ff.Close()
}
