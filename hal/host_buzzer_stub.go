//go:build !tinygo && !cgo

package hal

// newHostBuzzer has no audio backend without cgo.
func newHostBuzzer() OutputPin { return nil }
