//go:build !tinygo

package hal

import (
	"errors"
	"testing"
)

// WithoutBLE makes newHost take the simulated-link fallback for the rest of t.
func WithoutBLE(t *testing.T) {
	t.Helper()
	prev := bleStarter
	bleStarter = func(*hostConnection, Logger) error { return errors.New("no adapter") }
	t.Cleanup(func() { bleStarter = prev })
}
