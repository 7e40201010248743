//go:build !tinygo && !linux

package hal

func startBLE(_ *hostConnection, _ Logger) error {
	return ErrNotImplemented
}
