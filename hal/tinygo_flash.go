//go:build tinygo && baremetal

package hal

import (
	"fmt"
	"machine"
)

// machineFlash is the user data area the linker leaves after the program.
// The settings record lives at its start.
type machineFlash struct{}

func toU32(v int64) uint32 {
	return uint32(max(0, min(v, int64(^uint32(0)))))
}

func (machineFlash) SizeBytes() uint32       { return toU32(machine.Flash.Size()) }
func (machineFlash) EraseBlockBytes() uint32 { return toU32(machine.Flash.EraseBlockSize()) }

func (machineFlash) ReadAt(p []byte, off uint32) (int, error) {
	n, err := machine.Flash.ReadAt(p, int64(off))
	if err != nil {
		err = fmt.Errorf("flash read at %d: %w", off, err)
	}
	return n, err
}

func (machineFlash) WriteAt(p []byte, off uint32) (int, error) {
	n, err := machine.Flash.WriteAt(p, int64(off))
	if err != nil {
		err = fmt.Errorf("flash write at %d: %w", off, err)
	}
	return n, err
}

func (f machineFlash) Erase(off, size uint32) error {
	block := f.EraseBlockBytes()
	switch {
	case size == 0:
		return nil
	case block == 0:
		return ErrNotImplemented
	case off%block != 0 || size%block != 0:
		return fmt.Errorf("flash erase off=%d size=%d: unaligned to %d", off, size, block)
	}
	return machine.Flash.EraseBlocks(int64(off/block), int64(size/block))
}
