//go:build !tinygo

package hal

import (
	"bytes"
	"fmt"
	"os"
	"sync"
)

const (
	DefaultFlashPath      = "tickface.flash"
	DefaultFlashSizeBytes = 64 * 1024
	DefaultFlashBlock     = 4096
)

// FileFlash is NOR flash emulated in a host file: erased bytes read 0xFF and
// a write may only clear bits.
type FileFlash struct {
	mu     sync.Mutex
	f      *os.File
	size   uint32
	block  uint32
	erased []byte
}

// FlashPath returns the host flash file, honouring TICKFACE_FLASH_PATH.
func FlashPath() string {
	if path := os.Getenv("TICKFACE_FLASH_PATH"); path != "" {
		return path
	}
	return DefaultFlashPath
}

// OpenFileFlash opens the flash file at path, creating an erased
// DefaultFlashSizeBytes image when it is missing or empty.
func OpenFileFlash(path string) (*FileFlash, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open flash %q: %w", path, err)
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat flash %q: %w", path, err)
	}
	if st.Size() == 0 {
		return newFileFlash(f, path, DefaultFlashSizeBytes, DefaultFlashBlock, true)
	}
	if st.Size() > int64(^uint32(0)) || st.Size()%DefaultFlashBlock != 0 {
		_ = f.Close()
		return nil, fmt.Errorf("flash %q: bad size %d", path, st.Size())
	}
	return newFileFlash(f, path, uint32(st.Size()), DefaultFlashBlock, false)
}

// CreateFileFlash truncates path to a fully erased image of the given geometry.
func CreateFileFlash(path string, size, block uint32) (*FileFlash, error) {
	if block == 0 || block%256 != 0 {
		return nil, fmt.Errorf("flash: invalid erase size %d", block)
	}
	if size == 0 || size%block != 0 {
		return nil, fmt.Errorf("flash: size %d not multiple of erase size %d", size, block)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open flash %q: %w", path, err)
	}
	return newFileFlash(f, path, size, block, true)
}

func newFileFlash(f *os.File, path string, size, block uint32, erase bool) (*FileFlash, error) {
	ff := &FileFlash{f: f, size: size, block: block, erased: bytes.Repeat([]byte{0xFF}, int(block))}
	if !erase {
		return ff, nil
	}
	if err := f.Truncate(int64(size)); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("truncate flash %q: %w", path, err)
	}
	if err := ff.Erase(0, size); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("erase flash %q: %w", path, err)
	}
	return ff, nil
}

func (f *FileFlash) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.f == nil {
		return nil
	}
	err := f.f.Close()
	f.f = nil
	return err
}

func (f *FileFlash) SizeBytes() uint32       { return f.size }
func (f *FileFlash) EraseBlockBytes() uint32 { return f.block }

// span trims p to the device and rejects offsets past the end.
func (f *FileFlash) span(p []byte, off uint32, op string) ([]byte, error) {
	if f.f == nil {
		return nil, ErrNotImplemented
	}
	if off >= f.size {
		return nil, fmt.Errorf("flash %s at %d: %w", op, off, os.ErrInvalid)
	}
	if rem := f.size - off; uint32(len(p)) > rem {
		p = p[:rem]
	}
	return p, nil
}

func (f *FileFlash) ReadAt(p []byte, off uint32) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, err := f.span(p, off, "read")
	if err != nil {
		return 0, err
	}
	return f.f.ReadAt(p, int64(off))
}

func (f *FileFlash) WriteAt(p []byte, off uint32) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, err := f.span(p, off, "write")
	if err != nil {
		return 0, err
	}

	cur := make([]byte, len(p))
	if _, err := f.f.ReadAt(cur, int64(off)); err != nil {
		return 0, fmt.Errorf("flash read before write at %d: %w", off, err)
	}
	for i, b := range p {
		if cur[i]&b != b {
			return 0, ErrFlashWriteRequiresErase
		}
	}
	return f.f.WriteAt(p, int64(off))
}

func (f *FileFlash) Erase(off, size uint32) error {
	if f.f == nil {
		return ErrNotImplemented
	}
	if size == 0 {
		return nil
	}
	if off%f.block != 0 || size%f.block != 0 || off >= f.size || size > f.size-off {
		return fmt.Errorf("flash erase off=%d size=%d: %w", off, size, os.ErrInvalid)
	}
	for end := off + size; off < end; off += f.block {
		if _, err := f.f.WriteAt(f.erased, int64(off)); err != nil {
			return fmt.Errorf("flash erase block at %d: %w", off, err)
		}
	}
	return nil
}
