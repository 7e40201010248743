package hal

// MemoryFramebuffer is an RGB565 framebuffer with no panel behind it.
//
// Present only counts calls; it is used by headless builds and tests.
type MemoryFramebuffer struct {
	width    int
	height   int
	stride   int
	buf      []byte
	presents int
}

func NewMemoryFramebuffer(width, height int) *MemoryFramebuffer {
	stride := width * 2
	return &MemoryFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (f *MemoryFramebuffer) Width() int          { return f.width }
func (f *MemoryFramebuffer) Height() int         { return f.height }
func (f *MemoryFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *MemoryFramebuffer) StrideBytes() int    { return f.stride }
func (f *MemoryFramebuffer) Buffer() []byte      { return f.buf }
func (f *MemoryFramebuffer) Presents() int       { return f.presents }

func (f *MemoryFramebuffer) Present() error {
	f.presents++
	return nil
}

func (f *MemoryFramebuffer) ClearRGB(r, g, b uint8) {
	pixel := rgb565(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}
