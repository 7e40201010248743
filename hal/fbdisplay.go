package hal

import "image/color"

// FramebufferDisplay draws into an RGB565 Framebuffer and presents it on
// Display. Anything outside the buffer is dropped.
type FramebufferDisplay struct {
	fb Framebuffer
}

func NewFramebufferDisplay(fb Framebuffer) *FramebufferDisplay {
	return &FramebufferDisplay{fb: fb}
}

func (d *FramebufferDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

// pixels returns the backing buffer, or nil when there is nothing drawable.
func (d *FramebufferDisplay) pixels() []byte {
	if d.fb == nil || d.fb.Format() != PixelFormatRGB565 {
		return nil
	}
	buf := d.fb.Buffer()
	if len(buf) < d.fb.Height()*d.fb.StrideBytes() {
		return nil
	}
	return buf
}

func (d *FramebufferDisplay) SetPixel(x, y int16, c color.RGBA) {
	_ = d.FillRectangle(x, y, 1, 1, c)
}

func (d *FramebufferDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	buf := d.pixels()
	if buf == nil {
		return nil
	}
	x0, x1 := clampInt(int(x), 0, d.fb.Width()), clampInt(int(x)+int(width), 0, d.fb.Width())
	y0, y1 := clampInt(int(y), 0, d.fb.Height()), clampInt(int(y)+int(height), 0, d.fb.Height())
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	px := rgb565(c.R, c.G, c.B)
	stride := d.fb.StrideBytes()
	for row := y0; row < y1; row++ {
		line := buf[row*stride+x0*2 : row*stride+x1*2]
		for i := 0; i < len(line); i += 2 {
			line[i], line[i+1] = byte(px), byte(px>>8)
		}
	}
	return nil
}

func (d *FramebufferDisplay) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

// PixelRGB reads back one pixel. Out-of-range coordinates return black.
func (d *FramebufferDisplay) PixelRGB(x, y int) (r, g, b uint8) {
	buf := d.pixels()
	if buf == nil || x < 0 || y < 0 || x >= d.fb.Width() || y >= d.fb.Height() {
		return 0, 0, 0
	}
	off := y*d.fb.StrideBytes() + x*2
	return rgb888From565(uint16(buf[off]) | uint16(buf[off+1])<<8)
}
