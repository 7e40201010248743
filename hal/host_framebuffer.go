//go:build !tinygo

package hal

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// The desktop panel is a MemoryFramebuffer. The window and the headless
// snapshot both read it from the goroutine that steps the face, so no
// locking is needed.

// toRGBA expands the RGB565 contents of fb into dst, allocating when dst
// does not match the framebuffer size.
func toRGBA(dst *image.RGBA, fb *MemoryFramebuffer) *image.RGBA {
	if dst == nil || dst.Bounds().Dx() != fb.Width() || dst.Bounds().Dy() != fb.Height() {
		dst = image.NewRGBA(image.Rect(0, 0, fb.Width(), fb.Height()))
	}
	src := fb.Buffer()
	for i, j := 0, 0; i+1 < len(src) && j+3 < len(dst.Pix); i, j = i+2, j+4 {
		r, g, b := rgb888From565(uint16(src[i]) | uint16(src[i+1])<<8)
		dst.Pix[j], dst.Pix[j+1], dst.Pix[j+2], dst.Pix[j+3] = r, g, b, 0xFF
	}
	return dst
}

func writePNG(path string, fb *MemoryFramebuffer) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot %q: %w", path, err)
	}
	if err := png.Encode(out, toRGBA(nil, fb)); err != nil {
		_ = out.Close()
		return fmt.Errorf("snapshot %q: encode: %w", path, err)
	}
	return out.Close()
}
