package ui

import (
	"image"
	"image/color"
)

// BitmapLayer shows an image, optionally with one colour treated as
// transparent.
type BitmapLayer struct {
	layer *Layer
	img   image.Image
	align Alignment
	key   color.RGBA
	keyed bool
}

// NewBitmapLayer returns an empty, centred bitmap layer.
func NewBitmapLayer(frame image.Rectangle) *BitmapLayer {
	b := &BitmapLayer{layer: NewLayer(frame), align: AlignCenter}
	b.layer.update = b.draw
	return b
}

func (b *BitmapLayer) Layer() *Layer { return b.layer }

func (b *BitmapLayer) SetBitmap(img image.Image) {
	b.img = img
	b.layer.MarkDirty()
}

func (b *BitmapLayer) SetAlignment(a Alignment) {
	if a == b.align {
		return
	}
	b.align = a
	b.layer.MarkDirty()
}

// SetColorKey makes pixels of colour c transparent.
func (b *BitmapLayer) SetColorKey(c color.RGBA) {
	b.key = c
	b.keyed = true
	b.layer.MarkDirty()
}

func (b *BitmapLayer) Destroy() { b.layer.Destroy() }

func (b *BitmapLayer) draw(l *Layer, ctx *Context) {
	ctx.DrawImage(b.img, l.Bounds(), b.align, b.key, b.keyed)
}
