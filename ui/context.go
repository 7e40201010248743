package ui

import (
	"image"
	"image/color"

	"tinygo.org/x/tinyfont"
)

// Context is handed to update procs. Drawing is clipped to the damaged part
// of the layer.
type Context struct {
	d      Display
	origin image.Point
	clip   image.Rectangle
	fill   color.RGBA
	err    error
}

func (c *Context) SetFillColor(col color.RGBA) { c.fill = col }

// FillRect fills r with the fill colour. A zero-alpha colour paints nothing.
func (c *Context) FillRect(r image.Rectangle) {
	if c.fill.A == 0 || c.err != nil {
		return
	}
	r = r.Canon().Add(c.origin).Intersect(c.clip)
	if r.Empty() {
		return
	}
	c.err = c.d.FillRectangle(int16(r.Min.X), int16(r.Min.Y), int16(r.Dx()), int16(r.Dy()), c.fill)
}

// DrawText writes one line of text into box, aligned horizontally and
// centred vertically on the height of the digit '0'.
func (c *Context) DrawText(text string, font tinyfont.Fonter, box image.Rectangle, align Alignment, col color.RGBA) {
	if text == "" || font == nil || col.A == 0 || c.err != nil {
		return
	}
	_, outbox := tinyfont.LineWidth(font, text)
	x := alignX(box, int(outbox), align)
	capHeight := int(font.GetGlyph('0').Info().Height)
	baseline := box.Min.Y + (box.Dy()+capHeight)/2

	tinyfont.WriteLine(c.clipped(), font, int16(c.origin.X+x), int16(c.origin.Y+baseline), text, col)
}

// DrawImage draws img aligned horizontally and centred vertically in box.
// Pixels matching key, when keyed, and fully transparent pixels are skipped.
func (c *Context) DrawImage(img image.Image, box image.Rectangle, align Alignment, key color.RGBA, keyed bool) {
	if img == nil || c.err != nil {
		return
	}
	b := img.Bounds()
	x0 := c.origin.X + alignX(box, b.Dx(), align)
	y0 := c.origin.Y + box.Min.Y + (box.Dy()-b.Dy())/2
	d := c.clipped()

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			if px.A == 0 {
				continue
			}
			if keyed && px.R == key.R && px.G == key.G && px.B == key.B {
				continue
			}
			d.SetPixel(int16(x0+x-b.Min.X), int16(y0+y-b.Min.Y), px)
		}
	}
}

func (c *Context) clipped() *clipDisplay {
	return &clipDisplay{d: c.d, clip: c.clip}
}

// clipDisplay drops pixels outside clip.
type clipDisplay struct {
	d    Display
	clip image.Rectangle
}

func (d *clipDisplay) Size() (x, y int16) { return d.d.Size() }

func (d *clipDisplay) SetPixel(x, y int16, c color.RGBA) {
	if !(image.Point{X: int(x), Y: int(y)}).In(d.clip) {
		return
	}
	d.d.SetPixel(x, y, c)
}

func (d *clipDisplay) Display() error { return nil }
