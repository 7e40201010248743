package ui

import (
	"image"
	"image/color"

	"tinygo.org/x/tinyfont"
)

// TextLayer shows a single line of text.
type TextLayer struct {
	layer *Layer
	text  string
	font  tinyfont.Fonter
	color color.RGBA
	bg    color.RGBA
	align Alignment
}

// NewTextLayer returns black, left-aligned text on a clear background.
func NewTextLayer(frame image.Rectangle) *TextLayer {
	t := &TextLayer{layer: NewLayer(frame), color: ColorBlack}
	t.layer.update = t.draw
	return t
}

func (t *TextLayer) Layer() *Layer { return t.layer }

func (t *TextLayer) Text() string { return t.text }

// SetText replaces the text. Setting the same text does not damage the layer.
func (t *TextLayer) SetText(s string) {
	if s == t.text {
		return
	}
	t.text = s
	t.layer.MarkDirty()
}

func (t *TextLayer) SetFont(f tinyfont.Fonter) {
	t.font = f
	t.layer.MarkDirty()
}

func (t *TextLayer) SetTextColor(c color.RGBA) {
	if c == t.color {
		return
	}
	t.color = c
	t.layer.MarkDirty()
}

func (t *TextLayer) SetBackgroundColor(c color.RGBA) {
	if c == t.bg {
		return
	}
	t.bg = c
	t.layer.MarkDirty()
}

func (t *TextLayer) SetAlignment(a Alignment) {
	if a == t.align {
		return
	}
	t.align = a
	t.layer.MarkDirty()
}

func (t *TextLayer) Destroy() { t.layer.Destroy() }

func (t *TextLayer) draw(l *Layer, ctx *Context) {
	ctx.SetFillColor(t.bg)
	ctx.FillRect(l.Bounds())
	ctx.DrawText(t.text, t.font, l.Bounds(), t.align, t.color)
}
