package ui

import (
	"image"
	"image/color"
)

const maxDamageRects = 8

// Window owns the root layer of one screen.
type Window struct {
	root       *Layer
	background color.RGBA
	damage     []image.Rectangle
}

// NewWindow returns a window covering a width x height screen. The whole
// screen starts damaged.
func NewWindow(width, height int16) *Window {
	w := &Window{background: ColorWhite}
	w.root = NewLayer(image.Rect(0, 0, int(width), int(height)))
	w.root.window = w
	w.invalidate(w.root.frame)
	return w
}

func (w *Window) RootLayer() *Layer { return w.root }

func (w *Window) BackgroundColor() color.RGBA { return w.background }

func (w *Window) SetBackgroundColor(c color.RGBA) {
	if c == w.background {
		return
	}
	w.background = c
	w.invalidate(w.root.frame)
}

// Damage returns the rectangles pending a repaint.
func (w *Window) Damage() []image.Rectangle { return w.damage }

func (w *Window) invalidate(r image.Rectangle) {
	r = r.Intersect(w.root.frame)
	if r.Empty() {
		return
	}
	for i, d := range w.damage {
		if r.In(d) {
			return
		}
		if d.In(r) {
			w.damage[i] = r
			w.compact()
			return
		}
	}
	w.damage = append(w.damage, r)
	if len(w.damage) > maxDamageRects {
		u := w.damage[0]
		for _, d := range w.damage[1:] {
			u = u.Union(d)
		}
		w.damage = append(w.damage[:0], u)
	}
}

// compact drops rectangles covered by another one.
func (w *Window) compact() {
	out := w.damage[:0]
	for i, r := range w.damage {
		covered := false
		for j, o := range w.damage {
			if i != j && r.In(o) && (r != o || j < i) {
				covered = true
				break
			}
		}
		if !covered {
			out = append(out, r)
		}
	}
	w.damage = out
}

// Render repaints every damaged rectangle: the background first, then each
// visible layer that intersects it, clipped to it. It reports whether
// anything was drawn.
func (w *Window) Render(d Display) (bool, error) {
	if len(w.damage) == 0 {
		return false, nil
	}
	for _, r := range w.damage {
		if err := d.FillRectangle(int16(r.Min.X), int16(r.Min.Y), int16(r.Dx()), int16(r.Dy()), w.background); err != nil {
			return true, err
		}
		if err := renderLayer(d, w.root, image.Point{}, r); err != nil {
			return true, err
		}
	}
	w.damage = w.damage[:0]
	return true, nil
}

func renderLayer(d Display, l *Layer, origin image.Point, clip image.Rectangle) error {
	if l.hidden {
		return nil
	}
	abs := l.frame.Add(origin)
	clip = clip.Intersect(abs)
	if clip.Empty() {
		return nil
	}
	if l.update != nil {
		ctx := Context{d: d, origin: abs.Min, clip: clip}
		l.update(l, &ctx)
		if ctx.err != nil {
			return ctx.err
		}
	}
	for _, c := range l.children {
		if err := renderLayer(d, c, abs.Min, clip); err != nil {
			return err
		}
	}
	return nil
}
