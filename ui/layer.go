package ui

import "image"

// UpdateProc draws a layer. Coordinates in ctx are relative to the layer.
type UpdateProc func(l *Layer, ctx *Context)

// Layer is a rectangular node of the view tree.
type Layer struct {
	frame    image.Rectangle
	hidden   bool
	update   UpdateProc
	parent   *Layer
	children []*Layer
	window   *Window
}

// NewLayer returns a detached layer. frame is relative to the future parent.
func NewLayer(frame image.Rectangle) *Layer {
	return &Layer{frame: frame.Canon()}
}

func (l *Layer) Frame() image.Rectangle { return l.frame }

// Bounds is the frame moved to the origin.
func (l *Layer) Bounds() image.Rectangle {
	return image.Rectangle{Max: l.frame.Size()}
}

func (l *Layer) SetUpdateProc(fn UpdateProc) {
	l.update = fn
	l.MarkDirty()
}

func (l *Layer) Hidden() bool { return l.hidden }

func (l *Layer) SetHidden(hidden bool) {
	if l.hidden == hidden {
		return
	}
	l.hidden = hidden
	l.MarkDirty()
}

// MarkDirty schedules the layer's area for a repaint on the next render.
func (l *Layer) MarkDirty() {
	if l.window == nil {
		return
	}
	l.window.invalidate(l.absFrame())
}

func (l *Layer) Parent() *Layer { return l.parent }

func (l *Layer) Children() []*Layer { return l.children }

// AddChild appends child on top of l's existing children, detaching it from
// any previous parent.
func (l *Layer) AddChild(child *Layer) {
	if child == nil || child == l {
		return
	}
	child.RemoveFromParent()
	child.parent = l
	l.children = append(l.children, child)
	child.setWindow(l.window)
	child.MarkDirty()
}

func (l *Layer) RemoveFromParent() {
	p := l.parent
	if p == nil {
		return
	}
	l.MarkDirty()
	for i, c := range p.children {
		if c == l {
			copy(p.children[i:], p.children[i+1:])
			p.children[len(p.children)-1] = nil
			p.children = p.children[:len(p.children)-1]
			break
		}
	}
	l.parent = nil
	l.setWindow(nil)
}

// Destroy detaches the layer and its subtree. The layer must not be used
// afterwards.
func (l *Layer) Destroy() {
	l.RemoveFromParent()
	for _, c := range l.children {
		c.parent = nil
	}
	l.children = nil
	l.update = nil
}

func (l *Layer) setWindow(w *Window) {
	l.window = w
	for _, c := range l.children {
		c.setWindow(w)
	}
}

// absFrame returns the frame in window coordinates.
func (l *Layer) absFrame() image.Rectangle {
	r := l.frame
	for p := l.parent; p != nil; p = p.parent {
		r = r.Add(p.frame.Min)
	}
	return r
}
