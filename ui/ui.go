// Package ui is a small retained-mode layer tree for fixed-size watch
// screens. Layers draw through update procs into a clipped Context; the
// Window collects damaged rectangles and repaints only those.
package ui

import (
	"image"
	"image/color"

	"tinygo.org/x/drivers"
)

// Display is the surface a Window renders onto.
type Display interface {
	drivers.Displayer
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

var (
	// ColorClear paints nothing.
	ColorClear     = color.RGBA{}
	ColorBlack     = color.RGBA{A: 0xFF}
	ColorWhite     = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	ColorLightGray = color.RGBA{R: 0xAA, G: 0xAA, B: 0xAA, A: 0xFF}
	ColorCadetBlue = color.RGBA{R: 0x55, G: 0xAA, B: 0xAA, A: 0xFF}
)

// Alignment positions content horizontally inside a box.
type Alignment uint8

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

func alignX(box image.Rectangle, width int, a Alignment) int {
	switch a {
	case AlignCenter:
		return box.Min.X + (box.Dx()-width)/2
	case AlignRight:
		return box.Max.X - width
	default:
		return box.Min.X
	}
}
