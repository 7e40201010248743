package face

import (
	"bytes"
	_ "embed"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/bmp"
)

//go:embed assets/disconnected.bmp
var disconnectedBMP []byte

// glyphKey is the transparent colour of the embedded glyph.
var glyphKey = color.RGBA{R: 0xFF, B: 0xFF, A: 0xFF}

var disconnectedGlyph image.Image

func loadDisconnectedGlyph() image.Image {
	if disconnectedGlyph != nil {
		return disconnectedGlyph
	}
	img, err := bmp.Decode(bytes.NewReader(disconnectedBMP))
	if err != nil {
		panic(fmt.Errorf("face: decode disconnected glyph: %w", err))
	}
	disconnectedGlyph = img
	return img
}
