package app

import (
	"image/color"
	"strings"

	"tickface/hal"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var fatalFont = &proggy.TinySZ8pt7b

// fatal logs err, paints it on the display and halts.
func fatal(h hal.HAL, err error) {
	lines := fatalLines(err)
	if l := h.Logger(); l != nil {
		for _, line := range lines {
			l.WriteLineString("app: " + line)
		}
	}
	if d := h.Display(); d != nil {
		_ = drawFatal(d, lines)
	}
	select {}
}

func fatalLines(err error) []string {
	lines := []string{"tickface fatal:"}
	for _, line := range strings.Split(err.Error(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// drawFatal paints lines in black on white, word-wrapped to the panel width.
// Whatever does not fit vertically is dropped.
func drawFatal(d hal.Display, lines []string) error {
	w, h := d.Size()
	if err := d.FillRectangle(0, 0, w, h, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}); err != nil {
		return err
	}

	step := int16(fatalFont.GetYAdvance())
	fits := func(s string) bool {
		_, adv := tinyfont.LineWidth(fatalFont, s)
		return int16(adv) <= w
	}
	y := step
	for _, line := range lines {
		for _, row := range wrapLine(line, fits) {
			if y > h {
				return d.Display()
			}
			tinyfont.WriteLine(d, fatalFont, 0, y-2, row, color.RGBA{A: 0xFF})
			y += step
		}
	}
	return d.Display()
}

// wrapLine breaks s into rows that satisfy fits, preferring word boundaries.
// A word too long for a row is split between runes.
func wrapLine(s string, fits func(string) bool) []string {
	var rows []string
	row := ""
	for _, word := range strings.Fields(s) {
		if row != "" && fits(row+" "+word) {
			row += " " + word
			continue
		}
		if row != "" {
			rows = append(rows, row)
		}
		row = word
		for !fits(row) {
			head, tail := splitFit([]rune(row), fits)
			rows = append(rows, head)
			row = tail
		}
	}
	if row != "" {
		rows = append(rows, row)
	}
	return rows
}

// splitFit returns the longest prefix of r that fits, at least one rune.
func splitFit(r []rune, fits func(string) bool) (string, string) {
	n := 1
	for n < len(r) && fits(string(r[:n+1])) {
		n++
	}
	return string(r[:n]), string(r[n:])
}
