//go:build tinygo

package main

import (
	"tickface/app"
	"tickface/face"
	"tickface/hal"
)

func main() {
	app.Run(hal.New(), face.New())
}
