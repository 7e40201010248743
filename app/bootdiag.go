//go:build !(tinygo && bootdebug)

package app

import "tickface/hal"

func bootStep(h hal.HAL, msg string) {}
