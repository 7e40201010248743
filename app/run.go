package app

import (
	"fmt"
	"time"

	"tickface/hal"
)

const stepPeriod = 200 * time.Millisecond

// Run drives f forever (TinyGo entrypoint). Any error or panic ends on the
// fatal screen.
func Run(h hal.HAL, f Face) {
	defer func() {
		if r := recover(); r != nil {
			fatal(h, fmt.Errorf("panic: %v", r))
		}
	}()

	bootStep(h, "starting face")
	l, err := New(h, f)
	if err != nil {
		fatal(h, err)
	}
	bootStep(h, "running")

	for {
		if err := l.Step(); err != nil {
			fatal(h, err)
		}
		time.Sleep(stepPeriod)
	}
}
