//go:build !tinygo && cgo

package hal

import (
	"errors"
	"fmt"
	"image"

	"tickface/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunWindow starts a desktop window that displays the framebuffer and maps
// keys onto the simulated hardware. It blocks until the window closes or
// Escape is pressed.
func RunWindow(cfg HostConfig, newApp func(HAL) (App, error)) error {
	cfg.buzzer = true
	h := newHost(cfg)
	defer h.close()

	a, err := newApp(h)
	if err != nil {
		return fmt.Errorf("start face: %w", err)
	}

	g := &hostGame{h: h, app: a}
	ebiten.SetWindowTitle("tickface (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.Width()*2, h.fb.Height()*2)
	ebiten.SetTPS(30)

	runErr := ebiten.RunGame(g)
	if errors.Is(runErr, ebiten.Termination) {
		runErr = nil
	}
	if err := a.Close(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

type hostGame struct {
	h     *hostHAL
	img   *image.RGBA
	fbImg *ebiten.Image
	app   App
}

func (g *hostGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.h.pollControls()
	g.h.clock.step()
	if g.app != nil {
		if err := g.app.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	img := toRGBA(g.img, fb)
	if img != g.img || g.fbImg == nil {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.Width(), fb.Height())
		g.img = img
	}
	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.Width(), g.h.fb.Height()
}
