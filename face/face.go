// Package face is a digital watch face: time, date, a battery bar and a
// glyph shown while the phone is disconnected.
package face

import (
	"fmt"
	"image"
	"time"

	"tickface/app"
	"tickface/hal"
	"tickface/ui"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"
)

// Layout of a 240x240 screen.
var (
	BatteryFrame = image.Rect(20, 36, 220, 40)
	TimeFrame    = image.Rect(0, 70, 240, 134)
	DateFrame    = image.Rect(0, 140, 240, 174)
	GlyphFrame   = image.Rect(0, 184, 240, 224)
)

var (
	timeFont tinyfont.Fonter = &freesans.Bold24pt7b
	dateFont tinyfont.Fonter = &freesans.Bold12pt7b
)

const (
	layout24h  = "15:04"
	layout12h  = "03:04"
	layoutDate = "02 / 01"
)

// Controller owns the face's state and layers between Activate and
// Deactivate. Its handlers run on the loop goroutine only.
type Controller struct {
	s app.Services

	timeLayer    *ui.TextLayer
	dateLayer    *ui.TextLayer
	batteryLayer *ui.Layer
	glyphLayer   *ui.BitmapLayer

	batteryPercent uint8
	connected      bool
	now            time.Time

	timeBuf [8]byte
	dateBuf [16]byte
}

// New returns an inactive face.
func New() *Controller { return &Controller{} }

// Activate builds the four regions on w, subscribes to minute ticks, battery
// and connection changes, and draws the current state once.
func (c *Controller) Activate(w *ui.Window, s app.Services) {
	c.s = s
	w.SetBackgroundColor(ui.ColorWhite)
	root := w.RootLayer()

	c.batteryLayer = ui.NewLayer(BatteryFrame)
	c.batteryLayer.SetUpdateProc(c.drawBattery)
	root.AddChild(c.batteryLayer)

	c.timeLayer = ui.NewTextLayer(TimeFrame)
	c.timeLayer.SetFont(timeFont)
	c.timeLayer.SetTextColor(ui.ColorBlack)
	c.timeLayer.SetBackgroundColor(ui.ColorClear)
	c.timeLayer.SetAlignment(ui.AlignCenter)
	root.AddChild(c.timeLayer.Layer())

	c.dateLayer = ui.NewTextLayer(DateFrame)
	c.dateLayer.SetFont(dateFont)
	c.dateLayer.SetTextColor(ui.ColorCadetBlue)
	c.dateLayer.SetBackgroundColor(ui.ColorClear)
	c.dateLayer.SetAlignment(ui.AlignCenter)
	root.AddChild(c.dateLayer.Layer())

	c.glyphLayer = ui.NewBitmapLayer(GlyphFrame)
	c.glyphLayer.SetBitmap(loadDisconnectedGlyph())
	c.glyphLayer.SetColorKey(glyphKey)
	c.glyphLayer.SetAlignment(ui.AlignCenter)
	c.glyphLayer.Layer().SetHidden(true)
	root.AddChild(c.glyphLayer.Layer())

	s.SubscribeTick(app.MinuteUnit, c.OnTick)
	s.SubscribeBattery(c.OnBattery)
	s.SubscribeConnection(c.OnConnection)

	c.OnTick(s.Now(), app.AllUnits)
	c.OnBattery(s.PeekBattery())
	c.OnConnection(s.PeekConnection())

	c.logf("face: active battery=%d%% connected=%v", c.batteryPercent, c.connected)
}

// Deactivate destroys the layers. The loop drops the subscriptions. It is a
// no-op on an inactive face.
func (c *Controller) Deactivate() {
	if c.batteryLayer == nil {
		return
	}
	c.batteryLayer.Destroy()
	c.timeLayer.Destroy()
	c.dateLayer.Destroy()
	c.glyphLayer.Destroy()
	c.batteryLayer, c.timeLayer, c.dateLayer, c.glyphLayer = nil, nil, nil, nil
	c.s = nil
}

// OnTick redraws the time and date. Which units changed does not matter.
func (c *Controller) OnTick(now time.Time, _ app.TimeUnits) {
	c.now = now

	layout := layout12h
	if c.s.Is24Hour() {
		layout = layout24h
	}
	c.timeLayer.SetText(string(now.AppendFormat(c.timeBuf[:0], layout)))
	c.dateLayer.SetText(string(now.AppendFormat(c.dateBuf[:0], layoutDate)))
}

// OnBattery stores the charge and redraws the bar.
func (c *Controller) OnBattery(st hal.BatteryState) {
	c.batteryPercent = st.ChargePercent
	c.batteryLayer.MarkDirty()
}

// OnConnection shows the glyph and buzzes twice when the phone goes away.
func (c *Controller) OnConnection(connected bool) {
	c.connected = connected
	c.glyphLayer.Layer().SetHidden(connected)
	if connected {
		return
	}
	if v := c.s.Vibes(); v != nil {
		if err := v.Enqueue(hal.VibeDoublePulse); err != nil {
			c.logf("face: vibes: %v", err)
		}
	}
}

// Accessors for the state last drawn.

func (c *Controller) BatteryPercent() uint8 { return c.batteryPercent }
func (c *Controller) Connected() bool       { return c.connected }
func (c *Controller) TimeText() string      { return c.timeLayer.Text() }
func (c *Controller) DateText() string      { return c.dateLayer.Text() }

func (c *Controller) drawBattery(l *ui.Layer, ctx *ui.Context) {
	b := l.Bounds()
	ctx.SetFillColor(ui.ColorClear)
	ctx.FillRect(b)
	ctx.SetFillColor(ui.ColorLightGray)
	ctx.FillRect(image.Rect(0, 0, BarWidth(c.batteryPercent, b.Dx()), b.Dy()))
}

// BarWidth is the filled part of a bar barWidth pixels wide, rounded down.
func BarWidth(percent uint8, barWidth int) int {
	if percent > 100 {
		percent = 100
	}
	return int(percent) * barWidth / 100
}

func (c *Controller) logf(format string, args ...any) {
	if c.s == nil {
		return
	}
	if l := c.s.Logger(); l != nil {
		l.WriteLineString(fmt.Sprintf(format, args...))
	}
}
