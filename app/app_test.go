package app

import (
	"errors"
	"slices"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"tickface/hal"
	"tickface/ui"
)

type fakeLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *fakeLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, s)
}

func (l *fakeLogger) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

type fakeClock struct {
	now  time.Time
	is24 bool
}

func (c *fakeClock) Now() time.Time { return c.now }
func (c *fakeClock) Is24Hour() bool { return c.is24 }

type fakeBattery struct {
	st hal.BatteryState
	ch chan hal.BatteryState
}

func (b *fakeBattery) Peek() hal.BatteryState          { return b.st }
func (b *fakeBattery) Events() <-chan hal.BatteryState { return b.ch }

type fakeConnection struct {
	connected bool
	ch        chan bool
}

func (c *fakeConnection) Peek() bool          { return c.connected }
func (c *fakeConnection) Events() <-chan bool { return c.ch }

type fakeVibes struct{ patterns []hal.VibePattern }

func (v *fakeVibes) Enqueue(p hal.VibePattern) error {
	v.patterns = append(v.patterns, p)
	return nil
}
func (v *fakeVibes) Cancel() {}

type fakeHAL struct {
	log     *fakeLogger
	fb      *hal.MemoryFramebuffer
	disp    hal.Display
	clock   *fakeClock
	battery *fakeBattery
	conn    *fakeConnection
	vibes   *fakeVibes
}

func newFakeHAL() *fakeHAL {
	fb := hal.NewMemoryFramebuffer(240, 240)
	return &fakeHAL{
		log:     &fakeLogger{},
		fb:      fb,
		disp:    hal.NewFramebufferDisplay(fb),
		clock:   &fakeClock{now: time.Date(2024, 3, 9, 14, 5, 10, 0, time.UTC), is24: true},
		battery: &fakeBattery{st: hal.BatteryState{ChargePercent: 73}, ch: make(chan hal.BatteryState, 8)},
		conn:    &fakeConnection{connected: true, ch: make(chan bool, 8)},
		vibes:   &fakeVibes{},
	}
}

func (h *fakeHAL) Logger() hal.Logger         { return h.log }
func (h *fakeHAL) Display() hal.Display       { return h.disp }
func (h *fakeHAL) Clock() hal.Clock           { return h.clock }
func (h *fakeHAL) Battery() hal.Battery       { return h.battery }
func (h *fakeHAL) Connection() hal.Connection { return h.conn }
func (h *fakeHAL) Vibes() hal.Vibes           { return h.vibes }
func (h *fakeHAL) Flash() hal.Flash           { return nil }

// recordFace subscribes to everything and records what it receives.
type recordFace struct {
	units       TimeUnits
	activated   int
	deactivated int
	ticks       []TimeUnits
	batteries   []hal.BatteryState
	conns       []bool
	layer       *ui.Layer
}

func (f *recordFace) Activate(w *ui.Window, s Services) {
	f.activated++
	f.layer = ui.NewLayer(w.RootLayer().Bounds())
	w.RootLayer().AddChild(f.layer)
	s.SubscribeTick(f.units, func(_ time.Time, changed TimeUnits) { f.ticks = append(f.ticks, changed) })
	s.SubscribeBattery(func(st hal.BatteryState) {
		f.batteries = append(f.batteries, st)
		f.layer.MarkDirty()
	})
	s.SubscribeConnection(func(connected bool) { f.conns = append(f.conns, connected) })
}

func (f *recordFace) Deactivate() {
	f.deactivated++
	f.layer.Destroy()
}

func stepUntil(t *testing.T, l *Loop, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for condition")
		}
		if err := l.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestNewRequiresDisplay(t *testing.T) {
	h := newFakeHAL()
	h.disp = nil
	if _, err := New(h, &recordFace{}); !errors.Is(err, ErrNoDisplay) {
		t.Fatalf("New() err = %v, want ErrNoDisplay", err)
	}
}

func TestLoopRendersOnlyWhenDamaged(t *testing.T) {
	h := newFakeHAL()
	f := &recordFace{units: MinuteUnit}
	l, err := New(h, f)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer l.Close()

	if f.activated != 1 {
		t.Fatalf("activated = %d, want 1", f.activated)
	}
	if err := l.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := h.fb.Presents(); got != 1 {
		t.Fatalf("Presents() = %d after first step, want 1", got)
	}
	if r, g, b := hal.NewFramebufferDisplay(h.fb).PixelRGB(120, 120); r != 255 || g != 255 || b != 255 {
		t.Fatalf("background = %d,%d,%d, want white", r, g, b)
	}

	if err := l.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := h.fb.Presents(); got != 1 {
		t.Fatalf("Presents() = %d after idle step, want 1", got)
	}
}

func TestLoopDispatchesBatteryEveryTime(t *testing.T) {
	h := newFakeHAL()
	f := &recordFace{}
	l, err := New(h, f)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer l.Close()

	h.battery.ch <- hal.BatteryState{ChargePercent: 50}
	h.battery.ch <- hal.BatteryState{ChargePercent: 50}
	stepUntil(t, l, func() bool { return len(f.batteries) == 2 })

	if f.batteries[1].ChargePercent != 50 {
		t.Fatalf("batteries = %+v", f.batteries)
	}
}

func TestLoopCoalescesConnection(t *testing.T) {
	h := newFakeHAL()
	f := &recordFace{}
	l, err := New(h, f)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer l.Close()

	for _, v := range []bool{true, false, false, true, true} {
		h.conn.ch <- v
	}
	stepUntil(t, l, func() bool { return len(f.conns) == 2 })
	for i := 0; i < 10; i++ {
		if err := l.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}

	if len(f.conns) != 2 || f.conns[0] != false || f.conns[1] != true {
		t.Fatalf("conns = %v, want [false true]", f.conns)
	}
}

func TestLoopTicksOnSubscribedUnits(t *testing.T) {
	h := newFakeHAL()
	f := &recordFace{units: MinuteUnit}
	l, err := New(h, f)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer l.Close()

	h.clock.now = h.clock.now.Add(30 * time.Second)
	l.Step()
	if len(f.ticks) != 0 {
		t.Fatalf("ticks = %v after a seconds-only change", f.ticks)
	}

	h.clock.now = time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC)
	l.Step()
	if len(f.ticks) != 1 {
		t.Fatalf("ticks = %v, want one", f.ticks)
	}
	if want := HourUnit | MinuteUnit | SecondUnit; f.ticks[0] != want {
		t.Fatalf("changed = %v, want %v", f.ticks[0], want)
	}

	l.Step()
	if len(f.ticks) != 1 {
		t.Fatalf("ticks = %v after an unchanged clock", f.ticks)
	}
}

func TestLoopCloseIsIdempotent(t *testing.T) {
	h := newFakeHAL()
	f := &recordFace{}
	l, err := New(h, f)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if f.deactivated != 1 {
		t.Fatalf("deactivated = %d, want 1", f.deactivated)
	}
	if err := l.Step(); !errors.Is(err, ErrClosed) {
		t.Fatalf("Step after Close: err = %v, want ErrClosed", err)
	}
}

func TestChangedUnits(t *testing.T) {
	base := time.Date(2024, 12, 31, 23, 59, 30, 0, time.UTC)
	tests := []struct {
		name string
		prev time.Time
		now  time.Time
		want TimeUnits
	}{
		{"zero prev", time.Time{}, base, AllUnits},
		{"same", base, base, 0},
		{"second", base, base.Add(time.Second), SecondUnit},
		{"minute", base.Add(-time.Minute), base, MinuteUnit | SecondUnit},
		{"hour", base.Add(-time.Hour), base, HourUnit | MinuteUnit | SecondUnit},
		{"day", base.Add(-24 * time.Hour), base, DayUnit | HourUnit | MinuteUnit | SecondUnit},
		{"month", time.Date(2024, 11, 30, 23, 59, 30, 0, time.UTC), base, MonthUnit | DayUnit | HourUnit | MinuteUnit | SecondUnit},
		{"year", base, base.Add(time.Minute), AllUnits},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChangedUnits(tt.prev, tt.now); got != tt.want {
				t.Fatalf("ChangedUnits() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimeUnitsString(t *testing.T) {
	if got := (MinuteUnit | HourUnit).String(); got != "minute|hour" {
		t.Fatalf("String() = %q", got)
	}
	if got := TimeUnits(0).String(); got != "none" {
		t.Fatalf("String() = %q", got)
	}
}

func TestDrawFatal(t *testing.T) {
	fb := hal.NewMemoryFramebuffer(240, 240)
	d := hal.NewFramebufferDisplay(fb)

	lines := fatalLines(errors.New("present: spi timeout"))
	if len(lines) != 2 || lines[1] != "present: spi timeout" {
		t.Fatalf("fatalLines() = %q", lines)
	}
	if err := drawFatal(d, lines); err != nil {
		t.Fatalf("drawFatal: %v", err)
	}
	if fb.Presents() != 1 {
		t.Fatalf("Presents() = %d, want 1", fb.Presents())
	}

	dark := 0
	for y := 0; y < 40; y++ {
		for x := 0; x < 240; x++ {
			if r, _, _ := d.PixelRGB(x, y); r == 0 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Fatal("no text drawn on the fatal screen")
	}
	if r, g, b := d.PixelRGB(239, 239); r != 255 || g != 255 || b != 255 {
		t.Fatalf("corner = %d,%d,%d, want white", r, g, b)
	}
}

func TestWrapLine(t *testing.T) {
	fits := func(n int) func(string) bool {
		return func(s string) bool { return utf8.RuneCountInString(s) <= n }
	}
	tests := []struct {
		s    string
		n    int
		want []string
	}{
		{"", 5, nil},
		{"abc", 5, []string{"abc"}},
		{"present: spi timeout", 12, []string{"present: spi", "timeout"}},
		{"abcdefgh", 3, []string{"abc", "def", "gh"}},
		{"äöüß x", 2, []string{"äö", "üß", "x"}},
		{"a  b", 1, []string{"a", "b"}},
	}
	for _, tt := range tests {
		got := wrapLine(tt.s, fits(tt.n))
		if !slices.Equal(got, tt.want) {
			t.Errorf("wrapLine(%q, %d) = %q, want %q", tt.s, tt.n, got, tt.want)
		}
	}
}
