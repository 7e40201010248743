//go:build !tinygo

package hal

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestHostClockStep(t *testing.T) {
	start := time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC)
	real := time.Unix(1000, 0)

	c := newHostClock(start, 60, ClockStyleAuto, false)
	c.realNow = func() time.Time { return real }

	c.step()
	if got := c.Now(); !got.Equal(start) {
		t.Fatalf("first step moved clock to %v", got)
	}

	real = real.Add(time.Second)
	c.step()
	if got, want := c.Now(), start.Add(time.Minute); !got.Equal(want) {
		t.Fatalf("Now() = %v, want %v", got, want)
	}
}

func TestHostClockStyle(t *testing.T) {
	tests := []struct {
		style     ClockStyle
		locale12h bool
		want      bool
	}{
		{ClockStyleAuto, false, true},
		{ClockStyleAuto, true, false},
		{ClockStyle12h, false, false},
		{ClockStyle24h, true, true},
	}
	for _, tt := range tests {
		c := newHostClock(time.Time{}, 1, tt.style, tt.locale12h)
		if got := c.Is24Hour(); got != tt.want {
			t.Errorf("style=%v locale12h=%v: Is24Hour() = %v, want %v", tt.style, tt.locale12h, got, tt.want)
		}
	}
}

func TestHostBatteryEmitsOnChange(t *testing.T) {
	b := newHostBattery(BatteryState{ChargePercent: 50})

	b.set(BatteryState{ChargePercent: 50})
	select {
	case st := <-b.Events():
		t.Fatalf("unexpected event %+v for unchanged state", st)
	default:
	}

	if st := b.adjust(-60); st.ChargePercent != 0 {
		t.Fatalf("adjust clamp: got %d, want 0", st.ChargePercent)
	}
	select {
	case st := <-b.Events():
		if st.ChargePercent != 0 {
			t.Fatalf("event percent = %d, want 0", st.ChargePercent)
		}
	default:
		t.Fatal("expected an event after adjust")
	}

	st := b.toggleCharging()
	if !st.Charging || !st.Plugged {
		t.Fatalf("toggleCharging = %+v, want charging and plugged", st)
	}
}

func TestSysfsBattery(t *testing.T) {
	root := t.TempDir()
	ac := filepath.Join(root, "AC")
	bat := filepath.Join(root, "BAT0")
	for _, dir := range []string{ac, bat} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	write := func(path, s string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(s), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write(filepath.Join(ac, "type"), "Mains\n")
	write(filepath.Join(bat, "type"), "Battery\n")
	write(filepath.Join(bat, "capacity"), "73\n")
	write(filepath.Join(bat, "status"), "Charging\n")

	dir, ok := findSysfsBattery(root)
	if !ok || dir != bat {
		t.Fatalf("findSysfsBattery = %q, %v; want %q", dir, ok, bat)
	}

	st, err := readSysfsBattery(dir)
	if err != nil {
		t.Fatalf("readSysfsBattery: %v", err)
	}
	if st.ChargePercent != 73 || !st.Charging || !st.Plugged {
		t.Fatalf("state = %+v", st)
	}

	write(filepath.Join(bat, "capacity"), "abc\n")
	if _, err := readSysfsBattery(dir); err == nil {
		t.Fatal("expected parse error")
	}

	if _, ok := findSysfsBattery(filepath.Join(root, "missing")); ok {
		t.Fatal("expected no battery under missing root")
	}
}

func TestHostConnectionReportsEverySet(t *testing.T) {
	c := newHostConnection(true)
	c.set(true)
	c.set(true)
	if got := len(c.Events()); got != 2 {
		t.Fatalf("queued events = %d, want 2", got)
	}
	if c.toggle() {
		t.Fatal("toggle from connected should disconnect")
	}
	if c.Peek() {
		t.Fatal("Peek() = true after toggle")
	}
}

func TestHostFlashSettingsPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.flash")

	f, err := OpenFileFlash(path)
	if err != nil {
		t.Fatalf("OpenFileFlash: %v", err)
	}
	if _, err := LoadSettings(f); err != ErrNoSettings {
		t.Fatalf("fresh flash: err = %v, want ErrNoSettings", err)
	}
	if err := SaveSettings(f, Settings{Clock: ClockStyle12h}); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err = OpenFileFlash(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()
	s, err := LoadSettings(f)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.Clock != ClockStyle12h {
		t.Fatalf("Clock = %v, want 12", s.Clock)
	}

	if _, err := f.WriteAt([]byte{0xFF}, 0); err != ErrFlashWriteRequiresErase {
		t.Fatalf("WriteAt over programmed byte: err = %v, want ErrFlashWriteRequiresErase", err)
	}
}

func TestFramebufferRGBA(t *testing.T) {
	fb := NewMemoryFramebuffer(2, 1)
	d := NewFramebufferDisplay(fb)
	fb.ClearRGB(255, 255, 255)
	d.SetPixel(1, 0, rgba(255, 0, 0))

	img := toRGBA(nil, fb)
	if again := toRGBA(img, fb); again != img {
		t.Fatal("toRGBA reallocated a matching image")
	}
	if r, g, b, _ := img.At(0, 0).RGBA(); r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Fatalf("pixel 0 = %d,%d,%d, want white", r>>8, g>>8, b>>8)
	}
	if r, g, b, _ := img.At(1, 0).RGBA(); r>>8 != 255 || g != 0 || b != 0 {
		t.Fatalf("pixel 1 = %d,%d,%d, want red", r>>8, g>>8, b>>8)
	}

	path := filepath.Join(t.TempDir(), "face.png")
	if err := writePNG(path, fb); err != nil {
		t.Fatalf("writePNG: %v", err)
	}
	if st, err := os.Stat(path); err != nil || st.Size() == 0 {
		t.Fatalf("snapshot missing: %v", err)
	}
}

func TestCreateFileFlash(t *testing.T) {
	dir := t.TempDir()
	if _, err := CreateFileFlash(filepath.Join(dir, "a"), 4096, 100); err == nil {
		t.Fatal("accepted erase size 100")
	}
	if _, err := CreateFileFlash(filepath.Join(dir, "b"), 5000, 4096); err == nil {
		t.Fatal("accepted size not a multiple of the erase size")
	}

	f, err := CreateFileFlash(filepath.Join(dir, "c"), 8192, 4096)
	if err != nil {
		t.Fatalf("CreateFileFlash: %v", err)
	}
	defer f.Close()

	if _, err := f.WriteAt([]byte{0x0F}, 10); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if _, err := f.WriteAt([]byte{0xF0}, 10); err != ErrFlashWriteRequiresErase {
		t.Fatalf("second write err = %v, want ErrFlashWriteRequiresErase", err)
	}
	if err := f.Erase(0, 4096); err != nil {
		t.Fatalf("Erase: %v", err)
	}
	if _, err := f.WriteAt([]byte{0xF0}, 10); err != nil {
		t.Fatalf("write after erase: %v", err)
	}
	if err := f.Erase(100, 4096); err == nil {
		t.Fatal("accepted unaligned erase")
	}
	if _, err := f.ReadAt(make([]byte, 1), 8192); err == nil {
		t.Fatal("accepted read past end")
	}
}

func TestBLEFallbackKeepsLinkQuiet(t *testing.T) {
	WithoutBLE(t)
	for _, disconnected := range []bool{false, true} {
		h := newHost(HostConfig{
			Battery:      50,
			BLE:          true,
			Disconnected: disconnected,
			FlashPath:    filepath.Join(t.TempDir(), "settings.flash"),
		})
		if got := h.conn.Peek(); got != !disconnected {
			t.Errorf("Disconnected=%v: Peek() = %v", disconnected, got)
		}
		if n := len(h.conn.Events()); n != 0 {
			t.Errorf("Disconnected=%v: %d link events queued during startup, want 0", disconnected, n)
		}
		h.close()
	}
}

func TestHostBatteryFullQueueKeepsNewest(t *testing.T) {
	b := newHostBattery(BatteryState{ChargePercent: 100})
	for pct := 99; pct >= 70; pct-- {
		b.set(BatteryState{ChargePercent: uint8(pct)})
	}
	if n := len(b.Events()); n != cap(b.ch) {
		t.Fatalf("queued = %d, want a full queue of %d", n, cap(b.ch))
	}

	var last BatteryState
	for len(b.Events()) > 0 {
		last = <-b.Events()
	}
	if last.ChargePercent != 70 {
		t.Fatalf("newest queued = %d%%, want 70%%", last.ChargePercent)
	}
	if b.Peek().ChargePercent != 70 {
		t.Fatalf("Peek() = %d%%, want 70%%", b.Peek().ChargePercent)
	}
}
