package hal

import (
	"errors"
	"testing"
)

// memFlash mimics NOR semantics: erase sets 0xFF, writes may only clear bits.
type memFlash struct {
	buf   []byte
	block uint32
}

func newMemFlash(size, block uint32) *memFlash {
	f := &memFlash{buf: make([]byte, size), block: block}
	for i := range f.buf {
		f.buf[i] = 0xFF
	}
	return f
}

func (f *memFlash) SizeBytes() uint32       { return uint32(len(f.buf)) }
func (f *memFlash) EraseBlockBytes() uint32 { return f.block }

func (f *memFlash) ReadAt(p []byte, off uint32) (int, error) {
	return copy(p, f.buf[off:]), nil
}

func (f *memFlash) WriteAt(p []byte, off uint32) (int, error) {
	for i, b := range p {
		if f.buf[int(off)+i]&b != b {
			return 0, ErrFlashWriteRequiresErase
		}
	}
	return copy(f.buf[off:], p), nil
}

func (f *memFlash) Erase(off, size uint32) error {
	for i := off; i < off+size; i++ {
		f.buf[i] = 0xFF
	}
	return nil
}

func TestSettingsRoundTrip(t *testing.T) {
	f := newMemFlash(8192, 4096)

	if _, err := LoadSettings(f); !errors.Is(err, ErrNoSettings) {
		t.Fatalf("LoadSettings on blank flash: err = %v, want ErrNoSettings", err)
	}

	for _, style := range []ClockStyle{ClockStyle12h, ClockStyle24h, ClockStyleAuto} {
		if err := SaveSettings(f, Settings{Clock: style}); err != nil {
			t.Fatalf("SaveSettings(%v): %v", style, err)
		}
		got, err := LoadSettings(f)
		if err != nil {
			t.Fatalf("LoadSettings: %v", err)
		}
		if got.Clock != style {
			t.Fatalf("Clock = %v, want %v", got.Clock, style)
		}
	}
}

func TestSettingsCorruptCRC(t *testing.T) {
	f := newMemFlash(4096, 4096)
	if err := SaveSettings(f, Settings{Clock: ClockStyle12h}); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	f.buf[4] = byte(ClockStyle24h)

	if _, err := LoadSettings(f); !errors.Is(err, ErrNoSettings) {
		t.Fatalf("err = %v, want ErrNoSettings", err)
	}
}

func TestParseClockStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    ClockStyle
		wantErr bool
	}{
		{in: "", want: ClockStyleAuto},
		{in: "auto", want: ClockStyleAuto},
		{in: "12", want: ClockStyle12h},
		{in: "24H", want: ClockStyle24h},
		{in: "13", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseClockStyle(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseClockStyle(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err == nil && got != tt.want {
			t.Fatalf("ParseClockStyle(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLocaleUses12h(t *testing.T) {
	tests := map[string]bool{
		"en_US.UTF-8": true,
		"en_GB.UTF-8": false,
		"de_DE":       false,
		"ar_EG.UTF-8": true,
		"hi_IN":       true,
		"C":           false,
		"":            false,
	}
	for locale, want := range tests {
		if got := LocaleUses12h(locale); got != want {
			t.Errorf("LocaleUses12h(%q) = %v, want %v", locale, got, want)
		}
	}
}
