package hal

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"strings"
)

// ClockStyle selects how the time of day is shown.
type ClockStyle uint8

const (
	// ClockStyleAuto follows the locale.
	ClockStyleAuto ClockStyle = iota
	ClockStyle12h
	ClockStyle24h
)

func (s ClockStyle) String() string {
	switch s {
	case ClockStyleAuto:
		return "auto"
	case ClockStyle12h:
		return "12"
	case ClockStyle24h:
		return "24"
	default:
		return "INVALID"
	}
}

// ParseClockStyle accepts "auto", "12", "12h", "24" and "24h".
func ParseClockStyle(s string) (ClockStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ClockStyleAuto, nil
	case "12", "12h":
		return ClockStyle12h, nil
	case "24", "24h":
		return ClockStyle24h, nil
	default:
		return ClockStyleAuto, fmt.Errorf("invalid clock style %q", s)
	}
}

// Settings are host preferences kept in flash across runs.
type Settings struct {
	Clock ClockStyle
}

var ErrNoSettings = errors.New("no settings record")

const (
	settingsMagic     = "TFS1"
	settingsRecordLen = 12
)

// LoadSettings reads the settings record at flash offset 0.
func LoadSettings(f Flash) (Settings, error) {
	if f == nil {
		return Settings{}, ErrNotImplemented
	}
	var rec [settingsRecordLen]byte
	n, err := f.ReadAt(rec[:], 0)
	if err != nil {
		return Settings{}, fmt.Errorf("settings read: %w", err)
	}
	if n < settingsRecordLen || string(rec[:4]) != settingsMagic {
		return Settings{}, ErrNoSettings
	}
	if crc32.ChecksumIEEE(rec[:8]) != binary.LittleEndian.Uint32(rec[8:]) {
		return Settings{}, ErrNoSettings
	}
	s := Settings{Clock: ClockStyle(rec[4])}
	if s.Clock > ClockStyle24h {
		return Settings{}, ErrNoSettings
	}
	return s, nil
}

// SaveSettings erases the first flash block and writes the record.
func SaveSettings(f Flash, s Settings) error {
	if f == nil {
		return ErrNotImplemented
	}
	block := f.EraseBlockBytes()
	if block == 0 || block < settingsRecordLen {
		return fmt.Errorf("settings write: erase block %d too small", block)
	}

	var rec [settingsRecordLen]byte
	copy(rec[:4], settingsMagic)
	rec[4] = byte(s.Clock)
	binary.LittleEndian.PutUint32(rec[8:], crc32.ChecksumIEEE(rec[:8]))

	if err := f.Erase(0, block); err != nil {
		return fmt.Errorf("settings erase: %w", err)
	}
	if _, err := f.WriteAt(rec[:], 0); err != nil {
		return fmt.Errorf("settings write: %w", err)
	}
	return nil
}

// LocaleUses12h reports whether a POSIX locale name conventionally shows a
// 12-hour clock. Unknown or empty locales use 24 hours.
func LocaleUses12h(locale string) bool {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if strings.HasPrefix(locale, "ar_") || locale == "ar" {
		return true
	}
	switch locale {
	case "en_US", "en_CA", "en_AU", "en_NZ", "en_PH", "en_IN", "hi_IN":
		return true
	}
	return false
}
