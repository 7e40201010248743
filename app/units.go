package app

import "time"

// TimeUnits is a set of calendar units.
type TimeUnits uint8

const (
	SecondUnit TimeUnits = 1 << iota
	MinuteUnit
	HourUnit
	DayUnit
	MonthUnit
	YearUnit

	AllUnits = SecondUnit | MinuteUnit | HourUnit | DayUnit | MonthUnit | YearUnit
)

func (u TimeUnits) String() string {
	if u == 0 {
		return "none"
	}
	names := [...]string{"second", "minute", "hour", "day", "month", "year"}
	var out []byte
	for i, name := range names {
		if u&(1<<i) == 0 {
			continue
		}
		if len(out) > 0 {
			out = append(out, '|')
		}
		out = append(out, name...)
	}
	return string(out)
}

// ChangedUnits reports which units differ between prev and now. A change in a
// unit implies a change in every smaller one. A zero prev means everything
// changed.
func ChangedUnits(prev, now time.Time) TimeUnits {
	if prev.IsZero() {
		return AllUnits
	}
	py, pm, pd := prev.Date()
	ny, nm, nd := now.Date()

	var u TimeUnits
	switch {
	case py != ny:
		u = AllUnits
	case pm != nm:
		u = MonthUnit | DayUnit | HourUnit | MinuteUnit | SecondUnit
	case pd != nd:
		u = DayUnit | HourUnit | MinuteUnit | SecondUnit
	case prev.Hour() != now.Hour():
		u = HourUnit | MinuteUnit | SecondUnit
	case prev.Minute() != now.Minute():
		u = MinuteUnit | SecondUnit
	case prev.Second() != now.Second():
		u = SecondUnit
	}
	return u
}
