package availability

import "github.com/BruksfildServices01/salon-scheduler/internal/clock"

// Interval is a half-open [Start, End) range in minutes from the schedule day's midnight.
type Interval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (i Interval) Overlaps(start, end int) bool {
	return start < i.End && end > i.Start
}

// Shift moves the interval by delta minutes, e.g. ±1440 to view a booking from
// the neighbouring day's timeline.
func (i Interval) Shift(delta int) Interval {
	return Interval{Start: i.Start + delta, End: i.End + delta}
}

// EffectiveSchedule is the resolved working day of a barber. End may exceed
// 1440 when the shift crosses midnight. It is always computed on demand.
type EffectiveSchedule struct {
	IsOpen bool       `json:"isOpen"`
	Start  int        `json:"start"`
	End    int        `json:"end"`
	Breaks []Interval `json:"breaks"`
}

// Overnight reports whether the window spills into the next calendar day.
func (s EffectiveSchedule) Overnight() bool {
	return s.End > clock.MinutesPerDay
}

// Fits reports whether [start, start+length) lies inside the open window and
// touches neither a break nor any busy interval.
func (s EffectiveSchedule) Fits(start, length int, busy []Interval) bool {
	if !s.IsOpen {
		return false
	}

	end := start + length
	if start < s.Start || end > s.End {
		return false
	}

	for _, br := range s.Breaks {
		if br.Overlaps(start, end) {
			return false
		}
	}

	for _, b := range busy {
		if b.Overlaps(start, end) {
			return false
		}
	}

	return true
}
