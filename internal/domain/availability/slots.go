package availability

import "github.com/BruksfildServices01/salon-scheduler/internal/clock"

const (
	SlotStep       = 15
	RecoveryWindow = 15
)

// BarberDay bundles what slot generation needs to know about one barber around
// a target date. Booked intervals already include the shop buffer on End.
type BarberDay struct {
	BarberID        uint
	Today           EffectiveSchedule
	Yesterday       EffectiveSchedule
	BookedToday     []Interval
	BookedYesterday []Interval
}

// FreeAt reports whether the barber can take [t, t+length) on the target date,
// either inside today's window or inside yesterday's overnight spillover.
func (d BarberDay) FreeAt(t, length int) bool {
	if d.Today.IsOpen {
		busy := make([]Interval, 0, len(d.BookedToday)+len(d.BookedYesterday))
		busy = append(busy, d.BookedToday...)
		for _, b := range d.BookedYesterday {
			busy = append(busy, b.Shift(-clock.MinutesPerDay))
		}
		if d.Today.Fits(t, length, busy) {
			return true
		}
	}

	if d.Yesterday.IsOpen && d.Yesterday.Overnight() {
		busy := make([]Interval, 0, len(d.BookedToday)+len(d.BookedYesterday))
		busy = append(busy, d.BookedYesterday...)
		for _, b := range d.BookedToday {
			busy = append(busy, b.Shift(clock.MinutesPerDay))
		}
		if d.Yesterday.Fits(t+clock.MinutesPerDay, length, busy) {
			return true
		}
	}

	return false
}

// SlotQuery parameterizes GenerateSlots. NotBefore is the earliest start in
// minutes (use -1 for no lower bound).
type SlotQuery struct {
	Duration  int
	Buffer    int
	NotBefore int
}

// Bounds returns the grid range covered by the barbers: the earliest open start
// (0 when a previous-day shift spills over) and the latest end within the date.
func Bounds(days []BarberDay) (int, int) {
	minStart, maxEnd := clock.MinutesPerDay, 0

	for _, d := range days {
		if d.Today.IsOpen {
			minStart = min(minStart, d.Today.Start)
			maxEnd = max(maxEnd, d.Today.End)
		}
		if d.Yesterday.IsOpen && d.Yesterday.Overnight() {
			minStart = 0
			maxEnd = max(maxEnd, d.Yesterday.End-clock.MinutesPerDay)
		}
	}

	// slots past midnight belong to the next date's query
	return minStart, min(maxEnd, clock.MinutesPerDay)
}

// GenerateSlots walks a 15 minute grid and returns every start time at which at
// least one barber is free. A blocked grid point is replaced by the earliest
// free minute within the next RecoveryWindow minutes, if any.
func GenerateSlots(days []BarberDay, q SlotQuery) []string {
	slots := []string{}
	if len(days) == 0 || q.Duration <= 0 {
		return slots
	}

	minStart, maxEnd := Bounds(days)
	if minStart >= maxEnd {
		return slots
	}

	length := q.Duration + q.Buffer
	anyFree := func(t int) bool {
		for _, d := range days {
			if d.FreeAt(t, length) {
				return true
			}
		}
		return false
	}

	cur := max(minStart, q.NotBefore)
	for ; cur+q.Duration <= maxEnd; cur += SlotStep {
		if anyFree(cur) {
			slots = append(slots, clock.MinutesToTime(cur))
			continue
		}

		for offset := 1; offset < RecoveryWindow; offset++ {
			t := cur + offset
			if t+q.Duration > maxEnd {
				break
			}
			if anyFree(t) {
				slots = append(slots, clock.MinutesToTime(t))
				break
			}
		}
	}

	return slots
}
