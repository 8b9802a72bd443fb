package availability

import (
	"fmt"

	"github.com/BruksfildServices01/salon-scheduler/internal/clock"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Source tells which rule tier produced an EffectiveSchedule.
type Source string

const (
	SourceSpecial Source = "special"
	SourceWeekly  Source = "weekly"
	SourceDefault Source = "default"
)

// Resolve computes the effective schedule of a barber on date ("YYYY-MM-DD").
// The first matching tier wins: special date, then weekday, then the default
// window. Tiers are never merged.
func Resolve(b *models.Barber, date string) (EffectiveSchedule, error) {
	s, _, err := ResolveWithSource(b, date)
	return s, err
}

func ResolveWithSource(b *models.Barber, date string) (EffectiveSchedule, Source, error) {
	day, err := clock.DayOfWeek(date)
	if err != nil {
		return EffectiveSchedule{}, "", fmt.Errorf("resolve schedule: %w", err)
	}

	var (
		s   EffectiveSchedule
		src Source
	)

	if sp := findSpecial(b.SpecialHours, date); sp != nil {
		// special days carry no breaks
		s = EffectiveSchedule{
			IsOpen: sp.IsOpen,
			Start:  clock.TimeToMinutes(sp.StartHour),
			End:    clock.TimeToMinutes(sp.EndHour),
			Breaks: []Interval{},
		}
		src = SourceSpecial
	} else if w := findWeekly(b.WeeklySchedule, day); w != nil {
		breaks := make([]Interval, 0, len(w.Breaks))
		for _, br := range w.Breaks {
			breaks = append(breaks, toInterval(br.StartTime, br.EndTime))
		}
		s = EffectiveSchedule{
			IsOpen: w.IsOpen,
			Start:  clock.TimeToMinutes(w.StartHour),
			End:    clock.TimeToMinutes(w.EndHour),
			Breaks: breaks,
		}
		src = SourceWeekly
	} else {
		breaks := make([]Interval, 0, len(b.Breaks))
		for _, br := range b.Breaks {
			breaks = append(breaks, toInterval(br.StartTime, br.EndTime))
		}
		s = EffectiveSchedule{
			IsOpen: b.IsAvailable,
			Start:  clock.TimeToMinutes(b.StartHour),
			End:    clock.TimeToMinutes(b.EndHour),
			Breaks: breaks,
		}
		src = SourceDefault
	}

	// Breaks stay on the start day; only the window end is normalized.
	if s.End < s.Start {
		s.End += clock.MinutesPerDay
	}

	return s, src, nil
}

func findSpecial(list []models.SpecialHours, date string) *models.SpecialHours {
	for i := range list {
		if list[i].Date == date {
			return &list[i]
		}
	}
	return nil
}

func findWeekly(list []models.WeeklySchedule, day string) *models.WeeklySchedule {
	for i := range list {
		if list[i].Day == day {
			return &list[i]
		}
	}
	return nil
}

func toInterval(start, end string) Interval {
	return Interval{
		Start: clock.TimeToMinutes(start),
		End:   clock.TimeToMinutes(end),
	}
}
