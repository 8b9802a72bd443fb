package timezone

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/clock"
)

// BusinessOffset is the fixed UTC+5:30 offset every scheduling decision uses.
const BusinessOffset = 5*time.Hour + 30*time.Minute

// Business is the fixed zone for cron schedules and "today" computations.
// It is built from the offset rather than tzdata so hosts without zoneinfo agree.
var Business = time.FixedZone("IST", int(BusinessOffset/time.Second))

// BusinessTime is the current business date plus minutes since its midnight.
type BusinessTime struct {
	Date    string
	Minutes int
}

// Clock abstracts "now" so jobs and use cases can be tested without a real clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns the wall clock.
func System() Clock { return systemClock{} }

// FixedClock always returns the same instant.
type FixedClock time.Time

func (f FixedClock) Now() time.Time { return time.Time(f) }

// At derives business time from any instant by shifting its UTC value by the
// fixed offset; the host timezone never participates.
func At(t time.Time) BusinessTime {
	shifted := t.UTC().Add(BusinessOffset)
	return BusinessTime{
		Date:    shifted.Format(clock.DateLayout),
		Minutes: shifted.Hour()*60 + shifted.Minute(),
	}
}

// Now returns the current business date and minutes.
func Now(c Clock) BusinessTime {
	return At(c.Now())
}

// WeekStart returns the Monday (business calendar) of the week containing t.
func WeekStart(t time.Time) string {
	d := t.In(Business)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset).Format(clock.DateLayout)
}
