// Package clock converts between "HH:mm" wall-clock strings, minutes from
// midnight and "YYYY-MM-DD" calendar dates.
package clock

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	MinutesPerDay = 24 * 60

	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// TimeToMinutes parses "HH:mm" into minutes from midnight.
// Empty or unparsable input yields 0 (midnight).
func TimeToMinutes(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0
	}

	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0
	}

	return h*60 + m
}

// ParseTime is the strict variant of TimeToMinutes used at the API boundary.
func ParseTime(s string) (int, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// MinutesToTime formats minutes as "HH:mm", wrapping past midnight so that
// overnight ends (e.g. 1560) print as the next day's wall clock.
func MinutesToTime(m int) string {
	n := m % MinutesPerDay
	if n < 0 {
		n += MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", n/60, n%60)
}

// ParseDate reads "YYYY-MM-DD" as a UTC calendar date.
func ParseDate(dateStr string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, dateStr, time.UTC)
}

// DayOfWeek returns the English weekday name for a "YYYY-MM-DD" date.
// The date is always read in UTC so the host timezone can never shift it.
func DayOfWeek(dateStr string) (string, error) {
	d, err := ParseDate(dateStr)
	if err != nil {
		return "", err
	}
	return d.Weekday().String(), nil
}

// AddDays shifts a "YYYY-MM-DD" date by n calendar days.
func AddDays(dateStr string, n int) (string, error) {
	d, err := ParseDate(dateStr)
	if err != nil {
		return "", err
	}
	return d.AddDate(0, 0, n).Format(DateLayout), nil
}

// IsWeekday reports whether name is one of the seven English weekday names.
func IsWeekday(name string) bool {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == name {
			return true
		}
	}
	return false
}
