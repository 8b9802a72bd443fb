package availability

import (
	"github.com/BruksfildServices01/salon-scheduler/internal/clock"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ValidateWeekly enforces one entry per weekday name.
func ValidateWeekly(entries []models.WeeklySchedule) error {
	seen := make(map[string]bool, len(entries))
	for _, w := range entries {
		if !clock.IsWeekday(w.Day) {
			return httperr.ErrBusiness("invalid_weekday")
		}
		if seen[w.Day] {
			return httperr.ErrBusiness("duplicate_weekday")
		}
		seen[w.Day] = true
	}
	return nil
}

// ValidateSpecial enforces one entry per exact date.
func ValidateSpecial(entries []models.SpecialHours) error {
	seen := make(map[string]bool, len(entries))
	for _, sp := range entries {
		if _, err := clock.ParseDate(sp.Date); err != nil {
			return httperr.ErrBusiness("invalid_date")
		}
		if seen[sp.Date] {
			return httperr.ErrBusiness("duplicate_special_date")
		}
		seen[sp.Date] = true
	}
	return nil
}
