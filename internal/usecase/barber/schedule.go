package barber

import (
	"context"
	"strings"

	cr "github.com/cockroachdb/errors"

	"github.com/BruksfildServices01/salon-scheduler/internal/actor"
	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/clock"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBarberInput struct {
	ShopID    uint
	Name      string
	StartHour string
	EndHour   string
}

type BreakInput struct {
	StartTime string
	EndTime   string
	Title     string
}

type WeeklyInput struct {
	Day       string
	IsOpen    bool
	StartHour string
	EndHour   string
	Breaks    []BreakInput
}

type SpecialInput struct {
	Date      string
	IsOpen    bool
	StartHour string
	EndHour   string
	Reason    string
}

// ScheduleInput replaces a barber's whole schedule configuration.
type ScheduleInput struct {
	StartHour   string
	EndHour     string
	IsAvailable bool
	Breaks      []BreakInput
	Weekly      []WeeklyInput
	Special     []SpecialInput
}

// ======================================================
// USE CASES
// ======================================================

type CreateBarber struct {
	repo  domain.ScheduleRepository
	audit audit.Recorder
}

func NewCreateBarber(repo domain.ScheduleRepository, audit audit.Recorder) *CreateBarber {
	return &CreateBarber{repo: repo, audit: audit}
}

func (uc *CreateBarber) Execute(ctx context.Context, a actor.Actor, in CreateBarberInput) (*models.Barber, error) {
	if !a.ManagesShop(in.ShopID) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, httperr.ErrBusiness("name_required")
	}

	b := &models.Barber{
		ShopID:      in.ShopID,
		Name:        name,
		StartHour:   orDefault(in.StartHour, "10:00"),
		EndHour:     orDefault(in.EndHour, "20:00"),
		IsAvailable: true,
	}
	if err := checkTimes(b.StartHour, b.EndHour); err != nil {
		return nil, err
	}

	if err := uc.repo.CreateBarber(ctx, b); err != nil {
		return nil, cr.Wrap(err, "create barber")
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   &b.ShopID,
		UserID:   &a.UserID,
		Action:   "barber_created",
		Entity:   "barber",
		EntityID: &b.ID,
	})
	return b, nil
}

type UpdateSchedule struct {
	repo  domain.ScheduleRepository
	audit audit.Recorder
}

func NewUpdateSchedule(repo domain.ScheduleRepository, audit audit.Recorder) *UpdateSchedule {
	return &UpdateSchedule{repo: repo, audit: audit}
}

func (uc *UpdateSchedule) Execute(
	ctx context.Context,
	a actor.Actor,
	barberID uint,
	in ScheduleInput,
) (*models.Barber, error) {

	b, err := uc.repo.GetBarber(ctx, barberID)
	if err != nil {
		return nil, err
	}
	if !a.ManagesShop(b.ShopID) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	// --------------------------------------------------
	// Default window
	// --------------------------------------------------
	if err := checkTimes(in.StartHour, in.EndHour); err != nil {
		return nil, err
	}
	breaks, err := toBreaks(in.Breaks)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Weekly
	// --------------------------------------------------
	weekly := make([]models.WeeklySchedule, 0, len(in.Weekly))
	for _, w := range in.Weekly {
		if err := checkTimes(w.StartHour, w.EndHour); err != nil {
			return nil, err
		}
		wb := make([]models.WeeklyBreak, 0, len(w.Breaks))
		for _, br := range w.Breaks {
			if err := checkBreak(br); err != nil {
				return nil, err
			}
			wb = append(wb, models.WeeklyBreak{StartTime: br.StartTime, EndTime: br.EndTime})
		}
		weekly = append(weekly, models.WeeklySchedule{
			BarberID:  b.ID,
			Day:       strings.TrimSpace(w.Day),
			IsOpen:    w.IsOpen,
			StartHour: w.StartHour,
			EndHour:   w.EndHour,
			Breaks:    wb,
		})
	}
	if err := domain.ValidateWeekly(weekly); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Special dates
	// --------------------------------------------------
	special := make([]models.SpecialHours, 0, len(in.Special))
	for _, sp := range in.Special {
		if sp.IsOpen {
			if err := checkTimes(sp.StartHour, sp.EndHour); err != nil {
				return nil, err
			}
		}
		special = append(special, models.SpecialHours{
			BarberID:  b.ID,
			Date:      sp.Date,
			IsOpen:    sp.IsOpen,
			StartHour: sp.StartHour,
			EndHour:   sp.EndHour,
			Reason:    sp.Reason,
		})
	}
	if err := domain.ValidateSpecial(special); err != nil {
		return nil, err
	}

	b.StartHour = in.StartHour
	b.EndHour = in.EndHour
	b.IsAvailable = in.IsAvailable
	b.Breaks = breaks
	b.WeeklySchedule = weekly
	b.SpecialHours = special

	if err := uc.repo.SaveSchedule(ctx, b); err != nil {
		return nil, cr.Wrapf(err, "save schedule of barber %d", b.ID)
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   &b.ShopID,
		UserID:   &a.UserID,
		Action:   "schedule_updated",
		Entity:   "barber",
		EntityID: &b.ID,
		Metadata: map[string]any{
			"weekly":  len(weekly),
			"special": len(special),
		},
	})
	return b, nil
}

// -----------------------------------------------------

// checkTimes validates a window. End may be earlier than start for an
// overnight shift, but not equal to it.
func checkTimes(start, end string) error {
	s, err := clock.ParseTime(start)
	if err != nil {
		return httperr.ErrBusiness("invalid_time")
	}
	e, err := clock.ParseTime(end)
	if err != nil {
		return httperr.ErrBusiness("invalid_time")
	}
	if s == e {
		return httperr.ErrBusiness("invalid_time_range")
	}
	return nil
}

// checkBreak rejects breaks that wrap midnight; breaks stay on their own day.
func checkBreak(br BreakInput) error {
	s, err := clock.ParseTime(br.StartTime)
	if err != nil {
		return httperr.ErrBusiness("invalid_time")
	}
	e, err := clock.ParseTime(br.EndTime)
	if err != nil {
		return httperr.ErrBusiness("invalid_time")
	}
	if e <= s {
		return httperr.ErrBusiness("invalid_time_range")
	}
	return nil
}

func toBreaks(in []BreakInput) ([]models.BarberBreak, error) {
	out := make([]models.BarberBreak, 0, len(in))
	for _, br := range in {
		if err := checkBreak(br); err != nil {
			return nil, err
		}
		out = append(out, models.BarberBreak{
			StartTime: br.StartTime,
			EndTime:   br.EndTime,
			Title:     br.Title,
		})
	}
	return out, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
