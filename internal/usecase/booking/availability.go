package booking

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/clock"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/availability"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

const defaultSlotDuration = 30

type AvailabilityQuery struct {
	ShopID uint
	// BarberID nil means any barber of the shop.
	BarberID *uint
	Date     string
	Duration int
}

type GetAvailability struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewGetAvailability(repo domain.Repository, clock timezone.Clock) *GetAvailability {
	return &GetAvailability{repo: repo, clock: clock}
}

// Execute lists the "HH:mm" start times on q.Date at which at least one
// candidate barber can take a service of q.Duration minutes.
func (uc *GetAvailability) Execute(ctx context.Context, q AvailabilityQuery) ([]string, error) {
	if _, err := clock.ParseDate(q.Date); err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	if q.Duration <= 0 {
		q.Duration = defaultSlotDuration
	}

	shop, err := uc.repo.GetShop(ctx, q.ShopID)
	if err != nil {
		return nil, err
	}

	now := timezone.Now(uc.clock)
	if q.Date < now.Date {
		return []string{}, nil
	}

	barbers, err := candidateBarbers(ctx, uc.repo, shop.ID, q.BarberID)
	if err != nil {
		return nil, err
	}
	if len(barbers) == 0 {
		return []string{}, nil
	}

	days, err := barberDays(ctx, uc.repo, barbers, q.Date, shop.BufferTime)
	if err != nil {
		return nil, err
	}

	notBefore := -1
	if q.Date == now.Date {
		notBefore = now.Minutes + shop.MinBookingNotice
	}

	return availability.GenerateSlots(days, availability.SlotQuery{
		Duration:  q.Duration,
		Buffer:    shop.BufferTime,
		NotBefore: notBefore,
	}), nil
}

// ScheduleView is an effective schedule formatted for display.
type ScheduleView struct {
	BarberID uint        `json:"barberId"`
	Date     string      `json:"date"`
	Source   string      `json:"source"`
	IsOpen   bool        `json:"isOpen"`
	Start    string      `json:"start"`
	End      string      `json:"end"`
	Breaks   []BreakView `json:"breaks"`
}

type BreakView struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type GetSchedule struct {
	repo domain.Repository
}

func NewGetSchedule(repo domain.Repository) *GetSchedule {
	return &GetSchedule{repo: repo}
}

func (uc *GetSchedule) Execute(ctx context.Context, barberID uint, date string) (ScheduleView, error) {
	b, err := uc.repo.GetBarber(ctx, barberID)
	if err != nil {
		return ScheduleView{}, err
	}

	s, source, err := availability.ResolveWithSource(b, date)
	if err != nil {
		return ScheduleView{}, httperr.ErrBusiness("invalid_date")
	}

	view := ScheduleView{
		BarberID: b.ID,
		Date:     date,
		Source:   string(source),
		IsOpen:   s.IsOpen,
		Start:    clock.MinutesToTime(s.Start),
		End:      clock.MinutesToTime(s.End),
		Breaks:   make([]BreakView, 0, len(s.Breaks)),
	}
	for _, br := range s.Breaks {
		view.Breaks = append(view.Breaks, BreakView{
			Start: clock.MinutesToTime(br.Start),
			End:   clock.MinutesToTime(br.End),
		})
	}
	return view, nil
}
