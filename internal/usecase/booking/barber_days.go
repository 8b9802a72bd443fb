package booking

import (
	"context"

	cr "github.com/cockroachdb/errors"

	"github.com/BruksfildServices01/salon-scheduler/internal/clock"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/availability"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// candidateBarbers returns the one requested barber, or every available barber
// of the shop when barberID is nil.
func candidateBarbers(
	ctx context.Context,
	repo domain.Repository,
	shopID uint,
	barberID *uint,
) ([]models.Barber, error) {

	if barberID == nil {
		return repo.ListAvailableBarbers(ctx, shopID)
	}

	b, err := repo.GetBarber(ctx, *barberID)
	if err != nil {
		return nil, err
	}
	if b.ShopID != shopID {
		return nil, httperr.ErrBusiness("barber_not_found")
	}
	return []models.Barber{*b}, nil
}

// barberDays resolves today's and yesterday's schedules for each barber and
// loads their non-cancelled bookings on both dates. Booked intervals carry the
// shop buffer on their end.
func barberDays(
	ctx context.Context,
	repo domain.Repository,
	barbers []models.Barber,
	date string,
	buffer int,
) ([]availability.BarberDay, error) {

	prev, err := clock.AddDays(date, -1)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	ids := make([]uint, 0, len(barbers))
	for _, b := range barbers {
		ids = append(ids, b.ID)
	}

	bookings, err := repo.ListActiveForBarbers(ctx, ids, []string{date, prev})
	if err != nil {
		return nil, cr.Wrap(err, "load barber bookings")
	}

	days := make([]availability.BarberDay, 0, len(barbers))
	index := make(map[uint]int, len(barbers))

	for i := range barbers {
		b := &barbers[i]

		today, err := availability.Resolve(b, date)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date")
		}
		yesterday, err := availability.Resolve(b, prev)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date")
		}

		index[b.ID] = len(days)
		days = append(days, availability.BarberDay{
			BarberID:  b.ID,
			Today:     today,
			Yesterday: yesterday,
		})
	}

	for _, bk := range bookings {
		i, ok := index[bk.BarberID]
		if !ok {
			continue
		}

		start := clock.TimeToMinutes(bk.StartTime)
		iv := availability.Interval{Start: start, End: endMinutes(bk.StartTime, bk.EndTime) + buffer}

		switch bk.Date {
		case date:
			days[i].BookedToday = append(days[i].BookedToday, iv)
		case prev:
			days[i].BookedYesterday = append(days[i].BookedYesterday, iv)
		}
	}

	return days, nil
}
