package booking

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/actor"
	"github.com/BruksfildServices01/salon-scheduler/internal/clock"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

// ForShop lists a shop's bookings between two optional "YYYY-MM-DD" bounds.
func (uc *ListBookings) ForShop(
	ctx context.Context,
	a actor.Actor,
	shopID uint,
	from, to string,
) ([]models.Booking, error) {

	if !a.ManagesShop(shopID) {
		return nil, httperr.ErrBusiness("forbidden")
	}
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := clock.ParseDate(d); err != nil {
			return nil, httperr.ErrBusiness("invalid_date")
		}
	}
	if from != "" && to != "" && from > to {
		return nil, httperr.ErrBusiness("invalid_date_range")
	}

	return uc.repo.ListShopBookings(ctx, shopID, from, to)
}

// ForUser lists the caller's own bookings, newest first.
func (uc *ListBookings) ForUser(ctx context.Context, a actor.Actor) ([]models.Booking, error) {
	return uc.repo.ListUserBookings(ctx, a.UserID)
}
