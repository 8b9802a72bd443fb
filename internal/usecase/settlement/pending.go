package settlement

import (
	"context"

	cr "github.com/cockroachdb/errors"

	"github.com/BruksfildServices01/salon-scheduler/internal/actor"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/settlement"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ShopPending struct {
	ShopID  uint           `json:"shopId"`
	Balance domain.Balance `json:"balance"`
}

// PendingByShop reports the live balance of every shop with completed,
// unsettled bookings, regardless of the weekly cutoff.
type PendingByShop struct {
	store domain.Store
}

func NewPendingByShop(store domain.Store) *PendingByShop {
	return &PendingByShop{store: store}
}

func (uc *PendingByShop) Execute(ctx context.Context) ([]ShopPending, error) {
	bookings, err := uc.store.ListUnsettledCompleted(ctx, nil)
	if err != nil {
		return nil, cr.Wrap(err, "pending by shop")
	}

	// rows arrive ordered by shop
	result := []ShopPending{}
	start := 0
	for i := 1; i <= len(bookings); i++ {
		if i < len(bookings) && bookings[i].ShopID == bookings[start].ShopID {
			continue
		}
		result = append(result, ShopPending{
			ShopID:  bookings[start].ShopID,
			Balance: domain.BalanceOf(bookings[start:i]),
		})
		start = i
	}

	return result, nil
}

// ShopPendingBookings lists one shop's completed, unsettled bookings.
func (uc *PendingByShop) ShopPendingBookings(
	ctx context.Context,
	viewer actor.Actor,
	shopID uint,
) ([]models.Booking, error) {

	if !viewer.ManagesShop(shopID) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	bookings, err := uc.store.ListUnsettledCompleted(ctx, &shopID)
	if err != nil {
		return nil, cr.Wrap(err, "shop pending bookings")
	}
	return bookings, nil
}
