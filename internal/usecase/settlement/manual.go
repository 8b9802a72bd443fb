package settlement

import (
	"context"
	"fmt"

	cr "github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/settlement"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// CreateManualSettlement closes the books for one shop immediately, without
// the weekly cutoff. The settlement is recorded as already COMPLETED.
type CreateManualSettlement struct {
	store domain.Store
	audit audit.Recorder
	clock timezone.Clock
}

func NewCreateManualSettlement(
	store domain.Store,
	audit audit.Recorder,
	clock timezone.Clock,
) *CreateManualSettlement {
	return &CreateManualSettlement{
		store: store,
		audit: audit,
		clock: clock,
	}
}

func (uc *CreateManualSettlement) Execute(
	ctx context.Context,
	adminID uint,
	shopID uint,
	bookingIDs []uint,
) (*models.Settlement, error) {

	now := uc.clock.Now()

	var created *models.Settlement
	err := uc.store.WithinTx(ctx, func(tx domain.TxStore) error {
		bookings, err := tx.LockUnsettledForShop(ctx, shopID, bookingIDs)
		if err != nil {
			return err
		}
		if len(bookings) == 0 {
			return httperr.ErrBusiness("no_pending_bookings")
		}

		balance := domain.BalanceOf(bookings)
		kind, amount := domain.Direction(balance.Net)

		ids := make([]uint, 0, len(bookings))
		minDate, maxDate := bookings[0].Date, bookings[0].Date
		for _, b := range bookings {
			ids = append(ids, b.ID)
			minDate = min(minDate, b.Date)
			maxDate = max(maxDate, b.Date)
		}

		s := &models.Settlement{
			Reference:   uuid.NewString(),
			ShopID:      shopID,
			AdminID:     &adminID,
			Type:        string(kind),
			Amount:      amount,
			Status:      string(domain.StatusCompleted),
			DateRange:   models.DateRange{Start: minDate, End: maxDate},
			GeneratedAt: now,
			Notes:       fmt.Sprintf("Manual settlement for %d bookings.", len(ids)),
		}
		if err := tx.CreateSettlement(ctx, s); err != nil {
			return err
		}

		n, err := tx.MarkSettled(ctx, ids, s.ID)
		if err != nil {
			return err
		}
		if n != int64(len(ids)) {
			return cr.Newf("settled %d of %d bookings", n, len(ids))
		}

		created = s
		return nil
	})
	if err != nil {
		if cr.Is(err, domain.ErrConflict) {
			return nil, httperr.ErrBusiness("settlement_conflict")
		}
		return nil, cr.Wrap(err, "manual settlement")
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   &created.ShopID,
		UserID:   &adminID,
		Action:   "settlement_generated",
		Entity:   "settlement",
		EntityID: &created.ID,
		Metadata: map[string]any{
			"manual": true,
			"type":   created.Type,
			"amount": created.Amount.StringFixed(2),
		},
	})

	return created, nil
}
