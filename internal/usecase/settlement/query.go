package settlement

import (
	"context"
	"fmt"
	"time"

	cr "github.com/cockroachdb/errors"

	"github.com/BruksfildServices01/salon-scheduler/internal/actor"
	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/settlement"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type Settlements struct {
	store domain.Store
	audit audit.Recorder
	clock timezone.Clock
}

func NewSettlements(
	store domain.Store,
	audit audit.Recorder,
	clock timezone.Clock,
) *Settlements {
	return &Settlements{
		store: store,
		audit: audit,
		clock: clock,
	}
}

func (uc *Settlements) List(ctx context.Context, viewer actor.Actor) ([]models.Settlement, error) {
	shopID, err := scope(viewer)
	if err != nil {
		return nil, err
	}

	list, err := uc.store.ListSettlements(ctx, shopID, 0)
	if err != nil {
		return nil, cr.Wrap(err, "list settlements")
	}
	return list, nil
}

func (uc *Settlements) Get(ctx context.Context, viewer actor.Actor, id uint) (*models.Settlement, error) {
	s, err := uc.store.GetSettlement(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.ManagesShop(s.ShopID) {
		return nil, httperr.ErrBusiness("forbidden")
	}
	return s, nil
}

// Complete records that the money has moved. Only pending settlements can
// complete.
func (uc *Settlements) Complete(ctx context.Context, adminID uint, id uint) (*models.Settlement, error) {
	s, err := uc.store.GetSettlement(ctx, id)
	if err != nil {
		return nil, err
	}

	switch domain.Status(s.Status) {
	case domain.StatusGenerated, domain.StatusPendingPayout, domain.StatusPendingCollection:
	default:
		return nil, httperr.ErrBusiness("invalid_state")
	}

	note := fmt.Sprintf("Completed manually by admin %d on %s", adminID, uc.clock.Now().In(timezone.Business).Format(time.RFC3339))
	if err := uc.store.UpdateSettlementStatus(ctx, id, domain.StatusCompleted, note); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   &s.ShopID,
		UserID:   &adminID,
		Action:   "settlement_completed",
		Entity:   "settlement",
		EntityID: &s.ID,
	})

	return uc.store.GetSettlement(ctx, id)
}
