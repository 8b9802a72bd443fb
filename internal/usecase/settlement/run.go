package settlement

import (
	"context"
	"fmt"

	cr "github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/settlement"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type Outcome string

const (
	// OutcomeNoPending means nothing was eligible; no transaction wrote anything.
	OutcomeNoPending Outcome = "no_pending"
	OutcomeCompleted Outcome = "completed"
)

type Result struct {
	Outcome       Outcome `json:"outcome"`
	Message       string  `json:"message"`
	Count         int     `json:"count"`
	SettlementIDs []uint  `json:"settlementIds,omitempty"`
}

// RunSettlement nets every eligible booking into one settlement per shop.
// All shops commit together or not at all.
type RunSettlement struct {
	store domain.Store
	audit audit.Recorder
	clock timezone.Clock
	log   *zap.Logger
}

func NewRunSettlement(
	store domain.Store,
	audit audit.Recorder,
	clock timezone.Clock,
	log *zap.Logger,
) *RunSettlement {
	return &RunSettlement{
		store: store,
		audit: audit,
		clock: clock,
		log:   log,
	}
}

func (uc *RunSettlement) Execute(
	ctx context.Context,
	adminID *uint,
) (Result, error) {

	now := uc.clock.Now()
	cutoff := domain.Cutoff(now)

	var created []models.Settlement
	err := uc.store.WithinTx(ctx, func(tx domain.TxStore) error {
		created = nil

		bookings, err := tx.LockEligible(ctx, cutoff)
		if err != nil {
			return err
		}
		if len(bookings) == 0 {
			return nil
		}

		for _, g := range domain.GroupByShop(bookings) {
			s := domain.NewFromGroup(g, adminID, now)
			if err := tx.CreateSettlement(ctx, s); err != nil {
				return err
			}

			n, err := tx.MarkSettled(ctx, g.BookingIDs, s.ID)
			if err != nil {
				return err
			}
			if n != int64(len(g.BookingIDs)) {
				return cr.Newf("shop %d: settled %d of %d bookings", g.ShopID, n, len(g.BookingIDs))
			}

			created = append(created, *s)
		}
		return nil
	})
	if err != nil {
		if cr.Is(err, domain.ErrConflict) {
			uc.log.Warn("settlement: transaction conflict", zap.Error(err))
			return Result{}, httperr.ErrBusiness("settlement_conflict")
		}
		return Result{}, cr.Wrap(err, "run settlement")
	}

	if len(created) == 0 {
		uc.log.Info("settlement: no pending bookings", zap.String("cutoff", cutoff))
		return Result{
			Outcome: OutcomeNoPending,
			Message: "No pending bookings found.",
			Count:   0,
		}, nil
	}

	ids := make([]uint, 0, len(created))
	for i := range created {
		s := &created[i]
		ids = append(ids, s.ID)

		uc.audit.Dispatch(audit.Event{
			ShopID:   &s.ShopID,
			UserID:   adminID,
			Action:   "settlement_generated",
			Entity:   "settlement",
			EntityID: &s.ID,
			Metadata: map[string]any{
				"type":      s.Type,
				"amount":    s.Amount.StringFixed(2),
				"reference": s.Reference,
				"dateRange": s.DateRange,
			},
		})
	}

	uc.log.Info("settlement: completed",
		zap.String("cutoff", cutoff),
		zap.Int("shops", len(created)),
	)

	return Result{
		Outcome:       OutcomeCompleted,
		Message:       fmt.Sprintf("Settlement job complete. Processed %d shops.", len(created)),
		Count:         len(created),
		SettlementIDs: ids,
	}, nil
}
