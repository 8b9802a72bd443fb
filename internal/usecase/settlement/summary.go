package settlement

import (
	"context"

	cr "github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/actor"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/settlement"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/money"
)

const recentSettlements = 5

type Summary struct {
	TotalEarnings     decimal.Decimal     `json:"totalEarnings"`
	CurrentBalance    decimal.Decimal     `json:"currentBalance"`
	PendingPayout     decimal.Decimal     `json:"pendingPayout"`
	PendingDues       decimal.Decimal     `json:"pendingDues"`
	RecentSettlements []models.Settlement `json:"recentSettlements"`
}

// ShopFinanceSummary is the owner's money dashboard.
type ShopFinanceSummary struct {
	store domain.Store
}

func NewShopFinanceSummary(store domain.Store) *ShopFinanceSummary {
	return &ShopFinanceSummary{store: store}
}

func (uc *ShopFinanceSummary) Execute(
	ctx context.Context,
	viewer actor.Actor,
	shopID uint,
) (Summary, error) {

	if !viewer.ManagesShop(shopID) {
		return Summary{}, httperr.ErrBusiness("forbidden")
	}

	earnings, err := uc.store.TotalBarberNet(ctx, shopID)
	if err != nil {
		return Summary{}, cr.Wrap(err, "shop summary")
	}

	pending, err := uc.store.ListUnsettledCompleted(ctx, &shopID)
	if err != nil {
		return Summary{}, cr.Wrap(err, "shop summary")
	}
	balance := domain.BalanceOf(pending)

	recent, err := uc.store.ListSettlements(ctx, &shopID, recentSettlements)
	if err != nil {
		return Summary{}, cr.Wrap(err, "shop summary")
	}

	s := Summary{
		TotalEarnings:     money.Round(earnings),
		CurrentBalance:    balance.Net,
		PendingPayout:     decimal.Zero,
		PendingDues:       decimal.Zero,
		RecentSettlements: recent,
	}
	if balance.Net.IsNegative() {
		s.PendingDues = balance.Net.Abs()
	} else {
		s.PendingPayout = balance.Net
	}
	return s, nil
}
