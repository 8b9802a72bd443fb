package settlement

import (
	"context"

	cr "github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/settlement"
	"github.com/BruksfildServices01/salon-scheduler/internal/money"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type Preview struct {
	CutoffDate      string          `json:"cutoffDate"`
	ShopCount       int             `json:"shopCount"`
	TotalPayout     decimal.Decimal `json:"totalPayout"`
	TotalCollection decimal.Decimal `json:"totalCollection"`
}

// PreviewSettlement computes what RunSettlement would produce right now
// without writing anything.
type PreviewSettlement struct {
	store domain.Store
	clock timezone.Clock
}

func NewPreviewSettlement(store domain.Store, clock timezone.Clock) *PreviewSettlement {
	return &PreviewSettlement{store: store, clock: clock}
}

func (uc *PreviewSettlement) Execute(ctx context.Context) (Preview, error) {
	cutoff := domain.Cutoff(uc.clock.Now())

	bookings, err := uc.store.ListEligible(ctx, cutoff)
	if err != nil {
		return Preview{}, cr.Wrap(err, "preview settlement")
	}

	p := Preview{
		CutoffDate:      cutoff,
		TotalPayout:     decimal.Zero,
		TotalCollection: decimal.Zero,
	}

	for _, g := range domain.GroupByShop(bookings) {
		p.ShopCount++
		kind, amount := domain.Direction(g.Net())
		if kind == domain.TypePayout {
			p.TotalPayout = p.TotalPayout.Add(amount)
		} else {
			p.TotalCollection = p.TotalCollection.Add(amount)
		}
	}

	p.TotalPayout = money.Round(p.TotalPayout)
	p.TotalCollection = money.Round(p.TotalCollection)
	return p, nil
}
