package booking

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/money"
)

// Rates are percentages (10 means 10%).
type Rates struct {
	Commission decimal.Decimal
	Discount   decimal.Decimal
}

type Financials struct {
	OriginalPrice    decimal.Decimal
	DiscountAmount   decimal.Decimal
	FinalPrice       decimal.Decimal
	AdminCommission  decimal.Decimal
	AdminNetRevenue  decimal.Decimal
	BarberNetRevenue decimal.Decimal
}

// ComputeFinancials splits a price between platform and shop. Commission is
// taken on the original price and the platform absorbs the customer discount.
func ComputeFinancials(original decimal.Decimal, r Rates) Financials {
	discount := money.Percent(original, r.Discount)
	commission := money.Percent(original, r.Commission)

	return Financials{
		OriginalPrice:    original,
		DiscountAmount:   discount,
		FinalPrice:       money.Round(original.Sub(discount)),
		AdminCommission:  commission,
		AdminNetRevenue:  money.Round(commission.Sub(discount)),
		BarberNetRevenue: money.Round(original.Sub(commission)),
	}
}

func (f Financials) Apply(b *models.Booking) {
	b.OriginalPrice = f.OriginalPrice
	b.DiscountAmount = f.DiscountAmount
	b.FinalPrice = f.FinalPrice
	b.AdminCommission = f.AdminCommission
	b.AdminNetRevenue = f.AdminNetRevenue
	b.BarberNetRevenue = f.BarberNetRevenue
}
