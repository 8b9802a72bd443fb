package settlement

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/money"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// Group is one shop's batch of eligible bookings with its running totals.
type Group struct {
	ShopID     uint
	BookingIDs []uint
	MinDate    string
	MaxDate    string

	// TotalAdminNet is what the shop owes: commission kept on cash bookings.
	TotalAdminNet decimal.Decimal
	// TotalBarberNet is what the platform owes: shop revenue on non-cash bookings.
	TotalBarberNet decimal.Decimal
}

// Net is barber-net minus admin-net, rounded half-up to 2 places.
func (g Group) Net() decimal.Decimal {
	return money.Round(g.TotalBarberNet.Sub(g.TotalAdminNet))
}

// Direction maps a signed net to a settlement type and a non-negative amount.
func Direction(net decimal.Decimal) (Type, decimal.Decimal) {
	if net.IsNegative() {
		return TypeCollection, net.Abs()
	}
	return TypePayout, net
}

// Cutoff is the business-calendar Monday of the week containing now. Only
// bookings dated strictly before it may be settled.
func Cutoff(now time.Time) string {
	return timezone.WeekStart(now)
}

// IsEligible reports whether a booking may join a settlement batch.
func IsEligible(b *models.Booking, cutoff string) bool {
	return booking.Status(b.Status) == booking.StatusCompleted &&
		booking.IsUnsettled(b.SettlementStatus) &&
		b.Date < cutoff
}

// GroupByShop folds bookings into per-shop groups ordered by shop id. Payment
// method decides the side: cash bookings contribute their admin net, everything
// else its barber net.
func GroupByShop(bookings []models.Booking) []Group {
	byShop := make(map[uint]*Group)

	for i := range bookings {
		b := &bookings[i]

		g, ok := byShop[b.ShopID]
		if !ok {
			g = &Group{
				ShopID:         b.ShopID,
				MinDate:        b.Date,
				MaxDate:        b.Date,
				TotalAdminNet:  decimal.Zero,
				TotalBarberNet: decimal.Zero,
			}
			byShop[b.ShopID] = g
		}

		g.BookingIDs = append(g.BookingIDs, b.ID)
		if b.Date < g.MinDate {
			g.MinDate = b.Date
		}
		if b.Date > g.MaxDate {
			g.MaxDate = b.Date
		}

		if booking.IsCash(b.PaymentMethod) {
			g.TotalAdminNet = g.TotalAdminNet.Add(b.AdminNetRevenue)
		} else {
			g.TotalBarberNet = g.TotalBarberNet.Add(b.BarberNetRevenue)
		}
	}

	groups := make([]Group, 0, len(byShop))
	for _, g := range byShop {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ShopID < groups[j].ShopID })

	return groups
}

// NewFromGroup builds the settlement record for a group. The caller persists it.
func NewFromGroup(g Group, adminID *uint, now time.Time) *models.Settlement {
	kind, amount := Direction(g.Net())

	return &models.Settlement{
		Reference: uuid.NewString(),
		ShopID:    g.ShopID,
		AdminID:   adminID,
		Type:      string(kind),
		Amount:    amount,
		Status:    string(PendingStatus(kind)),
		DateRange: models.DateRange{
			Start: g.MinDate,
			End:   g.MaxDate,
		},
		GeneratedAt: now,
		Notes:       fmt.Sprintf("Auto-generated settlement for %d bookings.", len(g.BookingIDs)),
	}
}

// Balance is the live pending position between a shop and the platform.
type Balance struct {
	AdminOwesShop decimal.Decimal `json:"adminOwesShop"`
	ShopOwesAdmin decimal.Decimal `json:"shopOwesAdmin"`
	Net           decimal.Decimal `json:"net"`
	BookingCount  int             `json:"bookingCount"`
}

// BalanceOf computes a pending balance from who collected each booking's money.
// Positive Net means the platform owes the shop.
func BalanceOf(bookings []models.Booking) Balance {
	adminOwes, shopOwes := decimal.Zero, decimal.Zero

	for i := range bookings {
		b := &bookings[i]
		switch b.AmountCollectedBy {
		case booking.CollectedByAdmin:
			adminOwes = adminOwes.Add(b.BarberNetRevenue)
		case booking.CollectedByBarber:
			shopOwes = shopOwes.Add(b.AdminNetRevenue)
		}
	}

	return Balance{
		AdminOwesShop: money.Round(adminOwes),
		ShopOwesAdmin: money.Round(shopOwes),
		Net:           money.Round(adminOwes.Sub(shopOwes)),
		BookingCount:  len(bookings),
	}
}
