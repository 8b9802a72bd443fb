package settlement

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func completed(id, shop uint, date, method, adminNet, barberNet string) models.Booking {
	return models.Booking{
		ID:               id,
		ShopID:           shop,
		Date:             date,
		Status:           "completed",
		PaymentMethod:    method,
		SettlementStatus: "PENDING",
		AdminNetRevenue:  dec(adminNet),
		BarberNetRevenue: dec(barberNet),
	}
}

func TestNettingPayout(t *testing.T) {
	groups := GroupByShop([]models.Booking{
		completed(1, 10, "2024-05-20", "cash", "50", "400"),
		completed(2, 10, "2024-05-21", "ONLINE", "5", "80"),
	})
	require.Len(t, groups, 1)

	kind, amount := Direction(groups[0].Net())
	assert.Equal(t, TypePayout, kind)
	assert.True(t, amount.Equal(dec("30")), "got %s", amount)
}

func TestNettingCollection(t *testing.T) {
	groups := GroupByShop([]models.Booking{
		completed(1, 10, "2024-05-20", "CASH", "90", "800"),
		completed(2, 10, "2024-05-21", "UPI", "2", "20"),
	})
	require.Len(t, groups, 1)

	kind, amount := Direction(groups[0].Net())
	assert.Equal(t, TypeCollection, kind)
	assert.True(t, amount.Equal(dec("70")), "got %s", amount)
	assert.False(t, amount.IsNegative())
}

func TestZeroNetIsPayout(t *testing.T) {
	kind, amount := Direction(decimal.Zero)
	assert.Equal(t, TypePayout, kind)
	assert.True(t, amount.IsZero())
}

func TestGroupByShopSplitsAndOrders(t *testing.T) {
	groups := GroupByShop([]models.Booking{
		completed(1, 30, "2024-05-22", "cash", "10", "0"),
		completed(2, 20, "2024-05-25", "online", "0", "15.50"),
		completed(3, 30, "2024-05-13", "online", "0", "12.25"),
		completed(4, 20, "2024-05-19", "online", "0", "4.50"),
	})
	require.Len(t, groups, 2)

	assert.Equal(t, uint(20), groups[0].ShopID)
	assert.Equal(t, []uint{2, 4}, groups[0].BookingIDs)
	assert.Equal(t, "2024-05-19", groups[0].MinDate)
	assert.Equal(t, "2024-05-25", groups[0].MaxDate)
	assert.True(t, groups[0].Net().Equal(dec("20")))

	assert.Equal(t, uint(30), groups[1].ShopID)
	assert.Equal(t, []uint{1, 3}, groups[1].BookingIDs)
	assert.Equal(t, "2024-05-13", groups[1].MinDate)
	assert.True(t, groups[1].Net().Equal(dec("2.25")))
}

func TestGroupNetRoundsFloatNoise(t *testing.T) {
	b1 := completed(1, 1, "2024-05-20", "online", "0", "0")
	b1.BarberNetRevenue = decimal.NewFromFloat(0.1)
	b2 := completed(2, 1, "2024-05-20", "online", "0", "0")
	b2.BarberNetRevenue = decimal.NewFromFloat(0.2)

	g := GroupByShop([]models.Booking{b1, b2})[0]
	assert.Equal(t, "0.3", g.Net().String())
}

func TestNewFromGroup(t *testing.T) {
	admin := uint(99)
	now := time.Date(2024, 6, 5, 0, 0, 0, 0, timezone.Business)
	g := Group{
		ShopID:         7,
		BookingIDs:     []uint{1, 2, 3},
		MinDate:        "2024-05-20",
		MaxDate:        "2024-05-26",
		TotalAdminNet:  dec("100"),
		TotalBarberNet: dec("40"),
	}

	s := NewFromGroup(g, &admin, now)
	assert.Equal(t, uint(7), s.ShopID)
	assert.Equal(t, &admin, s.AdminID)
	assert.Equal(t, string(TypeCollection), s.Type)
	assert.Equal(t, string(StatusPendingCollection), s.Status)
	assert.True(t, s.Amount.Equal(dec("60")))
	assert.Equal(t, models.DateRange{Start: "2024-05-20", End: "2024-05-26"}, s.DateRange)
	assert.NotEmpty(t, s.Reference)
	assert.Equal(t, now, s.GeneratedAt)
}

func TestCutoffAndEligibility(t *testing.T) {
	now := time.Date(2024, 6, 5, 10, 0, 0, 0, timezone.Business) // Wednesday
	cutoff := Cutoff(now)
	assert.Equal(t, "2024-06-03", cutoff)

	ok := completed(1, 1, "2024-06-02", "cash", "1", "1")
	assert.True(t, IsEligible(&ok, cutoff))

	onCutoff := completed(2, 1, "2024-06-03", "cash", "1", "1")
	assert.False(t, IsEligible(&onCutoff, cutoff))

	legacy := completed(3, 1, "2024-05-01", "cash", "1", "1")
	legacy.SettlementStatus = ""
	assert.True(t, IsEligible(&legacy, cutoff))

	settled := completed(4, 1, "2024-05-01", "cash", "1", "1")
	settled.SettlementStatus = "SETTLED"
	assert.False(t, IsEligible(&settled, cutoff))

	upcoming := completed(5, 1, "2024-05-01", "cash", "1", "1")
	upcoming.Status = "upcoming"
	assert.False(t, IsEligible(&upcoming, cutoff))
}

func TestBalanceOf(t *testing.T) {
	online := completed(1, 1, "2024-05-20", "UPI", "5", "45")
	online.AmountCollectedBy = "ADMIN"
	cash := completed(2, 1, "2024-05-20", "cash", "12.5", "100")
	cash.AmountCollectedBy = "BARBER"

	bal := BalanceOf([]models.Booking{online, cash})
	assert.True(t, bal.AdminOwesShop.Equal(dec("45")))
	assert.True(t, bal.ShopOwesAdmin.Equal(dec("12.5")))
	assert.True(t, bal.Net.Equal(dec("32.5")))
	assert.Equal(t, 2, bal.BookingCount)
}

func TestPendingStatus(t *testing.T) {
	assert.Equal(t, StatusPendingPayout, PendingStatus(TypePayout))
	assert.Equal(t, StatusPendingCollection, PendingStatus(TypeCollection))
}
