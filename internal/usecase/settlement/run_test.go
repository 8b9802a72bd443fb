package settlement

import (
	"context"
	"testing"
	"time"

	cr "github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/settlement"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// Wednesday; the cutoff is Monday 2024-06-03.
var wednesday = timezone.FixedClock(time.Date(2024, 6, 5, 9, 0, 0, 0, timezone.Business))

type recorder struct {
	events []audit.Event
}

func (r *recorder) Dispatch(ev audit.Event) { r.events = append(r.events, ev) }

func completedBooking(id, shop uint, date, method, adminNet, barberNet string) models.Booking {
	return models.Booking{
		ID:                id,
		ShopID:            shop,
		Date:              date,
		Status:            "completed",
		PaymentMethod:     method,
		SettlementStatus:  "PENDING",
		AdminNetRevenue:   decimal.RequireFromString(adminNet),
		BarberNetRevenue:  decimal.RequireFromString(barberNet),
		AmountCollectedBy: collectedBy(method),
	}
}

func collectedBy(method string) string {
	if method == "cash" || method == "CASH" {
		return "BARBER"
	}
	return "ADMIN"
}

func newRun(store *memoryStore) (*RunSettlement, *recorder) {
	rec := &recorder{}
	return NewRunSettlement(store, rec, wednesday, zap.NewNop()), rec
}

func TestRunSettlementNetsPerShop(t *testing.T) {
	store := newMemoryStore(
		completedBooking(1, 10, "2024-05-27", "cash", "50", "450"),
		completedBooking(2, 10, "2024-05-29", "ONLINE", "8", "80"),
		completedBooking(3, 20, "2024-05-30", "CASH", "90", "810"),
		completedBooking(4, 20, "2024-06-01", "UPI", "2", "20"),
	)
	uc, rec := newRun(store)

	admin := uint(1)
	res, err := uc.Execute(context.Background(), &admin)
	require.NoError(t, err)

	assert.Equal(t, OutcomeCompleted, res.Outcome)
	assert.Equal(t, 2, res.Count)
	require.Len(t, store.settlements, 2)

	byShop := map[uint]models.Settlement{}
	for _, s := range store.settlements {
		byShop[s.ShopID] = s
	}

	payout := byShop[10]
	assert.Equal(t, string(domain.TypePayout), payout.Type)
	assert.True(t, payout.Amount.Equal(decimal.NewFromInt(30)), "got %s", payout.Amount)
	assert.Equal(t, string(domain.StatusPendingPayout), payout.Status)
	assert.Equal(t, models.DateRange{Start: "2024-05-27", End: "2024-05-29"}, payout.DateRange)
	assert.Equal(t, &admin, payout.AdminID)

	collection := byShop[20]
	assert.Equal(t, string(domain.TypeCollection), collection.Type)
	assert.True(t, collection.Amount.Equal(decimal.NewFromInt(70)), "got %s", collection.Amount)
	assert.Equal(t, string(domain.StatusPendingCollection), collection.Status)

	for id, b := range store.bookings {
		assert.Equal(t, "SETTLED", b.SettlementStatus, "booking %d", id)
		require.NotNil(t, b.SettlementID)
		assert.Equal(t, byShop[b.ShopID].ID, *b.SettlementID)
	}

	assert.Len(t, rec.events, 2)
	assert.Equal(t, "settlement_generated", rec.events[0].Action)
}

func TestRunSettlementIsIdempotent(t *testing.T) {
	store := newMemoryStore(
		completedBooking(1, 10, "2024-05-27", "cash", "50", "450"),
		completedBooking(2, 10, "2024-05-29", "online", "8", "80"),
	)
	uc, _ := newRun(store)

	first, err := uc.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Count)

	second, err := uc.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoPending, second.Outcome)
	assert.Equal(t, 0, second.Count)
	assert.Len(t, store.settlements, 1)
}

func TestRunSettlementRespectsCutoff(t *testing.T) {
	store := newMemoryStore(
		completedBooking(1, 10, "2024-06-02", "online", "1", "10"),
		completedBooking(2, 10, "2024-06-03", "online", "1", "99"),
		completedBooking(3, 10, "2024-06-04", "online", "1", "99"),
	)
	uc, _ := newRun(store)

	res, err := uc.Execute(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)

	s := store.settlements[res.SettlementIDs[0]]
	assert.True(t, s.Amount.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "SETTLED", store.bookings[1].SettlementStatus)
	assert.Equal(t, "PENDING", store.bookings[2].SettlementStatus)
	assert.Equal(t, "PENDING", store.bookings[3].SettlementStatus)
}

func TestRunSettlementSkipsIneligibleStatuses(t *testing.T) {
	upcoming := completedBooking(1, 10, "2024-05-20", "online", "1", "10")
	upcoming.Status = "upcoming"
	settled := completedBooking(2, 10, "2024-05-20", "online", "1", "10")
	settled.SettlementStatus = "SETTLED"

	store := newMemoryStore(upcoming, settled)
	uc, rec := newRun(store)

	res, err := uc.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoPending, res.Outcome)
	assert.Empty(t, store.settlements)
	assert.Empty(t, rec.events)
}

func TestRunSettlementRollsBackEverything(t *testing.T) {
	store := newMemoryStore(
		completedBooking(1, 10, "2024-05-27", "online", "1", "10"),
		completedBooking(2, 20, "2024-05-27", "online", "1", "20"),
	)
	store.failCreateForShop = 20
	uc, rec := newRun(store)

	_, err := uc.Execute(context.Background(), nil)
	require.ErrorIs(t, err, errInjected)

	assert.Empty(t, store.settlements)
	assert.Equal(t, "PENDING", store.bookings[1].SettlementStatus)
	assert.Nil(t, store.bookings[1].SettlementID)
	assert.Empty(t, rec.events)
}

func TestRunSettlementReportsConflict(t *testing.T) {
	store := newMemoryStore(
		completedBooking(1, 10, "2024-05-27", "online", "1", "10"),
	)
	store.commitErr = cr.Mark(cr.New("could not serialize access (40001)"), domain.ErrConflict)
	uc, rec := newRun(store)

	_, err := uc.Execute(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "settlement_conflict"), err.Error())

	assert.Empty(t, store.settlements)
	assert.Equal(t, "PENDING", store.bookings[1].SettlementStatus)
	assert.Empty(t, rec.events)
}

func TestRunSettlementKeepsOtherFailuresInternal(t *testing.T) {
	store := newMemoryStore(
		completedBooking(1, 10, "2024-05-27", "online", "1", "10"),
	)
	store.commitErr = errInjected
	uc, _ := newRun(store)

	_, err := uc.Execute(context.Background(), nil)
	require.ErrorIs(t, err, errInjected)
	assert.False(t, httperr.IsBusiness(err, "settlement_conflict"))
}

func TestPreviewSettlementWritesNothing(t *testing.T) {
	store := newMemoryStore(
		completedBooking(1, 10, "2024-05-27", "cash", "50", "450"),
		completedBooking(2, 10, "2024-05-29", "online", "8", "80"),
		completedBooking(3, 20, "2024-05-30", "cash", "90", "810"),
		completedBooking(4, 20, "2024-06-01", "upi", "2", "20"),
		completedBooking(5, 30, "2024-06-04", "online", "2", "20"),
	)

	p, err := NewPreviewSettlement(store, wednesday).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2024-06-03", p.CutoffDate)
	assert.Equal(t, 2, p.ShopCount)
	assert.True(t, p.TotalPayout.Equal(decimal.NewFromInt(30)))
	assert.True(t, p.TotalCollection.Equal(decimal.NewFromInt(70)))
	assert.Empty(t, store.settlements)
	assert.Equal(t, "PENDING", store.bookings[1].SettlementStatus)
}

func TestCreateManualSettlement(t *testing.T) {
	store := newMemoryStore(
		completedBooking(1, 10, "2024-06-04", "online", "5", "45"),
		completedBooking(2, 10, "2024-06-01", "cash", "12.50", "100"),
		completedBooking(3, 10, "2024-06-02", "online", "5", "45"),
		completedBooking(4, 20, "2024-06-01", "online", "5", "45"),
	)
	rec := &recorder{}
	uc := NewCreateManualSettlement(store, rec, wednesday)

	s, err := uc.Execute(context.Background(), 1, 10, []uint{1, 2})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCompleted), s.Status)
	assert.Equal(t, string(domain.TypePayout), s.Type)
	assert.True(t, s.Amount.Equal(decimal.RequireFromString("32.5")), "got %s", s.Amount)
	assert.Equal(t, models.DateRange{Start: "2024-06-01", End: "2024-06-04"}, s.DateRange)

	assert.Equal(t, "SETTLED", store.bookings[1].SettlementStatus)
	assert.Equal(t, "SETTLED", store.bookings[2].SettlementStatus)
	assert.Equal(t, "PENDING", store.bookings[3].SettlementStatus)
	assert.Equal(t, "PENDING", store.bookings[4].SettlementStatus)
	assert.Len(t, rec.events, 1)
}

func TestCreateManualSettlementNothingPending(t *testing.T) {
	store := newMemoryStore(completedBooking(1, 10, "2024-06-01", "online", "5", "45"))
	uc := NewCreateManualSettlement(store, audit.Nop{}, wednesday)

	_, err := uc.Execute(context.Background(), 1, 99, nil)
	assert.True(t, httperr.IsBusiness(err, "no_pending_bookings"))
	assert.Empty(t, store.settlements)
}
