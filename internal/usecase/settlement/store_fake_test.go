package settlement

import (
	"context"
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/settlement"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// memoryStore keeps bookings and settlements in maps. WithinTx works on a copy
// and swaps it in only when fn succeeds.
type memoryStore struct {
	bookings    map[uint]models.Booking
	settlements map[uint]models.Settlement
	nextID      uint

	failCreateForShop uint
	// commitErr fails WithinTx after fn succeeds, discarding its writes.
	commitErr error
}

type memoryTx struct {
	s *memoryStore
}

var errInjected = errors.New("injected failure")

func newMemoryStore(bookings ...models.Booking) *memoryStore {
	s := &memoryStore{
		bookings:    map[uint]models.Booking{},
		settlements: map[uint]models.Settlement{},
		nextID:      1,
	}
	for _, b := range bookings {
		s.bookings[b.ID] = b
	}
	return s
}

func (s *memoryStore) clone() *memoryStore {
	c := newMemoryStore()
	for id, b := range s.bookings {
		c.bookings[id] = b
	}
	for id, st := range s.settlements {
		c.settlements[id] = st
	}
	c.nextID = s.nextID
	c.failCreateForShop = s.failCreateForShop
	return c
}

func (s *memoryStore) WithinTx(ctx context.Context, fn func(tx domain.TxStore) error) error {
	work := s.clone()
	if err := fn(&memoryTx{s: work}); err != nil {
		return err
	}
	if s.commitErr != nil {
		return s.commitErr
	}
	s.bookings, s.settlements, s.nextID = work.bookings, work.settlements, work.nextID
	return nil
}

func (s *memoryStore) sorted(filter func(b models.Booking) bool) []models.Booking {
	out := []models.Booking{}
	for _, b := range s.bookings {
		if filter(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ShopID != out[j].ShopID {
			return out[i].ShopID < out[j].ShopID
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func unsettledCompleted(b models.Booking) bool {
	return booking.Status(b.Status) == booking.StatusCompleted && booking.IsUnsettled(b.SettlementStatus)
}

func (s *memoryStore) ListEligible(_ context.Context, cutoff string) ([]models.Booking, error) {
	return s.sorted(func(b models.Booking) bool { return domain.IsEligible(&b, cutoff) }), nil
}

func (s *memoryStore) ListUnsettledCompleted(_ context.Context, shopID *uint) ([]models.Booking, error) {
	return s.sorted(func(b models.Booking) bool {
		return unsettledCompleted(b) && (shopID == nil || b.ShopID == *shopID)
	}), nil
}

func (s *memoryStore) TotalBarberNet(_ context.Context, shopID uint) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, b := range s.bookings {
		if b.ShopID == shopID && booking.Status(b.Status) == booking.StatusCompleted {
			total = total.Add(b.BarberNetRevenue)
		}
	}
	return total, nil
}

func (s *memoryStore) ListSettlements(_ context.Context, shopID *uint, limit int) ([]models.Settlement, error) {
	out := []models.Settlement{}
	for _, st := range s.settlements {
		if shopID == nil || st.ShopID == *shopID {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memoryStore) GetSettlement(_ context.Context, id uint) (*models.Settlement, error) {
	st, ok := s.settlements[id]
	if !ok {
		return nil, httperr.ErrBusiness("settlement_not_found")
	}
	st.Bookings = s.sorted(func(b models.Booking) bool { return b.SettlementID != nil && *b.SettlementID == id })
	return &st, nil
}

func (s *memoryStore) UpdateSettlementStatus(_ context.Context, id uint, status domain.Status, note string) error {
	st, ok := s.settlements[id]
	if !ok {
		return httperr.ErrBusiness("settlement_not_found")
	}
	st.Status = string(status)
	st.Notes += "\n" + note
	s.settlements[id] = st
	return nil
}

func (t *memoryTx) LockEligible(ctx context.Context, cutoff string) ([]models.Booking, error) {
	return t.s.ListEligible(ctx, cutoff)
}

func (t *memoryTx) LockUnsettledForShop(_ context.Context, shopID uint, bookingIDs []uint) ([]models.Booking, error) {
	want := map[uint]bool{}
	for _, id := range bookingIDs {
		want[id] = true
	}
	return t.s.sorted(func(b models.Booking) bool {
		return unsettledCompleted(b) && b.ShopID == shopID && (len(want) == 0 || want[b.ID])
	}), nil
}

func (t *memoryTx) CreateSettlement(_ context.Context, st *models.Settlement) error {
	if t.s.failCreateForShop != 0 && st.ShopID == t.s.failCreateForShop {
		return errInjected
	}
	st.ID = t.s.nextID
	t.s.nextID++
	t.s.settlements[st.ID] = *st
	return nil
}

func (t *memoryTx) MarkSettled(_ context.Context, bookingIDs []uint, settlementID uint) (int64, error) {
	var n int64
	for _, id := range bookingIDs {
		b, ok := t.s.bookings[id]
		if !ok || !unsettledCompleted(b) {
			continue
		}
		if err := booking.MarkSettled(&b, settlementID); err != nil {
			return n, err
		}
		t.s.bookings[id] = b
		n++
	}
	return n, nil
}

var (
	_ domain.Store   = (*memoryStore)(nil)
	_ domain.TxStore = (*memoryTx)(nil)
)
