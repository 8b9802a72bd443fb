package booking

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	cr "github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/clock"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

const (
	// startGrace tolerates a start time that slipped into the past while the
	// customer was filling in the form.
	startGrace           = 2
	defaultMaxNoticeDays = 30
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	UserID *uint
	ShopID uint
	// BarberID nil means any free barber.
	BarberID   *uint
	ServiceIDs []uint
	// Duration is only used for blocked time, which has no services.
	Duration      int
	Date          string
	StartTime     string
	PaymentMethod string
	Type          domain.Type
	Notes         string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	settings settingsSource
	audit    audit.Recorder
	clock    timezone.Clock
	log      *zap.Logger

	// pick chooses among n free barbers.
	pick func(n int) int
}

func NewCreateBooking(
	repo domain.Repository,
	configs domain.ConfigRepository,
	defaults config.BusinessConfig,
	audit audit.Recorder,
	clock timezone.Clock,
	log *zap.Logger,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		settings: settingsSource{repo: configs, defaults: defaults, log: log},
		audit:    audit,
		clock:    clock,
		log:      log,
		pick:     rand.IntN,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	if in.Type == "" {
		in.Type = domain.TypeOnline
	}
	switch in.Type {
	case domain.TypeOnline, domain.TypeWalkIn, domain.TypeBlocked:
	default:
		return nil, httperr.ErrBusiness("invalid_booking_type")
	}
	if in.Type == domain.TypeOnline && in.UserID == nil {
		return nil, httperr.ErrBusiness("user_required")
	}

	// --------------------------------------------------
	// Date / time
	// --------------------------------------------------
	if _, err := clock.ParseDate(in.Date); err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	start, err := clock.ParseTime(in.StartTime)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_time")
	}

	shop, err := uc.repo.GetShop(ctx, in.ShopID)
	if err != nil {
		return nil, err
	}

	if in.Type == domain.TypeOnline {
		if err := uc.checkNotice(shop, in.Date, start); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// Services
	// --------------------------------------------------
	duration, price, names, err := uc.services(ctx, in)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Barber
	// --------------------------------------------------
	barbers, err := candidateBarbers(ctx, uc.repo, shop.ID, in.BarberID)
	if err != nil {
		return nil, err
	}
	days, err := barberDays(ctx, uc.repo, barbers, in.Date, shop.BufferTime)
	if err != nil {
		return nil, err
	}

	// days follows the order of barbers
	free := make([]int, 0, len(days))
	for i, d := range days {
		if d.FreeAt(start, duration+shop.BufferTime) {
			free = append(free, i)
		}
	}
	if len(free) == 0 {
		return nil, httperr.ErrBusiness("slot_unavailable")
	}
	chosen := barbers[free[uc.pick(len(free))]]

	// --------------------------------------------------
	// Payment
	// --------------------------------------------------
	set := uc.settings.load(ctx)

	method := strings.TrimSpace(in.PaymentMethod)
	if method == "" {
		method = "cash"
	}
	if in.Type == domain.TypeOnline && domain.IsCash(method) {
		if err := uc.checkCashLimit(ctx, *in.UserID, in.Date, set.MaxCashBookingsPerMonth); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// Persist
	// --------------------------------------------------
	b := &models.Booking{
		UserID:            in.UserID,
		ShopID:            shop.ID,
		BarberID:          chosen.ID,
		ServiceNames:      names,
		TotalDuration:     duration,
		Date:              in.Date,
		StartTime:         clock.MinutesToTime(start),
		EndTime:           clock.MinutesToTime(start + duration),
		Status:            string(domain.InitialStatus(in.Type, shop.AutoApproveBookings)),
		Type:              string(in.Type),
		PaymentMethod:     method,
		Notes:             in.Notes,
		AmountCollectedBy: domain.CollectedBy(method),
		SettlementStatus:  string(domain.SettlementPending),
	}
	if in.Type != domain.TypeBlocked {
		b.BookingKey = fmt.Sprintf("%04d", 1000+uc.pick(9000))
	}
	domain.ComputeFinancials(price, set.Rates).Apply(b)

	err = uc.repo.WithBarberLock(ctx, chosen.ID, func(tx domain.Repository) error {
		// the slot may have been taken since the first read
		locked, err := barberDays(ctx, tx, []models.Barber{chosen}, in.Date, shop.BufferTime)
		if err != nil {
			return err
		}
		if !locked[0].FreeAt(start, duration+shop.BufferTime) {
			return httperr.ErrBusiness("slot_unavailable")
		}
		return tx.CreateBooking(ctx, b)
	})
	if err != nil {
		return nil, cr.Wrap(err, "create booking")
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   &b.ShopID,
		UserID:   b.UserID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{
			"barberId": b.BarberID,
			"date":     b.Date,
			"start":    b.StartTime,
			"type":     b.Type,
		},
	})

	return b, nil
}

// checkNotice applies the shop's booking window to an online booking.
func (uc *CreateBooking) checkNotice(shop *models.Shop, date string, start int) error {
	now := timezone.Now(uc.clock)

	maxDays := shop.MaxBookingNotice
	if maxDays <= 0 {
		maxDays = defaultMaxNoticeDays
	}
	last, err := clock.AddDays(now.Date, maxDays)
	if err != nil {
		return cr.Wrap(err, "notice window")
	}

	switch {
	case date > last:
		return httperr.ErrBusiness("too_far_ahead")
	case date < now.Date:
		return httperr.ErrBusiness("slot_in_past")
	case date > now.Date:
		return nil
	case start < now.Minutes-startGrace:
		return httperr.ErrBusiness("slot_in_past")
	case start < now.Minutes+shop.MinBookingNotice-startGrace:
		return httperr.ErrBusiness("too_soon")
	}
	return nil
}

func (uc *CreateBooking) services(
	ctx context.Context,
	in CreateBookingInput,
) (int, decimal.Decimal, string, error) {

	if in.Type == domain.TypeBlocked {
		if in.Duration <= 0 {
			return 0, decimal.Zero, "", httperr.ErrBusiness("invalid_duration")
		}
		return in.Duration, decimal.Zero, "", nil
	}

	if len(in.ServiceIDs) == 0 {
		return 0, decimal.Zero, "", httperr.ErrBusiness("services_required")
	}

	var (
		duration int
		price    = decimal.Zero
		names    = make([]string, 0, len(in.ServiceIDs))
	)
	for _, id := range in.ServiceIDs {
		s, err := uc.repo.GetService(ctx, in.ShopID, id)
		if err != nil {
			return 0, decimal.Zero, "", err
		}
		if !s.Active {
			return 0, decimal.Zero, "", httperr.ErrBusiness("service_not_found")
		}
		duration += s.DurationMin
		price = price.Add(s.Price)
		names = append(names, s.Name)
	}
	if duration <= 0 {
		return 0, decimal.Zero, "", httperr.ErrBusiness("invalid_duration")
	}

	return duration, price, strings.Join(names, ", "), nil
}

// checkCashLimit counts the user's cash bookings in the calendar month of date.
func (uc *CreateBooking) checkCashLimit(ctx context.Context, userID uint, date string, limit int) error {
	d, err := clock.ParseDate(date)
	if err != nil {
		return httperr.ErrBusiness("invalid_date")
	}
	first := d.AddDate(0, 0, 1-d.Day())
	last := first.AddDate(0, 1, -1)

	n, err := uc.repo.CountCashBookings(ctx, userID, first.Format(clock.DateLayout), last.Format(clock.DateLayout))
	if err != nil {
		return cr.Wrap(err, "count cash bookings")
	}
	if n >= int64(limit) {
		return httperr.ErrBusiness("cash_limit_reached")
	}
	return nil
}
