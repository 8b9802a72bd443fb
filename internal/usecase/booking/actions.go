package booking

import (
	"context"

	cr "github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/actor"
	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// BookingActions moves existing bookings through their lifecycle. Every
// transition is forward-only and validated by the domain.
type BookingActions struct {
	repo      domain.Repository
	incidents incidentPolicy
	settings  settingsSource
	audit     audit.Recorder
	log       *zap.Logger
}

func NewBookingActions(
	repo domain.Repository,
	users domain.UserRepository,
	configs domain.ConfigRepository,
	defaults config.BusinessConfig,
	audit audit.Recorder,
	log *zap.Logger,
) *BookingActions {
	return &BookingActions{
		repo:      repo,
		incidents: incidentPolicy{users: users, audit: audit},
		settings:  settingsSource{repo: configs, defaults: defaults, log: log},
		audit:     audit,
		log:       log,
	}
}

// Cancel is open to the booking's customer and to whoever manages the shop.
// A customer booking counts as a cancellation incident.
func (uc *BookingActions) Cancel(ctx context.Context, a actor.Actor, id uint) (*models.Booking, error) {
	b, err := uc.repo.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	own := b.UserID != nil && *b.UserID == a.UserID
	if !own && !a.ManagesShop(b.ShopID) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	if err := domain.Cancel(b); err != nil {
		return nil, err
	}
	if err := uc.save(ctx, a, b, "booking_cancelled"); err != nil {
		return nil, err
	}

	if b.UserID != nil {
		limit := uc.settings.load(ctx).YearlyCancellationLimit
		if _, err := uc.incidents.record(ctx, *b.UserID, incidentCancellation, limit); err != nil {
			// the cancellation itself is committed
			uc.log.Warn("cancel: user update failed",
				zap.Uint("bookingId", b.ID),
				zap.Uint("userId", *b.UserID),
				zap.Error(err),
			)
		}
	}

	return b, nil
}

func (uc *BookingActions) Complete(ctx context.Context, a actor.Actor, id uint) (*models.Booking, error) {
	return uc.transition(ctx, a, id, domain.Complete, "booking_completed")
}

func (uc *BookingActions) Approve(ctx context.Context, a actor.Actor, id uint) (*models.Booking, error) {
	return uc.transition(ctx, a, id, domain.Approve, "booking_approved")
}

// CheckIn requires the PIN the customer received at booking time.
func (uc *BookingActions) CheckIn(ctx context.Context, a actor.Actor, id uint, key string) (*models.Booking, error) {
	return uc.transition(ctx, a, id, func(b *models.Booking) error {
		if b.BookingKey == "" || b.BookingKey != key {
			return httperr.ErrBusiness("invalid_booking_key")
		}
		return domain.CheckIn(b)
	}, "booking_checked_in")
}

// NoShow is the manual counterpart of the missed sweep and counts the same
// incident against the customer.
func (uc *BookingActions) NoShow(ctx context.Context, a actor.Actor, id uint) (*models.Booking, error) {
	b, err := uc.transition(ctx, a, id, domain.MarkNoShow, "booking_no_show")
	if err != nil {
		return nil, err
	}

	if b.UserID != nil {
		limit := uc.settings.load(ctx).YearlyCancellationLimit
		if _, err := uc.incidents.record(ctx, *b.UserID, incidentNoShow, limit); err != nil {
			uc.log.Warn("no-show: user update failed",
				zap.Uint("bookingId", b.ID),
				zap.Uint("userId", *b.UserID),
				zap.Error(err),
			)
		}
	}
	return b, nil
}

// -----------------------------------------------------

func (uc *BookingActions) transition(
	ctx context.Context,
	a actor.Actor,
	id uint,
	apply func(*models.Booking) error,
	action string,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.ManagesShop(b.ShopID) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	if err := apply(b); err != nil {
		return nil, err
	}
	if err := uc.save(ctx, a, b, action); err != nil {
		return nil, err
	}
	return b, nil
}

func (uc *BookingActions) save(ctx context.Context, a actor.Actor, b *models.Booking, action string) error {
	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return cr.Wrapf(err, "update booking %d", b.ID)
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   &b.ShopID,
		UserID:   &a.UserID,
		Action:   action,
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"status": b.Status},
	})
	return nil
}
