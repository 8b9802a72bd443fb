package booking

import (
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(b *models.Booking) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}
	b.Status = string(StatusCancelled)
	return nil
}

func Complete(b *models.Booking) error {
	if err := CanComplete(Status(b.Status)); err != nil {
		return err
	}
	b.Status = string(StatusCompleted)
	return nil
}

func CheckIn(b *models.Booking) error {
	if err := CanCheckIn(Status(b.Status)); err != nil {
		return err
	}
	b.Status = string(StatusCheckedIn)
	return nil
}

func Approve(b *models.Booking) error {
	if err := CanApprove(Status(b.Status)); err != nil {
		return err
	}
	b.Status = string(StatusUpcoming)
	return nil
}

func MarkNoShow(b *models.Booking) error {
	if err := CanMarkNoShow(Status(b.Status)); err != nil {
		return err
	}
	b.Status = string(StatusNoShow)
	return nil
}

// MarkSettled claims the booking for a settlement. Financial fields are frozen
// from here on.
func MarkSettled(b *models.Booking, settlementID uint) error {
	if Status(b.Status) != StatusCompleted || !IsUnsettled(b.SettlementStatus) {
		return httperr.ErrBusiness("not_settleable")
	}
	b.SettlementStatus = string(SettlementSettled)
	b.SettlementID = &settlementID
	return nil
}

// IsMissed decides whether a sweepable booking's time has passed, given the
// current business date and minutes.
func IsMissed(date string, endMinutes int, today string, nowMinutes int) bool {
	if date < today {
		return true
	}
	return date == today && endMinutes < nowMinutes
}

// ExceedsIncidentLimit reports whether a user's no-shows plus cancellations are
// strictly above the yearly limit.
func ExceedsIncidentLimit(u *models.User, limit int) bool {
	return u.NoShowCount+u.CancellationCount > limit
}
