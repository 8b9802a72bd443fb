package booking

import (
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusPending   Status = "pending"
	StatusCheckedIn Status = "checked-in"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusBlocked   Status = "blocked"
	StatusNoShow    Status = "no-show"
	StatusMissed    Status = "missed"
)

// transitions lists the forward-only moves; terminal states have no entry.
var transitions = map[Status][]Status{
	StatusPending:   {StatusUpcoming, StatusCancelled, StatusMissed},
	StatusUpcoming:  {StatusCheckedIn, StatusCompleted, StatusCancelled, StatusNoShow, StatusMissed},
	StatusCheckedIn: {StatusCompleted, StatusNoShow},
	StatusBlocked:   {StatusCancelled},
}

// SweepableStatuses are the states the missed-booking sweep looks at.
var SweepableStatuses = []Status{StatusUpcoming, StatusPending}

func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (s Status) Terminal() bool {
	_, ok := transitions[s]
	return !ok
}

// ===============================
// Validations
// ===============================

func CanCancel(current Status) error {
	if !CanTransition(current, StatusCancelled) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if !CanTransition(current, StatusCompleted) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCheckIn(current Status) error {
	if !CanTransition(current, StatusCheckedIn) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanMarkNoShow(current Status) error {
	if !CanTransition(current, StatusNoShow) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanApprove(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// InitialStatus picks the creation status from the booking type and the shop's
// auto-approve flag.
func InitialStatus(kind Type, autoApprove bool) Status {
	switch {
	case kind == TypeBlocked:
		return StatusBlocked
	case !autoApprove && kind != TypeWalkIn:
		return StatusPending
	default:
		return StatusUpcoming
	}
}

// ===============================
// Booking Type / Payment
// ===============================

type Type string

const (
	TypeOnline  Type = "online"
	TypeWalkIn  Type = "walk-in"
	TypeBlocked Type = "blocked"
)

const (
	CollectedByAdmin  = "ADMIN"
	CollectedByBarber = "BARBER"
)

// IsCash matches the payment method case-insensitively.
func IsCash(method string) bool {
	return strings.EqualFold(strings.TrimSpace(method), "cash")
}

// CollectedBy tells who holds the customer's money: the platform for online
// payments, the shop otherwise.
func CollectedBy(method string) string {
	switch strings.ToUpper(strings.TrimSpace(method)) {
	case "UPI", "ONLINE":
		return CollectedByAdmin
	default:
		return CollectedByBarber
	}
}

// ===============================
// Settlement Status
// ===============================

type SettlementStatus string

const (
	SettlementPending SettlementStatus = "PENDING"
	SettlementSettled SettlementStatus = "SETTLED"
	SettlementPartial SettlementStatus = "PARTIAL"
)

// IsUnsettled treats an absent status like PENDING (legacy rows).
func IsUnsettled(s string) bool {
	return s == "" || SettlementStatus(s) == SettlementPending
}
