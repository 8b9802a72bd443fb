package settlement

import (
	cr "github.com/cockroachdb/errors"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ErrConflict marks a settlement transaction that lost to a concurrent writer.
// The run is safe to retry on the next tick.
var ErrConflict = cr.New("settlement conflict")

// Type is the direction money moves in.
type Type string

const (
	TypePayout     Type = "PAYOUT"     // platform pays shop
	TypeCollection Type = "COLLECTION" // shop pays platform
)

type Status string

const (
	StatusGenerated         Status = "GENERATED"
	StatusPendingPayout     Status = "PENDING_PAYOUT"
	StatusPendingCollection Status = "PENDING_COLLECTION"
	StatusCompleted         Status = "COMPLETED"
	StatusFailed            Status = "FAILED"
)

// PendingStatus is the status a freshly generated settlement of type t starts in.
func PendingStatus(t Type) Status {
	if t == TypeCollection {
		return StatusPendingCollection
	}
	return StatusPendingPayout
}

// BookingIDs lists the bookings a settlement claims.
func BookingIDs(s *models.Settlement) []uint {
	ids := make([]uint, 0, len(s.Bookings))
	for _, b := range s.Bookings {
		ids = append(ids, b.ID)
	}
	return ids
}
