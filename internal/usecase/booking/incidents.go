package booking

import (
	"context"

	cr "github.com/cockroachdb/errors"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type incident int

const (
	incidentNoShow incident = iota
	incidentCancellation
)

// incidentPolicy counts a no-show or cancellation against a user and flags the
// account once no-shows plus cancellations exceed the yearly limit.
type incidentPolicy struct {
	users domain.UserRepository
	audit audit.Recorder
}

// record returns true only for the call that actually set the flag.
func (p incidentPolicy) record(
	ctx context.Context,
	userID uint,
	kind incident,
	limit int,
) (bool, error) {

	var (
		user *models.User
		err  error
	)
	switch kind {
	case incidentCancellation:
		user, err = p.users.IncrementCancellation(ctx, userID)
	default:
		user, err = p.users.IncrementNoShow(ctx, userID)
	}
	if err != nil {
		return false, cr.Wrapf(err, "count incident for user %d", userID)
	}

	if user.IsFlagged || !domain.ExceedsIncidentLimit(user, limit) {
		return false, nil
	}

	flagged, err := p.users.Flag(ctx, userID)
	if err != nil {
		return false, cr.Wrapf(err, "flag user %d", userID)
	}
	if !flagged {
		return false, nil
	}

	p.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "user_flagged",
		Entity:   "user",
		EntityID: &userID,
		Metadata: map[string]any{
			"noShowCount":       user.NoShowCount,
			"cancellationCount": user.CancellationCount,
			"limit":             limit,
		},
	})
	return true, nil
}
