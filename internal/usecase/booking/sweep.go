package booking

import (
	"context"

	cr "github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/clock"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type SweepResult struct {
	Candidates int `json:"candidates"`
	Missed     int `json:"missed"`
	Flagged    int `json:"flagged"`
	Failed     int `json:"failed"`
}

// SweepMissedBookings marks upcoming and pending bookings whose end time has
// passed as missed. Each booking is its own operation: a failure is logged and
// the sweep moves on.
type SweepMissedBookings struct {
	repo      domain.Repository
	incidents incidentPolicy
	settings  settingsSource
	audit     audit.Recorder
	clock     timezone.Clock
	log       *zap.Logger
}

func NewSweepMissedBookings(
	repo domain.Repository,
	users domain.UserRepository,
	configs domain.ConfigRepository,
	defaults config.BusinessConfig,
	audit audit.Recorder,
	clock timezone.Clock,
	log *zap.Logger,
) *SweepMissedBookings {
	return &SweepMissedBookings{
		repo:      repo,
		incidents: incidentPolicy{users: users, audit: audit},
		settings:  settingsSource{repo: configs, defaults: defaults, log: log},
		audit:     audit,
		clock:     clock,
		log:       log,
	}
}

func (uc *SweepMissedBookings) Execute(ctx context.Context) (SweepResult, error) {
	now := timezone.Now(uc.clock)

	candidates, err := uc.repo.ListSweepCandidates(ctx, now.Date)
	if err != nil {
		return SweepResult{}, cr.Wrap(err, "sweep missed bookings")
	}

	res := SweepResult{Candidates: len(candidates)}
	if len(candidates) == 0 {
		uc.log.Info("missed sweep: nothing to check", zap.String("date", now.Date))
		return res, nil
	}

	limit := uc.settings.load(ctx).YearlyCancellationLimit

	for i := range candidates {
		b := &candidates[i]

		if !domain.IsMissed(b.Date, endMinutes(b.StartTime, b.EndTime), now.Date, now.Minutes) {
			continue
		}

		log := uc.log.With(zap.Uint("bookingId", b.ID))

		changed, err := uc.repo.MarkMissed(ctx, b.ID)
		if err != nil {
			res.Failed++
			log.Warn("missed sweep: mark failed", zap.Error(err))
			continue
		}
		if !changed {
			continue
		}
		res.Missed++

		uc.audit.Dispatch(audit.Event{
			ShopID:   &b.ShopID,
			UserID:   b.UserID,
			Action:   "booking_missed",
			Entity:   "booking",
			EntityID: &b.ID,
		})

		if b.UserID == nil {
			continue
		}

		flagged, err := uc.incidents.record(ctx, *b.UserID, incidentNoShow, limit)
		if err != nil {
			res.Failed++
			log.Warn("missed sweep: user update failed", zap.Uint("userId", *b.UserID), zap.Error(err))
			continue
		}
		if flagged {
			res.Flagged++
			log.Info("missed sweep: user flagged", zap.Uint("userId", *b.UserID))
		}
	}

	uc.log.Info("missed sweep: done",
		zap.String("date", now.Date),
		zap.Int("candidates", res.Candidates),
		zap.Int("missed", res.Missed),
		zap.Int("flagged", res.Flagged),
		zap.Int("failed", res.Failed),
	)
	return res, nil
}

// endMinutes puts an end time that wraps past midnight on the next day.
func endMinutes(start, end string) int {
	s, e := clock.TimeToMinutes(start), clock.TimeToMinutes(end)
	if e < s {
		e += clock.MinutesPerDay
	}
	return e
}
