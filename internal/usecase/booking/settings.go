package booking

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
)

// settings are the global business values with zero or missing fields filled
// from the process defaults.
type settings struct {
	YearlyCancellationLimit int
	MaxCashBookingsPerMonth int
	Rates                   domain.Rates
}

type settingsSource struct {
	repo     domain.ConfigRepository
	defaults config.BusinessConfig
	log      *zap.Logger
}

func (s settingsSource) load(ctx context.Context) settings {
	out := settings{
		YearlyCancellationLimit: s.defaults.YearlyCancellationLimit,
		MaxCashBookingsPerMonth: s.defaults.MaxCashBookingsPerMonth,
		Rates: domain.Rates{
			Commission: s.defaults.CommissionRate,
			Discount:   s.defaults.DiscountRate,
		},
	}

	cfg, err := s.repo.GetGlobal(ctx)
	if err != nil {
		s.log.Warn("system config unavailable, using defaults", zap.Error(err))
		return out
	}

	if cfg.YearlyCancellationLimit > 0 {
		out.YearlyCancellationLimit = cfg.YearlyCancellationLimit
	}
	if cfg.MaxCashBookingsPerMonth > 0 {
		out.MaxCashBookingsPerMonth = cfg.MaxCashBookingsPerMonth
	}
	// a stored zero rate is a real setting; only negative values are ignored
	if !cfg.AdminCommissionRate.IsNegative() {
		out.Rates.Commission = cfg.AdminCommissionRate
	}
	if !cfg.UserDiscountRate.IsNegative() {
		out.Rates.Discount = cfg.UserDiscountRate
	}
	return out
}
