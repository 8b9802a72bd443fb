package lock

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
)

// FromConfig returns a Redis locker when an address is configured, Noop
// otherwise. An unreachable Redis is only logged: ticks fail to lock and are
// skipped until it comes back.
func FromConfig(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) (Locker, func()) {
	if cfg.Addr == "" {
		log.Info("job lock: redis not configured, running unguarded")
		return Noop{}, func() {}
	}

	l := NewRedis(cfg.Addr, cfg.Password, cfg.DB)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := l.Ping(pingCtx); err != nil {
		log.Warn("job lock: redis unreachable", zap.String("addr", cfg.Addr), zap.Error(err))
	} else {
		log.Info("job lock: redis", zap.String("addr", cfg.Addr))
	}

	return l, func() {
		if err := l.Close(); err != nil {
			log.Warn("job lock: close", zap.Error(err))
		}
	}
}
