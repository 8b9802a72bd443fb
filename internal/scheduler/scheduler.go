// Package scheduler runs the periodic jobs. Each task runs at most once at a
// time: cron skips a tick while the previous one is still running, and a lock
// keeps other processes from running the same tick.
package scheduler

import (
	"context"
	"sync"
	"time"

	cr "github.com/cockroachdb/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/lock"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// Handler is one job invocation. Returned errors are logged, never retried.
type Handler func(ctx context.Context) error

var ErrUnknownTask = cr.New("unknown task")

type Scheduler struct {
	cron    *cron.Cron
	locker  lock.Locker
	lockTTL time.Duration
	log     *zap.Logger

	mu    sync.RWMutex
	tasks map[string]Handler

	ctx    context.Context
	cancel context.CancelFunc
}

func New(locker lock.Locker, lockTTL time.Duration, log *zap.Logger) *Scheduler {
	cronLog := cronLogger{log: log.Named("cron")}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(timezone.Business),
			cron.WithLogger(cronLog),
			cron.WithChain(
				cron.Recover(cronLog),
				cron.SkipIfStillRunning(cronLog),
			),
		),
		locker:  locker,
		lockTTL: lockTTL,
		log:     log,
		tasks:   map[string]Handler{},
		ctx:     ctx,
		cancel:  cancel,
	}
}

// RegisterPeriodicTask schedules handler on a standard 5-field cron spec or a
// descriptor such as "@every 30m".
func (s *Scheduler) RegisterPeriodicTask(name, spec string, handler Handler) error {
	_, err := s.cron.AddFunc(spec, func() {
		_, _ = s.run(name, handler)
	})
	if err != nil {
		return cr.Wrapf(err, "register task %s", name)
	}

	s.mu.Lock()
	s.tasks[name] = handler
	s.mu.Unlock()

	s.log.Info("task registered", zap.String("task", name), zap.String("spec", spec))
	return nil
}

// RunNow executes handler once with the same locking and logging as a
// scheduled tick.
func (s *Scheduler) RunNow(name string, handler Handler) {
	_, _ = s.run(name, handler)
}

// Trigger runs a registered task out of schedule. ran is false when another
// run holds the task's lock.
func (s *Scheduler) Trigger(name string) (ran bool, err error) {
	s.mu.RLock()
	handler, ok := s.tasks[name]
	s.mu.RUnlock()
	if !ok {
		return false, cr.Wrapf(ErrUnknownTask, "task %q", name)
	}
	return s.run(name, handler)
}

func (s *Scheduler) run(name string, handler Handler) (bool, error) {
	log := s.log.With(zap.String("task", name))

	release, ok, err := s.locker.Acquire(s.ctx, name, s.lockTTL)
	if err != nil {
		log.Error("task lock failed", zap.Error(err))
		return false, cr.Wrapf(err, "lock task %s", name)
	}
	if !ok {
		log.Info("task skipped, held by another process")
		return false, nil
	}
	defer func() {
		if err := release(context.Background()); err != nil {
			log.Warn("task lock release failed", zap.Error(err))
		}
	}()

	started := time.Now()
	if err := s.invoke(handler); err != nil {
		log.Error("task failed", zap.Duration("elapsed", time.Since(started)), zap.Error(err))
		return true, err
	}
	log.Info("task finished", zap.Duration("elapsed", time.Since(started)))
	return true, nil
}

// invoke turns a handler panic into an error so the lock is still released.
func (s *Scheduler) invoke(handler Handler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = cr.Newf("panic: %v", r)
		}
	}()
	return handler(s.ctx)
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new ticks, cancels the running handlers' context and waits
// for them to return or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) error {
	stopped := s.cron.Stop()
	s.cancel()

	select {
	case <-stopped.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	log *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
