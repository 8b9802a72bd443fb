// Package app wires repositories, use cases and the scheduler for both
// binaries.
package app

import (
	"context"

	cr "github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/lock"
	"github.com/BruksfildServices01/salon-scheduler/internal/scheduler"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	ucbarber "github.com/BruksfildServices01/salon-scheduler/internal/usecase/barber"
	ucbooking "github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
	ucsettlement "github.com/BruksfildServices01/salon-scheduler/internal/usecase/settlement"
)

const (
	TaskSettlement  = "settlement"
	TaskMissedSweep = "missed-sweep"
)

// UseCases groups every operation exposed over HTTP or run as a job.
type UseCases struct {
	// booking
	Availability   *ucbooking.GetAvailability
	Schedule       *ucbooking.GetSchedule
	CreateBooking  *ucbooking.CreateBooking
	BookingActions *ucbooking.BookingActions
	ListBookings   *ucbooking.ListBookings
	SweepMissed    *ucbooking.SweepMissedBookings

	// barber
	CreateBarber   *ucbarber.CreateBarber
	UpdateSchedule *ucbarber.UpdateSchedule

	// settlement
	RunSettlement    *ucsettlement.RunSettlement
	Preview          *ucsettlement.PreviewSettlement
	Pending          *ucsettlement.PendingByShop
	Summary          *ucsettlement.ShopFinanceSummary
	ManualSettlement *ucsettlement.CreateManualSettlement
	Settlements      *ucsettlement.Settlements
}

type App struct {
	DB        *gorm.DB
	Config    *config.Config
	Log       *zap.Logger
	Audit     *audit.Dispatcher
	AuditLog  *audit.Logger
	Scheduler *scheduler.Scheduler
	UseCases  UseCases
}

// New builds the application graph on top of an open database. The scheduler
// has both periodic tasks registered but is not started.
func New(db *gorm.DB, cfg *config.Config, locker lock.Locker, log *zap.Logger) (*App, error) {
	clock := timezone.System()

	// ======================================================
	// INFRA
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	barberRepo := infraRepo.NewBarberGormRepository(db)
	userRepo := infraRepo.NewUserGormRepository(db)
	configRepo := infraRepo.NewConfigGormRepository(db)
	settlementRepo := infraRepo.NewSettlementGormRepository(db)

	auditLog := audit.New(db)
	dispatcher := audit.NewDispatcher(auditLog, log.Named("audit"))

	// ======================================================
	// USE CASES
	// ======================================================
	uc := UseCases{
		Availability:  ucbooking.NewGetAvailability(bookingRepo, clock),
		Schedule:      ucbooking.NewGetSchedule(bookingRepo),
		CreateBooking: ucbooking.NewCreateBooking(bookingRepo, configRepo, cfg.Business, dispatcher, clock, log),
		BookingActions: ucbooking.NewBookingActions(
			bookingRepo, userRepo, configRepo, cfg.Business, dispatcher, log,
		),
		ListBookings: ucbooking.NewListBookings(bookingRepo),
		SweepMissed: ucbooking.NewSweepMissedBookings(
			bookingRepo, userRepo, configRepo, cfg.Business, dispatcher, clock, log.Named("missed-sweep"),
		),

		CreateBarber:   ucbarber.NewCreateBarber(barberRepo, dispatcher),
		UpdateSchedule: ucbarber.NewUpdateSchedule(barberRepo, dispatcher),

		RunSettlement:    ucsettlement.NewRunSettlement(settlementRepo, dispatcher, clock, log.Named("settlement")),
		Preview:          ucsettlement.NewPreviewSettlement(settlementRepo, clock),
		Pending:          ucsettlement.NewPendingByShop(settlementRepo),
		Summary:          ucsettlement.NewShopFinanceSummary(settlementRepo),
		ManualSettlement: ucsettlement.NewCreateManualSettlement(settlementRepo, dispatcher, clock),
		Settlements:      ucsettlement.NewSettlements(settlementRepo, dispatcher, clock),
	}

	// ======================================================
	// JOBS
	// ======================================================
	sched := scheduler.New(locker, cfg.Scheduler.LockTTL, log.Named("scheduler"))
	if err := RegisterJobs(sched, cfg.Scheduler, uc, log); err != nil {
		return nil, err
	}

	return &App{
		DB:        db,
		Config:    cfg,
		Log:       log,
		Audit:     dispatcher,
		AuditLog:  auditLog,
		Scheduler: sched,
		UseCases:  uc,
	}, nil
}

// RegisterJobs adds the daily settlement and the missed-booking sweep.
func RegisterJobs(s *scheduler.Scheduler, cfg config.SchedulerConfig, uc UseCases, log *zap.Logger) error {
	err := s.RegisterPeriodicTask(TaskSettlement, cfg.SettlementSpec, func(ctx context.Context) error {
		res, err := uc.RunSettlement.Execute(ctx, nil)
		if err != nil {
			return err
		}
		log.Info("settlement job",
			zap.String("outcome", string(res.Outcome)),
			zap.Int("settlements", res.Count),
		)
		return nil
	})
	if err != nil {
		return cr.Wrap(err, "register settlement job")
	}

	err = s.RegisterPeriodicTask(TaskMissedSweep, cfg.MissedSweepSpec, func(ctx context.Context) error {
		_, err := uc.SweepMissed.Execute(ctx)
		return err
	})
	if err != nil {
		return cr.Wrap(err, "register missed sweep job")
	}
	return nil
}

// Shutdown stops the scheduler and drains pending audit events.
func (a *App) Shutdown(ctx context.Context) error {
	var errs error
	if err := a.Scheduler.Stop(ctx); err != nil {
		errs = cr.CombineErrors(errs, cr.Wrap(err, "stop scheduler"))
	}
	if err := a.Audit.Close(ctx); err != nil {
		errs = cr.CombineErrors(errs, cr.Wrap(err, "drain audit"))
	}
	return errs
}
