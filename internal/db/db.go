package db

import (
	"context"
	"time"

	cr "github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.IsDevelopment() {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.URL), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, cr.Wrap(err, "connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, cr.Wrap(err, "get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	if err := SeedSystemConfig(context.Background(), db, cfg.Business); err != nil {
		return nil, err
	}

	log.Info("database ready")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Shop{},
		&models.Barber{},
		&models.BarberBreak{},
		&models.WeeklySchedule{},
		&models.WeeklyBreak{},
		&models.SpecialHours{},
		&models.Service{},
		&models.Settlement{},
		&models.Booking{},
		&models.SystemConfig{},
		&models.AuditLog{},
	); err != nil {
		return cr.Wrap(err, "migrate")
	}
	return nil
}

// SeedSystemConfig creates the global config row with the configured defaults
// if it does not exist yet. Existing values are never overwritten.
func SeedSystemConfig(ctx context.Context, db *gorm.DB, defaults config.BusinessConfig) error {
	row := models.SystemConfig{
		Key:                     models.SystemConfigGlobalKey,
		AdminCommissionRate:     defaults.CommissionRate,
		UserDiscountRate:        defaults.DiscountRate,
		MaxCashBookingsPerMonth: defaults.MaxCashBookingsPerMonth,
		YearlyCancellationLimit: defaults.YearlyCancellationLimit,
	}

	err := db.WithContext(ctx).
		Where("key = ?", models.SystemConfigGlobalKey).
		FirstOrCreate(&row).Error
	if err != nil {
		return cr.Wrap(err, "seed system config")
	}
	return nil
}
