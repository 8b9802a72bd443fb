package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ConfigGormRepository struct {
	db *gorm.DB
}

func NewConfigGormRepository(db *gorm.DB) *ConfigGormRepository {
	return &ConfigGormRepository{db: db}
}

func (r *ConfigGormRepository) GetGlobal(ctx context.Context) (*models.SystemConfig, error) {
	var cfg models.SystemConfig
	if err := r.db.WithContext(ctx).
		Where("key = ?", models.SystemConfigGlobalKey).
		First(&cfg).Error; err != nil {
		return nil, notFound(err, "config_not_found", "get system config")
	}
	return &cfg, nil
}

// Compile-time check
var _ domain.ConfigRepository = (*ConfigGormRepository)(nil)
