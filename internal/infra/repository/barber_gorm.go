package repository

import (
	"context"

	cr "github.com/cockroachdb/errors"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type BarberGormRepository struct {
	db *gorm.DB
}

func NewBarberGormRepository(db *gorm.DB) *BarberGormRepository {
	return &BarberGormRepository{db: db}
}

func (r *BarberGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := withSchedule(r.db.WithContext(ctx)).First(&barber, id).Error; err != nil {
		return nil, notFound(err, "barber_not_found", "get barber")
	}
	return &barber, nil
}

func (r *BarberGormRepository) CreateBarber(
	ctx context.Context,
	b *models.Barber,
) error {
	// Create inserts the nested schedule lists through their associations.
	return cr.Wrap(r.db.WithContext(ctx).Create(b).Error, "create barber")
}

func (r *BarberGormRepository) SaveSchedule(
	ctx context.Context,
	b *models.Barber,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(b).
			Select("start_hour", "end_hour", "is_available").
			Updates(b).Error; err != nil {
			return err
		}

		// children are replaced wholesale; ids are reassigned on insert
		var weeklyIDs []uint
		if err := tx.Model(&models.WeeklySchedule{}).
			Where("barber_id = ?", b.ID).
			Pluck("id", &weeklyIDs).Error; err != nil {
			return err
		}
		if len(weeklyIDs) > 0 {
			if err := tx.Where("weekly_schedule_id IN ?", weeklyIDs).
				Delete(&models.WeeklyBreak{}).Error; err != nil {
				return err
			}
		}
		for _, child := range []any{&models.WeeklySchedule{}, &models.SpecialHours{}, &models.BarberBreak{}} {
			if err := tx.Where("barber_id = ?", b.ID).Delete(child).Error; err != nil {
				return err
			}
		}

		for i := range b.Breaks {
			b.Breaks[i].ID = 0
			b.Breaks[i].BarberID = b.ID
		}
		for i := range b.WeeklySchedule {
			b.WeeklySchedule[i].ID = 0
			b.WeeklySchedule[i].BarberID = b.ID
			for j := range b.WeeklySchedule[i].Breaks {
				b.WeeklySchedule[i].Breaks[j].ID = 0
			}
		}
		for i := range b.SpecialHours {
			b.SpecialHours[i].ID = 0
			b.SpecialHours[i].BarberID = b.ID
		}

		if len(b.Breaks) > 0 {
			if err := tx.Create(&b.Breaks).Error; err != nil {
				return err
			}
		}
		if len(b.WeeklySchedule) > 0 {
			if err := tx.Create(&b.WeeklySchedule).Error; err != nil {
				return err
			}
		}
		if len(b.SpecialHours) > 0 {
			if err := tx.Create(&b.SpecialHours).Error; err != nil {
				return err
			}
		}
		return nil
	})

	return cr.Wrap(err, "save barber schedule")
}

// Compile-time check
var _ domain.ScheduleRepository = (*BarberGormRepository)(nil)
