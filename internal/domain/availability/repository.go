package availability

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ScheduleRepository persists barber schedule configuration.
type ScheduleRepository interface {
	// GetBarber loads a barber with breaks, weekly schedule (and its breaks)
	// and special hours.
	GetBarber(ctx context.Context, id uint) (*models.Barber, error)

	CreateBarber(ctx context.Context, b *models.Barber) error

	// SaveSchedule writes the default window, availability flag and every
	// schedule child list of b in one transaction, replacing what was stored.
	SaveSchedule(ctx context.Context, b *models.Barber) error
}
