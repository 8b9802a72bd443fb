package repository

import (
	"context"

	cr "github.com/cockroachdb/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) IncrementNoShow(
	ctx context.Context,
	id uint,
) (*models.User, error) {
	return r.increment(ctx, id, "no_show_count")
}

func (r *UserGormRepository) IncrementCancellation(
	ctx context.Context,
	id uint,
) (*models.User, error) {
	return r.increment(ctx, id, "cancellation_count")
}

// increment is a single UPDATE ... SET col = col + 1 RETURNING *, so concurrent
// callers never lose a count.
func (r *UserGormRepository) increment(
	ctx context.Context,
	id uint,
	column string,
) (*models.User, error) {

	var user models.User
	res := r.db.WithContext(ctx).
		Model(&user).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Update(column, gorm.Expr(column+" + 1"))
	if res.Error != nil {
		return nil, cr.Wrapf(res.Error, "increment %s", column)
	}
	if res.RowsAffected == 0 {
		return nil, httperr.ErrBusiness("user_not_found")
	}
	return &user, nil
}

func (r *UserGormRepository) Flag(
	ctx context.Context,
	id uint,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND is_flagged = ?", id, false).
		Update("is_flagged", true)
	if res.Error != nil {
		return false, cr.Wrap(res.Error, "flag user")
	}
	return res.RowsAffected == 1, nil
}

// Compile-time check
var _ domain.UserRepository = (*UserGormRepository)(nil)
