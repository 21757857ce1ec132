package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/orderdesk-backend/internal/policy"
	"github.com/angelmondragon/orderdesk-backend/internal/repo"
	"github.com/angelmondragon/orderdesk-backend/pkg/db/models"
)

type repository struct {
	repo.Base
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{Base: repo.NewBase(tx)}
}

func (r *repository) scoped(ctx context.Context, scope policy.Scope) *gorm.DB {
	q := r.DB(ctx).Model(&models.Order{})
	if !scope.Unrestricted() {
		q = q.Where("user_id = ?", scope.UserID)
	}
	return q
}

func (r *repository) List(ctx context.Context, scope policy.Scope, filter ListFilter) ([]models.Order, error) {
	q := r.scoped(ctx, scope)
	if filter.ConfirmedOnly {
		q = q.Where("confirmed = ?", true)
	}
	var rows []models.Order
	if err := q.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Find(ctx context.Context, scope policy.Scope, id uint64) (*models.Order, error) {
	var order models.Order
	if err := r.scoped(ctx, scope).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) Create(ctx context.Context, order *models.Order) error {
	return r.DB(ctx).Create(order).Error
}

func (r *repository) Save(ctx context.Context, order *models.Order) error {
	return r.DB(ctx).Save(order).Error
}

func (r *repository) SetConfirmed(ctx context.Context, order *models.Order, confirmed bool) error {
	return r.DB(ctx).Model(order).Update("confirmed", confirmed).Error
}

func (r *repository) SoftDelete(ctx context.Context, id uint64) (int64, error) {
	res := r.DB(ctx).Delete(&models.Order{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

// OrderNumberTaken looks through tombstoned rows too, matching the unfiltered unique index.
func (r *repository) OrderNumberTaken(ctx context.Context, orderNumber string, excludeID uint64) (bool, error) {
	return repo.Exists(r.DB(ctx).Unscoped().Model(&models.Order{}).Where("order_number = ?", orderNumber), excludeID)
}
