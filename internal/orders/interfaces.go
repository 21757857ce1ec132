package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/orderdesk-backend/internal/policy"
	"github.com/angelmondragon/orderdesk-backend/pkg/db/models"
)

// Repository defines persistence for the orders table. Every read honours the
// soft-delete tombstone except OrderNumberTaken.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	List(ctx context.Context, scope policy.Scope, filter ListFilter) ([]models.Order, error)
	Find(ctx context.Context, scope policy.Scope, id uint64) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	Save(ctx context.Context, order *models.Order) error
	SetConfirmed(ctx context.Context, order *models.Order, confirmed bool) error
	SoftDelete(ctx context.Context, id uint64) (int64, error)
	OrderNumberTaken(ctx context.Context, orderNumber string, excludeID uint64) (bool, error)
}

// ListFilter narrows order listings.
type ListFilter struct {
	ConfirmedOnly bool
}
