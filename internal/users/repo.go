package users

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/angelmondragon/orderdesk-backend/internal/repo"
	"github.com/angelmondragon/orderdesk-backend/pkg/db/models"
)

// uniqueColumns are the user columns guarded by unique indexes, checked in this order.
var uniqueColumns = []string{"username", "email", "phone"}

// Repository exposes user persistence.
type Repository struct {
	repo.Base
}

// NewRepository binds a users repository to db, which may be a transaction.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) List(ctx context.Context) ([]models.User, error) {
	var rows []models.User
	if err := r.DB(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) Create(ctx context.Context, user *models.User) error {
	return r.DB(ctx).Create(user).Error
}

// Save writes every column of user back to its row.
func (r *Repository) Save(ctx context.Context, user *models.User) error {
	return r.DB(ctx).Save(user).Error
}

// Delete hard-deletes the row and reports how many rows went away.
func (r *Repository) Delete(ctx context.Context, id uint64) (int64, error) {
	res := r.DB(ctx).Delete(&models.User{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

// ValueTaken reports whether another row already holds value in column.
// A zero excludeID checks the whole table.
func (r *Repository) ValueTaken(ctx context.Context, column, value string, excludeID uint64) (bool, error) {
	if !isUniqueColumn(column) {
		return false, fmt.Errorf("column %q is not unique", column)
	}
	return repo.Exists(r.DB(ctx).Model(&models.User{}).Where(column+" = ?", value), excludeID)
}

func isUniqueColumn(column string) bool {
	for _, c := range uniqueColumns {
		if c == column {
			return true
		}
	}
	return false
}
