package houses

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nahidhasan/messmate-backend/pkg/db/models"
)

// Repository handles house persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to house operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithTx persists a new house row inside the provided transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, house *models.House) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Create(house).Error
}

// FindByCode loads a house by its join code.
func (r *Repository) FindByCode(ctx context.Context, code string) (*models.House, error) {
	var house models.House
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&house).Error; err != nil {
		return nil, err
	}
	return &house, nil
}

// CodeExists reports whether a join code is already taken.
func (r *Repository) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.House{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateManagerWithTx points the house at a new manager inside the provided
// transaction.
func (r *Repository) UpdateManagerWithTx(tx *gorm.DB, houseID, managerID uuid.UUID) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Model(&models.House{}).
		Where("id = ?", houseID).
		Update("manager_id", managerID).Error
}
