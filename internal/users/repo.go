package users

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nahidhasan/messmate-backend/pkg/db/models"
	"github.com/nahidhasan/messmate-backend/pkg/enums"
)

// Repository exposes user-related persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateWithTx inserts a new user inside the provided transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, dto CreateUserDTO) (*models.User, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	user := dto.ToModel()
	if err := tx.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByEmail retrieves the user matching the provided email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads a user by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindActiveHouseMember loads a user only if they are an active member of the
// provided house.
func (r *Repository) FindActiveHouseMember(ctx context.Context, id uuid.UUID, houseCode string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND house_code = ? AND is_active = ?", id, houseCode, true).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindActiveMemberByEmail resolves an active user in the given house by email.
func (r *Repository) FindActiveMemberByEmail(ctx context.Context, email, houseCode string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("email = ? AND house_code = ? AND is_active = ?", email, houseCode, true).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListActiveByHouse returns active members of a house, manager first,
// then alphabetical by full name.
func (r *Repository) ListActiveByHouse(ctx context.Context, houseCode string) ([]models.User, error) {
	var members []models.User
	if err := r.db.WithContext(ctx).
		Where("house_code = ? AND is_active = ?", houseCode, true).
		Order("CASE WHEN role = 'manager' THEN 0 ELSE 1 END, full_name ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// UpdateLastLogin refreshes the user's last_login_at timestamp.
func (r *Repository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
}

// UpdateNickname overwrites the user's nickname.
func (r *Repository) UpdateNickname(ctx context.Context, id uuid.UUID, nickname string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("nickname", nickname).Error
}

// UpdatePasswordHash replaces the stored credential hash.
func (r *Repository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("password_hash", hash).Error
}

// Delete removes the user row. Ledger entries keep the member's shares; stats
// simply stop enumerating them.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id).Error
}

// UpdateRoleWithTx changes the user's house role inside the provided transaction.
func (r *Repository) UpdateRoleWithTx(tx *gorm.DB, id uuid.UUID, role enums.HouseRole) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Model(&models.User{}).
		Where("id = ?", id).
		Update("role", role).Error
}
