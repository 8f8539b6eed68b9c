package ledger

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nahidhasan/messmate-backend/pkg/db/models"
)

// Repository handles meal and expense entry persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to ledger operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateMeal persists a new meal entry row.
func (r *Repository) CreateMeal(ctx context.Context, entry *models.MealEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindMealByID loads a meal entry regardless of house; callers check ownership.
func (r *Repository) FindMealByID(ctx context.Context, id uuid.UUID) (*models.MealEntry, error) {
	var entry models.MealEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListMealsByMonth returns a house's meal entries for a month, newest first.
func (r *Repository) ListMealsByMonth(ctx context.Context, houseCode, month string) ([]models.MealEntry, error) {
	var entries []models.MealEntry
	if err := r.db.WithContext(ctx).
		Where("house_code = ? AND month = ?", houseCode, month).
		Order("date DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteMeal removes a meal entry row.
func (r *Repository) DeleteMeal(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.MealEntry{}, "id = ?", id).Error
}

// CreateExpense persists a new expense entry row.
func (r *Repository) CreateExpense(ctx context.Context, entry *models.ExpenseEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindExpenseByID loads an expense entry regardless of house; callers check
// ownership.
func (r *Repository) FindExpenseByID(ctx context.Context, id uuid.UUID) (*models.ExpenseEntry, error) {
	var entry models.ExpenseEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListExpensesByMonth returns a house's expense entries for a month, newest
// first.
func (r *Repository) ListExpensesByMonth(ctx context.Context, houseCode, month string) ([]models.ExpenseEntry, error) {
	var entries []models.ExpenseEntry
	if err := r.db.WithContext(ctx).
		Where("house_code = ? AND month = ?", houseCode, month).
		Order("date DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteExpense removes an expense entry row.
func (r *Repository) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ExpenseEntry{}, "id = ?", id).Error
}
