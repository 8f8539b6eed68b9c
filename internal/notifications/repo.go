package notifications

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nahidhasan/messmate-backend/pkg/db/models"
	"github.com/nahidhasan/messmate-backend/pkg/enums"
	"github.com/nahidhasan/messmate-backend/pkg/pagination"
)

// Repository handles notification persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to notification operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type listParams struct {
	ToUserID   uuid.UUID
	Limit      int
	Cursor     *pagination.Cursor
	UnreadOnly bool
}

// Create persists a notification row.
func (r *Repository) Create(ctx context.Context, n *models.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// CreateWithTx persists a notification inside the provided transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, n *models.Notification) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Create(n).Error
}

// FindByID loads a notification row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// List returns the recipient's notifications newest first, with the cursor for
// the next page when more rows remain.
func (r *Repository) List(ctx context.Context, params listParams) ([]models.Notification, *pagination.Cursor, error) {
	query := r.db.WithContext(ctx).
		Where("to_user_id = ?", params.ToUserID).
		Order("created_at DESC, id DESC").
		Limit(params.Limit)

	if params.UnreadOnly {
		query = query.Where("read = ?", false)
	}
	if params.Cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			params.Cursor.CreatedAt, params.Cursor.CreatedAt, params.Cursor.ID,
		)
	}

	var rows []models.Notification
	if err := query.Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	var next *pagination.Cursor
	if params.Limit > 0 && len(rows) == params.Limit {
		rows = rows[:len(rows)-1]
		last := rows[len(rows)-1]
		next = &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}
	return rows, next, nil
}

// CountUnread counts a recipient's unread notifications.
func (r *Repository) CountUnread(ctx context.Context, toUserID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("to_user_id = ? AND read = ?", toUserID, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// MarkRead flags one of the recipient's notifications as read. The ownership
// filter is part of the update; rows belonging to other users report not found.
func (r *Repository) MarkRead(ctx context.Context, toUserID, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND to_user_id = ?", id, toUserID).
		Update("read", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// MarkAllRead flags every unread notification for the recipient.
func (r *Repository) MarkAllRead(ctx context.Context, toUserID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("to_user_id = ? AND read = ?", toUserID, false).
		Update("read", true)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// HasUnreadOfType reports whether an unread notification of the given type
// already exists between the pair.
func (r *Repository) HasUnreadOfType(ctx context.Context, kind enums.NotificationType, fromUserID, toUserID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("type = ? AND from_user_id = ? AND to_user_id = ? AND read = ?", kind, fromUserID, toUserID, false).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes a notification row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Notification{}, "id = ?", id).Error
}

// DeleteWithTx removes a notification inside the provided transaction.
func (r *Repository) DeleteWithTx(tx *gorm.DB, id uuid.UUID) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Delete(&models.Notification{}, "id = ?", id).Error
}
