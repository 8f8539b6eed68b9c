package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/nahidhasan/messmate-backend/pkg/db/types"
	"github.com/nahidhasan/messmate-backend/pkg/enums"
)

// Notification is a directed in-app message. Manager-switch requests ride on
// this table and are deleted once acted upon.
type Notification struct {
	ID         uuid.UUID              `gorm:"column:id;type:uuid;primaryKey"`
	Type       enums.NotificationType `gorm:"column:type;type:text;not null"`
	FromUserID uuid.UUID              `gorm:"column:from_user_id;type:uuid;not null"`
	ToUserID   uuid.UUID              `gorm:"column:to_user_id;type:uuid;not null;index:idx_notifications_to_read,priority:1"`
	Title      string                 `gorm:"column:title;type:text;not null"`
	Message    string                 `gorm:"column:message;type:text;not null"`
	HouseCode  string                 `gorm:"column:house_code;type:varchar(8);not null"`
	Read       bool                   `gorm:"column:read;not null;default:false;index:idx_notifications_to_read,priority:2"`
	Data       dbtypes.JSONMap        `gorm:"column:data;type:jsonb"`
	CreatedAt  time.Time              `gorm:"column:created_at;autoCreateTime"`
}
