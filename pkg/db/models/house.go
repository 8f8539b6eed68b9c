package models

import (
	"time"

	"github.com/google/uuid"
)

// House is the tenant unit. Membership is derived from users.house_code; the
// manager reference must always agree with the single user holding the
// manager role for this code.
type House struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Code      string    `gorm:"column:code;type:varchar(8);not null;uniqueIndex"`
	ManagerID uuid.UUID `gorm:"column:manager_id;type:uuid;not null"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
