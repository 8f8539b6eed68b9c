package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/nahidhasan/messmate-backend/pkg/enums"
)

// User represents one house participant. The password hash never leaves the
// identity layer; API payloads are built from DTOs, not this struct.
type User struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Email        string          `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string          `gorm:"column:password_hash;not null"`
	FullName     string          `gorm:"column:full_name;not null"`
	Nickname     string          `gorm:"column:nickname;not null;default:''"`
	Phone        string          `gorm:"column:phone;not null"`
	Role         enums.HouseRole `gorm:"column:role;type:text;not null;index:idx_users_house_role,priority:2"`
	HouseCode    string          `gorm:"column:house_code;type:varchar(8);not null;index:idx_users_house_role,priority:1"`
	IsActive     bool            `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time      `gorm:"column:last_login_at"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// DisplayName prefers the nickname when one is set.
func (u User) DisplayName() string {
	if u.Nickname != "" {
		return u.Nickname
	}
	return u.FullName
}
