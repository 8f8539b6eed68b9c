package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/nahidhasan/messmate-backend/pkg/db/models"
	"github.com/nahidhasan/messmate-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID          uuid.UUID       `json:"id"`
	Email       string          `json:"email"`
	FullName    string          `json:"full_name"`
	Nickname    string          `json:"nickname,omitempty"`
	DisplayName string          `json:"display_name"`
	Phone       string          `json:"phone,omitempty"`
	Role        enums.HouseRole `json:"role"`
	HouseCode   string          `json:"house_code"`
	IsActive    bool            `json:"is_active"`
	LastLoginAt *time.Time      `json:"last_login_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email        string
	PasswordHash string
	FullName     string
	Nickname     string
	Phone        string
	Role         enums.HouseRole
	HouseCode    string
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		Nickname:    u.Nickname,
		DisplayName: u.DisplayName(),
		Phone:       u.Phone,
		Role:        u.Role,
		HouseCode:   u.HouseCode,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{
		ID:           uuid.New(),
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		FullName:     c.FullName,
		Nickname:     c.Nickname,
		Phone:        c.Phone,
		Role:         c.Role,
		HouseCode:    c.HouseCode,
		IsActive:     true,
	}
}
