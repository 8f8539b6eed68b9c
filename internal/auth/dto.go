package auth

import (
	"github.com/nahidhasan/messmate-backend/internal/users"
	"github.com/nahidhasan/messmate-backend/pkg/enums"
)

// LoginRequest carries the credentials plus the role the client claims to
// hold; a mismatch is treated as bad credentials.
type LoginRequest struct {
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required"`
	Role     enums.HouseRole `json:"role" validate:"required"`
}

// LoginResponse returns the token pair and the authenticated profile.
type LoginResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         *users.UserDTO `json:"user"`
}

// RefreshRequest carries the expired access token's pair for rotation.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse returns the rotated token pair.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UpdateNicknameRequest renames the caller's display nickname.
type UpdateNicknameRequest struct {
	Nickname string `json:"nickname" validate:"max=60"`
}

// ChangePasswordRequest swaps the caller's credential after reverification.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

// RegisterRequest covers both registration flows: managers create a house,
// members join one by code.
type RegisterRequest struct {
	FullName  string          `json:"full_name" validate:"required"`
	Email     string          `json:"email" validate:"required,email"`
	Password  string          `json:"password" validate:"required"`
	Phone     string          `json:"phone,omitempty"`
	Role      enums.HouseRole `json:"role" validate:"required"`
	HouseCode string          `json:"house_code,omitempty"`
}

// RegisterResponse reports the created account and its house code.
type RegisterResponse struct {
	User      *users.UserDTO `json:"user"`
	HouseCode string         `json:"house_code"`
}
