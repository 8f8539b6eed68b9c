package houses

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nahidhasan/messmate-backend/internal/users"
	"github.com/nahidhasan/messmate-backend/pkg/config"
	"github.com/nahidhasan/messmate-backend/pkg/db/models"
	"github.com/nahidhasan/messmate-backend/pkg/enums"
	pkgerrors "github.com/nahidhasan/messmate-backend/pkg/errors"
	"github.com/nahidhasan/messmate-backend/pkg/security"
)

type houseRepository interface {
	FindByCode(ctx context.Context, code string) (*models.House, error)
}

type usersRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListActiveByHouse(ctx context.Context, houseCode string) ([]models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes house membership operations.
type Service interface {
	ListMembers(ctx context.Context, houseCode string) ([]users.UserDTO, error)
	AddMember(ctx context.Context, houseCode string, input AddMemberInput) (*users.UserDTO, string, error)
	RemoveMember(ctx context.Context, actorID uuid.UUID, houseCode string, memberID uuid.UUID) error
}

type service struct {
	repo        houseRepository
	users       usersRepository
	passwordCfg config.PasswordConfig
	houseCfg    config.HouseConfig
}

// NewService builds a house membership service.
func NewService(repo houseRepository, usersRepo usersRepository, passwordCfg config.PasswordConfig, houseCfg config.HouseConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("house repository required")
	}
	if usersRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{
		repo:        repo,
		users:       usersRepo,
		passwordCfg: passwordCfg,
		houseCfg:    houseCfg,
	}, nil
}

// AddMemberInput captures the data a manager supplies when creating
// a member account directly.
type AddMemberInput struct {
	Email        string
	FullName     string
	Phone        string
	TempPassword string
}

// ListMembers returns active house members, manager first, then by name.
func (s *service) ListMembers(ctx context.Context, houseCode string) ([]users.UserDTO, error) {
	members, err := s.users.ListActiveByHouse(ctx, houseCode)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list house members")
	}

	out := make([]users.UserDTO, 0, len(members))
	for i := range members {
		out = append(out, *users.FromModel(&members[i]))
	}
	return out, nil
}

// AddMember creates a member account inside the manager's house. When no
// temporary password is supplied one is generated; either way the plaintext is
// returned once so the manager can hand it over.
func (s *service) AddMember(ctx context.Context, houseCode string, input AddMemberInput) (*users.UserDTO, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !strings.Contains(email, "@") {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "invalid email")
	}
	if strings.TrimSpace(input.FullName) == "" {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "full name is required")
	}

	if _, err := s.repo.FindByCode(ctx, houseCode); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", pkgerrors.New(pkgerrors.CodeNotFound, "house not found")
		}
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup house")
	}

	if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, "", pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup email")
	}

	tempPassword := input.TempPassword
	if tempPassword == "" {
		generated, err := security.GenerateTempPassword(s.houseCfg.TempPasswordLen)
		if err != nil {
			return nil, "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate temp password")
		}
		tempPassword = generated
	}
	if len(tempPassword) < s.passwordCfg.MinLength {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("password must be at least %d characters", s.passwordCfg.MinLength))
	}

	hash, err := security.HashPassword(tempPassword, s.passwordCfg)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	member, err := s.users.Create(ctx, users.CreateUserDTO{
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(input.FullName),
		Phone:        strings.TrimSpace(input.Phone),
		Role:         enums.HouseRoleMember,
		HouseCode:    houseCode,
	})
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create member")
	}

	return users.FromModel(member), tempPassword, nil
}

// RemoveMember deletes a member row from the manager's house. The manager
// cannot remove themselves, and cross-house removals are rejected.
func (s *service) RemoveMember(ctx context.Context, actorID uuid.UUID, houseCode string, memberID uuid.UUID) error {
	if actorID == memberID {
		return pkgerrors.New(pkgerrors.CodeValidation, "managers cannot remove themselves")
	}

	member, err := s.users.FindByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup member")
	}
	if member.HouseCode != houseCode {
		return pkgerrors.New(pkgerrors.CodeForbidden, "member belongs to a different house")
	}

	if err := s.users.Delete(ctx, member.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete member")
	}
	return nil
}

// NormalizeCode uppercases and trims a join code before lookup.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
