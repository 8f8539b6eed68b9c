package auth

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/nahidhasan/messmate-backend/internal/houses"
	"github.com/nahidhasan/messmate-backend/internal/users"
	"github.com/nahidhasan/messmate-backend/pkg/config"
	"github.com/nahidhasan/messmate-backend/pkg/db"
	"github.com/nahidhasan/messmate-backend/pkg/db/models"
	"github.com/nahidhasan/messmate-backend/pkg/enums"
	pkgerrors "github.com/nahidhasan/messmate-backend/pkg/errors"
	"github.com/nahidhasan/messmate-backend/pkg/security"

	"github.com/google/uuid"
)

// RegisterService handles both onboarding flows: a manager founds a house, a
// member joins an existing one by code.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
}

// RegisterServiceParams packages the dependencies for the registration flow.
type RegisterServiceParams struct {
	DB             *db.Client
	PasswordConfig config.PasswordConfig
	HouseConfig    config.HouseConfig
}

type registerService struct {
	db          *db.Client
	passwordCfg config.PasswordConfig
	houseCfg    config.HouseConfig
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &registerService{
		db:          params.DB,
		passwordCfg: params.PasswordConfig,
		houseCfg:    params.HouseConfig,
	}, nil
}

func (s *registerService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a valid email is required")
	}
	if strings.TrimSpace(req.FullName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "full name is required")
	}
	if !req.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}
	if len(req.Password) < s.passwordCfg.MinLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password too short")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	switch req.Role {
	case enums.HouseRoleManager:
		return s.registerManager(ctx, req, email, passwordHash)
	default:
		return s.registerMember(ctx, req, email, passwordHash)
	}
}

// registerManager founds a house: code drawn with collision retry, then house
// and manager account created in one transaction.
func (s *registerService) registerManager(ctx context.Context, req RegisterRequest, email, passwordHash string) (*RegisterResponse, error) {
	houseRepo := houses.NewRepository(s.db.DB())
	code, err := houses.GenerateUniqueCode(ctx, houseRepo, s.houseCfg.CodeLength, s.houseCfg.CodeMaxAttempts)
	if err != nil {
		return nil, err
	}

	var created *models.User
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := users.NewRepository(tx)
		txHouseRepo := houses.NewRepository(tx)

		if err := s.requireFreeEmail(ctx, userRepo, email); err != nil {
			return err
		}

		user, err := userRepo.CreateWithTx(tx, users.CreateUserDTO{
			Email:        email,
			PasswordHash: passwordHash,
			FullName:     strings.TrimSpace(req.FullName),
			Phone:        strings.TrimSpace(req.Phone),
			Role:         enums.HouseRoleManager,
			HouseCode:    code,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create manager")
		}

		house := &models.House{
			ID:        uuid.New(),
			Code:      code,
			ManagerID: user.ID,
			IsActive:  true,
		}
		if err := txHouseRepo.CreateWithTx(tx, house); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create house")
		}

		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &RegisterResponse{User: users.FromModel(created), HouseCode: code}, nil
}

// registerMember joins an existing house; an unknown code is a validation
// failure, not a not-found.
func (s *registerService) registerMember(ctx context.Context, req RegisterRequest, email, passwordHash string) (*RegisterResponse, error) {
	code := houses.NormalizeCode(req.HouseCode)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "house code is required")
	}

	houseRepo := houses.NewRepository(s.db.DB())
	house, err := houseRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid house code")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup house")
	}

	userRepo := users.NewRepository(s.db.DB())
	if err := s.requireFreeEmail(ctx, userRepo, email); err != nil {
		return nil, err
	}

	user, err := userRepo.Create(ctx, users.CreateUserDTO{
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     strings.TrimSpace(req.FullName),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         enums.HouseRoleMember,
		HouseCode:    house.Code,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create member")
	}

	return &RegisterResponse{User: users.FromModel(user), HouseCode: house.Code}, nil
}

func (s *registerService) requireFreeEmail(ctx context.Context, repo *users.Repository, email string) error {
	if _, err := repo.FindByEmail(ctx, email); err == nil {
		return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
	}
	return nil
}
