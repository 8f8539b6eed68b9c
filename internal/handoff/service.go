package handoff

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nahidhasan/messmate-backend/pkg/db/models"
	dbtypes "github.com/nahidhasan/messmate-backend/pkg/db/types"
	"github.com/nahidhasan/messmate-backend/pkg/enums"
	pkgerrors "github.com/nahidhasan/messmate-backend/pkg/errors"
	"github.com/nahidhasan/messmate-backend/pkg/security"
)

// Actions a recipient can take on a manager-switch request.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type userRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindActiveMemberByEmail(ctx context.Context, email, houseCode string) (*models.User, error)
	UpdateRoleWithTx(tx *gorm.DB, id uuid.UUID, role enums.HouseRole) error
}

type houseRepository interface {
	FindByCode(ctx context.Context, code string) (*models.House, error)
	UpdateManagerWithTx(tx *gorm.DB, houseID, managerID uuid.UUID) error
}

type notificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	CreateWithTx(tx *gorm.DB, n *models.Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	HasUnreadOfType(ctx context.Context, kind enums.NotificationType, fromUserID, toUserID uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteWithTx(tx *gorm.DB, id uuid.UUID) error
}

// SendRequest asks a specific member to take over the manager role.
type SendRequest struct {
	TargetEmail     string `json:"target_email" validate:"required,email"`
	CurrentPassword string `json:"current_password" validate:"required"`
}

// RespondRequest answers a pending manager-switch request.
type RespondRequest struct {
	NotificationID uuid.UUID `json:"notification_id" validate:"required"`
	Action         string    `json:"action" validate:"required"`
}

// Service implements the manager-handoff protocol.
type Service interface {
	Send(ctx context.Context, actorID uuid.UUID, houseCode string, req SendRequest) error
	Respond(ctx context.Context, actorID uuid.UUID, req RespondRequest) error
}

type service struct {
	tx            txRunner
	users         userRepository
	houses        houseRepository
	notifications notificationRepository
}

// NewService wires the handoff service.
func NewService(tx txRunner, users userRepository, houses houseRepository, notifications notificationRepository) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if users == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if houses == nil {
		return nil, fmt.Errorf("house repository required")
	}
	if notifications == nil {
		return nil, fmt.Errorf("notification repository required")
	}
	return &service{tx: tx, users: users, houses: houses, notifications: notifications}, nil
}

// Send re-verifies the caller's password, resolves the target member, and
// leaves exactly one unread manager_request between the pair. No role changes
// happen here.
func (s *service) Send(ctx context.Context, actorID uuid.UUID, houseCode string, req SendRequest) error {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown user")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup requester")
	}
	if !actor.Role.CanInitiateHandoff() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only the manager can request a switch")
	}

	valid, err := security.VerifyPassword(req.CurrentPassword, actor.PasswordHash)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "current password is incorrect")
	}

	email := strings.ToLower(strings.TrimSpace(req.TargetEmail))
	target, err := s.users.FindActiveMemberByEmail(ctx, email, houseCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, "target must be an active member of your house")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup target")
	}
	if target.Role != enums.HouseRoleMember {
		return pkgerrors.New(pkgerrors.CodeValidation, "target must be an active member of your house")
	}

	pending, err := s.notifications.HasUnreadOfType(ctx, enums.NotificationTypeManagerRequest, actor.ID, target.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check pending requests")
	}
	if pending {
		return pkgerrors.New(pkgerrors.CodeConflict, "a request to this member is already pending")
	}

	notification := &models.Notification{
		ID:         uuid.New(),
		Type:       enums.NotificationTypeManagerRequest,
		FromUserID: actor.ID,
		ToUserID:   target.ID,
		Title:      "Manager Switch Request",
		Message:    fmt.Sprintf("%s wants to hand the manager role over to you.", actor.DisplayName()),
		HouseCode:  houseCode,
		Data: dbtypes.JSONMap{
			"requester_id": actor.ID.String(),
			"target_id":    target.ID.String(),
		},
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create request notification")
	}
	return nil
}

// Respond resolves a pending request. Approval swaps the two roles, repoints
// the house, notifies the requester, and deletes the request as one unit.
func (s *service) Respond(ctx context.Context, actorID uuid.UUID, req RespondRequest) error {
	notification, err := s.notifications.FindByID(ctx, req.NotificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup notification")
	}
	if notification.ToUserID != actorID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "notification belongs to another user")
	}
	if notification.Type != enums.NotificationTypeManagerRequest {
		return pkgerrors.New(pkgerrors.CodeValidation, "not a manager switch request")
	}

	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup responder")
	}

	switch req.Action {
	case ActionApprove:
		return s.approve(ctx, actor, notification)
	case ActionReject:
		return s.reject(ctx, actor, notification)
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, "action must be approve or reject")
	}
}

func (s *service) approve(ctx context.Context, actor *models.User, request *models.Notification) error {
	requester, err := s.users.FindByID(ctx, request.FromUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "requester not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup requester")
	}

	house, err := s.houses.FindByCode(ctx, request.HouseCode)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup house")
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.users.UpdateRoleWithTx(tx, actor.ID, enums.HouseRoleManager); err != nil {
			return fmt.Errorf("promote responder: %w", err)
		}
		if err := s.users.UpdateRoleWithTx(tx, requester.ID, enums.HouseRoleMember); err != nil {
			return fmt.Errorf("demote requester: %w", err)
		}
		if err := s.houses.UpdateManagerWithTx(tx, house.ID, actor.ID); err != nil {
			return fmt.Errorf("repoint house manager: %w", err)
		}

		confirm := &models.Notification{
			ID:         uuid.New(),
			Type:       enums.NotificationTypeManagerApproved,
			FromUserID: actor.ID,
			ToUserID:   requester.ID,
			Title:      "Manager Switch Approved",
			Message:    fmt.Sprintf("%s accepted the manager role. You are now a member.", actor.DisplayName()),
			HouseCode:  request.HouseCode,
		}
		if err := s.notifications.CreateWithTx(tx, confirm); err != nil {
			return fmt.Errorf("create approval notification: %w", err)
		}
		if err := s.notifications.DeleteWithTx(tx, request.ID); err != nil {
			return fmt.Errorf("delete request: %w", err)
		}
		return nil
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "approve manager switch")
	}
	return nil
}

func (s *service) reject(ctx context.Context, actor *models.User, request *models.Notification) error {
	rejection := &models.Notification{
		ID:         uuid.New(),
		Type:       enums.NotificationTypeManagerRejected,
		FromUserID: actor.ID,
		ToUserID:   request.FromUserID,
		Title:      "Manager Switch Rejected",
		Message:    fmt.Sprintf("%s declined the manager switch request.", actor.DisplayName()),
		HouseCode:  request.HouseCode,
	}
	if err := s.notifications.Create(ctx, rejection); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create rejection notification")
	}
	if err := s.notifications.Delete(ctx, request.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete request")
	}
	return nil
}
