package handoff

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nahidhasan/messmate-backend/pkg/config"
	"github.com/nahidhasan/messmate-backend/pkg/db/models"
	"github.com/nahidhasan/messmate-backend/pkg/enums"
	pkgerrors "github.com/nahidhasan/messmate-backend/pkg/errors"
	"github.com/nahidhasan/messmate-backend/pkg/security"
)

type stubTxRunner struct {
	err error
}

func (s stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s.err != nil {
		return s.err
	}
	return fn(nil)
}

type stubUserRepo struct {
	byID    map[uuid.UUID]*models.User
	byEmail map[string]*models.User
	roles   map[uuid.UUID]enums.HouseRole
}

func newStubUserRepo(users ...*models.User) *stubUserRepo {
	s := &stubUserRepo{
		byID:    map[uuid.UUID]*models.User{},
		byEmail: map[string]*models.User{},
		roles:   map[uuid.UUID]enums.HouseRole{},
	}
	for _, u := range users {
		s.byID[u.ID] = u
		s.byEmail[u.Email] = u
	}
	return s
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := s.byID[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindActiveMemberByEmail(ctx context.Context, email, houseCode string) (*models.User, error) {
	u, ok := s.byEmail[email]
	if !ok || u.HouseCode != houseCode || !u.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (s *stubUserRepo) UpdateRoleWithTx(tx *gorm.DB, id uuid.UUID, role enums.HouseRole) error {
	s.roles[id] = role
	return nil
}

type stubHouseRepo struct {
	house     *models.House
	managerID uuid.UUID
}

func (s *stubHouseRepo) FindByCode(ctx context.Context, code string) (*models.House, error) {
	if s.house == nil || s.house.Code != code {
		return nil, gorm.ErrRecordNotFound
	}
	return s.house, nil
}

func (s *stubHouseRepo) UpdateManagerWithTx(tx *gorm.DB, houseID, managerID uuid.UUID) error {
	s.managerID = managerID
	return nil
}

type stubNotificationRepo struct {
	byID    map[uuid.UUID]*models.Notification
	created []*models.Notification
	deleted []uuid.UUID
	pending bool
}

func newStubNotificationRepo(existing ...*models.Notification) *stubNotificationRepo {
	s := &stubNotificationRepo{byID: map[uuid.UUID]*models.Notification{}}
	for _, n := range existing {
		s.byID[n.ID] = n
	}
	return s
}

func (s *stubNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	s.created = append(s.created, n)
	return nil
}

func (s *stubNotificationRepo) CreateWithTx(tx *gorm.DB, n *models.Notification) error {
	s.created = append(s.created, n)
	return nil
}

func (s *stubNotificationRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	if n, ok := s.byID[id]; ok {
		return n, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubNotificationRepo) HasUnreadOfType(ctx context.Context, kind enums.NotificationType, fromUserID, toUserID uuid.UUID) (bool, error) {
	return s.pending, nil
}

func (s *stubNotificationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubNotificationRepo) DeleteWithTx(tx *gorm.DB, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
		MinLength:        6,
	}
}

func makeManager(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordConfig())
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.User{
		ID:           uuid.New(),
		Email:        "manager@example.com",
		PasswordHash: hash,
		FullName:     "Manager",
		Role:         enums.HouseRoleManager,
		HouseCode:    "AB12CD34",
		IsActive:     true,
	}
}

func makeMember(email string) *models.User {
	return &models.User{
		ID:        uuid.New(),
		Email:     email,
		FullName:  "Member",
		Role:      enums.HouseRoleMember,
		HouseCode: "AB12CD34",
		IsActive:  true,
	}
}

func newTestService(t *testing.T, users *stubUserRepo, houses *stubHouseRepo, notifs *stubNotificationRepo) Service {
	t.Helper()
	svc, err := NewService(stubTxRunner{}, users, houses, notifs)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestSendCreatesRequest(t *testing.T) {
	manager := makeManager(t, "secret123")
	member := makeMember("member@example.com")
	users := newStubUserRepo(manager, member)
	notifs := newStubNotificationRepo()
	svc := newTestService(t, users, &stubHouseRepo{}, notifs)

	err := svc.Send(context.Background(), manager.ID, "AB12CD34", SendRequest{
		TargetEmail:     "Member@Example.com",
		CurrentPassword: "secret123",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(notifs.created) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifs.created))
	}
	n := notifs.created[0]
	if n.Type != enums.NotificationTypeManagerRequest {
		t.Fatalf("expected manager_request, got %s", n.Type)
	}
	if n.FromUserID != manager.ID || n.ToUserID != member.ID {
		t.Fatalf("wrong direction: from=%s to=%s", n.FromUserID, n.ToUserID)
	}
	// No role mutation on send.
	if len(users.roles) != 0 {
		t.Fatalf("expected no role changes, got %v", users.roles)
	}
}

func TestSendRejectsNonManager(t *testing.T) {
	member := makeMember("member@example.com")
	svc := newTestService(t, newStubUserRepo(member), &stubHouseRepo{}, newStubNotificationRepo())

	err := svc.Send(context.Background(), member.ID, "AB12CD34", SendRequest{
		TargetEmail:     "someone@example.com",
		CurrentPassword: "whatever",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestSendWrongPassword(t *testing.T) {
	manager := makeManager(t, "secret123")
	svc := newTestService(t, newStubUserRepo(manager), &stubHouseRepo{}, newStubNotificationRepo())

	err := svc.Send(context.Background(), manager.ID, "AB12CD34", SendRequest{
		TargetEmail:     "member@example.com",
		CurrentPassword: "wrong",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestSendUnknownTarget(t *testing.T) {
	manager := makeManager(t, "secret123")
	svc := newTestService(t, newStubUserRepo(manager), &stubHouseRepo{}, newStubNotificationRepo())

	err := svc.Send(context.Background(), manager.ID, "AB12CD34", SendRequest{
		TargetEmail:     "ghost@example.com",
		CurrentPassword: "secret123",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSendDuplicatePendingConflict(t *testing.T) {
	manager := makeManager(t, "secret123")
	member := makeMember("member@example.com")
	notifs := newStubNotificationRepo()
	notifs.pending = true
	svc := newTestService(t, newStubUserRepo(manager, member), &stubHouseRepo{}, notifs)

	err := svc.Send(context.Background(), manager.ID, "AB12CD34", SendRequest{
		TargetEmail:     "member@example.com",
		CurrentPassword: "secret123",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(notifs.created) != 0 {
		t.Fatal("expected no new notification")
	}
}

func pendingRequest(from, to *models.User) *models.Notification {
	return &models.Notification{
		ID:         uuid.New(),
		Type:       enums.NotificationTypeManagerRequest,
		FromUserID: from.ID,
		ToUserID:   to.ID,
		Title:      "Manager Switch Request",
		HouseCode:  "AB12CD34",
	}
}

func TestRespondApproveSwapsRoles(t *testing.T) {
	manager := makeManager(t, "secret123")
	member := makeMember("member@example.com")
	request := pendingRequest(manager, member)

	users := newStubUserRepo(manager, member)
	houses := &stubHouseRepo{house: &models.House{ID: uuid.New(), Code: "AB12CD34", ManagerID: manager.ID}}
	notifs := newStubNotificationRepo(request)
	svc := newTestService(t, users, houses, notifs)

	err := svc.Respond(context.Background(), member.ID, RespondRequest{
		NotificationID: request.ID,
		Action:         ActionApprove,
	})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}

	if users.roles[member.ID] != enums.HouseRoleManager {
		t.Fatalf("expected member promoted, got %s", users.roles[member.ID])
	}
	if users.roles[manager.ID] != enums.HouseRoleMember {
		t.Fatalf("expected manager demoted, got %s", users.roles[manager.ID])
	}
	if houses.managerID != member.ID {
		t.Fatalf("expected house repointed to %s, got %s", member.ID, houses.managerID)
	}
	if len(notifs.created) != 1 || notifs.created[0].Type != enums.NotificationTypeManagerApproved {
		t.Fatalf("expected approval notification, got %+v", notifs.created)
	}
	if notifs.created[0].ToUserID != manager.ID {
		t.Fatalf("expected approval sent to requester, got %s", notifs.created[0].ToUserID)
	}
	if len(notifs.deleted) != 1 || notifs.deleted[0] != request.ID {
		t.Fatalf("expected request deleted, got %v", notifs.deleted)
	}
}

func TestRespondApproveAbortsAsUnit(t *testing.T) {
	manager := makeManager(t, "secret123")
	member := makeMember("member@example.com")
	request := pendingRequest(manager, member)

	users := newStubUserRepo(manager, member)
	houses := &stubHouseRepo{house: &models.House{ID: uuid.New(), Code: "AB12CD34", ManagerID: manager.ID}}
	notifs := newStubNotificationRepo(request)

	svc, err := NewService(stubTxRunner{err: errors.New("tx failed")}, users, houses, notifs)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	gotErr := svc.Respond(context.Background(), member.ID, RespondRequest{
		NotificationID: request.ID,
		Action:         ActionApprove,
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", gotErr)
	}
	if len(users.roles) != 0 {
		t.Fatalf("expected no role changes when the unit fails, got %v", users.roles)
	}
	if len(notifs.deleted) != 0 {
		t.Fatal("expected request to survive a failed approval")
	}
}

func TestRespondReject(t *testing.T) {
	manager := makeManager(t, "secret123")
	member := makeMember("member@example.com")
	request := pendingRequest(manager, member)

	users := newStubUserRepo(manager, member)
	notifs := newStubNotificationRepo(request)
	svc := newTestService(t, users, &stubHouseRepo{}, notifs)

	err := svc.Respond(context.Background(), member.ID, RespondRequest{
		NotificationID: request.ID,
		Action:         ActionReject,
	})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}

	if len(users.roles) != 0 {
		t.Fatalf("expected no role changes on reject, got %v", users.roles)
	}
	if len(notifs.created) != 1 || notifs.created[0].Type != enums.NotificationTypeManagerRejected {
		t.Fatalf("expected rejection notification, got %+v", notifs.created)
	}
	if len(notifs.deleted) != 1 || notifs.deleted[0] != request.ID {
		t.Fatalf("expected request deleted, got %v", notifs.deleted)
	}
}

func TestRespondWrongRecipient(t *testing.T) {
	manager := makeManager(t, "secret123")
	member := makeMember("member@example.com")
	outsider := makeMember("other@example.com")
	request := pendingRequest(manager, member)

	svc := newTestService(t, newStubUserRepo(manager, member, outsider), &stubHouseRepo{}, newStubNotificationRepo(request))

	err := svc.Respond(context.Background(), outsider.ID, RespondRequest{
		NotificationID: request.ID,
		Action:         ActionApprove,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestRespondWrongType(t *testing.T) {
	manager := makeManager(t, "secret123")
	member := makeMember("member@example.com")
	general := &models.Notification{
		ID:         uuid.New(),
		Type:       enums.NotificationTypeGeneral,
		FromUserID: manager.ID,
		ToUserID:   member.ID,
		HouseCode:  "AB12CD34",
	}

	svc := newTestService(t, newStubUserRepo(manager, member), &stubHouseRepo{}, newStubNotificationRepo(general))

	err := svc.Respond(context.Background(), member.ID, RespondRequest{
		NotificationID: general.ID,
		Action:         ActionApprove,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRespondUnknownAction(t *testing.T) {
	manager := makeManager(t, "secret123")
	member := makeMember("member@example.com")
	request := pendingRequest(manager, member)

	svc := newTestService(t, newStubUserRepo(manager, member), &stubHouseRepo{}, newStubNotificationRepo(request))

	err := svc.Respond(context.Background(), member.ID, RespondRequest{
		NotificationID: request.ID,
		Action:         "maybe",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRespondMissingNotification(t *testing.T) {
	manager := makeManager(t, "secret123")
	svc := newTestService(t, newStubUserRepo(manager), &stubHouseRepo{}, newStubNotificationRepo())

	err := svc.Respond(context.Background(), manager.ID, RespondRequest{
		NotificationID: uuid.New(),
		Action:         ActionApprove,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
