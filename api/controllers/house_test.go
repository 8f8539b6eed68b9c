package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/nahidhasan/messmate-backend/internal/houses"
	"github.com/nahidhasan/messmate-backend/internal/users"
)

type testHouseService struct {
	listFn   func(ctx context.Context, houseCode string) ([]users.UserDTO, error)
	addFn    func(ctx context.Context, houseCode string, input houses.AddMemberInput) (*users.UserDTO, string, error)
	removeFn func(ctx context.Context, actorID uuid.UUID, houseCode string, memberID uuid.UUID) error
}

func (s *testHouseService) ListMembers(ctx context.Context, houseCode string) ([]users.UserDTO, error) {
	if s.listFn != nil {
		return s.listFn(ctx, houseCode)
	}
	return nil, nil
}

func (s *testHouseService) AddMember(ctx context.Context, houseCode string, input houses.AddMemberInput) (*users.UserDTO, string, error) {
	if s.addFn != nil {
		return s.addFn(ctx, houseCode, input)
	}
	return &users.UserDTO{}, "", nil
}

func (s *testHouseService) RemoveMember(ctx context.Context, actorID uuid.UUID, houseCode string, memberID uuid.UUID) error {
	if s.removeFn != nil {
		return s.removeFn(ctx, actorID, houseCode, memberID)
	}
	return nil
}

func TestHouseAddMemberEchoesTempPasswordOnce(t *testing.T) {
	svc := &testHouseService{
		addFn: func(_ context.Context, houseCode string, input houses.AddMemberInput) (*users.UserDTO, string, error) {
			if houseCode != "AB12CD34" {
				t.Fatalf("unexpected house %s", houseCode)
			}
			if input.Email != "new@example.com" {
				t.Fatalf("unexpected email %s", input.Email)
			}
			return &users.UserDTO{ID: uuid.New(), Email: input.Email}, "tmp-pass-123", nil
		},
	}

	payload := `{"email":"new@example.com","full_name":"New Member"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/house/members", strings.NewReader(payload))
	req = authedRequest(t, req, uuid.New(), "manager", "AB12CD34")

	resp := httptest.NewRecorder()
	HouseAddMember(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data struct {
			TempPassword string `json:"temp_password"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.TempPassword != "tmp-pass-123" {
		t.Fatalf("expected temp password echoed, got %q", envelope.Data.TempPassword)
	}
}

func TestHouseAddMemberRejectsBadEmail(t *testing.T) {
	payload := `{"email":"not-an-email","full_name":"New Member"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/house/members", strings.NewReader(payload))
	req = authedRequest(t, req, uuid.New(), "manager", "AB12CD34")

	resp := httptest.NewRecorder()
	HouseAddMember(&testHouseService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestHouseRemoveMemberForwardsIdentity(t *testing.T) {
	callerID := uuid.New()
	memberID := uuid.New()
	called := false
	svc := &testHouseService{
		removeFn: func(_ context.Context, actor uuid.UUID, houseCode string, member uuid.UUID) error {
			called = true
			if actor != callerID {
				t.Fatalf("unexpected actor %s", actor)
			}
			if member != memberID {
				t.Fatalf("unexpected member %s", member)
			}
			if houseCode != "AB12CD34" {
				t.Fatalf("unexpected house %s", houseCode)
			}
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/house/members/"+memberID.String(), nil)
	req = authedRequest(t, req, callerID, "manager", "AB12CD34")
	req = addRouteParam(req, "memberId", memberID.String())

	resp := httptest.NewRecorder()
	HouseRemoveMember(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !called {
		t.Fatal("expected service called")
	}
}

func TestHouseListMembersRequiresHouseContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/house/members", nil)
	req = authedRequest(t, req, uuid.New(), "member", "")

	resp := httptest.NewRecorder()
	HouseListMembers(&testHouseService{}, testLogger())(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}
