package enums

import "testing"

func TestParseHouseRole(t *testing.T) {
	role, err := ParseHouseRole("manager")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role != HouseRoleManager {
		t.Errorf("expected manager, got %s", role)
	}

	if _, err := ParseHouseRole("admin"); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestHouseRoleCapabilities(t *testing.T) {
	if !HouseRoleManager.CanManageMembers() {
		t.Error("manager should manage members")
	}
	if !HouseRoleManager.CanInitiateHandoff() {
		t.Error("manager should initiate handoff")
	}
	if HouseRoleMember.CanManageMembers() {
		t.Error("member must not manage members")
	}
	if HouseRoleMember.CanInitiateHandoff() {
		t.Error("member must not initiate handoff")
	}
}

func TestNotificationTypeValidity(t *testing.T) {
	for _, v := range []NotificationType{
		NotificationTypeManagerRequest,
		NotificationTypeManagerApproved,
		NotificationTypeManagerRejected,
		NotificationTypeGeneral,
	} {
		if !v.IsValid() {
			t.Errorf("%s should be valid", v)
		}
	}
	if NotificationType("order_alert").IsValid() {
		t.Error("unknown type should be invalid")
	}
}
