package enums

import "fmt"

// HouseRole is the closed set of per-house permission roles.
type HouseRole string

const (
	HouseRoleManager HouseRole = "manager"
	HouseRoleMember  HouseRole = "member"
)

var validHouseRoles = []HouseRole{
	HouseRoleManager,
	HouseRoleMember,
}

// String implements fmt.Stringer.
func (r HouseRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known HouseRole.
func (r HouseRole) IsValid() bool {
	for _, candidate := range validHouseRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// CanManageMembers reports whether the role may add or remove house members.
func (r HouseRole) CanManageMembers() bool {
	return r == HouseRoleManager
}

// CanInitiateHandoff reports whether the role may start a manager switch.
func (r HouseRole) CanInitiateHandoff() bool {
	return r == HouseRoleManager
}

// ParseHouseRole converts raw input into a HouseRole.
func ParseHouseRole(value string) (HouseRole, error) {
	for _, candidate := range validHouseRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid house role %q", value)
}
