package permissions

import "fmt"

// Role is the membership role a user holds inside an organization.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleMember  Role = "MEMBER"
	RoleBilling Role = "BILLING"
)

// Roles lists every role in display order.
var Roles = []Role{RoleAdmin, RoleMember, RoleBilling}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMember, RoleBilling:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// ParseRole converts a raw string into a Role.
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return role, nil
}
