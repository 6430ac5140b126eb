package models

import "fmt"

// Role is the authorization role carried by a user and by the session.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleManager        Role = "manager"
	RoleSalesExecutive Role = "sales_executive"
)

// Roles lists every known role.
var Roles = []Role{RoleAdmin, RoleManager, RoleSalesExecutive}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleSalesExecutive:
		return true
	}
	return false
}

// Label is the human-readable role name.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleManager:
		return "Manager"
	case RoleSalesExecutive:
		return "Sales Executive"
	}
	return string(r)
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}
