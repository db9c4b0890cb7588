package models

import (
	"fmt"
	"strings"
)

// Role is the fixed set of user roles. Values match the ids in the roles table.
type Role int

const (
	RoleAdmin       Role = 1
	RoleNew         Role = 2
	RoleExperienced Role = 3
	RoleTrusted     Role = 4
)

// AllRoles lists every role, used to seed the roles table at startup.
var AllRoles = []Role{RoleAdmin, RoleNew, RoleExperienced, RoleTrusted}

// String returns the role name as stored in the roles table
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "ADMIN"
	case RoleNew:
		return "NEW"
	case RoleExperienced:
		return "EXPERIENCED"
	case RoleTrusted:
		return "TRUSTED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(r))
	}
}

// Valid reports whether the role is one of the defined roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleNew, RoleExperienced, RoleTrusted:
		return true
	}
	return false
}

// ParseRole converts a role name (case-insensitive) into a Role
func ParseRole(name string) (Role, error) {
	switch strings.ToUpper(name) {
	case "ADMIN":
		return RoleAdmin, nil
	case "NEW":
		return RoleNew, nil
	case "EXPERIENCED":
		return RoleExperienced, nil
	case "TRUSTED":
		return RoleTrusted, nil
	default:
		return 0, fmt.Errorf("role %s is not an allowed role", name)
	}
}
