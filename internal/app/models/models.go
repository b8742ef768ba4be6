package models

import "strings"

// Role is the discriminant of the User variant
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleStudent Role = "Student"
	RoleFaculty Role = "Faculty"
)

// Roles lists every valid role in declaration order
var Roles = []Role{RoleAdmin, RoleStudent, RoleFaculty}

// ParseRole matches a role name case-insensitively
func ParseRole(s string) (Role, bool) {
	for _, r := range Roles {
		if strings.EqualFold(string(r), strings.TrimSpace(s)) {
			return r, true
		}
	}
	return "", false
}

// Valid reports whether r is one of the declared roles
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// HasCourses reports whether users of this role carry a course set.
// Admins never do.
func (r Role) HasCourses() bool {
	return r == RoleStudent || r == RoleFaculty
}

// Grade bounds, inclusive
const (
	MinGradeValue = 0.0
	MaxGradeValue = 100.0
)
