// Copyright (c) 2026 Lotsawa. All rights reserved.

package sec

// # User Roles

// UserRole is the authorization level carried in a caller's token.
type UserRole string

const (
	// RoleAdmin may delete catalog records.
	RoleAdmin UserRole = "admin"

	// RoleEditor may create and update catalog records.
	RoleEditor UserRole = "editor"

	// RoleViewer is a signed-in reader with no write access.
	RoleViewer UserRole = "viewer"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level() && r.level() > 0
}

// IsValid reports whether r is a known role.
func (r UserRole) IsValid() bool {
	return r.level() > 0
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 30
	case RoleEditor:
		return 20
	case RoleViewer:
		return 10
	default:
		return 0
	}
}
