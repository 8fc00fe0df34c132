// Copyright (c) 2026 YaMDb. All rights reserved.

package sec

// # User Roles

// UserRole represents the assignable role stored on an account.
//
// Staff and superuser status are orthogonal boolean flags carried separately
// on the account; effective admin/moderator powers are always computed from
// the combination, never stored.
type UserRole string

const (
	// Default role for standard registered users
	RoleUser UserRole = "user"

	// Can manage community content and moderate reviews/comments
	RoleModerator UserRole = "moderator"

	// Unrestricted catalogue and user management access
	RoleAdmin UserRole = "admin"
)

// IsValid reports whether the role is one of the three assignable values.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}
