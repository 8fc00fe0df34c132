// Copyright (c) 2026 YaMDb. All rights reserved.

package auth

import (
	"time"

	"github.com/sdvkam/yamdb-final/internal/platform/sec"
)

// # Domain Entities

// User represents a registered account.
//
// # Identity Model
//
// There are no passwords. An account is claimed by signing up with an email
// and username; a confirmation code is mailed out and exchanged for a JWT at
// the token endpoint. The code is generated once and never rotated, so
// repeated signups act as an idempotent resend.
type User struct {
	ID        int64        `json:"-"`
	Username  string       `json:"username"`
	Email     string       `json:"email"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	Bio       string       `json:"bio"`
	Role      sec.UserRole `json:"role"`

	// ConfirmationCode is the mailed secret exchanged for an access token.
	// Never exposed through the API.
	ConfirmationCode string `json:"-"`

	// IsStaff and IsSuperuser are administrative flags settable only through
	// direct database access, never through the API.
	IsStaff     bool `json:"-"`
	IsSuperuser bool `json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// IsAdmin reports whether the account holds administrative power.
// Staff status, the admin role, and superuser status each grant it independently.
func (user *User) IsAdmin() bool {
	return user.IsStaff || user.Role == sec.RoleAdmin || user.IsSuperuser
}

// IsModerator reports whether the account holds moderation power.
// Superusers moderate regardless of their stored role.
func (user *User) IsModerator() bool {
	return user.Role == sec.RoleModerator || user.IsSuperuser
}
