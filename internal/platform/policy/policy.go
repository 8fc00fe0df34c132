// Copyright (c) 2026 YaMDb. All rights reserved.

// Package policy implements role-based access decisions for API operations.
//
// # Architecture
//
// Handlers and routers compose small Predicate values instead of hard-coding
// role checks. Predicates evaluate a Principal (built from verified JWT
// claims) against the HTTP method and, optionally, the resource being acted
// on. AnyOf combines predicates with OR semantics, mirroring how moderation
// rules stack: an author may edit their own review, a moderator may edit
// anyone's.
package policy

import (
	"net/http"

	"github.com/sdvkam/yamdb-final/internal/platform/apperr"
	"github.com/sdvkam/yamdb-final/internal/platform/sec"
)

// ErrDenied is the uniform denial returned when no predicate grants access.
// A single message avoids leaking which rule was evaluated.
var ErrDenied = apperr.Forbidden("You do not have permission to perform this action")

// Principal is the access-control view of an authenticated user.
//
// A nil *Principal represents an anonymous request.
type Principal struct {
	Username  string
	Role      sec.UserRole
	Staff     bool
	Superuser bool
}

// FromClaims builds a Principal from verified token claims.
// Returns nil for anonymous requests (nil claims).
func FromClaims(claims *sec.AuthClaims) *Principal {
	if claims == nil {
		return nil
	}
	return &Principal{
		Username:  claims.Username,
		Role:      sec.UserRole(claims.Role),
		Staff:     claims.Staff,
		Superuser: claims.Superuser,
	}
}

// IsAdmin reports whether the principal holds administrative power.
//
// Staff status, the admin role, and superuser status each grant it
// independently. Demoting a staff member's role therefore does NOT revoke
// their admin access.
func (principal *Principal) IsAdmin() bool {
	if principal == nil {
		return false
	}
	return principal.Staff || principal.Role == sec.RoleAdmin || principal.Superuser
}

// IsModerator reports whether the principal holds moderation power.
// Superusers moderate regardless of their stored role.
func (principal *Principal) IsModerator() bool {
	if principal == nil {
		return false
	}
	return principal.Role == sec.RoleModerator || principal.Superuser
}

// Owned is implemented by resources that record their author,
// enabling ownership checks on mutation.
type Owned interface {
	OwnerUsername() string
}

// Predicate is a single access rule evaluated against a request.
//
// The resource argument is nil for collection-level operations
// (create, list) where no existing object is involved.
type Predicate func(principal *Principal, method string, resource Owned) bool

// IsAuthor grants access when the principal owns the resource.
func IsAuthor() Predicate {
	return func(principal *Principal, method string, resource Owned) bool {
		if principal == nil || resource == nil {
			return false
		}
		return principal.Username == resource.OwnerUsername()
	}
}

// IsModerator grants access to moderators and superusers.
func IsModerator() Predicate {
	return func(principal *Principal, method string, resource Owned) bool {
		return principal.IsModerator()
	}
}

// IsAdmin grants access to admins (staff, admin role, or superuser).
func IsAdmin() Predicate {
	return func(principal *Principal, method string, resource Owned) bool {
		return principal.IsAdmin()
	}
}

// IsAdminOrReadOnly grants safe methods to everyone, including anonymous
// requests, and restricts mutations to admins.
func IsAdminOrReadOnly() Predicate {
	return func(principal *Principal, method string, resource Owned) bool {
		switch method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return true
		}
		return principal.IsAdmin()
	}
}

// IsSuperuser grants access to superusers only.
func IsSuperuser() Predicate {
	return func(principal *Principal, method string, resource Owned) bool {
		return principal != nil && principal.Superuser
	}
}

// AnyOf evaluates predicates left to right and grants access on the first
// match. When every predicate denies, the result is [ErrDenied] with its
// uniform message regardless of which rules were composed.
func AnyOf(predicates ...Predicate) func(principal *Principal, method string, resource Owned) error {
	return func(principal *Principal, method string, resource Owned) error {
		for _, allow := range predicates {
			if allow(principal, method, resource) {
				return nil
			}
		}
		return ErrDenied
	}
}
