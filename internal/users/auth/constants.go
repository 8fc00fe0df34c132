// Copyright (c) 2026 YaMDb. All rights reserved.

package auth

import "regexp"

// # Field Identifiers

const (
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldConfirmationCode = "confirmation_code"
)

// # Validation Limits

const (
	// UsernameMaxLength caps the username field.
	UsernameMaxLength = 150

	// EmailMaxLength caps the email field.
	EmailMaxLength = 254

	// ReservedUsername cannot be registered; /users/me routes to the
	// authenticated user's own profile.
	ReservedUsername = "me"
)

// usernameRegex permits word characters plus the . @ + - set.
var usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)
