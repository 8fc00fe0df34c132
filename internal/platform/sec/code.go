// Copyright (c) 2026 YaMDb. All rights reserved.

package sec

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// # Confirmation Codes

const (
	// ConfirmationCodeLength is the number of characters in a generated code.
	ConfirmationCodeLength = 10

	// confirmationCodeAlphabet mixes lowercase, uppercase, and digits.
	confirmationCodeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// GenerateConfirmationCode returns a random mixed-case alphanumeric string.
//
// The code is generated once per account, stored on the user row, and never
// rotated; repeated signups resend the same value. It therefore uses
// crypto/rand rather than a seeded PRNG.
func GenerateConfirmationCode() (string, error) {
	alphabetSize := big.NewInt(int64(len(confirmationCodeAlphabet)))

	code := make([]byte, ConfirmationCodeLength)
	for i := range code {
		index, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("sec: failed to generate confirmation code: %w", err)
		}
		code[i] = confirmationCodeAlphabet[index.Int64()]
	}

	return string(code), nil
}
