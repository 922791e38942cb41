// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
)

var (
	ErrBadRequest         = errors.New("bad request")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrProfileComplete    = errors.New("profile already completed")
)

const (
	// TokenAlphabet is the symbol set of raw auth tokens.
	TokenAlphabet = "abcd0123456789"
	// TokenLength is the number of symbols in a raw auth token.
	TokenLength = 32
)

// GenerateAuthToken returns a fresh raw auth token. Each symbol is drawn
// uniformly from TokenAlphabet.
func GenerateAuthToken() (string, error) {
	return RandomString(TokenAlphabet, TokenLength)
}

// RandomString draws n symbols from alphabet using crypto/rand. Bytes at or
// above the largest multiple of len(alphabet) are discarded so every symbol
// is equally likely.
func RandomString(alphabet string, n int) (string, error) {
	limit := 256 - 256%len(alphabet)
	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to generate random token: %w", err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}

// SecretsEqual compares two secrets in constant time. Both sides are hashed
// first so their lengths are not observable either.
func SecretsEqual(got, want string) bool {
	a := sha256.Sum256([]byte(got))
	b := sha256.Sum256([]byte(want))
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}
