// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-post/auth"
	"github.com/danielhkuo/quickly-post/models"
)

const (
	// DefaultTTL is how long a delivery token stays valid.
	DefaultTTL = time.Hour

	clientIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	clientIDLength   = 9
	maxClientIDLen   = 64
	tokenKey         = "realtime-token:%s" // <token>
)

var (
	ErrTokenNotFound   = errors.New("realtime token not found")
	ErrInvalidClientID = errors.New("invalid client id")
)

// Backend stores tokens with an expiry.
type Backend interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Get returns ErrTokenNotFound when key is missing or expired.
	Get(ctx context.Context, key string) (string, error)
}

// Issuer hands out short-lived tokens that bind a client id to a realtime
// delivery channel.
type Issuer struct {
	backend Backend
	ttl     time.Duration
	now     func() time.Time
	logger  *slog.Logger
}

func NewIssuer(backend Backend, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{
		backend: backend,
		ttl:     ttl,
		now:     func() time.Time { return time.Now().UTC() },
		logger:  slog.Default().With("component", "realtime"),
	}
}

// Issue creates a token for clientID. An empty clientID gets a generated
// one of the form client-xxxxxxxxx.
func (i *Issuer) Issue(ctx context.Context, clientID string) (models.RealtimeTokenResponse, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		id, err := GenerateClientID()
		if err != nil {
			return models.RealtimeTokenResponse{}, err
		}
		clientID = id
	}
	if len(clientID) > maxClientIDLen || strings.ContainsAny(clientID, " \t\r\n") {
		return models.RealtimeTokenResponse{}, fmt.Errorf("%q: %w", clientID, ErrInvalidClientID)
	}

	token := uuid.NewString()
	if err := i.backend.Set(ctx, fmt.Sprintf(tokenKey, token), clientID, i.ttl); err != nil {
		return models.RealtimeTokenResponse{}, fmt.Errorf("failed to store realtime token: %w", err)
	}

	i.logger.Debug("realtime token issued", "client_id", clientID)
	return models.RealtimeTokenResponse{
		Token:     token,
		ClientID:  clientID,
		ExpiresAt: i.now().Add(i.ttl),
	}, nil
}

// GenerateClientID returns an identifier such as client-k3j9x0a1b.
func GenerateClientID() (string, error) {
	s, err := auth.RandomString(clientIDAlphabet, clientIDLength)
	if err != nil {
		return "", err
	}
	return "client-" + s, nil
}
