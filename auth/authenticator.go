// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/quickly-post/models"
	"github.com/danielhkuo/quickly-post/storage"
	"github.com/danielhkuo/quickly-post/store"
)

// DefaultCost is the bcrypt cost for auth token hashes.
const DefaultCost = 10

// Credentials is the slice of the store the authenticator needs.
type Credentials interface {
	CreateIdentity(ctx context.Context, authTokenHash string) (int64, error)
	ListIdentities(ctx context.Context) ([]models.Identity, error)
	GetIdentity(ctx context.Context, id int64) (*models.Identity, error)
	CompleteProfile(ctx context.Context, id int64, username string, pictureURL *string) error
	UpdateProfile(ctx context.Context, id int64, upd store.ProfileUpdate) error
}

// Authenticator turns raw auth tokens into identities and sessions.
type Authenticator struct {
	creds    Credentials
	blobs    storage.Storage
	sessions *Sessions
	cost     int
	logger   *slog.Logger
}

func NewAuthenticator(creds Credentials, blobs storage.Storage, sessions *Sessions) *Authenticator {
	return &Authenticator{
		creds:    creds,
		blobs:    blobs,
		sessions: sessions,
		cost:     DefaultCost,
		logger:   slog.Default().With("component", "auth"),
	}
}

// WithCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (a *Authenticator) WithCost(cost int) *Authenticator {
	a.cost = cost
	return a
}

// Sessions returns the session issuer used by the authenticator.
func (a *Authenticator) Sessions() *Sessions {
	return a.sessions
}

// SignupResult carries the raw token. It is shown to the user once and
// never stored.
type SignupResult struct {
	AuthToken string
	UserID    int64
}

// Session is a signed session token together with the identity it names.
type Session struct {
	Token    string
	Identity *models.Identity
}

// ProfileFields are the user-editable parts of an identity.
type ProfileFields struct {
	Username string
	Bio      *string
	URLs     []string
	Image    *storage.File
}

// Signup creates an anonymous identity.
func (a *Authenticator) Signup(ctx context.Context) (SignupResult, error) {
	token, err := GenerateAuthToken()
	if err != nil {
		return SignupResult{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(token), a.cost)
	if err != nil {
		return SignupResult{}, fmt.Errorf("failed to hash auth token: %w", err)
	}

	id, err := a.creds.CreateIdentity(ctx, string(hash))
	if err != nil {
		return SignupResult{}, err
	}

	a.logger.Info("identity created", "user_id", id)
	return SignupResult{AuthToken: token, UserID: id}, nil
}

// Verify finds the identity whose stored hash matches candidate. Every hash
// is checked in turn, so the cost grows with the number of identities.
func (a *Authenticator) Verify(ctx context.Context, candidate string) (*models.Identity, error) {
	if candidate == "" {
		return nil, ErrInvalidCredentials
	}

	identities, err := a.creds.ListIdentities(ctx)
	if err != nil {
		return nil, err
	}

	for i := range identities {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if bcrypt.CompareHashAndPassword([]byte(identities[i].AuthTokenHash), []byte(candidate)) == nil {
			return &identities[i], nil
		}
	}
	return nil, ErrInvalidCredentials
}

// Login exchanges a raw auth token for a session.
func (a *Authenticator) Login(ctx context.Context, authToken string) (Session, error) {
	ident, err := a.Verify(ctx, strings.TrimSpace(authToken))
	if err != nil {
		return Session{}, err
	}
	return a.issue(ident)
}

// CompleteProfile sets the username, and optionally the picture, of a fresh
// identity. It succeeds only once per identity.
func (a *Authenticator) CompleteProfile(ctx context.Context, authToken, username string, image *storage.File) (Session, error) {
	authToken = strings.TrimSpace(authToken)
	username = strings.TrimSpace(username)
	if authToken == "" || username == "" {
		return Session{}, fmt.Errorf("auth token and username are required: %w", ErrBadRequest)
	}
	if image != nil {
		if err := storage.ImageRules.Check(*image); err != nil {
			return Session{}, fmt.Errorf("%w: %w", ErrBadRequest, err)
		}
	}

	ident, err := a.Verify(ctx, authToken)
	if errors.Is(err, ErrInvalidCredentials) {
		return Session{}, fmt.Errorf("no identity for auth token: %w", store.ErrNotFound)
	}
	if err != nil {
		return Session{}, err
	}
	if ident.Username != nil {
		return Session{}, ErrProfileComplete
	}

	pictureURL, err := a.upload(ctx, image)
	if err != nil {
		return Session{}, err
	}

	err = a.creds.CompleteProfile(ctx, ident.ID, username, pictureURL)
	if err != nil {
		a.discard(ctx, pictureURL)
		if errors.Is(err, store.ErrConflict) {
			return Session{}, ErrProfileComplete
		}
		return Session{}, err
	}

	return a.reload(ctx, ident.ID)
}

// UpdateProfile replaces username, bio and urls. The picture changes only
// when a new image is supplied.
func (a *Authenticator) UpdateProfile(ctx context.Context, identityID int64, f ProfileFields) (Session, error) {
	username := strings.TrimSpace(f.Username)
	if username == "" {
		return Session{}, fmt.Errorf("username is required: %w", ErrBadRequest)
	}
	if f.Image != nil {
		if err := storage.ImageRules.Check(*f.Image); err != nil {
			return Session{}, fmt.Errorf("%w: %w", ErrBadRequest, err)
		}
	}

	current, err := a.creds.GetIdentity(ctx, identityID)
	if err != nil {
		return Session{}, err
	}

	pictureURL, err := a.upload(ctx, f.Image)
	if err != nil {
		return Session{}, err
	}

	err = a.creds.UpdateProfile(ctx, identityID, store.ProfileUpdate{
		Username:   username,
		Bio:        f.Bio,
		URLs:       models.StringList(f.URLs),
		PictureURL: pictureURL,
	})
	if err != nil {
		a.discard(ctx, pictureURL)
		return Session{}, err
	}
	if pictureURL != nil {
		a.discard(ctx, current.ProfilePictureURL)
	}

	return a.reload(ctx, identityID)
}

// Profile returns an identity. The hash is excluded from its JSON form.
func (a *Authenticator) Profile(ctx context.Context, identityID int64) (*models.Identity, error) {
	return a.creds.GetIdentity(ctx, identityID)
}

func (a *Authenticator) reload(ctx context.Context, id int64) (Session, error) {
	ident, err := a.creds.GetIdentity(ctx, id)
	if err != nil {
		return Session{}, err
	}
	return a.issue(ident)
}

func (a *Authenticator) issue(ident *models.Identity) (Session, error) {
	var username string
	if ident.Username != nil {
		username = *ident.Username
	}
	token, err := a.sessions.Issue(ident.ID, username)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, Identity: ident}, nil
}

func (a *Authenticator) upload(ctx context.Context, image *storage.File) (*string, error) {
	if image == nil {
		return nil, nil
	}
	url, err := a.blobs.Put(ctx, storage.Key("pfp", image.Name), image.Data, image.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload profile picture: %w", err)
	}
	return &url, nil
}

// discard removes a picture that is no longer referenced. Failures are
// logged; the profile change they belong to already happened or failed.
func (a *Authenticator) discard(ctx context.Context, url *string) {
	if url == nil || *url == "" {
		return
	}
	if err := a.blobs.Delete(ctx, *url); err != nil {
		a.logger.Error("failed to remove profile picture", "url", *url, "error", err)
	}
}
