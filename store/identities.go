// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/danielhkuo/quickly-post/models"
)

const identityColumns = `id, auth_token_hash, username, profile_picture_url, bio, urls, created_at`

// ProfileUpdate carries the fields a signed-in user may change.
// A nil PictureURL keeps the stored picture.
type ProfileUpdate struct {
	Username   string
	Bio        *string
	URLs       models.StringList
	PictureURL *string
}

// CreateIdentity inserts an anonymous identity holding only the token hash.
func (s *Store) CreateIdentity(ctx context.Context, authTokenHash string) (int64, error) {
	if authTokenHash == "" {
		return 0, fmt.Errorf("auth token hash is required: %w", ErrInvalid)
	}

	var id int64
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO users (auth_token_hash, created_at)
		VALUES ($1, $2)
		RETURNING id
	`, authTokenHash, s.now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert identity: %w", err)
	}
	return id, nil
}

// ListIdentities returns every identity in store iteration order. Callers
// scanning for a token match rely on this being the full population.
func (s *Store) ListIdentities(ctx context.Context) ([]models.Identity, error) {
	var out []models.Identity
	err := s.db.SelectContext(ctx, &out, `SELECT `+identityColumns+` FROM users`)
	if err != nil {
		return nil, fmt.Errorf("list identities: %w", err)
	}
	return out, nil
}

func (s *Store) GetIdentity(ctx context.Context, id int64) (*models.Identity, error) {
	var ident models.Identity
	err := s.db.GetContext(ctx, &ident, `SELECT `+identityColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, notFound(err, "get identity")
	}
	return &ident, nil
}

// CompleteProfile sets the username and picture of an identity that has no
// username yet. It returns ErrConflict if the username was already set.
func (s *Store) CompleteProfile(ctx context.Context, id int64, username string, pictureURL *string) error {
	if username == "" {
		return fmt.Errorf("username is required: %w", ErrInvalid)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET username = $1, profile_picture_url = $2
		WHERE id = $3 AND username IS NULL
	`, username, pictureURL, id)
	if err != nil {
		return fmt.Errorf("complete profile: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("complete profile: %w", err)
	}
	if n == 0 {
		if _, err := s.GetIdentity(ctx, id); err != nil {
			return err
		}
		return fmt.Errorf("profile already completed: %w", ErrConflict)
	}
	return nil
}

// UpdateProfile replaces username, bio and urls. The picture is only
// replaced when upd.PictureURL is set.
func (s *Store) UpdateProfile(ctx context.Context, id int64, upd ProfileUpdate) error {
	if upd.Username == "" {
		return fmt.Errorf("username is required: %w", ErrInvalid)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET username = $1, bio = $2, urls = $3,
		    profile_picture_url = COALESCE($4, profile_picture_url)
		WHERE id = $5
	`, upd.Username, upd.Bio, upd.URLs, upd.PictureURL, id)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update profile: %w", ErrNotFound)
	}
	return nil
}
