// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/danielhkuo/quickly-post/models"
)

// Moderation writes do not check that the row exists: deleting or updating
// a missing id succeeds without effect.

func (s *Store) DeletePost(ctx context.Context, id int64) error {
	return s.exec(ctx, "delete post", `DELETE FROM posts WHERE id = $1`, id)
}

func (s *Store) DeleteComment(ctx context.Context, id int64) error {
	return s.exec(ctx, "delete comment", `DELETE FROM comments WHERE id = $1`, id)
}

func (s *Store) DeletePollOption(ctx context.Context, id int64) error {
	return s.exec(ctx, "delete poll option", `DELETE FROM poll_options WHERE id = $1`, id)
}

func (s *Store) DeleteSticker(ctx context.Context, id int64) error {
	return s.exec(ctx, "delete sticker", `DELETE FROM stickers WHERE id = $1`, id)
}

func (s *Store) UpdatePost(ctx context.Context, id int64, content string, likes int64) error {
	if likes < 0 {
		return fmt.Errorf("likes must not be negative: %w", ErrInvalid)
	}
	return s.exec(ctx, "update post",
		`UPDATE posts SET content = $1, likes = $2 WHERE id = $3`, content, likes, id)
}

func (s *Store) UpdateComment(ctx context.Context, id int64, content string) error {
	return s.exec(ctx, "update comment",
		`UPDATE comments SET content = $1 WHERE id = $2`, content, id)
}

func (s *Store) UpdatePollOption(ctx context.Context, id int64, text string) error {
	return s.exec(ctx, "update poll option",
		`UPDATE poll_options SET option_text = $1 WHERE id = $2`, text, id)
}

// UpsertNotice writes the singleton notice row.
func (s *Store) UpsertNotice(ctx context.Context, content string) error {
	return s.exec(ctx, "upsert notice", `
		INSERT INTO notice (id, content, updated_at) VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at
	`, content, s.now())
}

// Dump reads every content table for the moderation read-all.
func (s *Store) Dump(ctx context.Context) (models.Dump, error) {
	d := models.Dump{
		Posts:       []models.Post{},
		Comments:    []models.Comment{},
		PollOptions: []models.PollOption{},
	}

	if err := s.db.SelectContext(ctx, &d.Posts,
		`SELECT `+postColumns+` FROM posts ORDER BY created_at DESC, id DESC`); err != nil {
		return models.Dump{}, fmt.Errorf("dump posts: %w", err)
	}
	if err := s.db.SelectContext(ctx, &d.Comments,
		`SELECT `+commentColumns+` FROM comments ORDER BY created_at DESC, id DESC`); err != nil {
		return models.Dump{}, fmt.Errorf("dump comments: %w", err)
	}
	if err := s.db.SelectContext(ctx, &d.PollOptions,
		`SELECT `+optionColumns+` FROM poll_options ORDER BY id`); err != nil {
		return models.Dump{}, fmt.Errorf("dump poll options: %w", err)
	}

	stickers, err := s.ListStickers(ctx)
	if err != nil {
		return models.Dump{}, err
	}
	d.Stickers = stickers

	if d.Notice, err = s.Notice(ctx); err != nil {
		return models.Dump{}, err
	}
	return d, nil
}

func (s *Store) exec(ctx context.Context, what, query string, args ...any) error {
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	return nil
}
