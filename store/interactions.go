// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/danielhkuo/quickly-post/models"
)

// Target is a likeable row type. The set is closed so table names never
// come from request input.
type Target int

const (
	TargetPost Target = iota + 1
	TargetComment
)

func ParseTarget(s string) (Target, error) {
	switch s {
	case models.TargetPost:
		return TargetPost, nil
	case models.TargetComment:
		return TargetComment, nil
	}
	return 0, fmt.Errorf("unknown like target %q: %w", s, ErrInvalid)
}

func (t Target) String() string {
	switch t {
	case TargetPost:
		return models.TargetPost
	case TargetComment:
		return models.TargetComment
	}
	return "unknown"
}

func (t Target) table() (string, error) {
	switch t {
	case TargetPost:
		return "posts", nil
	case TargetComment:
		return "comments", nil
	}
	return "", fmt.Errorf("unknown like target %d: %w", int(t), ErrInvalid)
}

// Direction of a like change.
type Direction int

const (
	Like   Direction = 1
	Unlike Direction = -1
)

func ParseDirection(s string) (Direction, error) {
	switch s {
	case models.ActionLike:
		return Like, nil
	case models.ActionUnlike:
		return Unlike, nil
	}
	return 0, fmt.Errorf("unknown like action %q: %w", s, ErrInvalid)
}

// AdjustLikes changes a like counter by one in a single statement and
// returns the new value. Unlike stops at zero.
func (s *Store) AdjustLikes(ctx context.Context, target Target, id int64, dir Direction) (int64, error) {
	table, err := target.table()
	if err != nil {
		return 0, err
	}

	var set string
	switch dir {
	case Like:
		set = "likes + 1"
	case Unlike:
		set = "CASE WHEN likes > 0 THEN likes - 1 ELSE 0 END"
	default:
		return 0, fmt.Errorf("unknown like direction %d: %w", int(dir), ErrInvalid)
	}

	var likes int64
	err = s.db.QueryRowxContext(ctx,
		`UPDATE `+table+` SET likes = `+set+` WHERE id = $1 RETURNING likes`, id,
	).Scan(&likes)
	if err != nil {
		return 0, notFound(err, "adjust "+target.String()+" likes")
	}
	return likes, nil
}

// Likes reads the current like counter.
func (s *Store) Likes(ctx context.Context, target Target, id int64) (int64, error) {
	table, err := target.table()
	if err != nil {
		return 0, err
	}

	var likes int64
	err = s.db.GetContext(ctx, &likes, `SELECT likes FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return 0, notFound(err, "get "+target.String()+" likes")
	}
	return likes, nil
}

// Vote adds one vote to a poll option and returns the new count. There is
// no per-identity limit.
func (s *Store) Vote(ctx context.Context, optionID int64) (int64, error) {
	var votes int64
	err := s.db.QueryRowxContext(ctx, `
		UPDATE poll_options SET votes = votes + 1 WHERE id = $1 RETURNING votes
	`, optionID).Scan(&votes)
	if err != nil {
		return 0, notFound(err, "vote")
	}
	return votes, nil
}
