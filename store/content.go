// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/quickly-post/models"
)

const (
	postColumns    = `id, content, image_url, likes, created_at`
	commentColumns = `id, post_id, parent_id, content, image_url, likes, created_at`
	optionColumns  = `id, post_id, option_text, votes`
)

type NewPost struct {
	Content     string
	ImageURL    *string
	PollOptions []string
}

type NewComment struct {
	PostID   int64
	ParentID *int64
	Content  string
	ImageURL *string
}

// CreatePost inserts a post and its poll options in one transaction, so a
// failure part way through never leaves a partial poll behind.
func (s *Store) CreatePost(ctx context.Context, p NewPost) (int64, error) {
	options := make([]string, 0, len(p.PollOptions))
	for _, opt := range p.PollOptions {
		if opt = strings.TrimSpace(opt); opt != "" {
			options = append(options, opt)
		}
	}
	if strings.TrimSpace(p.Content) == "" && p.ImageURL == nil && len(options) == 0 {
		return 0, fmt.Errorf("post needs content, an image or a poll: %w", ErrInvalid)
	}

	var postID int64
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, `
			INSERT INTO posts (content, image_url, likes, created_at)
			VALUES ($1, $2, 0, $3)
			RETURNING id
		`, p.Content, p.ImageURL, s.now()).Scan(&postID)
		if err != nil {
			return fmt.Errorf("insert post: %w", err)
		}

		for _, opt := range options {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO poll_options (post_id, option_text, votes)
				VALUES ($1, $2, 0)
			`, postID, opt)
			if err != nil {
				return fmt.Errorf("insert poll option: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return postID, nil
}

// CreateComment inserts a comment. ParentID is stored as given; it is not
// checked against existing comments.
func (s *Store) CreateComment(ctx context.Context, c NewComment) (int64, error) {
	if c.PostID <= 0 {
		return 0, fmt.Errorf("post id is required: %w", ErrInvalid)
	}
	if strings.TrimSpace(c.Content) == "" {
		return 0, fmt.Errorf("content is required: %w", ErrInvalid)
	}

	var id int64
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var exists int
		err := tx.QueryRowxContext(ctx, `SELECT 1 FROM posts WHERE id = $1`, c.PostID).Scan(&exists)
		if err != nil {
			return notFound(err, "lookup post")
		}

		err = tx.QueryRowxContext(ctx, `
			INSERT INTO comments (post_id, parent_id, content, image_url, likes, created_at)
			VALUES ($1, $2, $3, $4, 0, $5)
			RETURNING id
		`, c.PostID, c.ParentID, c.Content, c.ImageURL, s.now()).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert comment: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ListPosts returns up to limit posts, newest first, each with its poll
// options, plus the notice text.
func (s *Store) ListPosts(ctx context.Context, limit int) (models.PostsResponse, error) {
	if limit <= 0 || limit > models.MaxPostsPerPage {
		limit = models.MaxPostsPerPage
	}

	var posts []models.Post
	err := s.db.SelectContext(ctx, &posts, `
		SELECT `+postColumns+` FROM posts
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return models.PostsResponse{}, fmt.Errorf("list posts: %w", err)
	}

	byPost := map[int64][]models.PollOption{}
	if len(posts) > 0 {
		ids := make([]int64, len(posts))
		for i, p := range posts {
			ids[i] = p.ID
		}
		query, args, err := sqlx.In(`
			SELECT `+optionColumns+` FROM poll_options
			WHERE post_id IN (?)
			ORDER BY id
		`, ids)
		if err != nil {
			return models.PostsResponse{}, fmt.Errorf("build poll option query: %w", err)
		}

		var options []models.PollOption
		if err := s.db.SelectContext(ctx, &options, s.db.Rebind(query), args...); err != nil {
			return models.PostsResponse{}, fmt.Errorf("list poll options: %w", err)
		}
		for _, opt := range options {
			byPost[opt.PostID] = append(byPost[opt.PostID], opt)
		}
	}

	notice, err := s.Notice(ctx)
	if err != nil {
		return models.PostsResponse{}, err
	}

	resp := models.PostsResponse{
		Posts:  make([]models.PostWithPoll, len(posts)),
		Notice: notice,
	}
	for i, p := range posts {
		opts := byPost[p.ID]
		if opts == nil {
			opts = []models.PollOption{}
		}
		resp.Posts[i] = models.PostWithPoll{Post: p, PollOptions: opts}
	}
	return resp, nil
}

// ListComments returns every comment on a post in insertion order.
func (s *Store) ListComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := s.db.SelectContext(ctx, &comments, `
		SELECT `+commentColumns+` FROM comments
		WHERE post_id = $1
		ORDER BY created_at ASC, id ASC
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// Notice returns the notice text, or models.DefaultNotice if none was set.
func (s *Store) Notice(ctx context.Context) (string, error) {
	var content string
	err := s.db.GetContext(ctx, &content, `SELECT content FROM notice WHERE id = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultNotice, nil
	}
	if err != nil {
		return "", fmt.Errorf("get notice: %w", err)
	}
	return content, nil
}

func (s *Store) CreateSticker(ctx context.Context, url string) (int64, error) {
	if url == "" {
		return 0, fmt.Errorf("sticker url is required: %w", ErrInvalid)
	}

	var id int64
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO stickers (url, created_at) VALUES ($1, $2) RETURNING id
	`, url, s.now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert sticker: %w", err)
	}
	return id, nil
}

func (s *Store) GetSticker(ctx context.Context, id int64) (*models.Sticker, error) {
	var st models.Sticker
	err := s.db.GetContext(ctx, &st, `SELECT id, url, created_at FROM stickers WHERE id = $1`, id)
	if err != nil {
		return nil, notFound(err, "get sticker")
	}
	return &st, nil
}

// ListStickers returns stickers newest first.
func (s *Store) ListStickers(ctx context.Context) ([]models.Sticker, error) {
	stickers := []models.Sticker{}
	err := s.db.SelectContext(ctx, &stickers, `
		SELECT id, url, created_at FROM stickers ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list stickers: %w", err)
	}
	return stickers, nil
}
