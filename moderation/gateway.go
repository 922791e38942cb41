// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package moderation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/quickly-post/auth"
	"github.com/danielhkuo/quickly-post/models"
	"github.com/danielhkuo/quickly-post/storage"
	"github.com/danielhkuo/quickly-post/store"
)

// uploadConcurrency bounds parallel sticker uploads in one batch.
const uploadConcurrency = 4

// Content is the slice of the store moderation acts on.
type Content interface {
	Dump(ctx context.Context) (models.Dump, error)
	DeletePost(ctx context.Context, id int64) error
	DeleteComment(ctx context.Context, id int64) error
	DeletePollOption(ctx context.Context, id int64) error
	DeleteSticker(ctx context.Context, id int64) error
	GetSticker(ctx context.Context, id int64) (*models.Sticker, error)
	CreateSticker(ctx context.Context, url string) (int64, error)
	UpdatePost(ctx context.Context, id int64, content string, likes int64) error
	UpdateComment(ctx context.Context, id int64, content string) error
	UpdatePollOption(ctx context.Context, id int64, text string) error
	UpsertNotice(ctx context.Context, content string) error
}

// Gateway runs moderation actions for whoever holds the admin secret.
type Gateway struct {
	content Content
	blobs   storage.Storage
	secret  string
	logger  *slog.Logger
}

func NewGateway(content Content, blobs storage.Storage, secret string) *Gateway {
	return &Gateway{
		content: content,
		blobs:   blobs,
		secret:  secret,
		logger:  slog.Default().With("component", "moderation"),
	}
}

// Authorize returns ErrUnauthorized unless secret matches the configured
// admin secret. An empty configured secret denies everyone.
func (g *Gateway) Authorize(secret string) error {
	if g.secret == "" || !auth.SecretsEqual(secret, g.secret) {
		return ErrUnauthorized
	}
	return nil
}

// Execute checks secret and then runs a. Nothing is read or written when
// the secret is wrong.
func (g *Gateway) Execute(ctx context.Context, secret string, a Action) (any, error) {
	if err := g.Authorize(secret); err != nil {
		return nil, err
	}

	var err error
	switch a := a.(type) {
	case Login:
		return models.SuccessResponse{Success: true, Message: "Login successful"}, nil
	case ReadAll:
		dump, err := g.content.Dump(ctx)
		if err != nil {
			return nil, err
		}
		return dump, nil
	case DeletePost:
		err = g.content.DeletePost(ctx, a.ID)
	case DeleteComment:
		err = g.content.DeleteComment(ctx, a.ID)
	case DeletePollOption:
		err = g.content.DeletePollOption(ctx, a.ID)
	case DeleteSticker:
		err = g.deleteSticker(ctx, a)
	case UpdatePost:
		err = g.content.UpdatePost(ctx, a.ID, a.Content, a.Likes)
	case UpdateComment:
		err = g.content.UpdateComment(ctx, a.ID, a.Content)
	case UpdatePollOption:
		err = g.content.UpdatePollOption(ctx, a.ID, a.Text)
	case UpdateNotice:
		err = g.content.UpsertNotice(ctx, a.Content)
	case UploadStickers:
		return g.uploadStickers(ctx, a.Files)
	default:
		return nil, fmt.Errorf("%T: %w", a, ErrUnknownAction)
	}
	if err != nil {
		return nil, err
	}

	g.logger.Info("moderation action applied", "action", fmt.Sprintf("%T", a))
	return models.SuccessResponse{Success: true}, nil
}

func (g *Gateway) deleteSticker(ctx context.Context, a DeleteSticker) error {
	url := a.URL
	st, err := g.content.GetSticker(ctx, a.ID)
	switch {
	case err == nil:
		url = st.URL
	case !errors.Is(err, store.ErrNotFound):
		return err
	}

	if url != "" {
		if err := g.blobs.Delete(ctx, url); err != nil {
			return fmt.Errorf("failed to delete sticker image: %w", err)
		}
	}
	return g.content.DeleteSticker(ctx, a.ID)
}

// uploadStickers stores every valid file concurrently. Files succeed or
// fail independently; the batch fails only when none persisted.
func (g *Gateway) uploadStickers(ctx context.Context, files []storage.File) (models.BulkUploadResponse, error) {
	results := make([]models.UploadResult, len(files))

	var eg errgroup.Group
	eg.SetLimit(uploadConcurrency)
	for i, f := range files {
		results[i].Filename = f.Name
		eg.Go(func() error {
			url, err := g.uploadSticker(ctx, f)
			if err != nil {
				g.logger.Warn("skipping sticker", "file", f.Name, "error", err)
				results[i].Error = publicUploadError(err)
				return nil
			}
			results[i].URL = url
			return nil
		})
	}
	_ = eg.Wait()

	uploaded := 0
	for _, r := range results {
		if r.URL != "" {
			uploaded++
		}
	}
	if uploaded == 0 {
		return models.BulkUploadResponse{}, ErrNoValidFiles
	}

	g.logger.Info("stickers uploaded", "uploaded", uploaded, "skipped", len(files)-uploaded)
	return models.BulkUploadResponse{Success: true, UploadedCount: uploaded, Files: results}, nil
}

func (g *Gateway) uploadSticker(ctx context.Context, f storage.File) (string, error) {
	if err := storage.BulkStickerRules.Check(f); err != nil {
		return "", err
	}

	url, err := g.blobs.Put(ctx, storage.Key("stickers/", f.Name), f.Data, f.ContentType)
	if err != nil {
		return "", fmt.Errorf("failed to store sticker: %w", err)
	}

	if _, err := g.content.CreateSticker(ctx, url); err != nil {
		if delErr := g.blobs.Delete(ctx, url); delErr != nil {
			g.logger.Error("failed to remove orphaned sticker", "url", url, "error", delErr)
		}
		return "", err
	}
	return url, nil
}

// publicUploadError keeps validation messages and hides internal failures.
func publicUploadError(err error) string {
	switch {
	case errors.Is(err, storage.ErrEmptyFile),
		errors.Is(err, storage.ErrUnsupportedType),
		errors.Is(err, storage.ErrTooLarge):
		return err.Error()
	}
	return "upload failed"
}
