// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/quickly-post/middleware"
	"github.com/danielhkuo/quickly-post/models"
	"github.com/danielhkuo/quickly-post/storage"
	"github.com/danielhkuo/quickly-post/store"
)

type PostHandler struct {
	store *store.Store
	blobs storage.Storage
}

func NewPostHandler(s *store.Store, blobs storage.Storage) *PostHandler {
	return &PostHandler{store: s, blobs: blobs}
}

// ListPosts handles GET /posts
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	limit := models.MaxPostsPerPage
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	resp, err := h.store.ListPosts(r.Context(), limit)
	if err != nil {
		writeError(w, err, "Failed to fetch posts")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// CreatePost handles POST /posts
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	if err := middleware.ParseMultipart(w, r); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	options, err := parseList(r.MultipartForm.Value["poll_options"])
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_options must be a JSON array of strings")
		return
	}

	image, err := middleware.FormFile(r, "image")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid image upload")
		return
	}

	imageURL, err := uploadImage(r.Context(), h.blobs, "post", image)
	if err != nil {
		writeError(w, err, "Failed to upload image")
		return
	}

	id, err := h.store.CreatePost(r.Context(), store.NewPost{
		Content:     r.FormValue("content"),
		ImageURL:    imageURL,
		PollOptions: options,
	})
	if err != nil {
		discardImage(r.Context(), h.blobs, imageURL)
		writeError(w, err, "Failed to create post")
		return
	}

	slog.Info("post created", "post_id", id, "poll_options", len(options))
	middleware.JSONResponse(w, http.StatusCreated, models.CreatedResponse{Success: true, ID: id})
}

// uploadImage validates and stores an optional image.
func uploadImage(ctx context.Context, blobs storage.Storage, prefix string, image *storage.File) (*string, error) {
	if image == nil {
		return nil, nil
	}
	if err := storage.ImageRules.Check(*image); err != nil {
		return nil, err
	}

	url, err := blobs.Put(ctx, storage.Key(prefix, image.Name), image.Data, image.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}
	return &url, nil
}

// discardImage removes an image whose row was never written.
func discardImage(ctx context.Context, blobs storage.Storage, url *string) {
	if url == nil {
		return
	}
	if err := blobs.Delete(ctx, *url); err != nil {
		slog.Error("failed to remove unused image", "url", *url, "error", err)
	}
}
