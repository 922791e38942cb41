// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/danielhkuo/quickly-post/middleware"
	"github.com/danielhkuo/quickly-post/models"
	"github.com/danielhkuo/quickly-post/storage"
	"github.com/danielhkuo/quickly-post/store"
	"github.com/danielhkuo/quickly-post/thread"
)

type CommentHandler struct {
	store *store.Store
	blobs storage.Storage
}

func NewCommentHandler(s *store.Store, blobs storage.Storage) *CommentHandler {
	return &CommentHandler{store: s, blobs: blobs}
}

// ListComments handles GET /posts/{id}/comments and returns the reply tree
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "id")
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid post id")
		return
	}

	comments, err := h.store.ListComments(r.Context(), postID)
	if err != nil {
		writeError(w, err, "Failed to fetch comments")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, thread.Build(comments))
}

// CreateComment handles POST /posts/{id}/comments
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "id")
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid post id")
		return
	}
	if err := middleware.ParseMultipart(w, r); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	var parentID *int64
	if v := strings.TrimSpace(r.FormValue("parent_id")); v != "" && v != "null" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "parent_id must be an integer")
			return
		}
		parentID = &id
	}

	image, err := middleware.FormFile(r, "image")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid image upload")
		return
	}
	imageURL, err := uploadImage(r.Context(), h.blobs, "comment", image)
	if err != nil {
		writeError(w, err, "Failed to upload image")
		return
	}

	id, err := h.store.CreateComment(r.Context(), store.NewComment{
		PostID:   postID,
		ParentID: parentID,
		Content:  r.FormValue("text"),
		ImageURL: imageURL,
	})
	if err != nil {
		discardImage(r.Context(), h.blobs, imageURL)
		writeError(w, err, commentMessage(statusFor(err)))
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreatedResponse{Success: true, ID: id})
}

func commentMessage(status int) string {
	if status == http.StatusNotFound {
		return "Post not found"
	}
	return "Failed to add comment"
}
