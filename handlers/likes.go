// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/danielhkuo/quickly-post/middleware"
	"github.com/danielhkuo/quickly-post/models"
	"github.com/danielhkuo/quickly-post/store"
)

type LikeHandler struct {
	store *store.Store
}

func NewLikeHandler(s *store.Store) *LikeHandler {
	return &LikeHandler{store: s}
}

// Like handles POST /likes
func (h *LikeHandler) Like(w http.ResponseWriter, r *http.Request) {
	var req models.LikeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	target, err := store.ParseTarget(req.Type)
	if err != nil || req.ID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid type or id")
		return
	}
	dir, err := store.ParseDirection(req.Action)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid action")
		return
	}

	likes, err := h.store.AdjustLikes(r.Context(), target, req.ID, dir)
	if err != nil {
		writeError(w, err, notFoundOr(err, target.String()+" not found", "Failed to update likes"))
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LikesResponse{Success: true, Likes: likes})
}

// GetLikes handles GET /likes?type=&id=
func (h *LikeHandler) GetLikes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	target, err := store.ParseTarget(q.Get("type"))
	id, idErr := strconv.ParseInt(q.Get("id"), 10, 64)
	if err != nil || idErr != nil || id <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid type or id")
		return
	}

	likes, err := h.store.Likes(r.Context(), target, id)
	if err != nil {
		writeError(w, err, notFoundOr(err, target.String()+" not found", "Failed to fetch likes"))
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LikesResponse{Success: true, Likes: likes})
}

// notFoundOr picks the message for a 404, or the fallback otherwise.
func notFoundOr(err error, notFound, fallback string) string {
	if statusFor(err) == http.StatusNotFound {
		return notFound
	}
	return fallback
}
