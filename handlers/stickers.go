// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/quickly-post/middleware"
	"github.com/danielhkuo/quickly-post/models"
	"github.com/danielhkuo/quickly-post/storage"
	"github.com/danielhkuo/quickly-post/store"
)

type StickerHandler struct {
	store *store.Store
	blobs storage.Storage
}

func NewStickerHandler(s *store.Store, blobs storage.Storage) *StickerHandler {
	return &StickerHandler{store: s, blobs: blobs}
}

// ListStickers handles GET /stickers
func (h *StickerHandler) ListStickers(w http.ResponseWriter, r *http.Request) {
	stickers, err := h.store.ListStickers(r.Context())
	if err != nil {
		writeError(w, err, "Failed to fetch stickers")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, stickers)
}

// UploadSticker handles POST /stickers with a single png or gif file
func (h *StickerHandler) UploadSticker(w http.ResponseWriter, r *http.Request) {
	if err := middleware.ParseMultipart(w, r); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	files, err := middleware.FormFiles(r)
	if err != nil || len(files) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "No file uploaded.")
		return
	}
	file := files[0]

	if err := storage.StickerRules.Check(file); err != nil {
		writeError(w, err, "Invalid sticker")
		return
	}

	url, err := h.blobs.Put(r.Context(), storage.Key("stickers/", file.Name), file.Data, file.ContentType)
	if err != nil {
		writeError(w, err, "Failed to upload sticker")
		return
	}

	if _, err := h.store.CreateSticker(r.Context(), url); err != nil {
		discardImage(r.Context(), h.blobs, &url)
		writeError(w, err, "Failed to upload sticker")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.StickerUploadResponse{Success: true, URL: url})
}
