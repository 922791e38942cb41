// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/quickly-post/middleware"
	"github.com/danielhkuo/quickly-post/models"
	"github.com/danielhkuo/quickly-post/moderation"
)

type AdminHandler struct {
	gateway *moderation.Gateway
}

func NewAdminHandler(gateway *moderation.Gateway) *AdminHandler {
	return &AdminHandler{gateway: gateway}
}

// ReadAll handles GET /admin?password=
func (h *AdminHandler) ReadAll(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, r.URL.Query().Get("password"), moderation.ReadAll{})
}

// Execute handles POST /admin
func (h *AdminHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req models.AdminRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// the action is only looked at once the password checks out
	if err := h.gateway.Authorize(req.Password); err != nil {
		writeError(w, err, adminMessage(statusFor(err)))
		return
	}

	action, err := moderation.ParseAction(req)
	if err != nil {
		writeError(w, err, "Invalid action")
		return
	}
	h.run(w, r, req.Password, action)
}

// UploadStickers handles POST /admin/stickers
func (h *AdminHandler) UploadStickers(w http.ResponseWriter, r *http.Request) {
	if err := middleware.ParseMultipart(w, r); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	files, err := middleware.FormFiles(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid file upload")
		return
	}
	h.run(w, r, r.FormValue("password"), moderation.UploadStickers{Files: files})
}

func (h *AdminHandler) run(w http.ResponseWriter, r *http.Request, password string, action moderation.Action) {
	out, err := h.gateway.Execute(r.Context(), password, action)
	if err != nil {
		writeError(w, err, adminMessage(statusFor(err)))
		return
	}
	middleware.JSONResponse(w, http.StatusOK, out)
}

func adminMessage(status int) string {
	if status == http.StatusUnauthorized {
		return "Unauthorized"
	}
	return "An internal server error occurred."
}
