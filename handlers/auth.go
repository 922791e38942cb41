// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/quickly-post/auth"
	"github.com/danielhkuo/quickly-post/middleware"
	"github.com/danielhkuo/quickly-post/models"
)

type AuthHandler struct {
	authn *auth.Authenticator
}

func NewAuthHandler(authn *auth.Authenticator) *AuthHandler {
	return &AuthHandler{authn: authn}
}

// Signup handles POST /auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	res, err := h.authn.Signup(r.Context())
	if err != nil {
		writeError(w, err, "Failed to start signup")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.SignupResponse{
		Success:   true,
		AuthToken: res.AuthToken,
		UserID:    res.UserID,
	})
}

// CompleteProfile handles POST /auth/complete-profile
func (h *AuthHandler) CompleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := middleware.ParseMultipart(w, r); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	image, err := middleware.FormFile(r, "image")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid image upload")
		return
	}

	sess, err := h.authn.CompleteProfile(r.Context(), r.FormValue("authToken"), r.FormValue("username"), image)
	if err != nil {
		writeError(w, err, completeProfileMessage(statusFor(err)))
		return
	}

	auth.SetCookie(w, sess.Token)
	slog.Info("profile completed", "user_id", sess.Identity.ID)
	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: "Profile completed successfully",
	})
}

func completeProfileMessage(status int) string {
	switch status {
	case http.StatusNotFound:
		return "User not found"
	case http.StatusConflict:
		return "Profile already completed"
	}
	return "Failed to complete profile"
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.AuthToken) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Auth token is required")
		return
	}

	sess, err := h.authn.Login(r.Context(), req.AuthToken)
	if err != nil {
		writeError(w, err, loginMessage(statusFor(err)))
		return
	}

	auth.SetCookie(w, sess.Token)
	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: "Logged in successfully",
	})
}

func loginMessage(status int) string {
	if status == http.StatusUnauthorized {
		return "Invalid credentials"
	}
	return "Failed to log in"
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearCookie(w)
	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// GetProfile handles GET /profile (session required)
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	ident, err := h.authn.Profile(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err, profileMessage(statusFor(err)))
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ProfileResponse{User: *ident})
}

// UpdateProfile handles PUT /profile (session required)
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	if err := middleware.ParseMultipart(w, r); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	urls, err := parseList(r.MultipartForm.Value["urls"])
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "urls must be a JSON array of strings")
		return
	}
	image, err := middleware.FormFile(r, "image")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid image upload")
		return
	}

	fields := auth.ProfileFields{
		Username: r.FormValue("username"),
		URLs:     urls,
		Image:    image,
	}
	if bio := r.FormValue("bio"); bio != "" {
		fields.Bio = &bio
	}

	sess, err := h.authn.UpdateProfile(r.Context(), claims.UserID, fields)
	if err != nil {
		writeError(w, err, profileMessage(statusFor(err)))
		return
	}

	auth.SetCookie(w, sess.Token)
	middleware.JSONResponse(w, http.StatusOK, models.ProfileResponse{User: *sess.Identity})
}

func profileMessage(status int) string {
	if status == http.StatusNotFound {
		return "User not found"
	}
	return "Failed to load profile"
}

// parseList accepts either repeated form values or a single JSON array.
func parseList(values []string) ([]string, error) {
	if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		var out []string
		if err := json.Unmarshal([]byte(values[0]), &out); err != nil {
			return nil, err
		}
		return out, nil
	}

	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out, nil
}
