// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/quickly-post/middleware"
	"github.com/danielhkuo/quickly-post/realtime"
)

type RealtimeHandler struct {
	issuer *realtime.Issuer
}

// NewRealtimeHandler accepts a nil issuer when realtime is not configured.
func NewRealtimeHandler(issuer *realtime.Issuer) *RealtimeHandler {
	return &RealtimeHandler{issuer: issuer}
}

// Token handles GET /realtime/token?clientId=
func (h *RealtimeHandler) Token(w http.ResponseWriter, r *http.Request) {
	if h.issuer == nil {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Realtime is not configured.")
		return
	}

	resp, err := h.issuer.Issue(r.Context(), r.URL.Query().Get("clientId"))
	if err != nil {
		writeError(w, err, "Error creating realtime token.")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}
