// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, client IP) and completion (status,
duration_ms).

# Sessions

RequireSession rejects requests without a valid session token and stores the
claims in the request context:

	mux.HandleFunc("GET /profile", middleware.RequireSession(sessions, h.GetProfile))
	claims, _ := auth.ClaimsFrom(r.Context())

The token comes from the "token" cookie or an Authorization: Bearer header.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

The request origin is echoed back with credentials allowed.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.LikeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Multipart Forms

	if err := middleware.ParseMultipart(w, r); err != nil { ... }
	image, err := middleware.FormFile(r, "image") // nil when absent
	files, err := middleware.FormFiles(r)
*/
package middleware
