// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/quickly-post/auth"
	"github.com/danielhkuo/quickly-post/middleware"
	"github.com/danielhkuo/quickly-post/moderation"
	"github.com/danielhkuo/quickly-post/realtime"
	"github.com/danielhkuo/quickly-post/storage"
	"github.com/danielhkuo/quickly-post/store"
)

// statusFor maps package errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrInvalid),
		errors.Is(err, auth.ErrBadRequest),
		errors.Is(err, storage.ErrEmptyFile),
		errors.Is(err, storage.ErrUnsupportedType),
		errors.Is(err, storage.ErrTooLarge),
		errors.Is(err, moderation.ErrUnknownAction),
		errors.Is(err, moderation.ErrInvalidPayload),
		errors.Is(err, moderation.ErrNoValidFiles),
		errors.Is(err, realtime.ErrInvalidClientID):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrUnauthenticated),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, moderation.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrProfileComplete),
		errors.Is(err, store.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeError responds with the status for err. Validation errors carry
// their own message; everything else uses msg so internal details are
// never echoed.
func writeError(w http.ResponseWriter, err error, msg string) {
	status := statusFor(err)
	switch status {
	case http.StatusInternalServerError:
		slog.Error(msg, "error", err)
	case http.StatusBadRequest:
		msg = err.Error()
	}
	middleware.ErrorResponse(w, status, msg)
}

// pathID reads a positive integer path parameter.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	return id, err == nil && id > 0
}
