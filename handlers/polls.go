// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-post/middleware"
	"github.com/danielhkuo/quickly-post/models"
	"github.com/danielhkuo/quickly-post/store"
)

type PollHandler struct {
	store *store.Store
}

func NewPollHandler(s *store.Store) *PollHandler {
	return &PollHandler{store: s}
}

// Vote handles POST /polls/vote. Votes are not limited per identity.
func (h *PollHandler) Vote(w http.ResponseWriter, r *http.Request) {
	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.OptionID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing required field 'optionId'")
		return
	}

	votes, err := h.store.Vote(r.Context(), req.OptionID)
	if err != nil {
		writeError(w, err, notFoundOr(err, "Poll option not found", "Failed to process vote"))
		return
	}

	slog.Debug("vote recorded", "option_id", req.OptionID, "votes", votes)
	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{Success: true, Votes: votes})
}
