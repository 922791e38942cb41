// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/quickly-post/auth"
	"github.com/danielhkuo/quickly-post/cliparse"
	"github.com/danielhkuo/quickly-post/models"
	"github.com/danielhkuo/quickly-post/moderation"
	"github.com/danielhkuo/quickly-post/store"
	"github.com/danielhkuo/quickly-post/testutil"
)

// testEnv bundles the dependencies every handler test needs.
type testEnv struct {
	cfg      cliparse.Config
	store    *store.Store
	blobs    *testutil.MemStorage
	authn    *auth.Authenticator
	sessions *auth.Sessions
	gateway  *moderation.Gateway
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := testutil.GetTestConfig()
	s := store.New(testutil.SetupTestDB(t))
	blobs := testutil.NewMemStorage()
	sessions := auth.NewSessions(cfg.JWTSecret)
	return &testEnv{
		cfg:      cfg,
		store:    s,
		blobs:    blobs,
		authn:    auth.NewAuthenticator(s, blobs, sessions).WithCost(bcrypt.MinCost),
		sessions: sessions,
		gateway:  moderation.NewGateway(s, blobs, cfg.AdminPassword),
	}
}

func TestVote(t *testing.T) {
	env := newTestEnv(t)
	handler := NewPollHandler(env.store)
	_, options := testutil.CreateTestPost(t, env.store.DB(), "Best color?", "Red", "Blue")

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		expectedVotes  int64
	}{
		{"valid vote", models.VoteRequest{OptionID: options[1]}, http.StatusOK, 1},
		{"second vote counts", models.VoteRequest{OptionID: options[1]}, http.StatusOK, 2},
		{"missing option id", map[string]string{}, http.StatusBadRequest, 0},
		{"negative option id", models.VoteRequest{OptionID: -3}, http.StatusBadRequest, 0},
		{"unknown option", models.VoteRequest{OptionID: 9999}, http.StatusNotFound, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/polls/vote", tt.body, nil)
			w := httptest.NewRecorder()

			handler.Vote(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus == http.StatusOK {
				var resp models.VoteResponse
				testutil.AssertJSON(t, w, &resp)
				if !resp.Success || resp.Votes != tt.expectedVotes {
					t.Errorf("Expected votes %d, got %+v", tt.expectedVotes, resp)
				}
			}
		})
	}

	// Other option untouched
	n := testutil.CountRows(t, env.store.DB(), "poll_options", "id = $1 AND votes = 0", options[0])
	if n != 1 {
		t.Error("Expected first option to have no votes")
	}
}

func TestVoteInvalidJSON(t *testing.T) {
	env := newTestEnv(t)
	handler := NewPollHandler(env.store)

	req := httptest.NewRequest("POST", "/polls/vote", nil)
	w := httptest.NewRecorder()
	handler.Vote(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}
