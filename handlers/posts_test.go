// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-post/models"
	"github.com/danielhkuo/quickly-post/testutil"
)

func TestCreatePostHandler(t *testing.T) {
	env := newTestEnv(t)
	handler := NewPostHandler(env.store, env.blobs)

	tests := []struct {
		name            string
		fields          map[string][]string
		files           []testutil.File
		expectedStatus  int
		expectedOptions []string
	}{
		{"text only", map[string][]string{"content": {"hello"}}, nil, http.StatusCreated, nil},
		{"repeated poll options", map[string][]string{"content": {"pick"}, "poll_options": {"Red", "Blue"}}, nil,
			http.StatusCreated, []string{"Red", "Blue"}},
		{"json poll options", map[string][]string{"poll_options": {`["Yes","No"," "]`}}, nil,
			http.StatusCreated, []string{"Yes", "No"}},
		{"image only", nil, []testutil.File{{Field: "image", Name: "cat.png", ContentType: "image/png", Data: testutil.PNG}},
			http.StatusCreated, nil},
		{"empty post", map[string][]string{"content": {"   "}}, nil, http.StatusBadRequest, nil},
		{"malformed poll options", map[string][]string{"poll_options": {`["a",`}}, nil, http.StatusBadRequest, nil},
		{"unsupported image", map[string][]string{"content": {"x"}},
			[]testutil.File{{Field: "image", Name: "a.pdf", ContentType: "application/pdf", Data: []byte("%PDF")}},
			http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeMultipartRequest(t, "POST", "/posts", tt.fields, tt.files...)
			w := httptest.NewRecorder()

			handler.CreatePost(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusCreated {
				return
			}

			var resp models.CreatedResponse
			testutil.AssertJSON(t, w, &resp)
			assert.True(t, resp.Success)

			var texts []string
			err := env.store.DB().Select(&texts, `SELECT option_text FROM poll_options WHERE post_id = $1 ORDER BY id`, resp.ID)
			require.NoError(t, err)
			if tt.expectedOptions == nil {
				assert.Empty(t, texts)
			} else {
				assert.Equal(t, tt.expectedOptions, texts)
			}
		})
	}

	assert.Equal(t, 1, env.blobs.Len(), "only the accepted image should be stored")
}

func TestCreatePostRemovesImageOnFailure(t *testing.T) {
	env := newTestEnv(t)
	handler := NewPostHandler(env.store, env.blobs)
	require.NoError(t, env.store.DB().Close())

	req := testutil.MakeMultipartRequest(t, "POST", "/posts", nil,
		testutil.File{Field: "image", Name: "cat.png", ContentType: "image/png", Data: testutil.PNG})
	w := httptest.NewRecorder()

	handler.CreatePost(w, req)

	testutil.AssertStatus(t, w, http.StatusInternalServerError)
	assert.Zero(t, env.blobs.Len())
	assert.NotContains(t, w.Body.String(), "sql")
}

func TestCreatePostStorageFailure(t *testing.T) {
	env := newTestEnv(t)
	env.blobs.FailPut = func(string) error { return errors.New("bucket unavailable") }
	handler := NewPostHandler(env.store, env.blobs)

	req := testutil.MakeMultipartRequest(t, "POST", "/posts", map[string][]string{"content": {"x"}},
		testutil.File{Field: "image", Name: "cat.png", ContentType: "image/png", Data: testutil.PNG})
	w := httptest.NewRecorder()

	handler.CreatePost(w, req)

	testutil.AssertStatus(t, w, http.StatusInternalServerError)
	assert.Zero(t, testutil.CountRows(t, env.store.DB(), "posts", "1 = 1"))
}

func TestListPostsHandler(t *testing.T) {
	env := newTestEnv(t)
	handler := NewPostHandler(env.store, env.blobs)

	testutil.CreateTestPost(t, env.store.DB(), "first")
	testutil.CreateTestPost(t, env.store.DB(), "poll", "A", "B")
	testutil.CreateTestPost(t, env.store.DB(), "third")
	require.NoError(t, env.store.UpsertNotice(context.Background(), "Be nice"))

	t.Run("default", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ListPosts(w, httptest.NewRequest("GET", "/posts", nil))

		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.PostsResponse
		testutil.AssertJSON(t, w, &resp)
		require.Len(t, resp.Posts, 3)
		assert.Equal(t, "Be nice", resp.Notice)

		var poll *models.PostWithPoll
		for i := range resp.Posts {
			if resp.Posts[i].Content == "poll" {
				poll = &resp.Posts[i]
			}
		}
		require.NotNil(t, poll)
		assert.Len(t, poll.PollOptions, 2)
	})

	t.Run("limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ListPosts(w, httptest.NewRequest("GET", "/posts?limit=2", nil))

		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.PostsResponse
		testutil.AssertJSON(t, w, &resp)
		assert.Len(t, resp.Posts, 2)
	})

	for _, bad := range []string{"0", "-1", "ten"} {
		t.Run("bad limit "+bad, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ListPosts(w, httptest.NewRequest("GET", "/posts?limit="+bad, nil))
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}
}
