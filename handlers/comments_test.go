// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-post/models"
	"github.com/danielhkuo/quickly-post/testutil"
	"github.com/danielhkuo/quickly-post/thread"
)

func TestCreateCommentHandler(t *testing.T) {
	env := newTestEnv(t)
	handler := NewCommentHandler(env.store, env.blobs)
	postID, _ := testutil.CreateTestPost(t, env.store.DB(), "post")
	rootID := testutil.CreateTestComment(t, env.store.DB(), postID, nil, "root")

	tests := []struct {
		name           string
		postID         string
		fields         map[string][]string
		files          []testutil.File
		expectedStatus int
	}{
		{"top level", strconv.FormatInt(postID, 10), map[string][]string{"text": {"hi"}}, nil, http.StatusCreated},
		{"null parent", strconv.FormatInt(postID, 10), map[string][]string{"text": {"hi"}, "parent_id": {"null"}}, nil, http.StatusCreated},
		{"reply", strconv.FormatInt(postID, 10), map[string][]string{"text": {"re"}, "parent_id": {strconv.FormatInt(rootID, 10)}}, nil, http.StatusCreated},
		{"with image", strconv.FormatInt(postID, 10), map[string][]string{"text": {"pic"}},
			[]testutil.File{{Field: "image", Name: "a.gif", ContentType: "image/gif", Data: []byte("GIF89a")}}, http.StatusCreated},
		{"empty text", strconv.FormatInt(postID, 10), map[string][]string{"text": {" "}}, nil, http.StatusBadRequest},
		{"bad parent", strconv.FormatInt(postID, 10), map[string][]string{"text": {"x"}, "parent_id": {"abc"}}, nil, http.StatusBadRequest},
		{"bad post id", "abc", map[string][]string{"text": {"x"}}, nil, http.StatusBadRequest},
		{"unknown post", "9999", map[string][]string{"text": {"x"}}, nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeMultipartRequest(t, "POST", "/posts/"+tt.postID+"/comments", tt.fields, tt.files...)
			req.SetPathValue("id", tt.postID)
			w := httptest.NewRecorder()

			handler.CreateComment(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus == http.StatusNotFound {
				var resp models.ErrorResponse
				testutil.AssertJSON(t, w, &resp)
				assert.Equal(t, "Post not found", resp.Message)
			}
		})
	}

	n := testutil.CountRows(t, env.store.DB(), "comments", "parent_id = $1", rootID)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, env.blobs.Len())
}

func TestListCommentsHandler(t *testing.T) {
	env := newTestEnv(t)
	handler := NewCommentHandler(env.store, env.blobs)
	postID, _ := testutil.CreateTestPost(t, env.store.DB(), "post")
	otherID, _ := testutil.CreateTestPost(t, env.store.DB(), "other")

	a := testutil.CreateTestComment(t, env.store.DB(), postID, nil, "a")
	b := testutil.CreateTestComment(t, env.store.DB(), postID, &a, "b")
	testutil.CreateTestComment(t, env.store.DB(), postID, &b, "c")
	testutil.CreateTestComment(t, env.store.DB(), postID, nil, "d")
	testutil.CreateTestComment(t, env.store.DB(), otherID, nil, "elsewhere")

	req := httptest.NewRequest("GET", fmt.Sprintf("/posts/%d/comments", postID), nil)
	req.SetPathValue("id", strconv.FormatInt(postID, 10))
	w := httptest.NewRecorder()

	handler.ListComments(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var roots []*thread.Node
	testutil.AssertJSON(t, w, &roots)
	require.Len(t, roots, 2)
	assert.Equal(t, "a", roots[0].Content)
	assert.Equal(t, "d", roots[1].Content)
	require.Len(t, roots[0].Replies, 1)
	require.Len(t, roots[0].Replies[0].Replies, 1)
	assert.Equal(t, "c", roots[0].Replies[0].Replies[0].Content)
	assert.Len(t, roots[1].Replies, 0)
}

func TestListCommentsEmpty(t *testing.T) {
	env := newTestEnv(t)
	handler := NewCommentHandler(env.store, env.blobs)

	req := httptest.NewRequest("GET", "/posts/42/comments", nil)
	req.SetPathValue("id", "42")
	w := httptest.NewRecorder()

	handler.ListComments(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	assert.JSONEq(t, "[]", w.Body.String())
}
