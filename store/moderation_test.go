// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-post/models"
	"github.com/danielhkuo/quickly-post/testutil"
)

func TestDeletesAreIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	postID, options := testutil.CreateTestPost(t, s.db, "post", "A")
	commentID := testutil.CreateTestComment(t, s.db, postID, nil, "c")
	stickerID := testutil.CreateTestSticker(t, s.db, "http://x/s.png")

	deletes := []struct {
		name string
		fn   func() error
	}{
		{"comment", func() error { return s.DeleteComment(ctx, commentID) }},
		{"poll option", func() error { return s.DeletePollOption(ctx, options[0]) }},
		{"sticker", func() error { return s.DeleteSticker(ctx, stickerID) }},
		{"post", func() error { return s.DeletePost(ctx, postID) }},
	}

	for _, d := range deletes {
		t.Run(d.name, func(t *testing.T) {
			require.NoError(t, d.fn())
			require.NoError(t, d.fn(), "second delete must succeed")
		})
	}

	assert.Equal(t, 0, testutil.CountRows(t, s.db, "posts", ""))
	assert.Equal(t, 0, testutil.CountRows(t, s.db, "stickers", ""))
}

func TestDeletePost_CascadesToChildren(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	postID, _ := testutil.CreateTestPost(t, s.db, "post", "A", "B")
	testutil.CreateTestComment(t, s.db, postID, nil, "c")

	require.NoError(t, s.DeletePost(ctx, postID))

	assert.Equal(t, 0, testutil.CountRows(t, s.db, "poll_options", ""))
	assert.Equal(t, 0, testutil.CountRows(t, s.db, "comments", ""))
}

func TestUpdates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	postID, options := testutil.CreateTestPost(t, s.db, "post", "A")
	commentID := testutil.CreateTestComment(t, s.db, postID, nil, "c")

	require.NoError(t, s.UpdatePost(ctx, postID, "edited", 7))
	require.NoError(t, s.UpdateComment(ctx, commentID, "edited comment"))
	require.NoError(t, s.UpdatePollOption(ctx, options[0], "A+"))

	assert.ErrorIs(t, s.UpdatePost(ctx, postID, "x", -1), ErrInvalid)
	assert.NoError(t, s.UpdatePost(ctx, 999, "ghost", 0), "missing id is a no-op")

	dump, err := s.Dump(ctx)
	require.NoError(t, err)
	require.Len(t, dump.Posts, 1)
	assert.Equal(t, "edited", dump.Posts[0].Content)
	assert.Equal(t, int64(7), dump.Posts[0].Likes)
	require.Len(t, dump.Comments, 1)
	assert.Equal(t, "edited comment", dump.Comments[0].Content)
	require.Len(t, dump.PollOptions, 1)
	assert.Equal(t, "A+", dump.PollOptions[0].OptionText)
	assert.Empty(t, dump.Stickers)
	assert.Equal(t, models.DefaultNotice, dump.Notice)
}

func TestDump_Empty(t *testing.T) {
	s := newTestStore(t)

	dump, err := s.Dump(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, dump.Posts)
	assert.NotNil(t, dump.Comments)
	assert.NotNil(t, dump.PollOptions)
	assert.NotNil(t, dump.Stickers)
}
