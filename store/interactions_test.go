// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-post/testutil"
)

func TestParseTargetAndDirection(t *testing.T) {
	target, err := ParseTarget("post")
	require.NoError(t, err)
	assert.Equal(t, TargetPost, target)

	target, err = ParseTarget("comment")
	require.NoError(t, err)
	assert.Equal(t, TargetComment, target)

	_, err = ParseTarget("users")
	assert.ErrorIs(t, err, ErrInvalid)

	dir, err := ParseDirection("unlike")
	require.NoError(t, err)
	assert.Equal(t, Unlike, dir)

	_, err = ParseDirection("love")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestAdjustLikes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	postID, _ := testutil.CreateTestPost(t, s.db, "post")
	commentID := testutil.CreateTestComment(t, s.db, postID, nil, "c")

	n, err := s.AdjustLikes(ctx, TargetPost, postID, Like)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = s.AdjustLikes(ctx, TargetComment, commentID, Like)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = s.Likes(ctx, TargetPost, postID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = s.AdjustLikes(ctx, TargetPost, 999, Like)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Likes(ctx, TargetComment, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.AdjustLikes(ctx, Target(42), postID, Like)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestAdjustLikes_UnlikeStopsAtZero(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	postID, _ := testutil.CreateTestPost(t, s.db, "post")

	_, err := s.AdjustLikes(ctx, TargetPost, postID, Like)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		n, err := s.AdjustLikes(ctx, TargetPost, postID, Unlike)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	}
}

// TestConcurrentLikes checks that k likes and m unlikes applied at the same
// time land as k - m when the counter never reaches zero.
func TestConcurrentLikes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	postID, _ := testutil.CreateTestPost(t, s.db, "post")

	const initial, k, m = 20, 15, 10
	require.NoError(t, s.UpdatePost(ctx, postID, "post", initial))

	var wg sync.WaitGroup
	for i := 0; i < k; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.AdjustLikes(ctx, TargetPost, postID, Like)
			assert.NoError(t, err)
		}()
	}
	for i := 0; i < m; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.AdjustLikes(ctx, TargetPost, postID, Unlike)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	n, err := s.Likes(ctx, TargetPost, postID)
	require.NoError(t, err)
	assert.Equal(t, int64(initial+k-m), n)
}

func TestVote(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, options := testutil.CreateTestPost(t, s.db, "poll", "A", "B")

	n, err := s.Vote(ctx, options[1])
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = s.Vote(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConcurrentVotes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, options := testutil.CreateTestPost(t, s.db, "poll", "A")

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Vote(ctx, options[0])
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	var votes int64
	require.NoError(t, s.db.Get(&votes, `SELECT votes FROM poll_options WHERE id = $1`, options[0]))
	assert.Equal(t, int64(3), votes)
}
