// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package thread

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-post/models"
)

func c(id int64, parent ...int64) models.Comment {
	cm := models.Comment{ID: id, PostID: 1, Content: "c"}
	if len(parent) > 0 {
		p := parent[0]
		cm.ParentID = &p
	}
	return cm
}

// shape renders a forest as nested ids for easy comparison.
func shape(nodes []*Node) []any {
	out := []any{}
	for _, n := range nodes {
		if len(n.Replies) == 0 {
			out = append(out, n.ID)
		} else {
			out = append(out, map[int64][]any{n.ID: shape(n.Replies)})
		}
	}
	return out
}

// count returns the number of nodes in the forest.
func count(roots []*Node) int {
	n := 0
	for _, r := range roots {
		n += 1 + count(r.Replies)
	}
	return n
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		comments []models.Comment
		want     []any
	}{
		{
			name:     "empty",
			comments: nil,
			want:     []any{},
		},
		{
			name:     "one root one reply",
			comments: []models.Comment{c(1), c(2, 1)},
			want:     []any{map[int64][]any{1: {int64(2)}}},
		},
		{
			name:     "replies keep input order",
			comments: []models.Comment{c(1), c(2), c(3, 1), c(4, 2), c(5, 1)},
			want: []any{
				map[int64][]any{1: {int64(3), int64(5)}},
				map[int64][]any{2: {int64(4)}},
			},
		},
		{
			name:     "nested replies",
			comments: []models.Comment{c(1), c(2, 1), c(3, 2)},
			want:     []any{map[int64][]any{1: {map[int64][]any{2: {int64(3)}}}}},
		},
		{
			name:     "orphan becomes root",
			comments: []models.Comment{c(1), c(2, 99)},
			want:     []any{int64(1), int64(2)},
		},
		{
			name:     "child listed before parent still attaches",
			comments: []models.Comment{c(2, 1), c(1)},
			want:     []any{map[int64][]any{1: {int64(2)}}},
		},
		{
			name:     "self parent becomes root",
			comments: []models.Comment{c(1, 1)},
			want:     []any{int64(1)},
		},
		{
			name:     "two-comment loop keeps both as roots",
			comments: []models.Comment{c(1, 2), c(2, 1)},
			want:     []any{int64(1), int64(2)},
		},
		{
			name:     "reply to a comment on a loop",
			comments: []models.Comment{c(1, 2), c(2, 1), c(3, 1)},
			want:     []any{map[int64][]any{1: {int64(3)}}, int64(2)},
		},
		{
			name:     "chain hanging off a three-comment loop",
			comments: []models.Comment{c(4, 3), c(1, 3), c(2, 1), c(3, 2), c(5, 4)},
			want: []any{
				int64(1), int64(2),
				map[int64][]any{3: {map[int64][]any{4: {int64(5)}}}},
			},
		},
		{
			name:     "duplicate rows appear once",
			comments: []models.Comment{c(1), c(1), c(2, 1)},
			want:     []any{map[int64][]any{1: {int64(2)}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Build(tt.comments)
			assert.Equal(t, tt.want, shape(got))
		})
	}
}

func TestBuild_NoDropNoDuplicate(t *testing.T) {
	var comments []models.Comment
	for i := int64(1); i <= 200; i++ {
		switch {
		case i%7 == 0:
			comments = append(comments, c(i, i+1000)) // orphan
		case i%3 == 0:
			comments = append(comments, c(i, i-1))
		case i%5 == 0:
			comments = append(comments, c(i, i/5))
		default:
			comments = append(comments, c(i))
		}
	}

	roots := Build(comments)
	assert.Equal(t, len(comments), count(roots))

	seen := map[int64]int{}
	var walk func([]*Node, *int64)
	walk = func(nodes []*Node, parent *int64) {
		for _, n := range nodes {
			seen[n.ID]++
			if parent != nil {
				require.NotNil(t, n.ParentID)
				assert.Equal(t, *parent, *n.ParentID, "node %d under wrong parent", n.ID)
			}
			id := n.ID
			walk(n.Replies, &id)
		}
	}
	walk(roots, nil)

	for _, cm := range comments {
		assert.Equal(t, 1, seen[cm.ID], "comment %d", cm.ID)
	}
}

func TestBuild_DeepChain(t *testing.T) {
	const depth = 50000
	comments := []models.Comment{c(1)}
	for i := int64(2); i <= depth; i++ {
		comments = append(comments, c(i, i-1))
	}

	done := make(chan []*Node, 1)
	go func() { done <- Build(comments) }()

	var roots []*Node
	select {
	case roots = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("building a deep reply chain took too long")
	}

	require.Len(t, roots, 1)
	n, levels := roots[0], 1
	for len(n.Replies) > 0 {
		require.Len(t, n.Replies, 1)
		n = n.Replies[0]
		levels++
	}
	assert.Equal(t, depth, levels)
	assert.Equal(t, int64(depth), n.ID)
}

func TestBuild_DeepChainReversed(t *testing.T) {
	var comments []models.Comment
	for i := int64(20000); i >= 2; i-- {
		comments = append(comments, c(i, i-1))
	}
	comments = append(comments, c(1))

	roots := Build(comments)
	require.Len(t, roots, 1)
	assert.Equal(t, int64(1), roots[0].ID)
	assert.Equal(t, len(comments), count(roots))
}

func TestBuild_Deterministic(t *testing.T) {
	comments := []models.Comment{c(1), c(2, 1), c(3, 1), c(4, 77), c(5, 2), c(6)}

	first, err := json.Marshal(Build(comments))
	require.NoError(t, err)
	second, err := json.Marshal(Build(comments))
	require.NoError(t, err)

	assert.JSONEq(t, string(first), string(second))
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	comments := []models.Comment{c(1), c(2, 1)}
	before := append([]models.Comment(nil), comments...)

	Build(comments)
	assert.Equal(t, before, comments)
}

func TestNodeJSON(t *testing.T) {
	out, err := json.Marshal(Build([]models.Comment{c(1)}))
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, float64(1), decoded[0]["id"])
	assert.Equal(t, []any{}, decoded[0]["replies"], "leaf replies encode as []")
}
