// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package thread rebuilds reply trees from the flat comment rows of a post.
package thread

import "github.com/danielhkuo/quickly-post/models"

// Node is a comment with its direct replies in insertion order.
type Node struct {
	models.Comment
	Replies []*Node `json:"replies"`
}

// Build returns the root comments of a post, each carrying its replies.
//
// A comment whose parent is not in comments is a root. So is a comment
// whose parent chain loops back to itself. Every input comment appears in
// the output exactly once, and replies keep the order of the input.
func Build(comments []models.Comment) []*Node {
	nodes := make(map[int64]*Node, len(comments))
	order := make([]int64, 0, len(comments))
	for _, c := range comments {
		if _, dup := nodes[c.ID]; dup {
			continue
		}
		nodes[c.ID] = &Node{Comment: c, Replies: []*Node{}}
		order = append(order, c.ID)
	}

	looped := loops(nodes, order)
	roots := []*Node{}
	for _, id := range order {
		node := nodes[id]
		parent, ok := parentOf(nodes, node)
		if ok && !looped[id] {
			parent.Replies = append(parent.Replies, node)
		} else {
			roots = append(roots, node)
		}
	}
	return roots
}

// parentOf returns n's parent when it was loaded.
func parentOf(nodes map[int64]*Node, n *Node) (*Node, bool) {
	if n.ParentID == nil {
		return nil, false
	}
	parent, ok := nodes[*n.ParentID]
	return parent, ok
}

// loops returns the ids whose parent chain leads back to themselves. Each
// node is walked once: a walk stops at the first node already finished or
// already on the current path, and only the latter closes a loop.
func loops(nodes map[int64]*Node, order []int64) map[int64]bool {
	const (
		unvisited = iota
		walking
		finished
	)
	state := make(map[int64]int, len(nodes))
	looped := make(map[int64]bool)
	var path []*Node

	for _, id := range order {
		path = path[:0]
		cur := nodes[id]
		for {
			if st := state[cur.ID]; st != unvisited {
				if st == walking {
					for i := len(path) - 1; i >= 0; i-- {
						looped[path[i].ID] = true
						if path[i].ID == cur.ID {
							break
						}
					}
				}
				break
			}
			state[cur.ID] = walking
			path = append(path, cur)

			parent, ok := parentOf(nodes, cur)
			if !ok {
				break
			}
			cur = parent
		}
		for _, n := range path {
			state[n.ID] = finished
		}
	}
	return looped
}
