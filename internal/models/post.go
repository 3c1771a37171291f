// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Post is a forum post owned by its author and filed under one category.
// Votes and TagIDs are loaded eagerly by the post store so that
// projections can be computed without further queries.
type Post struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Content    string    `json:"content"`
	CategoryID int64     `json:"categoryId"`
	AuthorID   int64     `json:"authorId"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`

	// Loaded by the store, not columns of the posts table.
	Votes  []Vote  `json:"-"`
	TagIDs []int64 `json:"-"`
}

// Vote is one voter's signed score on one post. The votes table holds at
// most one row per (voter, post) pair; a re-cast replaces the prior value.
type Vote struct {
	ID        int64     `json:"id"`
	VoterID   int64     `json:"voterId"`
	PostID    int64     `json:"postId"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"-"`
}

// PostView is the role-conditional projection of a post. The base fields
// are always present; AuthorID only for admin viewers, MyScore and Mine
// only when any authenticated viewer is supplied. Absent fields must not
// appear in the serialized payload, hence the pointer + omitempty tags.
type PostView struct {
	ID         int64   `json:"id"`
	Content    string  `json:"content"`
	Name       string  `json:"name"`
	CategoryID int64   `json:"categoryId"`
	Score      int     `json:"score"`
	Tags       []int64 `json:"tags"`
	AuthorID   *int64  `json:"authorId,omitempty"`
	MyScore    *int    `json:"myScore,omitempty"`
	Mine       *bool   `json:"mine,omitempty"`
}

// VoteView is returned after a vote is cast: the post's fresh aggregate
// score alongside the voter's own current score.
type VoteView struct {
	PostID  int64 `json:"postId"`
	Score   int   `json:"score"`
	MyScore int   `json:"myScore"`
}
