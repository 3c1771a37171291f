// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package forum implements the role-aware content projection and
// aggregation engine: it decides which fields of a post a given viewer
// may see, and orchestrates post lifecycle operations with their tag
// links and vote ledger.
package forum

import "campusboard/internal/models"

// ProjectPost maps a loaded post snapshot to the shape the given viewer
// is allowed to see. A nil viewer is an anonymous request.
//
// The full view is computed once and then redacted, so privileged and
// restricted responses can never drift apart:
//
//   - id, content, name, categoryId, score and tags are always present;
//   - authorId survives redaction only for admin viewers;
//   - myScore and mine survive for any authenticated viewer.
//
// Pure function over the snapshot: the post's votes and tag links must
// already be loaded.
func ProjectPost(post *models.Post, viewer *models.User) models.PostView {
	view := models.PostView{
		ID:         post.ID,
		Content:    post.Content,
		Name:       post.Name,
		CategoryID: post.CategoryID,
		Score:      sumScores(post.Votes),
		Tags:       post.TagIDs,
		AuthorID:   &post.AuthorID,
	}
	if view.Tags == nil {
		view.Tags = []int64{}
	}

	if viewer != nil {
		myScore := 0
		for _, v := range post.Votes {
			if v.VoterID == viewer.ID {
				myScore = v.Score
				break
			}
		}
		mine := post.AuthorID == viewer.ID
		view.MyScore = &myScore
		view.Mine = &mine
	}

	return redact(view, viewer)
}

// redact strips the fields the viewer's capabilities do not cover.
// Only admins see who authored a post; the author themselves does not,
// unless they happen to be an admin.
func redact(view models.PostView, viewer *models.User) models.PostView {
	if viewer == nil || !viewer.Admin {
		view.AuthorID = nil
	}
	if viewer == nil {
		view.MyScore = nil
		view.Mine = nil
	}
	return view
}

// sumScores returns the aggregate score of a vote list, 0 when empty.
func sumScores(votes []models.Vote) int {
	sum := 0
	for _, v := range votes {
		sum += v.Score
	}
	return sum
}
