// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"campusboard/internal/forum"
	"campusboard/internal/middleware"
)

// Posts groups the post and vote HTTP handlers.
type Posts struct {
	svc *forum.Service
}

// NewPosts creates a new Posts handler group.
func NewPosts(svc *forum.Service) *Posts {
	return &Posts{svc: svc}
}

type postRequest struct {
	Name       *string `json:"name"`
	Content    *string `json:"content"`
	CategoryID *int64  `json:"categoryId"`
	Tags       []int64 `json:"tags"`
}

// List returns all posts shaped for the current viewer.
func (p *Posts) List(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.ViewerFromCtx(r.Context())

	views, err := p.svc.GetAll(r.Context(), viewer)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

// Get returns a single post shaped for the current viewer.
func (p *Posts) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid post id")
		return
	}

	viewer := middleware.ViewerFromCtx(r.Context())

	view, err := p.svc.GetOne(r.Context(), id, viewer)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Create creates a new post authored by the current viewer.
func (p *Posts) Create(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Name == nil || req.Content == nil || req.CategoryID == nil {
		badRequest(w, "name, content and categoryId are required")
		return
	}
	if msg := validateNewPost(*req.Name, *req.Content); msg != "" {
		badRequest(w, msg)
		return
	}

	author := middleware.ViewerFromCtx(r.Context())

	view, err := p.svc.Create(r.Context(), author, forum.PostProps{
		Name:       req.Name,
		Content:    req.Content,
		CategoryID: req.CategoryID,
		Tags:       req.Tags,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("post created", "post", view.ID, "author", author.Username)
	writeJSON(w, http.StatusCreated, view)
}

// Edit updates a post. Only its author or an admin may edit it. Fields
// absent from the body are left untouched; "tags": [] clears the tag set.
func (p *Posts) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid post id")
		return
	}

	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Name != nil || req.Content != nil {
		name, content := "", ""
		if req.Name != nil {
			name = *req.Name
		}
		if req.Content != nil {
			content = *req.Content
		}
		if msg := validatePostFields(name, content); msg != "" {
			badRequest(w, msg)
			return
		}
	}

	actor := middleware.ViewerFromCtx(r.Context())

	view, err := p.svc.Edit(r.Context(), id, forum.PostProps{
		Name:       req.Name,
		Content:    req.Content,
		CategoryID: req.CategoryID,
		Tags:       req.Tags,
	}, actor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Delete removes a post. Only its author or an admin may delete it.
func (p *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid post id")
		return
	}

	actor := middleware.ViewerFromCtx(r.Context())

	if err := p.svc.Delete(r.Context(), id, actor); err != nil {
		writeError(w, err)
		return
	}

	slog.Info("post deleted", "post", id, "actor", actor.Username)
	w.WriteHeader(http.StatusNoContent)
}

type voteRequest struct {
	PostID int64 `json:"postId"`
	Score  int   `json:"score"`
}

// CastVote records or replaces the viewer's vote on a post.
func (p *Posts) CastVote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	viewer := middleware.ViewerFromCtx(r.Context())

	view, err := p.svc.CastVote(r.Context(), viewer, req.PostID, req.Score)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}
