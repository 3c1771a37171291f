// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"campusboard/internal/apperrors"
	"campusboard/internal/cache"
	"campusboard/internal/models"
	"campusboard/internal/store"
)

// Categories groups the category HTTP handlers. The rendered tree is
// cached in Valkey and invalidated on every category mutation.
type Categories struct {
	categories *store.CategoryStore
	treeCache  *cache.TreeCache
}

// NewCategories creates a new Categories handler group.
func NewCategories(categories *store.CategoryStore, treeCache *cache.TreeCache) *Categories {
	return &Categories{categories: categories, treeCache: treeCache}
}

type categoryRequest struct {
	Name     string `json:"name"`
	ParentID *int64 `json:"parentId"`
}

// List returns all categories as a flat list.
func (c *Categories) List(w http.ResponseWriter, r *http.Request) {
	cats, err := c.categories.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

// Get returns a single category.
func (c *Categories) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid category id")
		return
	}

	cat, err := c.categories.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if cat == nil {
		writeError(w, apperrors.New(apperrors.CodeNotFound, "category not found"))
		return
	}

	writeJSON(w, http.StatusOK, cat)
}

// Tree returns the full category hierarchy as nested nodes. The serialized
// tree is served from Valkey when cached.
func (c *Categories) Tree(w http.ResponseWriter, r *http.Request) {
	if data, ok := c.treeCache.Get(r.Context()); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
		return
	}

	tree, err := c.categories.Tree(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := json.Marshal(tree)
	if err != nil {
		writeError(w, err)
		return
	}
	c.treeCache.Set(r.Context(), data)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Path returns the chain of categories from a root down to the target.
func (c *Categories) Path(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid category id")
		return
	}

	path, err := c.categories.Path(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, path)
}

// Create adds a new category. Admin only.
func (c *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if msg := validateLabel(req.Name); msg != "" {
		badRequest(w, msg)
		return
	}

	cat, err := c.categories.Create(r.Context(), req.Name, req.ParentID)
	if err != nil {
		writeError(w, err)
		return
	}

	c.treeCache.Invalidate(r.Context())
	slog.Info("category created", "category", cat.ID, "name", cat.Name)
	writeJSON(w, http.StatusCreated, cat)
}

// Update renames or re-parents a category. Admin only.
func (c *Categories) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid category id")
		return
	}

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if msg := validateLabel(req.Name); msg != "" {
		badRequest(w, msg)
		return
	}

	cat, err := c.categories.Update(r.Context(), &models.Category{
		ID:       id,
		Name:     req.Name,
		ParentID: req.ParentID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	c.treeCache.Invalidate(r.Context())
	writeJSON(w, http.StatusOK, cat)
}

// Delete removes a category. Children are re-parented to the root by the
// database (parent references are cleared). Admin only.
func (c *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid category id")
		return
	}

	if err := c.categories.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	c.treeCache.Invalidate(r.Context())
	slog.Info("category deleted", "category", id)
	w.WriteHeader(http.StatusNoContent)
}
