package handlers

import (
	"net/http"

	"campusboard/internal/apperrors"
	"campusboard/internal/store"
)

// Tags groups the tag HTTP handlers.
type Tags struct {
	tags *store.TagStore
}

// NewTags creates a new Tags handler group.
func NewTags(tags *store.TagStore) *Tags {
	return &Tags{tags: tags}
}

type tagRequest struct {
	Name string `json:"name"`
}

// List returns all tags.
func (t *Tags) List(w http.ResponseWriter, r *http.Request) {
	tags, err := t.tags.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

// Get returns a single tag.
func (t *Tags) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid tag id")
		return
	}

	tag, err := t.tags.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if tag == nil {
		writeError(w, apperrors.New(apperrors.CodeNotFound, "tag not found"))
		return
	}

	writeJSON(w, http.StatusOK, tag)
}

// Create adds a new tag. Admin only.
func (t *Tags) Create(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if msg := validateLabel(req.Name); msg != "" {
		badRequest(w, msg)
		return
	}

	tag, err := t.tags.Create(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tag)
}

// Update renames a tag. Admin only.
func (t *Tags) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid tag id")
		return
	}

	var req tagRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if msg := validateLabel(req.Name); msg != "" {
		badRequest(w, msg)
		return
	}

	tag, err := t.tags.Update(r.Context(), id, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tag)
}

// Delete removes a tag. Links to posts are dropped by the database. Admin only.
func (t *Tags) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid tag id")
		return
	}

	if err := t.tags.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
