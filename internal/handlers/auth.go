// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"campusboard/internal/apperrors"
	"campusboard/internal/middleware"
	"campusboard/internal/store"
	"campusboard/internal/token"
)

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	users  *store.UserStore
	tokens *token.Manager
}

// NewAuth creates a new Auth handler group.
func NewAuth(users *store.UserStore, tokens *token.Manager) *Auth {
	return &Auth{users: users, tokens: tokens}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Register creates a new user account.
func (a *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if msg := validateCredentials(req.Username, req.Password); msg != "" {
		badRequest(w, msg)
		return
	}

	existing, err := a.users.FindByUsername(r.Context(), req.Username)
	if err != nil {
		writeError(w, err)
		return
	}
	if existing != nil {
		writeJSON(w, http.StatusConflict, errorResponse{Error: "username already taken"})
		return
	}

	user, err := a.users.Create(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("user registered", "username", user.Username)
	writeJSON(w, http.StatusCreated, user.View())
}

// Login validates credentials and issues an access token.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	user, err := a.users.FindByUsername(r.Context(), req.Username)
	if err != nil {
		writeError(w, err)
		return
	}
	if user == nil || !a.users.CheckPassword(user, req.Password) {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid username or password"})
		return
	}

	access, err := a.tokens.Issue(user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: access})
}

// Me returns the authenticated user's own profile.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.ViewerFromCtx(r.Context())
	writeJSON(w, http.StatusOK, viewer.View())
}

type setAdminRequest struct {
	Admin bool `json:"admin"`
}

// SetAdmin grants or revokes a user's admin flag. Admin only.
func (a *Auth) SetAdmin(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	var req setAdminRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	if err := a.users.SetAdmin(r.Context(), username, req.Admin); err != nil {
		writeError(w, err)
		return
	}

	user, err := a.users.FindByUsername(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}
	if user == nil {
		writeError(w, apperrors.New(apperrors.CodeNotFound, "user not found"))
		return
	}

	slog.Info("admin flag updated", "username", username, "admin", req.Admin)
	writeJSON(w, http.StatusOK, user.View())
}
