// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the CampusBoard API.
// Handlers are grouped by concern (auth, posts, categories, tags) and
// receive their dependencies through the handler struct.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"campusboard/internal/apperrors"
)

// writeJSON serializes v to the response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", "error", err)
	}
}

// errorResponse is the JSON body for every error status.
type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps an application error to an HTTP status and writes
// the JSON error body. Unrecognized errors become 500s with a generic
// message so internals never leak to clients.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := "internal server error"

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		msg = appErr.Message
		switch appErr.Code {
		case apperrors.CodeNotFound:
			status = http.StatusNotFound
		case apperrors.CodeForbidden:
			status = http.StatusForbidden
		case apperrors.CodeUnauthenticated:
			status = http.StatusUnauthorized
		case apperrors.CodeInvalidScore, apperrors.CodeUnknownTag:
			status = http.StatusBadRequest
		case apperrors.CodeCycleDetected:
			// A cycle means corrupted reference data, not a bad request.
			status = http.StatusInternalServerError
		default:
			msg = "internal server error"
		}
	}

	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
	}

	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON parses the request body into v, limiting its size.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// pathID parses the given chi URL parameter as an int64 id.
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

// badRequest writes a 400 with the given message.
func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}
