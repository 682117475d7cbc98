// Copyright (c) 2026 The tweetarchive authors.
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers of the tweetarchive JSON API.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tweetarchive/internal/archive"
	"tweetarchive/internal/models"
	"tweetarchive/internal/query"
)

// maxPatchBody caps the size of a PATCH request body.
const maxPatchBody = 16 << 10

// Archive is the set of operations the API exposes.
type Archive interface {
	ListItems(ctx context.Context, params query.Params) ([]models.Item, error)
	PatchItem(ctx context.Context, id string, p archive.Patch) error
	ListCategories(ctx context.Context) ([]string, error)
	GetSummary(ctx context.Context) (*models.Summary, error)
}

// API groups the JSON handlers.
type API struct {
	archive Archive
}

// NewAPI creates a new API handler group.
func NewAPI(a Archive) *API {
	return &API{archive: a}
}

// ListTweets handles GET /tweets.
func (a *API) ListTweets(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := a.archive.ListItems(r.Context(), params)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// PatchTweet handles PATCH /tweets/{id}.
func (a *API) PatchTweet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing tweet id")
		return
	}

	var p archive.Patch
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPatchBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			err = archive.ErrInvalidPatch
		}
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if msg := validatePatch(p); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if err := a.archive.PatchItem(r.Context(), id, p); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Categories handles GET /categories.
func (a *API) Categories(w http.ResponseWriter, r *http.Request) {
	names, err := a.archive.ListCategories(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

// Info handles GET /info. The body is the summary object, or null when
// the database produced no row.
func (a *API) Info(w http.ResponseWriter, r *http.Request) {
	summary, err := a.archive.GetSummary(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// fail logs err and writes the matching error response.
func (a *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := classify(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeError(w, status, msg)
}
