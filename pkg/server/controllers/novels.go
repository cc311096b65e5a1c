/* Copyright 2025 Plume Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package controllers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/plumeapp/plume/pkg/server/app"
	"github.com/plumeapp/plume/pkg/server/presenters"
)

// NewNovels creates a new Novels controller
func NewNovels(app *app.App) *Novels {
	return &Novels{
		app: app,
	}
}

// Novels is a novels controller
type Novels struct {
	app *app.App
}

// Index handles GET /api/novels
func (n *Novels) Index(w http.ResponseWriter, r *http.Request) {
	user := authUser(r)

	novels, err := n.app.ListNovels(user.ID)
	if err != nil {
		handleError(w, "listing novels", err)
		return
	}

	respondData(w, http.StatusOK, "", presenters.PresentNovels(novels))
}

type novelPayload struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	CoverImage  *string `json:"cover_image"`
}

// Create handles POST /api/novels
func (n *Novels) Create(w http.ResponseWriter, r *http.Request) {
	user := authUser(r)

	var payload novelPayload
	if err := parseRequestData(r, &payload); err != nil {
		handleError(w, "parsing payload", err)
		return
	}

	p := app.CreateNovelParams{}
	if payload.Title != nil {
		p.Title = *payload.Title
	}
	if payload.Description != nil {
		p.Description = *payload.Description
	}
	if payload.CoverImage != nil {
		p.CoverImage = *payload.CoverImage
	}

	novel, err := n.app.CreateNovel(*user, p)
	if err != nil {
		handleError(w, "creating novel", err)
		return
	}

	respondData(w, http.StatusCreated, "Novel created successfully", presenters.PresentNovel(novel))
}

// Show handles GET /api/novels/{novelUUID}
func (n *Novels) Show(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	novel, ok := requireNovelAccess(n.app, w, r, vars["novelUUID"])
	if !ok {
		return
	}

	respondData(w, http.StatusOK, "", presenters.PresentNovel(novel))
}

// Update handles PUT /api/novels/{novelUUID}
func (n *Novels) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	novel, ok := requireNovelAccess(n.app, w, r, vars["novelUUID"])
	if !ok {
		return
	}

	var payload novelPayload
	if err := parseRequestData(r, &payload); err != nil {
		handleError(w, "parsing payload", err)
		return
	}

	updated, err := n.app.UpdateNovel(novel, app.UpdateNovelParams{
		Title:       payload.Title,
		Description: payload.Description,
		CoverImage:  payload.CoverImage,
	})
	if err != nil {
		handleError(w, "updating novel", err)
		return
	}

	respondData(w, http.StatusOK, "Novel updated successfully", presenters.PresentNovel(updated))
}

// Delete handles DELETE /api/novels/{novelUUID}
func (n *Novels) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	novel, ok := requireNovelAccess(n.app, w, r, vars["novelUUID"])
	if !ok {
		return
	}

	if err := n.app.DeleteNovel(novel); err != nil {
		handleError(w, "deleting novel", err)
		return
	}

	respondData(w, http.StatusOK, "Novel deleted successfully", nil)
}

// Stats handles GET /api/novels/{novelUUID}/stats
func (n *Novels) Stats(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	novel, ok := requireNovelAccess(n.app, w, r, vars["novelUUID"])
	if !ok {
		return
	}

	stats, err := n.app.GetNovelStats(novel)
	if err != nil {
		handleError(w, "getting novel stats", err)
		return
	}

	respondData(w, http.StatusOK, "", stats)
}
