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
	"github.com/plumeapp/plume/pkg/server/database"
	"github.com/plumeapp/plume/pkg/server/permissions"
	"github.com/plumeapp/plume/pkg/server/presenters"
)

// NewNotes creates a new Notes controller
func NewNotes(app *app.App) *Notes {
	return &Notes{
		app: app,
	}
}

// Notes is a notes controller
type Notes struct {
	app *app.App
}

func (n *Notes) requireNoteAccess(w http.ResponseWriter, r *http.Request, noteUUID string) (database.Note, database.Novel, bool) {
	note, err := n.app.GetNoteByUUID(noteUUID)
	if err != nil {
		handleError(w, "finding note", err)
		return note, database.Novel{}, false
	}

	if !requireChainAccess(n.app, w, r, permissions.NovelOwner, note.NovelID) {
		return note, database.Novel{}, false
	}

	novel, err := n.app.GetNovelByID(note.NovelID)
	if err != nil {
		handleError(w, "finding novel", err)
		return note, novel, false
	}

	return note, novel, true
}

type notePayload struct {
	NovelUUID string  `json:"novel_id"`
	Type      *string `json:"type"`
	Title     *string `json:"title"`
	Content   *string `json:"content"`
}

// Create handles POST /api/notes
func (n *Notes) Create(w http.ResponseWriter, r *http.Request) {
	var payload notePayload
	if err := parseRequestData(r, &payload); err != nil {
		handleError(w, "parsing payload", err)
		return
	}

	novel, ok := requireNovelAccess(n.app, w, r, payload.NovelUUID)
	if !ok {
		return
	}

	p := app.CreateNoteParams{}
	if payload.Type != nil {
		p.Type = *payload.Type
	}
	if payload.Title != nil {
		p.Title = *payload.Title
	}
	if payload.Content != nil {
		p.Content = *payload.Content
	}

	note, err := n.app.CreateNote(novel, p)
	if err != nil {
		handleError(w, "creating note", err)
		return
	}

	respondData(w, http.StatusCreated, "Note created successfully", presenters.PresentNote(note, novel))
}

type listNotesQuery struct {
	Type string `schema:"type"`
}

// Index handles GET /api/notes/novel/{novelUUID}. An optional type query
// parameter filters the notes by their type.
func (n *Notes) Index(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	novel, ok := requireNovelAccess(n.app, w, r, vars["novelUUID"])
	if !ok {
		return
	}

	var query listNotesQuery
	if err := parseQuery(r, &query); err != nil {
		handleError(w, "parsing query", err)
		return
	}

	notes, err := n.app.ListNotes(novel.ID, query.Type)
	if err != nil {
		handleError(w, "listing notes", err)
		return
	}

	respondData(w, http.StatusOK, "", presenters.PresentNotes(notes, novel))
}

// Update handles PUT /api/notes/{noteUUID}
func (n *Notes) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	note, novel, ok := n.requireNoteAccess(w, r, vars["noteUUID"])
	if !ok {
		return
	}

	var payload notePayload
	if err := parseRequestData(r, &payload); err != nil {
		handleError(w, "parsing payload", err)
		return
	}

	updated, err := n.app.UpdateNote(note, app.UpdateNoteParams{
		Type:    payload.Type,
		Title:   payload.Title,
		Content: payload.Content,
	})
	if err != nil {
		handleError(w, "updating note", err)
		return
	}

	respondData(w, http.StatusOK, "Note updated successfully", presenters.PresentNote(updated, novel))
}

// Delete handles DELETE /api/notes/{noteUUID}
func (n *Notes) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	note, _, ok := n.requireNoteAccess(w, r, vars["noteUUID"])
	if !ok {
		return
	}

	if err := n.app.DeleteNote(note); err != nil {
		handleError(w, "deleting note", err)
		return
	}

	respondData(w, http.StatusOK, "Note deleted successfully", nil)
}
