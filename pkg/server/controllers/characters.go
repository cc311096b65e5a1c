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

// NewCharacters creates a new Characters controller
func NewCharacters(app *app.App) *Characters {
	return &Characters{
		app: app,
	}
}

// Characters is a characters controller
type Characters struct {
	app *app.App
}

// requireCharacterAccess loads a character, verifies ownership through its
// novel, and loads the novel for presentation.
func (c *Characters) requireCharacterAccess(w http.ResponseWriter, r *http.Request, characterUUID string) (database.Character, database.Novel, bool) {
	character, err := c.app.GetCharacterByUUID(characterUUID)
	if err != nil {
		handleError(w, "finding character", err)
		return character, database.Novel{}, false
	}

	if !requireChainAccess(c.app, w, r, permissions.NovelOwner, character.NovelID) {
		return character, database.Novel{}, false
	}

	novel, err := c.app.GetNovelByID(character.NovelID)
	if err != nil {
		handleError(w, "finding novel", err)
		return character, novel, false
	}

	return character, novel, true
}

type characterPayload struct {
	NovelUUID          string            `json:"novel_id"`
	Name               *string           `json:"name"`
	Avatar             *string           `json:"avatar"`
	PersonalData       database.Document `json:"personal_data"`
	PhysicalAppearance database.Document `json:"physical_appearance"`
	Psychology         database.Document `json:"psychology"`
	Goals              database.Document `json:"goals"`
	Past               database.Document `json:"past"`
	Present            database.Document `json:"present"`
	Future             database.Document `json:"future"`
	SpeechPatterns     database.Document `json:"speech_patterns"`
	Relationships      database.Document `json:"relationships"`
	AdditionalInfo     database.Document `json:"additional_info"`
}

// Create handles POST /api/characters
func (c *Characters) Create(w http.ResponseWriter, r *http.Request) {
	var payload characterPayload
	if err := parseRequestData(r, &payload); err != nil {
		handleError(w, "parsing payload", err)
		return
	}

	novel, ok := requireNovelAccess(c.app, w, r, payload.NovelUUID)
	if !ok {
		return
	}

	p := app.CreateCharacterParams{
		PersonalData:       payload.PersonalData,
		PhysicalAppearance: payload.PhysicalAppearance,
		Psychology:         payload.Psychology,
		Goals:              payload.Goals,
		Past:               payload.Past,
		Present:            payload.Present,
		Future:             payload.Future,
		SpeechPatterns:     payload.SpeechPatterns,
		Relationships:      payload.Relationships,
		AdditionalInfo:     payload.AdditionalInfo,
	}
	if payload.Name != nil {
		p.Name = *payload.Name
	}
	if payload.Avatar != nil {
		p.Avatar = *payload.Avatar
	}

	character, err := c.app.CreateCharacter(novel, p)
	if err != nil {
		handleError(w, "creating character", err)
		return
	}

	respondData(w, http.StatusCreated, "Character created successfully", presenters.PresentCharacter(character, novel))
}

// Index handles GET /api/characters/novel/{novelUUID}
func (c *Characters) Index(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	novel, ok := requireNovelAccess(c.app, w, r, vars["novelUUID"])
	if !ok {
		return
	}

	characters, err := c.app.ListCharacters(novel.ID)
	if err != nil {
		handleError(w, "listing characters", err)
		return
	}

	respondData(w, http.StatusOK, "", presenters.PresentCharacters(characters, novel))
}

// Show handles GET /api/characters/{characterUUID}
func (c *Characters) Show(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	character, novel, ok := c.requireCharacterAccess(w, r, vars["characterUUID"])
	if !ok {
		return
	}

	respondData(w, http.StatusOK, "", presenters.PresentCharacter(character, novel))
}

// Update handles PUT /api/characters/{characterUUID}
func (c *Characters) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	character, novel, ok := c.requireCharacterAccess(w, r, vars["characterUUID"])
	if !ok {
		return
	}

	var payload characterPayload
	if err := parseRequestData(r, &payload); err != nil {
		handleError(w, "parsing payload", err)
		return
	}

	updated, err := c.app.UpdateCharacter(character, app.UpdateCharacterParams{
		Name:               payload.Name,
		Avatar:             payload.Avatar,
		PersonalData:       payload.PersonalData,
		PhysicalAppearance: payload.PhysicalAppearance,
		Psychology:         payload.Psychology,
		Goals:              payload.Goals,
		Past:               payload.Past,
		Present:            payload.Present,
		Future:             payload.Future,
		SpeechPatterns:     payload.SpeechPatterns,
		Relationships:      payload.Relationships,
		AdditionalInfo:     payload.AdditionalInfo,
	})
	if err != nil {
		handleError(w, "updating character", err)
		return
	}

	respondData(w, http.StatusOK, "Character updated successfully", presenters.PresentCharacter(updated, novel))
}

// Delete handles DELETE /api/characters/{characterUUID}
func (c *Characters) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	character, _, ok := c.requireCharacterAccess(w, r, vars["characterUUID"])
	if !ok {
		return
	}

	if err := c.app.DeleteCharacter(character); err != nil {
		handleError(w, "deleting character", err)
		return
	}

	respondData(w, http.StatusOK, "Character deleted successfully", nil)
}
