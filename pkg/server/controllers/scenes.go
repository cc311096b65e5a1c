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

// NewScenes creates a new Scenes controller
func NewScenes(app *app.App) *Scenes {
	return &Scenes{
		app: app,
	}
}

// Scenes is a scenes controller
type Scenes struct {
	app *app.App
}

func (s *Scenes) requireSceneAccess(w http.ResponseWriter, r *http.Request, sceneUUID string) (database.Scene, database.Novel, bool) {
	scene, err := s.app.GetSceneByUUID(sceneUUID)
	if err != nil {
		handleError(w, "finding scene", err)
		return scene, database.Novel{}, false
	}

	if !requireChainAccess(s.app, w, r, permissions.NovelOwner, scene.NovelID) {
		return scene, database.Novel{}, false
	}

	novel, err := s.app.GetNovelByID(scene.NovelID)
	if err != nil {
		handleError(w, "finding novel", err)
		return scene, novel, false
	}

	return scene, novel, true
}

type scenePayload struct {
	NovelUUID        string            `json:"novel_id"`
	SceneNumber      *int              `json:"scene_number"`
	Location         *string           `json:"location"`
	TimeOfDay        *string           `json:"time_of_day"`
	Characters       database.List     `json:"characters"`
	POV              *string           `json:"pov"`
	Objective        *string           `json:"objective"`
	Description      *string           `json:"description"`
	LanguageFeatures database.Document `json:"language_features"`
	Themes           database.List     `json:"themes"`
	DramaticBeats    database.List     `json:"dramatic_beats"`
	PlotConnection   *string           `json:"plot_connection"`
	EmotionalState   *string           `json:"emotional_state"`
	Notes            *string           `json:"notes"`
	Status           *string           `json:"status"`
}

// Create handles POST /api/scenes
func (s *Scenes) Create(w http.ResponseWriter, r *http.Request) {
	var payload scenePayload
	if err := parseRequestData(r, &payload); err != nil {
		handleError(w, "parsing payload", err)
		return
	}

	novel, ok := requireNovelAccess(s.app, w, r, payload.NovelUUID)
	if !ok {
		return
	}

	p := app.CreateSceneParams{
		Characters:       payload.Characters,
		LanguageFeatures: payload.LanguageFeatures,
		Themes:           payload.Themes,
		DramaticBeats:    payload.DramaticBeats,
	}
	if payload.SceneNumber != nil {
		p.SceneNumber = *payload.SceneNumber
	}
	if payload.Location != nil {
		p.Location = *payload.Location
	}
	if payload.TimeOfDay != nil {
		p.TimeOfDay = *payload.TimeOfDay
	}
	if payload.POV != nil {
		p.POV = *payload.POV
	}
	if payload.Objective != nil {
		p.Objective = *payload.Objective
	}
	if payload.Description != nil {
		p.Description = *payload.Description
	}
	if payload.PlotConnection != nil {
		p.PlotConnection = *payload.PlotConnection
	}
	if payload.EmotionalState != nil {
		p.EmotionalState = *payload.EmotionalState
	}
	if payload.Notes != nil {
		p.Notes = *payload.Notes
	}
	if payload.Status != nil {
		p.Status = *payload.Status
	}

	scene, err := s.app.CreateScene(novel, p)
	if err != nil {
		handleError(w, "creating scene", err)
		return
	}

	respondData(w, http.StatusCreated, "Scene created successfully", presenters.PresentScene(scene, novel))
}

// Index handles GET /api/scenes/novel/{novelUUID}
func (s *Scenes) Index(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	novel, ok := requireNovelAccess(s.app, w, r, vars["novelUUID"])
	if !ok {
		return
	}

	scenes, err := s.app.ListScenes(novel.ID)
	if err != nil {
		handleError(w, "listing scenes", err)
		return
	}

	respondData(w, http.StatusOK, "", presenters.PresentScenes(scenes, novel))
}

// Update handles PUT /api/scenes/{sceneUUID}
func (s *Scenes) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	scene, novel, ok := s.requireSceneAccess(w, r, vars["sceneUUID"])
	if !ok {
		return
	}

	var payload scenePayload
	if err := parseRequestData(r, &payload); err != nil {
		handleError(w, "parsing payload", err)
		return
	}

	updated, err := s.app.UpdateScene(scene, app.UpdateSceneParams{
		SceneNumber:      payload.SceneNumber,
		Location:         payload.Location,
		TimeOfDay:        payload.TimeOfDay,
		Characters:       payload.Characters,
		POV:              payload.POV,
		Objective:        payload.Objective,
		Description:      payload.Description,
		LanguageFeatures: payload.LanguageFeatures,
		Themes:           payload.Themes,
		DramaticBeats:    payload.DramaticBeats,
		PlotConnection:   payload.PlotConnection,
		EmotionalState:   payload.EmotionalState,
		Notes:            payload.Notes,
		Status:           payload.Status,
	})
	if err != nil {
		handleError(w, "updating scene", err)
		return
	}

	respondData(w, http.StatusOK, "Scene updated successfully", presenters.PresentScene(updated, novel))
}

// Delete handles DELETE /api/scenes/{sceneUUID}
func (s *Scenes) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	scene, _, ok := s.requireSceneAccess(w, r, vars["sceneUUID"])
	if !ok {
		return
	}

	if err := s.app.DeleteScene(scene); err != nil {
		handleError(w, "deleting scene", err)
		return
	}

	respondData(w, http.StatusOK, "Scene deleted successfully", nil)
}
