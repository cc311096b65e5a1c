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

package app

import (
	"errors"
	"slices"

	pkgErrors "github.com/pkg/errors"
	"github.com/plumeapp/plume/pkg/server/database"
	"github.com/plumeapp/plume/pkg/server/helpers"
	"gorm.io/gorm"
)

// CreateSceneParams is the parameters for creating a scene
type CreateSceneParams struct {
	SceneNumber      int
	Location         string
	TimeOfDay        string
	Characters       database.List
	POV              string
	Objective        string
	Description      string
	LanguageFeatures database.Document
	Themes           database.List
	DramaticBeats    database.List
	PlotConnection   string
	EmotionalState   string
	Notes            string
	Status           string
}

func validateCreateSceneParams(p CreateSceneParams) error {
	v := &ValidationError{}

	if p.SceneNumber <= 0 {
		v.Add("scene_number", "scene_number must be a positive integer")
	}
	if p.TimeOfDay != "" && !slices.Contains(database.TimesOfDay, p.TimeOfDay) {
		v.Add("time_of_day", "invalid time_of_day")
	}
	if p.Status != "" && !slices.Contains(database.SceneStatuses, p.Status) {
		v.Add("status", "invalid status")
	}

	if v.HasErrors() {
		return v
	}

	return nil
}

// CreateScene creates a scene under the given novel
func (a *App) CreateScene(novel database.Novel, p CreateSceneParams) (database.Scene, error) {
	if err := validateCreateSceneParams(p); err != nil {
		return database.Scene{}, err
	}

	uuid, err := helpers.GenUUID()
	if err != nil {
		return database.Scene{}, err
	}

	status := p.Status
	if status == "" {
		status = database.SceneStatusDraft
	}

	scene := database.Scene{
		UUID:             uuid,
		NovelID:          novel.ID,
		SceneNumber:      p.SceneNumber,
		Location:         p.Location,
		TimeOfDay:        p.TimeOfDay,
		Characters:       p.Characters,
		POV:              p.POV,
		Objective:        p.Objective,
		Description:      p.Description,
		LanguageFeatures: p.LanguageFeatures,
		Themes:           p.Themes,
		DramaticBeats:    p.DramaticBeats,
		PlotConnection:   p.PlotConnection,
		EmotionalState:   p.EmotionalState,
		Notes:            p.Notes,
		Status:           status,
	}
	if err := a.DB.Create(&scene).Error; err != nil {
		return scene, pkgErrors.Wrap(err, "inserting scene")
	}

	return scene, nil
}

// GetSceneByUUID returns the scene with the given uuid
func (a *App) GetSceneByUUID(uuid string) (database.Scene, error) {
	var scene database.Scene
	err := a.DB.Where("uuid = ?", uuid).First(&scene).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.Scene{}, ErrNotFound
	} else if err != nil {
		return database.Scene{}, pkgErrors.Wrap(err, "finding scene")
	}

	return scene, nil
}

// ListScenes returns the scenes of a novel in scene number order
func (a *App) ListScenes(novelID int) ([]database.Scene, error) {
	scenes := []database.Scene{}
	if err := a.DB.Where("novel_id = ?", novelID).Order("scene_number ASC").Find(&scenes).Error; err != nil {
		return nil, pkgErrors.Wrap(err, "listing scenes")
	}

	return scenes, nil
}

// UpdateSceneParams is the parameters for updating a scene
type UpdateSceneParams struct {
	SceneNumber      *int
	Location         *string
	TimeOfDay        *string
	Characters       database.List
	POV              *string
	Objective        *string
	Description      *string
	LanguageFeatures database.Document
	Themes           database.List
	DramaticBeats    database.List
	PlotConnection   *string
	EmotionalState   *string
	Notes            *string
	Status           *string
}

func validateUpdateSceneParams(p UpdateSceneParams) error {
	v := &ValidationError{}

	if p.SceneNumber != nil && *p.SceneNumber <= 0 {
		v.Add("scene_number", "scene_number must be a positive integer")
	}
	if p.TimeOfDay != nil && *p.TimeOfDay != "" && !slices.Contains(database.TimesOfDay, *p.TimeOfDay) {
		v.Add("time_of_day", "invalid time_of_day")
	}
	if p.Status != nil && !slices.Contains(database.SceneStatuses, *p.Status) {
		v.Add("status", "invalid status")
	}

	if v.HasErrors() {
		return v
	}

	return nil
}

// UpdateScene applies a partial update to the given scene
func (a *App) UpdateScene(scene database.Scene, p UpdateSceneParams) (database.Scene, error) {
	if err := validateUpdateSceneParams(p); err != nil {
		return scene, err
	}

	if p.SceneNumber != nil {
		scene.SceneNumber = *p.SceneNumber
	}
	if p.Location != nil {
		scene.Location = *p.Location
	}
	if p.TimeOfDay != nil {
		scene.TimeOfDay = *p.TimeOfDay
	}
	if p.Characters != nil {
		scene.Characters = p.Characters
	}
	if p.POV != nil {
		scene.POV = *p.POV
	}
	if p.Objective != nil {
		scene.Objective = *p.Objective
	}
	if p.Description != nil {
		scene.Description = *p.Description
	}
	if p.LanguageFeatures != nil {
		scene.LanguageFeatures = p.LanguageFeatures
	}
	if p.Themes != nil {
		scene.Themes = p.Themes
	}
	if p.DramaticBeats != nil {
		scene.DramaticBeats = p.DramaticBeats
	}
	if p.PlotConnection != nil {
		scene.PlotConnection = *p.PlotConnection
	}
	if p.EmotionalState != nil {
		scene.EmotionalState = *p.EmotionalState
	}
	if p.Notes != nil {
		scene.Notes = *p.Notes
	}
	if p.Status != nil {
		scene.Status = *p.Status
	}

	if err := a.DB.Save(&scene).Error; err != nil {
		return scene, pkgErrors.Wrap(err, "saving scene")
	}

	return scene, nil
}

// DeleteScene deletes a scene
func (a *App) DeleteScene(scene database.Scene) error {
	if err := a.DB.Delete(&scene).Error; err != nil {
		return pkgErrors.Wrap(err, "deleting scene")
	}

	return nil
}
