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

package presenters

import (
	"time"

	"github.com/plumeapp/plume/pkg/server/database"
)

// Scene is a result of PresentScene
type Scene struct {
	ID               string            `json:"id"`
	NovelID          string            `json:"novel_id"`
	SceneNumber      int               `json:"scene_number"`
	Location         string            `json:"location"`
	TimeOfDay        string            `json:"time_of_day"`
	Characters       database.List     `json:"characters"`
	POV              string            `json:"pov"`
	Objective        string            `json:"objective"`
	Description      string            `json:"description"`
	LanguageFeatures database.Document `json:"language_features"`
	Themes           database.List     `json:"themes"`
	DramaticBeats    database.List     `json:"dramatic_beats"`
	PlotConnection   string            `json:"plot_connection"`
	EmotionalState   string            `json:"emotional_state"`
	Notes            string            `json:"notes"`
	Status           string            `json:"status"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// PresentScene presents a scene under its novel
func PresentScene(scene database.Scene, novel database.Novel) Scene {
	return Scene{
		ID:               scene.UUID,
		NovelID:          novel.UUID,
		SceneNumber:      scene.SceneNumber,
		Location:         scene.Location,
		TimeOfDay:        scene.TimeOfDay,
		Characters:       scene.Characters,
		POV:              scene.POV,
		Objective:        scene.Objective,
		Description:      scene.Description,
		LanguageFeatures: scene.LanguageFeatures,
		Themes:           scene.Themes,
		DramaticBeats:    scene.DramaticBeats,
		PlotConnection:   scene.PlotConnection,
		EmotionalState:   scene.EmotionalState,
		Notes:            scene.Notes,
		Status:           scene.Status,
		CreatedAt:        FormatTS(scene.CreatedAt),
		UpdatedAt:        FormatTS(scene.UpdatedAt),
	}
}

// PresentScenes presents the scenes of a novel
func PresentScenes(scenes []database.Scene, novel database.Novel) []Scene {
	ret := []Scene{}

	for _, scene := range scenes {
		ret = append(ret, PresentScene(scene, novel))
	}

	return ret
}
