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

package database

const (
	// RoleUser is the role of a regular user
	RoleUser = "user"
	// RoleAdmin is the role of an administrator
	RoleAdmin = "admin"
)

const (
	// NoteTypeStyle is a note about the writing style
	NoteTypeStyle = "style"
	// NoteTypePlot is a note about the plot
	NoteTypePlot = "plot"
)

const (
	// SceneStatusDraft is the status of a scene still being drafted
	SceneStatusDraft = "draft"
	// SceneStatusComplete is the status of a finished scene
	SceneStatusComplete = "complete"
	// SceneStatusRevision is the status of a scene under revision
	SceneStatusRevision = "revision"
)

// SceneStatuses is the set of valid scene statuses
var SceneStatuses = []string{SceneStatusDraft, SceneStatusComplete, SceneStatusRevision}

// TimesOfDay is the set of valid times of day for a scene
var TimesOfDay = []string{"day", "night", "dawn", "dusk"}

// PlotStructureTypes is the set of valid plot structure types
var PlotStructureTypes = []string{"3_acts", "5_acts", "hero_journey", "save_cat", "story_circle", "free"}
