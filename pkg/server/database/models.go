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

import (
	"time"
)

// Model is the base model definition
type Model struct {
	ID        int       `gorm:"primaryKey" json:"-"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// User is a model for a user
type User struct {
	Model
	UUID          string     `json:"uuid" gorm:"uniqueIndex;type:text"`
	Username      string     `json:"username" gorm:"uniqueIndex;size:50"`
	Email         string     `json:"email" gorm:"uniqueIndex;size:255"`
	PasswordHash  string     `json:"-"`
	Role          string     `json:"role" gorm:"size:32;default:user"`
	FullName      string     `json:"full_name"`
	Bio           string     `json:"bio"`
	AvatarURL     string     `json:"avatar_url"`
	Active        bool       `json:"is_active" gorm:"default:true"`
	EmailVerified bool       `json:"email_verified" gorm:"default:false"`
	LastLoginAt   *time.Time `json:"-"`
}

// Novel is a model for a novel, the top-level container a user owns
type Novel struct {
	Model
	UUID        string `json:"uuid" gorm:"uniqueIndex;type:text"`
	UserID      int    `json:"user_id" gorm:"index"`
	Title       string `json:"title" gorm:"size:255"`
	Description string `json:"description"`
	CoverImage  string `json:"cover_image"`
	WordCount   int    `json:"word_count" gorm:"default:0"`
}

// Character is a model for a character belonging to a novel. The structured
// fields are opaque documents that the server stores and returns verbatim.
type Character struct {
	Model
	UUID               string   `json:"uuid" gorm:"uniqueIndex;type:text"`
	NovelID            int      `json:"novel_id" gorm:"index"`
	Name               string   `json:"name" gorm:"size:255"`
	Avatar             string   `json:"avatar"`
	PersonalData       Document `json:"personal_data" gorm:"type:text"`
	PhysicalAppearance Document `json:"physical_appearance" gorm:"type:text"`
	Psychology         Document `json:"psychology" gorm:"type:text"`
	Goals              Document `json:"goals" gorm:"type:text"`
	Past               Document `json:"past" gorm:"type:text"`
	Present            Document `json:"present" gorm:"type:text"`
	Future             Document `json:"future" gorm:"type:text"`
	SpeechPatterns     Document `json:"speech_patterns" gorm:"type:text"`
	Relationships      Document `json:"relationships" gorm:"type:text"`
	AdditionalInfo     Document `json:"additional_info" gorm:"type:text"`
}

// Scene is a model for a scene belonging to a novel
type Scene struct {
	Model
	UUID             string   `json:"uuid" gorm:"uniqueIndex;type:text"`
	NovelID          int      `json:"novel_id" gorm:"index"`
	SceneNumber      int      `json:"scene_number" gorm:"index"`
	Location         string   `json:"location"`
	TimeOfDay        string   `json:"time_of_day" gorm:"size:32"`
	Characters       List     `json:"characters" gorm:"type:text"`
	POV              string   `json:"pov"`
	Objective        string   `json:"objective"`
	Description      string   `json:"description"`
	LanguageFeatures Document `json:"language_features" gorm:"type:text"`
	Themes           List     `json:"themes" gorm:"type:text"`
	DramaticBeats    List     `json:"dramatic_beats" gorm:"type:text"`
	PlotConnection   string   `json:"plot_connection"`
	EmotionalState   string   `json:"emotional_state"`
	Notes            string   `json:"notes"`
	Status           string   `json:"status" gorm:"size:32;default:draft"`
}

// Plot is a model for a novel's plot. A novel has at most one plot.
type Plot struct {
	Model
	UUID          string   `json:"uuid" gorm:"uniqueIndex;type:text"`
	NovelID       int      `json:"novel_id" gorm:"uniqueIndex"`
	StructureType string   `json:"structure_type" gorm:"size:32"`
	PlotPoints    Document `json:"plot_points" gorm:"type:text"`
}

// Note is a model for a free-form note belonging to a novel
type Note struct {
	Model
	UUID    string `json:"uuid" gorm:"uniqueIndex;type:text"`
	NovelID int    `json:"novel_id" gorm:"index"`
	Type    string `json:"type" gorm:"size:32;index"`
	Title   string `json:"title" gorm:"size:255"`
	Content string `json:"content"`
}

// Track is a model for a timeline track belonging to a novel
type Track struct {
	Model
	UUID       string `json:"uuid" gorm:"uniqueIndex;type:text"`
	NovelID    int    `json:"novel_id" gorm:"index"`
	Name       string `json:"track_name" gorm:"size:255"`
	TrackOrder int    `json:"track_order" gorm:"default:0"`
}

// Event is a model for a timeline event. Events belong to a track, not
// directly to a novel; ownership is resolved through the track's novel.
type Event struct {
	Model
	UUID        string `json:"uuid" gorm:"uniqueIndex;type:text"`
	TrackID     int    `json:"timeline_id" gorm:"index"`
	Title       string `json:"title" gorm:"size:255"`
	DateChapter string `json:"date_chapter"`
	Characters  List   `json:"characters" gorm:"type:text"`
	Description string `json:"description"`
	Importance  int    `json:"importance" gorm:"default:3"`
	Color       string `json:"color" gorm:"size:32;default:#FFF59D"`
	PositionX   int    `json:"position_x" gorm:"default:0"`
}
