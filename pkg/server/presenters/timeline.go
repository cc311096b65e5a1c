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

// Track is a result of PresentTrack
type Track struct {
	ID         string    `json:"id"`
	NovelID    string    `json:"novel_id"`
	Name       string    `json:"track_name"`
	TrackOrder int       `json:"track_order"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PresentTrack presents a timeline track under its novel
func PresentTrack(track database.Track, novel database.Novel) Track {
	return Track{
		ID:         track.UUID,
		NovelID:    novel.UUID,
		Name:       track.Name,
		TrackOrder: track.TrackOrder,
		CreatedAt:  FormatTS(track.CreatedAt),
		UpdatedAt:  FormatTS(track.UpdatedAt),
	}
}

// PresentTracks presents the tracks of a novel
func PresentTracks(tracks []database.Track, novel database.Novel) []Track {
	ret := []Track{}

	for _, track := range tracks {
		ret = append(ret, PresentTrack(track, novel))
	}

	return ret
}

// Event is a result of PresentEvent
type Event struct {
	ID          string        `json:"id"`
	TrackID     string        `json:"timeline_id"`
	Title       string        `json:"title"`
	DateChapter string        `json:"date_chapter"`
	Characters  database.List `json:"characters"`
	Description string        `json:"description"`
	Importance  int           `json:"importance"`
	Color       string        `json:"color"`
	PositionX   int           `json:"position_x"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// PresentEvent presents a timeline event under its track
func PresentEvent(event database.Event, track database.Track) Event {
	return Event{
		ID:          event.UUID,
		TrackID:     track.UUID,
		Title:       event.Title,
		DateChapter: event.DateChapter,
		Characters:  event.Characters,
		Description: event.Description,
		Importance:  event.Importance,
		Color:       event.Color,
		PositionX:   event.PositionX,
		CreatedAt:   FormatTS(event.CreatedAt),
		UpdatedAt:   FormatTS(event.UpdatedAt),
	}
}

// PresentEvents presents the events of a track
func PresentEvents(events []database.Event, track database.Track) []Event {
	ret := []Event{}

	for _, event := range events {
		ret = append(ret, PresentEvent(event, track))
	}

	return ret
}
