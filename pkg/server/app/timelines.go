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

	pkgErrors "github.com/pkg/errors"
	"github.com/plumeapp/plume/pkg/server/database"
	"github.com/plumeapp/plume/pkg/server/helpers"
	"gorm.io/gorm"
)

// CreateTrackParams is the parameters for creating a timeline track
type CreateTrackParams struct {
	Name       string
	TrackOrder int
}

// CreateTrack creates a timeline track under the given novel
func (a *App) CreateTrack(novel database.Novel, p CreateTrackParams) (database.Track, error) {
	if p.Name == "" {
		v := &ValidationError{}
		v.Add("track_name", "track_name is required")
		return database.Track{}, v
	}

	uuid, err := helpers.GenUUID()
	if err != nil {
		return database.Track{}, err
	}

	track := database.Track{
		UUID:       uuid,
		NovelID:    novel.ID,
		Name:       p.Name,
		TrackOrder: p.TrackOrder,
	}
	if err := a.DB.Create(&track).Error; err != nil {
		return track, pkgErrors.Wrap(err, "inserting track")
	}

	return track, nil
}

// GetTrackByUUID returns the track with the given uuid
func (a *App) GetTrackByUUID(uuid string) (database.Track, error) {
	var track database.Track
	err := a.DB.Where("uuid = ?", uuid).First(&track).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.Track{}, ErrNotFound
	} else if err != nil {
		return database.Track{}, pkgErrors.Wrap(err, "finding track")
	}

	return track, nil
}

// GetTrackByID returns the track with the given id
func (a *App) GetTrackByID(id int) (database.Track, error) {
	var track database.Track
	err := a.DB.Where("id = ?", id).First(&track).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.Track{}, ErrNotFound
	} else if err != nil {
		return database.Track{}, pkgErrors.Wrap(err, "finding track")
	}

	return track, nil
}

// ListTracks returns the tracks of a novel in track order
func (a *App) ListTracks(novelID int) ([]database.Track, error) {
	tracks := []database.Track{}
	if err := a.DB.Where("novel_id = ?", novelID).Order("track_order ASC").Find(&tracks).Error; err != nil {
		return nil, pkgErrors.Wrap(err, "listing tracks")
	}

	return tracks, nil
}

// UpdateTrackParams is the parameters for updating a timeline track
type UpdateTrackParams struct {
	Name       *string
	TrackOrder *int
}

// UpdateTrack applies a partial update to the given track
func (a *App) UpdateTrack(track database.Track, p UpdateTrackParams) (database.Track, error) {
	if p.Name != nil {
		if *p.Name == "" {
			v := &ValidationError{}
			v.Add("track_name", "track_name is required")
			return track, v
		}
		track.Name = *p.Name
	}
	if p.TrackOrder != nil {
		track.TrackOrder = *p.TrackOrder
	}

	if err := a.DB.Save(&track).Error; err != nil {
		return track, pkgErrors.Wrap(err, "saving track")
	}

	return track, nil
}

// DeleteTrack deletes a track and its events
func (a *App) DeleteTrack(track database.Track) error {
	tx := a.DB.Begin()

	if err := tx.Where("track_id = ?", track.ID).Delete(&database.Event{}).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting events")
	}
	if err := tx.Delete(&track).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting track")
	}

	tx.Commit()

	return nil
}

// CreateEventParams is the parameters for creating a timeline event
type CreateEventParams struct {
	Title       string
	DateChapter string
	Characters  database.List
	Description string
	Importance  *int
	Color       string
	PositionX   *int
}

// CreateEvent creates a timeline event under the given track
func (a *App) CreateEvent(track database.Track, p CreateEventParams) (database.Event, error) {
	v := &ValidationError{}
	if p.Title == "" {
		v.Add("title", "title is required")
	}
	if p.Importance != nil && (*p.Importance < 1 || *p.Importance > 5) {
		v.Add("importance", "importance must be between 1 and 5")
	}
	if v.HasErrors() {
		return database.Event{}, v
	}

	uuid, err := helpers.GenUUID()
	if err != nil {
		return database.Event{}, err
	}

	event := database.Event{
		UUID:        uuid,
		TrackID:     track.ID,
		Title:       p.Title,
		DateChapter: p.DateChapter,
		Characters:  p.Characters,
		Description: p.Description,
		Importance:  3,
		Color:       "#FFF59D",
	}
	if p.Importance != nil {
		event.Importance = *p.Importance
	}
	if p.Color != "" {
		event.Color = p.Color
	}
	if p.PositionX != nil {
		event.PositionX = *p.PositionX
	}

	if err := a.DB.Create(&event).Error; err != nil {
		return event, pkgErrors.Wrap(err, "inserting event")
	}

	return event, nil
}

// GetEventByUUID returns the event with the given uuid
func (a *App) GetEventByUUID(uuid string) (database.Event, error) {
	var event database.Event
	err := a.DB.Where("uuid = ?", uuid).First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.Event{}, ErrNotFound
	} else if err != nil {
		return database.Event{}, pkgErrors.Wrap(err, "finding event")
	}

	return event, nil
}

// ListEvents returns the events of a track ordered by horizontal position
func (a *App) ListEvents(trackID int) ([]database.Event, error) {
	events := []database.Event{}
	if err := a.DB.Where("track_id = ?", trackID).Order("position_x ASC").Find(&events).Error; err != nil {
		return nil, pkgErrors.Wrap(err, "listing events")
	}

	return events, nil
}

// UpdateEventParams is the parameters for updating a timeline event
type UpdateEventParams struct {
	Title       *string
	DateChapter *string
	Characters  database.List
	Description *string
	Importance  *int
	Color       *string
	PositionX   *int
}

// UpdateEvent applies a partial update to the given event
func (a *App) UpdateEvent(event database.Event, p UpdateEventParams) (database.Event, error) {
	v := &ValidationError{}
	if p.Title != nil && *p.Title == "" {
		v.Add("title", "title is required")
	}
	if p.Importance != nil && (*p.Importance < 1 || *p.Importance > 5) {
		v.Add("importance", "importance must be between 1 and 5")
	}
	if v.HasErrors() {
		return event, v
	}

	if p.Title != nil {
		event.Title = *p.Title
	}
	if p.DateChapter != nil {
		event.DateChapter = *p.DateChapter
	}
	if p.Characters != nil {
		event.Characters = p.Characters
	}
	if p.Description != nil {
		event.Description = *p.Description
	}
	if p.Importance != nil {
		event.Importance = *p.Importance
	}
	if p.Color != nil {
		event.Color = *p.Color
	}
	if p.PositionX != nil {
		event.PositionX = *p.PositionX
	}

	if err := a.DB.Save(&event).Error; err != nil {
		return event, pkgErrors.Wrap(err, "saving event")
	}

	return event, nil
}

// DeleteEvent deletes an event
func (a *App) DeleteEvent(event database.Event) error {
	if err := a.DB.Delete(&event).Error; err != nil {
		return pkgErrors.Wrap(err, "deleting event")
	}

	return nil
}
