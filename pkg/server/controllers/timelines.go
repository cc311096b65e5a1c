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

// NewTimelines creates a new Timelines controller
func NewTimelines(app *app.App) *Timelines {
	return &Timelines{
		app: app,
	}
}

// Timelines is a controller for timeline tracks and events. Events belong
// to a track, so their ownership checks walk event -> track -> novel.
type Timelines struct {
	app *app.App
}

func (t *Timelines) requireTrackAccess(w http.ResponseWriter, r *http.Request, trackUUID string) (database.Track, database.Novel, bool) {
	track, err := t.app.GetTrackByUUID(trackUUID)
	if err != nil {
		handleError(w, "finding track", err)
		return track, database.Novel{}, false
	}

	if !requireChainAccess(t.app, w, r, permissions.TrackOwner, track.ID) {
		return track, database.Novel{}, false
	}

	novel, err := t.app.GetNovelByID(track.NovelID)
	if err != nil {
		handleError(w, "finding novel", err)
		return track, novel, false
	}

	return track, novel, true
}

func (t *Timelines) requireEventAccess(w http.ResponseWriter, r *http.Request, eventUUID string) (database.Event, database.Track, bool) {
	event, err := t.app.GetEventByUUID(eventUUID)
	if err != nil {
		handleError(w, "finding event", err)
		return event, database.Track{}, false
	}

	if !requireChainAccess(t.app, w, r, permissions.EventOwner, event.ID) {
		return event, database.Track{}, false
	}

	track, err := t.app.GetTrackByID(event.TrackID)
	if err != nil {
		handleError(w, "finding track", err)
		return event, track, false
	}

	return event, track, true
}

type trackPayload struct {
	NovelUUID  string  `json:"novel_id"`
	Name       *string `json:"track_name"`
	TrackOrder *int    `json:"track_order"`
}

// CreateTrack handles POST /api/timelines/tracks
func (t *Timelines) CreateTrack(w http.ResponseWriter, r *http.Request) {
	var payload trackPayload
	if err := parseRequestData(r, &payload); err != nil {
		handleError(w, "parsing payload", err)
		return
	}

	novel, ok := requireNovelAccess(t.app, w, r, payload.NovelUUID)
	if !ok {
		return
	}

	p := app.CreateTrackParams{}
	if payload.Name != nil {
		p.Name = *payload.Name
	}
	if payload.TrackOrder != nil {
		p.TrackOrder = *payload.TrackOrder
	}

	track, err := t.app.CreateTrack(novel, p)
	if err != nil {
		handleError(w, "creating track", err)
		return
	}

	respondData(w, http.StatusCreated, "Track created successfully", presenters.PresentTrack(track, novel))
}

// IndexTracks handles GET /api/timelines/tracks/novel/{novelUUID}
func (t *Timelines) IndexTracks(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	novel, ok := requireNovelAccess(t.app, w, r, vars["novelUUID"])
	if !ok {
		return
	}

	tracks, err := t.app.ListTracks(novel.ID)
	if err != nil {
		handleError(w, "listing tracks", err)
		return
	}

	respondData(w, http.StatusOK, "", presenters.PresentTracks(tracks, novel))
}

// UpdateTrack handles PUT /api/timelines/tracks/{trackUUID}
func (t *Timelines) UpdateTrack(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	track, novel, ok := t.requireTrackAccess(w, r, vars["trackUUID"])
	if !ok {
		return
	}

	var payload trackPayload
	if err := parseRequestData(r, &payload); err != nil {
		handleError(w, "parsing payload", err)
		return
	}

	updated, err := t.app.UpdateTrack(track, app.UpdateTrackParams{
		Name:       payload.Name,
		TrackOrder: payload.TrackOrder,
	})
	if err != nil {
		handleError(w, "updating track", err)
		return
	}

	respondData(w, http.StatusOK, "Track updated successfully", presenters.PresentTrack(updated, novel))
}

// DeleteTrack handles DELETE /api/timelines/tracks/{trackUUID}
func (t *Timelines) DeleteTrack(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	track, _, ok := t.requireTrackAccess(w, r, vars["trackUUID"])
	if !ok {
		return
	}

	if err := t.app.DeleteTrack(track); err != nil {
		handleError(w, "deleting track", err)
		return
	}

	respondData(w, http.StatusOK, "Track deleted successfully", nil)
}

type eventPayload struct {
	TrackUUID   string        `json:"timeline_id"`
	Title       *string       `json:"title"`
	DateChapter *string       `json:"date_chapter"`
	Characters  database.List `json:"characters"`
	Description *string       `json:"description"`
	Importance  *int          `json:"importance"`
	Color       *string       `json:"color"`
	PositionX   *int          `json:"position_x"`
}

// CreateEvent handles POST /api/timelines/events
func (t *Timelines) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var payload eventPayload
	if err := parseRequestData(r, &payload); err != nil {
		handleError(w, "parsing payload", err)
		return
	}

	track, err := t.app.GetTrackByUUID(payload.TrackUUID)
	if err != nil {
		handleError(w, "finding track", err)
		return
	}

	if !requireChainAccess(t.app, w, r, permissions.TrackOwner, track.ID) {
		return
	}

	p := app.CreateEventParams{
		Characters: payload.Characters,
		Importance: payload.Importance,
		PositionX:  payload.PositionX,
	}
	if payload.Title != nil {
		p.Title = *payload.Title
	}
	if payload.DateChapter != nil {
		p.DateChapter = *payload.DateChapter
	}
	if payload.Description != nil {
		p.Description = *payload.Description
	}
	if payload.Color != nil {
		p.Color = *payload.Color
	}

	event, err := t.app.CreateEvent(track, p)
	if err != nil {
		handleError(w, "creating event", err)
		return
	}

	respondData(w, http.StatusCreated, "Event created successfully", presenters.PresentEvent(event, track))
}

// IndexEvents handles GET /api/timelines/events/track/{trackUUID}
func (t *Timelines) IndexEvents(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	track, _, ok := t.requireTrackAccess(w, r, vars["trackUUID"])
	if !ok {
		return
	}

	events, err := t.app.ListEvents(track.ID)
	if err != nil {
		handleError(w, "listing events", err)
		return
	}

	respondData(w, http.StatusOK, "", presenters.PresentEvents(events, track))
}

// UpdateEvent handles PUT /api/timelines/events/{eventUUID}
func (t *Timelines) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	event, track, ok := t.requireEventAccess(w, r, vars["eventUUID"])
	if !ok {
		return
	}

	var payload eventPayload
	if err := parseRequestData(r, &payload); err != nil {
		handleError(w, "parsing payload", err)
		return
	}

	updated, err := t.app.UpdateEvent(event, app.UpdateEventParams{
		Title:       payload.Title,
		DateChapter: payload.DateChapter,
		Characters:  payload.Characters,
		Description: payload.Description,
		Importance:  payload.Importance,
		Color:       payload.Color,
		PositionX:   payload.PositionX,
	})
	if err != nil {
		handleError(w, "updating event", err)
		return
	}

	respondData(w, http.StatusOK, "Event updated successfully", presenters.PresentEvent(updated, track))
}

// DeleteEvent handles DELETE /api/timelines/events/{eventUUID}
func (t *Timelines) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	event, _, ok := t.requireEventAccess(w, r, vars["eventUUID"])
	if !ok {
		return
	}

	if err := t.app.DeleteEvent(event); err != nil {
		handleError(w, "deleting event", err)
		return
	}

	respondData(w, http.StatusOK, "Event deleted successfully", nil)
}
