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
	"fmt"
	"net/http"
	"testing"

	"github.com/plumeapp/plume/pkg/assert"
	"github.com/plumeapp/plume/pkg/server/app"
	"github.com/plumeapp/plume/pkg/server/database"
	"github.com/plumeapp/plume/pkg/server/presenters"
	"github.com/plumeapp/plume/pkg/server/testutils"
)

func setupTrack(t *testing.T, a *app.App, novel database.Novel, name string, order int) database.Track {
	track, err := a.CreateTrack(novel, app.CreateTrackParams{Name: name, TrackOrder: order})
	if err != nil {
		t.Fatal(err)
	}

	return track
}

func TestCreateTrack(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		user := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		novel := setupNovel(t, &a, user, "Alice's Novel")

		body := fmt.Sprintf(`{"novel_id": %q, "track_name": "Main plot", "track_order": 1}`, novel.UUID)
		req := testutils.MakeReq(server.URL, "POST", "/api/timelines/tracks", body)
		res := testutils.HTTPAuthDo(t, req, user)

		assert.StatusCodeEquals(t, res, http.StatusCreated, "status code mismatch")

		var got struct {
			Data presenters.Track `json:"data"`
		}
		testutils.MustUnmarshalBody(t, res, &got)
		assert.Equal(t, got.Data.Name, "Main plot", "name mismatch")
		assert.Equal(t, got.Data.NovelID, novel.UUID, "novel id mismatch")
	})

	t.Run("missing name", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		user := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		novel := setupNovel(t, &a, user, "Alice's Novel")

		body := fmt.Sprintf(`{"novel_id": %q, "track_order": 1}`, novel.UUID)
		req := testutils.MakeReq(server.URL, "POST", "/api/timelines/tracks", body)
		res := testutils.HTTPAuthDo(t, req, user)

		assert.StatusCodeEquals(t, res, http.StatusUnprocessableEntity, "status code mismatch")
	})
}

func TestCreateEvent(t *testing.T) {
	t.Run("references track by timeline_id", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		user := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		novel := setupNovel(t, &a, user, "Alice's Novel")
		track := setupTrack(t, &a, novel, "Main plot", 1)

		body := fmt.Sprintf(`{"timeline_id": %q, "title": "The betrayal", "position_x": 120}`, track.UUID)
		req := testutils.MakeReq(server.URL, "POST", "/api/timelines/events", body)
		res := testutils.HTTPAuthDo(t, req, user)

		assert.StatusCodeEquals(t, res, http.StatusCreated, "status code mismatch")

		var got struct {
			Data presenters.Event `json:"data"`
		}
		testutils.MustUnmarshalBody(t, res, &got)

		assert.Equal(t, got.Data.TrackID, track.UUID, "track id mismatch")
		assert.Equal(t, got.Data.Title, "The betrayal", "title mismatch")
		// omitted fields take their defaults
		assert.Equal(t, got.Data.Importance, 3, "importance mismatch")
		assert.Equal(t, got.Data.Color, "#FFF59D", "color mismatch")
	})

	t.Run("in another user's track", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		alice := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		bob := testutils.SetupUserData(a.DB, "bob", "bob@example.com", "pass1234")
		novel := setupNovel(t, &a, alice, "Alice's Novel")
		track := setupTrack(t, &a, novel, "Main plot", 1)

		body := fmt.Sprintf(`{"timeline_id": %q, "title": "Intrusion"}`, track.UUID)
		req := testutils.MakeReq(server.URL, "POST", "/api/timelines/events", body)
		res := testutils.HTTPAuthDo(t, req, bob)

		assert.StatusCodeEquals(t, res, http.StatusForbidden, "status code mismatch")
	})
}

func TestListEvents(t *testing.T) {
	t.Run("ordered by position", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		user := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		novel := setupNovel(t, &a, user, "Alice's Novel")
		track := setupTrack(t, &a, novel, "Main plot", 1)

		for _, x := range []int{300, 100, 200} {
			pos := x
			if _, err := a.CreateEvent(track, app.CreateEventParams{Title: fmt.Sprintf("event %d", x), PositionX: &pos}); err != nil {
				t.Fatal(err)
			}
		}

		req := testutils.MakeReq(server.URL, "GET", fmt.Sprintf("/api/timelines/events/track/%s", track.UUID), "")
		res := testutils.HTTPAuthDo(t, req, user)

		assert.StatusCodeEquals(t, res, http.StatusOK, "status code mismatch")

		var got struct {
			Data []presenters.Event `json:"data"`
		}
		testutils.MustUnmarshalBody(t, res, &got)

		assert.Equal(t, len(got.Data), 3, "event count mismatch")
		assert.Equal(t, got.Data[0].PositionX, 100, "first position mismatch")
		assert.Equal(t, got.Data[1].PositionX, 200, "second position mismatch")
		assert.Equal(t, got.Data[2].PositionX, 300, "third position mismatch")
	})
}

func TestUpdateEvent(t *testing.T) {
	t.Run("non-owner is forbidden", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		alice := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		bob := testutils.SetupUserData(a.DB, "bob", "bob@example.com", "pass1234")
		novel := setupNovel(t, &a, alice, "Alice's Novel")
		track := setupTrack(t, &a, novel, "Main plot", 1)

		event, err := a.CreateEvent(track, app.CreateEventParams{Title: "The betrayal"})
		if err != nil {
			t.Fatal(err)
		}

		req := testutils.MakeReq(server.URL, "PUT", fmt.Sprintf("/api/timelines/events/%s", event.UUID), `{"title": "Rewritten"}`)
		res := testutils.HTTPAuthDo(t, req, bob)

		assert.StatusCodeEquals(t, res, http.StatusForbidden, "status code mismatch")

		var eventRecord database.Event
		testutils.MustExec(t, a.DB.First(&eventRecord), "finding event")
		assert.Equal(t, eventRecord.Title, "The betrayal", "title should be unchanged")
	})
}

func TestDeleteTrack(t *testing.T) {
	t.Run("cascades to events", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		user := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		novel := setupNovel(t, &a, user, "Alice's Novel")
		track := setupTrack(t, &a, novel, "Main plot", 1)

		if _, err := a.CreateEvent(track, app.CreateEventParams{Title: "The betrayal"}); err != nil {
			t.Fatal(err)
		}

		req := testutils.MakeReq(server.URL, "DELETE", fmt.Sprintf("/api/timelines/tracks/%s", track.UUID), "")
		res := testutils.HTTPAuthDo(t, req, user)

		assert.StatusCodeEquals(t, res, http.StatusOK, "status code mismatch")

		var trackCount, eventCount int64
		testutils.MustExec(t, a.DB.Model(&database.Track{}).Count(&trackCount), "counting tracks")
		testutils.MustExec(t, a.DB.Model(&database.Event{}).Count(&eventCount), "counting events")

		assert.Equal(t, trackCount, int64(0), "track count mismatch")
		assert.Equal(t, eventCount, int64(0), "event count mismatch")
	})
}
