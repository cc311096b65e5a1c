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

func TestCreateCharacter(t *testing.T) {
	t.Run("opaque documents round-trip verbatim", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		user := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		novel := setupNovel(t, &a, user, "Alice's Novel")

		psychology := `{"fears":["heights",{"nested":true}],"traits":{"core":"stoic","缺点":"pride"}}`
		body := fmt.Sprintf(`{"novel_id": %q, "name": "Hero", "psychology": %s}`, novel.UUID, psychology)

		req := testutils.MakeReq(server.URL, "POST", "/api/characters", body)
		res := testutils.HTTPAuthDo(t, req, user)

		assert.StatusCodeEquals(t, res, http.StatusCreated, "status code mismatch")

		var created struct {
			Data presenters.Character `json:"data"`
		}
		testutils.MustUnmarshalBody(t, res, &created)
		assert.Equal(t, created.Data.NovelID, novel.UUID, "novel id mismatch")

		req = testutils.MakeReq(server.URL, "GET", fmt.Sprintf("/api/characters/%s", created.Data.ID), "")
		res = testutils.HTTPAuthDo(t, req, user)

		assert.StatusCodeEquals(t, res, http.StatusOK, "status code mismatch")

		var got struct {
			Data struct {
				Name       string `json:"name"`
				Psychology struct {
					Fears  []interface{}          `json:"fears"`
					Traits map[string]interface{} `json:"traits"`
				} `json:"psychology"`
				PersonalData map[string]interface{} `json:"personal_data"`
			} `json:"data"`
		}
		testutils.MustUnmarshalBody(t, res, &got)

		assert.Equal(t, got.Data.Name, "Hero", "name mismatch")
		assert.Equal(t, len(got.Data.Psychology.Fears), 2, "fears mismatch")
		assert.Equal(t, got.Data.Psychology.Traits["core"], "stoic", "traits mismatch")
		assert.Equal(t, got.Data.Psychology.Traits["缺点"], "pride", "unicode key mismatch")
		// omitted documents default to an empty object
		assert.Equal(t, len(got.Data.PersonalData), 0, "personal data should be empty")
	})

	t.Run("in another user's novel", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		alice := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		bob := testutils.SetupUserData(a.DB, "bob", "bob@example.com", "pass1234")
		novel := setupNovel(t, &a, alice, "Alice's Novel")

		body := fmt.Sprintf(`{"novel_id": %q, "name": "Intruder"}`, novel.UUID)
		req := testutils.MakeReq(server.URL, "POST", "/api/characters", body)
		res := testutils.HTTPAuthDo(t, req, bob)

		assert.StatusCodeEquals(t, res, http.StatusForbidden, "status code mismatch")

		var characterCount int64
		testutils.MustExec(t, a.DB.Model(&database.Character{}).Count(&characterCount), "counting characters")
		assert.Equal(t, characterCount, int64(0), "character count mismatch")
	})

	t.Run("null document reads as empty", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		user := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		novel := setupNovel(t, &a, user, "Alice's Novel")

		body := fmt.Sprintf(`{"novel_id": %q, "name": "Hero", "psychology": null}`, novel.UUID)
		req := testutils.MakeReq(server.URL, "POST", "/api/characters", body)
		res := testutils.HTTPAuthDo(t, req, user)

		assert.StatusCodeEquals(t, res, http.StatusCreated, "status code mismatch")

		var got struct {
			Data struct {
				Psychology map[string]interface{} `json:"psychology"`
			} `json:"data"`
		}
		testutils.MustUnmarshalBody(t, res, &got)
		assert.Equal(t, len(got.Data.Psychology), 0, "psychology should be empty")
	})
}

func TestUpdateCharacter(t *testing.T) {
	t.Run("partial update keeps documents", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		user := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		novel := setupNovel(t, &a, user, "Alice's Novel")

		character, err := a.CreateCharacter(novel, app.CreateCharacterParams{
			Name:  "Hero",
			Goals: database.Document(`{"main":"survive"}`),
		})
		if err != nil {
			t.Fatal(err)
		}

		req := testutils.MakeReq(server.URL, "PUT", fmt.Sprintf("/api/characters/%s", character.UUID), `{"name": "Heroine"}`)
		res := testutils.HTTPAuthDo(t, req, user)

		assert.StatusCodeEquals(t, res, http.StatusOK, "status code mismatch")

		var characterRecord database.Character
		testutils.MustExec(t, a.DB.First(&characterRecord), "finding character")
		assert.Equal(t, characterRecord.Name, "Heroine", "name mismatch")
		assert.Equal(t, string(characterRecord.Goals), `{"main":"survive"}`, "goals should be intact")
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		alice := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		bob := testutils.SetupUserData(a.DB, "bob", "bob@example.com", "pass1234")
		novel := setupNovel(t, &a, alice, "Alice's Novel")

		character, err := a.CreateCharacter(novel, app.CreateCharacterParams{Name: "Hero"})
		if err != nil {
			t.Fatal(err)
		}

		req := testutils.MakeReq(server.URL, "PUT", fmt.Sprintf("/api/characters/%s", character.UUID), `{"name": "Hijacked"}`)
		res := testutils.HTTPAuthDo(t, req, bob)

		assert.StatusCodeEquals(t, res, http.StatusForbidden, "status code mismatch")

		var characterRecord database.Character
		testutils.MustExec(t, a.DB.First(&characterRecord), "finding character")
		assert.Equal(t, characterRecord.Name, "Hero", "name should be unchanged")
	})
}

func TestDeleteCharacter(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		user := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		novel := setupNovel(t, &a, user, "Alice's Novel")

		character, err := a.CreateCharacter(novel, app.CreateCharacterParams{Name: "Hero"})
		if err != nil {
			t.Fatal(err)
		}

		req := testutils.MakeReq(server.URL, "DELETE", fmt.Sprintf("/api/characters/%s", character.UUID), "")
		res := testutils.HTTPAuthDo(t, req, user)

		assert.StatusCodeEquals(t, res, http.StatusOK, "status code mismatch")

		var characterCount int64
		testutils.MustExec(t, a.DB.Model(&database.Character{}).Count(&characterCount), "counting characters")
		assert.Equal(t, characterCount, int64(0), "character count mismatch")
	})
}
