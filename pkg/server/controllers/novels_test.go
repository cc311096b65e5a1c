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

func setupNovel(t *testing.T, a *app.App, user database.User, title string) database.Novel {
	novel, err := a.CreateNovel(user, app.CreateNovelParams{Title: title})
	if err != nil {
		t.Fatal(err)
	}

	return novel
}

func TestCreateNovel(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		user := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")

		req := testutils.MakeReq(server.URL, "POST", "/api/novels", `{"title": "The Long Night", "description": "a story"}`)
		res := testutils.HTTPAuthDo(t, req, user)

		assert.StatusCodeEquals(t, res, http.StatusCreated, "status code mismatch")

		var got struct {
			Message string            `json:"message"`
			Data    presenters.Novel  `json:"data"`
		}
		testutils.MustUnmarshalBody(t, res, &got)

		assert.Equal(t, got.Message, "Novel created successfully", "message mismatch")
		assert.Equal(t, got.Data.Title, "The Long Night", "title mismatch")
		assert.NotEqual(t, got.Data.ID, "", "id should be set")

		var novelRecord database.Novel
		testutils.MustExec(t, a.DB.First(&novelRecord), "finding novel")
		assert.Equal(t, novelRecord.UserID, user.ID, "owner mismatch")
	})

	t.Run("missing title", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		user := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")

		req := testutils.MakeReq(server.URL, "POST", "/api/novels", `{"description": "no title"}`)
		res := testutils.HTTPAuthDo(t, req, user)

		assert.StatusCodeEquals(t, res, http.StatusUnprocessableEntity, "status code mismatch")
	})
}

func TestListNovels(t *testing.T) {
	t.Run("only own novels", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		alice := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		bob := testutils.SetupUserData(a.DB, "bob", "bob@example.com", "pass1234")
		setupNovel(t, &a, alice, "Alice's Novel")
		setupNovel(t, &a, bob, "Bob's Novel")

		req := testutils.MakeReq(server.URL, "GET", "/api/novels", "")
		res := testutils.HTTPAuthDo(t, req, alice)

		assert.StatusCodeEquals(t, res, http.StatusOK, "status code mismatch")

		var got struct {
			Data []presenters.Novel `json:"data"`
		}
		testutils.MustUnmarshalBody(t, res, &got)

		assert.Equal(t, len(got.Data), 1, "novel count mismatch")
		assert.Equal(t, got.Data[0].Title, "Alice's Novel", "title mismatch")
	})
}

func TestShowNovel(t *testing.T) {
	t.Run("non-owner is forbidden", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		alice := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		bob := testutils.SetupUserData(a.DB, "bob", "bob@example.com", "pass1234")
		novel := setupNovel(t, &a, alice, "Alice's Novel")

		req := testutils.MakeReq(server.URL, "GET", fmt.Sprintf("/api/novels/%s", novel.UUID), "")
		res := testutils.HTTPAuthDo(t, req, bob)

		assert.StatusCodeEquals(t, res, http.StatusForbidden, "status code mismatch")
	})

	t.Run("admin can access any novel", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		alice := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		admin := testutils.SetupAdminData(a.DB, "admin", "admin@example.com", "pass1234")
		novel := setupNovel(t, &a, alice, "Alice's Novel")

		req := testutils.MakeReq(server.URL, "GET", fmt.Sprintf("/api/novels/%s", novel.UUID), "")
		res := testutils.HTTPAuthDo(t, req, admin)

		assert.StatusCodeEquals(t, res, http.StatusOK, "status code mismatch")
	})

	t.Run("nonexistent novel", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		user := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")

		req := testutils.MakeReq(server.URL, "GET", fmt.Sprintf("/api/novels/%s", testutils.MustUUID(t)), "")
		res := testutils.HTTPAuthDo(t, req, user)

		assert.StatusCodeEquals(t, res, http.StatusNotFound, "status code mismatch")
	})

	t.Run("get is idempotent", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		user := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		novel := setupNovel(t, &a, user, "Alice's Novel")

		var first, second presenters.Novel
		for i, dst := range []*presenters.Novel{&first, &second} {
			req := testutils.MakeReq(server.URL, "GET", fmt.Sprintf("/api/novels/%s", novel.UUID), "")
			res := testutils.HTTPAuthDo(t, req, user)
			assert.StatusCodeEquals(t, res, http.StatusOK, fmt.Sprintf("status code mismatch on request %d", i))

			var got struct {
				Data presenters.Novel `json:"data"`
			}
			testutils.MustUnmarshalBody(t, res, &got)
			*dst = got.Data
		}

		assert.DeepEqual(t, first, second, "repeated get should return the same payload")
	})
}

func TestUpdateNovel(t *testing.T) {
	t.Run("partial update", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		user := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		novel := setupNovel(t, &a, user, "Alice's Novel")

		req := testutils.MakeReq(server.URL, "PUT", fmt.Sprintf("/api/novels/%s", novel.UUID), `{"description": "revised"}`)
		res := testutils.HTTPAuthDo(t, req, user)

		assert.StatusCodeEquals(t, res, http.StatusOK, "status code mismatch")

		var novelRecord database.Novel
		testutils.MustExec(t, a.DB.First(&novelRecord), "finding novel")
		assert.Equal(t, novelRecord.Title, "Alice's Novel", "title should be intact")
		assert.Equal(t, novelRecord.Description, "revised", "description mismatch")
	})
}

func TestDeleteNovel(t *testing.T) {
	t.Run("cascades to contents", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		user := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		novel := setupNovel(t, &a, user, "Alice's Novel")

		if _, err := a.CreateCharacter(novel, app.CreateCharacterParams{Name: "Hero"}); err != nil {
			t.Fatal(err)
		}
		if _, err := a.CreateNote(novel, app.CreateNoteParams{Type: database.NoteTypePlot, Title: "twist"}); err != nil {
			t.Fatal(err)
		}

		req := testutils.MakeReq(server.URL, "DELETE", fmt.Sprintf("/api/novels/%s", novel.UUID), "")
		res := testutils.HTTPAuthDo(t, req, user)

		assert.StatusCodeEquals(t, res, http.StatusOK, "status code mismatch")

		var novelCount, characterCount, noteCount int64
		testutils.MustExec(t, a.DB.Model(&database.Novel{}).Count(&novelCount), "counting novels")
		testutils.MustExec(t, a.DB.Model(&database.Character{}).Count(&characterCount), "counting characters")
		testutils.MustExec(t, a.DB.Model(&database.Note{}).Count(&noteCount), "counting notes")

		assert.Equal(t, novelCount, int64(0), "novel count mismatch")
		assert.Equal(t, characterCount, int64(0), "character count mismatch")
		assert.Equal(t, noteCount, int64(0), "note count mismatch")
	})
}

func TestNovelStats(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		user := testutils.SetupUserData(a.DB, "alice", "alice@example.com", "pass1234")
		novel := setupNovel(t, &a, user, "Alice's Novel")

		if _, err := a.CreateCharacter(novel, app.CreateCharacterParams{Name: "Hero"}); err != nil {
			t.Fatal(err)
		}
		if _, err := a.CreateScene(novel, app.CreateSceneParams{SceneNumber: 1}); err != nil {
			t.Fatal(err)
		}

		req := testutils.MakeReq(server.URL, "GET", fmt.Sprintf("/api/novels/%s/stats", novel.UUID), "")
		res := testutils.HTTPAuthDo(t, req, user)

		assert.StatusCodeEquals(t, res, http.StatusOK, "status code mismatch")

		var got struct {
			Data app.NovelStats `json:"data"`
		}
		testutils.MustUnmarshalBody(t, res, &got)

		expected := app.NovelStats{
			WordCount:       0,
			CharactersCount: 1,
			ScenesCount:     1,
			NotesCount:      0,
		}
		assert.DeepEqual(t, got.Data, expected, "stats mismatch")
	})
}
