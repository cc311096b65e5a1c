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
	"testing"

	"github.com/pkg/errors"
	"github.com/plumeapp/plume/pkg/assert"
	"github.com/plumeapp/plume/pkg/server/database"
	"github.com/plumeapp/plume/pkg/server/testutils"
)

func TestCreateNote(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		user := testutils.SetupUserData(db, "alice", "alice@example.com", "pass1234")
		novel := setupNovel(t, db, user)

		a := NewTest()
		a.DB = db
		note, err := a.CreateNote(novel, CreateNoteParams{
			Type:    database.NoteTypeStyle,
			Title:   "Voice",
			Content: "Short sentences in the storm chapters",
		})
		if err != nil {
			t.Fatal(errors.Wrap(err, "executing"))
		}

		assert.Equal(t, note.NovelID, novel.ID, "novel mismatch")

		var count int64
		testutils.MustExec(t, db.Model(&database.Note{}).Count(&count), "counting notes")
		assert.Equal(t, count, int64(1), "note count mismatch")
	})

	t.Run("invalid type", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		user := testutils.SetupUserData(db, "alice", "alice@example.com", "pass1234")
		novel := setupNovel(t, db, user)

		a := NewTest()
		a.DB = db
		_, err := a.CreateNote(novel, CreateNoteParams{
			Type:  "worldbuilding",
			Title: "Voice",
		})

		var v *ValidationError
		if !errors.As(err, &v) {
			t.Fatalf("expected a validation error, got %v", err)
		}
	})
}

func TestListNotes(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	user := testutils.SetupUserData(db, "alice", "alice@example.com", "pass1234")
	novel := setupNovel(t, db, user)

	for _, noteType := range []string{database.NoteTypeStyle, database.NoteTypePlot, database.NoteTypeStyle} {
		note := database.Note{
			UUID:    testutils.MustUUID(t),
			NovelID: novel.ID,
			Type:    noteType,
			Title:   "Note",
		}
		testutils.MustExec(t, db.Save(&note), "preparing note")
	}

	a := NewTest()
	a.DB = db

	t.Run("all notes", func(t *testing.T) {
		notes, err := a.ListNotes(novel.ID, "")
		if err != nil {
			t.Fatal(errors.Wrap(err, "executing"))
		}
		assert.Equal(t, len(notes), 3, "note count mismatch")
	})

	t.Run("filtered by type", func(t *testing.T) {
		notes, err := a.ListNotes(novel.ID, database.NoteTypeStyle)
		if err != nil {
			t.Fatal(errors.Wrap(err, "executing"))
		}
		assert.Equal(t, len(notes), 2, "note count mismatch")
		for _, note := range notes {
			assert.Equal(t, note.Type, database.NoteTypeStyle, "note type mismatch")
		}
	})

	t.Run("invalid type filter", func(t *testing.T) {
		_, err := a.ListNotes(novel.ID, "worldbuilding")

		var v *ValidationError
		if !errors.As(err, &v) {
			t.Fatalf("expected a validation error, got %v", err)
		}
	})
}

func TestUpdateNote(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	user := testutils.SetupUserData(db, "alice", "alice@example.com", "pass1234")
	novel := setupNovel(t, db, user)

	note := database.Note{
		UUID:    testutils.MustUUID(t),
		NovelID: novel.ID,
		Type:    database.NoteTypeStyle,
		Title:   "Voice",
		Content: "Short sentences",
	}
	testutils.MustExec(t, db.Save(&note), "preparing note")

	a := NewTest()
	a.DB = db

	content := "Short sentences in the storm chapters"
	updated, err := a.UpdateNote(note, UpdateNoteParams{Content: &content})
	if err != nil {
		t.Fatal(errors.Wrap(err, "executing"))
	}

	assert.Equal(t, updated.Content, content, "content mismatch")
	assert.Equal(t, updated.Title, "Voice", "title mismatch")
}

func TestDeleteNote(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	user := testutils.SetupUserData(db, "alice", "alice@example.com", "pass1234")
	novel := setupNovel(t, db, user)

	note := database.Note{
		UUID:    testutils.MustUUID(t),
		NovelID: novel.ID,
		Type:    database.NoteTypePlot,
		Title:   "Midpoint",
	}
	testutils.MustExec(t, db.Save(&note), "preparing note")

	a := NewTest()
	a.DB = db
	if err := a.DeleteNote(note); err != nil {
		t.Fatal(errors.Wrap(err, "executing"))
	}

	var count int64
	testutils.MustExec(t, db.Model(&database.Note{}).Count(&count), "counting notes")
	assert.Equal(t, count, int64(0), "note count mismatch")
}
