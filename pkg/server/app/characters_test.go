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
	"gorm.io/gorm"
)

func setupNovel(t *testing.T, db *gorm.DB, user database.User) database.Novel {
	novel := database.Novel{
		UUID:   testutils.MustUUID(t),
		UserID: user.ID,
		Title:  "The Hollow Season",
	}
	testutils.MustExec(t, db.Save(&novel), "preparing novel")

	return novel
}

func TestCreateCharacter(t *testing.T) {
	t.Run("opaque documents round-trip", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		user := testutils.SetupUserData(db, "alice", "alice@example.com", "pass1234")
		novel := setupNovel(t, db, user)

		a := NewTest()
		a.DB = db

		personalData := database.Document(`{"age":34,"origin":{"city":"Belgrade"},"keys":["a","b"]}`)
		character, err := a.CreateCharacter(novel, CreateCharacterParams{
			Name:         "Maren",
			PersonalData: personalData,
		})
		if err != nil {
			t.Fatal(errors.Wrap(err, "executing"))
		}

		var record database.Character
		testutils.MustExec(t, db.Where("id = ?", character.ID).First(&record), "finding character")

		// stored verbatim, never reshaped
		assert.Equal(t, string(record.PersonalData), string(personalData), "personal data mismatch")
		// absent documents default to empty objects
		assert.Equal(t, string(record.Psychology), "{}", "psychology default mismatch")
	})

	t.Run("missing name", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		user := testutils.SetupUserData(db, "alice", "alice@example.com", "pass1234")
		novel := setupNovel(t, db, user)

		a := NewTest()
		a.DB = db
		_, err := a.CreateCharacter(novel, CreateCharacterParams{})

		var v *ValidationError
		if !errors.As(err, &v) {
			t.Fatalf("expected a validation error, got %v", err)
		}
	})
}

func TestUpdateCharacter(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	user := testutils.SetupUserData(db, "alice", "alice@example.com", "pass1234")
	novel := setupNovel(t, db, user)

	character := database.Character{
		UUID:         testutils.MustUUID(t),
		NovelID:      novel.ID,
		Name:         "Maren",
		PersonalData: database.Document(`{"age":34}`),
	}
	testutils.MustExec(t, db.Save(&character), "preparing character")

	a := NewTest()
	a.DB = db

	goals := database.Document(`{"short_term":"survive the winter"}`)
	updated, err := a.UpdateCharacter(character, UpdateCharacterParams{Goals: goals})
	if err != nil {
		t.Fatal(errors.Wrap(err, "executing"))
	}

	assert.Equal(t, string(updated.Goals), string(goals), "goals mismatch")
	// untouched documents stay as they were
	assert.Equal(t, string(updated.PersonalData), `{"age":34}`, "personal data mismatch")
	assert.Equal(t, updated.Name, "Maren", "name mismatch")
}

func TestListCharacters(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	user := testutils.SetupUserData(db, "alice", "alice@example.com", "pass1234")
	novel := setupNovel(t, db, user)

	for _, name := range []string{"Maren", "Iver", "Solveig"} {
		character := database.Character{
			UUID:    testutils.MustUUID(t),
			NovelID: novel.ID,
			Name:    name,
		}
		testutils.MustExec(t, db.Save(&character), "preparing character")
	}

	a := NewTest()
	a.DB = db
	characters, err := a.ListCharacters(novel.ID)
	if err != nil {
		t.Fatal(errors.Wrap(err, "executing"))
	}

	assert.Equal(t, len(characters), 3, "character count mismatch")
}

func TestDeleteCharacter(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	user := testutils.SetupUserData(db, "alice", "alice@example.com", "pass1234")
	novel := setupNovel(t, db, user)

	character := database.Character{
		UUID:    testutils.MustUUID(t),
		NovelID: novel.ID,
		Name:    "Maren",
	}
	testutils.MustExec(t, db.Save(&character), "preparing character")

	a := NewTest()
	a.DB = db
	if err := a.DeleteCharacter(character); err != nil {
		t.Fatal(errors.Wrap(err, "executing"))
	}

	var count int64
	testutils.MustExec(t, db.Model(&database.Character{}).Count(&count), "counting characters")
	assert.Equal(t, count, int64(0), "character count mismatch")
}
