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

// CreateNoteParams is the parameters for creating a note
type CreateNoteParams struct {
	Type    string
	Title   string
	Content string
}

func validateNoteType(noteType string) bool {
	return noteType == database.NoteTypeStyle || noteType == database.NoteTypePlot
}

func validateCreateNoteParams(p CreateNoteParams) error {
	v := &ValidationError{}

	if !validateNoteType(p.Type) {
		v.Add("type", "type must be either 'style' or 'plot'")
	}
	if p.Title == "" {
		v.Add("title", "title is required")
	}

	if v.HasErrors() {
		return v
	}

	return nil
}

// CreateNote creates a note under the given novel
func (a *App) CreateNote(novel database.Novel, p CreateNoteParams) (database.Note, error) {
	if err := validateCreateNoteParams(p); err != nil {
		return database.Note{}, err
	}

	uuid, err := helpers.GenUUID()
	if err != nil {
		return database.Note{}, err
	}

	note := database.Note{
		UUID:    uuid,
		NovelID: novel.ID,
		Type:    p.Type,
		Title:   p.Title,
		Content: p.Content,
	}
	if err := a.DB.Create(&note).Error; err != nil {
		return note, pkgErrors.Wrap(err, "inserting note")
	}

	return note, nil
}

// GetNoteByUUID returns the note with the given uuid
func (a *App) GetNoteByUUID(uuid string) (database.Note, error) {
	var note database.Note
	err := a.DB.Where("uuid = ?", uuid).First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.Note{}, ErrNotFound
	} else if err != nil {
		return database.Note{}, pkgErrors.Wrap(err, "finding note")
	}

	return note, nil
}

// ListNotes returns the notes of a novel, most recently updated first.
// If noteType is non-empty, only notes of that type are returned.
func (a *App) ListNotes(novelID int, noteType string) ([]database.Note, error) {
	if noteType != "" && !validateNoteType(noteType) {
		v := &ValidationError{}
		v.Add("type", "type must be either 'style' or 'plot'")
		return nil, v
	}

	conn := a.DB.Where("novel_id = ?", novelID)
	if noteType != "" {
		conn = conn.Where("type = ?", noteType)
	}

	notes := []database.Note{}
	if err := conn.Order("updated_at DESC").Find(&notes).Error; err != nil {
		return nil, pkgErrors.Wrap(err, "listing notes")
	}

	return notes, nil
}

// UpdateNoteParams is the parameters for updating a note
type UpdateNoteParams struct {
	Type    *string
	Title   *string
	Content *string
}

// UpdateNote applies a partial update to the given note
func (a *App) UpdateNote(note database.Note, p UpdateNoteParams) (database.Note, error) {
	v := &ValidationError{}
	if p.Type != nil && !validateNoteType(*p.Type) {
		v.Add("type", "type must be either 'style' or 'plot'")
	}
	if p.Title != nil && *p.Title == "" {
		v.Add("title", "title is required")
	}
	if v.HasErrors() {
		return note, v
	}

	if p.Type != nil {
		note.Type = *p.Type
	}
	if p.Title != nil {
		note.Title = *p.Title
	}
	if p.Content != nil {
		note.Content = *p.Content
	}

	if err := a.DB.Save(&note).Error; err != nil {
		return note, pkgErrors.Wrap(err, "saving note")
	}

	return note, nil
}

// DeleteNote deletes a note
func (a *App) DeleteNote(note database.Note) error {
	if err := a.DB.Delete(&note).Error; err != nil {
		return pkgErrors.Wrap(err, "deleting note")
	}

	return nil
}
