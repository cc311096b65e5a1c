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

// Note is a result of PresentNote
type Note struct {
	ID        string    `json:"id"`
	NovelID   string    `json:"novel_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PresentNote presents a note under its novel
func PresentNote(note database.Note, novel database.Novel) Note {
	return Note{
		ID:        note.UUID,
		NovelID:   novel.UUID,
		Type:      note.Type,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: FormatTS(note.CreatedAt),
		UpdatedAt: FormatTS(note.UpdatedAt),
	}
}

// PresentNotes presents the notes of a novel
func PresentNotes(notes []database.Note, novel database.Novel) []Note {
	ret := []Note{}

	for _, note := range notes {
		ret = append(ret, PresentNote(note, novel))
	}

	return ret
}
