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

// Novel is a result of PresentNovel
type Novel struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CoverImage  string    `json:"cover_image"`
	WordCount   int       `json:"word_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PresentNovel presents a novel
func PresentNovel(novel database.Novel) Novel {
	return Novel{
		ID:          novel.UUID,
		Title:       novel.Title,
		Description: novel.Description,
		CoverImage:  novel.CoverImage,
		WordCount:   novel.WordCount,
		CreatedAt:   FormatTS(novel.CreatedAt),
		UpdatedAt:   FormatTS(novel.UpdatedAt),
	}
}

// PresentNovels presents novels
func PresentNovels(novels []database.Novel) []Novel {
	ret := []Novel{}

	for _, novel := range novels {
		ret = append(ret, PresentNovel(novel))
	}

	return ret
}
