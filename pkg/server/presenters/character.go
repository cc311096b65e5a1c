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

// Character is a result of PresentCharacter. The document fields pass
// through verbatim.
type Character struct {
	ID                 string            `json:"id"`
	NovelID            string            `json:"novel_id"`
	Name               string            `json:"name"`
	Avatar             string            `json:"avatar"`
	PersonalData       database.Document `json:"personal_data"`
	PhysicalAppearance database.Document `json:"physical_appearance"`
	Psychology         database.Document `json:"psychology"`
	Goals              database.Document `json:"goals"`
	Past               database.Document `json:"past"`
	Present            database.Document `json:"present"`
	Future             database.Document `json:"future"`
	SpeechPatterns     database.Document `json:"speech_patterns"`
	Relationships      database.Document `json:"relationships"`
	AdditionalInfo     database.Document `json:"additional_info"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// PresentCharacter presents a character under its novel
func PresentCharacter(character database.Character, novel database.Novel) Character {
	return Character{
		ID:                 character.UUID,
		NovelID:            novel.UUID,
		Name:               character.Name,
		Avatar:             character.Avatar,
		PersonalData:       character.PersonalData,
		PhysicalAppearance: character.PhysicalAppearance,
		Psychology:         character.Psychology,
		Goals:              character.Goals,
		Past:               character.Past,
		Present:            character.Present,
		Future:             character.Future,
		SpeechPatterns:     character.SpeechPatterns,
		Relationships:      character.Relationships,
		AdditionalInfo:     character.AdditionalInfo,
		CreatedAt:          FormatTS(character.CreatedAt),
		UpdatedAt:          FormatTS(character.UpdatedAt),
	}
}

// PresentCharacters presents the characters of a novel
func PresentCharacters(characters []database.Character, novel database.Novel) []Character {
	ret := []Character{}

	for _, character := range characters {
		ret = append(ret, PresentCharacter(character, novel))
	}

	return ret
}
