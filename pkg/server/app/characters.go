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

// CreateCharacterParams is the parameters for creating a character.
// The document fields are stored opaquely and never interpreted.
type CreateCharacterParams struct {
	Name               string
	Avatar             string
	PersonalData       database.Document
	PhysicalAppearance database.Document
	Psychology         database.Document
	Goals              database.Document
	Past               database.Document
	Present            database.Document
	Future             database.Document
	SpeechPatterns     database.Document
	Relationships      database.Document
	AdditionalInfo     database.Document
}

func validateCharacterName(name string) error {
	v := &ValidationError{}

	if name == "" {
		v.Add("name", "name is required")
	}
	if len(name) > 255 {
		v.Add("name", "name must be at most 255 characters")
	}

	if v.HasErrors() {
		return v
	}

	return nil
}

// CreateCharacter creates a character under the given novel
func (a *App) CreateCharacter(novel database.Novel, p CreateCharacterParams) (database.Character, error) {
	if err := validateCharacterName(p.Name); err != nil {
		return database.Character{}, err
	}

	uuid, err := helpers.GenUUID()
	if err != nil {
		return database.Character{}, err
	}

	character := database.Character{
		UUID:               uuid,
		NovelID:            novel.ID,
		Name:               p.Name,
		Avatar:             p.Avatar,
		PersonalData:       p.PersonalData,
		PhysicalAppearance: p.PhysicalAppearance,
		Psychology:         p.Psychology,
		Goals:              p.Goals,
		Past:               p.Past,
		Present:            p.Present,
		Future:             p.Future,
		SpeechPatterns:     p.SpeechPatterns,
		Relationships:      p.Relationships,
		AdditionalInfo:     p.AdditionalInfo,
	}
	if err := a.DB.Create(&character).Error; err != nil {
		return character, pkgErrors.Wrap(err, "inserting character")
	}

	return character, nil
}

// GetCharacterByUUID returns the character with the given uuid
func (a *App) GetCharacterByUUID(uuid string) (database.Character, error) {
	var character database.Character
	err := a.DB.Where("uuid = ?", uuid).First(&character).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.Character{}, ErrNotFound
	} else if err != nil {
		return database.Character{}, pkgErrors.Wrap(err, "finding character")
	}

	return character, nil
}

// ListCharacters returns the characters of a novel, most recently created first
func (a *App) ListCharacters(novelID int) ([]database.Character, error) {
	characters := []database.Character{}
	if err := a.DB.Where("novel_id = ?", novelID).Order("created_at DESC").Find(&characters).Error; err != nil {
		return nil, pkgErrors.Wrap(err, "listing characters")
	}

	return characters, nil
}

// UpdateCharacterParams is the parameters for updating a character
type UpdateCharacterParams struct {
	Name               *string
	Avatar             *string
	PersonalData       database.Document
	PhysicalAppearance database.Document
	Psychology         database.Document
	Goals              database.Document
	Past               database.Document
	Present            database.Document
	Future             database.Document
	SpeechPatterns     database.Document
	Relationships      database.Document
	AdditionalInfo     database.Document
}

// UpdateCharacter applies a partial update to the given character
func (a *App) UpdateCharacter(character database.Character, p UpdateCharacterParams) (database.Character, error) {
	if p.Name != nil {
		if err := validateCharacterName(*p.Name); err != nil {
			return character, err
		}
		character.Name = *p.Name
	}
	if p.Avatar != nil {
		character.Avatar = *p.Avatar
	}
	if p.PersonalData != nil {
		character.PersonalData = p.PersonalData
	}
	if p.PhysicalAppearance != nil {
		character.PhysicalAppearance = p.PhysicalAppearance
	}
	if p.Psychology != nil {
		character.Psychology = p.Psychology
	}
	if p.Goals != nil {
		character.Goals = p.Goals
	}
	if p.Past != nil {
		character.Past = p.Past
	}
	if p.Present != nil {
		character.Present = p.Present
	}
	if p.Future != nil {
		character.Future = p.Future
	}
	if p.SpeechPatterns != nil {
		character.SpeechPatterns = p.SpeechPatterns
	}
	if p.Relationships != nil {
		character.Relationships = p.Relationships
	}
	if p.AdditionalInfo != nil {
		character.AdditionalInfo = p.AdditionalInfo
	}

	if err := a.DB.Save(&character).Error; err != nil {
		return character, pkgErrors.Wrap(err, "saving character")
	}

	return character, nil
}

// DeleteCharacter deletes a character
func (a *App) DeleteCharacter(character database.Character) error {
	if err := a.DB.Delete(&character).Error; err != nil {
		return pkgErrors.Wrap(err, "deleting character")
	}

	return nil
}
