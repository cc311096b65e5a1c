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

// CreateNovelParams is the parameters for creating a novel
type CreateNovelParams struct {
	Title       string
	Description string
	CoverImage  string
}

func validateCreateNovelParams(p CreateNovelParams) error {
	v := &ValidationError{}

	if p.Title == "" {
		v.Add("title", "title is required")
	}
	if len(p.Title) > 255 {
		v.Add("title", "title must be at most 255 characters")
	}

	if v.HasErrors() {
		return v
	}

	return nil
}

// CreateNovel creates a novel owned by the given user
func (a *App) CreateNovel(user database.User, p CreateNovelParams) (database.Novel, error) {
	if err := validateCreateNovelParams(p); err != nil {
		return database.Novel{}, err
	}

	uuid, err := helpers.GenUUID()
	if err != nil {
		return database.Novel{}, err
	}

	novel := database.Novel{
		UUID:        uuid,
		UserID:      user.ID,
		Title:       p.Title,
		Description: p.Description,
		CoverImage:  p.CoverImage,
	}
	if err := a.DB.Create(&novel).Error; err != nil {
		return novel, pkgErrors.Wrap(err, "inserting novel")
	}

	return novel, nil
}

// GetNovelByUUID returns the novel with the given uuid
func (a *App) GetNovelByUUID(uuid string) (database.Novel, error) {
	var novel database.Novel
	err := a.DB.Where("uuid = ?", uuid).First(&novel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.Novel{}, ErrNotFound
	} else if err != nil {
		return database.Novel{}, pkgErrors.Wrap(err, "finding novel")
	}

	return novel, nil
}

// GetNovelByID returns the novel with the given id
func (a *App) GetNovelByID(id int) (database.Novel, error) {
	var novel database.Novel
	err := a.DB.Where("id = ?", id).First(&novel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.Novel{}, ErrNotFound
	} else if err != nil {
		return database.Novel{}, pkgErrors.Wrap(err, "finding novel")
	}

	return novel, nil
}

// ListNovels returns the novels owned by the given user, most recently
// updated first
func (a *App) ListNovels(userID int) ([]database.Novel, error) {
	novels := []database.Novel{}
	if err := a.DB.Where("user_id = ?", userID).Order("updated_at DESC").Find(&novels).Error; err != nil {
		return nil, pkgErrors.Wrap(err, "listing novels")
	}

	return novels, nil
}

// UpdateNovelParams is the parameters for updating a novel
type UpdateNovelParams struct {
	Title       *string
	Description *string
	CoverImage  *string
}

// UpdateNovel applies a partial update to the given novel
func (a *App) UpdateNovel(novel database.Novel, p UpdateNovelParams) (database.Novel, error) {
	if p.Title != nil {
		if *p.Title == "" {
			v := &ValidationError{}
			v.Add("title", "title is required")
			return novel, v
		}
		novel.Title = *p.Title
	}
	if p.Description != nil {
		novel.Description = *p.Description
	}
	if p.CoverImage != nil {
		novel.CoverImage = *p.CoverImage
	}

	if err := a.DB.Save(&novel).Error; err != nil {
		return novel, pkgErrors.Wrap(err, "saving novel")
	}

	return novel, nil
}

// DeleteNovel deletes a novel and everything nested under it
func (a *App) DeleteNovel(novel database.Novel) error {
	tx := a.DB.Begin()

	if err := deleteNovelContents(tx, novel.ID); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&novel).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting novel")
	}

	tx.Commit()

	return nil
}

// deleteNovelContents removes the rows nested under a novel. The schema
// carries no cascading foreign keys, so the cleanup happens here.
func deleteNovelContents(tx *gorm.DB, novelID int) error {
	var trackIDs []int
	if err := tx.Model(&database.Track{}).Where("novel_id = ?", novelID).Pluck("id", &trackIDs).Error; err != nil {
		return pkgErrors.Wrap(err, "listing track ids")
	}
	if len(trackIDs) > 0 {
		if err := tx.Where("track_id IN ?", trackIDs).Delete(&database.Event{}).Error; err != nil {
			return pkgErrors.Wrap(err, "deleting events")
		}
	}

	if err := tx.Where("novel_id = ?", novelID).Delete(&database.Track{}).Error; err != nil {
		return pkgErrors.Wrap(err, "deleting tracks")
	}
	if err := tx.Where("novel_id = ?", novelID).Delete(&database.Character{}).Error; err != nil {
		return pkgErrors.Wrap(err, "deleting characters")
	}
	if err := tx.Where("novel_id = ?", novelID).Delete(&database.Scene{}).Error; err != nil {
		return pkgErrors.Wrap(err, "deleting scenes")
	}
	if err := tx.Where("novel_id = ?", novelID).Delete(&database.Plot{}).Error; err != nil {
		return pkgErrors.Wrap(err, "deleting plot")
	}
	if err := tx.Where("novel_id = ?", novelID).Delete(&database.Note{}).Error; err != nil {
		return pkgErrors.Wrap(err, "deleting notes")
	}

	return nil
}

// NovelStats aggregates the size of a novel
type NovelStats struct {
	WordCount       int   `json:"word_count"`
	CharactersCount int64 `json:"characters_count"`
	ScenesCount     int64 `json:"scenes_count"`
	NotesCount      int64 `json:"notes_count"`
}

// GetNovelStats returns aggregate counts for the given novel
func (a *App) GetNovelStats(novel database.Novel) (NovelStats, error) {
	stats := NovelStats{WordCount: novel.WordCount}

	if err := a.DB.Model(&database.Character{}).Where("novel_id = ?", novel.ID).Count(&stats.CharactersCount).Error; err != nil {
		return stats, pkgErrors.Wrap(err, "counting characters")
	}
	if err := a.DB.Model(&database.Scene{}).Where("novel_id = ?", novel.ID).Count(&stats.ScenesCount).Error; err != nil {
		return stats, pkgErrors.Wrap(err, "counting scenes")
	}
	if err := a.DB.Model(&database.Note{}).Where("novel_id = ?", novel.ID).Count(&stats.NotesCount).Error; err != nil {
		return stats, pkgErrors.Wrap(err, "counting notes")
	}

	return stats, nil
}
