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

// Package permissions decides whether a requester may act on a resource.
// Every owned resource derives its access control from its novel's owner;
// timeline events derive it through their track's novel.
package permissions

import (
	"errors"

	"github.com/plumeapp/plume/pkg/server/database"
	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// OwnerResolver resolves the owning user id for a resource of some kind,
// given its primary id. The boolean result is false when the resource, or
// anything on its chain to the novel, does not exist.
type OwnerResolver func(db *gorm.DB, id int) (int, bool, error)

// CanManage checks if the given user may act on a resource owned by the user
// with ownerID. Admins may act on any resource.
func CanManage(user *database.User, ownerID int) bool {
	if user == nil {
		return false
	}
	if ownerID == 0 {
		return false
	}

	return user.ID == ownerID || user.Role == database.RoleAdmin
}

// NovelOwner resolves the owning user id of the given novel. The boolean
// result is false when the novel does not exist.
func NovelOwner(db *gorm.DB, novelID int) (int, bool, error) {
	var novel database.Novel
	err := db.Select("user_id").Where("id = ?", novelID).First(&novel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, pkgErrors.Wrap(err, "finding novel")
	}

	return novel.UserID, true, nil
}

// TrackOwner resolves the owning user id of the given timeline track by
// following the track to its novel.
func TrackOwner(db *gorm.DB, trackID int) (int, bool, error) {
	var track database.Track
	err := db.Select("novel_id").Where("id = ?", trackID).First(&track).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, pkgErrors.Wrap(err, "finding track")
	}

	return NovelOwner(db, track.NovelID)
}

// EventOwner resolves the owning user id of the given timeline event by
// following the chain event -> track -> novel.
func EventOwner(db *gorm.DB, eventID int) (int, bool, error) {
	var event database.Event
	err := db.Select("track_id").Where("id = ?", eventID).First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, pkgErrors.Wrap(err, "finding event")
	}

	return TrackOwner(db, event.TrackID)
}
