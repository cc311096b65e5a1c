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
	pkgErrors "github.com/pkg/errors"
	"github.com/plumeapp/plume/pkg/server/database"
)

// ListUsers returns all users, most recently registered first
func (a *App) ListUsers() ([]database.User, error) {
	users := []database.User{}
	if err := a.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, pkgErrors.Wrap(err, "listing users")
	}

	return users, nil
}

// SetUserActive toggles the active flag of the given user
func (a *App) SetUserActive(user database.User, active bool) error {
	if err := a.DB.Model(&user).Update("active", active).Error; err != nil {
		return pkgErrors.Wrap(err, "updating active flag")
	}

	return nil
}

// DeleteUser deletes a user and everything they own
func (a *App) DeleteUser(user database.User) error {
	tx := a.DB.Begin()

	var novels []database.Novel
	if err := tx.Where("user_id = ?", user.ID).Find(&novels).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "listing novels")
	}

	for _, novel := range novels {
		if err := deleteNovelContents(tx, novel.ID); err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Where("user_id = ?", user.ID).Delete(&database.Novel{}).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting novels")
	}

	if err := tx.Delete(&user).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting user")
	}

	tx.Commit()

	return nil
}

// UserStats aggregates the user population
type UserStats struct {
	TotalUsers    int64 `json:"total_users"`
	ActiveUsers   int64 `json:"active_users"`
	InactiveUsers int64 `json:"inactive_users"`
	AdminUsers    int64 `json:"admin_users"`
	TotalNovels   int64 `json:"total_novels"`
}

// GetUserStats returns aggregate counts across all users
func (a *App) GetUserStats() (UserStats, error) {
	var stats UserStats

	if err := a.DB.Model(&database.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return stats, pkgErrors.Wrap(err, "counting users")
	}
	if err := a.DB.Model(&database.User{}).Where("active = ?", true).Count(&stats.ActiveUsers).Error; err != nil {
		return stats, pkgErrors.Wrap(err, "counting active users")
	}
	stats.InactiveUsers = stats.TotalUsers - stats.ActiveUsers

	if err := a.DB.Model(&database.User{}).Where("role = ?", database.RoleAdmin).Count(&stats.AdminUsers).Error; err != nil {
		return stats, pkgErrors.Wrap(err, "counting admins")
	}
	if err := a.DB.Model(&database.Novel{}).Count(&stats.TotalNovels).Error; err != nil {
		return stats, pkgErrors.Wrap(err, "counting novels")
	}

	return stats, nil
}
