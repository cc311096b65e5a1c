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

package controllers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/plumeapp/plume/pkg/server/app"
	"github.com/plumeapp/plume/pkg/server/database"
	"github.com/plumeapp/plume/pkg/server/helpers"
	"github.com/plumeapp/plume/pkg/server/presenters"
)

// NewAdmin creates a new Admin controller
func NewAdmin(app *app.App) *Admin {
	return &Admin{
		app: app,
	}
}

// Admin is a controller for user administration. Every route is guarded by
// the admin middleware.
type Admin struct {
	app *app.App
}

// targetUser resolves the user named by the path. An unparsable id behaves
// like a missing user. The self flag reports whether the target is the
// requesting admin.
func (c *Admin) targetUser(w http.ResponseWriter, r *http.Request) (database.User, bool, bool) {
	vars := mux.Vars(r)

	canonical, ok := helpers.CanonicalUUID(vars["userUUID"])
	if !ok {
		handleError(w, "parsing user id", app.ErrNotFound)
		return database.User{}, false, false
	}

	user, err := c.app.GetUserByUUID(canonical)
	if err != nil {
		handleError(w, "finding user", err)
		return user, false, false
	}

	return user, user.ID == authUser(r).ID, true
}

// Index handles GET /api/admin/users
func (c *Admin) Index(w http.ResponseWriter, r *http.Request) {
	users, err := c.app.ListUsers()
	if err != nil {
		handleError(w, "listing users", err)
		return
	}

	respondData(w, http.StatusOK, "", presenters.PresentUsers(users))
}

// Stats handles GET /api/admin/users/stats
func (c *Admin) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.app.GetUserStats()
	if err != nil {
		handleError(w, "getting user stats", err)
		return
	}

	respondData(w, http.StatusOK, "", stats)
}

// Show handles GET /api/admin/users/{userUUID}
func (c *Admin) Show(w http.ResponseWriter, r *http.Request) {
	user, _, ok := c.targetUser(w, r)
	if !ok {
		return
	}

	respondData(w, http.StatusOK, "", presenters.PresentUser(user))
}

type setStatusPayload struct {
	Active *bool `json:"is_active"`
}

// SetStatus handles PATCH /api/admin/users/{userUUID}/status. Admins may
// not change their own active flag.
func (c *Admin) SetStatus(w http.ResponseWriter, r *http.Request) {
	user, self, ok := c.targetUser(w, r)
	if !ok {
		return
	}
	if self {
		respondErrorMessage(w, http.StatusBadRequest, "You cannot change your own status")
		return
	}

	var payload setStatusPayload
	if err := parseRequestData(r, &payload); err != nil {
		handleError(w, "parsing payload", err)
		return
	}
	if payload.Active == nil {
		respondErrorMessage(w, http.StatusBadRequest, "is_active is required")
		return
	}

	if err := c.app.SetUserActive(user, *payload.Active); err != nil {
		handleError(w, "setting user status", err)
		return
	}

	user.Active = *payload.Active

	message := "User deactivated successfully"
	if *payload.Active {
		message = "User activated successfully"
	}

	respondData(w, http.StatusOK, message, presenters.PresentUser(user))
}

// Delete handles DELETE /api/admin/users/{userUUID}. Admins may not delete
// their own account.
func (c *Admin) Delete(w http.ResponseWriter, r *http.Request) {
	user, self, ok := c.targetUser(w, r)
	if !ok {
		return
	}
	if self {
		respondErrorMessage(w, http.StatusBadRequest, "You cannot delete your own account")
		return
	}

	if err := c.app.DeleteUser(user); err != nil {
		handleError(w, "deleting user", err)
		return
	}

	respondData(w, http.StatusOK, "User deleted successfully", nil)
}
