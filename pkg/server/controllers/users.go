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

	"github.com/pkg/errors"
	"github.com/plumeapp/plume/pkg/server/app"
	"github.com/plumeapp/plume/pkg/server/database"
	"github.com/plumeapp/plume/pkg/server/presenters"
	"github.com/plumeapp/plume/pkg/server/token"
)

// NewUsers creates a new Users controller
func NewUsers(app *app.App) *Users {
	return &Users{
		app: app,
	}
}

// Users is a users controller
type Users struct {
	app *app.App
}

func (u *Users) newSession(user database.User) (presenters.Session, error) {
	accessToken, err := u.app.TokenSigner.IssueAccess(user.UUID, user.Role)
	if err != nil {
		return presenters.Session{}, errors.Wrap(err, "issuing access token")
	}

	refreshToken, err := u.app.TokenSigner.IssueRefresh(user.UUID)
	if err != nil {
		return presenters.Session{}, errors.Wrap(err, "issuing refresh token")
	}

	return presenters.PresentSession(user, accessToken, refreshToken), nil
}

type registerPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// Register handles POST /api/auth/register
func (u *Users) Register(w http.ResponseWriter, r *http.Request) {
	var payload registerPayload
	if err := parseRequestData(r, &payload); err != nil {
		handleError(w, "parsing payload", err)
		return
	}

	user, err := u.app.CreateUser(app.CreateUserParams{
		Username: payload.Username,
		Email:    payload.Email,
		Password: payload.Password,
		FullName: payload.FullName,
	})
	if err != nil {
		handleError(w, "registering user", err)
		return
	}

	session, err := u.newSession(user)
	if err != nil {
		handleError(w, "creating session", err)
		return
	}

	respondData(w, http.StatusCreated, "User registered successfully", session)
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login
func (u *Users) Login(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := parseRequestData(r, &payload); err != nil {
		handleError(w, "parsing payload", err)
		return
	}

	user, err := u.app.Authenticate(payload.Email, payload.Password)
	if err != nil {
		handleError(w, "authenticating user", err)
		return
	}

	if err := u.app.SignIn(user); err != nil {
		handleError(w, "signing in", err)
		return
	}

	session, err := u.newSession(*user)
	if err != nil {
		handleError(w, "creating session", err)
		return
	}

	respondData(w, http.StatusOK, "Login successful", session)
}

type refreshPayload struct {
	RefreshToken string `json:"refreshToken"`
}

// Refresh handles POST /api/auth/refresh. It verifies the given refresh
// token and answers with a fresh token pair.
func (u *Users) Refresh(w http.ResponseWriter, r *http.Request) {
	var payload refreshPayload
	if err := parseRequestData(r, &payload); err != nil {
		handleError(w, "parsing payload", err)
		return
	}

	claims, err := u.app.TokenSigner.Verify(payload.RefreshToken, token.KindRefresh)
	if err != nil {
		respondErrorMessage(w, http.StatusUnauthorized, "invalid or expired refresh token")
		return
	}

	user, err := u.app.GetUserByUUID(claims.UserUUID)
	if err != nil {
		handleError(w, "finding user", err)
		return
	}
	if !user.Active {
		handleError(w, "refreshing session", app.ErrUserInactive)
		return
	}

	session, err := u.newSession(user)
	if err != nil {
		handleError(w, "creating session", err)
		return
	}

	respondData(w, http.StatusOK, "Token refreshed successfully", session)
}

// GetProfile handles GET /api/auth/profile
func (u *Users) GetProfile(w http.ResponseWriter, r *http.Request) {
	user := authUser(r)

	respondData(w, http.StatusOK, "", presenters.PresentUser(*user))
}

type updateProfilePayload struct {
	FullName  *string `json:"full_name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}

// UpdateProfile handles PUT /api/auth/profile
func (u *Users) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := authUser(r)

	var payload updateProfilePayload
	if err := parseRequestData(r, &payload); err != nil {
		handleError(w, "parsing payload", err)
		return
	}

	updated, err := u.app.UpdateProfile(*user, app.UpdateProfileParams{
		FullName:  payload.FullName,
		Bio:       payload.Bio,
		AvatarURL: payload.AvatarURL,
	})
	if err != nil {
		handleError(w, "updating profile", err)
		return
	}

	respondData(w, http.StatusOK, "Profile updated successfully", presenters.PresentUser(updated))
}
