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

// User is a result of PresentUser
type User struct {
	ID            string     `json:"id"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	FullName      string     `json:"full_name"`
	Bio           string     `json:"bio"`
	AvatarURL     string     `json:"avatar_url"`
	Role          string     `json:"role"`
	Active        bool       `json:"is_active"`
	EmailVerified bool       `json:"email_verified"`
	LastLoginAt   *time.Time `json:"last_login,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// PresentUser presents a user
func PresentUser(user database.User) User {
	ret := User{
		ID:            user.UUID,
		Username:      user.Username,
		Email:         user.Email,
		FullName:      user.FullName,
		Bio:           user.Bio,
		AvatarURL:     user.AvatarURL,
		Role:          user.Role,
		Active:        user.Active,
		EmailVerified: user.EmailVerified,
		CreatedAt:     FormatTS(user.CreatedAt),
	}

	if user.LastLoginAt != nil {
		t := FormatTS(*user.LastLoginAt)
		ret.LastLoginAt = &t
	}

	return ret
}

// PresentUsers presents users
func PresentUsers(users []database.User) []User {
	ret := []User{}

	for _, user := range users {
		ret = append(ret, PresentUser(user))
	}

	return ret
}

// Session is the result of a successful login or registration
type Session struct {
	User         User   `json:"user"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// PresentSession presents a user with a fresh token pair
func PresentSession(user database.User, accessToken, refreshToken string) Session {
	return Session{
		User:         PresentUser(user),
		Token:        accessToken,
		RefreshToken: refreshToken,
	}
}
