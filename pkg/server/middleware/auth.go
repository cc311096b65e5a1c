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

package middleware

import (
	"errors"
	"net/http"

	pkgErrors "github.com/pkg/errors"
	"github.com/plumeapp/plume/pkg/server/app"
	"github.com/plumeapp/plume/pkg/server/context"
	"github.com/plumeapp/plume/pkg/server/database"
	"github.com/plumeapp/plume/pkg/server/token"
)

// AuthWithBearer authenticates the request with a bearer access token.
// It returns the user only if the token verifies and the account is active.
func AuthWithBearer(a *app.App, r *http.Request) (database.User, bool, error) {
	var user database.User

	cred, err := GetCredential(r)
	if err != nil {
		// a malformed header is treated as a guest, not an error
		return user, false, nil
	}
	if cred == "" {
		return user, false, nil
	}

	claims, err := a.TokenSigner.Verify(cred, token.KindAccess)
	if err != nil {
		return user, false, nil
	}

	user, err = a.GetUserByUUID(claims.UserUUID)
	if errors.Is(err, app.ErrNotFound) {
		return user, false, nil
	} else if err != nil {
		return user, false, pkgErrors.Wrap(err, "finding user from token")
	}

	if !user.Active {
		return user, false, nil
	}

	return user, true, nil
}

// Auth is an authentication middleware
func Auth(a *app.App, next http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok, err := AuthWithBearer(a, r)
		if err != nil {
			DoError(w, "authenticating with bearer token", err, http.StatusInternalServerError)
			return
		}
		if !ok {
			RespondUnauthorized(w)
			return
		}

		ctx := context.WithUser(r.Context(), &user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly is an authentication middleware that also requires the admin role
func AdminOnly(a *app.App, next http.HandlerFunc) http.HandlerFunc {
	return Auth(a, func(w http.ResponseWriter, r *http.Request) {
		user := context.User(r.Context())
		if user == nil || user.Role != database.RoleAdmin {
			RespondForbidden(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}
