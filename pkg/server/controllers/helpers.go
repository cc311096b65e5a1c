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
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/plumeapp/plume/pkg/server/app"
	"github.com/plumeapp/plume/pkg/server/context"
	"github.com/plumeapp/plume/pkg/server/database"
	"github.com/plumeapp/plume/pkg/server/log"
	"github.com/plumeapp/plume/pkg/server/permissions"
)

// errInvalidRequestBody is an error for a request body that cannot be decoded
var errInvalidRequestBody = errors.New("invalid request payload")

// Response is the uniform envelope for api responses. Message is always
// present, even when blank; data and errors are omitted when unset.
type Response struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    interface{}      `json:"data,omitempty"`
	Errors  []app.FieldError `json:"errors,omitempty"`
}

func respondJSON(w http.ResponseWriter, statusCode int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.ErrorWrap(err, "encoding response")
	}
}

// respondData responds with a success envelope
func respondData(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	respondJSON(w, statusCode, Response{Success: true, Message: message, Data: data})
}

// respondErrorMessage responds with a failure envelope
func respondErrorMessage(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, Response{Success: false, Message: message})
}

// handleError converts an application error into the appropriate response.
// Unexpected errors are logged and answered with a generic message so that
// internals never leak to the client.
func handleError(w http.ResponseWriter, op string, err error) {
	var v *app.ValidationError

	switch {
	case errors.As(err, &v):
		respondJSON(w, http.StatusUnprocessableEntity, Response{
			Success: false,
			Message: "validation failed",
			Errors:  v.Errors,
		})
	case errors.Is(err, errInvalidRequestBody):
		respondErrorMessage(w, http.StatusBadRequest, errInvalidRequestBody.Error())
	case errors.Is(err, app.ErrNotFound):
		respondErrorMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, app.ErrLoginInvalid):
		respondErrorMessage(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, app.ErrUserInactive):
		respondErrorMessage(w, http.StatusForbidden, "account is deactivated. Contact the administrator")
	case errors.Is(err, app.ErrDuplicateEmail), errors.Is(err, app.ErrDuplicateUsername):
		respondErrorMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrRegistrationDisabled):
		respondErrorMessage(w, http.StatusForbidden, err.Error())
	default:
		log.WithFields(log.Fields{
			"op":    op,
			"error": err.Error(),
		}).Error("internal error")
		respondErrorMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

// parseRequestData decodes the JSON request body into the given value
func parseRequestData(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errInvalidRequestBody
	}

	return nil
}

var queryDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// parseQuery decodes the URL query of the request into the given value
func parseQuery(r *http.Request, v interface{}) error {
	if err := queryDecoder.Decode(v, r.URL.Query()); err != nil {
		return errInvalidRequestBody
	}

	return nil
}

// authUser returns the authenticated user of the request. The auth
// middleware guarantees it is set on protected routes.
func authUser(r *http.Request) *database.User {
	return context.User(r.Context())
}

// canManageNovel reports whether the requesting user may manage the novel
func canManageNovel(r *http.Request, novel database.Novel) bool {
	return permissions.CanManage(authUser(r), novel.UserID)
}

// requireChainAccess resolves the owner of a resource through resolve and
// verifies that the requesting user may manage it. It writes the error
// response and reports false when the chain is broken or access is denied.
func requireChainAccess(a *app.App, w http.ResponseWriter, r *http.Request, resolve permissions.OwnerResolver, id int) bool {
	ownerID, found, err := resolve(a.DB, id)
	if err != nil {
		handleError(w, "resolving owner", err)
		return false
	}
	if !found {
		handleError(w, "resolving owner", app.ErrNotFound)
		return false
	}

	if !permissions.CanManage(authUser(r), ownerID) {
		respondErrorMessage(w, http.StatusForbidden, "You don't have access to this novel")
		return false
	}

	return true
}

// requireNovelAccess loads a novel by its public id and verifies that the
// requesting user may manage it. It writes the error response and returns
// false when access is denied.
func requireNovelAccess(a *app.App, w http.ResponseWriter, r *http.Request, novelUUID string) (database.Novel, bool) {
	novel, err := a.GetNovelByUUID(novelUUID)
	if err != nil {
		handleError(w, "finding novel", err)
		return novel, false
	}

	if !canManageNovel(r, novel) {
		respondErrorMessage(w, http.StatusForbidden, "You don't have access to this novel")
		return novel, false
	}

	return novel, true
}
