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

// Package middleware provides the middlewares for the api
package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/plumeapp/plume/pkg/server/log"
)

// ErrInvalidAuthHeader is an error for a malformed authorization header
var ErrInvalidAuthHeader = errors.New("invalid authorization header")

// GetCredential extracts the bearer credential from the authorization
// header of the given request. It returns an empty string if the header
// is not set.
func GetCredential(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", nil
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", ErrInvalidAuthHeader
	}

	return parts[1], nil
}

type errorResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(errorResp{Success: false, Message: message}); err != nil {
		log.ErrorWrap(err, "encoding error response")
	}
}

// RespondUnauthorized responds with a 401 envelope
func RespondUnauthorized(w http.ResponseWriter) {
	respondError(w, "unauthorized", http.StatusUnauthorized)
}

// RespondForbidden responds with a 403 envelope
func RespondForbidden(w http.ResponseWriter) {
	respondError(w, "forbidden", http.StatusForbidden)
}

// DoError logs the given error and responds with a generic message
func DoError(w http.ResponseWriter, msg string, err error, statusCode int) {
	log.ErrorWrap(err, msg)
	respondError(w, "internal server error", statusCode)
}
