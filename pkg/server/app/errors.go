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
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is an error for a nonexistent resource
	ErrNotFound = errors.New("not found")
	// ErrLoginInvalid is an error for invalid login credentials
	ErrLoginInvalid = errors.New("invalid credentials")
	// ErrUserInactive is an error for a deactivated account
	ErrUserInactive = errors.New("account is deactivated")
	// ErrDuplicateEmail is an error for a duplicate email at registration
	ErrDuplicateEmail = errors.New("email is already registered")
	// ErrDuplicateUsername is an error for a duplicate username at registration
	ErrDuplicateUsername = errors.New("username is already taken")
	// ErrRegistrationDisabled is an error for registration being disabled
	ErrRegistrationDisabled = errors.New("registration is disabled")
)

// FieldError describes a single validation failure on a named field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates all validation failures of a request
// so that clients see every violation at once
type ValidationError struct {
	Errors []FieldError
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}

	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

// Add records a validation failure for the given field
func (e *ValidationError) Add(field, message string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: message})
}

// HasErrors returns true if any failure was recorded
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}
