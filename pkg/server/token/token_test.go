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

package token

import (
	"testing"
	"time"

	"github.com/plumeapp/plume/pkg/assert"
	"github.com/pkg/errors"
)

func newTestSigner(now func() time.Time) *Signer {
	return &Signer{
		AccessSecret:  []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
		AccessTTL:     7 * 24 * time.Hour,
		RefreshTTL:    30 * 24 * time.Hour,
		Now:           now,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	s := newTestSigner(nil)

	tok, err := s.IssueAccess("9fa72cbe-d6b6-4085-a217-a3a56ef0b451", "admin")
	if err != nil {
		t.Fatal(errors.Wrap(err, "issuing token"))
	}

	claims, err := s.Verify(tok, KindAccess)
	if err != nil {
		t.Fatal(errors.Wrap(err, "verifying token"))
	}

	assert.Equal(t, claims.UserUUID, "9fa72cbe-d6b6-4085-a217-a3a56ef0b451", "user uuid mismatch")
	assert.Equal(t, claims.Role, "admin", "role mismatch")
	assert.Equal(t, claims.Kind, KindAccess, "kind mismatch")
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	s := newTestSigner(nil)

	tok, err := s.IssueRefresh("9fa72cbe-d6b6-4085-a217-a3a56ef0b451")
	if err != nil {
		t.Fatal(errors.Wrap(err, "issuing token"))
	}

	claims, err := s.Verify(tok, KindRefresh)
	if err != nil {
		t.Fatal(errors.Wrap(err, "verifying token"))
	}

	assert.Equal(t, claims.UserUUID, "9fa72cbe-d6b6-4085-a217-a3a56ef0b451", "user uuid mismatch")
	assert.Equal(t, claims.Role, "", "refresh token must not carry a role")
}

func TestVerifyRejectsWrongKind(t *testing.T) {
	s := newTestSigner(nil)

	refresh, err := s.IssueRefresh("9fa72cbe-d6b6-4085-a217-a3a56ef0b451")
	if err != nil {
		t.Fatal(errors.Wrap(err, "issuing token"))
	}

	// A refresh token is signed with a different secret and carries a
	// different kind; it must never pass as an access token.
	_, err = s.Verify(refresh, KindAccess)
	assert.Equal(t, err, ErrInvalidToken, "error mismatch")
}

func TestVerifyRejectsExpired(t *testing.T) {
	current := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	s := newTestSigner(func() time.Time { return current })

	tok, err := s.IssueAccess("9fa72cbe-d6b6-4085-a217-a3a56ef0b451", "user")
	if err != nil {
		t.Fatal(errors.Wrap(err, "issuing token"))
	}

	current = current.Add(8 * 24 * time.Hour)

	_, err = s.Verify(tok, KindAccess)
	assert.Equal(t, err, ErrInvalidToken, "error mismatch")
}

func TestVerifyRejectsTampered(t *testing.T) {
	s := newTestSigner(nil)

	tok, err := s.IssueAccess("9fa72cbe-d6b6-4085-a217-a3a56ef0b451", "user")
	if err != nil {
		t.Fatal(errors.Wrap(err, "issuing token"))
	}

	other := newTestSigner(nil)
	other.AccessSecret = []byte("some-other-secret")

	_, err = other.Verify(tok, KindAccess)
	assert.Equal(t, err, ErrInvalidToken, "error mismatch")
}
