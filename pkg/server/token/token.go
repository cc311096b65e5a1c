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

// Package token issues and verifies the signed credentials that authenticate
// API requests. Access tokens carry the user id and role; refresh tokens carry
// the user id only and are signed with a separate secret.
package token

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const (
	// KindAccess identifies an access token
	KindAccess = "access"
	// KindRefresh identifies a refresh token
	KindRefresh = "refresh"
)

// ErrInvalidToken is an error for a token that is malformed, expired, signed
// with the wrong secret, or of the wrong kind.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the claim set carried by access and refresh tokens
type Claims struct {
	UserUUID string `json:"uid"`
	Role     string `json:"role,omitempty"`
	Kind     string `json:"kind"`
	jwt.RegisteredClaims
}

// Signer issues and verifies tokens
type Signer struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Now           func() time.Time
}

func (s *Signer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}

	return time.Now()
}

func (s *Signer) sign(claims Claims, secret []byte) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := t.SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}

	return signed, nil
}

// IssueAccess issues an access token for the given user
func (s *Signer) IssueAccess(userUUID, role string) (string, error) {
	now := s.now()
	claims := Claims{
		UserUUID: userUUID,
		Role:     role,
		Kind:     KindAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.AccessTTL)),
		},
	}

	return s.sign(claims, s.AccessSecret)
}

// IssueRefresh issues a refresh token for the given user
func (s *Signer) IssueRefresh(userUUID string) (string, error) {
	now := s.now()
	claims := Claims{
		UserUUID: userUUID,
		Kind:     KindRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.RefreshTTL)),
		},
	}

	return s.sign(claims, s.RefreshSecret)
}

// Verify parses and validates a token of the given kind. It returns
// ErrInvalidToken when the signature is invalid, the token is expired, or the
// token is of a different kind than requested.
func (s *Signer) Verify(tokenStr, kind string) (*Claims, error) {
	secret := s.AccessSecret
	if kind == KindRefresh {
		secret = s.RefreshSecret
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}

		return secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Kind != kind {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
