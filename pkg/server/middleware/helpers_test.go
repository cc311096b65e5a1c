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
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/plumeapp/plume/pkg/assert"
)

func TestGetCredential(t *testing.T) {
	testCases := []struct {
		authHeaderStr string
		expected      string
		expectErr     bool
	}{
		{
			authHeaderStr: "Bearer foo",
			expected:      "foo",
		},
		{
			authHeaderStr: "",
			expected:      "",
		},
		{
			authHeaderStr: "InvalidFormat",
			expectErr:     true,
		},
		{
			authHeaderStr: "Basic Zm9vOmJhcg==",
			expectErr:     true,
		},
	}

	for _, tc := range testCases {
		r, err := http.NewRequest("GET", "/", nil)
		if err != nil {
			t.Fatal(errors.Wrap(err, "constructing request"))
		}

		if tc.authHeaderStr != "" {
			r.Header.Set("Authorization", tc.authHeaderStr)
		}

		got, err := GetCredential(r)
		if tc.expectErr {
			assert.Equal(t, err, ErrInvalidAuthHeader, "error mismatch")
			continue
		}
		if err != nil {
			t.Fatal(errors.Wrap(err, "executing"))
		}

		assert.Equal(t, got, tc.expected, "result mismatch")
	}
}
