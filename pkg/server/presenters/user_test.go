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
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/plumeapp/plume/pkg/assert"
	"github.com/plumeapp/plume/pkg/server/database"
)

func TestPresentUser(t *testing.T) {
	createdAt := time.Date(2025, 1, 15, 10, 30, 45, 123456789, time.UTC)

	input := database.User{
		Model: database.Model{
			ID:        42,
			CreatedAt: createdAt,
		},
		UUID:         "9a8b7c6d-5e4f-4321-9876-543210fedcba",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         database.RoleUser,
		FullName:     "Alice Example",
		Active:       true,
	}

	got := PresentUser(input)

	assert.Equal(t, got.ID, "9a8b7c6d-5e4f-4321-9876-543210fedcba", "ID mismatch")
	assert.Equal(t, got.Username, "alice", "Username mismatch")
	assert.Equal(t, got.FullName, "Alice Example", "FullName mismatch")
	assert.Equal(t, got.Active, true, "Active mismatch")
	assert.Equal(t, got.CreatedAt, FormatTS(createdAt), "CreatedAt mismatch")

	// the password hash must never appear in a response
	b, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshalling: %v", err)
	}
	if strings.Contains(string(b), "abcdefghijklmnopqrstuv") {
		t.Error("password hash leaked into the presented user")
	}
}

func TestPresentCharacterDocuments(t *testing.T) {
	novel := database.Novel{UUID: "novel-uuid"}
	input := database.Character{
		UUID:         "char-uuid",
		Name:         "Maren",
		PersonalData: database.Document(`{"age":34,"keys":["a","b"]}`),
	}

	got := PresentCharacter(input, novel)

	b, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshalling: %v", err)
	}

	// document fields pass through verbatim
	if !strings.Contains(string(b), `"personal_data":{"age":34,"keys":["a","b"]}`) {
		t.Errorf("personal data was reshaped: %s", string(b))
	}
	// absent documents present as empty objects, not null
	if !strings.Contains(string(b), `"psychology":{}`) {
		t.Errorf("empty document did not default to an object: %s", string(b))
	}
}
