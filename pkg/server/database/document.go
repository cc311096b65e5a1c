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

package database

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"
)

// Document is an opaque JSON object. It is stored and returned verbatim and
// never interpreted beyond its shape. An empty Document reads as {}.
type Document json.RawMessage

// List is an opaque JSON array. An empty List reads as [].
type List json.RawMessage

func firstToken(b []byte) byte {
	trimmed := bytes.TrimLeft(b, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}

	return trimmed[0]
}

// IsJSONObject reports whether the given raw JSON encodes an object
func IsJSONObject(b []byte) bool {
	return firstToken(b) == '{' && json.Valid(b)
}

// IsJSONArray reports whether the given raw JSON encodes an array
func IsJSONArray(b []byte) bool {
	return firstToken(b) == '[' && json.Valid(b)
}

// MarshalJSON implements json.Marshaler
func (d Document) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("{}"), nil
	}

	return d, nil
}

// UnmarshalJSON implements json.Unmarshaler. A JSON null leaves the value
// untouched, per the json.Unmarshaler convention.
func (d *Document) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	if !IsJSONObject(b) {
		return errors.New("expected a JSON object")
	}

	*d = append((*d)[0:0], b...)
	return nil
}

// Value implements driver.Valuer
func (d Document) Value() (driver.Value, error) {
	if len(d) == 0 {
		return "{}", nil
	}

	return string(d), nil
}

// Scan implements sql.Scanner
func (d *Document) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Document("{}")
	case string:
		if v == "" {
			*d = Document("{}")
		} else {
			*d = Document(v)
		}
	case []byte:
		if len(v) == 0 {
			*d = Document("{}")
		} else {
			*d = append(Document{}, v...)
		}
	default:
		return errors.Errorf("unsupported document source type %T", src)
	}

	return nil
}

// MarshalJSON implements json.Marshaler
func (l List) MarshalJSON() ([]byte, error) {
	if len(l) == 0 {
		return []byte("[]"), nil
	}

	return l, nil
}

// UnmarshalJSON implements json.Unmarshaler. A JSON null leaves the value
// untouched, per the json.Unmarshaler convention.
func (l *List) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	if !IsJSONArray(b) {
		return errors.New("expected a JSON array")
	}

	*l = append((*l)[0:0], b...)
	return nil
}

// Value implements driver.Valuer
func (l List) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}

	return string(l), nil
}

// Scan implements sql.Scanner
func (l *List) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = List("[]")
	case string:
		if v == "" {
			*l = List("[]")
		} else {
			*l = List(v)
		}
	case []byte:
		if len(v) == 0 {
			*l = List("[]")
		} else {
			*l = append(List{}, v...)
		}
	default:
		return errors.Errorf("unsupported list source type %T", src)
	}

	return nil
}
