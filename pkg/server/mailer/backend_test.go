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

package mailer

import (
	"testing"

	"github.com/plumeapp/plume/pkg/server/config"
	"gopkg.in/gomail.v2"
)

type mockDialer struct {
	sentMessages []*gomail.Message
	err          error
}

func (m *mockDialer) DialAndSend(msgs ...*gomail.Message) error {
	m.sentMessages = append(m.sentMessages, msgs...)
	return m.err
}

func TestDefaultBackendSendEmail(t *testing.T) {
	mock := &mockDialer{}
	backend := &DefaultBackend{
		Dialer:    mock,
		Templates: NewTemplates(),
	}

	err := backend.SendEmail(EmailTypeWelcome, "noreply@example.com", []string{"bob@example.com"}, WelcomeTmplData{
		Username:     "bob",
		AccountEmail: "bob@example.com",
	})
	if err != nil {
		t.Fatalf("SendEmail failed: %v", err)
	}

	if len(mock.sentMessages) != 1 {
		t.Errorf("expected 1 message sent, got %d", len(mock.sentMessages))
	}
}

func TestNewDefaultBackend(t *testing.T) {
	t.Run("with all params set", func(t *testing.T) {
		backend, err := NewDefaultBackend(config.SMTP{
			Host:     "smtp.example.com",
			Port:     587,
			Username: "user@example.com",
			Password: "secret",
		})
		if err != nil {
			t.Fatalf("NewDefaultBackend failed: %v", err)
		}
		if backend == nil {
			t.Fatal("expected a backend")
		}
	})

	t.Run("without params", func(t *testing.T) {
		_, err := NewDefaultBackend(config.SMTP{})
		if err != ErrSMTPNotConfigured {
			t.Fatalf("expected ErrSMTPNotConfigured, got %v", err)
		}
	})
}
