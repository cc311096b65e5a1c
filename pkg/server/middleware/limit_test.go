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
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/plumeapp/plume/pkg/assert"
	"github.com/plumeapp/plume/pkg/server/testutils"
)

func TestLimit(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}

	t.Run("allows requests under the limit", func(t *testing.T) {
		rl := NewRateLimiter()
		server := httptest.NewServer(rl.Limit(http.HandlerFunc(handler)))
		defer server.Close()

		req := testutils.MakeReq(server.URL, "GET", "/", "")
		res := testutils.HTTPDo(t, req)

		assert.Equal(t, res.StatusCode, http.StatusOK, "status code mismatch")
	})

	t.Run("rejects requests over the burst", func(t *testing.T) {
		rl := NewRateLimiter()
		server := httptest.NewServer(rl.Limit(http.HandlerFunc(handler)))
		defer server.Close()

		var lastStatus int
		for i := 0; i < serverRateLimitBurst+10; i++ {
			req := testutils.MakeReq(server.URL, "GET", "/", "")
			req.Header.Set("X-Real-IP", "10.0.0.1")
			res := testutils.HTTPDo(t, req)
			lastStatus = res.StatusCode
			res.Body.Close()
		}

		assert.Equal(t, lastStatus, http.StatusTooManyRequests, "status code mismatch")
	})
}

func TestGetVisitorConcurrent(t *testing.T) {
	rl := NewRateLimiter()

	// concurrent hits on one identifier update lastSeen from many goroutines
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				rl.getVisitor("10.0.0.1")
			}
		}()
	}
	wg.Wait()

	first := rl.getVisitor("10.0.0.1")
	second := rl.getVisitor("10.0.0.1")
	assert.Equal(t, first == second, true, "limiter should be stable per identifier")
}

func TestApplyLimitInTest(t *testing.T) {
	t.Setenv("APP_ENV", "TEST")

	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}

	// rate limiting is a no-op in the test environment
	server := httptest.NewServer(ApplyLimit(handler, true))
	defer server.Close()

	for i := 0; i < serverRateLimitBurst+10; i++ {
		req := testutils.MakeReq(server.URL, "GET", "/", "")
		res := testutils.HTTPDo(t, req)
		assert.Equal(t, res.StatusCode, http.StatusOK, "status code mismatch")
		res.Body.Close()
	}
}
