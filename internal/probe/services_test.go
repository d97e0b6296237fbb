/*
 * MIT License
 *
 * Copyright (c) 2026 Nguyen Thanh Phuong
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newServicesTestServer(t *testing.T, payload string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestServiceClient_Collect(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		status   int
		expected ServiceResult
	}{
		{
			name:     "Counters parsed",
			payload:  `{"total": 12, "running": 10, "failed": 2}`,
			status:   http.StatusOK,
			expected: ServiceResult{Total: 12, Running: 10, Failed: 2},
		},
		{
			name:     "Extra fields ignored",
			payload:  `{"total": 5, "running": 5, "stopped": 0, "failed": 0, "services": [{"name": "kiwix", "status": "running"}]}`,
			status:   http.StatusOK,
			expected: ServiceResult{Total: 5, Running: 5, Failed: 0},
		},
		{
			name:     "Server error yields zeros",
			payload:  "",
			status:   http.StatusInternalServerError,
			expected: ServiceResult{},
		},
		{
			name:     "Malformed payload yields zeros",
			payload:  `{"total": "many"}`,
			status:   http.StatusOK,
			expected: ServiceResult{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/services" {
					t.Errorf("request path = %q, want /api/services", r.URL.Path)
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.payload))
			}))
			defer srv.Close()

			c := NewServiceClient(srv.URL, 2*time.Second, testLogger())
			got := c.Collect(context.Background())
			if got != tt.expected {
				t.Errorf("Collect() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestServiceClient_Unreachable(t *testing.T) {
	c := NewServiceClient("http://127.0.0.1:1", 200*time.Millisecond, testLogger())
	got := c.Collect(context.Background())
	if got != (ServiceResult{}) {
		t.Errorf("Collect() = %+v, want all-zero result", got)
	}
}
