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

package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mulecube/cubestat/internal/probe"
	"github.com/mulecube/cubestat/internal/snapshot"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestServer_Health(t *testing.T) {
	srv := NewServer(testLogger())

	req := httptest.NewRequest("GET", "/health", http.NoBody)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /health status = %v, want %v", resp.StatusCode, http.StatusOK)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status = %q, want healthy", body["status"])
	}
}

func TestServer_SnapshotFlow(t *testing.T) {
	srv := NewServer(testLogger())

	// 1. No snapshot published yet.
	req := httptest.NewRequest("GET", "/api/snapshot", http.NoBody)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusServiceUnavailable {
		t.Errorf("GET /api/snapshot status = %v, want %v", w.Result().StatusCode, http.StatusServiceUnavailable)
	}

	// 2. Publish one and read it back.
	local := probe.DefaultLocalResult()
	local.CPU = 37
	snap := snapshot.Assemble(local, probe.DefaultHardwareResult(), probe.ServiceResult{}, time.Now())
	srv.SetSnapshot(snap)

	req = httptest.NewRequest("GET", "/api/snapshot", http.NoBody)
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/snapshot status = %v, want %v", resp.StatusCode, http.StatusOK)
	}

	var decoded snapshot.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.CPU != 37 {
		t.Errorf("CPU = %d, want 37", decoded.CPU)
	}
	if decoded.Ethernet != "Disconnected" {
		t.Errorf("Ethernet = %q, want Disconnected", decoded.Ethernet)
	}
}

func TestServer_CORSPreflight(t *testing.T) {
	srv := NewServer(testLogger())

	req := httptest.NewRequest("OPTIONS", "/api/snapshot", http.NoBody)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("OPTIONS status = %v, want %v", resp.StatusCode, http.StatusOK)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
}
