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

	"github.com/mulecube/cubestat/internal/config"
)

// newStallingTestServer answers only after the given delay or when the
// client gives up, whichever comes first.
func newStallingTestServer(t *testing.T, delay time.Duration) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testRunnerConfig(hardwareURL, statusURL string) *config.Config {
	return &config.Config{
		HardwareURL:  hardwareURL,
		StatusURL:    statusURL,
		WifiIface:    "wlan0",
		EthIface:     "eth0",
		HTTPTimeout:  500 * time.Millisecond,
		SampleWindow: 100 * time.Millisecond,
		RunTimeout:   2 * time.Second,
	}
}

func TestRunner_Run(t *testing.T) {
	hw := newHardwareTestServer(t,
		`{"cpu_temp_c": 55.5, "throttled": false}`,
		`{"available": true, "percent": 90, "charging": true, "time_remaining": ""}`,
	)
	svc := newServicesTestServer(t, `{"total": 8, "running": 7, "failed": 1}`)

	r := NewRunner(testRunnerConfig(hw.URL, svc.URL), testLogger())
	r.local.runCommand = noCommand
	r.local.netClassPath = t.TempDir()
	r.hardware.runCommand = noCommand

	local, hardware, services := r.Run(context.Background())

	if local.Hostname == "" {
		t.Error("local Hostname is empty")
	}
	if hardware.Temperature != 55 || hardware.TempStatus != TempStatusNormal {
		t.Errorf("hardware = %+v, want temperature 55/normal", hardware)
	}
	if !hardware.BatteryAvailable || hardware.BatteryPercent == nil || *hardware.BatteryPercent != 90 {
		t.Errorf("hardware battery = %+v, want available at 90%%", hardware)
	}
	if services != (ServiceResult{Total: 8, Running: 7, Failed: 1}) {
		t.Errorf("services = %+v, want 8/7/1", services)
	}
}

func TestRunner_SidecarsDown(t *testing.T) {
	cfg := testRunnerConfig("http://127.0.0.1:1", "http://127.0.0.1:1")
	r := NewRunner(cfg, testLogger())
	r.local.runCommand = noCommand
	r.local.netClassPath = t.TempDir()
	r.hardware.runCommand = noCommand

	local, hardware, services := r.Run(context.Background())

	// Local measurements still land despite both sidecars being down.
	if local.CPU < 0 || local.CPU > 100 {
		t.Errorf("local CPU = %v, want [0, 100]", local.CPU)
	}
	if hardware != DefaultHardwareResult() {
		t.Errorf("hardware = %+v, want defaults", hardware)
	}
	if services != (ServiceResult{}) {
		t.Errorf("services = %+v, want zeros", services)
	}
}

func TestRunner_DeadlineSubstitutesDefaults(t *testing.T) {
	// Sidecars that never answer within the run deadline.
	hw := newStallingTestServer(t, 5*time.Second)
	svc := newStallingTestServer(t, 5*time.Second)

	cfg := testRunnerConfig(hw.URL, svc.URL)
	cfg.HTTPTimeout = 10 * time.Second
	cfg.SampleWindow = 100 * time.Millisecond
	cfg.RunTimeout = 700 * time.Millisecond

	r := NewRunner(cfg, testLogger())
	r.local.runCommand = noCommand
	r.local.netClassPath = t.TempDir()
	r.hardware.runCommand = noCommand

	start := time.Now()
	_, hardware, services := r.Run(context.Background())
	elapsed := time.Since(start)

	if elapsed > 3*time.Second {
		t.Errorf("Run took %v, want bounded by run timeout", elapsed)
	}
	if hardware.TempStatus != TempStatusNormal || hardware.Temperature != 0 {
		t.Errorf("hardware = %+v, want defaults past deadline", hardware)
	}
	if services != (ServiceResult{}) {
		t.Errorf("services = %+v, want zeros past deadline", services)
	}
}
