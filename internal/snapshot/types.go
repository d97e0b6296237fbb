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

// Package snapshot assembles probe results into one immutable telemetry
// record and publishes it atomically for the dashboard to read.
package snapshot

// Snapshot is the complete telemetry record published on every run.
// It is built fresh each run and never mutated after assembly; the
// field order matches the document the dashboard consumes.
type Snapshot struct {
	CPU              int    `json:"cpu"`
	Memory           int    `json:"memory"`
	Disk             int    `json:"disk"`
	Uptime           string `json:"uptime"`
	Hostname         string `json:"hostname"`
	Wifi             string `json:"wifi"`
	WifiClients      int    `json:"wifi_clients"`
	Ethernet         string `json:"ethernet"`
	Temperature      int    `json:"temperature"`
	TempStatus       string `json:"temp_status"`
	BatteryAvailable bool   `json:"battery_available"`
	BatteryPercent   *int   `json:"battery_percent"`
	BatteryCharging  bool   `json:"battery_charging"`
	BatteryTime      string `json:"battery_time"`
	ServicesTotal    int    `json:"services_total"`
	ServicesRunning  int    `json:"services_running"`
	ServicesFailed   int    `json:"services_failed"`
	Timestamp        int64  `json:"timestamp"`
}
