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

// Package probe measures system state from independent, individually
// failing sources. Every probe returns a value object and absorbs its
// own failures into documented defaults; none of them signals an error
// outward.
package probe

// Ethernet link states.
const (
	EthernetConnected    = "Connected"
	EthernetDisconnected = "Disconnected"
)

// Temperature status values. Throttled overrides the numeric thresholds.
const (
	TempStatusNormal    = "normal"
	TempStatusWarning   = "warning"
	TempStatusCritical  = "critical"
	TempStatusThrottled = "throttled"
)

// Temperature thresholds in degrees Celsius.
const (
	TempWarningThreshold  = 70
	TempCriticalThreshold = 80
)

// LocalResult holds measurements taken from local OS counters.
type LocalResult struct {
	CPU         int    // CPU utilization percent [0,100]
	Memory      int    // Memory pressure percent [0,100]
	Disk        int    // Root filesystem usage percent [0,100]
	Uptime      string // Formatted "{d}d {h}h {m}m", days omitted when zero
	Hostname    string
	WifiClients int    // Associated stations on the AP interface
	Ethernet    string // EthernetConnected or EthernetDisconnected
}

// DefaultLocalResult returns the fully degraded local measurement.
func DefaultLocalResult() LocalResult {
	return LocalResult{
		Uptime:   "0h 0m",
		Hostname: "unknown",
		Ethernet: EthernetDisconnected,
	}
}

// HardwareResult holds temperature and battery state from the
// hardware-monitor sidecar or its local fallback.
type HardwareResult struct {
	Temperature      int    // Degrees Celsius, truncated
	TempStatus       string // One of the TempStatus* values
	BatteryAvailable bool
	BatteryPercent   *int // nil unless a battery is available
	BatteryCharging  bool
	BatteryTime      string
}

// DefaultHardwareResult returns the fully degraded hardware measurement.
func DefaultHardwareResult() HardwareResult {
	return HardwareResult{
		TempStatus: TempStatusNormal,
	}
}

// ServiceResult holds dependent-service counts from the status-aggregator.
// The zero value is the documented default on source failure.
type ServiceResult struct {
	Total   int
	Running int
	Failed  int
}
