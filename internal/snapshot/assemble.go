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

package snapshot

import (
	"fmt"
	"time"

	"github.com/mulecube/cubestat/internal/probe"
)

// Assemble merges the three probe results into one Snapshot. It is a
// pure function with no error path: every field has a deterministic
// default carried in by its probe result.
func Assemble(local probe.LocalResult, hardware probe.HardwareResult, services probe.ServiceResult, now time.Time) *Snapshot {
	return &Snapshot{
		CPU:              local.CPU,
		Memory:           local.Memory,
		Disk:             local.Disk,
		Uptime:           local.Uptime,
		Hostname:         local.Hostname,
		Wifi:             fmt.Sprintf("%d clients", local.WifiClients),
		WifiClients:      local.WifiClients,
		Ethernet:         local.Ethernet,
		Temperature:      hardware.Temperature,
		TempStatus:       hardware.TempStatus,
		BatteryAvailable: hardware.BatteryAvailable,
		BatteryPercent:   hardware.BatteryPercent,
		BatteryCharging:  hardware.BatteryCharging,
		BatteryTime:      hardware.BatteryTime,
		ServicesTotal:    services.Total,
		ServicesRunning:  services.Running,
		ServicesFailed:   services.Failed,
		Timestamp:        now.Unix(),
	}
}
