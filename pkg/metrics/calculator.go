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

package metrics

import (
	"fmt"
	"math"
)

// CPUPercent calculates CPU utilization as an integer percentage from two
// cumulative CPU time snapshots taken at the ends of a sampling window.
// Formula: truncate(100 × ΔBusy / ΔTotal), where Busy = Total - Idle.
// Returns 0 if the window has no measurable CPU time.
func CPUPercent(prev, current *CPUTimeStats) int {
	if prev.Timestamp.IsZero() || current.Timestamp.IsZero() {
		return 0
	}

	deltaTotal := current.Total() - prev.Total()
	deltaIdle := current.Idle - prev.Idle

	if deltaTotal <= 0 {
		return 0
	}

	busy := deltaTotal - deltaIdle
	return ClampPercent(int(100.0 * busy / deltaTotal))
}

// MemoryPercent calculates memory pressure as an integer percentage from
// total and available memory counters, rounded to nearest.
// Available is used instead of free so page cache does not count as pressure.
func MemoryPercent(total, available uint64) int {
	if total == 0 {
		return 0
	}

	used := float64(total - available)
	return ClampPercent(int(math.Round(used / float64(total) * 100.0)))
}

// ClampPercent constrains a percentage value to the [0, 100] range.
func ClampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// FormatUptime converts seconds since boot into a "{d}d {h}h {m}m" string.
// The day component is omitted entirely when zero, e.g. 3661s → "1h 1m".
func FormatUptime(seconds uint64) string {
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60

	if days == 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
}
