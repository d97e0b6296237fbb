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
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/mulecube/cubestat/pkg/metrics"
)

// commandFunc executes an external command and returns its combined output.
// Swappable so tests can stub out hostapd_cli/iw/vcgencmd.
type commandFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

var macLineRe = regexp.MustCompile(`(?m)^([0-9a-fA-F]{2}:){5}[0-9a-fA-F]{2}$`)

// LocalProbe measures CPU, memory, disk, uptime, hostname, WiFi client
// count and wired link state from local OS counters. It performs no
// network calls and never fails as a whole; every sub-measurement
// degrades to its default independently.
type LocalProbe struct {
	wifiIface    string
	ethIface     string
	sampleWindow time.Duration
	netClassPath string // sysfs network class root, overridable in tests
	runCommand   commandFunc
	logger       *slog.Logger
}

// NewLocalProbe creates a new local metrics probe.
func NewLocalProbe(wifiIface, ethIface string, sampleWindow time.Duration, logger *slog.Logger) *LocalProbe {
	return &LocalProbe{
		wifiIface:    wifiIface,
		ethIface:     ethIface,
		sampleWindow: sampleWindow,
		netClassPath: "/sys/class/net",
		runCommand:   runCommand,
		logger:       logger,
	}
}

// Collect gathers all local measurements. The CPU sampling window
// dominates its runtime; everything else is a fast counter read.
func (p *LocalProbe) Collect(ctx context.Context) LocalResult {
	result := DefaultLocalResult()

	// CPU utilization over a two-point sampling window. The window sleep
	// is context-aware so an expiring run deadline cuts it short.
	prev := p.readCPUTimes()
	select {
	case <-time.After(p.sampleWindow):
		current := p.readCPUTimes()
		result.CPU = metrics.CPUPercent(&prev, &current)
	case <-ctx.Done():
		p.logger.Warn("CPU sampling window cut short by deadline")
	}

	if vmStat, err := mem.VirtualMemory(); err == nil {
		result.Memory = metrics.MemoryPercent(vmStat.Total, vmStat.Available)
	} else {
		p.logger.Warn("Failed to read memory counters", "error", err)
	}

	if usage, err := disk.Usage("/"); err == nil {
		result.Disk = metrics.ClampPercent(int(usage.UsedPercent))
	} else {
		p.logger.Warn("Failed to read root filesystem usage", "error", err)
	}

	if uptime, err := host.Uptime(); err == nil {
		result.Uptime = metrics.FormatUptime(uptime)
	} else {
		p.logger.Warn("Failed to read uptime", "error", err)
	}

	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		result.Hostname = hostname
	}

	result.WifiClients = p.countWifiClients(ctx)
	result.Ethernet = p.ethernetState()

	return result
}

// readCPUTimes snapshots the cumulative CPU time counters. A zero
// Timestamp marks the sample unreadable, which CPUPercent treats as 0.
func (p *LocalProbe) readCPUTimes() metrics.CPUTimeStats {
	times, err := cpu.Times(false)
	if err != nil || len(times) == 0 {
		p.logger.Warn("Failed to read CPU time counters", "error", err)
		return metrics.CPUTimeStats{}
	}

	t := times[0]
	return metrics.CPUTimeStats{
		User:      t.User,
		System:    t.System,
		Idle:      t.Idle,
		IOWait:    t.Iowait,
		Irq:       t.Irq,
		SoftIrq:   t.Softirq,
		Steal:     t.Steal,
		Timestamp: time.Now(),
	}
}

// countWifiClients counts stations associated with the AP interface.
// hostapd_cli is authoritative when the AP is managed by hostapd; iw is
// the fallback. Tool or interface absence is not an error, just zero.
func (p *LocalProbe) countWifiClients(ctx context.Context) int {
	if out, err := p.runCommand(ctx, "hostapd_cli", "-i", p.wifiIface, "all_sta"); err == nil {
		if n := len(macLineRe.FindAll(out, -1)); n > 0 {
			return n
		}
	}

	out, err := p.runCommand(ctx, "iw", "dev", p.wifiIface, "station", "dump")
	if err != nil {
		return 0
	}

	count := 0
	for _, line := range strings.Split(string(out), "\n") {
		if strings.HasPrefix(line, "Station ") {
			count++
		}
	}
	return count
}

// ethernetState reports the wired link carrier state. Any read failure
// yields Disconnected.
func (p *LocalProbe) ethernetState() string {
	data, err := os.ReadFile(filepath.Join(p.netClassPath, p.ethIface, "carrier"))
	if err != nil {
		return EthernetDisconnected
	}
	if strings.TrimSpace(string(data)) == "1" {
		return EthernetConnected
	}
	return EthernetDisconnected
}
