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
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLocalProbe_Collect(t *testing.T) {
	p := NewLocalProbe("wlan0", "eth0", 100*time.Millisecond, testLogger())
	// No WiFi tools in the test environment; stub them as absent.
	p.runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, errors.New("not installed")
	}
	p.netClassPath = t.TempDir()

	result := p.Collect(context.Background())

	if result.CPU < 0 || result.CPU > 100 {
		t.Errorf("CPU = %v, want [0, 100]", result.CPU)
	}
	if result.Memory < 0 || result.Memory > 100 {
		t.Errorf("Memory = %v, want [0, 100]", result.Memory)
	}
	if result.Disk < 0 || result.Disk > 100 {
		t.Errorf("Disk = %v, want [0, 100]", result.Disk)
	}
	if result.Hostname == "" {
		t.Error("Hostname is empty, want non-empty")
	}
	if result.Uptime == "" {
		t.Error("Uptime is empty, want formatted duration")
	}
	if result.WifiClients != 0 {
		t.Errorf("WifiClients = %v, want 0 without tools", result.WifiClients)
	}
	if result.Ethernet != EthernetDisconnected {
		t.Errorf("Ethernet = %v, want Disconnected without carrier file", result.Ethernet)
	}
}

func TestLocalProbe_CollectDeadline(t *testing.T) {
	p := NewLocalProbe("wlan0", "eth0", 10*time.Second, testLogger())
	p.runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, errors.New("not installed")
	}
	p.netClassPath = t.TempDir()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	result := p.Collect(ctx)

	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Collect took %v with expired deadline, want fast return", elapsed)
	}
	// Sampling window was cut short, so CPU takes its default.
	if result.CPU != 0 {
		t.Errorf("CPU = %v, want 0 when window is cut short", result.CPU)
	}
}

func TestLocalProbe_CountWifiClients(t *testing.T) {
	hostapdOut := "aa:bb:cc:dd:ee:ff\nflags=[AUTH][ASSOC]\n11:22:33:44:55:66\nflags=[AUTH]\n"
	iwOut := "Station aa:bb:cc:dd:ee:ff (on wlan0)\n\tinactive time: 10 ms\nStation 11:22:33:44:55:66 (on wlan0)\n\tinactive time: 20 ms\nStation de:ad:be:ef:00:01 (on wlan0)\n"

	tests := []struct {
		name     string
		run      commandFunc
		expected int
	}{
		{
			name: "hostapd_cli reports stations",
			run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
				if name == "hostapd_cli" {
					return []byte(hostapdOut), nil
				}
				return nil, errors.New("unexpected command " + name)
			},
			expected: 2,
		},
		{
			name: "falls back to iw when hostapd_cli fails",
			run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
				if name == "iw" {
					return []byte(iwOut), nil
				}
				return nil, errors.New("not installed")
			},
			expected: 3,
		},
		{
			name: "falls back to iw when hostapd_cli reports nothing",
			run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
				if name == "hostapd_cli" {
					return []byte("OK\n"), nil
				}
				return []byte(iwOut), nil
			},
			expected: 3,
		},
		{
			name: "no tools available",
			run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
				return nil, errors.New("not installed")
			},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewLocalProbe("wlan0", "eth0", time.Second, testLogger())
			p.runCommand = tt.run
			got := p.countWifiClients(context.Background())
			if got != tt.expected {
				t.Errorf("countWifiClients() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLocalProbe_EthernetState(t *testing.T) {
	tests := []struct {
		name     string
		carrier  string // file content, empty string means no file
		expected string
	}{
		{
			name:     "Carrier up",
			carrier:  "1\n",
			expected: EthernetConnected,
		},
		{
			name:     "Carrier down",
			carrier:  "0\n",
			expected: EthernetDisconnected,
		},
		{
			name:     "Interface absent",
			carrier:  "",
			expected: EthernetDisconnected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			if tt.carrier != "" {
				ifaceDir := filepath.Join(root, "eth0")
				if err := os.MkdirAll(ifaceDir, 0o755); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(filepath.Join(ifaceDir, "carrier"), []byte(tt.carrier), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			p := NewLocalProbe("wlan0", "eth0", time.Second, testLogger())
			p.netClassPath = root

			if got := p.ethernetState(); got != tt.expected {
				t.Errorf("ethernetState() = %v, want %v", got, tt.expected)
			}
		})
	}
}
