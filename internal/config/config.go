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

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Config represents application configuration.
type Config struct {
	// Sidecar endpoints
	HardwareURL string // Base URL of the hardware-monitor service
	StatusURL   string // Base URL of the status-aggregator service

	// Output
	OutputPath string // Path the snapshot JSON is published to

	// Interfaces
	WifiIface string // Wireless AP interface for client counting
	EthIface  string // Wired interface for link carrier state

	// Timing
	HTTPTimeout  time.Duration // Per-request timeout for sidecar calls
	SampleWindow time.Duration // CPU counter sampling window
	RunTimeout   time.Duration // Overall deadline for one snapshot run
	Interval     time.Duration // Refresh interval in serve mode

	// Logging
	LogLevel string // Log level: debug, info, warn, error
	LogFile  string // Log file path (empty = stdout)
}

// Default configuration values.
const (
	DefaultHardwareURL  = "http://localhost:8080"
	DefaultStatusURL    = "http://localhost:8081"
	DefaultOutputPath   = "status.json"
	DefaultWifiIface    = "wlan0"
	DefaultEthIface     = "eth0"
	DefaultHTTPTimeout  = 2 * time.Second
	DefaultSampleWindow = 1 * time.Second
	DefaultRunTimeout   = 5 * time.Second
	DefaultInterval     = 30 * time.Second
	DefaultLogLevel     = "info"
)

// EnvDefault returns the value of the named environment variable,
// or fallback when it is unset or empty. Sidecar URLs honor the
// HW_MONITOR_URL and STATUS_URL variables the deployment already sets.
func EnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validateBaseURL("hardware URL", c.HardwareURL); err != nil {
		return err
	}
	if err := validateBaseURL("status URL", c.StatusURL); err != nil {
		return err
	}

	if c.OutputPath == "" {
		return errors.New("output path cannot be empty")
	}

	if c.WifiIface == "" {
		return errors.New("wifi interface cannot be empty")
	}

	if c.EthIface == "" {
		return errors.New("ethernet interface cannot be empty")
	}

	if c.HTTPTimeout < 100*time.Millisecond {
		return errors.New("http timeout must be at least 100ms")
	}

	if c.SampleWindow < 100*time.Millisecond {
		return errors.New("sample window must be at least 100ms")
	}

	if c.RunTimeout < c.SampleWindow || c.RunTimeout < c.HTTPTimeout {
		return errors.New("run timeout must cover the sample window and http timeout")
	}

	if c.Interval < 1*time.Second {
		return errors.New("interval must be at least 1 second")
	}

	if c.Interval > 1*time.Hour {
		return errors.New("interval must not exceed 1 hour")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	// Check if output directory exists
	if err := c.ensureOutputDir(); err != nil {
		return fmt.Errorf("output directory check failed: %w", err)
	}

	return nil
}

// validateBaseURL checks that a sidecar base URL is absolute http(s).
func validateBaseURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid %s: scheme must be http or https, got %q", name, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid %s: missing host", name)
	}
	return nil
}

// ensureOutputDir checks if the output directory exists and is a directory.
func (c *Config) ensureOutputDir() error {
	dir := filepath.Dir(c.OutputPath)

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("output directory does not exist: %s", dir)
		}
		return err
	}

	if !info.IsDir() {
		return fmt.Errorf("output path parent is not a directory: %s", dir)
	}

	return nil
}

// String returns a human-readable representation of the configuration.
// Sidecar URLs are included; they carry no credentials.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Hardware=%s, Status=%s, Output=%s, Wifi=%s, Eth=%s, HTTPTimeout=%v, Window=%v, RunTimeout=%v, Interval=%v}",
		c.HardwareURL, c.StatusURL, c.OutputPath, c.WifiIface, c.EthIface, c.HTTPTimeout, c.SampleWindow, c.RunTimeout, c.Interval)
}
