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
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"sync"
	"time"
)

// maxResponseSize bounds sidecar response bodies (1MB).
const maxResponseSize = 1 << 20

var vcgencmdTempRe = regexp.MustCompile(`temp=([0-9.]+)`)

// temperatureResponse mirrors the hardware-monitor temperature endpoint.
// Unknown fields in the payload are ignored.
type temperatureResponse struct {
	CPUTempC  float64 `json:"cpu_temp_c"`
	Throttled bool    `json:"throttled"`
}

// batteryResponse mirrors the hardware-monitor battery endpoint.
type batteryResponse struct {
	Available     bool   `json:"available"`
	Percent       *int   `json:"percent"`
	Charging      bool   `json:"charging"`
	TimeRemaining string `json:"time_remaining"`
}

// HardwareClient queries the hardware-monitor sidecar for temperature
// and battery state. Temperature falls back to a direct vcgencmd query
// when the sidecar is unreachable; battery has no fallback.
type HardwareClient struct {
	baseURL    string
	client     *http.Client
	runCommand commandFunc
	logger     *slog.Logger
}

// NewHardwareClient creates a hardware telemetry client against the
// given sidecar base URL.
func NewHardwareClient(baseURL string, timeout time.Duration, logger *slog.Logger) *HardwareClient {
	return &HardwareClient{
		baseURL:    baseURL,
		client:     &http.Client{Timeout: timeout},
		runCommand: runCommand,
		logger:     logger,
	}
}

// Collect gathers temperature and battery state. The two endpoint calls
// are independent: each carries its own timeout and one failing does not
// affect the other.
func (c *HardwareClient) Collect(ctx context.Context) HardwareResult {
	result := DefaultHardwareResult()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		result.Temperature, result.TempStatus = c.collectTemperature(ctx)
	}()

	go func() {
		defer wg.Done()
		result.BatteryAvailable, result.BatteryPercent, result.BatteryCharging, result.BatteryTime = c.collectBattery(ctx)
	}()

	wg.Wait()
	return result
}

// collectTemperature tries the sidecar first, then the direct vcgencmd
// query. The fallback path carries no throttling signal, so its status
// is always normal regardless of the reading.
func (c *HardwareClient) collectTemperature(ctx context.Context) (int, string) {
	var resp temperatureResponse
	err := c.fetchJSON(ctx, c.baseURL+"/api/temperature", &resp)
	if err == nil {
		temp := int(resp.CPUTempC)
		return temp, temperatureStatus(temp, resp.Throttled)
	}
	c.logger.Warn("Hardware monitor temperature query failed, trying direct query", "error", err)

	temp, err := c.fallbackTemperature(ctx)
	if err == nil {
		return temp, TempStatusNormal
	}
	c.logger.Warn("Direct temperature query failed", "error", err)

	return 0, TempStatusNormal
}

// fallbackTemperature reads the SoC temperature via vcgencmd, which
// prints a line like "temp=48.3'C".
func (c *HardwareClient) fallbackTemperature(ctx context.Context) (int, error) {
	out, err := c.runCommand(ctx, "vcgencmd", "measure_temp")
	if err != nil {
		return 0, fmt.Errorf("vcgencmd failed: %w", err)
	}

	m := vcgencmdTempRe.FindSubmatch(out)
	if m == nil {
		return 0, fmt.Errorf("unexpected vcgencmd output: %q", string(out))
	}

	temp, err := strconv.ParseFloat(string(m[1]), 64)
	if err != nil {
		return 0, fmt.Errorf("bad temperature value: %w", err)
	}

	return int(temp), nil
}

// collectBattery queries the battery endpoint. Failure or an explicit
// available=false both yield the no-battery defaults.
func (c *HardwareClient) collectBattery(ctx context.Context) (available bool, percent *int, charging bool, timeRemaining string) {
	var resp batteryResponse
	if err := c.fetchJSON(ctx, c.baseURL+"/api/battery", &resp); err != nil {
		c.logger.Warn("Hardware monitor battery query failed", "error", err)
		return false, nil, false, ""
	}

	if !resp.Available {
		return false, nil, false, ""
	}

	return true, resp.Percent, resp.Charging, resp.TimeRemaining
}

// fetchJSON performs a GET and decodes the response body into v.
func (c *HardwareClient) fetchJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// temperatureStatus maps a reading onto a status. Hardware-level
// throttling is a harder signal than a threshold crossing and wins even
// at low temperatures.
func temperatureStatus(temp int, throttled bool) string {
	switch {
	case throttled:
		return TempStatusThrottled
	case temp >= TempCriticalThreshold:
		return TempStatusCritical
	case temp >= TempWarningThreshold:
		return TempStatusWarning
	default:
		return TempStatusNormal
	}
}
