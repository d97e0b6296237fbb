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
	"time"

	"github.com/google/uuid"

	"github.com/mulecube/cubestat/internal/config"
)

// Runner fans the three probes out concurrently and waits for all of
// them to settle under a single run deadline. A probe still pending at
// the deadline contributes its documented default; no probe's failure
// blocks another's result.
type Runner struct {
	local    *LocalProbe
	hardware *HardwareClient
	services *ServiceClient
	timeout  time.Duration
	logger   *slog.Logger
}

// NewRunner wires the probes from configuration.
func NewRunner(cfg *config.Config, logger *slog.Logger) *Runner {
	return &Runner{
		local:    NewLocalProbe(cfg.WifiIface, cfg.EthIface, cfg.SampleWindow, logger),
		hardware: NewHardwareClient(cfg.HardwareURL, cfg.HTTPTimeout, logger),
		services: NewServiceClient(cfg.StatusURL, cfg.HTTPTimeout, logger),
		timeout:  cfg.RunTimeout,
		logger:   logger,
	}
}

// Run executes one measurement cycle. It never fails: every result is
// defaulted when its probe misses the deadline.
func (r *Runner) Run(ctx context.Context) (LocalResult, HardwareResult, ServiceResult) {
	runID := uuid.NewString()
	start := time.Now()
	log := r.logger.With("run_id", runID)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	localCh := make(chan LocalResult, 1)
	hardwareCh := make(chan HardwareResult, 1)
	servicesCh := make(chan ServiceResult, 1)

	go func() { localCh <- r.local.Collect(ctx) }()
	go func() { hardwareCh <- r.hardware.Collect(ctx) }()
	go func() { servicesCh <- r.services.Collect(ctx) }()

	local := DefaultLocalResult()
	hardware := DefaultHardwareResult()
	services := ServiceResult{}

	// A result that raced the deadline still counts; only a probe with
	// nothing delivered gets its default.
	select {
	case local = <-localCh:
	case <-ctx.Done():
		select {
		case local = <-localCh:
		default:
			log.Warn("Local probe missed run deadline, using defaults")
		}
	}

	select {
	case hardware = <-hardwareCh:
	case <-ctx.Done():
		select {
		case hardware = <-hardwareCh:
		default:
			log.Warn("Hardware probe missed run deadline, using defaults")
		}
	}

	select {
	case services = <-servicesCh:
	case <-ctx.Done():
		select {
		case services = <-servicesCh:
		default:
			log.Warn("Service probe missed run deadline, using defaults")
		}
	}

	log.Debug("Measurement cycle finished",
		"duration", time.Since(start),
		"cpu", local.CPU,
		"memory", local.Memory,
		"disk", local.Disk,
		"temperature", hardware.Temperature,
		"temp_status", hardware.TempStatus,
		"services_running", services.Running,
	)

	return local, hardware, services
}
