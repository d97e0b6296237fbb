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

package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mulecube/cubestat/internal/config"
	"github.com/mulecube/cubestat/internal/probe"
	"github.com/mulecube/cubestat/internal/snapshot"
)

var (
	hardwareURL  string
	statusURL    string
	outputPath   string
	wifiIface    string
	ethIface     string
	httpTimeout  time.Duration
	sampleWindow time.Duration
	runTimeout   time.Duration
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Run one measurement cycle and publish the snapshot",
	Long: `Snapshot runs every probe once, assembles the full status record and
atomically replaces the snapshot file. Probe failures degrade to
documented defaults; only a failure to publish the file is fatal.

Examples:
  # One-shot with defaults (status.json in the current directory)
  cubestat snapshot

  # Publish where the dashboard reads from
  cubestat snapshot --output /var/lib/cubestat/status.json

  # Point at sidecars on another host
  cubestat snapshot --hardware-url http://10.0.0.5:8080 --status-url http://10.0.0.5:8081`,
	RunE: runSnapshot,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	addProbeFlags(snapshotCmd)
}

// addProbeFlags registers the flags shared by snapshot and serve.
func addProbeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&hardwareURL, "hardware-url",
		config.EnvDefault("HW_MONITOR_URL", config.DefaultHardwareURL),
		"Base URL of the hardware monitor service (env HW_MONITOR_URL)")
	cmd.Flags().StringVar(&statusURL, "status-url",
		config.EnvDefault("STATUS_URL", config.DefaultStatusURL),
		"Base URL of the service status aggregator (env STATUS_URL)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultOutputPath,
		"Snapshot file path")
	cmd.Flags().StringVar(&wifiIface, "wifi-iface", config.DefaultWifiIface,
		"Wireless AP interface for client counting")
	cmd.Flags().StringVar(&ethIface, "eth-iface", config.DefaultEthIface,
		"Wired interface for link state")
	cmd.Flags().DurationVar(&httpTimeout, "http-timeout", config.DefaultHTTPTimeout,
		"Per-request timeout for sidecar calls")
	cmd.Flags().DurationVar(&sampleWindow, "sample-window", config.DefaultSampleWindow,
		"CPU counter sampling window")
	cmd.Flags().DurationVar(&runTimeout, "run-timeout", config.DefaultRunTimeout,
		"Overall deadline for one measurement cycle")
}

// buildConfig assembles and validates configuration from flags.
func buildConfig() (*config.Config, error) {
	cfg := &config.Config{
		HardwareURL:  hardwareURL,
		StatusURL:    statusURL,
		OutputPath:   outputPath,
		WifiIface:    wifiIface,
		EthIface:     ethIface,
		HTTPTimeout:  httpTimeout,
		SampleWindow: sampleWindow,
		RunTimeout:   runTimeout,
		Interval:     serveInterval,
		LogLevel:     logLevel,
		LogFile:      logFile,
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	logger := InitLogger(logLevel, logFile)

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	logger.Info("Starting measurement cycle", "config", cfg.String())

	runner := probe.NewRunner(cfg, logger)
	local, hardware, services := runner.Run(cmd.Context())

	snap := snapshot.Assemble(local, hardware, services, time.Now())

	writer := snapshot.NewWriter(cfg.OutputPath, logger)
	if err := writer.Write(snap); err != nil {
		return fmt.Errorf("failed to publish snapshot: %w", err)
	}

	logger.Info("Snapshot published", "path", cfg.OutputPath)
	return nil
}
