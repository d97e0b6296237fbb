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
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mulecube/cubestat/internal/config"
	"github.com/mulecube/cubestat/internal/probe"
	"github.com/mulecube/cubestat/internal/server"
	"github.com/mulecube/cubestat/internal/snapshot"
)

var (
	serveHost     string
	servePort     int
	serveInterval = config.DefaultInterval
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Refresh the snapshot on an interval and serve it over HTTP",
	Long: `Serve runs measurement cycles on a fixed interval, publishing each
snapshot both to the snapshot file and to a small HTTP API:

  GET /health        - liveness check
  GET /api/snapshot  - latest snapshot as JSON

Examples:
  # Defaults: refresh every 30s, listen on :9090
  cubestat serve

  # Faster refresh, custom bind address
  cubestat serve --interval 10s --host 0.0.0.0 --port 8090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addProbeFlags(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "0.0.0.0", "Host to bind the API server to")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 9090, "Port to bind the API server to")
	serveCmd.Flags().DurationVarP(&serveInterval, "interval", "i", config.DefaultInterval,
		"Snapshot refresh interval")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := InitLogger(logLevel, logFile)

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	logger.Info("Starting serve mode", "config", cfg.String(), "host", serveHost, "port", servePort)

	runner := probe.NewRunner(cfg, logger)
	writer := snapshot.NewWriter(cfg.OutputPath, logger)
	srv := server.NewServer(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	refresh := func() {
		local, hardware, services := runner.Run(ctx)
		snap := snapshot.Assemble(local, hardware, services, time.Now())
		srv.SetSnapshot(snap)
		if err := writer.Write(snap); err != nil {
			// In serve mode a failed publish is not fatal; the next tick retries.
			logger.Error("Failed to publish snapshot", "error", err)
		}
	}

	// Publish a first snapshot before accepting traffic-dependent reads.
	refresh()

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", serveHost, servePort),
		Handler:      srv,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("API server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			refresh()
		case err := <-serverErr:
			return fmt.Errorf("API server failed: %w", err)
		case <-ctx.Done():
			logger.Info("Shutdown signal received")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server shutdown failed: %w", err)
			}
			logger.Info("Server stopped")
			return nil
		}
	}
}
