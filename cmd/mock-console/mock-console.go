/**
 * Copyright 2025 Adobe. All rights reserved.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License. You may obtain a copy
 * of the License at http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed under
 * the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR REPRESENTATIONS
 * OF ANY KIND, either express or implied. See the License for the specific language
 * governing permissions and limitations under the License.
 */

// Starting point of the mock gateway console used to run the web tests locally
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/adobe/gateway-console-uitest/lib/console"
	"github.com/adobe/gateway-console-uitest/lib/log"
)

func main() {
	var apiAddress string
	var dbPath string
	var seedPath string
	var workspaces []string
	var logVerbosity string
	var logFormat string
	var logFile string
	var logTimestamp bool
	var otelEnabled bool

	cmd := &cobra.Command{
		Use:   "mock-console",
		Short: "Mock gateway console",
		Long:  `Serves the gateway console screens the web tests drive, backed by memory or bitcask store`,
		PersistentPreRunE: func(_ /*cmd*/ *cobra.Command, _ /*args*/ []string) error {
			logCfg := log.DefaultConfig()
			logCfg.Level = logVerbosity
			logCfg.Format = logFormat
			logCfg.File = logFile
			logCfg.UseTimestamp = logTimestamp
			logCfg.OtelEnabled = otelEnabled
			return log.Initialize(logCfg)
		},
		RunE: func(_ /*cmd*/ *cobra.Command, _ /*args*/ []string) (err error) {
			logger := log.WithFunc("main", "RunE")
			logger.Info("Console init...")
			defer log.Close()

			gin.SetMode(gin.ReleaseMode)
			if log.GetLevel() == log.LevelDebug {
				gin.SetMode(gin.DebugMode)
			}

			var store console.Store
			if dbPath == "" {
				logger.Info("Console uses memory store, state is lost on exit")
				store = console.NewMemoryStore()
			} else {
				logger.Info("Console init DB...", "path", dbPath)
				if store, err = console.NewBitcaskStore(dbPath); err != nil {
					return err
				}
			}
			defer func() {
				if err := store.Close(); err != nil {
					logger.Error("Unable to close store", "err", err)
				}
			}()

			if seedPath != "" {
				seed, err := console.LoadSeed(seedPath)
				if err != nil {
					return err
				}
				workspaces = append(workspaces, seed.Workspaces...)
				if err = seed.Apply(store); err != nil {
					logger.Warn("Seed applied partially", "err", err)
				}
			}

			srv, err := console.NewServer(store, workspaces...)
			if err != nil {
				return err
			}
			url, err := srv.Start(apiAddress)
			if err != nil {
				return fmt.Errorf("Console: unable to start: %w", err)
			}
			logger.Info("Console initialized", "url", url)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
			defer stop()
			<-ctx.Done()

			logger.Info("Console stopping...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("Console forced to shutdown", "err", err)
			}
			logger.Info("Console stopped")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&apiAddress, "api", "a", "127.0.0.1:18002", "address used to expose the console")
	flags.StringVarP(&dbPath, "db", "D", "", "bitcask database directory, memory store when empty")
	flags.StringVarP(&seedPath, "seed", "s", "", "yaml file with initial workspaces, services and routes")
	flags.StringSliceVarP(&workspaces, "workspace", "w", nil, "additional workspaces, comma separated")
	flags.StringVarP(&logVerbosity, "verbosity", "v", "info", "log level (debug, info, warn, error)")
	flags.StringVar(&logFormat, "log-format", "console", "console log format (console, json)")
	flags.StringVar(&logFile, "log-file", "", "also write json log to the file")
	flags.BoolVar(&logTimestamp, "timestamp", true, "prepend timestamps for each log line")
	flags.Lookup("timestamp").NoOptDefVal = "false"
	flags.BoolVar(&otelEnabled, "otel", false, "forward log records to the OpenTelemetry log bridge")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
