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

package helper

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/adobe/gateway-console-uitest/lib/log"
)

const (
	// EnvLogLevel overrides the debug level of the web tests log
	EnvLogLevel = "UITEST_LOG_LEVEL"
	// EnvOtel forwards the web tests log to the OpenTelemetry bridge when true
	EnvOtel = "UITEST_OTEL"
)

// LogConfig is the logging of the web tests run: debug level and JSON file named after the
// run start in dir
func LogConfig(dir string, started time.Time) (*log.Config, error) {
	cfg := log.DefaultConfig()
	cfg.Level = "debug"
	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.Level = level
	}
	cfg.File = log.TimestampedFile(dir, started)

	if val := os.Getenv(EnvOtel); val != "" {
		enabled, err := strconv.ParseBool(val)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value %q: %w", EnvOtel, val, err)
		}
		cfg.OtelEnabled = enabled
	}
	return cfg, nil
}

// InitLog sets up the process logger for the web tests run, should be called once from
// TestMain. The returned function closes the log file.
func InitLog(dir string, started time.Time) (func(), error) {
	cfg, err := LogConfig(dir, started)
	if err != nil {
		return nil, err
	}
	if err = log.Initialize(cfg); err != nil {
		return nil, err
	}
	log.WithFunc("helper", "InitLog").Info("Web tests log", "file", cfg.File, "level", cfg.Level, "otel", cfg.OtelEnabled)
	return func() {
		if err := log.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: Unable to close log file %s: %v\n", cfg.File, err)
		}
	}, nil
}
