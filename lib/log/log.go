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

// Package log provides the process-wide structured logger shared by the page objects,
// the verifier and the mock console
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
)

type Level = slog.Level

const (
	LevelDebug Level = slog.LevelDebug
	LevelInfo  Level = slog.LevelInfo
	LevelWarn  Level = slog.LevelWarn
	LevelError Level = slog.LevelError
)

var levels = []Level{LevelDebug, LevelInfo, LevelWarn, LevelError}

// Global logger instance, replaced only by Initialize
var (
	loggerMu sync.RWMutex
	logger   *slog.Logger

	// Log file sink, kept to be closed on re-initialization
	logFile *os.File
)

func init() {
	_ = Initialize(DefaultConfig())
}

// Config describes where and how the suite writes its log
type Config struct {
	Level        string `json:"level"`         // Log level (debug, info, warn, error)
	Format       string `json:"format"`        // Console output format (console, json)
	UseColor     bool   `json:"use_color"`     // Colorize console output when it's a terminal
	UseTimestamp bool   `json:"use_timestamp"` // Prepend console lines with timestamp
	File         string `json:"file"`          // Optional path of the JSON log file sink
	OtelEnabled  bool   `json:"otel_enabled"`  // Forward records to the OpenTelemetry log bridge
	Output       io.Writer
}

// DefaultConfig returns default logging configuration
func DefaultConfig() *Config {
	return &Config{
		Level:        "info",
		Format:       "console",
		UseColor:     true,
		UseTimestamp: true,
	}
}

// TimestampedFile returns log file name in the given directory, named after the moment
// the session started, e.g. "2025-01-02--15_04_05.log"
func TimestampedFile(dir string, started time.Time) string {
	return filepath.Join(dir, started.Format("2006-01-02--15_04_05")+".log")
}

func parseLevel(levelStr string) (Level, error) {
	switch strings.ToLower(levelStr) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", levelStr)
	}
}

// Initialize sets up the global logger with the given configuration. Sinks are attached
// once here, every later call to WithFunc reuses them.
func Initialize(config *Config) error {
	level, err := parseLevel(config.Level)
	if err != nil {
		return err
	}

	var output io.Writer = os.Stdout
	if config.Output != nil {
		output = config.Output
	}

	opts := &slog.HandlerOptions{Level: level}

	var handlers []slog.Handler
	if config.Format == "json" {
		handlers = append(handlers, slog.NewJSONHandler(output, opts))
	} else {
		consoleHandler := NewConsoleHandler(output, opts)
		if !config.UseColor {
			consoleHandler.SetUseColor(false)
		}
		consoleHandler.SetUseTimestamp(config.UseTimestamp)
		handlers = append(handlers, consoleHandler)
	}

	var file *os.File
	if config.File != "" {
		if err := os.MkdirAll(filepath.Dir(config.File), 0o750); err != nil {
			return fmt.Errorf("unable to create log directory for %q: %w", config.File, err)
		}
		file, err = os.OpenFile(config.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
		if err != nil {
			return fmt.Errorf("unable to open log file %q: %w", config.File, err)
		}
		handlers = append(handlers, slog.NewJSONHandler(file, opts))
	}

	if config.OtelEnabled {
		handlers = append(handlers, otelslog.NewHandler("gateway-console-uitest"))
	}

	var handler slog.Handler = handlers[0]
	if len(handlers) > 1 {
		handler = &multiHandler{handlers: handlers}
	}

	loggerMu.Lock()
	defer loggerMu.Unlock()
	if logFile != nil {
		logFile.Close()
	}
	logFile = file
	logger = slog.New(handler)

	return nil
}

// Close flushes and releases the log file sink if any
func Close() error {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// multiHandler fans a record out to console, file and otel sinks
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	var lastErr error
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, r.Level) {
			continue
		}
		if err := handler.Handle(ctx, r.Clone()); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: newHandlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: newHandlers}
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// GetLevel returns current logging level
func GetLevel() Level {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	for _, lvl := range levels {
		if logger.Handler().Enabled(context.Background(), lvl) {
			return lvl
		}
	}
	return LevelError
}

// WithFunc provides a way to identify package and function executed
// Empty values fall back to the bare global logger
func WithFunc(pack, fun string) *slog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	if pack == "" || fun == "" {
		return logger
	}
	return logger.With("pack", pack, "func", fun)
}
