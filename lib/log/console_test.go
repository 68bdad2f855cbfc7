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

package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandler_BasicFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewConsoleHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	logger.Info("row count", "rows", 3)
	output := buf.String()

	if !strings.HasPrefix(output, "[") {
		t.Errorf("Expected timestamp in brackets, got: %s", output)
	}
	if !strings.Contains(output, " INF row count") {
		t.Errorf("Expected level and message, got: %s", output)
	}
	if !strings.Contains(output, "rows=3") {
		t.Errorf("Expected 'rows=3', got: %s", output)
	}
	if strings.Contains(output, "\033[") {
		t.Errorf("Expected no color codes for a buffer writer, got: %q", output)
	}
}

func TestConsoleHandler_DebugTimestamp(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewConsoleHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Debug("debug message")
	stamp := buf.String()[:strings.Index(buf.String(), "]")]

	if !strings.Contains(stamp, ".") {
		t.Errorf("Debug timestamp should include milliseconds, got: %s", stamp)
	}
}

func TestConsoleHandler_PackFunc(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewConsoleHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	logger.With("pack", "pages", "func", "DeleteAll").Info("deleting")
	output := buf.String()

	if !strings.Contains(output, "deleting pages.DeleteAll") {
		t.Errorf("Expected 'pages.DeleteAll' after message, got: %s", output)
	}
	if strings.Contains(output, "pack=") || strings.Contains(output, "func=") {
		t.Errorf("pack and func should not be rendered as attributes, got: %s", output)
	}
}

func TestConsoleHandler_Verdict(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewConsoleHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Debug("Verify: <a> in <abc>", VerdictKey, "PASS")
	logger.Error("Verify: <d> in <abc>", VerdictKey, "FAIL")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %q", len(lines), lines)
	}
	if !strings.Contains(lines[0], "DBG PASS Verify") {
		t.Errorf("Expected PASS tag after level, got: %s", lines[0])
	}
	if !strings.Contains(lines[1], "ERR FAIL Verify") {
		t.Errorf("Expected FAIL tag after level, got: %s", lines[1])
	}
}

func TestConsoleHandler_ColoredVerdict(t *testing.T) {
	var buf bytes.Buffer
	handler := NewConsoleHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	handler.SetUseColor(true)

	slog.New(handler).Info("ok", VerdictKey, "PASS")

	if !strings.Contains(buf.String(), colorGreen+"PASS"+colorReset) {
		t.Errorf("Expected green PASS, got: %q", buf.String())
	}
}

func TestConsoleHandler_QuotedStrings(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewConsoleHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	logger.Info("dialog", "message", "Are you sure?", "type", "confirm")
	output := buf.String()

	if !strings.Contains(output, `message="Are you sure?"`) {
		t.Errorf("Expected quoted message, got: %s", output)
	}
	if !strings.Contains(output, "type=confirm") {
		t.Errorf("Expected plain 'type=confirm', got: %s", output)
	}
}

func TestConsoleHandler_Groups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewConsoleHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	logger.WithGroup("form").Info("fill", slog.Group("service", "name", "svc", "port", 8080))
	output := buf.String()

	if !strings.Contains(output, "form.service.name=svc") {
		t.Errorf("Expected 'form.service.name=svc', got: %s", output)
	}
	if !strings.Contains(output, "form.service.port=8080") {
		t.Errorf("Expected 'form.service.port=8080', got: %s", output)
	}
}

func TestConsoleHandler_ReplaceAttr(t *testing.T) {
	var buf bytes.Buffer
	handler := NewConsoleHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == "client_cert" {
				return slog.String(a.Key, "***")
			}
			return a
		},
	})

	slog.New(handler).Info("fill", "client_cert", "-----BEGIN", "name", "svc")
	output := buf.String()

	if !strings.Contains(output, "client_cert=***") {
		t.Errorf("Expected 'client_cert=***', got: %s", output)
	}
	if !strings.Contains(output, "name=svc") {
		t.Errorf("Expected 'name=svc', got: %s", output)
	}
}

func TestConsoleHandler_Enabled(t *testing.T) {
	handler := NewConsoleHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	if handler.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Info should be disabled when level is Warn")
	}
	if !handler.Enabled(context.Background(), slog.LevelError) {
		t.Error("Error should be enabled when level is Warn")
	}
}

func TestConsoleHandler_NoTimestamp(t *testing.T) {
	var buf bytes.Buffer
	h := NewConsoleHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	h.SetUseTimestamp(false)
	slog.New(h).Info("plain")

	if !strings.HasPrefix(buf.String(), "INF plain") {
		t.Errorf("Expected line without timestamp, got: %q", buf.String())
	}
}
