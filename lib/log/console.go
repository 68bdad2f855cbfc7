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
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorRed    = "\033[91m"
	colorGreen  = "\033[92m"
	colorYellow = "\033[93m"
	colorBlue   = "\033[94m"
	colorCyan   = "\033[96m"
	colorDim    = "\033[2m"
)

// VerdictKey is the attribute the verifier uses to mark PASS/FAIL records, the console
// handler renders it as a colored tag right after the level
const VerdictKey = "verdict"

// ConsoleHandler formats records as single human readable lines:
//
//	[060102/150405.000-07] DBG PASS Verify actual = expected: 1 = 1 verify.Equals key=value
type ConsoleHandler struct {
	opts   *slog.HandlerOptions
	writer io.Writer
	mu     *sync.Mutex

	useColor     bool
	useTimestamp bool

	attrs  []slog.Attr
	groups []string
}

// NewConsoleHandler creates a new ConsoleHandler, colors are enabled when w is a terminal
func NewConsoleHandler(w io.Writer, opts *slog.HandlerOptions) *ConsoleHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &ConsoleHandler{
		opts:         opts,
		writer:       w,
		mu:           &sync.Mutex{},
		useColor:     isTerminal(w),
		useTimestamp: true,
	}
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// SetUseColor enables or disables color output
func (h *ConsoleHandler) SetUseColor(useColor bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.useColor = useColor
}

// SetUseTimestamp enables or disables the timestamp prefix, useful when the output is collected by
// the system which stamps the lines itself
func (h *ConsoleHandler) SetUseTimestamp(useTimestamp bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.useTimestamp = useTimestamp
}

// Enabled reports whether the handler handles records at the given level
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle writes the record as one line
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var pack, fun, verdict string
	var rest []slog.Attr
	collect := func(a slog.Attr) bool {
		switch a.Key {
		case "pack":
			pack = a.Value.String()
		case "func":
			fun = a.Value.String()
		case VerdictKey:
			verdict = a.Value.String()
		default:
			rest = append(rest, a)
		}
		return true
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(collect)

	var buf strings.Builder

	if h.useTimestamp {
		timestamp := r.Time.Format("060102/150405-07")
		if h.opts.Level != nil && h.opts.Level.Level() <= slog.LevelDebug {
			timestamp = r.Time.Format("060102/150405.000-07")
		}
		buf.WriteString(h.paint(colorGray, "["+timestamp+"]"))
		buf.WriteString(" ")
	}
	buf.WriteString(h.paint(levelColor(r.Level), formatLevel(r.Level)))
	if verdict != "" {
		buf.WriteString(" ")
		buf.WriteString(h.paint(verdictColor(verdict), verdict))
	}
	buf.WriteString(" ")
	buf.WriteString(r.Message)
	if pack != "" && fun != "" {
		buf.WriteString(" ")
		buf.WriteString(h.paint(colorDim, pack+"."+fun))
	}
	for _, a := range rest {
		h.appendAttr(&buf, a)
	}
	buf.WriteString("\n")

	_, err := io.WriteString(h.writer, buf.String())
	return err
}

func (h *ConsoleHandler) appendAttr(buf *strings.Builder, attr slog.Attr) {
	h.appendGroupedAttr(buf, h.groups, attr)
}

func (h *ConsoleHandler) appendGroupedAttr(buf *strings.Builder, groups []string, attr slog.Attr) {
	if h.opts.ReplaceAttr != nil && attr.Value.Kind() != slog.KindGroup {
		attr = h.opts.ReplaceAttr(groups, attr)
		if attr.Key == "" {
			return
		}
	}

	if attr.Value.Kind() == slog.KindGroup {
		sub := groups
		if attr.Key != "" {
			sub = append(append([]string{}, groups...), attr.Key)
		}
		for _, a := range attr.Value.Group() {
			h.appendGroupedAttr(buf, sub, a)
		}
		return
	}

	buf.WriteString(" ")
	for _, g := range groups {
		buf.WriteString(g)
		buf.WriteString(".")
	}
	buf.WriteString(attr.Key)
	buf.WriteString("=")

	switch attr.Value.Kind() {
	case slog.KindString:
		s := attr.Value.String()
		if strings.ContainsAny(s, " \n\t") {
			s = fmt.Sprintf("%q", s)
		}
		buf.WriteString(s)
	case slog.KindTime:
		buf.WriteString(attr.Value.Time().Format(time.RFC3339))
	case slog.KindDuration:
		buf.WriteString(attr.Value.Duration().String())
	default:
		fmt.Fprintf(buf, "%v", attr.Value.Any())
	}
}

// formatLevel formats the log level as a 3-character string
func formatLevel(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DBG"
	case slog.LevelInfo:
		return "INF"
	case slog.LevelWarn:
		return "WRN"
	case slog.LevelError:
		return "ERR"
	default:
		return "???"
	}
}

func levelColor(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return colorCyan
	case slog.LevelInfo:
		return colorBlue
	case slog.LevelWarn:
		return colorYellow
	default:
		return colorRed
	}
}

func verdictColor(verdict string) string {
	if verdict == "PASS" {
		return colorGreen
	}
	return colorRed
}

func (h *ConsoleHandler) paint(color, text string) string {
	if !h.useColor {
		return text
	}
	return color + text + colorReset
}

// WithAttrs returns a new ConsoleHandler with the given attributes
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

// WithGroup returns a new ConsoleHandler with the given group
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}
