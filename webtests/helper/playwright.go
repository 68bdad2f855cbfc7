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

// Package helper allows to run playwright web tests against the gateway console
package helper

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/adobe/gateway-console-uitest/lib/console"
	"github.com/adobe/gateway-console-uitest/lib/envconfig"
	"github.com/adobe/gateway-console-uitest/lib/log"
)

// MockProfile is the environment profile served by the in-process mock console
const MockProfile = "mock"

// TraceFile is written to the repository root when the session ends
const TraceFile = "trace.zip"

// Session keeps the browser state shared by the subtests of one web test
type Session struct {
	Profile *envconfig.Profile

	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page

	captureDir string

	// Automatic tests screenshoting
	stepMu sync.Mutex
	step   int
}

// Default context options for the console tests
var DefaultContextOptions = playwright.BrowserNewContextOptions{
	IgnoreHttpsErrors: playwright.Bool(true),
	Viewport: &playwright.Size{
		Width:  1280,
		Height: 720,
	},
}

// NewSession resolves the environment profile, makes sure the console is reachable and opens the
// browser page. Skips the test when the console or the playwright driver is not available.
func NewSession(tb testing.TB) (*Session, playwright.Page) {
	tb.Helper()
	logger := log.WithFunc("helper", "NewSession")

	env, err := envconfig.FromEnv()
	if err != nil {
		tb.Fatalf("ERROR: Unable to load environment: %v", err)
	}
	profile, err := env.Resolve()
	if err != nil {
		tb.Fatalf("ERROR: Unable to resolve environment %s: %v", env.Name(), err)
	}

	s := &Session{
		Profile:    profile,
		captureDir: filepath.Join(RepoRoot(), "test-results", sanitize(tb.Name())),
	}

	if profile.Name == MockProfile {
		s.Profile.URL = startMockConsole(tb, profile.Workspace)
	}
	if err := Reachable(s.Profile.URL, 2*time.Second); err != nil {
		tb.Skipf("SKIP: Console %s is not reachable: %v", s.Profile.URL, err)
	}
	logger.Info("Session starting", "env", profile.Name, "url", s.Profile.URL, "browser", profile.Browser, "headless", profile.Headless)

	if s.pw, err = playwright.Run(); err != nil {
		tb.Skipf("SKIP: Could not start playwright driver (not installed?): %v", err)
	}

	s.browser, err = s.browserType().Launch(s.launchOptions())
	if err != nil {
		s.pw.Stop()
		tb.Fatalf("ERROR: Could not launch %s: %v", profile.Browser, err)
	}

	tb.Cleanup(func() {
		if err := s.browser.Close(); err != nil {
			tb.Errorf("ERROR: Could not close browser: %v", err)
		}
		if err := s.pw.Stop(); err != nil {
			tb.Errorf("ERROR: Could not stop Playwright: %v", err)
		}
		s.Cleanup(tb)
	})

	s.newBrowserContext(tb, DefaultContextOptions)
	s.page = s.newPage(tb)

	return s, s.page
}

// BaseURL of the console the session drives
func (s *Session) BaseURL() string {
	return s.Profile.URL
}

// Workspace the entity screens are opened in
func (s *Session) Workspace() string {
	return s.Profile.Workspace
}

func (s *Session) browserType() playwright.BrowserType {
	switch s.Profile.Browser {
	case "firefox":
		return s.pw.Firefox
	case "webkit":
		return s.pw.WebKit
	}
	return s.pw.Chromium
}

func (s *Session) launchOptions() playwright.BrowserTypeLaunchOptions {
	opts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(s.Profile.Headless),
	}
	if s.Profile.SlowMo > 0 {
		opts.SlowMo = playwright.Float(float64(s.Profile.SlowMo.Milliseconds()))
	}
	if s.Profile.Browser == "chromium" {
		opts.Args = []string{"--no-sandbox", "--no-zygote"}
	}
	return opts
}

// Run executes the subtest with screenshots taken at its start and end
func (s *Session) Run(t *testing.T, name string, fn func(t *testing.T)) {
	t.Helper()

	t.Run(name, func(t *testing.T) {
		s.Screenshot(t, "start")
		defer s.Screenshot(t, "end")

		fn(t)
	})
}

// Screenshot takes a screenshot with automatic naming
func (s *Session) Screenshot(t *testing.T, phase string) {
	s.stepMu.Lock()
	defer s.stepMu.Unlock()

	s.step++
	filename := fmt.Sprintf("%02d-%s-%s.png", s.step, path.Base(t.Name()), phase)

	if _, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		Path: playwright.String(s.CaptureDir("screenshots", filename)),
	}); err != nil {
		t.Logf("WARNING: Could not take screenshot %s: %v", filename, err)
	}
}

func (s *Session) newPage(tb testing.TB) playwright.Page {
	page, err := s.context.NewPage()
	if err != nil {
		tb.Fatalf("ERROR: Could not create page: %v", err)
	}
	return page
}

// CaptureDir returns dir where to store all the test data
func (s *Session) CaptureDir(path ...string) string {
	out := filepath.Join(append([]string{s.captureDir}, path...)...)
	os.MkdirAll(filepath.Dir(out), 0o755)
	return out
}

// Cleanup removes captures of the passed test
func (s *Session) Cleanup(tb testing.TB) {
	tb.Helper()
	if tb.Failed() {
		tb.Log("INFO: Keeping captures for checking:", s.captureDir)
		return
	}
	os.RemoveAll(s.captureDir)
}

func (s *Session) newBrowserContext(tb testing.TB, options playwright.BrowserNewContextOptions) {
	tb.Helper()

	options.RecordVideo = &playwright.RecordVideo{
		Dir: s.CaptureDir("video"),
	}
	// Clipboard permissions are known to chromium only
	if s.Profile.Browser == "chromium" {
		options.Permissions = []string{"clipboard-read", "clipboard-write"}
	}

	var err error
	if s.context, err = s.browser.NewContext(options); err != nil {
		tb.Fatalf("ERROR: Could not create new context: %v", err)
	}
	timeout := float64(s.Profile.Timeout.Milliseconds())
	s.context.SetDefaultTimeout(timeout)
	s.context.SetDefaultNavigationTimeout(timeout)

	if err = s.context.Tracing().Start(playwright.TracingStartOptions{
		Screenshots: playwright.Bool(true),
		Snapshots:   playwright.Bool(true),
		Sources:     playwright.Bool(true),
	}); err != nil {
		tb.Logf("WARNING: Could not start tracing: %v", err)
	}

	tb.Cleanup(func() {
		trace := filepath.Join(RepoRoot(), TraceFile)
		if err := s.context.Tracing().Stop(trace); err != nil {
			tb.Logf("WARNING: Could not save trace %s: %v", trace, err)
		}
		if err := s.context.Close(); err != nil {
			tb.Errorf("ERROR: Could not close context: %v", err)
		}
	})
}

// startMockConsole serves the mock console on a random local port for the test lifetime
func startMockConsole(tb testing.TB, workspace string) string {
	tb.Helper()
	srv, err := console.NewServer(console.NewMemoryStore(), workspace)
	if err != nil {
		tb.Fatalf("ERROR: Could not create mock console: %v", err)
	}
	baseURL, err := srv.Start("127.0.0.1:0")
	if err != nil {
		tb.Fatalf("ERROR: Could not start mock console: %v", err)
	}
	tb.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			tb.Errorf("ERROR: Could not stop mock console: %v", err)
		}
	})
	return baseURL
}

// RepoRoot finds the directory of go.mod going up from the working directory
func RepoRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for d := dir; ; d = filepath.Dir(d) {
		if _, err := os.Stat(filepath.Join(d, "go.mod")); err == nil {
			return d
		}
		if filepath.Dir(d) == d {
			return dir
		}
	}
}

func sanitize(name string) string {
	return strings.NewReplacer("/", "_", " ", "_").Replace(name)
}
