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

// Package pages contains page objects of the gateway console screens. Every screen operation
// drives the shared browser page and returns wrapped driver errors, timeouts are reported as
// playwright.ErrTimeout.
package pages

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/adobe/gateway-console-uitest/lib/log"
)

const (
	// DefaultWorkspace is used when workspace name is empty
	DefaultWorkspace = "default"

	// DefaultExistsTimeout is the time Exists waits for the locator state
	DefaultExistsTimeout = 5000 * time.Millisecond
)

// ErrNoURI is returned by Open of the page created without uri
var ErrNoURI = errors.New("page has no uri to open")

// Base is embedded by every page object, it holds the browser page shared within the session
type Base struct {
	page playwright.Page
	uri  string
}

// NewBase creates base page object, uri could be empty for the screens opened by navigation
func NewBase(page playwright.Page, uri string) Base {
	return Base{page: page, uri: uri}
}

// Page returns the underlying browser page
func (b *Base) Page() playwright.Page {
	return b.page
}

// BaseURL returns uri the page object was created with
func (b *Base) BaseURL() string {
	return b.uri
}

// screenURL builds "{base}/{workspace}/{screen}/"
func screenURL(baseURL, workspace, screen string) string {
	if workspace == "" {
		workspace = DefaultWorkspace
	}
	return fmt.Sprintf("%s/%s/%s/", strings.TrimRight(baseURL, "/"), workspace, screen)
}

func (b *Base) goTo(uri string) error {
	log.WithFunc("pages", "goTo").Debug("Navigating", "uri", uri)
	if _, err := b.page.Goto(uri); err != nil {
		return fmt.Errorf("goto %s: %w", uri, err)
	}
	return nil
}

// Open navigates to the page uri
func (b *Base) Open() error {
	if b.uri == "" {
		return ErrNoURI
	}
	return b.goTo(b.uri)
}

// Reload the current page
func (b *Base) Reload() error {
	if _, err := b.page.Reload(); err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	return nil
}

// GoBack navigates to the previous page of the history
func (b *Base) GoBack() error {
	if _, err := b.page.GoBack(); err != nil {
		return fmt.Errorf("go back: %w", err)
	}
	return nil
}

// GoForward navigates to the next page of the history
func (b *Base) GoForward() error {
	if _, err := b.page.GoForward(); err != nil {
		return fmt.Errorf("go forward: %w", err)
	}
	return nil
}

// Close the page
func (b *Base) Close() error {
	if err := b.page.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

// HandleDialog logs the dialog message and dismisses or accepts it
func (*Base) HandleDialog(dialog playwright.Dialog, dismiss bool) error {
	logger := log.WithFunc("pages", "HandleDialog")
	logger.Info("Dialog opened", "type", dialog.Type(), "message", dialog.Message(), "dismiss", dismiss)
	if dismiss {
		return dialog.Dismiss()
	}
	return dialog.Accept()
}

func (b *Base) onDialog(dismiss bool) {
	b.page.OnDialog(func(dialog playwright.Dialog) {
		if err := b.HandleDialog(dialog, dismiss); err != nil {
			log.WithFunc("pages", "onDialog").Warn("Unable to handle dialog", "err", err)
		}
	})
}

// AcceptDialogs accepts every dialog the page opens
func (b *Base) AcceptDialogs() {
	b.onDialog(false)
}

// DismissDialogs dismisses every dialog the page opens
func (b *Base) DismissDialogs() {
	b.onDialog(true)
}

// HandlePopup waits for the secondary page to load and logs its title
func (*Base) HandlePopup(popup playwright.Page) error {
	if err := popup.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateLoad,
	}); err != nil {
		return fmt.Errorf("popup load: %w", err)
	}
	title, err := popup.Title()
	if err != nil {
		return fmt.Errorf("popup title: %w", err)
	}
	log.WithFunc("pages", "HandlePopup").Info("Popup loaded", "title", title, "url", popup.URL())
	return nil
}

// WatchPopups installs HandlePopup for every popup the page opens. The driver calls event
// handlers on its dispatch loop, so the popup load is awaited in a separate goroutine.
func (b *Base) WatchPopups() {
	b.page.OnPopup(func(popup playwright.Page) {
		go func() {
			if err := b.HandlePopup(popup); err != nil {
				log.WithFunc("pages", "WatchPopups").Warn("Unable to handle popup", "err", err)
			}
		}()
	})
}

// Exists waits until the locator reaches the state, visible when state is nil. Zero timeout
// means DefaultExistsTimeout.
func (*Base) Exists(locator playwright.Locator, state *playwright.WaitForSelectorState, timeout time.Duration) error {
	if state == nil {
		state = playwright.WaitForSelectorStateVisible
	}
	if timeout <= 0 {
		timeout = DefaultExistsTimeout
	}
	return locator.WaitFor(playwright.LocatorWaitForOptions{
		State:   state,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
}

func (b *Base) waitForLoad() error {
	return b.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateLoad,
	})
}

// submit clicks the submit button and waits for the form to show the alert or for the done
// locator of the next screen. The wait is bound by the default timeout of the browser context.
// The alert is not an error, it's read by the caller.
func (b *Base) submit(button, alert, done playwright.Locator) error {
	if err := button.Click(); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	if err := alert.Or(done).First().WaitFor(); err != nil {
		return fmt.Errorf("submit: no alert or next screen: %w", err)
	}
	return b.waitForLoad()
}

// alertText returns visible text of the alert or empty string when there is no alert
func alertText(alert playwright.Locator) (string, error) {
	count, err := alert.Count()
	if err != nil || count == 0 {
		return "", err
	}
	text, err := alert.First().InnerText()
	if err != nil {
		return "", fmt.Errorf("alert text: %w", err)
	}
	return strings.TrimSpace(text), nil
}
