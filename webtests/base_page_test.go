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

package tests

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/adobe/gateway-console-uitest/lib/pages"
	"github.com/adobe/gateway-console-uitest/lib/verify"
	hp "github.com/adobe/gateway-console-uitest/webtests/helper"
)

// Test_base_page checks history navigation, dialogs, popups and waits of the base page
// WARNING: Needs the console from ENV_NAME profile (ENV_NAME=mock serves it in-process)
func Test_base_page(t *testing.T) {
	s, page := hp.NewSession(t)
	screen := func(name string) string {
		return fmt.Sprintf("%s/%s/%s/", strings.TrimRight(s.BaseURL(), "/"), s.Workspace(), name)
	}

	s.Run(t, "history", func(t *testing.T) {
		v := verify.New(t)

		if err := pages.NewWorkspace(page).GotoWorkspace(s.BaseURL(), s.Workspace()); err != nil {
			t.Fatalf("ERROR: Could not open workspace overview: %v", err)
		}
		services := pages.NewGatewayService(page)
		if err := services.GotoGatewayServices(s.BaseURL(), s.Workspace()); err != nil {
			t.Fatalf("ERROR: Could not open gateway services: %v", err)
		}

		if err := services.GoBack(); err != nil {
			t.Fatalf("ERROR: Could not go back: %v", err)
		}
		v.In("/overview/", page.URL(), "back to overview")

		if err := services.GoForward(); err != nil {
			t.Fatalf("ERROR: Could not go forward: %v", err)
		}
		v.In("/services/", page.URL(), "forward to services")

		if err := services.Reload(); err != nil {
			t.Fatalf("ERROR: Could not reload: %v", err)
		}
		v.In("/services/", page.URL(), "reload keeps the screen")

		routes := pages.NewBase(page, screen("routes"))
		if err := routes.Open(); err != nil {
			t.Fatalf("ERROR: Could not open routes: %v", err)
		}
		v.Equals(page.URL(), routes.BaseURL(), "page is opened by uri")
	})

	s.Run(t, "dialogs", func(t *testing.T) {
		v := verify.New(t)

		for _, accept := range []bool{false, true} {
			tab, err := page.Context().NewPage()
			if err != nil {
				t.Fatalf("ERROR: Could not open new page: %v", err)
			}
			b := pages.NewBase(tab, screen("overview"))
			if err := b.Open(); err != nil {
				t.Fatalf("ERROR: Could not open overview: %v", err)
			}
			if accept {
				b.AcceptDialogs()
			} else {
				b.DismissDialogs()
			}

			answer, err := tab.Evaluate("() => confirm('Delete everything?')")
			if err != nil {
				t.Fatalf("ERROR: Could not show confirm dialog: %v", err)
			}
			v.Equals(answer, accept, fmt.Sprintf("confirm answer when accept=%v", accept))

			if err := b.Close(); err != nil {
				t.Fatalf("ERROR: Could not close page: %v", err)
			}
			v.True(tab.IsClosed(), "page is closed")
		}
	})

	s.Run(t, "popup", func(t *testing.T) {
		v := verify.New(t)

		b := pages.NewBase(page, screen("overview"))
		if err := b.Open(); err != nil {
			t.Fatalf("ERROR: Could not open overview: %v", err)
		}
		b.WatchPopups()

		popup, err := page.ExpectPopup(func() error {
			_, err := page.Evaluate("url => { window.open(url) }", screen("routes"))
			return err
		})
		if err != nil {
			t.Fatalf("ERROR: Popup was not opened: %v", err)
		}
		defer popup.Close()

		if err := b.HandlePopup(popup); err != nil {
			t.Fatalf("ERROR: Could not handle popup: %v", err)
		}
		v.In("/routes/", popup.URL(), "popup shows routes")
		title, err := popup.Title()
		if err != nil {
			t.Fatalf("ERROR: Could not read popup title: %v", err)
		}
		v.NotEquals(title, "", "popup is loaded")
	})

	s.Run(t, "exists", func(t *testing.T) {
		v := verify.New(t)

		services := pages.NewGatewayService(page)
		if err := services.GotoGatewayServices(s.BaseURL(), s.Workspace()); err != nil {
			t.Fatalf("ERROR: Could not open gateway services: %v", err)
		}

		modal := page.Locator("#delete-modal")
		if err := services.Exists(modal, playwright.WaitForSelectorStateHidden, time.Second); err != nil {
			t.Fatalf("ERROR: Delete modal is expected hidden: %v", err)
		}
		if err := services.Exists(modal, playwright.WaitForSelectorStateAttached, 0); err != nil {
			t.Fatalf("ERROR: Delete modal is expected in the DOM: %v", err)
		}
		v.CallFailed(func() error {
			return services.Exists(modal, nil, 300*time.Millisecond)
		}, verify.CallFailure{Is: playwright.ErrTimeout}, "hidden modal never becomes visible")
	})
}
