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
	"testing"
	"time"

	"github.com/adobe/gateway-console-uitest/lib/pages"
	"github.com/adobe/gateway-console-uitest/lib/verify"
	h "github.com/adobe/gateway-console-uitest/tests/helper"
)

// Console state changes are visible on the next list load, but the list could lag behind
const (
	countTimeout = 5 * time.Second
	countWait    = 250 * time.Millisecond
)

// CleanWorkspace deletes every route and then every service of the session workspace. Failed
// rows are only logged, the following check of the empty services list is fatal.
func CleanWorkspace(t *testing.T, s *Session) {
	t.Helper()

	if err := pages.NewRoute(s.page).DeleteAllRoutes(s.BaseURL(), s.Workspace()); err != nil {
		t.Logf("WARNING: Some routes were not deleted: %v", err)
	}
	if err := pages.NewGatewayService(s.page).DeleteAllGatewayServices(s.BaseURL(), s.Workspace()); err != nil {
		t.Logf("WARNING: Some gateway services were not deleted: %v", err)
	}

	verify.New(t).Equals(CountServices(t, s), 0, "no gateway services left after cleanup")
	t.Log("INFO: Workspace is clean:", s.Workspace())
}

// CountServices opens the services list and returns its rows count
func CountServices(t *testing.T, s *Session) int {
	t.Helper()
	count, err := pages.NewGatewayService(s.page).CountGatewayServices(s.BaseURL(), s.Workspace())
	if err != nil {
		t.Fatalf("ERROR: Could not count gateway services: %v", err)
	}
	return count
}

// CountRoutes opens the routes list and returns its rows count
func CountRoutes(t *testing.T, s *Session) int {
	t.Helper()
	count, err := pages.NewRoute(s.page).CountRoutes(s.BaseURL(), s.Workspace())
	if err != nil {
		t.Fatalf("ERROR: Could not count routes: %v", err)
	}
	return count
}

// WaitServicesCount reloads the services list until it shows the expected rows count
func WaitServicesCount(t *testing.T, s *Session, want int) {
	t.Helper()
	services := pages.NewGatewayService(s.page)
	h.Eventually(t, countTimeout, countWait, func(r *h.R) {
		count, err := services.CountGatewayServices(s.BaseURL(), s.Workspace())
		r.Check(err)
		if count != want {
			r.Errorf("gateway services count %d, expected %d", count, want)
		}
	})
}

// WaitRoutesCount reloads the routes list until it shows the expected rows count
func WaitRoutesCount(t *testing.T, s *Session, want int) {
	t.Helper()
	routes := pages.NewRoute(s.page)
	h.Eventually(t, countTimeout, countWait, func(r *h.R) {
		count, err := routes.CountRoutes(s.BaseURL(), s.Workspace())
		r.Check(err)
		if count != want {
			r.Errorf("routes count %d, expected %d", count, want)
		}
	})
}

// CreateGatewayService fills the new service form and fails the test on driver errors
func CreateGatewayService(t *testing.T, s *Session, form pages.GatewayServiceForm) {
	t.Helper()
	svc := pages.NewGatewayService(s.page)
	if err := svc.GotoGatewayServices(s.BaseURL(), s.Workspace()); err != nil {
		t.Fatalf("ERROR: Could not open gateway services: %v", err)
	}
	if err := svc.NewGatewayService(form); err != nil {
		t.Fatalf("ERROR: Could not create gateway service: %v", err)
	}
}

// AlertText returns the text of the form alert on the current page
func AlertText(t *testing.T, s *Session) string {
	t.Helper()
	msg, err := pages.NewGatewayService(s.page).ErrorMessage()
	if err != nil {
		t.Fatalf("ERROR: Could not read the form alert: %v", err)
	}
	return msg
}
