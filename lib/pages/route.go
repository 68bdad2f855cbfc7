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

package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/adobe/gateway-console-uitest/lib/log"
)

const (
	routeListXPath          = "//div[@class='kong-ui-entities-routes-list']"
	routeServicePlaceholder = "Select a service"
	tidRoutePathInput       = "route-form-paths-input-1"
	tidRouteSubmit          = "form-submit"
)

// AddRouteButton is shown in the empty list placeholder or in the list toolbar
var AddRouteButton = VariantOf("add route",
	BySelector("[data-testid='new-route']"),
	ByTestID("toolbar-add-route"),
)

// Route is the routes screen
type Route struct {
	Base
}

// NewRoute creates routes page object
func NewRoute(page playwright.Page) *Route {
	return &Route{Base: NewBase(page, "")}
}

func (r *Route) list() entityList {
	return entityList{Base: &r.Base, container: routeListXPath}
}

// GotoRoutes opens the routes list of the workspace
func (r *Route) GotoRoutes(baseURL, workspace string) error {
	return r.list().open(screenURL(baseURL, workspace, "routes"))
}

// NewRoute fills and submits the new route form on the routes screen. Empty name is generated
// and empty path is "/". Returns the form actually submitted.
func (r *Route) NewRoute(form RouteForm) (RouteForm, error) {
	form = form.withDefaults()
	if form.ServiceName == "" {
		return form, fmt.Errorf("new route: service name is required")
	}
	logger := log.WithFunc("pages", "NewRoute")
	logger.Info("Creating route", "name", form.Name, "service", form.ServiceName, "path", form.Path)

	if err := r.list().waitVisible(); err != nil {
		return form, fmt.Errorf("new route: %w", err)
	}
	if err := AddRouteButton.Click(r.page); err != nil {
		return form, fmt.Errorf("new route: %w", err)
	}
	if err := r.page.GetByPlaceholder(placeholderName).Fill(form.Name); err != nil {
		return form, fmt.Errorf("new route: name: %w", err)
	}
	if err := r.page.GetByPlaceholder(routeServicePlaceholder).Click(); err != nil {
		return form, fmt.Errorf("new route: open service select: %w", err)
	}
	if err := r.page.GetByText(form.ServiceName, playwright.PageGetByTextOptions{
		Exact: playwright.Bool(true),
	}).Click(); err != nil {
		return form, fmt.Errorf("new route: select service %s: %w", form.ServiceName, err)
	}
	if err := r.page.GetByTestId(tidRoutePathInput).Fill(form.Path); err != nil {
		return form, fmt.Errorf("new route: path: %w", err)
	}
	if err := r.submit(r.page.GetByTestId(tidRouteSubmit), r.page.Locator(formErrorSelector), r.page.Locator(routeListXPath)); err != nil {
		return form, fmt.Errorf("new route: %w", err)
	}

	if msg, _ := r.ErrorMessage(); msg != "" {
		logger.Warn("Route form rejected", "alert", msg)
	}
	return form, nil
}

// CountRoutes opens the list and returns the number of rows
func (r *Route) CountRoutes(baseURL, workspace string) (int, error) {
	if err := r.GotoRoutes(baseURL, workspace); err != nil {
		return 0, err
	}
	return r.list().count()
}

// DeleteAllRoutes opens the list and deletes every route on it. Returns joined errors of the
// rows failed to delete.
func (r *Route) DeleteAllRoutes(baseURL, workspace string) error {
	if err := r.GotoRoutes(baseURL, workspace); err != nil {
		return err
	}
	return r.list().deleteAll("DeleteAllRoutes")
}

// ErrorMessage returns text of the form alert, empty when there is no alert
func (r *Route) ErrorMessage() (string, error) {
	return r.list().errorMessage()
}
