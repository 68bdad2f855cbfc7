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
	"strings"

	"github.com/playwright-community/playwright-go"
)

// Workspaces is the workspace chooser shown on the console root
type Workspaces struct {
	Base
}

// NewWorkspaces creates workspace chooser page object
func NewWorkspaces(page playwright.Page) *Workspaces {
	return &Workspaces{Base: NewBase(page, "")}
}

func workspaceTileXPath(name string) string {
	return fmt.Sprintf("//div[@title=%s and @class='workspace-title']/div[@class='workspace-name']", xpathLiteral(name))
}

// xpathLiteral quotes the string for XPath 1.0, which has no escape sequences. A string with
// both quote kinds is built with concat().
func xpathLiteral(s string) string {
	switch {
	case !strings.Contains(s, "'"):
		return "'" + s + "'"
	case !strings.Contains(s, `"`):
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	for i, part := range parts {
		parts[i] = "'" + part + "'"
	}
	return "concat(" + strings.Join(parts, `, "'", `) + ")"
}

// GoToWorkspace opens the chooser and clicks the workspace tile
func (w *Workspaces) GoToWorkspace(baseURL, name string) error {
	if name == "" {
		name = DefaultWorkspace
	}
	if err := w.goTo(strings.TrimRight(baseURL, "/") + "/"); err != nil {
		return err
	}
	if err := w.page.Locator(workspaceTileXPath(name)).Click(); err != nil {
		return fmt.Errorf("open workspace %s: %w", name, err)
	}
	return w.waitForLoad()
}

// Workspace is the overview screen of the workspace with the navigation menu
type Workspace struct {
	Base
}

// NewWorkspace creates workspace page object
func NewWorkspace(page playwright.Page) *Workspace {
	return &Workspace{Base: NewBase(page, "")}
}

// GotoWorkspace opens the overview of the workspace
func (w *Workspace) GotoWorkspace(baseURL, name string) error {
	return w.goTo(screenURL(baseURL, name, "overview"))
}

func (w *Workspace) clickLink(name string) error {
	if err := w.page.GetByRole(*playwright.AriaRoleLink, playwright.PageGetByRoleOptions{
		Name: name,
	}).Click(); err != nil {
		return fmt.Errorf("click %s: %w", name, err)
	}
	return w.waitForLoad()
}

// ClickGatewayServices navigates to the services screen through the menu
func (w *Workspace) ClickGatewayServices() error {
	return w.clickLink("Gateway Services")
}

// ClickRoutes navigates to the routes screen through the menu
func (w *Workspace) ClickRoutes() error {
	return w.clickLink("Routes")
}

// ClickAddGatewayService clicks the add button of the services list
func (w *Workspace) ClickAddGatewayService() error {
	if err := w.Exists(w.page.Locator(serviceListXPath), nil, 0); err != nil {
		return fmt.Errorf("wait for services list: %w", err)
	}
	return AddGatewayServiceButton.Click(w.page)
}
