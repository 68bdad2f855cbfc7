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
	"errors"
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/adobe/gateway-console-uitest/lib/log"
)

// Selectors of the entity table shared by services and routes screens
const (
	entityRowsXPath       = "//div/table/tbody/tr"
	rowOverflowSelector   = "[data-testid='overflow-actions-button']"
	rowDeleteXPath        = "//li[@data-testid='action-entity-delete']/button"
	confirmationXPath     = "//input[@data-testid='confirmation-input']"
	modalActionXPath      = "//button[@data-testid='modal-action-button']"
	formErrorSelector     = "[data-testid='form-error']"
	formSubmitXPath       = "//button[@type='submit']"
	placeholderName       = "Enter a unique name"
	confirmEnabledTimeout = 1000 // Milliseconds
)

// entityList is the table of entities on the list screen
type entityList struct {
	*Base

	// Container rendered when the list is loaded
	container string
}

func (l entityList) waitVisible() error {
	if err := l.Exists(l.page.Locator(l.container), nil, 0); err != nil {
		return fmt.Errorf("wait for list %s: %w", l.container, err)
	}
	return nil
}

func (l entityList) open(uri string) error {
	if err := l.goTo(uri); err != nil {
		return err
	}
	return l.waitVisible()
}

func (l entityList) count() (int, error) {
	count, err := l.page.Locator(entityRowsXPath).Count()
	if err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}
	return count, nil
}

// deleteAll removes rows from the last to the first. Failures are logged and collected, the
// loop goes on with the next row.
func (l entityList) deleteAll(fun string) error {
	logger := log.WithFunc("pages", fun)
	rows := l.page.Locator(entityRowsXPath)
	count, err := rows.Count()
	if err != nil {
		return fmt.Errorf("count rows: %w", err)
	}
	if count == 0 {
		logger.Debug("Nothing to delete")
		return nil
	}

	var errs []error
	for i := count - 1; i >= 0; i-- {
		name, err := l.deleteRow(rows.Nth(i))
		if err != nil {
			logger.Error("Unable to delete row", "index", i, "name", name, "err", err)
			errs = append(errs, fmt.Errorf("row %d %q: %w", i, name, err))
			l.closeModal()
			continue
		}
		logger.Info("Deleted", "name", name)
	}
	return errors.Join(errs...)
}

func (l entityList) deleteRow(row playwright.Locator) (string, error) {
	name, err := row.GetAttribute("data-testid")
	if err != nil {
		return "", fmt.Errorf("row name: %w", err)
	}
	if err := row.Locator(rowOverflowSelector).Click(); err != nil {
		return name, fmt.Errorf("open actions: %w", err)
	}
	if err := row.Locator(rowDeleteXPath).Click(); err != nil {
		return name, fmt.Errorf("click delete: %w", err)
	}
	if err := l.page.Locator(confirmationXPath).Fill(name); err != nil {
		return name, fmt.Errorf("fill confirmation: %w", err)
	}

	confirm := l.page.Locator(modalActionXPath)
	if err := playwright.NewPlaywrightAssertions().Locator(confirm).ToBeEnabled(playwright.LocatorAssertionsToBeEnabledOptions{
		Timeout: playwright.Float(confirmEnabledTimeout),
	}); err != nil {
		return name, fmt.Errorf("confirm button is not enabled: %w", err)
	}
	if err := confirm.Click(); err != nil {
		return name, fmt.Errorf("click confirm: %w", err)
	}
	if err := l.Exists(confirm, playwright.WaitForSelectorStateHidden, 0); err != nil {
		return name, fmt.Errorf("modal did not close: %w", err)
	}
	return name, nil
}

// closeModal is best effort, the confirmation modal left open blocks the next row
func (l entityList) closeModal() {
	if err := l.page.Keyboard().Press("Escape"); err != nil {
		log.WithFunc("pages", "closeModal").Debug("Unable to close modal", "err", err)
	}
}

func (l entityList) errorMessage() (string, error) {
	return alertText(l.page.Locator(formErrorSelector))
}
