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

// Candidate builds one of the locators a UI element could be found by
type Candidate func(page playwright.Page) playwright.Locator

// ByTestID locates element by data-testid attribute
func ByTestID(id string) Candidate {
	return func(page playwright.Page) playwright.Locator {
		return page.GetByTestId(id)
	}
}

// BySelector locates element by css or xpath selector
func BySelector(selector string) Candidate {
	return func(page playwright.Page) playwright.Locator {
		return page.Locator(selector)
	}
}

// Variant is an UI element rendered differently depending on the screen state, like the add
// button shown in the empty list placeholder or in the toolbar
type Variant struct {
	Name       string
	Candidates []Candidate
}

// VariantOf creates ordered variant locator
func VariantOf(name string, candidates ...Candidate) Variant {
	return Variant{Name: name, Candidates: candidates}
}

// Resolve returns the first candidate present on the page. When none is present the last one
// is returned, so the following action fails with the driver timeout.
func (v Variant) Resolve(page playwright.Page) (playwright.Locator, error) {
	if len(v.Candidates) == 0 {
		return nil, fmt.Errorf("variant %q has no candidates", v.Name)
	}
	logger := log.WithFunc("pages", "Resolve")
	last := len(v.Candidates) - 1
	for i, candidate := range v.Candidates[:last] {
		locator := candidate(page)
		count, err := locator.Count()
		if err != nil {
			return nil, fmt.Errorf("variant %q candidate %d: %w", v.Name, i, err)
		}
		if count > 0 {
			logger.Debug("Variant resolved", "name", v.Name, "candidate", i)
			return locator, nil
		}
	}
	logger.Debug("Variant falls back to the last candidate", "name", v.Name, "candidate", last)
	return v.Candidates[last](page), nil
}

// Click resolves the variant and clicks it
func (v Variant) Click(page playwright.Page) error {
	locator, err := v.Resolve(page)
	if err != nil {
		return err
	}
	if err := locator.Click(); err != nil {
		return fmt.Errorf("click %s: %w", v.Name, err)
	}
	return nil
}
