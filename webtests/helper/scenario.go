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
	"fmt"
	"os"
	"testing"

	"github.com/ghodss/yaml"

	"github.com/adobe/gateway-console-uitest/lib/pages"
)

// ParseServiceScenarios decodes yaml list of gateway service forms, every form is validated
func ParseServiceScenarios(data []byte) ([]pages.GatewayServiceForm, error) {
	var forms []pages.GatewayServiceForm
	if err := yaml.Unmarshal(data, &forms); err != nil {
		return nil, fmt.Errorf("scenario: unable to parse: %w", err)
	}
	for i, form := range forms {
		if err := form.Validate(); err != nil {
			return nil, fmt.Errorf("scenario: form %d: %w", i, err)
		}
	}
	return forms, nil
}

// LoadServiceScenarios reads the scenario file or fails the test
func LoadServiceScenarios(tb testing.TB, path string) []pages.GatewayServiceForm {
	tb.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("ERROR: Unable to read scenario file %s: %v", path, err)
	}
	forms, err := ParseServiceScenarios(data)
	if err != nil {
		tb.Fatalf("ERROR: Unable to load scenario file %s: %v", path, err)
	}
	return forms
}
