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
	"strconv"

	"github.com/playwright-community/playwright-go"

	"github.com/adobe/gateway-console-uitest/lib/log"
)

const (
	serviceListXPath = "//div[@class='kong-ui-entities-gateway-services-list']"

	serviceTagsXPath = "//input[@placeholder='Enter a list of tags separated by comma']"
	serviceURLXPath  = "//input[@placeholder='Enter a URL']"
	serviceHostXPath = "//input[@placeholder='Enter a host']"
	servicePathXPath = "//input[@placeholder='Enter a path']"

	serviceExpandedLabel = "Protocol, Host, Port and Path"
	serviceAdvancedName  = "View Advanced Fields"
)

// Test ids of the gateway service form
const (
	tidProtocolSelect    = "gateway-service-protocol-select"
	tidPortInput         = "gateway-service-port-input"
	tidRetriesInput      = "gateway-service-retries-input"
	tidConnTimeoutInput  = "gateway-service-connTimeout-input"
	tidWriteTimeoutInput = "gateway-service-writeTimeout-input"
	tidReadTimeoutInput  = "gateway-service-readTimeout-input"
	tidClientCertInput   = "gateway-service-clientCert-input"
	tidCACertInput       = "gateway-service-ca-certs-input"
	tidTLSVerifyCheckbox = "gateway-service-tls-verify-checkbox"
)

// AddGatewayServiceButton is shown in the empty list placeholder or in the list toolbar
var AddGatewayServiceButton = VariantOf("add gateway service",
	ByTestID("new-gateway-service"),
	ByTestID("toolbar-add-gateway-service"),
)

// GatewayService is the gateway services screen
type GatewayService struct {
	Base
}

// NewGatewayService creates gateway services page object
func NewGatewayService(page playwright.Page) *GatewayService {
	return &GatewayService{Base: NewBase(page, "")}
}

func (g *GatewayService) list() entityList {
	return entityList{Base: &g.Base, container: serviceListXPath}
}

// GotoGatewayServices opens the services list of the workspace
func (g *GatewayService) GotoGatewayServices(baseURL, workspace string) error {
	return g.list().open(screenURL(baseURL, workspace, "services"))
}

func (g *GatewayService) clickAdd() error {
	if err := g.list().waitVisible(); err != nil {
		return err
	}
	return AddGatewayServiceButton.Click(g.page)
}

// NewGatewayService fills and submits the new service form. The form is validated before
// any interaction. Rejection by the console is not an error, check ErrorMessage for it.
func (g *GatewayService) NewGatewayService(form GatewayServiceForm) error {
	if err := form.Validate(); err != nil {
		return fmt.Errorf("new gateway service: %w", err)
	}
	logger := log.WithFunc("pages", "NewGatewayService")
	logger.Info("Creating gateway service", "form", form)

	if err := g.clickAdd(); err != nil {
		return fmt.Errorf("new gateway service: %w", err)
	}
	if err := g.fill(form); err != nil {
		return fmt.Errorf("new gateway service: %w", err)
	}
	if err := g.submit(g.page.Locator(formSubmitXPath), g.page.Locator(formErrorSelector), g.page.Locator(serviceListXPath)); err != nil {
		return fmt.Errorf("new gateway service: %w", err)
	}

	if msg, _ := g.ErrorMessage(); msg != "" {
		logger.Warn("Gateway service form rejected", "alert", msg)
	}
	return nil
}

func (g *GatewayService) fill(form GatewayServiceForm) error {
	if err := fillIfSet(g.page.GetByPlaceholder(placeholderName), form.Name); err != nil {
		return fmt.Errorf("name: %w", err)
	}
	if err := fillIfSet(g.page.Locator(serviceTagsXPath), form.Tags); err != nil {
		return fmt.Errorf("tags: %w", err)
	}

	if form.UsesURL() {
		if err := g.page.Locator(serviceURLXPath).Fill(*form.URL); err != nil {
			return fmt.Errorf("url: %w", err)
		}
	} else if err := g.fillElements(form); err != nil {
		return err
	}

	if form.HasAdvanced() {
		if err := g.fillAdvanced(form); err != nil {
			return err
		}
	}
	return nil
}

func (g *GatewayService) fillElements(form GatewayServiceForm) error {
	if err := g.page.GetByLabel(serviceExpandedLabel).Check(); err != nil {
		return fmt.Errorf("switch to separate elements: %w", err)
	}
	if err := g.page.GetByTestId(tidProtocolSelect).Click(); err != nil {
		return fmt.Errorf("open protocol select: %w", err)
	}
	item := g.page.GetByTestId("select-item-"+protocolFamily(*form.Protocol)).
		GetByRole(*playwright.AriaRoleButton, playwright.LocatorGetByRoleOptions{
			Name:  *form.Protocol,
			Exact: playwright.Bool(true),
		})
	if err := item.Click(); err != nil {
		return fmt.Errorf("select protocol %s: %w", *form.Protocol, err)
	}
	if err := g.page.Locator(serviceHostXPath).Fill(*form.Host); err != nil {
		return fmt.Errorf("host: %w", err)
	}

	// Path and port inputs are rendered depending on the selected protocol
	if err := fillIfRendered(g.page.Locator(servicePathXPath), form.Path); err != nil {
		return fmt.Errorf("path: %w", err)
	}
	var port *string
	if form.Port != nil {
		port = playwright.String(strconv.Itoa(*form.Port))
	}
	if err := fillIfRendered(g.page.GetByTestId(tidPortInput), port); err != nil {
		return fmt.Errorf("port: %w", err)
	}
	return nil
}

func (g *GatewayService) fillAdvanced(form GatewayServiceForm) error {
	if err := g.page.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{
		Name: serviceAdvancedName,
	}).Click(); err != nil {
		return fmt.Errorf("expand advanced fields: %w", err)
	}

	numbers := []struct {
		testID string
		value  *int
	}{
		{tidRetriesInput, form.Retries},
		{tidConnTimeoutInput, form.ConnectionTimeout},
		{tidWriteTimeoutInput, form.WriteTimeout},
		{tidReadTimeoutInput, form.ReadTimeout},
	}
	for _, field := range numbers {
		if field.value == nil {
			continue
		}
		if err := g.page.GetByTestId(field.testID).Fill(strconv.Itoa(*field.value)); err != nil {
			return fmt.Errorf("%s: %w", field.testID, err)
		}
	}
	if err := fillIfSet(g.page.GetByTestId(tidClientCertInput), form.ClientCert); err != nil {
		return fmt.Errorf("client certificate: %w", err)
	}
	if err := fillIfSet(g.page.GetByTestId(tidCACertInput), form.CACert); err != nil {
		return fmt.Errorf("ca certificate: %w", err)
	}
	if form.TLSVerify != nil {
		if err := g.page.GetByTestId(tidTLSVerifyCheckbox).SetChecked(*form.TLSVerify); err != nil {
			return fmt.Errorf("tls verify: %w", err)
		}
	}
	return nil
}

// NewGatewayServiceByURL creates the service with the endpoint given as url
func (g *GatewayService) NewGatewayServiceByURL(name, tags, url string) error {
	return g.NewGatewayService(GatewayServiceForm{
		Name: &name,
		Tags: &tags,
		URL:  &url,
	})
}

// NewGatewayServiceBySeparateElements creates the service with the endpoint given as
// protocol, host, path and port. Zero port leaves the port input untouched.
func (g *GatewayService) NewGatewayServiceBySeparateElements(name, tags, protocol, host, path string, port int) error {
	form := GatewayServiceForm{
		Name:     &name,
		Tags:     &tags,
		Protocol: &protocol,
		Host:     &host,
		Path:     &path,
	}
	if port != 0 {
		form.Port = &port
	}
	return g.NewGatewayService(form)
}

// CountGatewayServices opens the list and returns the number of rows
func (g *GatewayService) CountGatewayServices(baseURL, workspace string) (int, error) {
	if err := g.GotoGatewayServices(baseURL, workspace); err != nil {
		return 0, err
	}
	return g.list().count()
}

// DeleteAllGatewayServices opens the list and deletes every service on it. Returns joined
// errors of the rows failed to delete.
func (g *GatewayService) DeleteAllGatewayServices(baseURL, workspace string) error {
	if err := g.GotoGatewayServices(baseURL, workspace); err != nil {
		return err
	}
	return g.list().deleteAll("DeleteAllGatewayServices")
}

// ErrorMessage returns text of the form alert, empty when there is no alert
func (g *GatewayService) ErrorMessage() (string, error) {
	return g.list().errorMessage()
}

func fillIfSet(locator playwright.Locator, value *string) error {
	if value == nil {
		return nil
	}
	return locator.Fill(*value)
}

func fillIfRendered(locator playwright.Locator, value *string) error {
	if value == nil {
		return nil
	}
	count, err := locator.Count()
	if err != nil || count == 0 {
		return err
	}
	return locator.Fill(*value)
}
