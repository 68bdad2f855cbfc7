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
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/ghodss/yaml"
	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayServiceForm_Validate(t *testing.T) {
	tests := []struct {
		name string
		form GatewayServiceForm
		want error
	}{
		{
			name: "url only",
			form: GatewayServiceForm{URL: playwright.String("http://joy.org")},
		},
		{
			name: "separate elements",
			form: GatewayServiceForm{Protocol: playwright.String("grpc"), Host: playwright.String("example.com")},
		},
		{
			name: "url with host",
			form: GatewayServiceForm{URL: playwright.String("http://joy.org"), Host: playwright.String("joy.org")},
			want: ErrConflictingEndpoint,
		},
		{
			name: "url with port",
			form: GatewayServiceForm{URL: playwright.String("http://joy.org"), Port: playwright.Int(80)},
			want: ErrConflictingEndpoint,
		},
		{
			name: "nothing",
			form: GatewayServiceForm{Name: playwright.String("svc")},
			want: ErrMissingEndpoint,
		},
		{
			name: "empty url",
			form: GatewayServiceForm{URL: playwright.String("")},
			want: ErrMissingEndpoint,
		},
		{
			name: "protocol without host",
			form: GatewayServiceForm{Protocol: playwright.String("http")},
			want: ErrMissingEndpoint,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.form.Validate()
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestGatewayServiceForm_HasAdvanced(t *testing.T) {
	form := GatewayServiceForm{URL: playwright.String("http://joy.org")}
	assert.False(t, form.HasAdvanced())
	form.TLSVerify = playwright.Bool(false)
	assert.True(t, form.HasAdvanced())
}

func TestGatewayServiceForm_YAML(t *testing.T) {
	data := []byte(`
name: svc
protocol: grpc
host: example.com
port: 9000
retries: 3
tls_verify: true
`)
	var form GatewayServiceForm
	require.NoError(t, yaml.Unmarshal(data, &form))

	assert.Equal(t, "svc", *form.Name)
	assert.Equal(t, 9000, *form.Port)
	assert.Equal(t, 3, *form.Retries)
	assert.True(t, *form.TLSVerify)
	assert.Nil(t, form.URL)
	assert.Nil(t, form.Path)
	assert.NoError(t, form.Validate())
}

func TestGatewayServiceForm_LogValue(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.Info("form", "form", GatewayServiceForm{
		Name:       playwright.String("svc"),
		URL:        playwright.String("http://joy.org"),
		ClientCert: playwright.String("-----BEGIN CERTIFICATE-----"),
	})

	out := buf.String()
	assert.Contains(t, out, "form.name=svc")
	assert.Contains(t, out, "form.client_cert=<set>")
	assert.NotContains(t, out, "BEGIN CERTIFICATE")
	assert.NotContains(t, out, "form.host")
}

func TestProtocolFamily(t *testing.T) {
	families := map[string]string{
		"http":            "http",
		"https":           "http",
		"grpc":            "grpc",
		"grpcs":           "grpc",
		"udp":             "udp",
		"ws":              "websocket",
		"wss":             "websocket",
		"tcp":             "tcp",
		"tls":             "tcp",
		"tls_passthrough": "tcp",
	}
	for protocol, family := range families {
		assert.Equal(t, family, protocolFamily(protocol), protocol)
	}
}

func TestRouteForm_Defaults(t *testing.T) {
	form := RouteForm{ServiceName: "svc"}.withDefaults()
	assert.True(t, strings.HasPrefix(form.Name, "route_"), form.Name)
	assert.Equal(t, DefaultRoutePath, form.Path)

	form = RouteForm{Name: "r1", ServiceName: "svc", Path: "/api"}.withDefaults()
	assert.Equal(t, RouteForm{Name: "r1", ServiceName: "svc", Path: "/api"}, form)
}

func TestScreenURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8002/default/services/", screenURL("http://localhost:8002/", "", "services"))
	assert.Equal(t, "http://localhost:8002/team/routes/", screenURL("http://localhost:8002", "team", "routes"))
}

func TestVariant_NoCandidates(t *testing.T) {
	_, err := VariantOf("empty").Resolve(nil)
	assert.ErrorContains(t, err, `variant "empty" has no candidates`)
}

func TestBase_OpenWithoutURI(t *testing.T) {
	b := NewBase(nil, "")
	assert.ErrorIs(t, b.Open(), ErrNoURI)
}
