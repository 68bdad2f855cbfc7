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
	"log/slog"
	"strings"

	"github.com/adobe/gateway-console-uitest/lib/util"
)

var (
	// ErrConflictingEndpoint is returned for the form with both url and protocol/host/port/path
	ErrConflictingEndpoint = errors.New("url and protocol/host/port/path are mutually exclusive")
	// ErrMissingEndpoint is returned for the form without url and without protocol and host
	ErrMissingEndpoint = errors.New("either url or protocol and host are required")
)

// GatewayServiceForm holds the fields of the new gateway service form, nil fields are not
// touched. The service endpoint is given either as url or as protocol, host, port and path.
type GatewayServiceForm struct {
	Name *string `json:"name,omitempty"`
	Tags *string `json:"tags,omitempty"`

	URL *string `json:"url,omitempty"`

	Protocol *string `json:"protocol,omitempty"`
	Host     *string `json:"host,omitempty"`
	Port     *int    `json:"port,omitempty"`
	Path     *string `json:"path,omitempty"`

	Retries           *int    `json:"retries,omitempty"`
	ConnectionTimeout *int    `json:"connection_timeout,omitempty"` // Milliseconds
	WriteTimeout      *int    `json:"write_timeout,omitempty"`      // Milliseconds
	ReadTimeout       *int    `json:"read_timeout,omitempty"`       // Milliseconds
	ClientCert        *string `json:"client_cert,omitempty"`
	CACert            *string `json:"ca_cert,omitempty"`
	TLSVerify         *bool   `json:"tls_verify,omitempty"`
}

// UsesURL reports whether the form describes the endpoint as a single url
func (f *GatewayServiceForm) UsesURL() bool {
	return f.URL != nil
}

func (f *GatewayServiceForm) usesElements() bool {
	return f.Protocol != nil || f.Host != nil || f.Port != nil || f.Path != nil
}

// HasAdvanced reports whether any of the advanced fields is set
func (f *GatewayServiceForm) HasAdvanced() bool {
	return f.Retries != nil || f.ConnectionTimeout != nil || f.WriteTimeout != nil ||
		f.ReadTimeout != nil || f.ClientCert != nil || f.CACert != nil || f.TLSVerify != nil
}

// Validate checks the form describes exactly one endpoint mode
func (f *GatewayServiceForm) Validate() error {
	switch {
	case f.UsesURL() && f.usesElements():
		return ErrConflictingEndpoint
	case f.UsesURL():
		if *f.URL == "" {
			return fmt.Errorf("%w: url is empty", ErrMissingEndpoint)
		}
	case f.Protocol == nil || *f.Protocol == "" || f.Host == nil || *f.Host == "":
		return ErrMissingEndpoint
	}
	return nil
}

// LogValue renders the set fields, certificates are not logged
func (f GatewayServiceForm) LogValue() slog.Value {
	var attrs []slog.Attr
	str := func(key string, val *string) {
		if val != nil {
			attrs = append(attrs, slog.String(key, *val))
		}
	}
	num := func(key string, val *int) {
		if val != nil {
			attrs = append(attrs, slog.Int(key, *val))
		}
	}
	str("name", f.Name)
	str("tags", f.Tags)
	str("url", f.URL)
	str("protocol", f.Protocol)
	str("host", f.Host)
	num("port", f.Port)
	str("path", f.Path)
	num("retries", f.Retries)
	num("connection_timeout", f.ConnectionTimeout)
	num("write_timeout", f.WriteTimeout)
	num("read_timeout", f.ReadTimeout)
	if f.ClientCert != nil {
		attrs = append(attrs, slog.String("client_cert", "<set>"))
	}
	if f.CACert != nil {
		attrs = append(attrs, slog.String("ca_cert", "<set>"))
	}
	if f.TLSVerify != nil {
		attrs = append(attrs, slog.Bool("tls_verify", *f.TLSVerify))
	}
	return slog.GroupValue(attrs...)
}

// protocolFamily returns the group of the protocol selector the protocol is listed in
func protocolFamily(protocol string) string {
	switch {
	case strings.HasPrefix(protocol, "http"):
		return "http"
	case strings.HasPrefix(protocol, "grpc"):
		return "grpc"
	case strings.HasPrefix(protocol, "udp"):
		return "udp"
	case strings.HasPrefix(protocol, "ws"):
		return "websocket"
	}
	return "tcp"
}

// DefaultRoutePath is used for the route form without path
const DefaultRoutePath = "/"

// RouteForm holds the fields of the new route form
type RouteForm struct {
	Name        string `json:"name,omitempty"`
	ServiceName string `json:"service_name"`
	Path        string `json:"path,omitempty"`
}

// withDefaults generates the name and sets default path
func (f RouteForm) withDefaults() RouteForm {
	if f.Name == "" {
		f.Name = fmt.Sprintf("route_%d", util.Timestamp())
	}
	if f.Path == "" {
		f.Path = DefaultRoutePath
	}
	return f
}
