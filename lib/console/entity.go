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

package console

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Protocols the gateway service could use, grouped the way the protocol selector shows them
var ProtocolFamilies = []ProtocolFamily{
	{ID: "http", Protocols: []string{"http", "https"}},
	{ID: "grpc", Protocols: []string{"grpc", "grpcs"}},
	{ID: "udp", Protocols: []string{"udp"}},
	{ID: "websocket", Protocols: []string{"ws", "wss"}},
	{ID: "tcp", Protocols: []string{"tcp", "tls", "tls_passthrough"}},
}

// ProtocolFamily is one group of the protocol selector
type ProtocolFamily struct {
	ID        string
	Protocols []string
}

// Service defaults
const (
	DefaultRetries = 5
	DefaultTimeout = 60000 // Milliseconds
)

var (
	securePorts = map[string]int{"https": 443, "grpcs": 443, "wss": 443, "tls": 443}

	// Only these protocols accept the path
	pathProtocols = []string{"http", "https", "ws", "wss"}
)

// KnownProtocol reports whether the protocol is listed in the selector
func KnownProtocol(protocol string) bool {
	for _, family := range ProtocolFamilies {
		if slices.Contains(family.Protocols, protocol) {
			return true
		}
	}
	return false
}

// ProtocolHasPath reports whether the protocol accepts the path
func ProtocolHasPath(protocol string) bool {
	return slices.Contains(pathProtocols, protocol)
}

// DefaultPort returns the port used when the service defines none
func DefaultPort(protocol string) int {
	if port, ok := securePorts[protocol]; ok {
		return port
	}
	return 80
}

// Service is the upstream definition of the gateway
type Service struct {
	ID        string   `json:"id" yaml:"id"`
	Workspace string   `json:"workspace" yaml:"workspace"`
	Name      string   `json:"name" yaml:"name"`
	Tags      []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	Protocol string `json:"protocol" yaml:"protocol"`
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Path     string `json:"path,omitempty" yaml:"path,omitempty"`

	Retries        int    `json:"retries" yaml:"retries"`
	ConnectTimeout int    `json:"connect_timeout" yaml:"connect_timeout"`
	WriteTimeout   int    `json:"write_timeout" yaml:"write_timeout"`
	ReadTimeout    int    `json:"read_timeout" yaml:"read_timeout"`
	ClientCert     string `json:"client_certificate,omitempty" yaml:"client_certificate,omitempty"`
	CACert         string `json:"ca_certificates,omitempty" yaml:"ca_certificates,omitempty"`
	TLSVerify      *bool  `json:"tls_verify,omitempty" yaml:"tls_verify,omitempty"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Key identifies the entity in the list, name when it's set or id
func (s *Service) Key() string {
	if s.Name != "" {
		return s.Name
	}
	return s.ID
}

// SetURL fills protocol, host, port and path from the url
func (s *Service) SetURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Hostname() == "" {
		return fmt.Errorf("invalid url %q: scheme and host are required", raw)
	}
	s.Protocol = u.Scheme
	s.Host = u.Hostname()
	s.Port = 0
	if p := u.Port(); p != "" {
		if s.Port, err = strconv.Atoi(p); err != nil {
			return fmt.Errorf("invalid url %q port: %w", raw, err)
		}
	}
	s.Path = u.Path
	return nil
}

// URL renders the endpoint of the service
func (s *Service) URL() string {
	return fmt.Sprintf("%s://%s:%d%s", s.Protocol, s.Host, s.Port, s.Path)
}

// Normalize applies defaults and validates the service
func (s *Service) Normalize() error {
	s.Protocol = strings.ToLower(strings.TrimSpace(s.Protocol))
	if !KnownProtocol(s.Protocol) {
		return fmt.Errorf("%w: unknown protocol %q", ErrInvalid, s.Protocol)
	}
	if s.Host == "" {
		return fmt.Errorf("%w: host is required", ErrInvalid)
	}
	if s.Port == 0 {
		s.Port = DefaultPort(s.Protocol)
	}
	if s.Port < 0 || s.Port > 65535 {
		return fmt.Errorf("%w: port %d is out of range", ErrInvalid, s.Port)
	}
	if s.Path != "" && !ProtocolHasPath(s.Protocol) {
		return fmt.Errorf("%w: path is not allowed for protocol %q", ErrInvalid, s.Protocol)
	}
	if s.Path != "" && !strings.HasPrefix(s.Path, "/") {
		return fmt.Errorf("%w: path should start with /", ErrInvalid)
	}
	if s.Retries == 0 {
		s.Retries = DefaultRetries
	}
	for _, t := range []*int{&s.ConnectTimeout, &s.WriteTimeout, &s.ReadTimeout} {
		if *t == 0 {
			*t = DefaultTimeout
		}
	}
	return nil
}

// Route matches requests to the service
type Route struct {
	ID          string    `json:"id" yaml:"id"`
	Workspace   string    `json:"workspace" yaml:"workspace"`
	Name        string    `json:"name" yaml:"name"`
	ServiceName string    `json:"service" yaml:"service"`
	Paths       []string  `json:"paths" yaml:"paths"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

// Key identifies the entity in the list, name when it's set or id
func (r *Route) Key() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// Normalize applies defaults and validates the route
func (r *Route) Normalize() error {
	if r.ServiceName == "" {
		return fmt.Errorf("%w: service is required", ErrInvalid)
	}
	if len(r.Paths) == 0 {
		r.Paths = []string{"/"}
	}
	for _, p := range r.Paths {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("%w: path %q should start with /", ErrInvalid, p)
		}
	}
	return nil
}

// SplitTags parses comma separated tags list
func SplitTags(tags string) []string {
	var out []string
	for _, tag := range strings.Split(tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
