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
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/adobe/gateway-console-uitest/lib/log"
)

// Seed describes the initial state of the console
type Seed struct {
	Workspaces []string      `yaml:"workspaces"`
	Services   []SeedService `yaml:"services"`
	Routes     []SeedRoute   `yaml:"routes"`
}

// SeedService is the service in the seed, endpoint is set by url or by separate fields
type SeedService struct {
	Workspace string   `yaml:"workspace"`
	Name      string   `yaml:"name"`
	Tags      []string `yaml:"tags"`
	URL       string   `yaml:"url"`
	Protocol  string   `yaml:"protocol"`
	Host      string   `yaml:"host"`
	Port      int      `yaml:"port"`
	Path      string   `yaml:"path"`
}

// SeedRoute is the route in the seed
type SeedRoute struct {
	Workspace string   `yaml:"workspace"`
	Name      string   `yaml:"name"`
	Service   string   `yaml:"service"`
	Paths     []string `yaml:"paths"`
}

// LoadSeed reads the seed yaml file
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: unable to read %s: %w", path, err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes the seed yaml, unknown fields are rejected
func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		return nil, fmt.Errorf("seed: unable to parse: %w", err)
	}
	return &seed, nil
}

// Apply adds the seed entities to the store, services first. Entities already present in the
// persistent store are skipped.
func (s *Seed) Apply(store Store) error {
	logger := log.WithFunc("console", "SeedApply")
	var errs []error
	for _, ss := range s.Services {
		svc := Service{
			Name:     ss.Name,
			Tags:     ss.Tags,
			Protocol: ss.Protocol,
			Host:     ss.Host,
			Port:     ss.Port,
			Path:     ss.Path,
		}
		if ss.URL != "" {
			if err := svc.SetURL(ss.URL); err != nil {
				errs = append(errs, err)
				continue
			}
		}
		if _, err := store.AddService(workspaceOrDefault(ss.Workspace), svc); err != nil {
			if errors.Is(err, ErrUniqueViolation) {
				logger.Debug("Service already exists", "name", ss.Name)
				continue
			}
			errs = append(errs, fmt.Errorf("seed service %q: %w", ss.Name, err))
		}
	}
	for _, sr := range s.Routes {
		route := Route{Name: sr.Name, ServiceName: sr.Service, Paths: sr.Paths}
		if _, err := store.AddRoute(workspaceOrDefault(sr.Workspace), route); err != nil {
			if errors.Is(err, ErrUniqueViolation) {
				logger.Debug("Route already exists", "name", sr.Name)
				continue
			}
			errs = append(errs, fmt.Errorf("seed route %q: %w", sr.Name, err))
		}
	}
	logger.Info("Seed applied", "services", len(s.Services), "routes", len(s.Routes), "errors", len(errs))
	return errors.Join(errs...)
}

func workspaceOrDefault(ws string) string {
	if ws == "" {
		return DefaultWorkspace
	}
	return ws
}
