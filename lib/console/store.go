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

// Package console is a small gateway console serving the screens the page objects work with,
// it allows to run the web tests without a real gateway
package console

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUniqueViolation = errors.New("UNIQUE violation detected")
	ErrNotFound        = errors.New("entity not found")
	ErrForeignKey      = errors.New("an existing 'routes' entity references this 'services' entity")
	ErrInvalid         = errors.New("schema violation")
)

// uniqueViolation formats the error the way the console shows it in the alert
func uniqueViolation(name string) error {
	return fmt.Errorf("%w on '{name=%q}'", ErrUniqueViolation, name)
}

// Store keeps the entities of every workspace
type Store interface {
	ListServices(workspace string) ([]Service, error)
	AddService(workspace string, svc Service) (Service, error)
	DeleteService(workspace, key string) error

	ListRoutes(workspace string) ([]Route, error)
	AddRoute(workspace string, route Route) (Route, error)
	DeleteRoute(workspace, key string) error

	Close() error
}

// prepareService validates the service against the existing ones and assigns the identity
func prepareService(workspace string, svc Service, existing []Service) (Service, error) {
	if err := svc.Normalize(); err != nil {
		return svc, err
	}
	if svc.Name != "" && slices.ContainsFunc(existing, func(s Service) bool { return s.Name == svc.Name }) {
		return svc, uniqueViolation(svc.Name)
	}
	svc.ID = uuid.New().String()
	svc.Workspace = workspace
	svc.CreatedAt = time.Now()
	return svc, nil
}

func prepareRoute(workspace string, route Route, existing []Route, services []Service) (Route, error) {
	if err := route.Normalize(); err != nil {
		return route, err
	}
	if !slices.ContainsFunc(services, func(s Service) bool { return s.Key() == route.ServiceName }) {
		return route, fmt.Errorf("%w: service %q", ErrNotFound, route.ServiceName)
	}
	if route.Name != "" && slices.ContainsFunc(existing, func(r Route) bool { return r.Name == route.Name }) {
		return route, uniqueViolation(route.Name)
	}
	route.ID = uuid.New().String()
	route.Workspace = workspace
	route.CreatedAt = time.Now()
	return route, nil
}

// MemoryStore keeps entities in memory, state is lost on restart
type MemoryStore struct {
	mu       sync.RWMutex
	services map[string][]Service
	routes   map[string][]Route
}

// NewMemoryStore creates empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		services: make(map[string][]Service),
		routes:   make(map[string][]Route),
	}
}

func (m *MemoryStore) ListServices(workspace string) ([]Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.services[workspace]), nil
}

func (m *MemoryStore) AddService(workspace string, svc Service) (Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	svc, err := prepareService(workspace, svc, m.services[workspace])
	if err != nil {
		return svc, err
	}
	m.services[workspace] = append(m.services[workspace], svc)
	return svc, nil
}

func (m *MemoryStore) DeleteService(workspace, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := slices.IndexFunc(m.services[workspace], func(s Service) bool { return s.Key() == key || s.ID == key })
	if idx < 0 {
		return fmt.Errorf("%w: service %q", ErrNotFound, key)
	}
	name := m.services[workspace][idx].Key()
	if slices.ContainsFunc(m.routes[workspace], func(r Route) bool { return r.ServiceName == name }) {
		return ErrForeignKey
	}
	m.services[workspace] = slices.Delete(m.services[workspace], idx, idx+1)
	return nil
}

func (m *MemoryStore) ListRoutes(workspace string) ([]Route, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.routes[workspace]), nil
}

func (m *MemoryStore) AddRoute(workspace string, route Route) (Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	route, err := prepareRoute(workspace, route, m.routes[workspace], m.services[workspace])
	if err != nil {
		return route, err
	}
	m.routes[workspace] = append(m.routes[workspace], route)
	return route, nil
}

func (m *MemoryStore) DeleteRoute(workspace, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := slices.IndexFunc(m.routes[workspace], func(r Route) bool { return r.Key() == key || r.ID == key })
	if idx < 0 {
		return fmt.Errorf("%w: route %q", ErrNotFound, key)
	}
	m.routes[workspace] = slices.Delete(m.routes[workspace], idx, idx+1)
	return nil
}

// Close is a no-op for the memory store
func (*MemoryStore) Close() error {
	return nil
}
