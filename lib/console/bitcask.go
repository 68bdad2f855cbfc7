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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"go.mills.io/bitcask/v2"

	"github.com/adobe/gateway-console-uitest/lib/log"
)

const (
	collectionService = "service"
	collectionRoute   = "route"
)

// BitcaskStore keeps the entities on disk, so the console state survives the restart
type BitcaskStore struct {
	be *bitcask.Bitcask

	// Write-locked during merge and every modification, list operations use RLock
	beMu sync.RWMutex
}

// NewBitcaskStore opens or creates the database in the directory
func NewBitcaskStore(path string) (*BitcaskStore, error) {
	if err := os.MkdirAll(path, 0o750); err != nil {
		return nil, fmt.Errorf("store: unable to create directory %s: %w", path, err)
	}
	be, err := bitcask.Open(filepath.Join(path, "bitcask.db"))
	if err != nil {
		return nil, fmt.Errorf("store: unable to open database: %w", err)
	}
	return &BitcaskStore{be: be}, nil
}

func listCollection[T any](be *bitcask.Bitcask, name, workspace string, ws func(*T) string) ([]T, error) {
	var all []T
	if err := be.Collection(name).List(&all); err != nil && !errors.Is(err, bitcask.ErrObjectNotFound) {
		return nil, fmt.Errorf("store: list %s: %w", name, err)
	}
	out := make([]T, 0, len(all))
	for i := range all {
		if ws(&all[i]) == workspace {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (b *BitcaskStore) services(workspace string) ([]Service, error) {
	out, err := listCollection(b.be, collectionService, workspace, func(s *Service) string { return s.Workspace })
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(out, func(a, b Service) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out, nil
}

func (b *BitcaskStore) routes(workspace string) ([]Route, error) {
	out, err := listCollection(b.be, collectionRoute, workspace, func(r *Route) string { return r.Workspace })
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(out, func(a, b Route) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out, nil
}

func (b *BitcaskStore) ListServices(workspace string) ([]Service, error) {
	b.beMu.RLock()
	defer b.beMu.RUnlock()
	return b.services(workspace)
}

func (b *BitcaskStore) AddService(workspace string, svc Service) (Service, error) {
	b.beMu.Lock()
	defer b.beMu.Unlock()
	existing, err := b.services(workspace)
	if err != nil {
		return svc, err
	}
	if svc, err = prepareService(workspace, svc, existing); err != nil {
		return svc, err
	}
	if err = b.be.Collection(collectionService).Add(svc.ID, svc); err != nil {
		return svc, fmt.Errorf("store: add service: %w", err)
	}
	return svc, nil
}

func (b *BitcaskStore) DeleteService(workspace, key string) error {
	b.beMu.Lock()
	defer b.beMu.Unlock()
	existing, err := b.services(workspace)
	if err != nil {
		return err
	}
	idx := slices.IndexFunc(existing, func(s Service) bool { return s.Key() == key || s.ID == key })
	if idx < 0 {
		return fmt.Errorf("%w: service %q", ErrNotFound, key)
	}
	routes, err := b.routes(workspace)
	if err != nil {
		return err
	}
	name := existing[idx].Key()
	if slices.ContainsFunc(routes, func(r Route) bool { return r.ServiceName == name }) {
		return ErrForeignKey
	}
	if err = b.be.Collection(collectionService).Delete(existing[idx].ID); err != nil {
		return fmt.Errorf("store: delete service: %w", err)
	}
	return nil
}

func (b *BitcaskStore) ListRoutes(workspace string) ([]Route, error) {
	b.beMu.RLock()
	defer b.beMu.RUnlock()
	return b.routes(workspace)
}

func (b *BitcaskStore) AddRoute(workspace string, route Route) (Route, error) {
	b.beMu.Lock()
	defer b.beMu.Unlock()
	existing, err := b.routes(workspace)
	if err != nil {
		return route, err
	}
	services, err := b.services(workspace)
	if err != nil {
		return route, err
	}
	if route, err = prepareRoute(workspace, route, existing, services); err != nil {
		return route, err
	}
	if err = b.be.Collection(collectionRoute).Add(route.ID, route); err != nil {
		return route, fmt.Errorf("store: add route: %w", err)
	}
	return route, nil
}

func (b *BitcaskStore) DeleteRoute(workspace, key string) error {
	b.beMu.Lock()
	defer b.beMu.Unlock()
	existing, err := b.routes(workspace)
	if err != nil {
		return err
	}
	idx := slices.IndexFunc(existing, func(r Route) bool { return r.Key() == key || r.ID == key })
	if idx < 0 {
		return fmt.Errorf("%w: route %q", ErrNotFound, key)
	}
	if err = b.be.Collection(collectionRoute).Delete(existing[idx].ID); err != nil {
		return fmt.Errorf("store: delete route: %w", err)
	}
	return nil
}

// Compact merges the datafiles to reclaim the space of deleted entities
func (b *BitcaskStore) Compact() error {
	logger := log.WithFunc("console", "Compact")
	b.beMu.Lock()
	defer b.beMu.Unlock()

	s, _ := b.be.Stats()
	logger.Debug("Before compaction", "datafiles", s.Datafiles, "keys", s.Keys, "size", s.Size, "reclaimable", s.Reclaimable)
	if err := b.be.Merge(); err != nil {
		return fmt.Errorf("store: merge failed: %w", err)
	}
	s, _ = b.be.Stats()
	logger.Debug("After compaction", "datafiles", s.Datafiles, "keys", s.Keys, "size", s.Size, "reclaimable", s.Reclaimable)
	return nil
}

// Close compacts and closes the database
func (b *BitcaskStore) Close() error {
	if err := b.Compact(); err != nil {
		log.WithFunc("console", "Close").Warn("Unable to compact store", "err", err)
	}
	b.beMu.Lock()
	defer b.beMu.Unlock()
	if err := b.be.Close(); err != nil {
		return fmt.Errorf("store: unable to close database: %w", err)
	}
	return nil
}
