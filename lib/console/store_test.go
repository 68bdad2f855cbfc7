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
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]func() Store {
	return map[string]func() Store{
		"memory": func() Store { return NewMemoryStore() },
		"bitcask": func() Store {
			s, err := NewBitcaskStore(t.TempDir())
			require.NoError(t, err)
			return s
		},
	}
}

func TestStore_Services(t *testing.T) {
	for name, newStore := range stores(t) {
		t.Run(name, func(t *testing.T) {
			store := newStore()
			defer store.Close()

			svc, err := store.AddService("default", Service{Name: "svc1", Protocol: "http", Host: "joy.org"})
			require.NoError(t, err)
			_, err = uuid.Parse(svc.ID)
			assert.NoError(t, err)
			assert.Equal(t, 80, svc.Port)
			assert.Equal(t, DefaultRetries, svc.Retries)
			assert.Equal(t, DefaultTimeout, svc.ReadTimeout)

			_, err = store.AddService("default", Service{Name: "svc2", Protocol: "grpcs", Host: "example.com"})
			require.NoError(t, err)

			_, err = store.AddService("default", Service{Name: "svc1", Protocol: "http", Host: "other.org"})
			assert.ErrorIs(t, err, ErrUniqueViolation)
			assert.EqualError(t, err, `UNIQUE violation detected on '{name="svc1"}'`)

			// Same name in another workspace is fine
			_, err = store.AddService("team", Service{Name: "svc1", Protocol: "http", Host: "joy.org"})
			require.NoError(t, err)

			list, err := store.ListServices("default")
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "svc1", list[0].Name)
			assert.Equal(t, "svc2", list[1].Name)
			assert.Equal(t, 443, list[1].Port)

			require.NoError(t, store.DeleteService("default", "svc1"))
			assert.ErrorIs(t, store.DeleteService("default", "svc1"), ErrNotFound)

			list, err = store.ListServices("default")
			require.NoError(t, err)
			assert.Len(t, list, 1)
			list, err = store.ListServices("team")
			require.NoError(t, err)
			assert.Len(t, list, 1)
		})
	}
}

func TestStore_Routes(t *testing.T) {
	for name, newStore := range stores(t) {
		t.Run(name, func(t *testing.T) {
			store := newStore()
			defer store.Close()

			_, err := store.AddRoute("default", Route{Name: "r1", ServiceName: "svc"})
			assert.ErrorIs(t, err, ErrNotFound)

			_, err = store.AddService("default", Service{Name: "svc", Protocol: "http", Host: "joy.org"})
			require.NoError(t, err)

			route, err := store.AddRoute("default", Route{Name: "r1", ServiceName: "svc"})
			require.NoError(t, err)
			assert.Equal(t, []string{"/"}, route.Paths)

			_, err = store.AddRoute("default", Route{Name: "r1", ServiceName: "svc", Paths: []string{"/api"}})
			assert.ErrorIs(t, err, ErrUniqueViolation)

			_, err = store.AddRoute("default", Route{Name: "r2", ServiceName: "svc", Paths: []string{"api"}})
			assert.ErrorIs(t, err, ErrInvalid)

			// Service referenced by the route can't be deleted
			assert.ErrorIs(t, store.DeleteService("default", "svc"), ErrForeignKey)

			require.NoError(t, store.DeleteRoute("default", route.ID))
			routes, err := store.ListRoutes("default")
			require.NoError(t, err)
			assert.Empty(t, routes)
			assert.NoError(t, store.DeleteService("default", "svc"))
		})
	}
}

func TestBitcaskStore_Persistent(t *testing.T) {
	dir := t.TempDir()
	store, err := NewBitcaskStore(dir)
	require.NoError(t, err)
	_, err = store.AddService("default", Service{Name: "kept", Protocol: "http", Host: "joy.org"})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = NewBitcaskStore(dir)
	require.NoError(t, err)
	defer store.Close()
	list, err := store.ListServices("default")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "kept", list[0].Name)
}

func TestService_Normalize(t *testing.T) {
	tests := []struct {
		name    string
		svc     Service
		wantErr bool
		port    int
	}{
		{name: "http default port", svc: Service{Protocol: "http", Host: "h"}, port: 80},
		{name: "wss default port", svc: Service{Protocol: "WSS", Host: "h"}, port: 443},
		{name: "explicit port", svc: Service{Protocol: "tcp", Host: "h", Port: 9000}, port: 9000},
		{name: "unknown protocol", svc: Service{Protocol: "ftp", Host: "h"}, wantErr: true},
		{name: "no host", svc: Service{Protocol: "http"}, wantErr: true},
		{name: "path on tcp", svc: Service{Protocol: "tcp", Host: "h", Path: "/x"}, wantErr: true},
		{name: "relative path", svc: Service{Protocol: "http", Host: "h", Path: "x"}, wantErr: true},
		{name: "port out of range", svc: Service{Protocol: "http", Host: "h", Port: 70000}, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.svc.Normalize()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.port, tc.svc.Port)
		})
	}
}

func TestService_SetURL(t *testing.T) {
	var svc Service
	require.NoError(t, svc.SetURL("https://joy.org:8443/api"))
	assert.Equal(t, "https", svc.Protocol)
	assert.Equal(t, "joy.org", svc.Host)
	assert.Equal(t, 8443, svc.Port)
	assert.Equal(t, "/api", svc.Path)
	assert.Equal(t, "https://joy.org:8443/api", svc.URL())

	assert.Error(t, svc.SetURL("joy.org"))
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitTags(" a, ,b "))
	assert.Nil(t, SplitTags(""))
}
