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

package envconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const customEnv = `
[DEFAULT]
browser = chromium

[staging]
url = https://staging.example.com/
browser = webkit
mode = headless
timeout = 1500
slow_mo = 250ms
workspace = team-a

[nomode]
url = http://localhost:8002

[badbrowser]
url = http://localhost:8002
browser = opera
mode = headless

[badtimeout]
url = http://localhost:8002
mode = headless
timeout = soon
`

func TestFromEnv_DefaultsToLocal(t *testing.T) {
	t.Setenv(EnvName, "")
	t.Setenv(EnvFile, "")
	t.Setenv(EnvGithubRun, "")

	env, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "local", env.Name())

	profile, err := env.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8002", profile.URL)
	assert.Equal(t, "chromium", profile.Browser)
	assert.False(t, profile.Headless)
	assert.Equal(t, DefaultTimeout, profile.Timeout)
	assert.Equal(t, DefaultWorkspace, profile.Workspace)
	assert.Zero(t, profile.SlowMo)
}

func TestFromEnv_GithubRunForcesHeadless(t *testing.T) {
	t.Setenv(EnvName, "local")
	t.Setenv(EnvFile, "")
	t.Setenv(EnvGithubRun, "1")

	env, err := FromEnv()
	require.NoError(t, err)
	headless, err := env.Headless()
	require.NoError(t, err)
	assert.True(t, headless)
}

func TestFromEnv_FileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.ini")
	require.NoError(t, os.WriteFile(path, []byte(customEnv), 0o600))
	t.Setenv(EnvName, "staging")
	t.Setenv(EnvFile, path)
	t.Setenv(EnvGithubRun, "")

	env, err := FromEnv()
	require.NoError(t, err)
	profile, err := env.Resolve()
	require.NoError(t, err)

	assert.Equal(t, &Profile{
		Name:      "staging",
		URL:       "https://staging.example.com",
		Browser:   "webkit",
		Mode:      "headless",
		Headless:  true,
		Timeout:   1500 * time.Millisecond,
		SlowMo:    250 * time.Millisecond,
		Workspace: "team-a",
	}, profile)
}

func TestLoad_MissingProfile(t *testing.T) {
	_, err := Load([]byte(customEnv), "production")
	assert.ErrorIs(t, err, ErrMissingProfile)

	_, err = Load([]byte(customEnv), "DEFAULT")
	assert.ErrorIs(t, err, ErrMissingProfile)
}

func TestLoad_MissingKey(t *testing.T) {
	env, err := Load([]byte(customEnv), "nomode")
	require.NoError(t, err)

	browser, err := env.Browser()
	require.NoError(t, err)
	assert.Equal(t, "chromium", browser, "browser should fall back to DEFAULT section")

	_, err = env.Resolve()
	assert.ErrorIs(t, err, ErrMissingKey)
	assert.ErrorContains(t, err, `"mode"`)
}

func TestLoad_InvalidValues(t *testing.T) {
	env, err := Load([]byte(customEnv), "badbrowser")
	require.NoError(t, err)
	_, err = env.Resolve()
	assert.ErrorIs(t, err, ErrInvalidValue)

	env, err = Load([]byte(customEnv), "badtimeout")
	require.NoError(t, err)
	_, err = env.Timeout()
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestEnv_Options(t *testing.T) {
	env, err := Load([]byte(customEnv), "nomode")
	require.NoError(t, err)
	assert.Equal(t, []string{"browser", "url"}, env.Options())

	env, err = Load(defaultEnv, "mock")
	require.NoError(t, err)
	assert.Equal(t, []string{"browser", "mode", "timeout", "url", "workspace"}, env.Options())
}
