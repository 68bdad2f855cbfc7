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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adobe/gateway-console-uitest/lib/log"
	"github.com/adobe/gateway-console-uitest/lib/verify"
)

func TestLogConfig(t *testing.T) {
	started := time.Date(2025, 6, 7, 8, 9, 10, 0, time.UTC)

	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvOtel, "")
	cfg, err := LogConfig("/results", started)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, filepath.Join("/results", "2025-06-07--08_09_10.log"), cfg.File)
	assert.False(t, cfg.OtelEnabled)

	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvOtel, "true")
	cfg, err = LogConfig("/results", started)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Level)
	assert.True(t, cfg.OtelEnabled)

	t.Setenv(EnvOtel, "sometimes")
	_, err = LogConfig("/results", started)
	assert.ErrorContains(t, err, EnvOtel)
}

func TestInitLog_VerifierPassReachesFile(t *testing.T) {
	t.Cleanup(func() { log.Initialize(log.DefaultConfig()) })
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvOtel, "1")

	dir := t.TempDir()
	started := time.Now()
	closeLog, err := InitLog(dir, started)
	require.NoError(t, err)
	assert.Equal(t, log.LevelDebug, log.GetLevel())

	verify.New(t).Equals(2, 2, "two is two")
	closeLog()

	data, err := os.ReadFile(log.TimestampedFile(dir, started))
	require.NoError(t, err)
	assert.Contains(t, string(data), "two is two")
	assert.Contains(t, string(data), `"PASS"`)
}
