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

// Package envconfig resolves the console environment profile the web tests run against
package envconfig

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/adobe/gateway-console-uitest/lib/log"
	"github.com/adobe/gateway-console-uitest/lib/util"
)

//go:embed default_env.ini
var defaultEnv []byte

const (
	// EnvName selects the profile
	EnvName = "ENV_NAME"
	// EnvFile overrides the embedded profiles file
	EnvFile = "UITEST_ENV_FILE"
	// EnvGithubRun forces headless mode on CI
	EnvGithubRun = "GITHUB_RUN"

	DefaultName      = "local"
	DefaultTimeout   = 10 * time.Second
	DefaultWorkspace = "default"

	// Keys of this section are the fallback for every profile
	defaultSection = "default"
)

var (
	ErrMissingProfile = errors.New("env profile is not defined")
	ErrMissingKey     = errors.New("env profile key is not defined")
	ErrInvalidValue   = errors.New("env profile value is invalid")
)

// Browsers supported by the session
var Browsers = []string{"chromium", "firefox", "webkit"}

// Env is a named profile of the environments file
type Env struct {
	name string
	v    *viper.Viper
}

// Profile is the fully resolved and validated environment
type Profile struct {
	Name      string
	URL       string
	Browser   string
	Mode      string
	Headless  bool
	Timeout   time.Duration
	SlowMo    time.Duration
	Workspace string
}

// FromEnv loads the profile named by ENV_NAME ("local" when unset) from the file in
// UITEST_ENV_FILE or from the embedded defaults
func FromEnv() (*Env, error) {
	name := os.Getenv(EnvName)
	if name == "" {
		name = DefaultName
	}
	if path := os.Getenv(EnvFile); path != "" {
		return LoadFile(path, name)
	}
	return Load(defaultEnv, name)
}

// LoadFile loads the profile from INI file
func LoadFile(path, name string) (*Env, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("envconfig: unable to read %q: %w", path, err)
	}
	return Load(data, name)
}

// Load parses INI data and selects the profile
func Load(data []byte, name string) (*Env, error) {
	v := viper.New()
	v.SetConfigType("ini")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("envconfig: unable to parse profiles: %w", err)
	}

	name = strings.ToLower(name)
	if name == defaultSection || !v.IsSet(name) {
		return nil, fmt.Errorf("envconfig: %w: %q", ErrMissingProfile, name)
	}
	log.WithFunc("envconfig", "Load").Debug("Selected env profile", "name", name, "keys", strings.Join(keys(v, name), ","))

	return &Env{name: name, v: v}, nil
}

func keys(v *viper.Viper, section string) []string {
	var out []string
	for k := range v.GetStringMap(section) {
		out = append(out, k)
	}
	return out
}

// Name of the profile
func (e *Env) Name() string {
	return e.name
}

// Options lists the keys available in the profile, DEFAULT keys included
func (e *Env) Options() []string {
	out := keys(e.v, e.name)
	for _, k := range keys(e.v, defaultSection) {
		if !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}

// Get returns the profile key, falling back to the DEFAULT section
func (e *Env) Get(key string) (string, error) {
	for _, section := range []string{e.name, defaultSection} {
		if full := section + "." + key; e.v.IsSet(full) {
			return e.v.GetString(full), nil
		}
	}
	return "", fmt.Errorf("envconfig: %w: %q in profile %q", ErrMissingKey, key, e.name)
}

func (e *Env) getOptional(key, fallback string) string {
	if val, err := e.Get(key); err == nil && val != "" {
		return val
	}
	return fallback
}

// URL of the console
func (e *Env) URL() (string, error) {
	return e.Get("url")
}

// Browser engine to launch
func (e *Env) Browser() (string, error) {
	browser, err := e.Get("browser")
	if err != nil {
		return "", err
	}
	if !slices.Contains(Browsers, browser) {
		return "", fmt.Errorf("envconfig: %w: browser %q is not one of %v", ErrInvalidValue, browser, Browsers)
	}
	return browser, nil
}

// Mode is "headless" or anything else for headed run
func (e *Env) Mode() (string, error) {
	return e.Get("mode")
}

// Headless reports whether the browser should be started without a window
func (e *Env) Headless() (bool, error) {
	mode, err := e.Mode()
	if err != nil {
		return false, err
	}
	return mode == "headless" || os.Getenv(EnvGithubRun) != "", nil
}

// Timeout is the default timeout of the browser context
func (e *Env) Timeout() (time.Duration, error) {
	val := e.getOptional("timeout", "")
	if val == "" {
		return DefaultTimeout, nil
	}
	timeout, err := util.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("envconfig: %w: timeout: %v", ErrInvalidValue, err)
	}
	return timeout, nil
}

// SlowMo delays every browser operation, useful for headed debugging
func (e *Env) SlowMo() (time.Duration, error) {
	val := e.getOptional("slow_mo", "")
	if val == "" {
		return 0, nil
	}
	slowMo, err := util.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("envconfig: %w: slow_mo: %v", ErrInvalidValue, err)
	}
	return slowMo, nil
}

// Workspace the entity screens are opened in
func (e *Env) Workspace() string {
	return e.getOptional("workspace", DefaultWorkspace)
}

// Resolve reads and validates every key of the profile
func (e *Env) Resolve() (*Profile, error) {
	var err error
	p := &Profile{Name: e.name, Workspace: e.Workspace()}
	if p.URL, err = e.URL(); err != nil {
		return nil, err
	}
	p.URL = strings.TrimRight(p.URL, "/")
	if p.Browser, err = e.Browser(); err != nil {
		return nil, err
	}
	if p.Mode, err = e.Mode(); err != nil {
		return nil, err
	}
	if p.Headless, err = e.Headless(); err != nil {
		return nil, err
	}
	if p.Timeout, err = e.Timeout(); err != nil {
		return nil, err
	}
	if p.SlowMo, err = e.SlowMo(); err != nil {
		return nil, err
	}
	return p, nil
}
