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
	"fmt"
	"runtime"
	"strings"
	"sync"
	"testing"
)

// MockT captures the failure of an assertion without failing the real test
type MockT struct {
	mu sync.Mutex

	FailNowCalled bool
	ErrorCalled   bool

	output []string
	t      testing.TB
}

// NewMockT creates MockT forwarding its logs to t
func NewMockT(t testing.TB) *MockT {
	return &MockT{t: t}
}

// Helper is a no-op to satisfy the assertion interfaces
func (*MockT) Helper() {}

func (m *MockT) record(s string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.output = append(m.output, s)
}

// Output returns everything reported through Error/Fatal calls
func (m *MockT) Output() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return strings.Join(m.output, "\n")
}

// Failed reports whether any failure was recorded
func (m *MockT) Failed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.FailNowCalled || m.ErrorCalled
}

// FailNow marks the failure and stops the calling goroutine
func (m *MockT) FailNow() {
	m.mu.Lock()
	m.FailNowCalled = true
	m.mu.Unlock()
	runtime.Goexit()
}

func (m *MockT) Error(args ...any) {
	m.record(fmt.Sprint(args...))
	m.mu.Lock()
	m.ErrorCalled = true
	m.mu.Unlock()
}

func (m *MockT) Errorf(format string, args ...any) {
	m.Error(fmt.Sprintf(format, args...))
}

func (m *MockT) Fatal(args ...any) {
	m.record(fmt.Sprint(args...))
	m.FailNow()
}

func (m *MockT) Fatalf(format string, args ...any) {
	m.Fatal(fmt.Sprintf(format, args...))
}

func (m *MockT) Log(args ...any) {
	if m.t != nil {
		m.t.Log(args...)
	}
}

func (m *MockT) Logf(format string, args ...any) {
	if m.t != nil {
		m.t.Logf(format, args...)
	}
}

// runMock executes f in a separate goroutine, so Goexit of FailNow will not stop the test
func runMock(t testing.TB, f func(tt *MockT)) *MockT {
	mockT := NewMockT(t)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		f(mockT)
	}()
	wg.Wait()

	return mockT
}

// ExpectFailure runs f and fails the test when f did not call FailNow. Returns the captured
// failure output to let the caller check the message.
func ExpectFailure(t testing.TB, f func(tt *MockT)) string {
	t.Helper()
	mockT := runMock(t, f)
	if !mockT.FailNowCalled {
		t.Fatalf("ExpectFailure: the function did not fail as expected")
	}
	return mockT.Output()
}

// ExpectSuccess runs f and fails the test when f reported any failure
func ExpectSuccess(t testing.TB, f func(tt *MockT)) {
	t.Helper()
	mockT := runMock(t, f)
	if mockT.Failed() {
		t.Fatalf("ExpectSuccess: the function failed unexpectedly:\n%s", mockT.Output())
	}
}
