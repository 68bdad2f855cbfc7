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
	"errors"
	"strings"
	"testing"
	"time"
)

func Test_retry_passes_after_failures(t *testing.T) {
	calls := 0
	Retry(&Counter{Count: 5, Wait: time.Millisecond}, t, func(r *R) {
		calls++
		if calls < 3 {
			r.Fatalf("attempt %d not ready", r.Attempt)
		}
	})
	if calls != 3 {
		t.Errorf("Expected 3 calls, got %d", calls)
	}
}

func Test_retry_gives_up(t *testing.T) {
	calls := 0
	out := ExpectFailure(t, func(tt *MockT) {
		Retry(&Counter{Count: 2}, tt, func(r *R) {
			calls++
			r.Errorf("never ready")
		})
	})
	if calls != 2 {
		t.Errorf("Expected 2 calls, got %d", calls)
	}
	// MockT forwards retry log to the real test, output holds only explicit errors
	if out != "" {
		t.Errorf("Unexpected captured output: %q", out)
	}
}

func Test_retry_stop(t *testing.T) {
	calls := 0
	ExpectFailure(t, func(tt *MockT) {
		Retry(&Counter{Count: 10}, tt, func(r *R) {
			calls++
			r.Stop(errors.New("unrecoverable"))
		})
	})
	if calls != 1 {
		t.Errorf("Stop should end retrying, got %d calls", calls)
	}
}

func Test_eventually_timer(t *testing.T) {
	started := time.Now()
	Eventually(t, time.Second, 10*time.Millisecond, func(r *R) {
		if time.Since(started) < 30*time.Millisecond {
			r.Fatal("too early")
		}
	})
}

func Test_expect_failure_output(t *testing.T) {
	out := ExpectFailure(t, func(tt *MockT) {
		tt.Errorf("first %s", "problem")
		tt.Fatal("second problem")
	})
	if !strings.Contains(out, "first problem") || !strings.Contains(out, "second problem") {
		t.Errorf("Unexpected output: %q", out)
	}
}

func Test_expect_success(t *testing.T) {
	ExpectSuccess(t, func(tt *MockT) {
		tt.Log("nothing wrong here")
	})
}
