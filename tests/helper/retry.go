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

// Package helper contains the test tooling shared by unit tests and web tests
package helper

import (
	"fmt"
	"runtime"
	"slices"
	"strings"
	"time"
)

// Failer is an interface compatible with testing.T
type Failer interface {
	Helper()

	// Log is called for the final test output
	Log(args ...any)

	// FailNow is called when the retrying is abandoned
	FailNow()
}

// Retryer decides whether the operation should be repeated one more time
type Retryer interface {
	Continue() bool
}

// Counter repeats an operation Count times waiting between the attempts
type Counter struct {
	Count int
	Wait  time.Duration

	attempt int
}

// Continue the counter
func (c *Counter) Continue() bool {
	if c.attempt == c.Count {
		return false
	}
	if c.attempt > 0 {
		time.Sleep(c.Wait)
	}
	c.attempt++
	return true
}

// Timer repeats an operation until Timeout is reached waiting between the attempts.
// The deadline is set on the first call of Continue.
type Timer struct {
	Timeout time.Duration
	Wait    time.Duration

	deadline time.Time
}

// Continue the timer
func (r *Timer) Continue() bool {
	if r.deadline.IsZero() {
		r.deadline = time.Now().Add(r.Timeout)
		return true
	}
	if time.Now().After(r.deadline) {
		return false
	}
	time.Sleep(r.Wait)
	return true
}

// R is passed to the retried function, it satisfies the verifier and testify interfaces so
// the same assertions could be used inside of the retry loop
type R struct {
	Attempt int

	fail   bool
	stop   bool
	output []string
}

var errAttemptFailed = struct{}{}

// Helper shows R as helper
func (*R) Helper() {}

// FailNow ends the current attempt
func (r *R) FailNow() {
	r.fail = true
	panic(errAttemptFailed)
}

func (r *R) Error(args ...any) {
	r.log(fmt.Sprint(args...))
	r.fail = true
}

func (r *R) Errorf(format string, args ...any) {
	r.log(fmt.Sprintf(format, args...))
	r.fail = true
}

func (r *R) Fatal(args ...any) {
	r.log(fmt.Sprint(args...))
	r.FailNow()
}

func (r *R) Fatalf(format string, args ...any) {
	r.log(fmt.Sprintf(format, args...))
	r.FailNow()
}

// Check ends the attempt when err is not nil
func (r *R) Check(err error) {
	if err != nil {
		r.log(err.Error())
		r.FailNow()
	}
}

// Stop retrying and fail the test with the given error
func (r *R) Stop(err error) {
	r.log(err.Error())
	r.stop = true
}

func (r *R) log(s string) {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		file, line = "???", 1
	}
	if n := strings.LastIndex(file, "/"); n >= 0 {
		file = file[n+1:]
	}
	r.output = append(r.output, fmt.Sprintf("%s:%d: %s", file, line, s))
}

func (r *R) report() string {
	var uniq []string
	for _, s := range r.output {
		if !slices.Contains(uniq, s) {
			uniq = append(uniq, s)
		}
	}
	return strings.Join(uniq, "\n")
}

// attempt runs f once, recovering from the FailNow panic only
func (r *R) attempt(f func(r *R)) {
	defer func() {
		if p := recover(); p != nil && p != errAttemptFailed {
			panic(p)
		}
	}()
	r.Attempt++
	f(r)
}

// Retry runs f until it passes or the retryer gives up, then fails t with the collected output
func Retry(retryer Retryer, t Failer, f func(r *R)) {
	t.Helper()
	r := &R{}
	for retryer.Continue() {
		r.attempt(f)
		if r.stop {
			break
		}
		if !r.fail {
			return
		}
		r.fail = false
	}
	if out := r.report(); out != "" {
		t.Log(out)
	}
	t.FailNow()
}

// Eventually retries f every wait until timeout passes
func Eventually(t Failer, timeout, wait time.Duration, f func(r *R)) {
	t.Helper()
	Retry(&Timer{Timeout: timeout, Wait: wait}, t, f)
}
