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

// Package verify contains structural assertions which log every verification and abort the
// test on the first failure
package verify

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"regexp"
	"slices"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adobe/gateway-console-uitest/lib/log"
)

// TestingT is the part of testing.TB the verifier needs
type TestingT interface {
	Helper()
	Errorf(format string, args ...any)
	FailNow()
}

// Verifier runs assertions against a test handle
type Verifier struct {
	t       TestingT
	verbose bool
}

// New creates verbose verifier, passed checks are logged on debug level
func New(t TestingT) *Verifier {
	return &Verifier{t: t, verbose: true}
}

// Quiet returns verifier which logs failures only
func (v *Verifier) Quiet() *Verifier {
	return &Verifier{t: v.t}
}

// quietT swallows testify output when assert functions are used as predicates
type quietT struct{}

func (quietT) Errorf(string, ...any) {}

func describe(logmsg, msg string) string {
	if msg != "" {
		return logmsg + " (" + msg + ")"
	}
	return logmsg
}

func (v *Verifier) pass(fun, logmsg string) {
	if v.verbose {
		log.WithFunc("verify", fun).Debug(logmsg, log.VerdictKey, "PASS")
	}
}

// fail logs the message and aborts the test
func (v *Verifier) fail(fun, logmsg string) {
	v.t.Helper()
	log.WithFunc("verify", fun).Error(logmsg, log.VerdictKey, "FAIL")
	require.FailNow(v.t, logmsg)
}

// Fail aborts the test with the given message
func (v *Verifier) Fail(msg string) {
	v.t.Helper()
	v.fail("Fail", msg)
}

// True verifies the expression is true
func (v *Verifier) True(expr bool, msg string) {
	v.t.Helper()
	if !expr {
		v.fail("True", msg)
	}
	v.pass("True", msg)
}

// False verifies the expression is false
func (v *Verifier) False(expr bool, msg string) {
	v.t.Helper()
	if expr {
		v.fail("False", msg)
	}
	v.pass("False", msg)
}

// NotEquals verifies the objects are different
func (v *Verifier) NotEquals(actual, expected any, msg string) {
	v.t.Helper()
	logmsg := describe(fmt.Sprintf("Verify actual != expected: %v != %v", actual, expected), msg)
	if assert.ObjectsAreEqual(expected, actual) {
		v.fail("NotEquals", logmsg)
	}
	v.pass("NotEquals", logmsg)
}

// contains checks the element is a substring, an item or a map key of the container
func contains(container, element any) bool {
	return assert.Contains(quietT{}, container, element)
}

// setElements returns items of slice or array and keys of map
func setElements(obj any) ([]any, bool) {
	val := reflect.ValueOf(obj)
	switch val.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, val.Len())
		for i := range val.Len() {
			out[i] = val.Index(i).Interface()
		}
		return out, true
	case reflect.Map:
		out := make([]any, 0, val.Len())
		for _, k := range val.MapKeys() {
			out = append(out, k.Interface())
		}
		return out, true
	}
	return nil, false
}

// In verifies obj1 is in obj2: substring, list item or map key. When both are collections
// every element of obj1 should be in obj2.
func (v *Verifier) In(obj1, obj2 any, msg string) {
	v.t.Helper()
	logmsg := describe(fmt.Sprintf("Verify: <%v> in <%v>", obj1, obj2), msg)
	if !contains(obj2, obj1) {
		items, ok := setElements(obj1)
		if _, ok2 := setElements(obj2); !ok || !ok2 {
			v.fail("In", logmsg)
		}
		for _, item := range items {
			if !contains(obj2, item) {
				v.fail("In", fmt.Sprintf("%s\n element <%v> is missing", logmsg, item))
			}
		}
	}
	v.pass("In", logmsg)
}

// NotIn verifies obj1 is not in obj2
func (v *Verifier) NotIn(obj1, obj2 any, msg string) {
	v.t.Helper()
	logmsg := describe(fmt.Sprintf("Verify: <%v> not in <%v>", obj1, obj2), msg)
	if contains(obj2, obj1) {
		v.fail("NotIn", logmsg)
	}
	v.pass("NotIn", logmsg)
}

// DictIn verifies every key of expected is present in actual with the equal value,
// nested maps are checked the same way
func (v *Verifier) DictIn(expected, actual map[string]any, msg string) {
	v.t.Helper()
	logmsg := describe(fmt.Sprintf("Verify: <%v> in <%v>", expected, actual), msg)
	for _, key := range slices.Sorted(maps.Keys(expected)) {
		act, ok := actual[key]
		if !ok {
			v.fail("DictIn", fmt.Sprintf("%s\n expected key %s not in the target dict", logmsg, key))
		}
		if nested, isMap := expected[key].(map[string]any); isMap {
			actNested, ok := act.(map[string]any)
			if !ok {
				v.fail("DictIn", fmt.Sprintf("%s\n failed in verifying %s: <%v> is not a dict", logmsg, key, act))
			}
			v.DictIn(nested, actNested, msg)
			continue
		}
		if equal, diff := compare(act, expected[key], equalConfig{}); !equal {
			v.fail("DictIn", fmt.Sprintf("%s\n failed in verifying %s: %v != %v\n%s", logmsg, key, act, expected[key], diff))
		}
	}
	v.pass("DictIn", logmsg)
}

// StringMatch verifies the beginning of actual matches the regular expression pattern
func (v *Verifier) StringMatch(pattern, actual, msg string) {
	v.t.Helper()
	logmsg := describe(fmt.Sprintf("Verify: the string <%s> matches the pattern <%s>", actual, pattern), msg)
	rx, err := regexp.Compile(`\A(?:` + pattern + `)`)
	if err != nil {
		v.fail("StringMatch", fmt.Sprintf("%s\n invalid pattern: %v", logmsg, err))
		return
	}
	if !assert.Regexp(quietT{}, rx, actual) {
		v.fail("StringMatch", logmsg)
	}
	v.pass("StringMatch", logmsg)
}

// CallFailure describes the error expected from the call, zero fields are not checked
type CallFailure struct {
	// Is is matched with errors.Is
	Is error
	// As is a pointer target for errors.As
	As any
	// Status is compared with StatusCode() of the error chain
	Status int
	// Message should be contained in Body() of the error chain or in Error()
	Message string
}

// CallFailed verifies fn returns an error matching the expectation
func (v *Verifier) CallFailed(fn func() error, expect CallFailure, msg string) {
	v.t.Helper()
	err := fn()
	if err == nil {
		v.fail("CallFailed", describe("Verify: expected an error, got none", msg))
		return
	}
	logmsg := describe(fmt.Sprintf("Verify: call failed with <%v>", err), msg)
	if expect.Is != nil && !errors.Is(err, expect.Is) {
		v.fail("CallFailed", fmt.Sprintf("%s\n error is not <%v>", logmsg, expect.Is))
	}
	if expect.As != nil && !errors.As(err, expect.As) {
		v.fail("CallFailed", fmt.Sprintf("%s\n error is not %T", logmsg, expect.As))
	}
	if expect.Status != 0 {
		var withStatus interface{ StatusCode() int }
		if !errors.As(err, &withStatus) {
			v.fail("CallFailed", logmsg+"\n error carries no status")
			return
		}
		v.Equals(withStatus.StatusCode(), expect.Status, "error status")
	}
	if expect.Message != "" {
		body := err.Error()
		var withBody interface{ Body() string }
		if errors.As(err, &withBody) {
			body = withBody.Body()
		}
		v.In(expect.Message, body, "error message")
	}
	v.pass("CallFailed", logmsg)
}
