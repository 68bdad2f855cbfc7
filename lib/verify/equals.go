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

package verify

import (
	"fmt"
	"reflect"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type equalConfig struct {
	ignoreOrder bool
	cmpOpts     []cmp.Option
}

// EqualOption tunes how Equals compares the objects
type EqualOption func(*equalConfig)

// IgnoreOrder compares slices and arrays as multisets on every level
func IgnoreOrder() EqualOption {
	return func(c *equalConfig) {
		c.ignoreOrder = true
	}
}

// CmpOptions adds go-cmp options to the structural comparison
func CmpOptions(opts ...cmp.Option) EqualOption {
	return func(c *equalConfig) {
		c.cmpOpts = append(c.cmpOpts, opts...)
	}
}

// Equals verifies actual is equal to expected. Objects not equal directly are compared
// structurally and pass when the structural diff is empty.
func (v *Verifier) Equals(actual, expected any, msg string, opts ...EqualOption) {
	v.t.Helper()
	var cfg equalConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	logmsg := describe(fmt.Sprintf("Verify actual = expected: %v = %v", actual, expected), msg)
	if equal, diff := compare(actual, expected, cfg); !equal {
		v.fail("Equals", logmsg+"\n"+diff)
	}
	v.pass("Equals", logmsg)
}

// compare returns whether the objects are equal and the diff (-expected +actual) if not
func compare(actual, expected any, cfg equalConfig) (bool, string) {
	if assert.ObjectsAreEqual(expected, actual) {
		return true, ""
	}
	diff := structuralDiff(actual, expected, cfg)
	return diff == "", diff
}

func structuralDiff(actual, expected any, cfg equalConfig) (diff string) {
	var opts []cmp.Option
	opts = append(opts, cmp.Exporter(func(reflect.Type) bool { return true }))
	opts = append(opts, cmp.FilterValues(mixedNumbers, cmp.Comparer(sameNumber)))
	opts = append(opts, cfg.cmpOpts...)
	if cfg.ignoreOrder {
		opts = append(opts, cmp.FilterValues(sameSequenceType, cmp.Comparer(func(x, y any) bool {
			return sameElements(x, y, opts)
		})))
	}

	// cmp panics on values it can't handle, like functions or channels
	defer func() {
		if p := recover(); p != nil {
			diff = fmt.Sprintf("-: %#v\n+: %#v", expected, actual)
		}
	}()
	return cmp.Diff(expected, actual, opts...)
}

// Numbers of different types are equal by value, so 5 matches json decoded 5.0
func mixedNumbers(x, y any) bool {
	vx, vy := reflect.ValueOf(x), reflect.ValueOf(y)
	return isNumber(vx) && isNumber(vy) && vx.Type() != vy.Type()
}

func isNumber(v reflect.Value) bool {
	if !v.IsValid() {
		return false
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func sameNumber(x, y any) bool {
	return numberOf(reflect.ValueOf(x)).Equal(numberOf(reflect.ValueOf(y)))
}

// numberOf converts the value of any numeric kind, named types included
func numberOf(v reflect.Value) decimal.Decimal {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decimal.NewFromInt(v.Int())
	case reflect.Float32:
		return decimal.NewFromFloat32(float32(v.Float()))
	case reflect.Float64:
		return decimal.NewFromFloat(v.Float())
	}
	return decimal.NewFromUint64(v.Uint())
}

func sameSequenceType(x, y any) bool {
	vx, vy := reflect.ValueOf(x), reflect.ValueOf(y)
	if !vx.IsValid() || !vy.IsValid() || vx.Type() != vy.Type() {
		return false
	}
	return vx.Kind() == reflect.Slice || vx.Kind() == reflect.Array
}

// sameElements matches every element of x with a distinct equal element of y
func sameElements(x, y any, opts []cmp.Option) bool {
	vx, vy := reflect.ValueOf(x), reflect.ValueOf(y)
	if vx.Len() != vy.Len() {
		return false
	}
	used := make([]bool, vy.Len())
	for i := range vx.Len() {
		found := false
		for j := range vy.Len() {
			if used[j] {
				continue
			}
			if cmp.Equal(vx.Index(i).Interface(), vy.Index(j).Interface(), opts...) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
