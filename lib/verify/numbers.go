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
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// toDecimal converts numeric value or its string form to exact decimal
func toDecimal(value any) (decimal.Decimal, error) {
	switch v := value.(type) {
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int8:
		return decimal.NewFromInt(int64(v)), nil
	case int16:
		return decimal.NewFromInt(int64(v)), nil
	case int32:
		return decimal.NewFromInt32(v), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case uint:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(v)), 0), nil
	case uint8:
		return decimal.NewFromInt(int64(v)), nil
	case uint16:
		return decimal.NewFromInt(int64(v)), nil
	case uint32:
		return decimal.NewFromInt(int64(v)), nil
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		return decimal.NewFromString(v)
	case json.Number:
		return decimal.NewFromString(v.String())
	case decimal.Decimal:
		return v, nil
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero, fmt.Errorf("nil decimal")
		}
		return *v, nil
	}
	return decimal.Zero, fmt.Errorf("unsupported number type %T", value)
}

// NumbersEqual verifies the numbers are exactly equal when margin is 0, otherwise actual
// should be within [expected-margin, expected+margin]. Operands could be of any numeric
// type, decimal or numeric string.
func (v *Verifier) NumbersEqual(actual, expected any, msg string, margin any) {
	v.t.Helper()

	logmsg := fmt.Sprintf("Verify actual = expected: %v = %v", actual, expected)
	if margin == nil {
		margin = 0
	}

	act, err := toDecimal(actual)
	if err != nil {
		v.fail("NumbersEqual", describe(fmt.Sprintf("%s\n actual: %v", logmsg, err), msg))
		return
	}
	exp, err := toDecimal(expected)
	if err != nil {
		v.fail("NumbersEqual", describe(fmt.Sprintf("%s\n expected: %v", logmsg, err), msg))
		return
	}
	marg, err := toDecimal(margin)
	if err != nil {
		v.fail("NumbersEqual", describe(fmt.Sprintf("%s\n margin: %v", logmsg, err), msg))
		return
	}

	if marg.IsZero() {
		logmsg = describe(logmsg, msg)
		if !act.Equal(exp) {
			v.fail("NumbersEqual", logmsg)
		}
	} else {
		logmsg = describe(fmt.Sprintf("%s, margin_of_error=%v", logmsg, margin), msg)
		if act.LessThan(exp.Sub(marg)) || act.GreaterThan(exp.Add(marg)) {
			v.fail("NumbersEqual", logmsg)
		}
	}
	v.pass("NumbersEqual", logmsg)
}
