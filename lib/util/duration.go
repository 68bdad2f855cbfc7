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

package util

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Extra units on top of time.ParseDuration, in hours
var unitHours = map[string]time.Duration{
	"d": 24,
	"D": 24,
	"w": 7 * 24,
	"W": 7 * 24,
	"M": 30 * 24,
	"y": 365 * 24,
	"Y": 365 * 24,
}

var durationPart = regexp.MustCompile(`(\d*\.\d+|\d+)[^\d.]*`)

// ParseDuration parses values like "10s", "1500ms", "3Y4M5d" or "-1.5w". A bare number is
// taken as milliseconds, the unit the browser driver uses for its timeouts.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if ms, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(ms * float64(time.Millisecond)), nil
	}

	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}

	parts := durationPart.FindAllString(s, -1)
	if len(parts) == 0 || strings.Join(parts, "") != s {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	var sum time.Duration
	for _, part := range parts {
		var hours time.Duration = 1
		for unit, h := range unitHours {
			if strings.HasSuffix(part, unit) {
				part = strings.TrimSuffix(part, unit) + "h"
				hours = h
				break
			}
		}
		dur, err := time.ParseDuration(part)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", s, err)
		}
		sum += dur * hours
	}

	if neg {
		sum = -sum
	}
	return sum, nil
}
