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
	"regexp"
	"strings"
	"testing"
	"time"
)

// Random generators are sampled many times to hit every branch
const samples = 500

func Test_random_partial_date_shape(t *testing.T) {
	shape := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	zeroed := map[string]bool{}
	for range samples {
		date := PartialDate()
		if !shape.MatchString(date) {
			t.Fatalf("PartialDate() = %q does not match date shape", date)
		}
		if date[:4] == "0000" {
			zeroed["year"] = true
		}
		if date[5:7] == "00" {
			zeroed["month"] = true
		}
		if date[8:] == "00" {
			zeroed["day"] = true
		}
	}
	for _, part := range []string{"year", "month", "day"} {
		if !zeroed[part] {
			t.Errorf("PartialDate() never zeroed the %s in %d samples", part, samples)
		}
	}
}

func Test_random_partial_time_shape(t *testing.T) {
	shape := regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)
	for range samples {
		tm := PartialTime()
		if !shape.MatchString(tm) {
			t.Fatalf("PartialTime() = %q does not match time shape", tm)
		}
		if tm[0:2] != "00" && tm[3:5] != "00" && tm[6:8] != "00" {
			t.Fatalf("PartialTime() = %q has no zeroed segment", tm)
		}
	}
}

func Test_random_timestamp_window(t *testing.T) {
	for range samples {
		now := time.Now()
		ts := Timestamp()
		if ts < now.Add(-timestampPast).Unix()-1 || ts > now.Add(timestampFuture).Unix()+1 {
			t.Fatalf("Timestamp() = %d is outside of the window around %d", ts, now.Unix())
		}
	}
}

func Test_random_datetime_format(t *testing.T) {
	dt := StrDatetime()
	parsed, err := time.Parse(time.RFC3339, dt)
	if err != nil {
		t.Fatalf("StrDatetime() = %q is not RFC3339: %v", dt, err)
	}
	if !strings.HasSuffix(dt, "+08:00") {
		t.Errorf("StrDatetime() = %q should carry +08:00 offset", dt)
	}
	if _, offset := parsed.Zone(); offset != 8*60*60 {
		t.Errorf("StrDatetime() offset = %d", offset)
	}
	if _, err := time.Parse("2006-01-02", StrDate()); err != nil {
		t.Errorf("StrDate() is not a date: %v", err)
	}
	if _, err := time.Parse("15:04:05", StrTime()); err != nil {
		t.Errorf("StrTime() is not a time: %v", err)
	}
}

func Test_random_strings(t *testing.T) {
	letters := regexp.MustCompile(`^[a-zA-Z]{12}$`)
	if s := String(12); !letters.MatchString(s) {
		t.Errorf("String(12) = %q", s)
	}
	for range samples {
		n := StrNumber(4)
		if len(n) != 4 || n[0] == '0' {
			t.Fatalf("StrNumber(4) = %q", n)
		}
	}
	if d := StrDouble(3, 2); !regexp.MustCompile(`^[1-9]\d{2}\.[1-9]\d$`).MatchString(d) {
		t.Errorf("StrDouble(3, 2) = %q", d)
	}
	if p := StrPunctuation(20); strings.ContainsAny(p, asciiLetters+digits) || len(p) != 20 {
		t.Errorf("StrPunctuation(20) = %q", p)
	}
	if p := StrPrintable(20); len(p) != 20 {
		t.Errorf("StrPrintable(20) = %q", p)
	}
	if StrNumber(0) != "" {
		t.Error("StrNumber(0) should be empty")
	}
}

func Test_random_integer_bounds(t *testing.T) {
	for range samples {
		if v := Integer(5, 0); v < 5 || v > 49 {
			t.Fatalf("Integer(5, 0) = %d, want [5, 49]", v)
		}
		if v := Integer(3, 3); v != 3 {
			t.Fatalf("Integer(3, 3) = %d", v)
		}
	}
}

func Test_random_i18n_and_tags(t *testing.T) {
	text := NewI18nText(8)
	if len(text.EnUS) != 8 || text.ZhCN != text.EnUS+"中" {
		t.Errorf("NewI18nText(8) = %+v", text)
	}

	tag := TestTag("", "")
	if !regexp.MustCompile(`^AutoTest_\d{14}_[a-zA-Z]{5}$`).MatchString(tag) {
		t.Errorf("TestTag() = %q", tag)
	}
	if tag := TestTag("UI", "-"); !strings.HasPrefix(tag, "UI-") {
		t.Errorf("TestTag(UI, -) = %q", tag)
	}
	if TestTag("", "") == TestTag("", "") && TestTag("", "") == TestTag("", "") {
		t.Error("TestTag() keeps returning the same value")
	}
}

func Test_random_uuid(t *testing.T) {
	uid := UUID()
	if uid.Version() != 1 && uid.Version() != 4 {
		t.Errorf("UUID() version = %d", uid.Version())
	}
	if StrUUID() == StrUUID() {
		t.Error("StrUUID() should not repeat")
	}
}
