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
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	asciiLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits       = "0123456789"
	punctuation  = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
	whitespace   = " \t\n\r\x0b\x0c"
	printable    = digits + asciiLetters + punctuation + whitespace

	// Random timestamps are spread from ten years ago to one year ahead
	timestampPast   = 3650 * 24 * time.Hour
	timestampFuture = 365 * 24 * time.Hour
)

// Dates and times are rendered in a fixed +08:00 zone to match the literal offset suffix
var datetimeZone = time.FixedZone("UTC+8", 8*60*60)

// TrueOrFalse returns a random boolean
func TrueOrFalse() bool {
	return rand.IntN(2) == 1
}

// UUID returns a time-based (version 1) UUID
func UUID() uuid.UUID {
	uid, err := uuid.NewUUID()
	if err != nil {
		// Node id or clock unavailable, random UUID is still unique enough for fixtures
		return uuid.New()
	}
	return uid
}

// StrUUID returns UUID as string
func StrUUID() string {
	return UUID().String()
}

func choose(alphabet string, length int) string {
	var b strings.Builder
	b.Grow(length)
	for range length {
		b.WriteByte(alphabet[rand.IntN(len(alphabet))])
	}
	return b.String()
}

// String returns random ASCII letters of the given length
func String(length int) string {
	return choose(asciiLetters, length)
}

// StrPrintable returns random printable characters, whitespace included
func StrPrintable(length int) string {
	return choose(printable, length)
}

// StrPunctuation returns random punctuation characters
func StrPunctuation(length int) string {
	return choose(punctuation, length)
}

// StrNumber returns a numeric string of the given length with nonzero first digit
func StrNumber(length int) string {
	if length < 1 {
		return ""
	}
	return string(digits[1+rand.IntN(9)]) + choose(digits, length-1)
}

// StrDouble returns a decimal-looking string with x integer and y fractional digits
func StrDouble(x, y int) string {
	return StrNumber(x) + "." + StrNumber(y)
}

// Integer returns random int in [start, end], end of 0 means start*10-1
func Integer(start, end int) int {
	if end == 0 {
		end = start*10 - 1
	}
	if end < start {
		start, end = end, start
	}
	return start + rand.IntN(end-start+1)
}

// Timestamp returns unix seconds uniformly sampled between ten years ago and one year ahead
func Timestamp() int64 {
	now := time.Now()
	from := now.Add(-timestampPast).Unix()
	to := now.Add(timestampFuture).Unix()
	return from + rand.Int64N(to-from+1)
}

func randomTime() time.Time {
	return time.Unix(Timestamp(), 0).In(datetimeZone)
}

// StrDatetime returns random date-time like "2021-07-01T11:07:00+08:00"
func StrDatetime() string {
	return randomTime().Format("2006-01-02T15:04:05-07:00")
}

// StrDate returns random date like "2021-07-01"
func StrDate() string {
	return randomTime().Format("2006-01-02")
}

// StrTime returns random time like "11:07:00"
func StrTime() string {
	return randomTime().Format("15:04:05")
}

// PartialDate returns random date where year, month and day are independently zeroed,
// like "0000-07-01" or "2021-00-00"
func PartialDate() string {
	date := StrDate()
	if TrueOrFalse() {
		date = "0000" + date[4:]
	}
	if TrueOrFalse() {
		date = date[:5] + "00" + date[7:]
	}
	if TrueOrFalse() {
		date = date[:8] + "00"
	}
	return date
}

// PartialTime returns random time with one of hour, minute or second zeroed, like "00:07:00"
func PartialTime() string {
	full := StrTime()
	pos := []int{0, 3, 6}[rand.IntN(3)]
	return full[:pos] + "00" + full[pos+2:]
}

// I18nText is a bilingual text pair
type I18nText struct {
	EnUS string `json:"en_us"`
	ZhCN string `json:"zh_cn"`
}

// NewI18nText returns random english text and its chinese-marked variant
func NewI18nText(length int) I18nText {
	s := String(length)
	return I18nText{EnUS: s, ZhCN: s + "中"}
}

// TestTag returns collision resistant tag like "AutoTest_20250102150405_aBcDe"
func TestTag(prefix, conjunction string) string {
	if prefix == "" {
		prefix = "AutoTest"
	}
	if conjunction == "" {
		conjunction = "_"
	}
	return strings.Join([]string{prefix, time.Now().Format("20060102150405"), String(5)}, conjunction)
}

// UniqueName returns timestamp based entity name, used for the names the console requires
// to be unique within a workspace
func UniqueName(prefix string) string {
	return prefix + strconv.FormatInt(time.Now().UnixNano(), 10)
}
