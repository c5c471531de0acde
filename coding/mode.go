// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "strconv"

// A Mode is a QR segment encoding mode.
type Mode int

// Segment modes.
const (
	Numeric      Mode = iota // digits 0-9
	Alphanumeric             // 0-9 A-Z SPACE $ % * + - . / :
	Byte                     // any data
	Kanji                    // Shift JIS double-byte characters
	ECI                      // extended channel interpretation
)

var modeTab = [...]struct {
	name        string
	indicator   uint32
	countLength [3]int // per version size class
}{
	Numeric:      {"numeric", 0x1, [3]int{10, 12, 14}},
	Alphanumeric: {"alphanumeric", 0x2, [3]int{9, 11, 13}},
	Byte:         {"byte", 0x4, [3]int{8, 16, 16}},
	Kanji:        {"kanji", 0x8, [3]int{8, 10, 12}},
	ECI:          {"eci", 0x7, [3]int{0, 0, 0}},
}

func (m Mode) valid() bool { return Numeric <= m && m <= ECI }

func (m Mode) String() string {
	if m.valid() {
		return modeTab[m].name
	}
	return strconv.Itoa(int(m))
}

// Indicator returns the 4 bit mode indicator.
func (m Mode) Indicator() uint32 { return modeTab[m].indicator }

// CountBits returns the width of the character count field of mode m
// in version v.
func (m Mode) CountBits(v Version) int {
	return modeTab[m].countLength[v.SizeClass()]
}

const alphamask uint64 = 0x07fffffe_07ffec31 // SPACE $% *+ -./ [0-9] : [A-Z]

// Alphanumeric encoding table.  Used after validation.
// "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"
var alpha = [64]byte{
	00, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, // 0x40
	25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 00, 00, 00, 00, 00, // 0x50
	36, 00, 00, 00, 37, 38, 00, 00, 00, 00, 39, 40, 00, 41, 42, 43, // 0x20
	00, 01, 02, 03, 04, 05, 06, 07, 010, 9, 44, 00, 00, 00, 00, 00, // 0x30
}

// IsDigit reports whether r is encodable in numeric mode.
func IsDigit(r rune) bool { return uint32(r-'0') < 10 }

// IsAlphanumeric reports whether r is encodable in alphanumeric mode.
func IsAlphanumeric(r rune) bool {
	return uint32(r-' ') < 64 && alphamask>>(uint32(r)-' ')&1 != 0
}

// IsNumeric reports whether s consists of digits only.
func IsNumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		if !IsDigit(rune(s[i])) {
			return false
		}
	}
	return true
}

// IsAlphanumericString reports whether s is encodable in
// alphanumeric mode.
func IsAlphanumericString(s string) bool {
	for i := 0; i < len(s); i++ {
		if !IsAlphanumeric(rune(s[i])) {
			return false
		}
	}
	return true
}
