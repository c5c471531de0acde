// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "strconv"

// A Version represents a QR version.
// The version specifies the size of the QR code:
// a QR code with version v has 4v+17 modules on a side.
// Versions run from 1 to 40: the larger the version,
// the more information the code can store.
type Version int

const (
	MinVersion Version = 1  // Minimum QR version
	MaxVersion Version = 40 // Maximum QR version
)

func (v Version) String() string { return strconv.Itoa(int(v)) }

func (v Version) valid() bool { return MinVersion <= v && v <= MaxVersion }

// QR version size classes.  The width of character count fields
// depends on the class.
const (
	Class0 = iota // QR versions 1 to 9
	Class1        // QR versions 10 to 26
	Class2        // QR versions 27 to 40
)

// SizeClass returns the size class of v, as documented under Class0.
func (v Version) SizeClass() int {
	if v <= 9 {
		return Class0
	}
	if v <= 26 {
		return Class1
	}
	return Class2
}

// Size returns the number of modules on a side.
func (v Version) Size() int { return int(v)*4 + 17 }

// RawDataModules returns the number of modules available for data and
// check bits after all function patterns are excluded, including
// remainder bits.
func (v Version) RawDataModules() int {
	siz := v.Size()
	n := siz*siz - 8*8*3 - (15*2 + 1) - (siz-16)*2
	if v >= 2 {
		na := int(v)/7 + 2
		n -= (na-1)*(na-1)*25 + (na-2)*2*20
		if v >= 7 {
			n -= 36
		}
	}
	return n
}

// RawBytes returns the number of data and check bytes.
func (v Version) RawBytes() int { return v.RawDataModules() / 8 }

// DataBytes returns the number of data bytes that can be
// stored in a QR code with the given version and level.
func (v Version) DataBytes(l Level) int {
	lev := &vtab[v-1][l]
	return v.RawBytes() - lev.nblock*lev.check
}

// DataBits returns the number of data bits that can be
// stored in a QR code with the given version and level.
func (v Version) DataBits(l Level) int { return v.DataBytes(l) * 8 }

// Blocks returns the number of error correction blocks and the number
// of check bytes per block.
func (v Version) Blocks(l Level) (nblock, check int) {
	lev := &vtab[v-1][l]
	return lev.nblock, lev.check
}

// A Level represents a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // 20% redundant
	M              // 38% redundant
	Q              // 55% redundant
	H              // 65% redundant
)

func (l Level) String() string {
	if L <= l && l <= H {
		return "LMQH"[l : l+1]
	}
	return strconv.Itoa(int(l))
}

func (l Level) valid() bool { return L <= l && l <= H }

// formatBits returns the 2 bit level indicator used in format
// information.
func (l Level) formatBits() uint32 { return uint32(l ^ 1) }

type level struct {
	nblock int // number of error correction blocks
	check  int // check bytes per block
}

// Error correction blocks per version and level, from ISO/IEC 18004
// table 9.
var vtab = [MaxVersion][4]level{
	{{1, 7}, {1, 10}, {1, 13}, {1, 17}}, // 1
	{{1, 10}, {1, 16}, {1, 22}, {1, 28}}, // 2
	{{1, 15}, {1, 26}, {2, 18}, {2, 22}}, // 3
	{{1, 20}, {2, 18}, {2, 26}, {4, 16}}, // 4
	{{1, 26}, {2, 24}, {4, 18}, {4, 22}}, // 5
	{{2, 18}, {4, 16}, {4, 24}, {4, 28}}, // 6
	{{2, 20}, {4, 18}, {6, 18}, {5, 26}}, // 7
	{{2, 24}, {4, 22}, {6, 22}, {6, 26}}, // 8
	{{2, 30}, {5, 22}, {8, 20}, {8, 24}}, // 9
	{{4, 18}, {5, 26}, {8, 24}, {8, 28}}, // 10
	{{4, 20}, {5, 30}, {8, 28}, {11, 24}}, // 11
	{{4, 24}, {8, 22}, {10, 26}, {11, 28}}, // 12
	{{4, 26}, {9, 22}, {12, 24}, {16, 22}}, // 13
	{{4, 30}, {9, 24}, {16, 20}, {16, 24}}, // 14
	{{6, 22}, {10, 24}, {12, 30}, {18, 24}}, // 15
	{{6, 24}, {10, 28}, {17, 24}, {16, 30}}, // 16
	{{6, 28}, {11, 28}, {16, 28}, {19, 28}}, // 17
	{{6, 30}, {13, 26}, {18, 28}, {21, 28}}, // 18
	{{7, 28}, {14, 26}, {21, 26}, {25, 26}}, // 19
	{{8, 28}, {16, 26}, {20, 30}, {25, 28}}, // 20
	{{8, 28}, {17, 26}, {23, 28}, {25, 30}}, // 21
	{{9, 28}, {17, 28}, {23, 30}, {34, 24}}, // 22
	{{9, 30}, {18, 28}, {25, 30}, {30, 30}}, // 23
	{{10, 30}, {20, 28}, {27, 30}, {32, 30}}, // 24
	{{12, 26}, {21, 28}, {29, 30}, {35, 30}}, // 25
	{{12, 28}, {23, 28}, {34, 28}, {37, 30}}, // 26
	{{12, 30}, {25, 28}, {34, 30}, {40, 30}}, // 27
	{{13, 30}, {26, 28}, {35, 30}, {42, 30}}, // 28
	{{14, 30}, {28, 28}, {38, 30}, {45, 30}}, // 29
	{{15, 30}, {29, 28}, {40, 30}, {48, 30}}, // 30
	{{16, 30}, {31, 28}, {43, 30}, {51, 30}}, // 31
	{{17, 30}, {33, 28}, {45, 30}, {54, 30}}, // 32
	{{18, 30}, {35, 28}, {48, 30}, {57, 30}}, // 33
	{{19, 30}, {37, 28}, {51, 30}, {60, 30}}, // 34
	{{19, 30}, {38, 28}, {53, 30}, {63, 30}}, // 35
	{{20, 30}, {40, 28}, {56, 30}, {66, 30}}, // 36
	{{21, 30}, {43, 28}, {59, 30}, {70, 30}}, // 37
	{{22, 30}, {45, 28}, {62, 30}, {74, 30}}, // 38
	{{24, 30}, {47, 28}, {65, 30}, {77, 30}}, // 39
	{{25, 30}, {49, 28}, {68, 30}, {81, 30}}, // 40
}

// alignPos returns the alignment pattern centre coordinates of v in
// ascending order, used for both x and y.
func (v Version) alignPos() []int {
	if v == 1 {
		return nil
	}
	na := int(v)/7 + 2
	step := 26
	if v != 32 {
		step = (int(v)*4 + na*2 + 1) / (na*2 - 2) * 2
	}
	pos := make([]int, na)
	pos[0] = 6
	for i, p := na-1, v.Size()-7; i >= 1; i, p = i-1, p-step {
		pos[i] = p
	}
	return pos
}
