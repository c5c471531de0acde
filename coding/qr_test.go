// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"
)

// Total codewords per version, ISO/IEC 18004 table 1.
var words = [MaxVersion + 1]int{0,
	26, 44, 70, 100, 134, 172, 196, 242, 292, 346,
	404, 466, 532, 581, 655, 733, 815, 901, 991, 1085,
	1156, 1258, 1364, 1474, 1588, 1706, 1828, 1921, 2051, 2185,
	2323, 2465, 2611, 2761, 2876, 3034, 3196, 3362, 3532, 3706,
}

func TestCapacity(t *testing.T) {
	for v := MinVersion; v <= MaxVersion; v++ {
		if n := v.RawBytes(); n != words[v] {
			t.Errorf("version %d: %d codewords, want %d", v, n, words[v])
		}
		for l := L; l <= H; l++ {
			nblock, check := v.Blocks(l)
			if nblock < 1 || check < 7 || check > 30 {
				t.Errorf("version %d-%v: %d blocks of %d",
					v, l, nblock, check)
			}
			if v.DataBits(l) != v.DataBytes(l)*8 {
				t.Errorf("version %d-%v: DataBits", v, l)
			}
			if l > L && v.DataBytes(l) >= v.DataBytes(l-1) {
				t.Errorf("version %d: %v holds more than %v",
					v, l, l-1)
			}
		}
	}
	for _, tt := range []struct {
		v    Version
		want [4]int
	}{
		{1, [4]int{19, 16, 13, 9}},
		{10, [4]int{274, 216, 154, 122}},
		{40, [4]int{2956, 2334, 1666, 1276}},
	} {
		for l, want := range tt.want {
			if n := tt.v.DataBytes(Level(l)); n != want {
				t.Errorf("version %d-%v: %d data bytes, want %d",
					tt.v, Level(l), n, want)
			}
		}
	}
}

func TestPlanDataModules(t *testing.T) {
	for v := MinVersion; v <= MaxVersion; v++ {
		p := getPlan(v)
		n := 0
		for _, fn := range p.fn {
			if !fn {
				n++
			}
		}
		if n != v.RawDataModules() {
			t.Errorf("version %d: %d data modules, want %d",
				v, n, v.RawDataModules())
		}
	}
}

func TestAlignPos(t *testing.T) {
	for _, tt := range []struct {
		v    Version
		want []int
	}{
		{1, nil},
		{2, []int{6, 18}},
		{7, []int{6, 22, 38}},
		{32, []int{6, 34, 60, 86, 112, 138}},
		{36, []int{6, 24, 50, 76, 102, 128, 154}},
		{40, []int{6, 30, 58, 86, 114, 142, 170}},
	} {
		if got := tt.v.alignPos(); !slices.Equal(got, tt.want) {
			t.Errorf("version %d: %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestFormatBits(t *testing.T) {
	for _, tt := range []struct {
		l    Level
		mask int
		want uint32
	}{
		{L, 0, 0b111011111000100},
		{M, 0, 0b101010000010010},
		{Q, 0, 0b011010101011111},
		{H, 7, 0b000100000111011},
	} {
		if got := formatBits(tt.l, tt.mask); got != tt.want {
			t.Errorf("formatBits(%v, %d) = %015b, want %015b",
				tt.l, tt.mask, got, tt.want)
		}
	}
}

func TestVersionBits(t *testing.T) {
	want := [...]uint32{
		0x07c94, 0x085bc, 0x09a99, 0x0a4d3, 0x0bbf6, 0x0c762,
		0x0d847, 0x0e60d, 0x0f928, 0x10b78, 0x1145d, 0x12a17,
		0x13532, 0x149a6, 0x15683, 0x168c9, 0x177ec, 0x18ec4,
		0x191e1, 0x1afab, 0x1b08e, 0x1cc1a, 0x1d33f, 0x1ed75,
		0x1f250, 0x209d5, 0x216f0, 0x228ba, 0x2379f, 0x24b0b,
		0x2542e, 0x26a64, 0x27541, 0x28c69,
	}
	for i, w := range want {
		v := Version(i + 7)
		if got := versionBits(v); got != w {
			t.Errorf("versionBits(%d) = %#x, want %#x", v, got, w)
		}
	}
}

func TestVersionInfo(t *testing.T) {
	for v := MinVersion; v <= 8; v++ {
		p := getPlan(v)
		siz := p.size
		fn, dark := false, false
		for i := 0; i < 18; i++ {
			x, y := siz-11+i%3, i/3
			fn = fn || p.fn[y*siz+x] && p.fn[x*siz+y]
			dark = dark || p.dark[y*siz+x] || p.dark[x*siz+y]
		}
		if want := v >= 7; fn != want || dark != want {
			t.Errorf("version %d: version info %v, dark %v",
				v, fn, dark)
		}
	}
}

func TestFunctionPatterns(t *testing.T) {
	p := getPlan(7)
	siz := p.size
	at := func(x, y int) bool { return p.dark[y*siz+x] }
	// Position box rows: 1111111, 1000001, 1011101, separator.
	for _, tt := range []struct {
		y    int
		want string
	}{
		{0, "11111110"},
		{1, "10000010"},
		{2, "10111010"},
		{6, "11111110"},
		{7, "00000000"},
	} {
		var b strings.Builder
		for x := 0; x < 8; x++ {
			b.WriteByte("01"[btoi(at(x, tt.y))])
		}
		if b.String() != tt.want {
			t.Errorf("row %d: %s, want %s", tt.y, b.String(), tt.want)
		}
	}
	// Timing patterns alternate between the boxes.
	for i := 8; i < siz-8; i++ {
		if at(i, 6) != (i%2 == 0) || at(6, i) != (i%2 == 0) {
			t.Errorf("timing module %d wrong", i)
		}
	}
	// Alignment box centred at (22, 22).
	if !at(22, 22) || at(21, 22) || at(23, 23) || !at(20, 20) ||
		!at(24, 22) {
		t.Error("alignment box at (22, 22) wrong")
	}
	// Alignment box on the vertical timing strip.
	if !p.fn[22*siz+4] || !at(4, 22) || !p.fn[22*siz+5] || at(5, 22) {
		t.Error("alignment box at (6, 22) wrong")
	}
	if !at(8, siz-8) {
		t.Error("dark module missing")
	}
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}

func TestMaskSelfInverse(t *testing.T) {
	p := getPlan(5)
	m := newMatrix(p)
	m.place(bytes.Repeat([]byte{0xa5, 0x3c}, p.version.RawBytes()/2))
	orig := slices.Clone(m.dark)
	for mask := 0; mask < 8; mask++ {
		m.applyMask(p, mask)
		if slices.Equal(m.dark, orig) {
			t.Errorf("mask %d changed nothing", mask)
		}
		for i, fn := range p.fn {
			if fn && m.dark[i] != orig[i] {
				t.Fatalf("mask %d changed function module %d",
					mask, i)
			}
		}
		m.applyMask(p, mask)
		if !slices.Equal(m.dark, orig) {
			t.Errorf("mask %d applied twice is not identity", mask)
		}
	}
}

func TestLinePenalty(t *testing.T) {
	const D, W = true, false
	run := func(c bool, n int) []bool {
		r := make([]bool, n)
		for i := range r {
			r[i] = c
		}
		return r
	}
	cat := func(s ...[]bool) []bool { return slices.Concat(s...) }
	finder := []bool{D, W, D, D, D, W, D}
	for _, tt := range []struct {
		name string
		line []bool
		want int
	}{
		{"dark 21", run(D, 21), 3 + 16},
		{"light 21", run(W, 21), 3 + 16},
		{"dark 5", cat(run(D, 5), []bool{W, D, W, D}), 3},
		{"dark 4", cat(run(D, 4), []bool{W, D, W, D}), 0},
		{"dark 5 light 16", cat(run(D, 5), run(W, 16)), 3 + 3 + 11},
		{"finder at start", cat(finder, run(W, 4)), 2 * penaltyN3},
		{"finder in middle", cat(run(W, 4), finder, run(W, 4)),
			2 * penaltyN3},
		{"finder light 1", []bool{W, D, W, D, D, D, W, D, W, D, W, D},
			penaltyN3},
	} {
		if got := linePenalty(tt.line); got != tt.want {
			t.Errorf("%s: penalty %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestPenalty(t *testing.T) {
	// 21x21 checkerboard: no runs, boxes or finder patterns;
	// 221 of 441 modules dark is within 5% of even.
	const siz = 21
	dark := make([]bool, siz*siz)
	for i := range dark {
		dark[i] = i%2 == 0
	}
	if p := penalty(dark, siz); p != 0 {
		t.Errorf("checkerboard penalty %d, want 0", p)
	}
	// All dark: 21+21 lines of 19, 400 boxes, 50% imbalance.
	for i := range dark {
		dark[i] = true
	}
	if p, want := penalty(dark, siz), 42*19+400*penaltyN2+9*penaltyN4; p != want {
		t.Errorf("all dark penalty %d, want %d", p, want)
	}
}

func helloWorld(t *testing.T) []Segment {
	t.Helper()
	s, err := MakeAlphanumeric("HELLO WORLD")
	if err != nil {
		t.Fatal(err)
	}
	return []Segment{s}
}

func TestDataCodewords(t *testing.T) {
	// "HELLO WORLD" at version 1-M.
	want := []byte{32, 91, 11, 120, 209, 114, 220, 77, 67, 64,
		236, 17, 236, 17, 236, 17}
	got := dataCodewords(1, M, helloWorld(t))
	if !bytes.Equal(got, want) {
		t.Errorf("data codewords %v, want %v", got, want)
	}
	cw := addCheckBytes(1, M, got)
	wantCheck := []byte{196, 35, 39, 119, 235, 215, 231, 226, 93, 23}
	if !bytes.Equal(cw, append(want, wantCheck...)) {
		t.Errorf("codewords %v, want check bytes %v", cw, wantCheck)
	}
	// Empty data is all padding.
	got = dataCodewords(1, L, nil)
	if got[0] != 0 || got[1] != 0xec || got[2] != 0x11 ||
		len(got) != 19 {
		t.Errorf("empty data codewords %v", got)
	}
}

func TestInterleave(t *testing.T) {
	// Version 5-Q: two blocks of 15 and two of 16 data bytes,
	// 18 check bytes each.
	const v, l = Version(5), Q
	data := make([]byte, v.DataBytes(l))
	for i := range data {
		data[i] = byte(i)
	}
	cw := addCheckBytes(v, l, data)
	if len(cw) != v.RawBytes() {
		t.Fatalf("%d codewords, want %d", len(cw), v.RawBytes())
	}
	starts := []int{0, 15, 30, 46}
	for i := 0; i < 15; i++ {
		for j, s := range starts {
			if c := cw[i*4+j]; c != byte(s+i) {
				t.Fatalf("codeword %d = %d, want %d", i*4+j, c, s+i)
			}
		}
	}
	if cw[60] != 45 || cw[61] != 61 {
		t.Errorf("long block tails %d %d, want 45 61", cw[60], cw[61])
	}
	rs := Field.Remainder(data[15:30], mustDivisor(t, 18))
	for i, c := range rs {
		if cw[62+i*4+1] != c {
			t.Fatalf("block 1 check byte %d = %d, want %d",
				i, cw[62+i*4+1], c)
		}
	}
}

func mustDivisor(t *testing.T, n int) []byte {
	t.Helper()
	d, err := Field.Divisor(n)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestEncodeVersionAndBoost(t *testing.T) {
	c, err := EncodeSegments(helloWorld(t), L, 1, 40, AutoMask, true)
	if err != nil {
		t.Fatal(err)
	}
	if c.Version != 1 || c.Level != Q || c.Size != 21 {
		t.Errorf("HELLO WORLD: version %d-%v size %d, want 1-Q 21",
			c.Version, c.Level, c.Size)
	}
	num, _ := MakeNumeric(strings.Repeat("9", 53))
	for _, tt := range []struct {
		name      string
		segs      []Segment
		l         Level
		minv      Version
		mask      int
		boost     bool
		v         Version
		wantLevel Level
	}{
		{"no boost", helloWorld(t), L, 1, AutoMask, false, 1, L},
		{"min version", helloWorld(t), L, 3, 2, true, 3, H},
		{"empty", nil, M, 1, AutoMask, false, 1, M},
		// 4+10+177 bits; version 1-M holds 128.
		{"53 digits", []Segment{num}, M, 1, AutoMask, true, 2, M},
	} {
		c, err := EncodeSegments(tt.segs, tt.l, tt.minv, 40, tt.mask,
			tt.boost)
		if err != nil {
			t.Errorf("%s: %v", tt.name, err)
			continue
		}
		if c.Version != tt.v || c.Level != tt.wantLevel ||
			tt.mask != AutoMask && c.Mask != tt.mask {
			t.Errorf("%s: %d-%v mask %d, want %d-%v",
				tt.name, c.Version, c.Level, c.Mask,
				tt.v, tt.wantLevel)
		}
		if c.Size != c.Version.Size() {
			t.Errorf("%s: size %d", tt.name, c.Size)
		}
	}
}

func TestEncodeErrors(t *testing.T) {
	big := []Segment{MakeBytes(make([]byte, 3000))}
	for _, tt := range []struct {
		name       string
		segs       []Segment
		l          Level
		minv, maxv Version
		mask       int
		want       error
	}{
		{"min>max", nil, L, 5, 4, AutoMask, ErrVersion},
		{"min 0", nil, L, 0, 4, AutoMask, ErrVersion},
		{"max 41", nil, L, 1, 41, AutoMask, ErrVersion},
		{"mask 8", nil, L, 1, 40, 8, ErrMask},
		{"mask -2", nil, L, 1, 40, -2, ErrMask},
		{"level", nil, H + 1, 1, 40, AutoMask, ErrLevel},
		{"mode 9", []Segment{{Mode: 9}}, L, 1, 40, AutoMask, ErrInvalid},
		{"mode -1", []Segment{{Mode: -1, Count: 1}}, L, 1, 40, AutoMask, ErrInvalid},
		{"count -1", []Segment{{Mode: Byte, Count: -1}}, L, 1, 40, AutoMask, ErrInvalid},
	} {
		_, err := EncodeSegments(tt.segs, tt.l, tt.minv, tt.maxv,
			tt.mask, true)
		if !errors.Is(err, tt.want) || !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.want)
		}
	}
	_, err := EncodeSegments(big, L, 1, 40, AutoMask, true)
	var dt *DataTooLongError
	if !errors.As(err, &dt) {
		t.Fatalf("3000 bytes: err = %v", err)
	}
	if dt.Required != 4+16+3000*8 || dt.Capacity != 2956*8 {
		t.Errorf("3000 bytes: %+v", dt)
	}
	// A segment overflowing its count field in every allowed version.
	_, err = EncodeSegments([]Segment{MakeBytes(make([]byte, 256))},
		L, 1, 9, AutoMask, true)
	if !errors.As(err, &dt) || dt.Required != -1 {
		t.Errorf("256 bytes in versions 1-9: err = %v", err)
	}
	_, err = NewCode(1, L, make([]byte, 25), AutoMask)
	if !errors.Is(err, ErrLength) {
		t.Errorf("NewCode(25 codewords): err = %v", err)
	}
}

func TestAutoMask(t *testing.T) {
	for _, text := range []string{"", "HELLO WORLD", "0123456789",
		"https://example.com/qr?q=" + strings.Repeat("x", 100)} {
		segs := MakeSegments(text)
		var pen [8]int
		for mask := range pen {
			c, err := EncodeSegments(segs, M, 1, 40, mask, false)
			if err != nil {
				t.Fatal(err)
			}
			if c.Mask != mask {
				t.Fatalf("forced mask %d, got %d", mask, c.Mask)
			}
			pen[mask] = c.Penalty()
		}
		best := 0
		for mask, p := range pen {
			if p < pen[best] {
				best = mask
			}
		}
		c, err := EncodeSegments(segs, M, 1, 40, AutoMask, false)
		if err != nil {
			t.Fatal(err)
		}
		if c.Mask != best {
			t.Errorf("%q: mask %d, want %d (penalties %v)",
				text, c.Mask, best, pen)
		}
		e := Encoder{1, 40, AutoMask, false, true}
		cp, err := e.Encode(M, segs...)
		if err != nil {
			t.Fatal(err)
		}
		if cp.Mask != c.Mask || !bytes.Equal(cp.Bitmap, c.Bitmap) {
			t.Errorf("%q: parallel mask %d, serial %d",
				text, cp.Mask, c.Mask)
		}
	}
}

func TestDeterministic(t *testing.T) {
	segs := MakeSegments("determinism")
	a, err := EncodeSegments(segs, Q, 1, 40, 3, true)
	if err != nil {
		t.Fatal(err)
	}
	b, err := EncodeSegments(segs, Q, 1, 40, 3, true)
	if err != nil {
		t.Fatal(err)
	}
	if a.Mask != 3 || !bytes.Equal(a.Bitmap, b.Bitmap) {
		t.Error("mask 3 codes differ")
	}
}

func TestBlack(t *testing.T) {
	c, err := EncodeSegments(nil, L, 1, 1, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	for _, xy := range [][2]int{{-1, 0}, {0, -1}, {21, 0}, {0, 21},
		{100, 100}} {
		if c.Black(xy[0], xy[1]) {
			t.Errorf("Black(%d, %d) = true", xy[0], xy[1])
		}
	}
	if !c.Black(0, 0) || c.Black(7, 7) || !c.Black(20, 0) {
		t.Error("position boxes wrong")
	}
}
