// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coding implements low-level QR coding details.
package coding // import "github.com/unixdj/qrgen/coding"

import (
	"fmt"

	"github.com/unixdj/qrgen/gf256"
)

// Field is the field for QR error correction.
var Field = gf256.NewField(0x11d, 2)

// A Code is a square pixel grid.  It is not modified after creation.
type Code struct {
	Version Version // QR version
	Level   Level   // error correction level
	Mask    int     // mask pattern
	Bitmap  []byte  // 1 is black, 0 is white
	Size    int     // number of pixels on a side
	Stride  int     // number of bytes per row
}

// Black reports whether the pixel at (x, y) is black.  Pixels outside
// the code are white.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.Size && 0 <= y && y < c.Size &&
		c.Bitmap[y*c.Stride+x/8]&(1<<uint(7&^x)) != 0
}

// Penalty returns the mask selection penalty of c.
func (c *Code) Penalty() int {
	dark := make([]bool, c.Size*c.Size)
	for y := 0; y < c.Size; y++ {
		for x := 0; x < c.Size; x++ {
			dark[y*c.Size+x] = c.Black(x, y)
		}
	}
	return penalty(dark, c.Size)
}

// An Encoder encodes segments into QR codes.  The zero value is not
// valid; see DefaultEncoder.
type Encoder struct {
	MinVersion Version // smallest allowed version
	MaxVersion Version // largest allowed version
	Mask       int     // mask pattern, or AutoMask
	Boost      bool    // raise level while the version stays the same
	Parallel   bool    // score mask patterns concurrently
}

// DefaultEncoder allows all versions, chooses the mask and boosts the
// error correction level.
var DefaultEncoder = Encoder{
	MinVersion: MinVersion,
	MaxVersion: MaxVersion,
	Mask:       AutoMask,
	Boost:      true,
}

func (e *Encoder) check() error {
	switch {
	case !e.MinVersion.valid() || !e.MaxVersion.valid():
		return fmt.Errorf("%w %d-%d", ErrVersion,
			e.MinVersion, e.MaxVersion)
	case e.MinVersion > e.MaxVersion:
		return fmt.Errorf("%w range %d-%d", ErrVersion,
			e.MinVersion, e.MaxVersion)
	case e.Mask < AutoMask || e.Mask > 7:
		return fmt.Errorf("%w %d", ErrMask, e.Mask)
	}
	return nil
}

// Encode returns a QR code holding segs, using the smallest allowed
// version they fit in at level l.
func (e *Encoder) Encode(l Level, segs ...Segment) (*Code, error) {
	if !l.valid() {
		return nil, fmt.Errorf("%w %d", ErrLevel, int(l))
	}
	if err := e.check(); err != nil {
		return nil, err
	}
	for _, s := range segs {
		if err := s.check(); err != nil {
			return nil, err
		}
	}
	v, n := e.MinVersion, 0
	for {
		n = TotalBits(segs, v)
		if n >= 0 && n <= v.DataBits(l) {
			break
		}
		if v == e.MaxVersion {
			return nil, &DataTooLongError{n, v.DataBits(l)}
		}
		v++
	}
	if e.Boost {
		for l < H && n <= v.DataBits(l+1) {
			l++
		}
	}
	cw := addCheckBytes(v, l, dataCodewords(v, l, segs))
	return newCode(v, l, cw, e.Mask, e.Parallel)
}

// EncodeSegments encodes segs at level l using versions minv to maxv,
// the given mask pattern or AutoMask, and optional level boosting.
func EncodeSegments(segs []Segment, l Level, minv, maxv Version, mask int, boost bool) (*Code, error) {
	e := Encoder{minv, maxv, mask, boost, false}
	return e.Encode(l, segs...)
}

// dataCodewords returns the data codewords for segs, which must fit
// in version v at level l: segment headers and payloads, terminator
// and padding.
func dataCodewords(v Version, l Level, segs []Segment) []byte {
	var b Bits
	b.Grow(v.RawBytes() * 8)
	for _, s := range segs {
		s.encode(&b, v)
	}
	b.padTo(4, v.DataBits(l))
	if len(b.b) != v.DataBytes(l) {
		panic("qr: internal error")
	}
	return b.b
}

// addCheckBytes splits data into blocks, appends check bytes to each
// and returns the interleaved codewords.
func addCheckBytes(v Version, l Level, data []byte) []byte {
	nblock, check := v.Blocks(l)
	raw := v.RawBytes()
	nshort := nblock - raw%nblock
	short := raw / nblock // short block length, check bytes included
	rs, err := gf256.NewRSEncoder(Field, check)
	if err != nil {
		panic("qr: internal error")
	}
	// Each block is short+1 bytes long.  Short blocks have a
	// hole at short-check.
	blocks := make([][]byte, nblock)
	for i := range blocks {
		n := short - check
		if i >= nshort {
			n++
		}
		b := make([]byte, short+1)
		copy(b, data[:n])
		rs.ECC(data[:n], b[short+1-check:])
		data = data[n:]
		blocks[i] = b
	}
	out := make([]byte, 0, raw)
	for i := 0; i <= short; i++ {
		for j, b := range blocks {
			if i != short-check || j >= nshort {
				out = append(out, b[i])
			}
		}
	}
	return out
}

// NewCode returns the QR code of version v and level l holding
// codewords, the interleaved data and check bytes, using the given
// mask pattern or AutoMask.
func NewCode(v Version, l Level, codewords []byte, mask int) (*Code, error) {
	switch {
	case !v.valid():
		return nil, fmt.Errorf("%w %d", ErrVersion, int(v))
	case !l.valid():
		return nil, fmt.Errorf("%w %d", ErrLevel, int(l))
	case mask < AutoMask || mask > 7:
		return nil, fmt.Errorf("%w %d", ErrMask, mask)
	case len(codewords) != v.RawBytes():
		return nil, fmt.Errorf("%w %d, want %d", ErrLength,
			len(codewords), v.RawBytes())
	}
	return newCode(v, l, codewords, mask, false)
}

func newCode(v Version, l Level, codewords []byte, mask int, parallel bool) (*Code, error) {
	p := getPlan(v)
	m := newMatrix(p)
	m.place(codewords)
	if mask == AutoMask {
		if parallel {
			mask = m.chooseMaskParallel(p, l)
		} else {
			mask = m.chooseMask(p, l)
		}
	}
	m.applyMask(p, mask)
	drawFormat(m.setDark, m.size, formatBits(l, mask))
	return m.code(v, l, mask), nil
}

// code packs m into a Code.
func (m *matrix) code(v Version, l Level, mask int) *Code {
	siz := m.size
	stride := (siz + 7) >> 3
	c := &Code{
		Version: v,
		Level:   l,
		Mask:    mask,
		Bitmap:  make([]byte, siz*stride),
		Size:    siz,
		Stride:  stride,
	}
	for y := 0; y < siz; y++ {
		row := c.Bitmap[y*stride:]
		for x, d := range m.dark[y*siz : (y+1)*siz] {
			if d {
				row[x>>3] |= 0x80 >> (x & 7)
			}
		}
	}
	return c
}
