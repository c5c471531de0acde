// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
)

// A Segment is a run of data encoded in a single mode.  Segments are
// immutable.  Segments built as literals rather than by the functions
// below carry no payload and are rejected by Encoder.Encode if the
// mode or count is invalid.
type Segment struct {
	Mode  Mode // encoding mode
	Count int  // characters in the mode's unit
	data  Bits
}

// NewSegment returns a segment of the given mode and character count
// with a copy of data as the payload.
func NewSegment(mode Mode, count int, data *Bits) (Segment, error) {
	seg := Segment{Mode: mode, Count: count}
	if err := seg.check(); err != nil {
		return Segment{}, err
	}
	seg.data.WriteBits(data)
	return seg, nil
}

func (s Segment) check() error {
	if !s.Mode.valid() || s.Count < 0 {
		return fmt.Errorf("%w: segment mode %v count %d",
			ErrInvalid, s.Mode, s.Count)
	}
	return nil
}

// Len returns the length of the payload in bits.
func (s Segment) Len() int { return s.data.nbit }

// Bit returns bit i of the payload.  It panics if i is out of range.
func (s Segment) Bit(i int) byte { return s.data.Bit(i) }

// MakeNumeric returns a numeric mode segment encoding digits.
func MakeNumeric(digits string) (Segment, error) {
	if !IsNumeric(digits) {
		return Segment{}, &SegmentError{Numeric, digits}
	}
	seg := Segment{Mode: Numeric, Count: len(digits)}
	seg.data.Grow((len(digits)*10 + 2) / 3)
	seg.data.WriteNumeric(digits)
	return seg, nil
}

// MakeAlphanumeric returns an alphanumeric mode segment encoding text.
func MakeAlphanumeric(text string) (Segment, error) {
	if !IsAlphanumericString(text) {
		return Segment{}, &SegmentError{Alphanumeric, text}
	}
	seg := Segment{Mode: Alphanumeric, Count: len(text)}
	seg.data.Grow((len(text)*11 + 1) / 2)
	seg.data.WriteAlphanumeric(text)
	return seg, nil
}

// MakeBytes returns a byte mode segment encoding data.
func MakeBytes(data []byte) Segment {
	seg := Segment{Mode: Byte, Count: len(data)}
	seg.data.WriteBytes(data)
	return seg
}

// MakeLatin1 returns a byte mode segment encoding text as ISO 8859-1.
func MakeLatin1(text string) (Segment, error) {
	b, err := charmap.ISO8859_1.NewEncoder().String(text)
	if err != nil || !utf8.ValidString(text) {
		return Segment{}, &SegmentError{Byte, text}
	}
	return MakeBytes([]byte(b)), nil
}

// kanjiValue returns the 13 bit kanji mode value of r.
func kanjiValue(r rune) (uint32, bool) {
	if r < 0x80 || r == utf8.RuneError {
		return 0, false
	}
	s, err := japanese.ShiftJIS.NewEncoder().String(string(r))
	if err != nil || len(s) != 2 {
		return 0, false
	}
	c := uint16(s[0])<<8 | uint16(s[1])
	if c < 0x8140 || c > 0x9ffc && c < 0xe040 || c > 0xebbf {
		return 0, false
	}
	// Row 13 is a vendor extension absent from JIS X 0208.
	if c >= 0x8740 && c <= 0x879f {
		return 0, false
	}
	return uint32(s[0]&^0xc0)*0xc0 + uint32(s[1]) - 0x100, true
}

// IsKanji reports whether r is encodable in kanji mode, that is,
// whether it is in the JIS X 0208 character set.
func IsKanji(r rune) bool {
	_, ok := kanjiValue(r)
	return ok
}

// MakeKanji returns a kanji mode segment encoding text.
func MakeKanji(text string) (Segment, error) {
	n := utf8.RuneCountInString(text)
	seg := Segment{Mode: Kanji, Count: n}
	seg.data.Grow(n * 13)
	for _, r := range text {
		v, ok := kanjiValue(r)
		if !ok {
			return Segment{}, &SegmentError{Kanji, text}
		}
		seg.data.write(v, 13)
	}
	return seg, nil
}

// MakeECI returns a segment setting the Extended Channel
// Interpretation assignment number.
func MakeECI(value int) (Segment, error) {
	seg := Segment{Mode: ECI}
	switch {
	case value < 0:
		return Segment{}, fmt.Errorf("%w %d", ErrECI, value)
	case value < 1<<7:
		seg.data.write(uint32(value), 8)
	case value < 1<<14:
		seg.data.write(2, 2)
		seg.data.write(uint32(value), 14)
	case value < 1e6:
		seg.data.write(6, 3)
		seg.data.write(uint32(value), 21)
	default:
		return Segment{}, fmt.Errorf("%w %d", ErrECI, value)
	}
	return seg, nil
}

// MakeSegments returns a single segment encoding text: numeric if
// text is all digits, else alphanumeric if possible, else byte mode
// UTF-8.  Empty text returns no segments.
func MakeSegments(text string) []Segment {
	var seg Segment
	switch {
	case text == "":
		return nil
	case IsNumeric(text):
		seg, _ = MakeNumeric(text)
	case IsAlphanumericString(text):
		seg, _ = MakeAlphanumeric(text)
	default:
		seg = MakeBytes([]byte(text))
	}
	return []Segment{seg}
}

// TotalBits returns the number of bits needed to encode segs in
// version v, or -1 if a segment is invalid or its character count
// does not fit in its count field.
func TotalBits(segs []Segment, v Version) int {
	n := 0
	for _, s := range segs {
		if s.check() != nil {
			return -1
		}
		cb := s.Mode.CountBits(v)
		if s.Count >= 1<<cb {
			return -1
		}
		n += 4 + cb + s.data.nbit
	}
	return n
}

// encode writes seg's header and payload to b.
func (s Segment) encode(b *Bits, v Version) {
	b.write(s.Mode.Indicator(), 4)
	b.write(uint32(s.Count), s.Mode.CountBits(v))
	b.WriteBits(&s.data)
}
