// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package split splits text into QR code segments.

Split chooses a mode for every character of the text so that the
encoded length, segment headers included, is as small as possible.
Adjacent characters sharing a mode are joined into one segment.
Character count fields are wider in larger versions, so the split is
recomputed whenever the version search crosses into the next size
class (versions 10 and 27).

Costs are counted in sixths of a bit, which makes the average cost of
numeric (3⅓ bits) and alphanumeric (5½ bits) characters integral.
*/
package split // import "github.com/unixdj/qrgen/split"

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/unixdj/qrgen/coding"
)

// QR error correction levels.
const (
	L = coding.L // 20% redundant
	M = coding.M // 38% redundant
	Q = coding.Q // 55% redundant
	H = coding.H // 65% redundant
)

// Extended Channel Interpretation assignment numbers.
const (
	Latin1ECI   = 3   // ISO 8859-1
	ShiftJISECI = 20  // Shift JIS
	UTF8ECI     = 26  // UTF-8
	BinaryECI   = 899 // 8-bit binary data
)

// Modes in the order they are tried.  Byte mode comes first and
// accepts everything.
var modes = [...]coding.Mode{
	coding.Byte,
	coding.Alphanumeric,
	coding.Numeric,
	coding.Kanji,
}

const nmode = len(modes)

// Per character costs in sixths of a bit.
const (
	byteCost  = 8 * 6 // per UTF-8 byte
	alnumCost = 33    // 11 bits per 2 characters
	numCost   = 20    // 10 bits per 3 digits
	kanjiCost = 13 * 6
)

// costs returns the cost of r in each of modes, or 0 where r cannot be
// encoded.
func costs(r rune) (c [nmode]int) {
	n := utf8.RuneLen(r)
	if n < 0 {
		n = utf8.RuneLen(utf8.RuneError)
	}
	c[0] = n * byteCost
	if coding.IsAlphanumeric(r) {
		c[1] = alnumCost
	}
	if coding.IsDigit(r) {
		c[2] = numCost
	}
	if coding.IsKanji(r) {
		c[3] = kanjiCost
	}
	return c
}

// assign returns the mode of each rune minimising the encoded length
// at version v.
func assign(runes []rune, v coding.Version) []coding.Mode {
	var head [nmode]int
	for j, m := range modes {
		head[j] = (4 + m.CountBits(v)) * 6
	}
	// back[i*nmode+j] is the index of the mode of rune i on the
	// cheapest path that leaves the encoder in mode j after it.
	back := make([]int8, len(runes)*nmode)
	prev := head
	for i, r := range runes {
		var (
			cur [nmode]int
			ok  [nmode]bool
			b   = back[i*nmode : (i+1)*nmode]
		)
		// Stay in the mode.
		for j, c := range costs(r) {
			if c != 0 {
				cur[j], ok[j], b[j] = prev[j]+c, true, int8(j)
			}
		}
		// Switch to mode j after the rune, padding the partial
		// bit of the old segment up.
		stay, reach := cur, ok
		for j := range cur {
			for k, c := range stay {
				if !reach[k] {
					continue
				}
				if c = (c+5)/6*6 + head[j]; !ok[j] || c < cur[j] {
					cur[j], ok[j], b[j] = c, true, int8(k)
				}
			}
		}
		prev = cur
	}

	j := 0
	for k, c := range prev {
		if c < prev[j] {
			j = k
		}
	}
	m := make([]coding.Mode, len(runes))
	for i := len(runes) - 1; i >= 0; i-- {
		j = int(back[i*nmode+j])
		m[i] = modes[j]
	}
	return m
}

// makeSegment returns a segment of text in the given mode.
func makeSegment(mode coding.Mode, text string) coding.Segment {
	var (
		seg coding.Segment
		err error
	)
	switch mode {
	case coding.Numeric:
		seg, err = coding.MakeNumeric(text)
	case coding.Alphanumeric:
		seg, err = coding.MakeAlphanumeric(text)
	case coding.Kanji:
		seg, err = coding.MakeKanji(text)
	default:
		seg = coding.MakeBytes([]byte(text))
	}
	if err != nil {
		panic("qr: internal error")
	}
	return seg
}

// segments appends the optimal split of runes at version v to head.
func segments(head []coding.Segment, runes []rune, v coding.Version) []coding.Segment {
	m := assign(runes, v)
	segs := slices.Clip(head)
	for i := 0; i < len(runes); {
		j := i + 1
		for j < len(runes) && m[j] == m[i] {
			j++
		}
		segs = append(segs, makeSegment(m[i], string(runes[i:j])))
		i = j
	}
	return segs
}

/*
Split returns segments encoding text in as few bits as possible and
the smallest version from minv to maxv holding them at level l.

The text is converted to Unicode Normalization Form C first.  Invalid
UTF-8 sequences are encoded as U+FFFD.  Empty text produces no
segments and version minv.

If the text does not fit, the error is a *coding.DataTooLongError.
*/
func Split(text string, l coding.Level, minv, maxv coding.Version) ([]coding.Segment, coding.Version, error) {
	return split(nil, text, l, minv, maxv)
}

// Text is like Split but prefixes the segments with an ECI segment
// designating eci.  If eci is negative, Text is the same as Split.
func Text(text string, eci int, l coding.Level, minv, maxv coding.Version) ([]coding.Segment, coding.Version, error) {
	if eci < 0 {
		return Split(text, l, minv, maxv)
	}
	seg, err := coding.MakeECI(eci)
	if err != nil {
		return nil, 0, err
	}
	return split([]coding.Segment{seg}, text, l, minv, maxv)
}

func split(head []coding.Segment, text string, l coding.Level, minv, maxv coding.Version) ([]coding.Segment, coding.Version, error) {
	switch {
	case l < L || l > H:
		return nil, 0, fmt.Errorf("%w %d", coding.ErrLevel, int(l))
	case minv < coding.MinVersion || maxv > coding.MaxVersion ||
		minv > maxv:
		return nil, 0, fmt.Errorf("%w range %d-%d", coding.ErrVersion,
			minv, maxv)
	}
	runes := []rune(norm.NFC.String(text))
	var segs []coding.Segment
	for v := minv; ; v++ {
		if v == minv || v.SizeClass() != (v-1).SizeClass() {
			segs = segments(head, runes, v)
		}
		n := coding.TotalBits(segs, v)
		if n >= 0 && n <= v.DataBits(l) {
			return segs, v, nil
		}
		if v == maxv {
			return nil, 0, &coding.DataTooLongError{
				Required: n,
				Capacity: v.DataBits(l),
			}
		}
	}
}
