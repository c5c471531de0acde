// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "strconv"

// Bits is an append-only sequence of bits, packed most significant
// bit first.  The zero value is an empty sequence.
type Bits struct {
	b    []byte
	nbit int
}

// Len returns the number of bits in b.
func (b *Bits) Len() int { return b.nbit }

// Bytes returns the packed bits.  If Len is not a multiple of 8, the
// unused low bits of the last byte are 0.  The returned slice shares
// storage with b.
func (b *Bits) Bytes() []byte { return b.b }

// Bit returns bit i of b as 0 or 1.  It panics if i is out of range.
func (b *Bits) Bit(i int) byte {
	if i < 0 || i >= b.nbit {
		panic("qr: bit index " + strconv.Itoa(i) + " out of range")
	}
	return b.b[i>>3] >> (7 &^ i) & 1
}

// Grow grows b's capacity to hold another n bits.
func (b *Bits) Grow(n int) {
	if need := (b.nbit + n + 7) >> 3; need > cap(b.b) {
		nb := make([]byte, len(b.b), max(need, 2*cap(b.b)))
		copy(nb, b.b)
		b.b = nb
	}
}

// Write appends the low nbit bits of v, most significant first.
// It panics if nbit is outside 0 to 31 or v has bits set above nbit.
func (b *Bits) Write(v uint32, nbit int) {
	if nbit < 0 || nbit > 31 || v>>uint(nbit) != 0 {
		panic("qr: value " + strconv.FormatUint(uint64(v), 10) +
			" out of range for " + strconv.Itoa(nbit) + " bits")
	}
	b.write(v, nbit)
}

func (b *Bits) write(v uint32, nbit int) {
	if nbit == 0 {
		return
	}
	v <<= 32 - nbit
	if rem := -b.nbit & 7; rem != 0 {
		b.b[len(b.b)-1] |= byte(v >> (32 - rem))
		if rem >= nbit {
			b.nbit += nbit
			return
		}
		b.nbit += rem
		nbit -= rem
		v <<= rem
	}
	for n := nbit; n > 0; n -= 8 {
		b.b = append(b.b, byte(v>>24))
		v <<= 8
	}
	b.nbit += nbit
}

// WriteBytes appends the bits of each byte in p.
func (b *Bits) WriteBytes(p []byte) {
	if b.nbit&7 == 0 {
		b.b = append(b.b, p...)
		b.nbit += len(p) * 8
		return
	}
	for _, c := range p {
		b.write(uint32(c), 8)
	}
}

// WriteNumeric appends the numeric mode encoding of digits: groups
// of 3 digits in 10 bits, a final 2 digits in 7 bits or 1 digit in
// 4 bits.  Digits are not validated.
func (b *Bits) WriteNumeric(digits string) {
	s := digits
	for ; len(s) >= 3; s = s[3:] {
		b.write(uint32(s[0]-'0')*100+uint32(s[1]-'0')*10+
			uint32(s[2]-'0'), 10)
	}
	switch len(s) {
	case 2:
		b.write(uint32(s[0]-'0')*10+uint32(s[1]-'0'), 7)
	case 1:
		b.write(uint32(s[0]-'0'), 4)
	}
}

// WriteAlphanumeric appends the alphanumeric mode encoding of text:
// pairs of characters in 11 bits, a final character in 6 bits.
// Characters are not validated.
func (b *Bits) WriteAlphanumeric(text string) {
	s := text
	for ; len(s) >= 2; s = s[2:] {
		b.write(uint32(alpha[s[0]&0x3f])*45+uint32(alpha[s[1]&0x3f]), 11)
	}
	if len(s) == 1 {
		b.write(uint32(alpha[s[0]&0x3f]), 6)
	}
}

// WriteBits appends the bits of d.
func (b *Bits) WriteBits(d *Bits) {
	n := d.nbit
	for _, c := range d.b {
		if n < 8 {
			b.write(uint32(c>>(8-n)), n)
			break
		}
		b.write(uint32(c), 8)
		n -= 8
	}
}

// padTo appends up to t zero terminator bits without exceeding n bits,
// zero bits up to a byte boundary and alternating 0xec and 0x11 pad
// bytes up to n bits.  n must be a multiple of 8.
func (b *Bits) padTo(t, n int) {
	b.write(0, min(t, n-b.nbit))
	b.write(0, -b.nbit&7)
	for pad := byte(0xec); b.nbit < n; pad ^= 0xec ^ 0x11 {
		b.b = append(b.b, pad)
		b.nbit += 8
	}
}
