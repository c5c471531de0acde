// Copyright 2010 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gf256 implements arithmetic over the Galois Field GF(256)
// and the Reed-Solomon check byte computation used by QR codes.
package gf256 // import "github.com/unixdj/qrgen/gf256"

import (
	"errors"
	"fmt"
)

// ErrDegree is returned for a generator polynomial degree outside
// 1 to 255.
var ErrDegree = errors.New("gf256: invalid degree")

// A Field represents an instance of GF(256) defined by a specific
// polynomial.
type Field struct {
	poly int // reducing polynomial
	log  [256]byte
	exp  [510]byte
}

// NewField returns a new field corresponding to the polynomial poly
// and generator α.  The Reed-Solomon encoding in QR codes uses
// polynomial 0x11d with generator 2.
//
// The choice of generator α only affects the Exp and Log operations.
func NewField(poly, α int) *Field {
	if poly < 0x100 || poly >= 0x200 || reducible(poly) {
		panic("gf256: invalid polynomial: " + fmt.Sprint(poly))
	}

	var f Field
	f.poly = poly
	x := 1
	for i := 0; i < 255; i++ {
		if x == 1 && i != 0 {
			panic("gf256: invalid generator " + fmt.Sprint(α) +
				" for polynomial " + fmt.Sprint(poly))
		}
		f.exp[i] = byte(x)
		f.exp[i+255] = byte(x)
		f.log[x] = byte(i)
		x = f.mul(x, α)
	}
	f.log[0] = 255
	return &f
}

// reducible reports whether p is reducible.
func reducible(p int) bool {
	// Multiplying n-degree polynomials a and b yields a polynomial
	// of degree 8 only when the degrees sum to 8, so checking
	// divisors of degree up to 4 is enough.
	np := nbit(p)
	for q := 2; q < 1<<5; q++ {
		if np >= nbit(q) && polyMod(p, q) == 0 {
			return true
		}
	}
	return false
}

// polyMod returns p % q in the ring of polynomials over GF(2).
func polyMod(p, q int) int {
	np := nbit(p)
	nq := nbit(q)
	for ; np >= nq; np-- {
		if p&(1<<uint(np-1)) != 0 {
			p ^= q << uint(np-nq)
		}
	}
	return p
}

func nbit(p int) int {
	n := 0
	for ; p > 0; p >>= 1 {
		n++
	}
	return n
}

// mul returns the product x*y reduced by the field polynomial,
// computed one bit of y at a time, most significant first.
func (f *Field) mul(x, y int) int {
	z := 0
	for i := 7; i >= 0; i-- {
		z = z<<1 ^ z>>7*f.poly
		z ^= y >> uint(i) & 1 * x
	}
	return z
}

// Add returns the sum of x and y in the field.
func (f *Field) Add(x, y byte) byte {
	return x ^ y
}

// Exp returns the base-α exponential of e in the field.
// If e < 0, Exp returns 0.
func (f *Field) Exp(e int) byte {
	if e < 0 {
		return 0
	}
	return f.exp[e%255]
}

// Log returns the base-α logarithm of x in the field.
// If x == 0, Log returns -1.
func (f *Field) Log(x byte) int {
	if x == 0 {
		return -1
	}
	return int(f.log[x])
}

// Inv returns the multiplicative inverse of x in the field.
// If x == 0, Inv returns 0.
func (f *Field) Inv(x byte) byte {
	if x == 0 {
		return 0
	}
	return f.exp[255-f.log[x]]
}

// Mul returns the product of x and y in the field.
func (f *Field) Mul(x, y byte) byte {
	return byte(f.mul(int(x), int(y)))
}

// An RSEncoder implements Reed-Solomon encoding
// over a given field using a given number of check bytes.
type RSEncoder struct {
	f   *Field
	gen []byte // generator polynomial, leading coefficient omitted
}

// Divisor returns the coefficients of the generator polynomial of
// the given degree, from highest to lowest power, omitting the
// leading coefficient, which is always 1.
//
// The polynomial is (x - α⁰)(x - α¹)...(x - α^(degree-1)).
func (f *Field) Divisor(degree int) ([]byte, error) {
	if degree < 1 || degree > 255 {
		return nil, fmt.Errorf("%w: %d", ErrDegree, degree)
	}
	g := make([]byte, degree)
	g[degree-1] = 1
	root := byte(1)
	for i := 0; i < degree; i++ {
		// multiply g by (x - root)
		for j := range g {
			g[j] = f.Mul(g[j], root)
			if j+1 < len(g) {
				g[j] ^= g[j+1]
			}
		}
		root = f.Mul(root, 2)
	}
	return g, nil
}

// Remainder returns the remainder of data, as a polynomial multiplied
// by x^len(divisor), divided by the generator polynomial whose
// non-leading coefficients are divisor.  The result has the same
// length as divisor.
func (f *Field) Remainder(data, divisor []byte) []byte {
	r := make([]byte, len(divisor))
	f.remainder(r, data, divisor)
	return r
}

func (f *Field) remainder(r, data, divisor []byte) {
	clear(r)
	for _, b := range data {
		factor := b ^ r[0]
		copy(r, r[1:])
		r[len(r)-1] = 0
		if factor == 0 {
			continue
		}
		lf := int(f.log[factor])
		for i, d := range divisor {
			if d != 0 {
				r[i] ^= f.exp[int(f.log[d])+lf]
			}
		}
	}
}

// NewRSEncoder returns a new Reed-Solomon encoder
// over the given field and number of check bytes.
func NewRSEncoder(f *Field, c int) (*RSEncoder, error) {
	gen, err := f.Divisor(c)
	if err != nil {
		return nil, err
	}
	return &RSEncoder{f: f, gen: gen}, nil
}

// Degree returns the number of check bytes computed by rs.
func (rs *RSEncoder) Degree() int { return len(rs.gen) }

// Divisor returns a copy of the generator polynomial used by rs.
func (rs *RSEncoder) Divisor() []byte {
	return append([]byte(nil), rs.gen...)
}

// ECC writes to check the error correcting code bytes
// for data using the given Reed-Solomon parameters.
func (rs *RSEncoder) ECC(data []byte, check []byte) {
	if len(check) < len(rs.gen) {
		panic("gf256: invalid check byte length")
	}
	rs.f.remainder(check[:len(rs.gen)], data, rs.gen)
}
