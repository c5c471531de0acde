// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "sync"

// A plan holds the function patterns of a QR version.  Plans are
// shared and must not be modified after creation.
type plan struct {
	version Version
	size    int
	fn      []bool    // function modules
	dark    []bool    // function pattern colours, format bits light
	pattern [8][]bool // mask patterns with function modules cleared
}

// Pre-allocated plans.  A plan is created the first time a version
// is used.
var plans [MaxVersion + 1]struct {
	once sync.Once
	p    *plan
}

// getPlan returns the plan for v, creating it if needed.
func getPlan(v Version) *plan {
	p := &plans[v]
	p.once.Do(func() { p.p = vplan(v) })
	return p.p
}

func (p *plan) set(x, y int, dark bool) {
	i := y*p.size + x
	p.fn[i] = true
	p.dark[i] = dark
}

// vplan creates the plan for the given version.
func vplan(v Version) *plan {
	siz := v.Size()
	p := &plan{
		version: v,
		size:    siz,
		fn:      make([]bool, siz*siz),
		dark:    make([]bool, siz*siz),
	}

	// Timing patterns (partly overwritten by boxes).
	for i := 0; i < siz; i++ {
		p.set(6, i, i%2 == 0)
		p.set(i, 6, i%2 == 0)
	}

	// Position boxes with separators.
	p.finder(3, 3)
	p.finder(siz-4, 3)
	p.finder(3, siz-4)

	// Alignment boxes, except where they would overlap position boxes.
	pos := v.alignPos()
	last := len(pos) - 1
	for i, x := range pos {
		for j, y := range pos {
			if i == 0 && (j == 0 || j == last) || i == last && j == 0 {
				continue
			}
			p.alignBox(x, y)
		}
	}

	// Reserve the format area.  Its bits depend on level and mask.
	drawFormat(p.set, siz, 0)

	// Version pattern.
	if v >= 7 {
		bits := versionBits(v)
		for i := 0; i < 18; i++ {
			b := bits>>uint(i)&1 != 0
			a, c := siz-11+i%3, i/3
			p.set(a, c, b)
			p.set(c, a, b)
		}
	}

	for m := range p.pattern {
		pat := make([]bool, siz*siz)
		for y := 0; y < siz; y++ {
			for x := 0; x < siz; x++ {
				if i := y*siz + x; !p.fn[i] {
					pat[i] = maskBit(m, x, y)
				}
			}
		}
		p.pattern[m] = pat
	}
	return p
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// finder draws a position box centred at x, y, including the light
// separator, clipped to the symbol.
func (p *plan) finder(x, y int) {
	for dy := -4; dy <= 4; dy++ {
		for dx := -4; dx <= 4; dx++ {
			xx, yy := x+dx, y+dy
			if 0 <= xx && xx < p.size && 0 <= yy && yy < p.size {
				d := max(abs(dx), abs(dy))
				p.set(xx, yy, d != 2 && d != 4)
			}
		}
	}
}

// alignBox draws an alignment box centred at x, y.
func (p *plan) alignBox(x, y int) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			p.set(x+dx, y+dy, max(abs(dx), abs(dy)) != 1)
		}
	}
}

// formatBits returns the 15 bit format information for level l and
// mask pattern mask, BCH protected and masked.
func formatBits(l Level, mask int) uint32 {
	data := l.formatBits()<<3 | uint32(mask)
	rem := data
	for i := 0; i < 10; i++ {
		rem = rem<<1 ^ rem>>9*0x537
	}
	return (data<<10 | rem) ^ 0x5412
}

// versionBits returns the 18 bit BCH protected version information.
func versionBits(v Version) uint32 {
	rem := uint32(v)
	for i := 0; i < 12; i++ {
		rem = rem<<1 ^ rem>>11*0x1f25
	}
	return uint32(v)<<12 | rem
}

// drawFormat draws both copies of the format bits fb and the dark
// module using set.
func drawFormat(set func(x, y int, dark bool), siz int, fb uint32) {
	bit := func(i int) bool { return fb>>uint(i)&1 != 0 }
	// Around the top left position box.
	for i := 0; i < 6; i++ {
		set(8, i, bit(i))
	}
	set(8, 7, bit(6))
	set(8, 8, bit(7))
	set(7, 8, bit(8))
	for i := 9; i < 15; i++ {
		set(14-i, 8, bit(i))
	}
	// Split between the other two.
	for i := 0; i < 8; i++ {
		set(siz-1-i, 8, bit(i))
	}
	for i := 8; i < 15; i++ {
		set(8, siz-15+i, bit(i))
	}
	// One lonely black pixel
	set(8, siz-8, true)
}
