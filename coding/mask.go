// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "golang.org/x/sync/errgroup"

// AutoMask requests the mask pattern with the lowest penalty.
const AutoMask = -1

// Mask patterns:
//
//	0: ▄▀▄▀▄▀▄▀▄▀▄▀  1: ▄▄▄▄▄▄▄▄▄▄▄▄  2:  ██ ██ ██ ██  3: ▄█▀▄█▀▄█▀▄█▀
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     ▀▄█▀▄█▀▄█▀▄█
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     █▀▄█▀▄█▀▄█▀▄
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     ▄█▀▄█▀▄█▀▄█▀
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     ▀▄█▀▄█▀▄█▀▄█
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     █▀▄█▀▄█▀▄█▀▄
//
//	4:    ███   ███  5:  ▄▄▄▄▄ ▄▄▄▄▄  6:    ▄▄▄   ▄▄▄  7: ▄█▄▀ ▀▄█▄▀ ▀
//	   ███   ███         █▀▄▀█ █▀▄▀█      ▄▀▄ █ ▄▀▄ █     ▄▀█▀▄ ▄▀█▀▄
//	      ███   ███      ██▄██ ██▄██      █▄▄▀  █▄▄▀      ▄  ▀██▄  ▀██
//	   ███   ███         ▄▄▄▄▄ ▄▄▄▄▄        ▄▄▄   ▄▄▄     ▄█▄▀ ▀▄█▄▀ ▀
//	      ███   ███      █▀▄▀█ █▀▄▀█      ▄▀▄ █ ▄▀▄ █     ▄▀█▀▄ ▄▀█▀▄
//	   ███   ███         ██▄██ ██▄██      █▄▄▀  █▄▄▀      ▄  ▀██▄  ▀██
func maskBit(mask, x, y int) bool {
	switch mask {
	case 0:
		return (x+y)%2 == 0
	case 1:
		return y%2 == 0
	case 2:
		return x%3 == 0
	case 3:
		return (x+y)%3 == 0
	case 4:
		return (x/3+y/2)%2 == 0
	case 5:
		return x*y%2+x*y%3 == 0
	case 6:
		return (x*y%2+x*y%3)%2 == 0
	case 7:
		return ((x+y)%2+x*y%3)%2 == 0
	}
	panic("qr: invalid mask")
}

// A matrix is a module grid under construction.
type matrix struct {
	size int
	dark []bool
	fn   []bool // shared with the plan
}

func newMatrix(p *plan) *matrix {
	m := &matrix{size: p.size, dark: make([]bool, len(p.dark)), fn: p.fn}
	copy(m.dark, p.dark)
	return m
}

func (m *matrix) clone() *matrix {
	c := *m
	c.dark = append([]bool(nil), m.dark...)
	return &c
}

func (m *matrix) setDark(x, y int, dark bool) { m.dark[y*m.size+x] = dark }

// applyMask xors the mask pattern into the non-function modules.
// Applying a mask twice restores the grid.
func (m *matrix) applyMask(p *plan, mask int) {
	for i, b := range p.pattern[mask] {
		if b {
			m.dark[i] = !m.dark[i]
		}
	}
}

// place writes the bits of codewords into the non-function modules in
// zigzag scan order.  Modules left over are not touched.
func (m *matrix) place(codewords []byte) {
	siz := m.size
	i, n := 0, len(codewords)*8
	for right := siz - 1; right >= 1; right -= 2 {
		if right == 6 { // vertical timing strip
			right = 5
		}
		upward := (right+1)&2 == 0
		for vert := 0; vert < siz; vert++ {
			y := vert
			if upward {
				y = siz - 1 - vert
			}
			for x := right; x > right-2; x-- {
				if off := y*siz + x; !m.fn[off] && i < n {
					m.dark[off] = codewords[i>>3]>>(7&^i)&1 != 0
					i++
				}
			}
		}
	}
}

// chooseMask returns the mask pattern giving the lowest penalty with
// the format bits for l drawn, trying the masks in order.
func (m *matrix) chooseMask(p *plan, l Level) int {
	best, low := 0, -1
	for mask := range p.pattern {
		m.applyMask(p, mask)
		drawFormat(m.setDark, m.size, formatBits(l, mask))
		if pen := penalty(m.dark, m.size); low < 0 || pen < low {
			best, low = mask, pen
		}
		m.applyMask(p, mask)
	}
	return best
}

// chooseMaskParallel is like chooseMask but scores the masks
// concurrently, each on its own copy of m.
func (m *matrix) chooseMaskParallel(p *plan, l Level) int {
	var pen [8]int
	var g errgroup.Group
	for mask := range pen {
		g.Go(func() error {
			c := m.clone()
			c.applyMask(p, mask)
			drawFormat(c.setDark, c.size, formatBits(l, mask))
			pen[mask] = penalty(c.dark, c.size)
			return nil
		})
	}
	g.Wait()
	best := 0
	for mask, v := range pen {
		if v < pen[best] {
			best = mask
		}
	}
	return best
}

// Penalty weights.
const (
	penaltyN1 = 3  // run of 5, plus 1 per extra module
	penaltyN2 = 3  // 2x2 box
	penaltyN3 = 40 // finder-like pattern
	penaltyN4 = 10 // each 5% of imbalance beyond the first
)

// penalty returns the total penalty for a size×size grid of modules
// stored by rows.
//
// https://www.nayuki.io/page/creating-a-qr-code-step-by-step
func penalty(dark []bool, size int) int {
	p := 0
	// rows
	for y := 0; y < size; y++ {
		p += linePenalty(dark[y*size : (y+1)*size])
	}
	// columns
	col := make([]bool, size)
	for x := 0; x < size; x++ {
		for y := range col {
			col[y] = dark[y*size+x]
		}
		p += linePenalty(col)
	}
	// 2x2 boxes
	for y := 0; y+1 < size; y++ {
		r0, r1 := dark[y*size:(y+1)*size], dark[(y+1)*size:(y+2)*size]
		for x := 0; x+1 < size; x++ {
			if c := r0[x]; c == r0[x+1] && c == r1[x] && c == r1[x+1] {
				p += penaltyN2
			}
		}
	}
	// balance
	n := 0
	for _, c := range dark {
		if c {
			n++
		}
	}
	total := len(dark)
	k := (abs(n*20-total*10)+total-1)/total - 1
	return p + k*penaltyN4
}

// linePenalty returns the run and finder-like pattern penalties of a
// row or column.
func linePenalty(line []bool) int {
	size := len(line)
	p := 0
	var h runHistory
	colour, run := false, 0
	for _, c := range line {
		if c == colour {
			run++
			if run == 5 {
				p += penaltyN1
			} else if run > 5 {
				p++
			}
		} else {
			h.add(run, size)
			if !colour {
				p += h.count() * penaltyN3
			}
			colour, run = c, 1
		}
	}
	return p + h.terminate(colour, run, size)*penaltyN3
}

// runHistory holds the lengths of the last 7 runs, most recent
// first.  The light border before the line counts as a run of size
// modules added to the first light run.
type runHistory [7]int

func (h *runHistory) add(run, size int) {
	if h[0] == 0 {
		run += size
	}
	copy(h[1:], h[:len(h)-1])
	h[0] = run
}

// count returns the number of finder-like patterns, 1:1:3:1:1 dark
// runs with 4 light modules on either side, ending at h[1].
func (h *runHistory) count() int {
	n := h[1]
	core := n > 0 && h[2] == n && h[3] == n*3 && h[4] == n && h[5] == n
	c := 0
	if core && h[0] >= n*4 && h[6] >= n {
		c++
	}
	if core && h[6] >= n*4 && h[0] >= n {
		c++
	}
	return c
}

// terminate adds the final run and the light border after the line
// and returns the finder-like pattern count.
func (h *runHistory) terminate(colour bool, run, size int) int {
	if colour {
		h.add(run, size)
		run = 0
	}
	h.add(run+size, size)
	return h.count()
}
