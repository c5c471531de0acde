// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import "strings"

// Half blocks indexed by top | bottom<<1.
var blocks = [4]string{" ", "▀", "▄", "█"}

// String returns the code drawn with Unicode block characters, two QR
// pixels per character cell vertically, with a quiet zone of c.Border
// QR pixels.  Black pixels are drawn as filled blocks unless
// c.Reverse is set.
func (c *Code) String() string {
	bord := max(c.Border, 0)
	pix := c.Size + bord*2
	var b strings.Builder
	b.Grow((pix*len("█") + 1) * (pix + 1) / 2)
	for y := -bord; y < c.Size+bord; y += 2 {
		for x := -bord; x < c.Size+bord; x++ {
			i := c.pixel(x, y, bord) | c.pixel(x, y+1, bord)<<1
			b.WriteString(blocks[i])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// pixel returns 1 if the pixel at (x, y) is drawn in the foreground.
// Rows below the quiet zone, added to fill the last line, are
// background.
func (c *Code) pixel(x, y, bord int) int {
	if y >= c.Size+bord || c.Black(x, y) == c.Reverse {
		return 0
	}
	return 1
}
