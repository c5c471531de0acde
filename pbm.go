// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"bufio"
	"io"
	"strconv"
)

// EncodePBM writes a Portable Bit Map image displaying the code to w,
// for use with netpbm.  EncodePBM disregards c.Palette, as other PNM
// formats are not supported.
func (c *Code) EncodePBM(w io.Writer) error {
	if w == nil || !c.isValid() {
		return ErrArgs
	}
	length := c.pixels()
	if length > maxPixels {
		return ErrLargeImage
	}
	b := bufio.NewWriter(w)
	ls := strconv.Itoa(length)
	if _, err := b.WriteString("P4\n" + ls + " " + ls + "\n"); err != nil {
		return err
	}
	// In PBM 1 is black.
	var white byte
	if c.Reverse {
		white = 0xff
	}
	row := make([]byte, (length+7)/8)
	for y := -c.Border; y < c.Size+c.Border; y++ {
		pbmRow(row, c, y, white)
		for i := 0; i < c.Scale; i++ {
			if _, err := b.Write(row); err != nil {
				return err
			}
		}
	}
	return b.Flush()
}

// pbmRow encodes row y of c, quiet zone included, in PBM format.
// Padding bits at the end of the row are left clear.
func pbmRow(row []byte, c *Code, y int, white byte) {
	clear(row)
	j := 0
	for x := -c.Border; x < c.Size+c.Border; x++ {
		var bit byte
		if c.Black(x, y) {
			bit = 1
		}
		bit ^= white & 1
		for i := 0; i < c.Scale; i, j = i+1, j+1 {
			row[j>>3] |= bit << (7 &^ j)
		}
	}
}
