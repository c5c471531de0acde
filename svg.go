// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"bufio"
	"bytes"
	"fmt"
	"image/color"
	"io"
)

const svgHeader = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">
<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="%d" height="%d" viewBox="0 0 %d %d" stroke="none">
`

// EncodeSVG writes an SVG image displaying the code to w.  The view
// box has one unit per QR pixel, quiet zone included; width and height
// are c.Scale times that.  Black pixels are drawn as a single path of
// horizontal runs over a background rectangle.
func (c *Code) EncodeSVG(w io.Writer) error {
	if w == nil || !c.isValid() {
		return ErrArgs
	}
	bg, fg := color.Color(color.White), color.Color(color.Black)
	if c.Palette != nil {
		bg, fg = c.Palette[0], c.Palette[1]
	}
	if c.Reverse {
		bg, fg = fg, bg
	}
	n, px := c.Size+c.Border*2, c.pixels()
	b := bufio.NewWriter(w)
	fmt.Fprintf(b, svgHeader, px, px, n, n)
	fmt.Fprintf(b, "\t<rect width=\"100%%\" height=\"100%%\" %s/>\n", svgFill(bg))
	b.WriteString("\t<path d=\"")
	sep := ""
	for y := 0; y < c.Size; y++ {
		for x := 0; x < c.Size; {
			if !c.Black(x, y) {
				x++
				continue
			}
			s := x
			for x < c.Size && c.Black(x, y) {
				x++
			}
			fmt.Fprintf(b, "%sM%d,%dh%dv1h-%dz", sep,
				s+c.Border, y+c.Border, x-s, x-s)
			sep = " "
		}
	}
	fmt.Fprintf(b, "\" %s/>\n</svg>\n", svgFill(fg))
	return b.Flush()
}

// SVG returns an SVG image displaying the code, or nil if the code
// cannot be rendered.
func (c *Code) SVG() []byte {
	var b bytes.Buffer
	if err := c.EncodeSVG(&b); err != nil {
		return nil
	}
	return b.Bytes()
}

// svgFill returns fill attributes for col.
func svgFill(col color.Color) string {
	n := color.NRGBAModel.Convert(col).(color.NRGBA)
	s := fmt.Sprintf(`fill="#%02x%02x%02x"`, n.R, n.G, n.B)
	if n.A != 0xff {
		s += fmt.Sprintf(` fill-opacity="%.3g"`, float64(n.A)/0xff)
	}
	return s
}
