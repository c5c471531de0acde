// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
)

var (
	ErrArgs       = errors.New("qr: invalid arguments")
	ErrLargeImage = errors.New("qr: image too large")
)

// maxPixels limits the side of rendered images.
const maxPixels = 32767 * 8

// isValid reports whether c can be rendered.
func (c *Code) isValid() bool {
	return c != nil && c.Size > 0 && c.Stride == (c.Size+7)/8 &&
		len(c.Bitmap) == c.Size*c.Stride &&
		c.Scale > 0 && c.Border >= 0
}

// pixels returns the side of the rendered image in pixels.
func (c *Code) pixels() int { return c.Scale * (c.Size + c.Border*2) }

// Image returns an Image displaying the code with c.Scale pixels per
// QR pixel and a quiet zone of c.Border QR pixels.  With c.Palette set
// the image is paletted, otherwise gray.
func (c *Code) Image() image.Image {
	return &codeImage{c}
}

// codeImage implements image.Image
type codeImage struct {
	*Code
}

var (
	whiteColor color.Color = color.Gray{0xFF}
	blackColor color.Color = color.Gray{0x00}
)

func (c *codeImage) Bounds() image.Rectangle {
	d := c.pixels()
	return image.Rect(0, 0, d, d)
}

// module reports whether image pixel (x, y) shows a foreground module.
func (c *codeImage) module(x, y int) bool {
	return c.Black(x/c.Scale-c.Border, y/c.Scale-c.Border) != c.Reverse
}

func (c *codeImage) At(x, y int) color.Color {
	fg := c.module(x, y)
	if c.Palette != nil {
		if fg {
			return c.Palette[1]
		}
		return c.Palette[0]
	}
	if fg {
		return blackColor
	}
	return whiteColor
}

func (c *codeImage) ColorModel() color.Model {
	if c.Palette != nil {
		return color.Palette(c.Palette[:])
	}
	return color.GrayModel
}

// EncodePNG writes a PNG image displaying the code to w.
func (c *Code) EncodePNG(w io.Writer) error {
	if w == nil || !c.isValid() {
		return ErrArgs
	}
	if c.pixels() > maxPixels {
		return ErrLargeImage
	}
	return png.Encode(w, c.Image())
}

// PNG returns a PNG image displaying the code, or nil if the code
// cannot be rendered.
func (c *Code) PNG() []byte {
	var b bytes.Buffer
	if err := c.EncodePNG(&b); err != nil {
		return nil
	}
	return b.Bytes()
}
