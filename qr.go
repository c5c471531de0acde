// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package qr encodes QR codes.

EncodeText and EncodeBinary encode text or binary data as a single
segment using default options.  Encode and EncodeSegments take
Options.  EncodeOptimal splits text into segments of different modes
to produce the smallest code.

The resulting Code can be rendered as an image, a PNG, PBM or SVG file, or
text made of Unicode block characters.
*/
package qr // import "github.com/unixdj/qrgen"

import (
	"image/color"

	"github.com/unixdj/qrgen/coding"
	"github.com/unixdj/qrgen/split"
)

// A Level denotes a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level = coding.Level

const (
	L = coding.L // 20% redundant
	M = coding.M // 38% redundant
	Q = coding.Q // 55% redundant
	H = coding.H // 65% redundant
)

// AutoMask as a forced mask requests the pattern with the lowest
// penalty.
const AutoMask = coding.AutoMask

// Extended Channel Interpretation assignment numbers.
const (
	Latin1ECI   = split.Latin1ECI   // ISO 8859-1
	ShiftJISECI = split.ShiftJISECI // Shift JIS
	UTF8ECI     = split.UTF8ECI     // UTF-8
	BinaryECI   = split.BinaryECI   // 8-bit binary data
)

// Options control symbol construction.  A nil *Options is the same as
// DefaultOptions.
type Options struct {
	// Versions tried, smallest first.  Zero means 1 or 40,
	// respectively.
	MinVersion, MaxVersion int

	// Mask is the mask pattern, 0 to 7, used if ForceMask is set.
	// Otherwise the pattern with the lowest penalty is chosen.
	Mask      int
	ForceMask bool

	// NoBoost disables raising the error correction level when
	// the data fits in the same version at a higher level.
	NoBoost bool

	// Parallel scores the mask patterns concurrently.
	Parallel bool
}

// DefaultOptions allows all versions, chooses the mask pattern and
// boosts the error correction level.
var DefaultOptions = Options{
	MinVersion: int(coding.MinVersion),
	MaxVersion: int(coding.MaxVersion),
}

func (o *Options) encoder() coding.Encoder {
	if o == nil {
		o = &DefaultOptions
	}
	e := coding.Encoder{
		MinVersion: coding.Version(o.MinVersion),
		MaxVersion: coding.Version(o.MaxVersion),
		Mask:       AutoMask,
		Boost:      !o.NoBoost,
		Parallel:   o.Parallel,
	}
	if e.MinVersion == 0 {
		e.MinVersion = coding.MinVersion
	}
	if e.MaxVersion == 0 {
		e.MaxVersion = coding.MaxVersion
	}
	if o.ForceMask {
		e.Mask = o.Mask
	}
	return e
}

// A Code is a square pixel grid.
// It renders as an image, PNG, PBM, SVG or text.
type Code struct {
	Bitmap  []byte          // 1 is black, 0 is white
	Size    int             // number of pixels on a side
	Stride  int             // number of bytes per row
	Scale   int             // number of image pixels per QR pixel
	Border  int             // quiet zone width in QR pixels
	Reverse bool            // swap black and white
	Palette *[2]color.Color // background and foreground colours
	Version int             // QR version
	Level   Level           // error correction level
	Mask    int             // mask pattern
}

func newCode(cc *coding.Code) *Code {
	return &Code{
		Bitmap:  cc.Bitmap,
		Size:    cc.Size,
		Stride:  cc.Stride,
		Scale:   8,
		Border:  4,
		Version: int(cc.Version),
		Level:   cc.Level,
		Mask:    cc.Mask,
	}
}

// Black returns true if the pixel at (x,y) is black.  Pixels outside
// the code are white.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.Size && 0 <= y && y < c.Size &&
		c.Bitmap[y*c.Stride+x/8]&(1<<uint(7-x&7)) != 0
}

// EncodeSegments returns a QR code holding segs at error correction
// level l or higher.
func EncodeSegments(segs []coding.Segment, l Level, opts *Options) (*Code, error) {
	e := opts.encoder()
	cc, err := e.Encode(l, segs...)
	if err != nil {
		return nil, err
	}
	return newCode(cc), nil
}

// Encode returns a QR code holding text in a single segment: numeric
// if text is all digits, alphanumeric if possible, else UTF-8 in byte
// mode.
func Encode(text string, l Level, opts *Options) (*Code, error) {
	return EncodeSegments(coding.MakeSegments(text), l, opts)
}

// EncodeText is like Encode with default options.
func EncodeText(text string, l Level) (*Code, error) {
	return Encode(text, l, nil)
}

// EncodeBinary returns a QR code holding data in a byte mode segment.
func EncodeBinary(data []byte, l Level, opts *Options) (*Code, error) {
	return EncodeSegments([]coding.Segment{coding.MakeBytes(data)}, l, opts)
}

// EncodeOptimal returns the smallest QR code holding text, split into
// segments of different modes.  If eci is not negative, the segments
// are preceded by an ECI segment with that assignment number.
func EncodeOptimal(text string, l Level, eci int, opts *Options) (*Code, error) {
	e := opts.encoder()
	segs, v, err := split.Text(text, eci, l, e.MinVersion, e.MaxVersion)
	if err != nil {
		return nil, err
	}
	e.MinVersion = v
	cc, err := e.Encode(l, segs...)
	if err != nil {
		return nil, err
	}
	return newCode(cc), nil
}
