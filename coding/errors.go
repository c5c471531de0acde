// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalid is wrapped by all errors reporting an argument outside
// its domain.
var ErrInvalid = errors.New("qr: invalid argument")

var (
	ErrVersion = fmt.Errorf("%w: version", ErrInvalid)
	ErrLevel   = fmt.Errorf("%w: level", ErrInvalid)
	ErrMask    = fmt.Errorf("%w: mask", ErrInvalid)
	ErrECI     = fmt.Errorf("%w: eci assignment number", ErrInvalid)
	ErrLength  = fmt.Errorf("%w: codeword count", ErrInvalid)
)

// SegmentError reports text not encodable in the segment mode.
type SegmentError struct {
	Mode Mode
	Text string
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("qr: non-%s string %s", e.Mode,
		strconv.QuoteToGraphic(e.Text))
}

// DataTooLongError reports data not fitting in any allowed version.
// Required is -1 if a segment's character count overflows its count
// field in every allowed version.
type DataTooLongError struct {
	Required int // required data bits
	Capacity int // data bits available in the largest allowed version
}

func (e *DataTooLongError) Error() string {
	if e.Required < 0 {
		return fmt.Sprintf("qr: segment too long for %d-bit code",
			e.Capacity)
	}
	return fmt.Sprintf("qr: cannot encode %d bits into %d-bit code",
		e.Required, e.Capacity)
}
