// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package split_test

import (
	"fmt"
	"log"

	"github.com/unixdj/qrgen/coding"
	"github.com/unixdj/qrgen/split"
)

func ExampleSplit() {
	seg, v, err := split.Split("https://example.com/ABCDEFGHIJ0123456789012345",
		split.M, 1, 40)
	if err != nil {
		log.Fatalln(err)
	}
	fmt.Printf("version %d, %d segments, %d bits:\n", v, len(seg),
		coding.TotalBits(seg, v))
	for _, s := range seg {
		fmt.Printf("  %-12s %2d chars %3d bits\n", s.Mode, s.Count, s.Len())
	}

	// To encode the segments above:
	c, err := coding.EncodeSegments(seg, split.M, v, v, coding.AutoMask, false)
	if err != nil {
		log.Fatalln(err)
	}
	fmt.Printf("%dx%d\n", c.Size, c.Size)
	// Output:
	// version 3, 3 segments, 306 bits:
	//   byte         19 chars 152 bits
	//   alphanumeric 11 chars  61 bits
	//   numeric      16 chars  54 bits
	// 29x29
}

func ExampleText() {
	seg, v, err := split.Text("点茗 123", split.ShiftJISECI, split.L, 1, 40)
	if err != nil {
		log.Fatalln(err)
	}
	fmt.Println("version", v)
	for _, s := range seg {
		fmt.Println(s.Mode, s.Count)
	}
	// Output:
	// version 1
	// eci 0
	// kanji 2
	// alphanumeric 4
}
