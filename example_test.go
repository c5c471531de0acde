// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr_test

import (
	"fmt"
	"log"
	"os"

	"github.com/unixdj/qrgen"
)

func ExampleEncodeText() {
	c, err := qr.EncodeText("HELLO WORLD", qr.L)
	if err != nil {
		log.Fatalln(err)
	}
	// The level is raised as far as the data fits in version 1.
	fmt.Printf("version %d, level %v, %dx%d\n", c.Version, c.Level,
		c.Size, c.Size)
	// Output: version 1, level Q, 21x21
}

func ExampleEncodeOptimal() {
	c, err := qr.EncodeOptimal("Golang 123456789012345", qr.M, qr.UTF8ECI,
		&qr.Options{Mask: 2, ForceMask: true, MaxVersion: 10})
	if err != nil {
		log.Fatalln(err)
	}
	fmt.Printf("version %d, level %v, mask %d\n", c.Version, c.Level, c.Mask)
	// Output: version 2, level Q, mask 2
}

func ExampleCode_String() {
	c, err := qr.EncodeText("https://github.com/unixdj/qrgen", qr.M)
	if err != nil {
		log.Fatalln(err)
	}
	c.Reverse = true // for terminals with dark backgrounds
	fmt.Fprint(os.Stdout, c)
}
