// Copyright 2026 The framescale Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/tinyface/framescale/frame"
)

type config struct {
	OutWidth, OutHeight int
	RawWidth, RawHeight int
	Format              frame.Format
	OutDir              string
	Jobs                int
}

func (c config) validate() error {
	if c.OutWidth <= 0 || c.OutHeight <= 0 {
		return fmt.Errorf("invalid output size %dx%d", c.OutWidth, c.OutHeight)
	}
	if c.RawWidth <= 0 || c.RawHeight <= 0 {
		return fmt.Errorf("invalid raw frame size %dx%d", c.RawWidth, c.RawHeight)
	}
	if c.Jobs <= 0 {
		return fmt.Errorf("jobs must be positive, got %d", c.Jobs)
	}
	if _, err := frame.ParseFormat(string(c.Format)); err != nil {
		return err
	}
	return nil
}
