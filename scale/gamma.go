// Copyright 2026 The framescale Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"math"
	"sync"
)

const (
	// Gamma is the exponent used to expand stored intensities to linear
	// light.
	Gamma = 2.2

	// K is the number of quantization steps between linear 0 and 1 in the
	// compress table. It is fine enough that every stored intensity expands
	// into a slot that compresses back to it, 1 included.
	K = 1 << 18

	// guard is the number of compress slots past K. Accumulated rounding in
	// the resampler can land slightly above K.
	guard = 24
)

// GammaTables holds the lookup tables between 8-bit stored intensity and
// linear light.
type GammaTables struct {
	// Expand maps a stored intensity to linear light in [0, 1].
	Expand [256]float32
	// Compress maps a linear value quantized to [0, K] back to a stored
	// intensity. Slots past K hold 255.
	Compress [K + 1 + guard]uint8
}

// BuildGammaTables computes fresh gamma tables. Most callers want the shared
// tables returned by Tables.
func BuildGammaTables() *GammaTables {
	g := new(GammaTables)
	for i := range g.Expand {
		g.Expand[i] = float32(math.Pow(float64(i)/255, Gamma))
	}
	for j := 0; j <= K; j++ {
		g.Compress[j] = uint8(math.Pow(float64(j)/K, 1/Gamma)*255 + 0.5)
	}
	for j := K + 1; j < len(g.Compress); j++ {
		g.Compress[j] = 255
	}
	return g
}

var (
	tablesOnce sync.Once
	tables     *GammaTables
)

// Tables returns the process-wide gamma tables, building them on first use.
// The result must not be modified.
func Tables() *GammaTables {
	tablesOnce.Do(func() {
		tables = BuildGammaTables()
	})
	return tables
}

// CompressLinear maps a linear-light value to a stored intensity. Values
// outside [0, 1] saturate.
func (g *GammaTables) CompressLinear(v float32) uint8 {
	i := int(v*K + 0.5)
	if i < 0 {
		i = 0
	} else if i >= len(g.Compress) {
		i = len(g.Compress) - 1
	}
	return g.Compress[i]
}
