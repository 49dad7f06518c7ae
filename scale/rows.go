// Copyright 2026 The framescale Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import "math"

// rowBand is the contiguous run of source rows [first, last] read for one
// output row, and that row's vertical window in source coordinates.
type rowBand struct {
	first, last int
	start, end  float64
}

// selectRows picks the source rows for output row t. Windows end at
// products of the scale factor clipped to sourceLength, so the band never
// reaches past the last source row and no row needs shifting or truncating.
func selectRows(scaleFactor float64, sourceLength, outputLength, t int) rowBand {
	b := rowBand{
		start: windowStart(scaleFactor, sourceLength, outputLength, t),
		end:   windowEnd(scaleFactor, sourceLength, outputLength, t),
	}
	b.first = int(b.start)
	b.last = int(math.Ceil(b.end)) - 1
	return b
}
