// Copyright 2026 The framescale Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"fmt"
	"math"
)

// snapEpsilon is how close a window endpoint must be to an integer to be
// treated as that integer.
const snapEpsilon = 1e-9

// CoverageEntry is the part of one source column (or row) that falls inside
// one output column's (or row's) window.
type CoverageEntry struct {
	Index  int
	Weight float32
}

// Group is the range Entries[I:J] covering one output index, and the length
// of that output's window in source coordinates.
type Group struct {
	I, J   int32
	Length float32
}

// AxisTable measures how source samples along one axis are distributed over
// output samples.
type AxisTable struct {
	Groups  []Group
	Entries []CoverageEntry
}

// Coverage returns the entries covering output index i.
func (a *AxisTable) Coverage(i int) []CoverageEntry {
	g := a.Groups[i]
	return a.Entries[g.I:g.J]
}

// WindowLength returns the window length of output index i.
func (a *AxisTable) WindowLength(i int) float32 {
	return a.Groups[i].Length
}

// BuildAxisCoverage returns the table that distributes sourceLength source
// samples over outputLength output samples, each output owning a window of
// scaleFactor source samples.
func BuildAxisCoverage(scaleFactor float64, sourceLength, outputLength int) (*AxisTable, error) {
	if err := checkAxis(scaleFactor, sourceLength, outputLength); err != nil {
		return nil, err
	}
	a := &AxisTable{
		Groups:  make([]Group, outputLength),
		Entries: make([]CoverageEntry, 0, outputLength*maxEntries(scaleFactor)),
	}
	start := 0.0
	for t := range a.Groups {
		end := windowEnd(scaleFactor, sourceLength, outputLength, t)
		i := int32(len(a.Entries))
		a.Entries = appendCoverage(a.Entries, start, end)
		a.Groups[t] = Group{
			I:      i,
			J:      int32(len(a.Entries)),
			Length: float32(end - start),
		}
		start = end
	}
	return a, nil
}

func checkAxis(scaleFactor float64, sourceLength, outputLength int) error {
	if sourceLength <= 0 || outputLength <= 0 {
		return fmt.Errorf("%w: axis %d -> %d", ErrInvalidDimensions, sourceLength, outputLength)
	}
	if scaleFactor < 1 || outputLength > sourceLength {
		return fmt.Errorf("%w: axis %d -> %d", ErrUnsupportedDirection, sourceLength, outputLength)
	}
	span := scaleFactor * float64(outputLength)
	if math.Abs(span-float64(sourceLength)) > 1e-6*float64(sourceLength) {
		return fmt.Errorf("%w: %d windows of %g do not span %d", ErrInvalidDimensions, outputLength, scaleFactor, sourceLength)
	}
	return nil
}

// maxEntries is an upper bound on the entries in one window of length
// scaleFactor: a window can touch one partial sample at each end.
func maxEntries(scaleFactor float64) int {
	return int(math.Ceil(scaleFactor)) + 1
}

// windowEnd returns the end of output index t's window. Ends are products,
// not running sums, so rounding does not drift along the axis. The last
// window ends exactly at sourceLength.
func windowEnd(scaleFactor float64, sourceLength, outputLength, t int) float64 {
	if t >= outputLength-1 {
		return float64(sourceLength)
	}
	return min(snap(float64(t+1)*scaleFactor), float64(sourceLength))
}

// windowStart returns the start of output index t's window, equal to the end
// of window t-1.
func windowStart(scaleFactor float64, sourceLength, outputLength, t int) float64 {
	if t == 0 {
		return 0
	}
	return windowEnd(scaleFactor, sourceLength, outputLength, t-1)
}

func snap(x float64) float64 {
	if r := math.Round(x); math.Abs(x-r) < snapEpsilon {
		return r
	}
	return x
}

// appendCoverage splits [start, end) at every integer boundary and appends
// one entry per piece.
func appendCoverage(dst []CoverageEntry, start, end float64) []CoverageEntry {
	for x := start; x < end; {
		next := math.Floor(x) + 1
		if next > end {
			next = end
		}
		dst = append(dst, CoverageEntry{
			Index:  int(x),
			Weight: float32(next - x),
		})
		x = next
	}
	return dst
}
