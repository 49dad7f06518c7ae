// Copyright 2026 The framescale Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"testing"
)

func TestGammaMonotonic(t *testing.T) {
	g := BuildGammaTables()
	for i := 1; i < len(g.Expand); i++ {
		if g.Expand[i] <= g.Expand[i-1] {
			t.Fatalf("Expand[%d] = %v, not above Expand[%d] = %v", i, g.Expand[i], i-1, g.Expand[i-1])
		}
	}
	for j := 1; j < len(g.Compress); j++ {
		if g.Compress[j] < g.Compress[j-1] {
			t.Fatalf("Compress[%d] = %d, below Compress[%d] = %d", j, g.Compress[j], j-1, g.Compress[j-1])
		}
	}
	if got, want := g.Expand[0], float32(0); got != want {
		t.Errorf("Expand[0]: got %v, want %v", got, want)
	}
	if got, want := g.Expand[255], float32(1); got != want {
		t.Errorf("Expand[255]: got %v, want %v", got, want)
	}
}

func TestGammaGuard(t *testing.T) {
	g := BuildGammaTables()
	if got, want := g.Compress[K], uint8(255); got != want {
		t.Errorf("Compress[K]: got %d, want %d", got, want)
	}
	for j := K + 1; j < len(g.Compress); j++ {
		if g.Compress[j] != 255 {
			t.Errorf("Compress[%d]: got %d, want 255", j, g.Compress[j])
		}
	}
	testCases := []struct {
		v    float32
		want uint8
	}{
		{-0.5, 0},
		{0, 0},
		{1, 255},
		{1.0001, 255},
		{2, 255},
	}
	for _, tc := range testCases {
		if got := g.CompressLinear(tc.v); got != tc.want {
			t.Errorf("CompressLinear(%v): got %d, want %d", tc.v, got, tc.want)
		}
	}
}

func TestGammaRoundTrip(t *testing.T) {
	g := BuildGammaTables()
	for v := 0; v < 256; v++ {
		if got := g.CompressLinear(g.Expand[v]); int(got) != v {
			t.Errorf("v=%d: round trip gave %d", v, got)
		}
	}
}

func TestCompressCoversAllValues(t *testing.T) {
	g := BuildGammaTables()
	var seen [256]bool
	for _, c := range g.Compress {
		seen[c] = true
	}
	for v, ok := range seen {
		if !ok {
			t.Errorf("no Compress slot yields %d", v)
		}
	}
}

func TestTablesShared(t *testing.T) {
	if Tables() != Tables() {
		t.Fatal("Tables returned different values")
	}
	if got, want := *Tables(), *BuildGammaTables(); got != want {
		t.Error("shared tables differ from freshly built ones")
	}
}
