// Copyright 2026 The framescale Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scale implements a gamma-correct area-averaging (box filter)
// downscaler for single-channel 8-bit images.
//
// Each output pixel is the average, in linear light, of every source pixel
// its window overlaps, weighted by the overlapped area. Upscaling is not
// supported on either axis.
package scale

import (
	"errors"
	"fmt"
	"image"
	"sync"
)

var (
	// ErrUnsupportedDirection is returned when an axis would need
	// upscaling.
	ErrUnsupportedDirection = errors.New("scale: upscaling is not supported")
	// ErrInvalidDimensions is returned for non-positive or inconsistent
	// image dimensions.
	ErrInvalidDimensions = errors.New("scale: invalid dimensions")
	// ErrShortBuffer is returned when a pixel buffer is smaller than its
	// dimensions require.
	ErrShortBuffer = errors.New("scale: short buffer")
)

// Downscale scales the sw×sh image in src down to the dw×dh image in dst.
// Both buffers are row-major with one byte per pixel and no padding.
//
// On error, dst is left untouched.
func Downscale(dst []byte, dw, dh int, src []byte, sw, sh int) error {
	z, err := NewScaler(dw, dh, sw, sh)
	if err != nil {
		return err
	}
	return z.Scale(dst, src)
}

// Scaler downscales images of one fixed source size to one fixed destination
// size. The horizontal coverage is computed once, in NewScaler.
//
// A Scaler is safe to use concurrently.
type Scaler struct {
	dw, dh, sw, sh int
	fy             float64
	horizontal     *AxisTable
	gamma          *GammaTables
	scratch        sync.Pool
}

// NewScaler returns a Scaler from sw×sh to dw×dh.
func NewScaler(dw, dh, sw, sh int) (*Scaler, error) {
	if dw <= 0 || dh <= 0 || sw <= 0 || sh <= 0 {
		return nil, fmt.Errorf("%w: %dx%d -> %dx%d", ErrInvalidDimensions, sw, sh, dw, dh)
	}
	if dw > sw || dh > sh {
		return nil, fmt.Errorf("%w: %dx%d -> %dx%d", ErrUnsupportedDirection, sw, sh, dw, dh)
	}
	fx := float64(sw) / float64(dw)
	fy := float64(sh) / float64(dh)
	horizontal, err := BuildAxisCoverage(fx, sw, dw)
	if err != nil {
		return nil, err
	}
	if err := checkAxis(fy, sh, dh); err != nil {
		return nil, err
	}
	z := &Scaler{
		dw:         dw,
		dh:         dh,
		sw:         sw,
		sh:         sh,
		fy:         fy,
		horizontal: horizontal,
		gamma:      Tables(),
	}
	n := maxEntries(fy) + 1
	z.scratch.New = func() any {
		return &scratch{
			vertical: make([]CoverageEntry, 0, n),
			rows:     make([][]byte, 0, n),
		}
	}
	return z, nil
}

// scratch is the per-call working state of Scale.
type scratch struct {
	vertical []CoverageEntry
	rows     [][]byte
}

// Bounds returns the destination and source sizes.
func (z *Scaler) Bounds() (dw, dh, sw, sh int) {
	return z.dw, z.dh, z.sw, z.sh
}

// Scale scales src into dst. src must hold at least sw*sh bytes and dst at
// least dw*dh bytes.
func (z *Scaler) Scale(dst, src []byte) error {
	if len(src) < z.sw*z.sh {
		return fmt.Errorf("%w: source has %d bytes, want %d", ErrShortBuffer, len(src), z.sw*z.sh)
	}
	if len(dst) < z.dw*z.dh {
		return fmt.Errorf("%w: destination has %d bytes, want %d", ErrShortBuffer, len(dst), z.dw*z.dh)
	}
	s := z.scratch.Get().(*scratch)
	defer z.scratch.Put(s)
	for y := 0; y < z.dh; y++ {
		b := selectRows(z.fy, z.sh, z.dh, y)
		s.rows = s.rows[:0]
		for r := b.first; r <= b.last; r++ {
			s.rows = append(s.rows, src[r*z.sw:(r+1)*z.sw])
		}
		s.vertical = appendCoverage(s.vertical[:0], b.start, b.end)
		z.scaleRow(dst[y*z.dw:(y+1)*z.dw], s, b.first, float32(b.end-b.start))
	}
	return nil
}

// scaleRow computes one destination row from the rows and vertical coverage
// in s. first is the source row index of s.rows[0].
func (z *Scaler) scaleRow(dst []byte, s *scratch, first int, height float32) {
	expand := &z.gamma.Expand
	h := z.horizontal
	for x, g := range h.Groups {
		columns := h.Entries[g.I:g.J]
		var total float32
		for _, v := range s.vertical {
			row := s.rows[v.Index-first]
			var sum float32
			for _, c := range columns {
				sum += expand[row[c.Index]] * c.Weight
			}
			total += sum * v.Weight
		}
		dst[x] = z.gamma.CompressLinear(total / (g.Length * height))
	}
}

// ScaleGray scales src into dst. The bounds of both images must match the
// Scaler's sizes.
func (z *Scaler) ScaleGray(dst, src *image.Gray) error {
	sr, dr := src.Bounds(), dst.Bounds()
	if sr.Dx() != z.sw || sr.Dy() != z.sh || dr.Dx() != z.dw || dr.Dy() != z.dh {
		return fmt.Errorf("%w: images are %v -> %v, scaler is %dx%d -> %dx%d",
			ErrInvalidDimensions, sr.Size(), dr.Size(), z.sw, z.sh, z.dw, z.dh)
	}
	srcPix := compact(src, z.sw, z.sh)
	if dst.Stride == z.dw {
		i := dst.PixOffset(dr.Min.X, dr.Min.Y)
		return z.Scale(dst.Pix[i:i+z.dw*z.dh], srcPix)
	}
	tmp := make([]byte, z.dw*z.dh)
	if err := z.Scale(tmp, srcPix); err != nil {
		return err
	}
	for y := 0; y < z.dh; y++ {
		i := dst.PixOffset(dr.Min.X, dr.Min.Y+y)
		copy(dst.Pix[i:i+z.dw], tmp[y*z.dw:(y+1)*z.dw])
	}
	return nil
}

// compact returns the w×h pixels of m without row padding, copying only if
// m has any.
func compact(m *image.Gray, w, h int) []byte {
	i := m.PixOffset(m.Rect.Min.X, m.Rect.Min.Y)
	if m.Stride == w {
		return m.Pix[i : i+w*h]
	}
	pix := make([]byte, w*h)
	for y := 0; y < h; y++ {
		copy(pix[y*w:(y+1)*w], m.Pix[i+y*m.Stride:])
	}
	return pix
}
