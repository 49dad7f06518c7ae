// Copyright 2026 The framescale Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package frame moves single-channel 8-bit frames in and out of files.
//
// A Frame is the unpadded row-major layout the scale package works on. Frames
// come from raw capture dumps, optionally zstd-compressed, or from any image
// file this package can decode, converted to luminance.
package frame

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

var (
	// ErrShortFrame is returned when a buffer or stream holds fewer pixels
	// than the frame dimensions require.
	ErrShortFrame = errors.New("frame: short frame")
	// ErrUnknownFormat is returned for an unrecognized output format.
	ErrUnknownFormat = errors.New("frame: unknown format")
)

// Frame is a grayscale image with one byte per pixel and no row padding.
type Frame struct {
	Pix           []byte
	Width, Height int
}

// New returns a zeroed w×h frame.
func New(w, h int) *Frame {
	return &Frame{Pix: make([]byte, w*h), Width: w, Height: h}
}

// FromPix wraps pix as a w×h frame without copying.
func FromPix(pix []byte, w, h int) (*Frame, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("frame: invalid size %dx%d", w, h)
	}
	if len(pix) != w*h {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d", ErrShortFrame, len(pix), w, h)
	}
	return &Frame{Pix: pix, Width: w, Height: h}, nil
}

// Gray returns an image.Gray sharing f's pixels.
func (f *Frame) Gray() *image.Gray {
	return &image.Gray{
		Pix:    f.Pix,
		Stride: f.Width,
		Rect:   image.Rect(0, 0, f.Width, f.Height),
	}
}

// FromImage converts m to a frame of its luminance.
func FromImage(m image.Image) *Frame {
	b := m.Bounds()
	g := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(g, g.Bounds(), m, b.Min, draw.Src)
	return &Frame{Pix: g.Pix, Width: b.Dx(), Height: b.Dy()}
}
