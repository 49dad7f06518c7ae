// Copyright 2026 The framescale Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/tiff"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	_ "image/jpeg"
)

// Format is an output file format.
type Format string

const (
	FormatRaw     Format = "raw"
	FormatRawZstd Format = "zst"
	FormatPNG     Format = "png"
	FormatTIFF    Format = "tiff"
)

// ParseFormat returns the Format named s, ignoring case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatRaw, FormatRawZstd, FormatPNG, FormatTIFF:
		return f, nil
	case "tif":
		return FormatTIFF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Ext returns the file name extension for the format, including the dot.
func (f Format) Ext() string {
	if f == FormatRawZstd {
		return ".raw.zst"
	}
	return "." + string(f)
}

// IsRawName reports whether name looks like a raw frame dump rather than an
// image file.
func IsRawName(name string) bool {
	name = strings.ToLower(name)
	for _, ext := range []string{".raw", ".gray", ".zst"} {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Decode decodes an image file and converts it to a frame. The string
// returned is the format name used during decoding.
func Decode(r io.Reader) (*Frame, string, error) {
	m, name, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("frame: decode: %w", err)
	}
	return FromImage(m), name, nil
}

// Encode writes f to w in the given format.
func Encode(w io.Writer, f *Frame, format Format) error {
	switch format {
	case FormatRaw:
		return WriteRaw(w, f, false)
	case FormatRawZstd:
		return WriteRaw(w, f, true)
	case FormatPNG:
		return png.Encode(w, f.Gray())
	case FormatTIFF:
		return tiff.Encode(w, f.Gray(), &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
}
