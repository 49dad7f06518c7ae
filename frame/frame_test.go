// Copyright 2026 The framescale Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

func testFrame(w, h int) *Frame {
	f := New(w, h)
	for i := range f.Pix {
		f.Pix[i] = byte(i * 7)
	}
	return f
}

func TestFromPix(t *testing.T) {
	f, err := FromPix(make([]byte, 12), 4, 3)
	require.NoError(t, err)
	require.Equal(t, 4, f.Width)
	require.Equal(t, 3, f.Height)

	_, err = FromPix(make([]byte, 11), 4, 3)
	require.ErrorIs(t, err, ErrShortFrame)

	_, err = FromPix(nil, 0, 3)
	require.Error(t, err)
}

func TestGrayShares(t *testing.T) {
	f := testFrame(5, 4)
	g := f.Gray()
	require.Equal(t, image.Rect(0, 0, 5, 4), g.Bounds())
	g.SetGray(2, 3, color.Gray{Y: 99})
	require.Equal(t, byte(99), f.Pix[3*5+2])
}

func TestFromImage(t *testing.T) {
	m := image.NewRGBA(image.Rect(10, 20, 13, 22))
	m.Set(10, 20, color.White)
	m.Set(12, 21, color.RGBA{R: 255, A: 255})
	f := FromImage(m)
	require.Equal(t, 3, f.Width)
	require.Equal(t, 2, f.Height)
	require.Len(t, f.Pix, 6)
	require.Equal(t, byte(255), f.Pix[0])
	require.Equal(t, color.GrayModel.Convert(color.RGBA{R: 255, A: 255}).(color.Gray).Y, f.Pix[5])
	require.Equal(t, byte(0), f.Pix[1])
}

func TestRawRoundTrip(t *testing.T) {
	for _, compressed := range []bool{false, true} {
		f := testFrame(160, 120)
		var buf bytes.Buffer
		require.NoError(t, WriteRaw(&buf, f, compressed))
		if compressed {
			require.True(t, bytes.HasPrefix(buf.Bytes(), zstdMagic))
		} else {
			require.Equal(t, f.Pix, buf.Bytes())
		}
		got, err := ReadRaw(&buf, 160, 120)
		require.NoError(t, err)
		require.Equal(t, f, got)
	}
}

func TestReadRawShort(t *testing.T) {
	_, err := ReadRaw(bytes.NewReader(make([]byte, 99)), 10, 10)
	require.ErrorIs(t, err, ErrShortFrame)

	var buf bytes.Buffer
	require.NoError(t, WriteRaw(&buf, testFrame(9, 9), true))
	_, err = ReadRaw(&buf, 10, 10)
	require.ErrorIs(t, err, ErrShortFrame)

	_, err = ReadRaw(bytes.NewReader(nil), 0, 10)
	require.Error(t, err)
}

func TestEncodeDecode(t *testing.T) {
	f := testFrame(17, 11)
	for _, format := range []Format{FormatPNG, FormatTIFF} {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, f, format))
		got, name, err := Decode(&buf)
		require.NoError(t, err, format)
		require.Equal(t, string(format), name)
		require.Equal(t, f, got)
	}
}

func TestDecodeColor(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	m.Set(0, 0, color.NRGBA{G: 255, A: 255})
	m.Set(1, 0, color.NRGBA{R: 10, G: 10, B: 10, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, m))

	f, name, err := Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, "png", name)
	require.Equal(t, []byte{
		color.GrayModel.Convert(color.NRGBA{G: 255, A: 255}).(color.Gray).Y,
		10,
	}, f.Pix)
}

func TestEncodeRaw(t *testing.T) {
	f := testFrame(4, 4)
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, f, FormatRaw))
	require.Equal(t, f.Pix, buf.Bytes())

	buf.Reset()
	require.ErrorIs(t, Encode(&buf, f, "gif"), ErrUnknownFormat)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ext  string
		err  bool
	}{
		{"raw", FormatRaw, ".raw", false},
		{"ZST", FormatRawZstd, ".raw.zst", false},
		{"png", FormatPNG, ".png", false},
		{"tif", FormatTIFF, ".tiff", false},
		{"TIFF", FormatTIFF, ".tiff", false},
		{"gif", "", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.err {
			require.ErrorIs(t, err, ErrUnknownFormat, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.want, got)
		require.Equal(t, tt.ext, got.Ext())
	}
}

func TestIsRawName(t *testing.T) {
	require.True(t, IsRawName("frame-0001.raw"))
	require.True(t, IsRawName("capture.GRAY"))
	require.True(t, IsRawName("capture.raw.zst"))
	require.False(t, IsRawName("capture.png"))
}
