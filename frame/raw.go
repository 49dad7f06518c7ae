// Copyright 2026 The framescale Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// zstdMagic starts every zstd frame.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// ReadRaw reads one w×h frame of raw pixels from r. A zstd-compressed stream
// is detected by its magic number and decompressed.
func ReadRaw(r io.Reader, w, h int) (*Frame, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("frame: invalid size %dx%d", w, h)
	}
	br := bufio.NewReader(r)
	src := io.Reader(br)
	if magic, _ := br.Peek(len(zstdMagic)); bytes.Equal(magic, zstdMagic) {
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("frame: zstd: %w", err)
		}
		defer dec.Close()
		src = dec
	}
	f := New(w, h)
	if n, err := io.ReadFull(src, f.Pix); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: read %d of %d bytes", ErrShortFrame, n, len(f.Pix))
		}
		return nil, err
	}
	return f, nil
}

// WriteRaw writes f's pixels to w, zstd-compressed if compressed is set.
func WriteRaw(w io.Writer, f *Frame, compressed bool) error {
	if !compressed {
		_, err := w.Write(f.Pix)
		return err
	}
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("frame: zstd: %w", err)
	}
	if _, err := enc.Write(f.Pix); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}
