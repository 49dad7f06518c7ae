// Copyright 2026 The framescale Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/message"

	"github.com/tinyface/framescale/frame"
	"github.com/tinyface/framescale/scale"
)

// errOutputClash is reported for an input whose output path belongs to an
// earlier input of the same run.
var errOutputClash = errors.New("output path clash")

// result describes what happened to one input file.
type result struct {
	Input, Output string
	SrcPixels     int
	DstPixels     int
	Err           error
}

// run scales every file in paths, at most cfg.Jobs at a time. A failing file
// does not stop the others. Inputs that would overwrite the output of an
// earlier input fail without being read.
func run(ctx context.Context, cfg config, paths []string) []result {
	results := make([]result, len(paths))
	cache := &scalerCache{m: map[scalerKey]*scale.Scaler{}}
	claimed := make(map[string]string, len(paths))
	var g errgroup.Group
	g.SetLimit(cfg.Jobs)
	for i, path := range paths {
		out := outputPath(cfg, path)
		if first, ok := claimed[out]; ok {
			results[i] = result{
				Input: path,
				Err:   fmt.Errorf("%w: '%s' is already written for '%s'", errOutputClash, out, first),
			}
			continue
		}
		claimed[out] = path
		i, path := i, path
		g.Go(func() error {
			results[i] = processFile(ctx, cfg, cache, path)
			return nil
		})
	}
	g.Wait()
	return results
}

func processFile(ctx context.Context, cfg config, cache *scalerCache, path string) result {
	ctx = belt.WithField(ctx, "file", path)
	r := result{Input: path}

	src, err := load(ctx, cfg, path)
	if err != nil {
		r.Err = err
		return r
	}
	r.SrcPixels = len(src.Pix)

	z, err := cache.get(cfg.OutWidth, cfg.OutHeight, src.Width, src.Height)
	if err != nil {
		logger.Errorf(ctx, "unable to scale %dx%d to %dx%d: %v", src.Width, src.Height, cfg.OutWidth, cfg.OutHeight, err)
		r.Err = err
		return r
	}
	dst := frame.New(cfg.OutWidth, cfg.OutHeight)
	if err := z.Scale(dst.Pix, src.Pix); err != nil {
		r.Err = err
		return r
	}

	r.Output = outputPath(cfg, path)
	if err := store(r.Output, dst, cfg.Format); err != nil {
		logger.Errorf(ctx, "unable to write '%s': %v", r.Output, err)
		r.Err = err
		return r
	}
	r.DstPixels = len(dst.Pix)
	logger.Infof(ctx, "%dx%d -> %dx%d: wrote '%s'", src.Width, src.Height, dst.Width, dst.Height, r.Output)
	return r
}

func load(ctx context.Context, cfg config, path string) (*frame.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if frame.IsRawName(path) {
		logger.Debugf(ctx, "reading a %dx%d raw frame", cfg.RawWidth, cfg.RawHeight)
		src, err := frame.ReadRaw(f, cfg.RawWidth, cfg.RawHeight)
		if err != nil {
			return nil, fmt.Errorf("unable to read raw frame '%s': %w", path, err)
		}
		return src, nil
	}
	src, name, err := frame.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("unable to decode '%s': %w", path, err)
	}
	logger.Debugf(ctx, "decoded a %dx%d %s image", src.Width, src.Height, name)
	return src, nil
}

func store(path string, f *frame.Frame, format frame.Format) (_err error) {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := out.Close(); err != nil && _err == nil {
			_err = err
		}
	}()
	return frame.Encode(out, f, format)
}

// outputPath returns where the scaled version of path goes: the input name
// with its extensions replaced by the output size and format.
func outputPath(cfg config, path string) string {
	dir, base := filepath.Split(path)
	if cfg.OutDir != "" {
		dir = cfg.OutDir
	}
	for ext := filepath.Ext(base); ext != "" && ext != base; ext = filepath.Ext(base) {
		base = strings.TrimSuffix(base, ext)
		if !strings.EqualFold(ext, ".zst") {
			break
		}
	}
	name := fmt.Sprintf("%s.%dx%d%s", base, cfg.OutWidth, cfg.OutHeight, cfg.Format.Ext())
	return filepath.Join(dir, name)
}

type scalerKey struct {
	dw, dh, sw, sh int
}

// scalerCache shares one Scaler per source size between goroutines.
type scalerCache struct {
	mu sync.Mutex
	m  map[scalerKey]*scale.Scaler
}

func (c *scalerCache) get(dw, dh, sw, sh int) (*scale.Scaler, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := scalerKey{dw, dh, sw, sh}
	if z, ok := c.m[k]; ok {
		return z, nil
	}
	z, err := scale.NewScaler(dw, dh, sw, sh)
	if err != nil {
		return nil, err
	}
	c.m[k] = z
	return z, nil
}

type summary struct {
	files, failed        int
	srcPixels, dstPixels int
}

func (s *summary) add(r result) {
	s.files++
	if r.Err != nil {
		s.failed++
		return
	}
	s.srcPixels += r.SrcPixels
	s.dstPixels += r.DstPixels
}

func (s *summary) print(p *message.Printer, w io.Writer) {
	p.Fprintf(w, "%d of %d files scaled, %d source pixels -> %d output pixels\n",
		s.files-s.failed, s.files, s.srcPixels, s.dstPixels)
}
