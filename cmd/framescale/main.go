// Copyright 2026 The framescale Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// framescale downscales captured grayscale frames to the classifier's input
// size.
//
// Usage:
//
//	framescale [flags] FILE...
//
// Files ending in .raw, .gray or .zst are read as raw frames of
// --raw-width×--raw-height bytes; anything else is decoded as an image file
// and converted to luminance.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tinyface/framescale/frame"
)

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "syntax: %s [flags] FILE...\n", os.Args[0])
		pflag.PrintDefaults()
	}

	loggerLevel := logger.LevelWarning
	pflag.Var(&loggerLevel, "log-level", "Log level")
	outWidth := pflag.IntP("out-width", "W", 32, "output width")
	outHeight := pflag.IntP("out-height", "H", 32, "output height")
	rawWidth := pflag.Int("raw-width", 160, "width of raw input frames")
	rawHeight := pflag.Int("raw-height", 120, "height of raw input frames")
	format := pflag.String("format", string(frame.FormatRaw), "output format: raw, zst, png or tiff")
	zstd := pflag.Bool("zstd", false, "compress raw output with zstd (same as --format=zst)")
	outDir := pflag.String("out-dir", "", "directory for output files (default: next to each input)")
	jobs := pflag.IntP("jobs", "j", runtime.GOMAXPROCS(0), "number of files processed concurrently")
	pflag.Parse()
	if pflag.NArg() == 0 {
		pflag.Usage()
		os.Exit(2)
	}

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	logger.Default = func() logger.Logger {
		return l
	}
	defer belt.Flush(ctx)

	cfg := config{
		OutWidth:  *outWidth,
		OutHeight: *outHeight,
		RawWidth:  *rawWidth,
		RawHeight: *rawHeight,
		OutDir:    *outDir,
		Jobs:      *jobs,
	}
	f, err := frame.ParseFormat(*format)
	if err != nil {
		l.Fatal(err)
	}
	if *zstd && f == frame.FormatRaw {
		f = frame.FormatRawZstd
	}
	cfg.Format = f
	if err := cfg.validate(); err != nil {
		l.Fatal(err)
	}

	results := run(ctx, cfg, pflag.Args())

	var s summary
	for _, r := range results {
		s.add(r)
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.Input, r.Err)
		}
	}
	s.print(message.NewPrinter(language.English), os.Stdout)
	belt.Flush(ctx)
	if s.failed > 0 {
		os.Exit(1)
	}
}
