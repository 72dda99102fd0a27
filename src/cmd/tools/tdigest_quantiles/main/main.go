// Copyright (c) 2021 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package main is the entry point for a tool that estimates quantiles of
// newline separated values and of previously encoded digests.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/m3db/tdigest/src/quantile/tdigest"
	xconfig "github.com/m3db/tdigest/src/x/config"
	"github.com/m3db/tdigest/src/x/instrument"

	"github.com/pborman/getopt"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	var (
		optConfigFile = getopt.StringLong("config-file", 'f', "", "Configuration file [e.g. tdigest_quantiles.yml]")
		optInput      = getopt.StringLong("input", 'i', "", "Values file, one value per line, - for stdin")
		optSnapshots  = getopt.ListLong("snapshots", 's', "Encoded digest files to merge [e.g. a.digest,b.digest]")
		optOutput     = getopt.StringLong("output", 'o', "", "File to write the merged encoded digest to")
		optQuantiles  = getopt.ListLong("quantiles", 'q', "Quantiles to report [e.g. 0.5,0.99]")
	)
	getopt.Parse()

	var cfg Configuration
	if *optConfigFile != "" {
		if err := xconfig.LoadFile(&cfg, *optConfigFile, xconfig.Options{}); err != nil {
			log.Fatalf("unable to load config from %s: %v", *optConfigFile, err)
		}
	}

	logger, err := cfg.Logging.BuildLogger()
	if err != nil {
		log.Fatalf("unable to create logger: %v", err)
	}
	defer logger.Sync() // nolint: errcheck

	input := *optInput
	if input == "" && len(*optSnapshots) == 0 {
		input = "-"
	}

	quantiles := cfg.quantilesOrDefault()
	if len(*optQuantiles) > 0 {
		if quantiles, err = parseQuantiles(*optQuantiles); err != nil {
			logger.Error("invalid quantiles", zap.Error(err))
			getopt.Usage()
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, runArgs{
		input:     input,
		snapshots: *optSnapshots,
		output:    *optOutput,
		quantiles: quantiles,
	}, os.Stdin, os.Stdout, logger); err != nil {
		logger.Fatal("could not estimate quantiles", zap.Error(err))
	}
}

type runArgs struct {
	input     string
	snapshots []string
	output    string
	quantiles []float64
}

func run(
	ctx context.Context,
	cfg Configuration,
	args runArgs,
	stdin io.Reader,
	stdout io.Writer,
	logger *zap.Logger,
) error {
	iOpts := instrument.NewOptions().SetLogger(logger)
	opts, err := cfg.Digest.NewOptions(iOpts)
	if err != nil {
		return errors.Wrap(err, "invalid digest configuration")
	}

	var (
		s       = newSummarizer(opts, cfg.chunkSizeOrDefault(), cfg.concurrencyOrDefault(), logger)
		digests []*tdigest.Digest
	)

	if args.input != "" {
		r := stdin
		if args.input != "-" {
			f, err := os.Open(args.input)
			if err != nil {
				return err
			}
			defer f.Close() // nolint: errcheck
			r = f
		}
		res, err := s.digestValues(ctx, r)
		if err != nil {
			return errors.Wrapf(err, "could not digest values from %s", args.input)
		}
		digests = append(digests, res...)
	}

	var (
		g         errgroup.Group
		fromFiles = make([][]*tdigest.Digest, len(args.snapshots))
	)
	for i, file := range args.snapshots {
		i, file := i, file
		g.Go(func() error {
			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			res, err := s.decodeSnapshots(data)
			if err != nil {
				return errors.Wrapf(err, "could not read digests from %s", file)
			}
			logger.Info("read digests", zap.String("file", file), zap.Int("numDigests", len(res)))
			fromFiles[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, res := range fromFiles {
		digests = append(digests, res...)
	}

	merged, err := s.merge(digests)
	if err != nil {
		return err
	}
	defer merged.Close()

	if args.output != "" {
		data, err := encodeSnapshot(merged)
		if err != nil {
			return err
		}
		if err := os.WriteFile(args.output, data, 0644); err != nil {
			return fmt.Errorf("could not write digest to %s: %w", args.output, err)
		}
		logger.Info("wrote digest", zap.String("file", args.output), zap.Int("bytes", len(data)))
	}

	return writeReport(stdout, merged, args.quantiles)
}
