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

package main

import (
	"runtime"

	"github.com/m3db/tdigest/src/quantile/tdigest"
	xlog "github.com/m3db/tdigest/src/x/log"
)

const defaultChunkSize = 1 << 16

var defaultQuantiles = []float64{0.5, 0.9, 0.99, 0.999}

// Configuration is the tool configuration.
type Configuration struct {
	// Logging configures the logger, logs are written to stderr.
	Logging xlog.Configuration `yaml:"logging"`

	// Digest configures the digests built from the input.
	Digest tdigest.Configuration `yaml:"digest"`

	// ChunkSize is the number of input values folded into each partial digest.
	ChunkSize int `yaml:"chunkSize" validate:"min=0"`

	// Concurrency is the number of chunks digested in parallel.
	Concurrency int `yaml:"concurrency" validate:"min=0"`

	// Quantiles are reported unless overridden on the command line.
	Quantiles []float64 `yaml:"quantiles"`
}

func (c Configuration) chunkSizeOrDefault() int {
	if c.ChunkSize > 0 {
		return c.ChunkSize
	}
	return defaultChunkSize
}

func (c Configuration) concurrencyOrDefault() int {
	if c.Concurrency > 0 {
		return c.Concurrency
	}
	return runtime.NumCPU()
}

func (c Configuration) quantilesOrDefault() []float64 {
	if len(c.Quantiles) > 0 {
		return c.Quantiles
	}
	return defaultQuantiles
}
