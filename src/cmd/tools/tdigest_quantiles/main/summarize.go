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
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/m3db/tdigest/src/quantile/tdigest"
	"github.com/m3db/tdigest/src/quantile/tdigest/msgpack"
	xerrors "github.com/m3db/tdigest/src/x/errors"
	xsync "github.com/m3db/tdigest/src/x/sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// maxReportedParseErrors bounds the parse errors kept for the final error.
const maxReportedParseErrors = 10

type summarizer struct {
	opts      tdigest.Options
	chunkSize int
	workers   xsync.WorkerPool
	logger    *zap.Logger
}

func newSummarizer(
	opts tdigest.Options,
	chunkSize int,
	concurrency int,
	logger *zap.Logger,
) *summarizer {
	workers := xsync.NewWorkerPool(concurrency)
	workers.Init()
	return &summarizer{
		opts:      opts,
		chunkSize: chunkSize,
		workers:   workers,
		logger:    logger,
	}
}

// digestValues reads newline separated values and digests them in chunks on
// the worker pool. Blank lines and lines starting with '#' are ignored.
// Reading stops once ctx is done.
func (s *summarizer) digestValues(ctx context.Context, r io.Reader) ([]*tdigest.Digest, error) {
	var (
		wg        sync.WaitGroup
		lock      sync.Mutex
		digests   []*tdigest.Digest
		multiErr  = xerrors.NewMultiError()
		numErrors int
		chunk     = make([]float64, 0, s.chunkSize)
	)

	dispatch := func(values []float64) bool {
		wg.Add(1)
		result := s.workers.GoWithContext(ctx, func() {
			defer wg.Done()

			d, err := tdigest.New(s.opts)
			if err == nil {
				err = d.MergeUnsorted(values)
			}

			lock.Lock()
			if err != nil {
				multiErr = multiErr.Add(err)
			} else {
				digests = append(digests, d)
			}
			lock.Unlock()
		})
		if !result.Available {
			wg.Done()
			return false
		}
		return true
	}

	var (
		scanner  = bufio.NewScanner(r)
		canceled bool
	)
	for lineNum := 1; !canceled && scanner.Scan(); lineNum++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		v, err := parseValue(line)
		if err != nil {
			numErrors++
			if numErrors <= maxReportedParseErrors {
				lock.Lock()
				multiErr = multiErr.Add(errors.Wrapf(err, "line %d", lineNum))
				lock.Unlock()
			}
			continue
		}

		chunk = append(chunk, v)
		if len(chunk) == s.chunkSize {
			canceled = !dispatch(chunk)
			chunk = make([]float64, 0, s.chunkSize)
		}
	}
	if !canceled && len(chunk) > 0 {
		canceled = !dispatch(chunk)
	}
	wg.Wait()

	if canceled {
		multiErr = multiErr.Add(errors.Wrap(ctx.Err(), "could not schedule chunk"))
	}

	if err := scanner.Err(); err != nil {
		multiErr = multiErr.Add(errors.Wrap(err, "could not read values"))
	}
	if numErrors > maxReportedParseErrors {
		s.logger.Warn("dropped parse errors",
			zap.Int("numErrors", numErrors),
			zap.Int("numReported", maxReportedParseErrors))
	}
	if err := multiErr.FinalError(); err != nil {
		return nil, err
	}

	s.logger.Debug("digested values", zap.Int("numChunks", len(digests)))
	return digests, nil
}

// decodeSnapshots decodes every encoded digest in data.
func (s *summarizer) decodeSnapshots(data []byte) ([]*tdigest.Digest, error) {
	var (
		reader  = bytes.NewReader(data)
		dec     = msgpack.NewDecoder()
		digests []*tdigest.Digest
	)
	dec.Reset(reader)
	for reader.Len() > 0 {
		snapshot, err := dec.DecodeDigest()
		if err != nil {
			return nil, errors.Wrapf(err, "could not decode digest %d", len(digests))
		}
		d, err := tdigest.NewFromSnapshot(snapshot, s.opts)
		if err != nil {
			return nil, errors.Wrapf(err, "could not restore digest %d", len(digests))
		}
		digests = append(digests, d)
	}
	return digests, nil
}

func (s *summarizer) merge(digests []*tdigest.Digest) (*tdigest.Digest, error) {
	merged, err := tdigest.Merge(digests, s.opts)
	if err != nil {
		return nil, err
	}
	for _, d := range digests {
		d.Close()
	}
	return merged, nil
}

func encodeSnapshot(d *tdigest.Digest) ([]byte, error) {
	enc := msgpack.NewEncoder()
	if err := enc.EncodeDigest(d.Snapshot()); err != nil {
		return nil, errors.Wrap(err, "could not encode digest")
	}
	return enc.Bytes(), nil
}

func writeReport(w io.Writer, d *tdigest.Digest, quantiles []float64) error {
	values, err := d.Quantiles(quantiles)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "count: %s\n", formatValue(d.TotalWeight()))
	fmt.Fprintf(bw, "min: %s\n", formatValue(d.Min()))
	fmt.Fprintf(bw, "max: %s\n", formatValue(d.Max()))
	fmt.Fprintf(bw, "mean: %s\n", formatValue(d.Mean()))
	for i, q := range quantiles {
		fmt.Fprintf(bw, "q%s: %s\n", formatValue(q), formatValue(values[i]))
	}
	return bw.Flush()
}

func parseValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("value %s is not finite", s)
	}
	return v, nil
}

func parseQuantiles(values []string) ([]float64, error) {
	res := make([]float64, 0, len(values))
	for _, str := range values {
		q, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid quantile %q", str)
		}
		if math.IsNaN(q) || q < 0 || q > 1 {
			return nil, fmt.Errorf("quantile %s is not in [0, 1]", str)
		}
		res = append(res, q)
	}
	return res, nil
}

func formatValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
