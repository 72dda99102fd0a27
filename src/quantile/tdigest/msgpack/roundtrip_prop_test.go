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

package msgpack

import (
	"bytes"
	"os"
	"sort"
	"testing"
	"time"

	"github.com/m3db/tdigest/src/quantile/tdigest"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/pkg/errors"
)

const minSuccessfulTests = 200

var testScaleNames = []string{"k0", "k1", "k2"}

func TestDigestEncodeDecodePropTest(t *testing.T) {
	var (
		parameters = gopter.DefaultTestParameters()
		seed       = time.Now().UnixNano()
		props      = gopter.NewProperties(parameters)
		reporter   = gopter.NewFormatedReporter(true, 160, os.Stdout)
		enc        = NewEncoder()
		dec        = NewDecoder()
	)

	parameters.MinSuccessfulTests = minSuccessfulTests
	parameters.Rng.Seed(seed)

	props.Property("Encodes and decodes successfully", prop.ForAll(
		func(values []float64, maxSize int, scaleIdx int) (bool, error) {
			scaleFn, err := tdigest.ParseScaleFunction(testScaleNames[scaleIdx])
			if err != nil {
				return false, err
			}
			d, err := tdigest.New(tdigest.NewOptions().
				SetMaxSize(maxSize).
				SetScaleFunction(scaleFn))
			if err != nil {
				return false, errors.Wrap(err, "error creating digest")
			}
			defer d.Close()

			sort.Float64s(values)
			if err := d.MergeSorted(values); err != nil {
				return false, errors.Wrap(err, "error merging values")
			}

			input := d.Snapshot()
			enc.Reset()
			if err := enc.EncodeDigest(input); err != nil {
				return false, errors.Wrap(err, "error encoding digest")
			}
			dec.Reset(bytes.NewReader(enc.Bytes()))
			decoded, err := dec.DecodeDigest()
			if err != nil {
				return false, errors.Wrap(err, "error decoding digest")
			}

			if diff := cmp.Diff(input, decoded, cmpopts.EquateEmpty()); diff != "" {
				return false, errors.Errorf("decoded digest differs: %s", diff)
			}
			return true, nil
		},
		gen.SliceOf(gen.Float64Range(-1e9, 1e9)),
		gen.IntRange(1, 200),
		gen.IntRange(0, len(testScaleNames)-1),
	))

	if !props.Run(reporter) {
		t.Errorf("failed with initial seed: %d", seed)
	}
}
