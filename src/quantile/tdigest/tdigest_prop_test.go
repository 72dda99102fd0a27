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

package tdigest

import (
	"fmt"
	"math"
	"os"
	"sort"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

const minSuccessfulTests = 200

func newTestProperties() (*gopter.Properties, gopter.Reporter, int64) {
	var (
		parameters = gopter.DefaultTestParameters()
		seed       = time.Now().UnixNano()
		props      = gopter.NewProperties(parameters)
		reporter   = gopter.NewFormatedReporter(true, 160, os.Stdout)
	)
	parameters.MinSuccessfulTests = minSuccessfulTests
	parameters.Rng.Seed(seed)
	return props, reporter, seed
}

func genBatches() gopter.Gen {
	return gen.SliceOf(gen.SliceOf(gen.Float64Range(-1e6, 1e6)))
}

func TestDigestMergeInvariantsPropTest(t *testing.T) {
	props, reporter, seed := newTestProperties()

	props.Property("merges conserve weight and keep invariants", prop.ForAll(
		func(batches [][]float64, maxSize int) (bool, error) {
			d, err := NewWithSize(maxSize)
			if err != nil {
				return false, err
			}

			var (
				count   int
				minSeen = math.Inf(1)
				maxSeen = math.Inf(-1)
			)
			for _, batch := range batches {
				prevMin, prevMax := d.Min(), d.Max()
				if err := d.MergeUnsorted(batch); err != nil {
					return false, err
				}
				count += len(batch)
				for _, v := range batch {
					minSeen = math.Min(minSeen, v)
					maxSeen = math.Max(maxSeen, v)
				}

				if d.TotalWeight() != float64(count) {
					return false, fmt.Errorf("total weight %v, merged %d values", d.TotalWeight(), count)
				}
				if d.Min() > prevMin || d.Max() < prevMax {
					return false, fmt.Errorf("extremes regressed to [%v, %v] from [%v, %v]",
						d.Min(), d.Max(), prevMin, prevMax)
				}
				if d.Len() >= 2*maxSize {
					return false, fmt.Errorf("%d centroids for max size %d", d.Len(), maxSize)
				}

				var weight float64
				centroids := d.Centroids()
				for i, c := range centroids {
					if c.Weight <= 0 {
						return false, fmt.Errorf("centroid %d has weight %v", i, c.Weight)
					}
					if i > 0 && c.Mean < centroids[i-1].Mean {
						return false, fmt.Errorf("centroid %d mean %v below %v", i, c.Mean, centroids[i-1].Mean)
					}
					weight += c.Weight
				}
				if weight != d.TotalWeight() {
					return false, fmt.Errorf("centroid weights %v, total %v", weight, d.TotalWeight())
				}
			}

			if count == 0 {
				return d.IsEmpty(), nil
			}
			if d.Min() != minSeen || d.Max() != maxSeen {
				return false, fmt.Errorf("extremes [%v, %v], expected [%v, %v]",
					d.Min(), d.Max(), minSeen, maxSeen)
			}
			lo, _ := d.Quantile(0)
			hi, _ := d.Quantile(1)
			return lo == minSeen && hi == maxSeen, nil
		},
		genBatches(),
		gen.IntRange(1, 200),
	))

	if !props.Run(reporter) {
		t.Errorf("failed with initial seed: %d", seed)
	}
}

func TestDigestMergeDigestsPropTest(t *testing.T) {
	props, reporter, seed := newTestProperties()

	props.Property("merging digests conserves weight and exact extremes", prop.ForAll(
		func(batches [][]float64) (bool, error) {
			var (
				digests = make([]*Digest, 0, len(batches))
				all     []float64
			)
			for _, batch := range batches {
				d, err := New(testDigestOptions())
				if err != nil {
					return false, err
				}
				if err := d.MergeUnsorted(batch); err != nil {
					return false, err
				}
				digests = append(digests, d)
				all = append(all, batch...)
			}

			merged, err := Merge(digests, nil)
			if err != nil {
				return false, err
			}
			if merged.TotalWeight() != float64(len(all)) {
				return false, fmt.Errorf("total weight %v, expected %d", merged.TotalWeight(), len(all))
			}
			if len(all) == 0 {
				return merged.IsEmpty(), nil
			}

			sort.Float64s(all)
			if merged.Min() != all[0] || merged.Max() != all[len(all)-1] {
				return false, fmt.Errorf("extremes [%v, %v], expected [%v, %v]",
					merged.Min(), merged.Max(), all[0], all[len(all)-1])
			}
			for i, d := range digests {
				if d.TotalWeight() != float64(len(batches[i])) {
					return false, fmt.Errorf("input digest %d was modified", i)
				}
			}
			return merged.Len() < 2*merged.MaxSize(), nil
		},
		genBatches(),
	))

	if !props.Run(reporter) {
		t.Errorf("failed with initial seed: %d", seed)
	}
}

func TestDigestRankQuantileRoundTripPropTest(t *testing.T) {
	props, reporter, seed := newTestProperties()

	props.Property("rank of quantile returns the quantile", prop.ForAll(
		func(n int, q float64) (bool, error) {
			d, err := New(testDigestOptions())
			if err != nil {
				return false, err
			}
			if err := d.MergeSorted(sequence(1, n)); err != nil {
				return false, err
			}
			v, err := d.Quantile(q)
			if err != nil {
				return false, err
			}
			rank, err := d.Rank(v)
			if err != nil {
				return false, err
			}
			if math.Abs(rank-q) > 1e-6 {
				return false, fmt.Errorf("rank %v of quantile %v (value %v)", rank, q, v)
			}
			return true, nil
		},
		gen.IntRange(2, 20000),
		gen.Float64Range(0.0001, 0.9999),
	))

	if !props.Run(reporter) {
		t.Errorf("failed with initial seed: %d", seed)
	}
}
