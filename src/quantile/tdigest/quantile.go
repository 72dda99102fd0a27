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
)

// Quantile returns the estimated value at quantile q, NaN if the digest is
// empty.
func (d *Digest) Quantile(q float64) (float64, error) {
	if math.IsNaN(q) || q < 0.0 || q > 1.0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidQuantile, q)
	}
	return d.quantile(q), nil
}

// Quantiles returns the estimated values at each of the quantiles.
func (d *Digest) Quantiles(qs []float64) ([]float64, error) {
	for _, q := range qs {
		if math.IsNaN(q) || q < 0.0 || q > 1.0 {
			return nil, fmt.Errorf("%w: %v", ErrInvalidQuantile, q)
		}
	}
	res := make([]float64, 0, len(qs))
	for _, q := range qs {
		res = append(res, d.quantile(q))
	}
	return res, nil
}

func (d *Digest) quantile(q float64) float64 {
	if len(d.centroids) == 0 {
		return nan
	}

	if q == 0.0 {
		return d.min
	}

	if q == 1.0 {
		return d.max
	}

	if len(d.centroids) == 1 {
		return d.centroids[0].Mean
	}

	var (
		targetWeight = q * d.totalWeight
		currWeight   = 0.0
		lowerBound   = d.min
		upperBound   float64
	)
	for i, c := range d.centroids {
		upperBound = d.upperBound(i)
		if targetWeight <= currWeight+c.Weight {
			// The quantile falls within this centroid.
			ratio := (targetWeight - currWeight) / c.Weight
			return interpolate(lowerBound, upperBound, ratio)
		}
		currWeight += c.Weight
		lowerBound = upperBound
	}

	// Rounding may leave the target weight just above the accumulated weight.
	return d.max
}

// Rank returns the estimated fraction of the weight at or below x, NaN if
// the digest is empty.
func (d *Digest) Rank(x float64) (float64, error) {
	if math.IsNaN(x) {
		return 0, fmt.Errorf("%w: %v", ErrNonFiniteValue, x)
	}

	if len(d.centroids) == 0 {
		return nan, nil
	}

	if x < d.min {
		return 0.0, nil
	}

	if x >= d.max {
		return 1.0, nil
	}

	var (
		currWeight = 0.0
		lowerBound = d.min
		upperBound float64
	)
	for i, c := range d.centroids {
		upperBound = d.upperBound(i)
		if x < upperBound {
			ratio := fraction(x, lowerBound, upperBound)
			return clampUnit((currWeight + ratio*c.Weight) / d.totalWeight), nil
		}
		currWeight += c.Weight
		lowerBound = upperBound
	}

	return 1.0, nil
}

// upperBound returns the upper bound for interpolating within the centroid at
// the given index, or the max for the last one. The gap to the next mean is
// split in proportion to the two weights.
func (d *Digest) upperBound(index int) float64 {
	if index == len(d.centroids)-1 {
		return d.max
	}
	var (
		curr = d.centroids[index]
		next = d.centroids[index+1]
	)
	return interpolate(curr.Mean, next.Mean, curr.Weight/(curr.Weight+next.Weight))
}
