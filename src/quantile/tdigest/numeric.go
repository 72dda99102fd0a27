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

import "math"

var (
	nan              = math.NaN()
	positiveInfinity = math.Inf(1)
	negativeInfinity = math.Inf(-1)
)

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampUnit(v float64) float64 {
	return clamp(v, 0, 1)
}

// interpolate returns the value at ratio r in [0, 1] between lower and upper.
func interpolate(lower, upper, r float64) float64 {
	if r <= 0 {
		return lower
	}
	if r >= 1 {
		return upper
	}
	return clamp(lower*(1-r)+upper*r, lower, upper)
}

// fraction is the inverse of interpolate, the ratio of x between lower and
// upper. Requires lower < upper.
func fraction(x, lower, upper float64) float64 {
	return clampUnit((x/2 - lower/2) / (upper/2 - lower/2))
}

// weightedMean merges two means, m1 <= m2, by their weights. The result
// never leaves [m1, m2] even when rounding would push it out.
func weightedMean(m1, w1, m2, w2 float64) float64 {
	w := w1 + w2
	mean := m1*(w1/w) + m2*(w2/w)
	return clamp(mean, m1, m2)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
