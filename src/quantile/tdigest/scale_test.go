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
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xerrors "github.com/m3db/tdigest/src/x/errors"
)

func TestScaleFunctionsBoundaries(t *testing.T) {
	for _, fn := range validScaleFunctions {
		for _, compression := range []float64{1, 10, 100, 1000} {
			assert.InDelta(t, 0, fn.K(0, compression), 1e-9, fn.String())
			assert.InDelta(t, compression, fn.K(1, compression), 1e-9*compression, fn.String())

			// Out of range inputs are clamped.
			assert.Equal(t, fn.K(0, compression), fn.K(-1, compression), fn.String())
			assert.Equal(t, fn.K(1, compression), fn.K(2, compression), fn.String())
			assert.Equal(t, fn.Q(0, compression), fn.Q(-5, compression), fn.String())
			assert.Equal(t, fn.Q(compression, compression), fn.Q(2*compression, compression), fn.String())
		}
	}
}

func TestScaleFunctionsIncreasing(t *testing.T) {
	for _, fn := range validScaleFunctions {
		prev := math.Inf(-1)
		for i := 0; i <= 2000; i++ {
			q := float64(i) / 2000
			k := fn.K(q, 100)
			require.False(t, math.IsNaN(k), fn.String())
			require.True(t, k >= prev, "%s decreased at %v", fn.String(), q)
			prev = k
		}
	}
}

func TestScaleFunctionsInvert(t *testing.T) {
	for _, fn := range validScaleFunctions {
		for _, q := range []float64{0.001, 0.01, 0.1, 0.3, 0.5, 0.7, 0.9, 0.99, 0.999} {
			k := fn.K(q, 100)
			assert.InDelta(t, q, fn.Q(k, 100), 1e-9, fn.String())
		}
	}
}

func TestArcsineScaleTails(t *testing.T) {
	// A unit of k covers far less rank near the tails than at the median.
	var (
		fn     = ArcsineScale
		tail   = fn.Q(1, 100) - fn.Q(0, 100)
		median = fn.Q(50.5, 100) - fn.Q(49.5, 100)
	)
	assert.True(t, tail < median/10)
}

func TestParseScaleFunction(t *testing.T) {
	tests := []struct {
		name     string
		expected ScaleFunction
	}{
		{name: "k0", expected: LinearScale},
		{name: "linear", expected: LinearScale},
		{name: "K1", expected: ArcsineScale},
		{name: " arcsine ", expected: ArcsineScale},
		{name: "k2", expected: LogitScale},
		{name: "logit", expected: LogitScale},
	}
	for _, test := range tests {
		fn, err := ParseScaleFunction(test.name)
		require.NoError(t, err, test.name)
		assert.Equal(t, test.expected, fn, test.name)
	}

	for _, fn := range validScaleFunctions {
		parsed, err := ParseScaleFunction(fn.String())
		require.NoError(t, err)
		assert.Equal(t, fn, parsed)
	}

	_, err := ParseScaleFunction("k3")
	require.Error(t, err)
	assert.True(t, xerrors.IsInvalidParams(err))
	assert.False(t, errors.Is(err, ErrInvalidMaxSize))
}

func TestAlternativeScaleFunctionsAccuracy(t *testing.T) {
	for _, fn := range validScaleFunctions {
		d := newTestDigest(t, testDigestOptions().SetScaleFunction(fn))
		require.NoError(t, d.MergeSorted(sequence(1, 100000)))
		require.InEpsilon(t, 99000.0, requireQuantile(t, d, 0.99), 0.01, fn.String())
		require.InEpsilon(t, 50000.0, requireQuantile(t, d, 0.5), 0.01, fn.String())
		require.True(t, d.Len() < 2*d.MaxSize(), fn.String())
	}
}
