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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xerrors "github.com/m3db/tdigest/src/x/errors"
)

func TestOptionsDefaults(t *testing.T) {
	opts := NewOptions()
	assert.Equal(t, DefaultMaxSize, opts.MaxSize())
	assert.Equal(t, "k1", opts.ScaleFunction().String())
	assert.NotNil(t, opts.CentroidsPool())
	assert.NotNil(t, opts.FloatsPool())
	require.NoError(t, opts.Validate())
}

func TestOptionsSettersCopy(t *testing.T) {
	opts := NewOptions()
	updated := opts.SetMaxSize(10).SetScaleFunction(LinearScale)
	assert.Equal(t, DefaultMaxSize, opts.MaxSize())
	assert.Equal(t, 10, updated.MaxSize())
	assert.Equal(t, LinearScale, updated.ScaleFunction())
}

func TestOptionsValidate(t *testing.T) {
	opts := NewOptions()
	assert.True(t, errors.Is(opts.SetMaxSize(0).Validate(), ErrInvalidMaxSize))
	assert.True(t, xerrors.IsInvalidParams(opts.SetScaleFunction(nil).Validate()))
	assert.True(t, xerrors.IsInvalidParams(opts.SetCentroidsPool(nil).Validate()))
	assert.True(t, xerrors.IsInvalidParams(opts.SetFloatsPool(nil).Validate()))
}

func TestCentroidsPool(t *testing.T) {
	p := NewCentroidsPool(defaultCentroidsPoolBuckets, nil)
	p.Init()

	c := p.Get(10)
	assert.Equal(t, 0, len(c))
	assert.True(t, cap(c) >= 10)
	c = append(c, Centroid{Mean: 1, Weight: 1})
	p.Put(c)

	reused := p.Get(10)
	assert.Equal(t, 0, len(reused))
	assert.True(t, cap(reused) >= 10)

	big := p.Get(10000)
	assert.Equal(t, 0, len(big))
	assert.Equal(t, 10000, cap(big))

	empty := p.Get(0)
	assert.Equal(t, 0, len(empty))
	assert.True(t, cap(empty) >= 1)

	// Zero-capacity slices are not pooled.
	p.Put(nil)
	assert.True(t, cap(p.Get(1)) >= 1)
}

func TestCentroidsPoolGrowthKeepsContents(t *testing.T) {
	p := NewCentroidsPool(defaultCentroidsPoolBuckets, nil)
	p.Init()

	var (
		c         = &compressor{centroidsPool: p}
		centroids = p.Get(1)
	)
	for i := 0; i < 100; i++ {
		centroids = c.appendCentroid(centroids, Centroid{Mean: float64(i), Weight: 1})
	}
	require.Equal(t, 100, len(centroids))
	for i, ct := range centroids {
		require.Equal(t, float64(i), ct.Mean)
	}
}
