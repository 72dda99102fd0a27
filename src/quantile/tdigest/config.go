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
	"github.com/m3db/tdigest/src/x/instrument"
	"github.com/m3db/tdigest/src/x/pool"
)

// Configuration configures t-digests.
type Configuration struct {
	// MaxSize is the compression parameter, defaults to 100.
	MaxSize int `yaml:"maxSize" validate:"min=0"`

	// ScaleFunction is one of k0, k1 or k2, defaults to k1.
	ScaleFunction string `yaml:"scaleFunction"`

	// CentroidsPool configures the pool of centroid slices.
	CentroidsPool pool.BucketizedPoolConfiguration `yaml:"centroidsPool"`

	// FloatsPool configures the pool of scratch value slices.
	FloatsPool pool.BucketizedPoolConfiguration `yaml:"floatsPool"`
}

// NewOptions creates t-digest options from the configuration.
func (c Configuration) NewOptions(iOpts instrument.Options) (Options, error) {
	opts := NewOptions()
	if c.MaxSize > 0 {
		opts = opts.SetMaxSize(c.MaxSize)
	}
	if c.ScaleFunction != "" {
		scale, err := ParseScaleFunction(c.ScaleFunction)
		if err != nil {
			return nil, err
		}
		opts = opts.SetScaleFunction(scale)
	}

	scope := iOpts.MetricsScope()

	centroidsPoolOpts := c.CentroidsPool.NewObjectPoolOptions(
		iOpts.SetMetricsScope(scope.SubScope("centroids-pool")))
	centroidsPool := NewCentroidsPool(
		c.CentroidsPool.NewBuckets(defaultCentroidsPoolBuckets), centroidsPoolOpts)
	centroidsPool.Init()

	floatsPool := c.FloatsPool.NewFloatsPool(defaultFloatsPoolBuckets,
		iOpts.SetMetricsScope(scope.SubScope("floats-pool")))
	floatsPool.Init()

	opts = opts.
		SetCentroidsPool(centroidsPool).
		SetFloatsPool(floatsPool)
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}
