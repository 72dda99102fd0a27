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
	"github.com/m3db/tdigest/src/x/pool"
)

const (
	// DefaultMaxSize is the max size used unless otherwise set.
	DefaultMaxSize = 100
)

var (
	defaultCentroidsPoolBuckets = []pool.Bucket{
		{Capacity: 64, Count: 16},
		{Capacity: 256, Count: 16},
	}
	defaultFloatsPoolBuckets = []pool.Bucket{
		{Capacity: 64, Count: 16},
		{Capacity: 512, Count: 8},
	}
)

type options struct {
	maxSize       int
	scale         ScaleFunction
	centroidsPool CentroidsPool
	floatsPool    pool.FloatsPool
}

// NewOptions creates a new options.
func NewOptions() Options {
	centroidsPool := NewCentroidsPool(defaultCentroidsPoolBuckets, nil)
	centroidsPool.Init()

	floatsPool := pool.NewFloatsPool(defaultFloatsPoolBuckets, nil)
	floatsPool.Init()

	return options{
		maxSize:       DefaultMaxSize,
		scale:         DefaultScaleFunction,
		centroidsPool: centroidsPool,
		floatsPool:    floatsPool,
	}
}

func (o options) SetMaxSize(value int) Options {
	o.maxSize = value
	return o
}

func (o options) MaxSize() int {
	return o.maxSize
}

func (o options) SetScaleFunction(value ScaleFunction) Options {
	o.scale = value
	return o
}

func (o options) ScaleFunction() ScaleFunction {
	return o.scale
}

func (o options) SetCentroidsPool(value CentroidsPool) Options {
	o.centroidsPool = value
	return o
}

func (o options) CentroidsPool() CentroidsPool {
	return o.centroidsPool
}

func (o options) SetFloatsPool(value pool.FloatsPool) Options {
	o.floatsPool = value
	return o
}

func (o options) FloatsPool() pool.FloatsPool {
	return o.floatsPool
}

func (o options) Validate() error {
	if o.maxSize < 1 {
		return ErrInvalidMaxSize
	}
	if o.scale == nil {
		return errNoScaleFunction
	}
	if o.centroidsPool == nil {
		return errNoCentroidsPool
	}
	if o.floatsPool == nil {
		return errNoFloatsPool
	}
	return nil
}
