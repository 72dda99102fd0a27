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

// Package tdigest implements the t-digest, a mergeable sketch that
// approximates the distribution of a stream of values with a bounded
// number of weighted centroids.
package tdigest

import (
	"github.com/m3db/tdigest/src/x/pool"
)

// Centroid represents the center of a cluster.
type Centroid struct {
	Mean   float64
	Weight float64
}

// ScaleFunction maps a normalized rank q in [0, 1] onto the k scale and
// back. A centroid may span at most one unit of k, so the curvature of K
// decides where centroids are small.
type ScaleFunction interface {
	// K returns the k scale value of q, in [0, compression].
	K(q, compression float64) float64

	// Q is the inverse of K, in [0, 1].
	Q(k, compression float64) float64

	// String returns the name of the scale function.
	String() string
}

// CentroidsPool provides a pool for variable-sized centroid slices.
type CentroidsPool interface {
	// Init initializes the pool.
	Init()

	// Get provides an empty centroid slice with at least the given capacity.
	Get(capacity int) []Centroid

	// Put returns a centroid slice to the pool.
	Put(value []Centroid)
}

// Options provides a set of t-digest options.
type Options interface {
	// SetMaxSize sets the max size, the compression parameter bounding the
	// number of centroids.
	SetMaxSize(value int) Options

	// MaxSize returns the max size.
	MaxSize() int

	// SetScaleFunction sets the scale function.
	SetScaleFunction(value ScaleFunction) Options

	// ScaleFunction returns the scale function.
	ScaleFunction() ScaleFunction

	// SetCentroidsPool sets the centroids pool.
	SetCentroidsPool(value CentroidsPool) Options

	// CentroidsPool returns the centroids pool.
	CentroidsPool() CentroidsPool

	// SetFloatsPool sets the pool used for scratch copies of unsorted values.
	SetFloatsPool(value pool.FloatsPool) Options

	// FloatsPool returns the floats pool.
	FloatsPool() pool.FloatsPool

	// Validate validates the options.
	Validate() error
}
