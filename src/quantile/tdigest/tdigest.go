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
	"sort"

	"github.com/m3db/tdigest/src/x/pool"
)

type centroidsByMeanAsc []Centroid

func (c centroidsByMeanAsc) Len() int           { return len(c) }
func (c centroidsByMeanAsc) Less(i, j int) bool { return c[i].Mean < c[j].Mean }
func (c centroidsByMeanAsc) Swap(i, j int)      { c[i], c[j] = c[j], c[i] }

// Digest is a t-digest. Merges require exclusive access, reads may run
// concurrently with each other.
type Digest struct {
	maxSize       int           // compression parameter
	scale         ScaleFunction // scale function governing centroid sizes
	centroidsPool CentroidsPool // centroids pool
	floatsPool    pool.FloatsPool

	closed      bool       // whether the digest is closed
	centroids   []Centroid // centroids ascending by mean
	totalWeight float64    // total weight of all centroids
	sum         float64    // sum of all merged values
	min         float64    // minimum value
	max         float64    // maximum value
}

// New creates a new empty digest.
func New(opts Options) (*Digest, error) {
	if opts == nil {
		opts = NewOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	d := &Digest{
		maxSize:       opts.MaxSize(),
		scale:         opts.ScaleFunction(),
		centroidsPool: opts.CentroidsPool(),
		floatsPool:    opts.FloatsPool(),
	}
	d.Reset()
	return d, nil
}

// NewWithSize creates a new empty digest with the given max size and
// default options otherwise.
func NewWithSize(maxSize int) (*Digest, error) {
	return New(NewOptions().SetMaxSize(maxSize))
}

// MaxSize returns the max size.
func (d *Digest) MaxSize() int { return d.maxSize }

// ScaleFunction returns the scale function.
func (d *Digest) ScaleFunction() ScaleFunction { return d.scale }

// TotalWeight returns the total weight, the number of merged values.
func (d *Digest) TotalWeight() float64 { return d.totalWeight }

// Sum returns the sum of all merged values.
func (d *Digest) Sum() float64 { return d.sum }

// Min returns the minimum merged value, +Inf if empty.
func (d *Digest) Min() float64 { return d.min }

// Max returns the maximum merged value, -Inf if empty.
func (d *Digest) Max() float64 { return d.max }

// Mean returns the mean of all merged values, NaN if empty.
func (d *Digest) Mean() float64 {
	if d.totalWeight == 0 {
		return nan
	}
	return d.sum / d.totalWeight
}

// Len returns the number of centroids.
func (d *Digest) Len() int { return len(d.centroids) }

// IsEmpty returns true if nothing has been merged.
func (d *Digest) IsEmpty() bool { return d.totalWeight == 0 }

// Centroids returns a copy of the centroids.
func (d *Digest) Centroids() []Centroid {
	res := make([]Centroid, len(d.centroids))
	copy(res, d.centroids)
	return res
}

// Clone returns an independent copy of the digest.
func (d *Digest) Clone() *Digest {
	clone := *d
	clone.closed = false
	clone.centroids = d.centroidsPool.Get(len(d.centroids))
	clone.centroids = append(clone.centroids, d.centroids...)
	return &clone
}

// Reset resets the digest to the empty state.
func (d *Digest) Reset() {
	if d.centroids != nil {
		d.centroidsPool.Put(d.centroids)
	}
	d.closed = false
	d.centroids = nil
	d.totalWeight = 0.0
	d.sum = 0.0
	d.min = positiveInfinity
	d.max = negativeInfinity
}

// Close returns the centroids to the pool and empties the digest. Merges
// into a closed digest fail until it is Reset.
func (d *Digest) Close() {
	if d.closed {
		return
	}
	d.Reset()
	d.closed = true
}

// MergeSorted merges values sorted in ascending order. The digest is left
// untouched if any value is not finite or out of order.
func (d *Digest) MergeSorted(values []float64) error {
	if d.closed {
		return errDigestClosed
	}
	for i, v := range values {
		if !isFinite(v) {
			return fmt.Errorf("%w: %v at index %d", ErrNonFiniteValue, v, i)
		}
		if i > 0 && v < values[i-1] {
			return fmt.Errorf("%w: %v at index %d follows %v",
				ErrUnsortedValues, v, i, values[i-1])
		}
	}
	d.mergeSorted(values)
	return nil
}

// MergeUnsorted merges values in any order. The digest is left untouched if
// any value is not finite.
func (d *Digest) MergeUnsorted(values []float64) error {
	if d.closed {
		return errDigestClosed
	}
	for i, v := range values {
		if !isFinite(v) {
			return fmt.Errorf("%w: %v at index %d", ErrNonFiniteValue, v, i)
		}
	}
	if len(values) == 0 {
		return nil
	}

	sorted := d.floatsPool.Get(len(values))
	sorted = append(sorted, values...)
	sort.Float64s(sorted)
	d.mergeSorted(sorted)
	d.floatsPool.Put(sorted)
	return nil
}

// Merge merges other digests into this one. The others are not modified.
// When any of them holds values, the max size becomes the largest max size
// of all digests involved. Merging only nil or empty digests is a no-op.
// A digest may be merged into itself.
func (d *Digest) Merge(others ...*Digest) error {
	if d.closed {
		return errDigestClosed
	}
	maxSize := d.maxSize
	for _, o := range others {
		if o != nil && o.maxSize > maxSize {
			maxSize = o.maxSize
		}
	}
	d.mergeDigests(others, maxSize)
	return nil
}

// Merge merges the digests into a new digest. When opts is nil the new
// digest takes the scale function and pools of the first non-nil digest and
// the largest max size of all of them.
func Merge(digests []*Digest, opts Options) (*Digest, error) {
	maxSize := 0
	if opts == nil {
		opts = NewOptions()
		for _, d := range digests {
			if d == nil {
				continue
			}
			if maxSize == 0 {
				opts = opts.
					SetScaleFunction(d.scale).
					SetCentroidsPool(d.centroidsPool).
					SetFloatsPool(d.floatsPool)
			}
			if d.maxSize > maxSize {
				maxSize = d.maxSize
			}
		}
		if maxSize > 0 {
			opts = opts.SetMaxSize(maxSize)
		}
	}

	res, err := New(opts)
	if err != nil {
		return nil, err
	}
	res.mergeDigests(digests, opts.MaxSize())
	return res, nil
}

func (d *Digest) mergeDigests(others []*Digest, maxSize int) {
	var (
		numPoints   = len(d.centroids)
		totalWeight = d.totalWeight
		sum         = d.sum
		minValue    = d.min
		maxValue    = d.max
		merging     bool
	)
	for _, o := range others {
		if o == nil || o.totalWeight == 0 {
			continue
		}
		merging = true
		numPoints += len(o.centroids)
		totalWeight += o.totalWeight
		sum += o.sum
		if o.min < minValue {
			minValue = o.min
		}
		if o.max > maxValue {
			maxValue = o.max
		}
	}
	if !merging {
		return
	}
	d.maxSize = maxSize

	points := d.centroidsPool.Get(numPoints)
	points = append(points, d.centroids...)
	for _, o := range others {
		if o == nil || o.totalWeight == 0 {
			continue
		}
		points = append(points, o.centroids...)
	}
	sort.Stable(centroidsByMeanAsc(points))

	c := d.newCompressor(totalWeight, len(points))
	for _, p := range points {
		c.add(p)
	}
	d.centroidsPool.Put(points)

	d.replace(c.finish(), totalWeight, sum, minValue, maxValue)
}

// mergeSorted merges validated, sorted values by walking them together with
// the existing centroids.
func (d *Digest) mergeSorted(values []float64) {
	if len(values) == 0 {
		return
	}

	var (
		totalWeight = d.totalWeight + float64(len(values))
		sum         = d.sum
		minValue    = d.min
		maxValue    = d.max
		c           = d.newCompressor(totalWeight, len(d.centroids)+len(values))
		ci          = 0
		vi          = 0
	)
	if values[0] < minValue {
		minValue = values[0]
	}
	if last := values[len(values)-1]; last > maxValue {
		maxValue = last
	}

	for ci < len(d.centroids) || vi < len(values) {
		// Existing centroids go first on ties so equal means stay in
		// insertion order.
		if vi == len(values) ||
			(ci < len(d.centroids) && d.centroids[ci].Mean <= values[vi]) {
			c.add(d.centroids[ci])
			ci++
			continue
		}
		sum += values[vi]
		c.add(Centroid{Mean: values[vi], Weight: 1.0})
		vi++
	}

	d.replace(c.finish(), totalWeight, sum, minValue, maxValue)
}

func (d *Digest) replace(
	centroids []Centroid,
	totalWeight float64,
	sum float64,
	minValue float64,
	maxValue float64,
) {
	if d.centroids != nil {
		d.centroidsPool.Put(d.centroids)
	}
	d.centroids = centroids
	d.totalWeight = totalWeight
	d.sum = sum
	d.min = minValue
	d.max = maxValue
}

func (d *Digest) newCompressor(totalWeight float64, numPoints int) *compressor {
	capacity := minInt(numPoints, 2*d.maxSize)
	return &compressor{
		scale:         d.scale,
		compression:   float64(d.maxSize),
		totalWeight:   totalWeight,
		centroidsPool: d.centroidsPool,
		result:        d.centroidsPool.Get(capacity),
	}
}

// compressor folds an ascending stream of weighted points into centroids,
// closing the open centroid once it would span more than one unit of k.
type compressor struct {
	scale         ScaleFunction
	compression   float64
	totalWeight   float64
	centroidsPool CentroidsPool

	result    []Centroid
	open      Centroid
	hasOpen   bool
	cumWeight float64 // weight before the open centroid
	kStart    float64 // k of the open centroid's start
}

func (c *compressor) add(p Centroid) {
	if !c.hasOpen {
		c.start(p)
		return
	}

	q := (c.cumWeight + c.open.Weight + p.Weight) / c.totalWeight
	if c.scale.K(q, c.compression)-c.kStart <= 1 {
		c.open.Mean = weightedMean(c.open.Mean, c.open.Weight, p.Mean, p.Weight)
		c.open.Weight += p.Weight
		return
	}

	c.result = c.appendCentroid(c.result, c.open)
	c.cumWeight += c.open.Weight
	c.start(p)
}

func (c *compressor) start(p Centroid) {
	c.open = p
	c.hasOpen = true
	c.kStart = c.scale.K(c.cumWeight/c.totalWeight, c.compression)
}

func (c *compressor) finish() []Centroid {
	if c.hasOpen {
		c.result = c.appendCentroid(c.result, c.open)
		c.hasOpen = false
	}
	return c.result
}

func (c *compressor) appendCentroid(centroids []Centroid, ct Centroid) []Centroid {
	if len(centroids) == cap(centroids) {
		newCentroids := c.centroidsPool.Get(2*len(centroids) + 1)
		newCentroids = append(newCentroids, centroids...)
		c.centroidsPool.Put(centroids)
		centroids = newCentroids
	}
	return append(centroids, ct)
}
