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

const snapshotWeightTolerance = 1e-9

// Snapshot is the persisted representation of a digest. Restoring a
// snapshot yields a digest answering every query identically.
type Snapshot struct {
	MaxSize       int
	ScaleFunction string
	Min           float64
	Max           float64
	TotalWeight   float64
	Sum           float64
	Centroids     []Centroid
}

// Snapshot returns a snapshot of the digest's current state.
func (d *Digest) Snapshot() Snapshot {
	return Snapshot{
		MaxSize:       d.maxSize,
		ScaleFunction: d.scale.String(),
		Min:           d.min,
		Max:           d.max,
		TotalWeight:   d.totalWeight,
		Sum:           d.sum,
		Centroids:     d.Centroids(),
	}
}

// Validate validates the snapshot.
func (s Snapshot) Validate() error {
	if s.MaxSize < 1 {
		return fmt.Errorf("%w: max size %d", ErrInvalidSnapshot, s.MaxSize)
	}

	if len(s.Centroids) == 0 {
		if s.TotalWeight != 0 {
			return fmt.Errorf("%w: total weight %v without centroids",
				ErrInvalidSnapshot, s.TotalWeight)
		}
		return nil
	}

	if !isFinite(s.Min) || !isFinite(s.Max) || s.Min > s.Max {
		return fmt.Errorf("%w: min %v, max %v", ErrInvalidSnapshot, s.Min, s.Max)
	}
	if math.IsNaN(s.Sum) {
		return fmt.Errorf("%w: sum is NaN", ErrInvalidSnapshot)
	}

	var weight float64
	for i, c := range s.Centroids {
		if !isFinite(c.Mean) || c.Mean < s.Min || c.Mean > s.Max {
			return fmt.Errorf("%w: centroid %d mean %v outside [%v, %v]",
				ErrInvalidSnapshot, i, c.Mean, s.Min, s.Max)
		}
		if i > 0 && c.Mean < s.Centroids[i-1].Mean {
			return fmt.Errorf("%w: centroid %d mean %v is less than previous %v",
				ErrInvalidSnapshot, i, c.Mean, s.Centroids[i-1].Mean)
		}
		if !isFinite(c.Weight) || c.Weight <= 0 {
			return fmt.Errorf("%w: centroid %d weight %v",
				ErrInvalidSnapshot, i, c.Weight)
		}
		weight += c.Weight
	}

	if math.Abs(weight-s.TotalWeight) > snapshotWeightTolerance*s.TotalWeight {
		return fmt.Errorf("%w: total weight %v, centroid weights sum to %v",
			ErrInvalidSnapshot, s.TotalWeight, weight)
	}
	return nil
}

// NewFromSnapshot restores a digest from a snapshot. The snapshot's max size
// and scale function override those of opts, which may be nil.
func NewFromSnapshot(s Snapshot, opts Options) (*Digest, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	if opts == nil {
		opts = NewOptions()
	}
	opts = opts.SetMaxSize(s.MaxSize)
	if s.ScaleFunction != "" {
		scale, err := ParseScaleFunction(s.ScaleFunction)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
		opts = opts.SetScaleFunction(scale)
	}

	d, err := New(opts)
	if err != nil {
		return nil, err
	}
	if len(s.Centroids) == 0 {
		return d, nil
	}

	centroids := d.centroidsPool.Get(len(s.Centroids))
	centroids = append(centroids, s.Centroids...)
	d.replace(centroids, s.TotalWeight, s.Sum, s.Min, s.Max)
	return d, nil
}
