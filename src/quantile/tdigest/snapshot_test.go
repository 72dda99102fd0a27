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

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	d := newTestDigest(t, testDigestOptions().SetScaleFunction(LogitScale).SetMaxSize(50))
	require.NoError(t, d.MergeSorted(sequence(1, 10000)))

	snapshot := d.Snapshot()
	assert.Equal(t, 50, snapshot.MaxSize)
	assert.Equal(t, "k2", snapshot.ScaleFunction)

	restored, err := NewFromSnapshot(snapshot, nil)
	require.NoError(t, err)
	require.Equal(t, "", cmp.Diff(snapshot, restored.Snapshot()))
	assert.Equal(t, LogitScale, restored.ScaleFunction())

	for _, q := range []float64{0, 0.001, 0.1, 0.5, 0.9, 0.999, 1} {
		assert.Equal(t, requireQuantile(t, d, q), requireQuantile(t, restored, q))
	}
	for _, x := range []float64{-1, 1, 500, 9999.5, 20000} {
		expected, err := d.Rank(x)
		require.NoError(t, err)
		actual, err := restored.Rank(x)
		require.NoError(t, err)
		assert.Equal(t, expected, actual)
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	d := newTestDigest(t, testDigestOptions())
	require.NoError(t, d.MergeSorted([]float64{1, 2, 3}))

	snapshot := d.Snapshot()
	snapshot.Centroids[0].Mean = -100
	assert.Equal(t, 1.0, d.Centroids()[0].Mean)
}

func TestSnapshotEmptyRoundTrip(t *testing.T) {
	d := newTestDigest(t, testDigestOptions())
	restored, err := NewFromSnapshot(d.Snapshot(), nil)
	require.NoError(t, err)
	assert.True(t, restored.IsEmpty())
	assert.True(t, math.IsInf(restored.Min(), 1))
}

func TestSnapshotValidate(t *testing.T) {
	valid := func() Snapshot {
		return Snapshot{
			MaxSize:     10,
			Min:         1,
			Max:         3,
			TotalWeight: 3,
			Sum:         6,
			Centroids:   []Centroid{{Mean: 1, Weight: 1}, {Mean: 2, Weight: 1}, {Mean: 3, Weight: 1}},
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(s *Snapshot)
	}{
		{name: "max size", mutate: func(s *Snapshot) { s.MaxSize = 0 }},
		{name: "weight without centroids", mutate: func(s *Snapshot) { s.Centroids = nil }},
		{name: "min above max", mutate: func(s *Snapshot) { s.Min = 4 }},
		{name: "infinite min", mutate: func(s *Snapshot) { s.Min = math.Inf(-1) }},
		{name: "nan sum", mutate: func(s *Snapshot) { s.Sum = math.NaN() }},
		{name: "mean outside range", mutate: func(s *Snapshot) { s.Centroids[2].Mean = 5 }},
		{name: "descending means", mutate: func(s *Snapshot) { s.Centroids[0].Mean = 2.5 }},
		{name: "zero weight", mutate: func(s *Snapshot) { s.Centroids[1].Weight = 0 }},
		{name: "total weight mismatch", mutate: func(s *Snapshot) { s.TotalWeight = 4 }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := valid()
			test.mutate(&s)
			err := s.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSnapshot))

			_, err = NewFromSnapshot(s, nil)
			assert.True(t, errors.Is(err, ErrInvalidSnapshot))
		})
	}
}

func TestNewFromSnapshotInvalidScaleFunction(t *testing.T) {
	s := Snapshot{MaxSize: 1, ScaleFunction: "k9"}
	_, err := NewFromSnapshot(s, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSnapshot))
}
