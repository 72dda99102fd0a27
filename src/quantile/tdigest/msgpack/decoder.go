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

package msgpack

import (
	"bytes"
	"fmt"
	"io"

	"github.com/m3db/tdigest/src/quantile/tdigest"

	"github.com/pkg/errors"
	"gopkg.in/vmihailenco/msgpack.v2"
)

// maxInitialCentroids caps the centroids allocated up front so a corrupt
// length prefix cannot force a huge allocation.
const maxInitialCentroids = 4096

var emptySnapshot tdigest.Snapshot

// Decoder decodes msgpack encoded digest snapshots.
type Decoder struct {
	reader io.Reader
	dec    *msgpack.Decoder
	err    error
}

// NewDecoder creates a new decoder.
func NewDecoder() *Decoder {
	reader := bytes.NewReader(nil)
	return &Decoder{
		reader: reader,
		dec:    msgpack.NewDecoder(reader),
	}
}

// Reset resets the stream to decode from.
func (dec *Decoder) Reset(reader io.Reader) {
	dec.reader = reader
	dec.dec.Reset(dec.reader)
	dec.err = nil
}

// DecodeDigest decodes a digest snapshot. The decoded snapshot is
// validated before it is returned.
func (dec *Decoder) DecodeDigest() (tdigest.Snapshot, error) {
	if dec.err != nil {
		return emptySnapshot, dec.err
	}

	numFieldsToSkip := dec.decodeRootObject(digestVersion, digestType)
	s := dec.decodeDigest()
	dec.skip(numFieldsToSkip)
	if dec.err != nil {
		return emptySnapshot, errors.Wrap(dec.err, "error decoding digest")
	}
	if err := s.Validate(); err != nil {
		return emptySnapshot, errors.Wrap(err, "error decoding digest")
	}
	return s, nil
}

func (dec *Decoder) decodeRootObject(expectedVersion int, expectedType objectType) int {
	dec.checkVersion(expectedVersion)
	if dec.err != nil {
		return 0
	}
	numFieldsToSkip, ok := dec.checkNumFieldsFor(rootObjectType)
	if !ok {
		return 0
	}
	actualType := dec.decodeObjectType()
	if dec.err != nil {
		return 0
	}
	if expectedType != actualType {
		dec.err = fmt.Errorf("object type mismatch: expected %v actual %v",
			expectedType, actualType)
		return 0
	}
	return numFieldsToSkip
}

func (dec *Decoder) decodeDigest() tdigest.Snapshot {
	numFieldsToSkip, ok := dec.checkNumFieldsFor(digestType)
	if !ok {
		return emptySnapshot
	}

	var s tdigest.Snapshot
	s.MaxSize = int(dec.decodeVarint())
	s.ScaleFunction = dec.decodeString()
	s.Min = dec.decodeFloat64()
	s.Max = dec.decodeFloat64()
	s.TotalWeight = dec.decodeFloat64()
	s.Sum = dec.decodeFloat64()

	numCentroids := dec.decodeArrayLen()
	if dec.err != nil {
		return emptySnapshot
	}
	if numCentroids < 0 {
		numCentroids = 0
	}
	if numCentroids > 0 {
		initial := numCentroids
		if initial > maxInitialCentroids {
			initial = maxInitialCentroids
		}
		s.Centroids = make([]tdigest.Centroid, 0, initial)
	}
	for i := 0; i < numCentroids; i++ {
		c := dec.decodeCentroid()
		if dec.err != nil {
			return emptySnapshot
		}
		s.Centroids = append(s.Centroids, c)
	}

	dec.skip(numFieldsToSkip)
	if dec.err != nil {
		return emptySnapshot
	}
	return s
}

func (dec *Decoder) decodeCentroid() tdigest.Centroid {
	numFieldsToSkip, ok := dec.checkNumFieldsFor(centroidType)
	if !ok {
		return tdigest.Centroid{}
	}
	c := tdigest.Centroid{
		Mean:   dec.decodeFloat64(),
		Weight: dec.decodeFloat64(),
	}
	dec.skip(numFieldsToSkip)
	return c
}

func (dec *Decoder) checkVersion(expected int) {
	version := int(dec.decodeVarint())
	if dec.err != nil {
		return
	}
	if version > expected {
		dec.err = fmt.Errorf("version mismatch: expected %v actual %v", expected, version)
	}
}

func (dec *Decoder) checkNumFieldsFor(objType objectType) (int, bool) {
	actual := dec.decodeNumObjectFields()
	if dec.err != nil {
		return 0, false
	}
	min, curr := numFieldsForType(objType)
	if min > actual {
		dec.err = fmt.Errorf("number of fields mismatch: expected minimum of %d actual %d",
			min, actual)
		return 0, false
	}
	numToSkip := actual - curr
	if numToSkip < 0 {
		numToSkip = 0
	}
	return numToSkip, true
}

func (dec *Decoder) skip(numFields int) {
	if dec.err != nil {
		return
	}
	for i := 0; i < numFields; i++ {
		if err := dec.dec.Skip(); err != nil {
			dec.err = err
			return
		}
	}
}

func (dec *Decoder) decodeNumObjectFields() int {
	return dec.decodeArrayLen()
}

func (dec *Decoder) decodeObjectType() objectType {
	return objectType(dec.decodeVarint())
}

func (dec *Decoder) decodeVarint() int64 {
	if dec.err != nil {
		return 0
	}
	value, err := dec.dec.DecodeInt64()
	dec.err = err
	return value
}

func (dec *Decoder) decodeFloat64() float64 {
	if dec.err != nil {
		return 0.0
	}
	value, err := dec.dec.DecodeFloat64()
	dec.err = err
	return value
}

func (dec *Decoder) decodeString() string {
	if dec.err != nil {
		return ""
	}
	value, err := dec.dec.DecodeString()
	dec.err = err
	return value
}

func (dec *Decoder) decodeArrayLen() int {
	if dec.err != nil {
		return 0
	}
	value, err := dec.dec.DecodeArrayLen()
	dec.err = err
	return value
}
