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

	"github.com/m3db/tdigest/src/quantile/tdigest"

	"gopkg.in/vmihailenco/msgpack.v2"
)

type encodeVarintFn func(value int64)
type encodeFloat64Fn func(value float64)
type encodeStringFn func(value string)
type encodeArrayLenFn func(value int)
type encodeNumObjectFieldsForFn func(objType objectType)

// Encoder encodes digest snapshots into msgpack.
type Encoder struct {
	buf *bytes.Buffer
	enc *msgpack.Encoder
	err error

	encodeVarintFn             encodeVarintFn
	encodeFloat64Fn            encodeFloat64Fn
	encodeStringFn             encodeStringFn
	encodeArrayLenFn           encodeArrayLenFn
	encodeNumObjectFieldsForFn encodeNumObjectFieldsForFn
}

// NewEncoder creates a new encoder.
func NewEncoder() *Encoder {
	buf := bytes.NewBuffer(nil)
	enc := &Encoder{
		buf: buf,
		enc: msgpack.NewEncoder(buf),
	}

	enc.encodeVarintFn = enc.encodeVarint
	enc.encodeFloat64Fn = enc.encodeFloat64
	enc.encodeStringFn = enc.encodeString
	enc.encodeArrayLenFn = enc.encodeArrayLen
	enc.encodeNumObjectFieldsForFn = enc.encodeNumObjectFieldsFor
	return enc
}

// Reset clears the encoded bytes and any encoding error.
func (enc *Encoder) Reset() {
	enc.buf.Reset()
	enc.err = nil
}

// Bytes returns the encoded bytes. The returned slice is only valid
// until the next call to Reset.
func (enc *Encoder) Bytes() []byte { return enc.buf.Bytes() }

// EncodeDigest encodes a digest snapshot.
func (enc *Encoder) EncodeDigest(s tdigest.Snapshot) error {
	if enc.err != nil {
		return enc.err
	}
	enc.encodeRootObject(digestVersion, digestType)
	enc.encodeDigest(s)
	return enc.err
}

func (enc *Encoder) encodeRootObject(version int, objType objectType) {
	enc.encodeVersion(version)
	enc.encodeNumObjectFieldsForFn(rootObjectType)
	enc.encodeObjectType(objType)
}

func (enc *Encoder) encodeDigest(s tdigest.Snapshot) {
	enc.encodeNumObjectFieldsForFn(digestType)
	enc.encodeVarintFn(int64(s.MaxSize))
	enc.encodeStringFn(s.ScaleFunction)
	enc.encodeFloat64Fn(s.Min)
	enc.encodeFloat64Fn(s.Max)
	enc.encodeFloat64Fn(s.TotalWeight)
	enc.encodeFloat64Fn(s.Sum)
	enc.encodeArrayLenFn(len(s.Centroids))
	for _, c := range s.Centroids {
		enc.encodeCentroid(c)
	}
}

func (enc *Encoder) encodeCentroid(c tdigest.Centroid) {
	enc.encodeNumObjectFieldsForFn(centroidType)
	enc.encodeFloat64Fn(c.Mean)
	enc.encodeFloat64Fn(c.Weight)
}

func (enc *Encoder) encodeVersion(version int) {
	enc.encodeVarintFn(int64(version))
}

func (enc *Encoder) encodeObjectType(objType objectType) {
	enc.encodeVarintFn(int64(objType))
}

func (enc *Encoder) encodeNumObjectFieldsFor(objType objectType) {
	_, curr := numFieldsForType(objType)
	enc.encodeArrayLenFn(curr)
}

func (enc *Encoder) encodeVarint(value int64) {
	if enc.err != nil {
		return
	}
	enc.err = enc.enc.EncodeInt64(value)
}

func (enc *Encoder) encodeFloat64(value float64) {
	if enc.err != nil {
		return
	}
	enc.err = enc.enc.EncodeFloat64(value)
}

func (enc *Encoder) encodeString(value string) {
	if enc.err != nil {
		return
	}
	enc.err = enc.enc.EncodeString(value)
}

func (enc *Encoder) encodeArrayLen(value int) {
	if enc.err != nil {
		return
	}
	enc.err = enc.enc.EncodeArrayLen(value)
}
