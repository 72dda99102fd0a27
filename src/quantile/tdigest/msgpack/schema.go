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

// Package msgpack encodes and decodes digest snapshots as versioned msgpack
// objects. Decoders skip trailing fields written by newer encoders.
package msgpack

const (
	// digestVersion is the current digest encoding version.
	digestVersion = 1
)

type objectType int

const (
	// Adding any new object types should be appended to the list so
	// existing encodings keep the same object type values.
	unknownType objectType = iota
	rootObjectType
	digestType
	centroidType

	// Total number of object types.
	numObjectTypes = iota
)

const (
	numRootObjectFields = 2
	numDigestFields     = 7
	numCentroidFields   = 2
)

var numObjectFields []numFields

// numFields holds the minimum number of fields an object must carry to
// be decoded and the number of fields the current version writes.
type numFields struct {
	min  int
	curr int
}

func numFieldsForType(objType objectType) (min, curr int) {
	nf := numObjectFields[int(objType)-1]
	return nf.min, nf.curr
}

func setNumFieldsForType(objType objectType, min, curr int) {
	numObjectFields[int(objType)-1] = numFields{min: min, curr: curr}
}

func init() {
	numObjectFields = make([]numFields, int(numObjectTypes)-1)

	setNumFieldsForType(rootObjectType, 2, numRootObjectFields)
	setNumFieldsForType(digestType, 7, numDigestFields)
	setNumFieldsForType(centroidType, 2, numCentroidFields)
}
