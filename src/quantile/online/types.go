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

// Package online provides a digest that is safe for concurrent recording.
// Observations are buffered and folded into a t-digest in batches.
package online

import (
	"github.com/m3db/tdigest/src/quantile/tdigest"
	"github.com/m3db/tdigest/src/x/instrument"
)

// Options provide a set of options for the online digest.
type Options interface {
	// SetDigestOptions sets the options of the underlying digest.
	SetDigestOptions(value tdigest.Options) Options

	// DigestOptions returns the options of the underlying digest.
	DigestOptions() tdigest.Options

	// SetFlushEvery sets the number of buffered values that triggers a
	// flush, zero derives it from the digest max size.
	SetFlushEvery(value int) Options

	// FlushEvery returns the number of buffered values that triggers a flush.
	FlushEvery() int

	// SetMaxPending sets the number of buffered values above which observers
	// wait for a flush, zero uses 8x the flush threshold.
	SetMaxPending(value int) Options

	// MaxPending returns the number of buffered values above which
	// observers wait for a flush.
	MaxPending() int

	// SetInstrumentOptions sets the instrument options.
	SetInstrumentOptions(value instrument.Options) Options

	// InstrumentOptions returns the instrument options.
	InstrumentOptions() instrument.Options

	// Validate validates the options.
	Validate() error
}
