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

package online

import (
	"github.com/m3db/tdigest/src/quantile/tdigest"
	"github.com/m3db/tdigest/src/x/instrument"
)

// Configuration configures an online digest.
type Configuration struct {
	// Digest configures the underlying digest.
	Digest tdigest.Configuration `yaml:"digest"`

	// FlushEvery is the number of buffered values that triggers a flush.
	FlushEvery int `yaml:"flushEvery" validate:"min=0"`

	// MaxPending is the number of buffered values above which observers
	// wait for a flush.
	MaxPending int `yaml:"maxPending" validate:"min=0"`
}

// NewOptions creates online digest options from the configuration.
func (c Configuration) NewOptions(iOpts instrument.Options) (Options, error) {
	digestOpts, err := c.Digest.NewOptions(iOpts)
	if err != nil {
		return nil, err
	}
	opts := NewOptions().
		SetDigestOptions(digestOpts).
		SetFlushEvery(c.FlushEvery).
		SetMaxPending(c.MaxPending).
		SetInstrumentOptions(iOpts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// NewDigest creates an online digest from the configuration.
func (c Configuration) NewDigest(iOpts instrument.Options) (*Digest, error) {
	opts, err := c.NewOptions(iOpts)
	if err != nil {
		return nil, err
	}
	return New(opts)
}
