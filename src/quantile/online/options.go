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
	"errors"
	"fmt"

	"github.com/m3db/tdigest/src/quantile/tdigest"
	xerrors "github.com/m3db/tdigest/src/x/errors"
	"github.com/m3db/tdigest/src/x/instrument"
)

const (
	defaultMaxPendingMultiple = 8

	minFlushCompression = 20
	maxFlushCompression = 1000
)

var (
	errNoDigestOptions     = xerrors.NewInvalidParamsError(errors.New("no digest options"))
	errNoInstrumentOptions = xerrors.NewInvalidParamsError(errors.New("no instrument options"))
)

type options struct {
	digestOpts     tdigest.Options
	flushEvery     int
	maxPending     int
	instrumentOpts instrument.Options
}

// NewOptions creates a new set of online digest options.
func NewOptions() Options {
	return &options{
		digestOpts:     tdigest.NewOptions(),
		instrumentOpts: instrument.NewOptions(),
	}
}

func (o *options) SetDigestOptions(value tdigest.Options) Options {
	opts := *o
	opts.digestOpts = value
	return &opts
}

func (o *options) DigestOptions() tdigest.Options {
	return o.digestOpts
}

func (o *options) SetFlushEvery(value int) Options {
	opts := *o
	opts.flushEvery = value
	return &opts
}

func (o *options) FlushEvery() int {
	if o.flushEvery > 0 || o.digestOpts == nil {
		return o.flushEvery
	}
	return flushEveryForMaxSize(o.digestOpts.MaxSize())
}

func (o *options) SetMaxPending(value int) Options {
	opts := *o
	opts.maxPending = value
	return &opts
}

func (o *options) MaxPending() int {
	if o.maxPending > 0 {
		return o.maxPending
	}
	return defaultMaxPendingMultiple * o.FlushEvery()
}

func (o *options) SetInstrumentOptions(value instrument.Options) Options {
	opts := *o
	opts.instrumentOpts = value
	return &opts
}

func (o *options) InstrumentOptions() instrument.Options {
	return o.instrumentOpts
}

func (o *options) Validate() error {
	if o.digestOpts == nil {
		return errNoDigestOptions
	}
	if err := o.digestOpts.Validate(); err != nil {
		return err
	}
	if o.instrumentOpts == nil {
		return errNoInstrumentOptions
	}
	if o.flushEvery < 0 {
		return xerrors.NewInvalidParamsError(
			fmt.Errorf("flush every %d must not be negative", o.flushEvery))
	}
	if o.maxPending < 0 {
		return xerrors.NewInvalidParamsError(
			fmt.Errorf("max pending %d must not be negative", o.maxPending))
	}
	if flushEvery, maxPending := o.FlushEvery(), o.MaxPending(); maxPending < flushEvery {
		return xerrors.NewInvalidParamsError(
			fmt.Errorf("max pending %d is less than flush every %d", maxPending, flushEvery))
	}
	return nil
}

// flushEveryForMaxSize is a polynomial regression of the number of
// unmerged values that keeps flushing cheap relative to the merge cost.
func flushEveryForMaxSize(maxSize int) int {
	compression := float64(maxSize)
	if compression < minFlushCompression {
		compression = minFlushCompression
	} else if compression > maxFlushCompression {
		compression = maxFlushCompression
	}
	return int(7.5 + 0.37*compression - 2e-4*compression*compression)
}
