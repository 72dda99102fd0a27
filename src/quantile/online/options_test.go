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
	"testing"

	"github.com/m3db/tdigest/src/quantile/tdigest"
	xerrors "github.com/m3db/tdigest/src/x/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsDefaults(t *testing.T) {
	opts := NewOptions()
	require.NoError(t, opts.Validate())
	assert.Equal(t, 42, opts.FlushEvery())
	assert.Equal(t, 8*42, opts.MaxPending())
	assert.Equal(t, tdigest.DefaultMaxSize, opts.DigestOptions().MaxSize())
	assert.NotNil(t, opts.InstrumentOptions())
}

func TestOptionsFlushEveryFollowsMaxSize(t *testing.T) {
	opts := NewOptions().SetDigestOptions(tdigest.NewOptions().SetMaxSize(1000))
	assert.Equal(t, 177, opts.FlushEvery())

	opts = opts.SetFlushEvery(5)
	assert.Equal(t, 5, opts.FlushEvery())
	assert.Equal(t, 40, opts.MaxPending())

	opts = opts.SetMaxPending(7)
	assert.Equal(t, 7, opts.MaxPending())
}

func TestFlushEveryForMaxSize(t *testing.T) {
	inputs := []struct {
		maxSize  int
		expected int
	}{
		{maxSize: 1, expected: 14},
		{maxSize: 20, expected: 14},
		{maxSize: 100, expected: 42},
		{maxSize: 500, expected: 142},
		{maxSize: 1000, expected: 177},
		{maxSize: 5000, expected: 177},
	}
	for _, input := range inputs {
		assert.Equal(t, input.expected, flushEveryForMaxSize(input.maxSize), "max size %d", input.maxSize)
	}
}

func TestOptionsValidate(t *testing.T) {
	inputs := []Options{
		NewOptions().SetDigestOptions(nil),
		NewOptions().SetInstrumentOptions(nil),
		NewOptions().SetFlushEvery(-1),
		NewOptions().SetMaxPending(-1),
		NewOptions().SetFlushEvery(10).SetMaxPending(9),
		NewOptions().SetDigestOptions(tdigest.NewOptions().SetScaleFunction(nil)),
	}
	for _, opts := range inputs {
		err := opts.Validate()
		require.Error(t, err)
		assert.True(t, xerrors.IsInvalidParams(err))
	}
}
