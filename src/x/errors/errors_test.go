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

package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidParamsError(t *testing.T) {
	inner := errors.New("bad max size")
	err := NewInvalidParamsError(inner)

	require.Equal(t, "bad max size", err.Error())
	require.True(t, IsInvalidParams(err))
	require.Equal(t, inner, GetInnerInvalidParamsError(err))
	require.True(t, errors.Is(err, inner))

	require.False(t, IsInvalidParams(inner))
	require.Nil(t, GetInnerInvalidParamsError(inner))
	require.False(t, IsInvalidParams(nil))
}

func TestInvalidParamsErrorWrappedByCaller(t *testing.T) {
	err := fmt.Errorf("merge failed: %w", NewInvalidParamsError(errors.New("nan")))
	assert.True(t, IsInvalidParams(err))
}

func TestWrapPreservesInvalidParams(t *testing.T) {
	sentinel := errors.New("value is nan")
	err := Wrap(NewInvalidParamsError(sentinel), "index 3")
	require.Equal(t, "index 3: value is nan", err.Error())
	require.True(t, IsInvalidParams(err))
	require.True(t, errors.Is(err, sentinel))

	err = Wrap(sentinel, "index 3")
	require.False(t, IsInvalidParams(err))
	require.True(t, errors.Is(err, sentinel))

	require.NoError(t, Wrap(nil, "nothing"))
}

func TestMultiError(t *testing.T) {
	multiErr := NewMultiError()
	require.True(t, multiErr.Empty())
	require.NoError(t, multiErr.FinalError())
	require.Equal(t, 0, multiErr.NumErrors())

	first := errors.New("first")
	multiErr = multiErr.Add(first).Add(nil)
	require.False(t, multiErr.Empty())
	require.Equal(t, first, multiErr.FinalError())
	require.Equal(t, 1, multiErr.NumErrors())

	second := errors.New("second")
	multiErr = multiErr.Add(second)
	require.Equal(t, 2, multiErr.NumErrors())
	require.Equal(t, second, multiErr.LastError())
	require.Equal(t, []error{second, first}, multiErr.Errors())
	require.Equal(t, "first\nsecond", multiErr.FinalError().Error())
}
