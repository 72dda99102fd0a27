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

	xerrors "github.com/m3db/tdigest/src/x/errors"
)

var (
	// ErrInvalidMaxSize is returned when the max size is less than one.
	ErrInvalidMaxSize = xerrors.NewInvalidParamsError(errors.New("max size must be at least 1"))

	// ErrInvalidQuantile is returned for quantiles outside [0, 1].
	ErrInvalidQuantile = xerrors.NewInvalidParamsError(errors.New("quantile must be within [0, 1]"))

	// ErrNonFiniteValue is returned when a value is NaN or infinite.
	ErrNonFiniteValue = xerrors.NewInvalidParamsError(errors.New("value must be finite"))

	// ErrUnsortedValues is returned when values passed as sorted are not.
	ErrUnsortedValues = xerrors.NewInvalidParamsError(errors.New("values are not sorted in ascending order"))

	// ErrInvalidSnapshot is returned when a snapshot fails validation.
	ErrInvalidSnapshot = xerrors.NewInvalidParamsError(errors.New("invalid snapshot"))

	errDigestClosed    = errors.New("digest is closed")
	errNoScaleFunction = xerrors.NewInvalidParamsError(errors.New("no scale function set"))
	errNoCentroidsPool = xerrors.NewInvalidParamsError(errors.New("no centroids pool set"))
	errNoFloatsPool    = xerrors.NewInvalidParamsError(errors.New("no floats pool set"))
)
