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
	"fmt"
	"math"
	"strings"

	xerrors "github.com/m3db/tdigest/src/x/errors"
)

const (
	logitEpsilon = 1e-6
)

var (
	// logitRange is ln((1-eps)/eps), the magnitude of the logit at the
	// clamped tails.
	logitRange = math.Log((1 - logitEpsilon) / logitEpsilon)
)

var (
	// LinearScale is the k0 scale function, k = compression * q. It gives
	// every centroid the same share of the total weight.
	LinearScale ScaleFunction = linearScale{}

	// ArcsineScale is the k1 scale function,
	// k = compression * (asin(2q - 1) / pi + 1/2).
	ArcsineScale ScaleFunction = arcsineScale{}

	// LogitScale is the k2 scale function, based on the logit of q with q
	// clamped away from 0 and 1.
	LogitScale ScaleFunction = logitScale{}

	// DefaultScaleFunction is the scale function used unless otherwise set.
	DefaultScaleFunction = ArcsineScale

	validScaleFunctions = []ScaleFunction{
		LinearScale,
		ArcsineScale,
		LogitScale,
	}
)

// ParseScaleFunction parses a scale function from its name, either "k0",
// "k1" and "k2" or the descriptive "linear", "arcsine" and "logit".
func ParseScaleFunction(str string) (ScaleFunction, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "k0", "linear":
		return LinearScale, nil
	case "k1", "arcsine":
		return ArcsineScale, nil
	case "k2", "logit":
		return LogitScale, nil
	}
	names := make([]string, 0, len(validScaleFunctions))
	for _, fn := range validScaleFunctions {
		names = append(names, fn.String())
	}
	return nil, xerrors.NewInvalidParamsError(fmt.Errorf(
		"invalid scale function %q, valid values are %v", str, names))
}

type linearScale struct{}

func (linearScale) K(q, compression float64) float64 {
	return compression * clampUnit(q)
}

func (linearScale) Q(k, compression float64) float64 {
	return clamp(k, 0, compression) / compression
}

func (linearScale) String() string { return "k0" }

type arcsineScale struct{}

func (arcsineScale) K(q, compression float64) float64 {
	q = clampUnit(q)
	k := compression * (math.Asin(2*q-1)/math.Pi + 0.5)
	return clamp(k, 0, compression)
}

func (arcsineScale) Q(k, compression float64) float64 {
	k = clamp(k, 0, compression)
	q := (math.Sin((k/compression-0.5)*math.Pi) + 1) / 2
	return clampUnit(q)
}

func (arcsineScale) String() string { return "k1" }

type logitScale struct{}

func (logitScale) K(q, compression float64) float64 {
	q = clamp(q, logitEpsilon, 1-logitEpsilon)
	k := compression * (math.Log(q/(1-q))/(2*logitRange) + 0.5)
	return clamp(k, 0, compression)
}

func (logitScale) Q(k, compression float64) float64 {
	k = clamp(k, 0, compression)
	x := (k/compression - 0.5) * 2 * logitRange
	return clampUnit(1 / (1 + math.Exp(-x)))
}

func (logitScale) String() string { return "k2" }
