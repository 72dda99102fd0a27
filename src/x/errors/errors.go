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

// Package errors provides utilities for classifying and combining errors.
package errors

import (
	"bytes"
	"errors"
	"fmt"
)

// ContainedError is an error with a contained error.
type ContainedError interface {
	InnerError() error
}

type invalidParamsError struct {
	inner error
}

// NewInvalidParamsError wraps the given error as an invalid params error,
// i.e. an error caused by the caller rather than by the system.
func NewInvalidParamsError(inner error) error {
	return invalidParamsError{inner: inner}
}

func (e invalidParamsError) Error() string {
	return e.inner.Error()
}

func (e invalidParamsError) InnerError() error {
	return e.inner
}

func (e invalidParamsError) Unwrap() error {
	return e.inner
}

// IsInvalidParams returns true if this is an invalid params error, anywhere
// in the chain of wrapped errors.
func IsInvalidParams(err error) bool {
	return GetInnerInvalidParamsError(err) != nil
}

// GetInnerInvalidParamsError returns an inner invalid params error
// if contained by this error, nil otherwise.
func GetInnerInvalidParamsError(err error) error {
	var target invalidParamsError
	if errors.As(err, &target) {
		return target.inner
	}
	return nil
}

// MultiError is an immutable error that packages a list of errors.
type MultiError struct {
	err    error // optimization for single error case
	errors []error
}

// NewMultiError creates a new MultiError object.
func NewMultiError() MultiError {
	return MultiError{}
}

// Empty returns true if the MultiError has no errors.
func (e MultiError) Empty() bool {
	return e.err == nil
}

func (e MultiError) Error() string {
	if e.err == nil {
		return ""
	}
	if len(e.errors) == 0 {
		return e.err.Error()
	}
	var b bytes.Buffer
	for i := len(e.errors) - 1; i >= 0; i-- {
		b.WriteString(e.errors[i].Error())
		b.WriteString("\n")
	}
	b.WriteString(e.err.Error())
	return b.String()
}

// Errors returns all the errors to inspect individually.
func (e MultiError) Errors() []error {
	if e.err == nil {
		return nil
	}
	errs := make([]error, 0, len(e.errors)+1)
	errs = append(errs, e.err)
	for i := len(e.errors) - 1; i >= 0; i-- {
		errs = append(errs, e.errors[i])
	}
	return errs
}

// Add adds an error returns a new MultiError object.
func (e MultiError) Add(err error) MultiError {
	if err == nil {
		return e
	}
	me := e
	if me.err == nil {
		me.err = err
		return me
	}
	me.errors = append(me.errors, me.err)
	me.err = err
	return me
}

// FinalError returns all concatenated error messages if any.
func (e MultiError) FinalError() error {
	if e.err == nil {
		return nil
	}
	if len(e.errors) == 0 {
		return e.err
	}
	return e
}

// LastError returns the last received error if any.
func (e MultiError) LastError() error {
	return e.err
}

// NumErrors returns the total number of errors.
func (e MultiError) NumErrors() int {
	if e.err == nil {
		return 0
	}
	return len(e.errors) + 1
}

// Wrap wraps an error with a message but preserves the type of the error,
// so invalid params errors remain classified as such.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	wrapped := fmt.Errorf("%s: %w", msg, err)
	if IsInvalidParams(err) {
		return NewInvalidParamsError(wrapped)
	}
	return wrapped
}
