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

package sync

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fortytw2/leaktest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWorkerPoolSize = 5

func TestWorkerPoolGoWithContextRunsAllWork(t *testing.T) {
	defer leaktest.Check(t)()

	var (
		mu    sync.Mutex
		count int
		wg    sync.WaitGroup
	)

	p := NewWorkerPool(testWorkerPoolSize)
	p.Init()
	for i := 0; i < testWorkerPoolSize*4; i++ {
		wg.Add(1)
		result := p.GoWithContext(context.Background(), func() {
			mu.Lock()
			count++
			mu.Unlock()
			wg.Done()
		})
		require.True(t, result.Available)
	}
	wg.Wait()

	require.Equal(t, testWorkerPoolSize*4, count)
}

func TestWorkerPoolGoWithContext(t *testing.T) {
	defer leaktest.Check(t)()

	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
	)

	p := NewWorkerPool(1)
	p.Init()

	wg.Add(1)
	result := p.GoWithContext(context.Background(), func() {
		<-start
		wg.Done()
	})
	require.True(t, result.Available)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	result = p.GoWithContext(ctx, func() {})
	assert.False(t, result.Available)

	cancelled, cancelNow := context.WithCancel(context.Background())
	cancelNow()
	result = p.GoWithContext(cancelled, func() {})
	assert.False(t, result.Available)
	assert.Equal(t, time.Duration(0), result.WaitTime)

	close(start)
	wg.Wait()
}
