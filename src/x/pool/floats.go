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

package pool

type floatsPool struct {
	pool BucketizedObjectPool
}

// NewFloatsPool creates a new floats pool.
func NewFloatsPool(sizes []Bucket, opts ObjectPoolOptions) FloatsPool {
	return &floatsPool{pool: NewBucketizedObjectPool(sizes, opts)}
}

func (p *floatsPool) Init() {
	p.pool.Init(func(capacity int) interface{} {
		return make([]float64, 0, capacity)
	})
}

func (p *floatsPool) Get(capacity int) []float64 {
	return p.pool.Get(capacity).([]float64)
}

func (p *floatsPool) Put(value []float64) {
	value = value[:0]
	p.pool.Put(value, cap(value))
}
