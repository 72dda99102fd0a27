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

import (
	"errors"
	"math"
	"sync"

	"github.com/uber-go/tally"
	"go.uber.org/atomic"
)

var (
	errPoolAlreadyInitialized   = errors.New("object pool already initialized")
	errPoolGetBeforeInitialized = errors.New("object pool get before initialized")
	errPoolPutBeforeInitialized = errors.New("object pool put before initialized")
)

type objectPool struct {
	opts                ObjectPoolOptions
	values              chan interface{}
	dynamic             *sync.Pool
	alloc               Allocator
	size                int
	refillLowWatermark  int
	refillHighWatermark int
	filling             atomic.Bool
	initialized         atomic.Bool
	metrics             objectPoolMetrics
}

type objectPoolMetrics struct {
	free       tally.Gauge
	total      tally.Gauge
	getOnEmpty tally.Counter
	putOnFull  tally.Counter
}

// NewObjectPool creates a new pool.
func NewObjectPool(opts ObjectPoolOptions) ObjectPool {
	if opts == nil {
		opts = NewObjectPoolOptions()
	}

	m := opts.InstrumentOptions().MetricsScope()
	p := &objectPool{
		opts: opts,
		size: opts.Size(),
		refillLowWatermark: int(math.Ceil(
			opts.RefillLowWatermark() * float64(opts.Size()))),
		refillHighWatermark: int(math.Ceil(
			opts.RefillHighWatermark() * float64(opts.Size()))),
		metrics: objectPoolMetrics{
			free:       m.Gauge("free"),
			total:      m.Gauge("total"),
			getOnEmpty: m.Counter("get-on-empty"),
			putOnFull:  m.Counter("put-on-full"),
		},
	}
	if !opts.Dynamic() {
		p.values = make(chan interface{}, opts.Size())
	}

	return p
}

func (p *objectPool) Init(alloc Allocator) {
	if !p.initialized.CAS(false, true) {
		panic(errPoolAlreadyInitialized)
	}

	p.alloc = alloc
	if p.opts.Dynamic() {
		p.dynamic = &sync.Pool{New: alloc}
		return
	}

	for i := 0; i < cap(p.values); i++ {
		p.values <- p.alloc()
	}

	p.setGauges()
}

func (p *objectPool) Get() interface{} {
	if !p.initialized.Load() {
		panic(errPoolGetBeforeInitialized)
	}

	if p.dynamic != nil {
		return p.dynamic.Get()
	}

	var v interface{}
	select {
	case v = <-p.values:
	default:
		v = p.alloc()
		p.metrics.getOnEmpty.Inc(1)
	}

	if p.refillLowWatermark > 0 && len(p.values) <= p.refillLowWatermark {
		p.tryFill()
	}

	return v
}

func (p *objectPool) Put(obj interface{}) {
	if !p.initialized.Load() {
		panic(errPoolPutBeforeInitialized)
	}

	if p.dynamic != nil {
		p.dynamic.Put(obj)
		return
	}

	select {
	case p.values <- obj:
	default:
		p.metrics.putOnFull.Inc(1)
	}
}

func (p *objectPool) setGauges() {
	p.metrics.free.Update(float64(len(p.values)))
	p.metrics.total.Update(float64(p.size))
}

func (p *objectPool) tryFill() {
	if !p.filling.CAS(false, true) {
		return
	}

	go func() {
		defer p.filling.Store(false)

		for len(p.values) < p.refillHighWatermark {
			select {
			case p.values <- p.alloc():
			default:
				p.setGauges()
				return
			}
		}
		p.setGauges()
	}()
}
