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
	"math"
	"sync"

	"github.com/m3db/tdigest/src/quantile/tdigest"
	"github.com/m3db/tdigest/src/x/instrument"

	"github.com/uber-go/tally"
	"go.uber.org/zap"
)

type digestMetrics struct {
	flushes         tally.Counter
	flushedValues   tally.Counter
	flushesSubsumed tally.Counter
	invalidValues   tally.Counter
	resets          tally.Counter
	flushLatency    instrument.Timer
}

func newDigestMetrics(scope tally.Scope, opts instrument.TimerOptions) digestMetrics {
	return digestMetrics{
		flushes:         scope.Counter("flushes"),
		flushedValues:   scope.Counter("flushed-values"),
		flushesSubsumed: scope.Counter("flushes-subsumed"),
		invalidValues:   scope.Counter("invalid-values"),
		resets:          scope.Counter("resets"),
		flushLatency:    instrument.NewTimer(scope, "flush-latency", opts),
	}
}

// Digest is a t-digest that is safe for concurrent use. Observations are
// appended to a buffer and folded into the underlying digest once enough
// of them accumulate, or when the digest is read.
type Digest struct {
	// bufLock guards pending, flushLock guards digest and spare. Pending is
	// only drained while holding flushLock.
	bufLock   sync.Mutex
	flushLock sync.Mutex

	pending []float64
	spare   []float64
	digest  *tdigest.Digest

	flushEvery int
	maxPending int
	logger     *zap.Logger
	metrics    digestMetrics
}

// New creates a new online digest.
func New(opts Options) (*Digest, error) {
	if opts == nil {
		opts = NewOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	digest, err := tdigest.New(opts.DigestOptions())
	if err != nil {
		return nil, err
	}

	var (
		iOpts      = opts.InstrumentOptions()
		maxPending = opts.MaxPending()
		scope      = iOpts.MetricsScope().SubScope("online-digest")
	)
	return &Digest{
		pending:    make([]float64, 0, maxPending),
		spare:      make([]float64, 0, maxPending),
		digest:     digest,
		flushEvery: opts.FlushEvery(),
		maxPending: maxPending,
		logger:     iOpts.Logger(),
		metrics:    newDigestMetrics(scope, iOpts.TimerOptions()),
	}, nil
}

// NewDefault creates a new online digest with the default options.
func NewDefault() *Digest {
	d, err := New(NewOptions())
	if err != nil {
		panic(err)
	}
	return d
}

// Observe records a value. NaN and infinite values are dropped.
func (d *Digest) Observe(value float64) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		d.metrics.invalidValues.Inc(1)
		d.logger.Debug("dropping non-finite value", zap.Float64("value", value))
		return
	}

	d.bufLock.Lock()
	d.pending = append(d.pending, value)
	numPending := len(d.pending)
	d.bufLock.Unlock()

	if numPending < d.flushEvery {
		return
	}

	if numPending >= d.maxPending {
		d.flushLock.Lock()
	} else if !d.flushLock.TryLock() {
		// A flush is in progress and will either drain this value or leave
		// it for the next one.
		d.metrics.flushesSubsumed.Inc(1)
		return
	}
	d.flushWithLock()
	d.flushLock.Unlock()
}

// Flush folds the buffered values into the digest.
func (d *Digest) Flush() {
	d.flushLock.Lock()
	d.flushWithLock()
	d.flushLock.Unlock()
}

// Get flushes the buffered values and returns an independent copy of the
// digest. Every value whose Observe returned before Get was called is
// included.
func (d *Digest) Get() *tdigest.Digest {
	d.flushLock.Lock()
	d.flushWithLock()
	res := d.digest.Clone()
	d.flushLock.Unlock()
	return res
}

// Reset discards the buffered values and empties the digest.
func (d *Digest) Reset() {
	d.flushLock.Lock()
	d.resetWithLock()
	d.flushLock.Unlock()
}

// SnapshotAndReset returns a copy of the digest including every buffered
// value and then empties it.
func (d *Digest) SnapshotAndReset() *tdigest.Digest {
	d.flushLock.Lock()
	d.flushWithLock()
	res := d.digest.Clone()
	d.resetWithLock()
	d.flushLock.Unlock()
	return res
}

func (d *Digest) resetWithLock() {
	d.bufLock.Lock()
	d.pending = d.pending[:0]
	d.bufLock.Unlock()

	d.digest.Reset()
	d.metrics.resets.Inc(1)
}

func (d *Digest) flushWithLock() {
	d.bufLock.Lock()
	values := d.pending
	d.pending = d.spare
	d.bufLock.Unlock()

	if len(values) == 0 {
		d.spare = values
		return
	}

	sw := d.metrics.flushLatency.Start()
	if err := d.digest.MergeUnsorted(values); err != nil {
		// Values are validated in Observe so this indicates a bug.
		d.logger.Error("could not flush online digest",
			zap.Int("numValues", len(values)), zap.Error(err))
	}
	sw.Stop()

	d.metrics.flushes.Inc(1)
	d.metrics.flushedValues.Inc(int64(len(values)))
	d.spare = values[:0]
}
